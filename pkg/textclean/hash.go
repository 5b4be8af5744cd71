package textclean

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns the lowercase hex SHA-256 digest of the UTF-8 bytes
// of text. It is the sole change-detection signal for skip/rebuild
// decisions; no file metadata is consulted.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
