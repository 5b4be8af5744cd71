// Package loader defines the collaborator interface for turning source
// documents into raw per-page text.
package loader

import "context"

// PageExtractor extracts the raw text of a document, one string per page,
// in document order. Empty pages are permitted and must keep their
// position in the returned slice.
type PageExtractor interface {
	ExtractPages(ctx context.Context, path string) ([]string, error)
}
