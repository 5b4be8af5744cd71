// Package pdf extracts per-page text from PDF files using the poppler
// pdftotext utility.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Extractor shells out to pdftotext and splits its output into pages on
// the form-feed characters the tool emits between them.
type Extractor struct {
	timeout time.Duration
}

// NewExtractorParams defines the configuration for creating an Extractor.
// A zero Timeout falls back to 30 seconds.
type NewExtractorParams struct {
	Timeout time.Duration
}

// NewExtractor creates a PDF page extractor.
func NewExtractor(params NewExtractorParams) *Extractor {
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Extractor{
		timeout: timeout,
	}
}

// ExtractPages runs pdftotext on the file at path and returns its text one
// page per entry, in document order.
func (e *Extractor) ExtractPages(ctx context.Context, path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, fmt.Errorf("pdftotext not found in PATH: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(
		ctx,
		"pdftotext",
		"-enc", "UTF-8",
		"-eol", "unix",
		"-q",
		path,
		"-",
	)
	cmd.Env = append(os.Environ(), "LANG=C.UTF-8", "LC_ALL=C.UTF-8")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("pdftotext timed out after %s", e.timeout)
	}
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}

	return SplitPages(stdout.String()), nil
}

// SplitPages splits pdftotext output on form feeds, one entry per page.
// pdftotext terminates the last page with a form feed as well; the
// resulting trailing empty entry is not a page and is dropped.
func SplitPages(text string) []string {
	if text == "" {
		return nil
	}

	pages := strings.Split(text, "\f")
	if len(pages) > 1 && pages[len(pages)-1] == "" {
		pages = pages[:len(pages)-1]
	}

	return pages
}
