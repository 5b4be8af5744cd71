// Package textclean normalizes raw per-page document text into a single
// cleaned string and fingerprints it for change detection.
//
// Cleaning is a pure function of its input: page-number lines are dropped,
// running headers and footers are stripped, broken lines are merged, and the
// surviving lines are joined with newlines. A trimmed line counts as a
// running header or footer when it appears verbatim on at least
// max(2, pages/2) distinct pages.
package textclean

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// ErrNoTextExtracted indicates that cleaning left no usable text. For PDFs
// this usually means a scanned or image-only document.
var ErrNoTextExtracted = errors.New("no text could be extracted")

var pageNumberRe = regexp.MustCompile(`^\d+$`)

var listMarkerRe = regexp.MustCompile(`^(?:[-*•]\s|\d+[.)]\s)`)

const terminalPunctuation = ".!?:;"

// Clean turns ordered per-page raw text into one cleaned document string.
// It returns ErrNoTextExtracted when every page is empty or whitespace.
func Clean(pages []string) (string, error) {
	pageLines := make([][]string, 0, len(pages))
	for _, page := range pages {
		pageLines = append(pageLines, strings.Split(page, "\n"))
	}

	repeated := repeatedLines(pageLines)

	var kept []string
	for _, lines := range pageLines {
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if pageNumberRe.MatchString(line) {
				continue
			}
			if repeated[line] {
				continue
			}
			kept = append(kept, line)
		}
	}

	cleaned := strings.TrimSpace(mergeBrokenLines(kept))
	if cleaned == "" {
		return "", ErrNoTextExtracted
	}

	return cleaned, nil
}

// repeatedLines finds trimmed lines that occur on enough distinct pages to
// be considered running headers or footers. Comparison is exact and
// case-sensitive. Single-page documents never have headers stripped.
func repeatedLines(pageLines [][]string) map[string]bool {
	repeated := make(map[string]bool)
	if len(pageLines) < 2 {
		return repeated
	}

	counts := make(map[string]int)
	for _, lines := range pageLines {
		seen := make(map[string]bool)
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" || seen[line] {
				continue
			}
			seen[line] = true
			counts[line]++
		}
	}

	threshold := len(pageLines) / 2
	if threshold < 2 {
		threshold = 2
	}
	for line, count := range counts {
		if count >= threshold {
			repeated[line] = true
		}
	}

	return repeated
}

// mergeBrokenLines joins a line into its successor with a single space when
// the line lacks terminal punctuation and the successor does not open a new
// block (an uppercase letter or a list marker). Unmerged lines are joined
// with newlines.
func mergeBrokenLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	var merged []string
	current := lines[0]
	for _, next := range lines[1:] {
		if endsSentence(current) || opensBlock(next) {
			merged = append(merged, current)
			current = next
			continue
		}
		current = current + " " + next
	}
	merged = append(merged, current)

	return strings.Join(merged, "\n")
}

func endsSentence(line string) bool {
	runes := []rune(line)
	if len(runes) == 0 {
		return false
	}
	return strings.ContainsRune(terminalPunctuation, runes[len(runes)-1])
}

func opensBlock(line string) bool {
	runes := []rune(line)
	if len(runes) == 0 {
		return false
	}
	if unicode.IsUpper(runes[0]) {
		return true
	}
	return listMarkerRe.MatchString(line)
}
