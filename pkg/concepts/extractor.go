// Package concepts derives qualifying concept terms from cleaned document
// text using a deterministic lexical scan. No model calls, no randomness.
package concepts

import (
	"regexp"
	"sort"
	"strings"
)

// joinWords may appear inside a candidate phrase, bridging two capitalized
// words ("Theory of Relativity"). The list is fixed.
var joinWords = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "and": true,
	"or": true, "for": true, "in": true, "on": true, "to": true,
	"with": true,
}

// leadStopwords and trailStopwords prune candidates that begin or end with
// filler words once normalized.
var leadStopwords = map[string]bool{
	"the": true, "this": true, "that": true, "any": true,
	"which": true, "whose": true, "for": true, "with": true,
}

var trailStopwords = map[string]bool{
	"the": true, "will": true, "are": true, "was": true,
	"were": true, "with": true, "into": true, "of": true,
}

var capitalizedRe = regexp.MustCompile(`^[A-Z][a-z0-9]*$`)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Extractor scans cleaned text for capitalized noun-phrase candidates and
// keeps those whose combined occurrence count reaches MinFrequency.
type Extractor struct {
	minFrequency int
}

// NewExtractorParams defines the configuration for creating an Extractor.
// MinFrequency values below 1 fall back to the default of 2.
type NewExtractorParams struct {
	MinFrequency int
}

// NewExtractor creates a new concept extractor.
func NewExtractor(params NewExtractorParams) *Extractor {
	minFrequency := params.MinFrequency
	if minFrequency < 1 {
		minFrequency = 2
	}
	return &Extractor{
		minFrequency: minFrequency,
	}
}

// Extract returns the sorted set of normalized terms found in text.
// Distinct raw casings that normalize to the same term combine their counts
// before the frequency filter is applied.
func (e *Extractor) Extract(text string) []string {
	counts := make(map[string]int)
	for _, candidate := range scanCandidates(text) {
		counts[normalize(candidate)]++
	}

	var terms []string
	for term, count := range counts {
		if count < e.minFrequency {
			continue
		}
		words := strings.Split(term, " ")
		if leadStopwords[words[0]] || trailStopwords[words[len(words)-1]] {
			continue
		}
		terms = append(terms, term)
	}
	sort.Strings(terms)

	return terms
}

type token struct {
	word         string
	breaksBefore bool
	breaksAfter  bool
}

// scanCandidates walks the whitespace-separated tokens of text and collects
// contiguous runs of capitalized words. Join-words may bridge two
// capitalized words; any punctuation attached to a token terminates the
// run after it.
func scanCandidates(text string) []string {
	var candidates []string
	var run []string
	var pending []string

	flush := func() {
		if len(run) > 0 {
			candidates = append(candidates, strings.Join(run, " "))
		}
		run = nil
		pending = nil
	}

	for _, tok := range tokenize(text) {
		if tok.breaksBefore {
			flush()
		}
		switch {
		case capitalizedRe.MatchString(tok.word):
			if len(run) > 0 && len(pending) > 0 {
				run = append(run, pending...)
				pending = nil
			}
			run = append(run, tok.word)
		case len(run) > 0 && joinWords[tok.word]:
			pending = append(pending, tok.word)
		default:
			flush()
		}
		if tok.breaksAfter {
			flush()
		}
	}
	flush()

	return candidates
}

// tokenize splits text on whitespace and strips surrounding punctuation
// from each token. Leading punctuation breaks a candidate run before the
// token; trailing punctuation breaks it after.
func tokenize(text string) []token {
	fields := strings.Fields(text)
	tokens := make([]token, 0, len(fields))
	for _, field := range fields {
		word := strings.TrimLeftFunc(field, isPunct)
		trimmed := strings.TrimRightFunc(word, isPunct)
		tokens = append(tokens, token{
			word:         trimmed,
			breaksBefore: word != field,
			breaksAfter:  trimmed != word,
		})
	}
	return tokens
}

func isPunct(r rune) bool {
	return !(r >= 'a' && r <= 'z') && !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9')
}

func normalize(term string) string {
	term = strings.ToLower(term)
	term = whitespaceRe.ReplaceAllString(term, " ")
	return strings.TrimSpace(term)
}
