package persona

import (
	"strings"
	"unicode"
)

// stopwords excluded from salient-term extraction.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "that": true, "with": true,
	"this": true, "from": true, "have": true, "are": true, "was": true,
	"were": true, "will": true, "would": true, "should": true, "could": true,
	"their": true, "there": true, "these": true, "those": true, "been": true,
	"being": true, "into": true, "about": true, "which": true, "while": true,
	"when": true, "where": true, "what": true, "your": true, "more": true,
	"most": true, "some": true, "such": true, "than": true, "then": true,
	"them": true, "they": true, "also": true, "each": true, "other": true,
	"over": true, "under": true, "between": true, "through": true,
	"prepare": true, "preparing": true, "focusing": true, "using": true,
	"based": true, "given": true, "make": true, "need": true, "needs": true,
}

const minTermLen = 4

// ExtractTerms pulls salient terms from free text: lowercase word tokens,
// stopword-filtered, weighted by frequency and term length. The result maps
// term to weight > 0.
func ExtractTerms(text string) map[string]float64 {
	counts := make(map[string]int)
	for _, tok := range tokenize(text) {
		if len(tok) < minTermLen || stopwords[tok] {
			continue
		}
		counts[tok]++
	}

	terms := make(map[string]float64, len(counts))
	for term, n := range counts {
		terms[term] = float64(n) * (1 + float64(len(term))/16)
	}
	return terms
}

// tokenize lowercases and splits on non-alphanumeric runes.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
