package synth

import (
	"sort"
	"strings"
	"unicode"
)

// stopwords is the fixed set of common English function words excluded from
// key-term extraction.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(
		"the a an and or but in on at to for of with by is are was were be been " +
			"have has had do does did will would should could may might can cannot " +
			"this that these those i you he she it we they my your his her its our " +
			"their me him them us who what when where why how all any both each few " +
			"more most other some such no nor not only own same so than too very " +
			"just now also here there then up out down over under above below into " +
			"from through during before after between among within without") {
		stopwords[w] = struct{}{}
	}
}

const (
	minTermLength    = 4
	minTermFrequency = 2
	maxKeyTerms      = 10
)

// ExtractKeyTerms returns the salient content words of text, ranked by
// descending frequency. A term qualifies when it is at least four letters
// long, is not a stopword, and occurs at least twice. Ties keep
// first-encountered order, so the result is deterministic for a fixed
// input. At most ten terms are returned; fewer (or none) when the text is
// too short to qualify any.
func ExtractKeyTerms(text string) []string {
	counts := make(map[string]int)
	var order []string

	for _, token := range tokenize(strings.ToLower(text)) {
		if len(token) < minTermLength {
			continue
		}
		if _, ok := stopwords[token]; ok {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	var terms []string
	for _, w := range order {
		if counts[w] >= minTermFrequency {
			terms = append(terms, w)
		}
	}

	sort.SliceStable(terms, func(i, j int) bool {
		return counts[terms[i]] > counts[terms[j]]
	})

	if len(terms) > maxKeyTerms {
		terms = terms[:maxKeyTerms]
	}
	return terms
}

// tokenize splits text into maximal runs of letters.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
