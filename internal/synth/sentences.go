package synth

import "strings"

// minSentenceLength is the trimmed length below which a fragment is
// discarded as too short to build a question from.
const minSentenceLength = 20

// SplitSentences splits text into candidate sentences on runs of
// sentence-ending punctuation, dropping fragments whose trimmed length is
// at most minSentenceLength. Document order is preserved and duplicates
// are kept.
func SplitSentences(text string) []string {
	var sentences []string
	for _, fragment := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		if len(strings.TrimSpace(fragment)) > minSentenceLength {
			sentences = append(sentences, fragment)
		}
	}
	return sentences
}
