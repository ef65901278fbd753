// Package synth implements the local fallback quiz generator: key-term
// extraction, sentence segmentation, and templated question synthesis.
// It is used whenever the external provider is unconfigured or fails.
package synth

import (
	"fmt"
	"math/rand"
	"strings"

	"quizcraft/internal/domain"
)

// minMCQSentenceLength is the trimmed length a sentence must reach to be
// usable as MCQ material.
const minMCQSentenceLength = 50

// answerFragmentLength is how much of the source sentence the Easy-tier
// correct option quotes.
const answerFragmentLength = 50

// Synthesizer builds quizzes from raw text using per-difficulty templates.
// The random source is injected so tests can fix a seed.
type Synthesizer struct {
	rng *rand.Rand
}

func NewSynthesizer(rng *rand.Rand) *Synthesizer {
	return &Synthesizer{rng: rng}
}

// Generate runs the full fallback pipeline for one request. Counts are
// bounded by the available material: MCQs by usable sentences, true/false
// items by extracted key terms.
func (s *Synthesizer) Generate(req *domain.QuizRequest) *domain.GeneratedQuiz {
	sentences := SplitSentences(req.SourceText)
	terms := ExtractKeyTerms(req.SourceText)

	quiz := &domain.GeneratedQuiz{
		MCQs:      []domain.MCQ{},
		TrueFalse: []domain.TrueFalseItem{},
	}
	if req.IncludeMCQ {
		quiz.MCQs = s.MCQs(sentences, terms, req.Difficulty, req.MCQCount)
	}
	if req.IncludeTrueFalse {
		quiz.TrueFalse = s.TrueFalse(terms, req.Difficulty, req.TrueFalseCount)
	}
	return quiz
}

// MCQs synthesizes min(count, len(sentences)) multiple-choice questions.
// Each question samples a previously unused sentence, preferring ones of
// at least minMCQSentenceLength characters; the sampling loop is bounded
// and degrades to shorter sentences rather than spinning.
func (s *Synthesizer) MCQs(sentences []string, terms []string, difficulty domain.Difficulty, count int) []domain.MCQ {
	mcqs := []domain.MCQ{}
	used := make(map[int]bool)

	for i := 0; i < min(count, len(sentences)); i++ {
		index, ok := s.pickSentence(sentences, used)
		if !ok {
			break
		}
		used[index] = true
		sentence := strings.TrimSpace(sentences[index])

		var question, correct string
		var distractors [3]string

		switch difficulty {
		case domain.DifficultyEasy:
			// Simple recall referencing a key term and a fragment of the
			// sampled sentence.
			question = fmt.Sprintf("According to the material, what is mentioned about %s?", termAt(terms, i, "concept"))
			correct = fmt.Sprintf("It is discussed in relation to %s...", firstRunes(sentence, answerFragmentLength))
			distractors = [3]string{
				fmt.Sprintf("It is primarily used for %s", termAt(terms, i+1, "analysis")),
				fmt.Sprintf("It relates to %s", termAt(terms, i+2, "theory")),
				"It is not mentioned in the material",
			}
		case domain.DifficultyMedium:
			// Application questions use a fixed template set.
			question = "How does the material suggest applying the concepts discussed?"
			correct = "Through the methods described in the text"
			distractors = [3]string{
				"By ignoring the theoretical framework",
				"Only in laboratory settings",
				"Without considering practical implications",
			}
		default:
			// Analysis questions for the Hard tier.
			question = fmt.Sprintf("What can be inferred from the discussion of %s?", termAt(terms, i, "the main concepts"))
			correct = "The concepts require critical analysis and application"
			distractors = [3]string{
				"The concepts are purely theoretical",
				"The concepts are outdated",
				"The concepts lack empirical support",
			}
		}

		options := []string{correct, distractors[0], distractors[1], distractors[2]}
		s.rng.Shuffle(len(options), func(a, b int) {
			options[a], options[b] = options[b], options[a]
		})

		mcqs = append(mcqs, domain.MCQ{
			Question: question,
			Options:  options,
			Answer:   correct,
		})
	}

	return mcqs
}

// TrueFalse synthesizes min(count, len(terms)) statements, alternating
// deterministically: even indices assert something true about a key term,
// odd indices assert something false.
func (s *Synthesizer) TrueFalse(terms []string, difficulty domain.Difficulty, count int) []domain.TrueFalseItem {
	items := []domain.TrueFalseItem{}

	for i := 0; i < min(count, len(terms)); i++ {
		term := terms[i]
		var question, answer string

		if i%2 == 0 {
			switch difficulty {
			case domain.DifficultyEasy:
				question = fmt.Sprintf("The material discusses %s.", term)
			case domain.DifficultyMedium:
				question = fmt.Sprintf("The concept of %s is explained within the educational context.", term)
			default:
				question = fmt.Sprintf("The material provides sufficient detail about %s for practical application.", term)
			}
			answer = domain.AnswerTrue
		} else {
			switch difficulty {
			case domain.DifficultyEasy:
				question = fmt.Sprintf("The material completely ignores the topic of %s.", term)
			case domain.DifficultyMedium:
				question = fmt.Sprintf("The material suggests that %s is irrelevant to the subject.", term)
			default:
				question = fmt.Sprintf("The material concludes that %s has no practical applications.", term)
			}
			answer = domain.AnswerFalse
		}

		items = append(items, domain.TrueFalseItem{Question: question, Answer: answer})
	}

	return items
}

// pickSentence samples an unused sentence index, preferring sentences of
// at least minMCQSentenceLength. Rejection sampling is capped at
// 10*len(sentences) attempts; when it exhausts (all long sentences used,
// or none exist) any unused sentence is taken instead, so pathological
// inputs terminate and short material still yields questions.
func (s *Synthesizer) pickSentence(sentences []string, used map[int]bool) (int, bool) {
	maxAttempts := 10 * len(sentences)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		index := s.rng.Intn(len(sentences))
		if used[index] {
			continue
		}
		if len(strings.TrimSpace(sentences[index])) < minMCQSentenceLength {
			continue
		}
		return index, true
	}
	for index := range sentences {
		if !used[index] {
			return index, true
		}
	}
	return 0, false
}

// termAt cycles through terms by index, falling back to a generic
// placeholder when no key terms were extracted.
func termAt(terms []string, i int, fallback string) string {
	if len(terms) == 0 {
		return fallback
	}
	return terms[i%len(terms)]
}

// firstRunes returns at most n runes of s, so multi-byte text is never cut
// mid-character.
func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
