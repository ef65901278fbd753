package domain

// Difficulty is the requested difficulty tier for generated questions.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// IsValid reports whether d is one of the three supported tiers.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// MCQ is a multiple-choice question with exactly four options.
// Answer is always equal to one of Options.
type MCQ struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// TrueFalseItem is a true/false statement. Answer is "True" or "False".
type TrueFalseItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

const (
	AnswerTrue  = "True"
	AnswerFalse = "False"
)

// GeneratedQuiz is the result of one generation request. It is constructed
// per request, returned, and discarded; nothing is persisted.
type GeneratedQuiz struct {
	MCQs      []MCQ           `json:"mcqs"`
	TrueFalse []TrueFalseItem `json:"true_false"`
}

// QuizRequest describes one quiz-generation request after validation.
// At least one of IncludeMCQ/IncludeTrueFalse must be true.
type QuizRequest struct {
	SourceText       string
	Difficulty       Difficulty
	MCQCount         int
	TrueFalseCount   int
	IncludeMCQ       bool
	IncludeTrueFalse bool
}

// QuizResult wraps a generated quiz with the origin of its content.
// FallbackUsed is true when the local synthesizer produced the quiz because
// the provider was unavailable or misbehaved.
type QuizResult struct {
	Quiz         *GeneratedQuiz
	FallbackUsed bool
}
