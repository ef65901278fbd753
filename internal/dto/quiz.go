package dto

import "quizcraft/internal/domain"

// GenerateQuizRequest represents the request body for quiz generation.
// Field names follow the public API contract (snake_case, pdf_text for the
// pasted or extracted study text).
// @Description Request body for generating a quiz
type GenerateQuizRequest struct {
	DifficultyLevel  string `json:"difficulty_level"`
	PDFText          string `json:"pdf_text"`
	MCQCount         *int   `json:"mcq_count,omitempty"`
	TrueFalseCount   *int   `json:"true_false_count,omitempty"`
	IncludeMCQ       *bool  `json:"include_mcq,omitempty"`
	IncludeTrueFalse *bool  `json:"include_true_false,omitempty"`
}

// Defaults applied when optional fields are omitted.
const (
	DefaultMCQCount       = 3
	DefaultTrueFalseCount = 2
)

// ToDomain applies defaults and converts the wire request to the domain
// representation.
func (r *GenerateQuizRequest) ToDomain() *domain.QuizRequest {
	req := &domain.QuizRequest{
		SourceText:       r.PDFText,
		Difficulty:       domain.Difficulty(r.DifficultyLevel),
		MCQCount:         DefaultMCQCount,
		TrueFalseCount:   DefaultTrueFalseCount,
		IncludeMCQ:       true,
		IncludeTrueFalse: true,
	}
	if r.MCQCount != nil {
		req.MCQCount = *r.MCQCount
	}
	if r.TrueFalseCount != nil {
		req.TrueFalseCount = *r.TrueFalseCount
	}
	if r.IncludeMCQ != nil {
		req.IncludeMCQ = *r.IncludeMCQ
	}
	if r.IncludeTrueFalse != nil {
		req.IncludeTrueFalse = *r.IncludeTrueFalse
	}
	return req
}

// GenerateQuizResponse is the envelope for quiz generation responses.
// @Description Response body for quiz generation
type GenerateQuizResponse struct {
	Success bool                  `json:"success"`
	Quiz    *domain.GeneratedQuiz `json:"quiz,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// PDFExtractResponse is returned by the PDF upload endpoint. Text currently
// carries instructional placeholder content rather than real extraction.
type PDFExtractResponse struct {
	Success         bool        `json:"success"`
	Text            string      `json:"text"`
	Filename        string      `json:"filename"`
	FileSize        int64       `json:"fileSize"`
	Pages           int         `json:"pages"`
	ExtractedLength int         `json:"extractedLength"`
	Metadata        PDFMetadata `json:"metadata"`
	Note            string      `json:"note"`
}

// PDFMetadata describes the uploaded document.
type PDFMetadata struct {
	Title  string  `json:"title"`
	Author *string `json:"author"`
	Pages  int     `json:"pages"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
