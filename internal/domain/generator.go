package domain

import "context"

// QuizGenerator is the port for the external quiz-generation provider.
// Implementations return a *DomainError with CodeUpstreamProvider for any
// provider-side failure (bad status, malformed JSON, schema mismatch) so
// the orchestrator can decide to fall back locally.
type QuizGenerator interface {
	Generate(ctx context.Context, req *QuizRequest) (*GeneratedQuiz, error)
}
