// Package quizgen adapts the external OpenAI-compatible chat-completion
// provider (OpenRouter) to the domain.QuizGenerator port.
package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"quizcraft/internal/config"
	"quizcraft/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// OpenRouterGenerator implements domain.QuizGenerator over an
// OpenAI-compatible chat-completion endpoint.
type OpenRouterGenerator struct {
	llm     llms.Model
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewOpenRouterGenerator creates a generator from provider configuration.
// The configured timeout is applied per call as a context deadline so the
// adapter can tell an expired call apart from other provider failures.
func NewOpenRouterGenerator(cfg config.ProviderConfig, logger *zap.Logger) (*OpenRouterGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("provider API key cannot be empty")
	}

	llm, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider client: %w", err)
	}

	return &OpenRouterGenerator{
		llm:     llm,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

// Generate sends one chat-completion request and parses the returned JSON
// quiz. An expired call is reported as a provider-timeout domain error,
// which the orchestrator surfaces to the caller; every other provider-side
// failure is an upstream-provider error so the orchestrator can fall back
// locally.
func (g *OpenRouterGenerator) Generate(ctx context.Context, req *domain.QuizRequest) (*domain.GeneratedQuiz, error) {
	prompt := BuildPrompt(req)

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	completion, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt,
		llms.WithMaxTokens(2000),
		llms.WithTemperature(0.3),
	)
	if err != nil {
		if isTimeout(err) {
			g.logger.Warn("Provider call timed out",
				zap.String("model", g.model),
				zap.Duration("timeout", g.timeout),
			)
			return nil, domain.NewProviderTimeoutError(err)
		}
		return nil, domain.NewUpstreamProviderError("provider call failed", err)
	}

	g.logger.Debug("Provider response received",
		zap.String("model", g.model),
		zap.Int("response_length", len(completion)),
	)

	quiz, err := ParseResponse(completion)
	if err != nil {
		g.logger.Warn("Failed to parse provider response",
			zap.Error(err),
			zap.String("response_snippet", snippet(completion, 200)),
		)
		return nil, err
	}
	return quiz, nil
}

var difficultyInstructions = map[domain.Difficulty]string{
	domain.DifficultyEasy:   "basic recall and simple concepts",
	domain.DifficultyMedium: "understanding, application, and moderate reasoning",
	domain.DifficultyHard:   "critical thinking, deeper reasoning, and applied problem-solving",
}

// BuildPrompt constructs the generation prompt embedding difficulty,
// requested counts and the source text, and instructs the model to respond
// with bare JSON matching the GeneratedQuiz schema.
func BuildPrompt(req *domain.QuizRequest) string {
	var questionTypes strings.Builder
	if req.IncludeMCQ {
		fmt.Fprintf(&questionTypes, "- %d Multiple-Choice Questions (MCQs) with exactly 4 options each.\n", req.MCQCount)
	}
	if req.IncludeTrueFalse {
		fmt.Fprintf(&questionTypes, "- %d True/False questions.\n", req.TrueFalseCount)
	}

	mcqSchema := `"mcqs": [],`
	if req.IncludeMCQ {
		mcqSchema = `"mcqs": [
{
"question": "...",
"options": ["A", "B", "C", "D"],
"answer": "..."
}
],`
	}
	trueFalseSchema := `"true_false": []`
	if req.IncludeTrueFalse {
		trueFalseSchema = `"true_false": [
{
"question": "...",
"answer": "True/False"
}
]`
	}

	return fmt.Sprintf(`You are an expert educational content creator. Your task is to generate high-quality quiz questions from the provided study material. The user uploading the material is a teacher, and your output should be ready for classroom use.

Guidelines:

Difficulty level: %s (%s).

Types of questions to generate:
%s
For MCQs:
- Ensure only one correct answer.
- Distractor options should be plausible but incorrect.
- Clearly mark the correct answer.

For True/False:
- Keep statements factually accurate and based on the provided content.
- Clearly state the correct answer (True/False).

Output format must be structured JSON in this schema:
{
%s
%s
}

Study material:
%s

Please respond with ONLY the JSON output, no additional text or explanations.`,
		req.Difficulty, difficultyInstructions[req.Difficulty],
		questionTypes.String(), mcqSchema, trueFalseSchema, req.SourceText)
}

// ParseResponse extracts a GeneratedQuiz from the raw completion text.
// Markdown code fences are stripped before parsing. Both "mcqs" and
// "true_false" must be present as JSON arrays; anything else is a schema
// mismatch reported as an upstream-provider error.
func ParseResponse(responseText string) (*domain.GeneratedQuiz, error) {
	cleaned := stripCodeFences(responseText)

	var shape map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &shape); err != nil {
		return nil, domain.NewUpstreamProviderError("provider returned malformed JSON", err)
	}

	for _, field := range []string{"mcqs", "true_false"} {
		raw, ok := shape[field]
		if !ok || !isJSONArray(raw) {
			return nil, domain.NewUpstreamProviderError(
				fmt.Sprintf("provider response missing %q array", field), nil)
		}
	}

	var quiz domain.GeneratedQuiz
	if err := json.Unmarshal([]byte(cleaned), &quiz); err != nil {
		return nil, domain.NewUpstreamProviderError("provider quiz did not match expected schema", err)
	}
	if quiz.MCQs == nil {
		quiz.MCQs = []domain.MCQ{}
	}
	if quiz.TrueFalse == nil {
		quiz.TrueFalse = []domain.TrueFalseItem{}
	}
	return &quiz, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```json"))
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}

// isTimeout reports whether err is a deadline expiry, either from the
// per-call context or from the transport.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return strings.HasPrefix(trimmed, "[")
}

func snippet(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var _ domain.QuizGenerator = (*OpenRouterGenerator)(nil)
