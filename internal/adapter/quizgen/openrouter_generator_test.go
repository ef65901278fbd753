package quizgen

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quizcraft/internal/config"
	"quizcraft/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const validQuizJSON = `{
	"mcqs": [
		{
			"question": "What principle do stacks follow?",
			"options": ["LIFO", "FIFO", "Round robin", "Priority"],
			"answer": "LIFO"
		}
	],
	"true_false": [
		{"question": "Arrays provide constant-time access.", "answer": "True"}
	]
}`

func TestParseResponse_PlainJSON(t *testing.T) {
	quiz, err := ParseResponse(validQuizJSON)
	require.NoError(t, err)
	require.Len(t, quiz.MCQs, 1)
	assert.Equal(t, "LIFO", quiz.MCQs[0].Answer)
	require.Len(t, quiz.TrueFalse, 1)
	assert.Equal(t, domain.AnswerTrue, quiz.TrueFalse[0].Answer)
}

func TestParseResponse_StripsCodeFences(t *testing.T) {
	for _, wrapped := range []string{
		"```json\n" + validQuizJSON + "\n```",
		"```\n" + validQuizJSON + "\n```",
		"  \n```json\n" + validQuizJSON + "\n```\n  ",
	} {
		quiz, err := ParseResponse(wrapped)
		require.NoError(t, err)
		assert.Len(t, quiz.MCQs, 1)
	}
}

func TestParseResponse_MalformedJSON(t *testing.T) {
	_, err := ParseResponse("I could not generate a quiz, sorry!")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeUpstreamProvider, domainErr.Code)
}

func TestParseResponse_SchemaMismatch(t *testing.T) {
	cases := []string{
		`{"mcqs": []}`,                              // true_false missing
		`{"true_false": []}`,                        // mcqs missing
		`{"mcqs": null, "true_false": []}`,          // null is not an array
		`{"mcqs": "oops", "true_false": []}`,        // wrong type
		`{"questions": [], "statements": []}`,       // wrong field names
	}

	for _, body := range cases {
		_, err := ParseResponse(body)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr, "input: %s", body)
		assert.Equal(t, domain.CodeUpstreamProvider, domainErr.Code)
	}
}

func TestParseResponse_EmptyArraysAreValid(t *testing.T) {
	quiz, err := ParseResponse(`{"mcqs": [], "true_false": []}`)
	require.NoError(t, err)
	assert.NotNil(t, quiz.MCQs)
	assert.NotNil(t, quiz.TrueFalse)
	assert.Empty(t, quiz.MCQs)
	assert.Empty(t, quiz.TrueFalse)
}

func slowProviderGenerator(t *testing.T, delay, timeout time.Duration) *OpenRouterGenerator {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"mcqs\":[],\"true_false\":[]}"}}]}`))
	}))
	t.Cleanup(server.Close)

	generator, err := NewOpenRouterGenerator(config.ProviderConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
		Timeout: timeout,
	}, zap.NewNop())
	require.NoError(t, err)
	return generator
}

func TestGenerate_TimeoutIsProviderTimeoutError(t *testing.T) {
	generator := slowProviderGenerator(t, 2*time.Second, 50*time.Millisecond)

	_, err := generator.Generate(context.Background(), &domain.QuizRequest{
		SourceText: "Stacks follow LIFO.",
		Difficulty: domain.DifficultyEasy,
		MCQCount:   1,
		IncludeMCQ: true,
	})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeProviderTimeout, domainErr.Code)
}

func TestGenerate_SlowButWithinTimeoutSucceeds(t *testing.T) {
	generator := slowProviderGenerator(t, 20*time.Millisecond, 5*time.Second)

	quiz, err := generator.Generate(context.Background(), &domain.QuizRequest{
		SourceText: "Stacks follow LIFO.",
		Difficulty: domain.DifficultyEasy,
		MCQCount:   1,
		IncludeMCQ: true,
	})
	require.NoError(t, err)
	assert.Empty(t, quiz.MCQs)
	assert.Empty(t, quiz.TrueFalse)
}

func TestBuildPrompt_EmbedsRequest(t *testing.T) {
	req := &domain.QuizRequest{
		SourceText:       "Stacks follow LIFO.",
		Difficulty:       domain.DifficultyMedium,
		MCQCount:         5,
		TrueFalseCount:   3,
		IncludeMCQ:       true,
		IncludeTrueFalse: true,
	}

	prompt := BuildPrompt(req)

	assert.Contains(t, prompt, "Difficulty level: Medium")
	assert.Contains(t, prompt, "5 Multiple-Choice Questions")
	assert.Contains(t, prompt, "3 True/False questions")
	assert.Contains(t, prompt, "Stacks follow LIFO.")
	assert.Contains(t, prompt, "ONLY the JSON output")
}

func TestBuildPrompt_MCQOnly(t *testing.T) {
	req := &domain.QuizRequest{
		SourceText: "text",
		Difficulty: domain.DifficultyEasy,
		MCQCount:   2,
		IncludeMCQ: true,
	}

	prompt := BuildPrompt(req)

	assert.Contains(t, prompt, "2 Multiple-Choice Questions")
	assert.NotContains(t, prompt, "True/False questions.")
	assert.Contains(t, prompt, `"true_false": []`)
}
