package service

import (
	"context"
	"testing"
	"time"

	"quizcraft/internal/config"
	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminTestConfig() config.AdminConfig {
	return config.AdminConfig{
		Email:                    "admin@quizcraft.ai",
		Password:                 "admin123",
		MaxQuestionsPerQuiz:      10,
		EnablePDFUpload:          true,
		EnableFallbackGeneration: true,
	}
}

func TestAdminService_GetStats(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryUserRepository()
	require.NoError(t, repo.Insert(ctx, &domain.User{ID: "u1", Email: "a@example.com"}))
	require.NoError(t, repo.Insert(ctx, &domain.User{ID: "u2", Email: "b@example.com"}))

	svc := NewAdminService(repo, adminTestConfig(), "", nil)
	svc.RecordQuizGenerated("u1")
	svc.RecordQuizGenerated("u1")
	svc.RecordQuizGenerated("u2")
	svc.RecordProviderCall()

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, int64(3), stats.TotalQuizzes)
	assert.Equal(t, 2, stats.ActiveUsers)
	assert.Equal(t, int64(1), stats.APIUsage)
}

func TestAdminService_GetConfig_MasksAPIKey(t *testing.T) {
	repo := repository.NewMemoryUserRepository()

	t.Run("KeyConfigured", func(t *testing.T) {
		svc := NewAdminService(repo, adminTestConfig(), "sk-or-v1-secret", nil)
		cfg := svc.GetConfig()
		assert.Equal(t, maskedAPIKey, cfg.ProviderAPIKey)
		assert.NotContains(t, cfg.ProviderAPIKey, "secret")
	})

	t.Run("NoKey", func(t *testing.T) {
		svc := NewAdminService(repo, adminTestConfig(), "", nil)
		cfg := svc.GetConfig()
		assert.Empty(t, cfg.ProviderAPIKey)
	})
}

func TestAdminService_UpdateAPIConfig(t *testing.T) {
	repo := repository.NewMemoryUserRepository()

	var applied string
	svc := NewAdminService(repo, adminTestConfig(), "", func(apiKey string) error {
		applied = apiKey
		return nil
	})

	require.NoError(t, svc.UpdateAPIConfig(&dto.UpdateAPIConfigRequest{ProviderAPIKey: "sk-or-v1-new"}))
	assert.Equal(t, "sk-or-v1-new", applied)
	assert.Equal(t, maskedAPIKey, svc.GetConfig().ProviderAPIKey)

	// An empty key is a no-op, not a credential wipe.
	require.NoError(t, svc.UpdateAPIConfig(&dto.UpdateAPIConfigRequest{}))
	assert.Equal(t, "sk-or-v1-new", applied)
}

func TestAdminService_UpdateSystemConfig(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	svc := NewAdminService(repo, adminTestConfig(), "", nil)

	max := 5
	pdfOff := false
	svc.UpdateSystemConfig(&dto.UpdateSystemConfigRequest{
		MaxQuestionsPerQuiz: &max,
		EnablePDFUpload:     &pdfOff,
	})

	assert.Equal(t, 5, svc.MaxQuestionsPerQuiz())
	assert.False(t, svc.PDFUploadEnabled())
	assert.True(t, svc.FallbackEnabled(), "unspecified toggle keeps its value")

	t.Run("RejectsOutOfRangeMax", func(t *testing.T) {
		bad := 0
		svc.UpdateSystemConfig(&dto.UpdateSystemConfigRequest{MaxQuestionsPerQuiz: &bad})
		assert.Equal(t, 5, svc.MaxQuestionsPerQuiz())

		huge := 1000
		svc.UpdateSystemConfig(&dto.UpdateSystemConfigRequest{MaxQuestionsPerQuiz: &huge})
		assert.Equal(t, 5, svc.MaxQuestionsPerQuiz())
	})
}

func TestAdminService_ListUsers(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryUserRepository()
	require.NoError(t, repo.Insert(ctx, &domain.User{
		ID: "u1", Email: "a@example.com", FirstName: "Ada", Role: domain.RoleUser, CreatedAt: time.Now(),
	}))
	require.NoError(t, repo.Insert(ctx, &domain.User{
		ID: "u2", Email: "b@example.com", FirstName: "Grace", Role: domain.RoleAdmin, CreatedAt: time.Now(),
	}))

	svc := NewAdminService(repo, adminTestConfig(), "", nil)
	resp, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.Len(t, resp.Users, 2)
	assert.Equal(t, "u1", resp.Users[0].ID)
	assert.Equal(t, "u2", resp.Users[1].ID)
}
