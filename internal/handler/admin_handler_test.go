package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quizcraft/internal/config"
	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/middleware"
	"quizcraft/internal/repository"
	"quizcraft/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminTestApp(t *testing.T) (*fiber.App, service.AdminService) {
	t.Helper()

	repo := repository.NewMemoryUserRepository()
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, &domain.User{ID: "u1", Email: "a@example.com", Role: domain.RoleUser}))
	require.NoError(t, repo.Insert(ctx, &domain.User{ID: "u2", Email: "admin@quizcraft.ai", Role: domain.RoleAdmin}))

	adminService := service.NewAdminService(repo, config.AdminConfig{
		MaxQuestionsPerQuiz:      10,
		EnablePDFUpload:          true,
		EnableFallbackGeneration: true,
	}, "sk-or-v1-secret", nil)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := NewAdminHandler(adminService)

	admin := app.Group("/api/admin")
	admin.Get("/stats", h.GetStats)
	admin.Get("/config", h.GetConfig)
	admin.Post("/config/api", h.UpdateAPIConfig)
	admin.Post("/config/system", h.UpdateSystemConfig)
	admin.Get("/users", h.ListUsers)
	return app, adminService
}

func TestAdminHandler_GetStats(t *testing.T) {
	app, adminService := newAdminTestApp(t)
	adminService.RecordQuizGenerated("u1")
	adminService.RecordProviderCall()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.AdminStatsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.TotalUsers)
	assert.Equal(t, int64(1), body.TotalQuizzes)
	assert.Equal(t, 1, body.ActiveUsers)
	assert.Equal(t, int64(1), body.APIUsage)
}

func TestAdminHandler_GetConfig_MasksKey(t *testing.T) {
	app, _ := newAdminTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/config", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.AdminConfigResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotContains(t, body.ProviderAPIKey, "secret")
	assert.Equal(t, 10, body.MaxQuestionsPerQuiz)
}

func TestAdminHandler_UpdateSystemConfig(t *testing.T) {
	app, adminService := newAdminTestApp(t)

	max := 5
	resp := postJSON(t, app, "/api/admin/config/system", dto.UpdateSystemConfigRequest{MaxQuestionsPerQuiz: &max})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.AdminConfigResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 5, body.MaxQuestionsPerQuiz)
	assert.Equal(t, 5, adminService.MaxQuestionsPerQuiz())
}

func TestAdminHandler_UpdateAPIConfig(t *testing.T) {
	app, _ := newAdminTestApp(t)

	resp := postJSON(t, app, "/api/admin/config/api", dto.UpdateAPIConfigRequest{ProviderAPIKey: "sk-or-v1-new"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.MessageResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
}

func TestAdminHandler_ListUsers(t *testing.T) {
	app, _ := newAdminTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.AdminUsersResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	require.Len(t, body.Users, 2)
	assert.Equal(t, "u1", body.Users[0].ID)
}
