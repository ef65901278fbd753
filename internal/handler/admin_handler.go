package handler

import (
	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles admin panel HTTP requests. All routes are gated by
// the admin-role middleware.
type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GetStats godoc
// @Summary System statistics
// @Description Returns user, quiz and provider usage counters
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AdminStatsResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.adminService.GetStats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// GetConfig godoc
// @Summary Runtime configuration
// @Description Returns the current settings with the provider key masked
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AdminConfigResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /admin/config [get]
func (h *AdminHandler) GetConfig(c *fiber.Ctx) error {
	return c.JSON(h.adminService.GetConfig())
}

// UpdateAPIConfig godoc
// @Summary Update provider credential
// @Description Replaces the provider API key at runtime
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateAPIConfigRequest true "New credential"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /admin/config/api [post]
func (h *AdminHandler) UpdateAPIConfig(c *fiber.Ctx) error {
	var req dto.UpdateAPIConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}

	if err := h.adminService.UpdateAPIConfig(&req); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "API configuration updated"})
}

// UpdateSystemConfig godoc
// @Summary Update system settings
// @Description Updates quiz limits and feature toggles
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateSystemConfigRequest true "Settings to change"
// @Success 200 {object} dto.AdminConfigResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /admin/config/system [post]
func (h *AdminHandler) UpdateSystemConfig(c *fiber.Ctx) error {
	var req dto.UpdateSystemConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}

	h.adminService.UpdateSystemConfig(&req)
	return c.JSON(h.adminService.GetConfig())
}

// ListUsers godoc
// @Summary List accounts
// @Description Returns all registered users in signup order
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AdminUsersResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.adminService.ListUsers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(users)
}
