package handler

import (
	"strings"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/middleware"
	"quizcraft/internal/service"

	"github.com/gofiber/fiber/v2"
)

// bearerToken extracts the token from the Authorization header, or ""
// when the header is missing or not a Bearer credential.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get(middleware.AuthorizationHeader)
	if !strings.HasPrefix(authHeader, middleware.BearerSchema) {
		return ""
	}
	return strings.TrimPrefix(authHeader, middleware.BearerSchema)
}

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup godoc
// @Summary Create an account
// @Description Registers a new user and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}

	user, token, err := h.authService.Signup(c.Context(), &req)
	if err != nil {
		return err
	}

	userResp := service.ToUserResponse(user)
	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{
		Success: true,
		User:    &userResp,
		Token:   token,
	})
}

// Login godoc
// @Summary Log in
// @Description Authenticates an email/password pair and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}

	user, token, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	userResp := service.ToUserResponse(user)
	return c.JSON(dto.AuthResponse{
		Success: true,
		User:    &userResp,
		Token:   token,
	})
}

// Verify godoc
// @Summary Verify token
// @Description Resolves the bearer token to its user record
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /auth/verify [get]
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return domain.NewUnauthorizedError("Authorization header is missing")
	}

	user, err := h.authService.Verify(c.Context(), token)
	if err != nil {
		return err
	}

	userResp := service.ToUserResponse(user)
	return c.JSON(dto.AuthResponse{
		Success: true,
		User:    &userResp,
	})
}

// Logout godoc
// @Summary Log out
// @Description Stateless logout; clients discard the token
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(dto.MessageResponse{Success: true, Message: "Logged out successfully"})
}

// ForgotPassword godoc
// @Summary Request a password reset
// @Description Always succeeds with a generic message so accounts cannot be enumerated
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.MessageResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}

	message := h.authService.ForgotPassword(c.Context(), req.Email)
	return c.JSON(dto.MessageResponse{Success: true, Message: message})
}
