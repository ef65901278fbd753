package middleware

import (
	"strings"

	"quizcraft/internal/domain"
	"quizcraft/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID" // key for the authenticated user ID in fiber.Ctx locals
	UserRoleKey         = "userRole"
)

// Protected requires a valid Bearer access token. On success the user ID
// and role from the token are stored in the request locals.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return domain.NewUnauthorizedError("Authorization header is missing")
		}
		if !strings.HasPrefix(authHeader, BearerSchema) {
			return domain.NewUnauthorizedError("Authorization scheme is not Bearer")
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return domain.NewUnauthorizedError("Token is empty")
		}

		claims, err := authService.ValidateToken(c.Context(), tokenString)
		if err != nil {
			return domain.NewUnauthorizedError("Invalid or expired token")
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(UserRoleKey, claims.Role)
		return c.Next()
	}
}

// AdminOnly requires that Protected already ran and that the token carries
// the admin role. Role comes from the signed token, never from the request.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(UserRoleKey).(string)
		if role != domain.RoleAdmin {
			return domain.NewForbiddenError("Admin access required")
		}
		return c.Next()
	}
}

// UserID returns the authenticated user ID stored by Protected, or "" for
// an unauthenticated request.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}
