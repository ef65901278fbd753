package dto

import (
	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims defines the custom claims embedded in issued JWTs.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"` // currently always "access"
	jwt.RegisteredClaims
}

// LoginRequest represents the request body for logging in.
// @Description Request body for user login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest represents the request body for creating an account.
// @Description Request body for user signup
type SignupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Institution string `json:"institution,omitempty"`
}

// UserResponse is the public view of a user record. The password hash is
// never serialized.
type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Institution string `json:"institution,omitempty"`
	Role        string `json:"role"`
	CreatedAt   string `json:"createdAt"`
}

// AuthResponse is the envelope for login, signup and verify responses.
// @Description Response body for authentication operations
type AuthResponse struct {
	Success bool          `json:"success"`
	User    *UserResponse `json:"user,omitempty"`
	Token   string        `json:"token,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// MessageResponse represents a generic success message response.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ForgotPasswordRequest represents the request body for a password reset.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}
