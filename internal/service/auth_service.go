package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quizcraft/internal/config"
	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/logger"
	"quizcraft/internal/util"
	"quizcraft/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTypeAccess = "access"

var ErrInvalidToken = errors.New("invalid token")

// forgotPasswordMessage is returned for every forgot-password request,
// whether or not the account exists, to prevent email enumeration.
const forgotPasswordMessage = "If an account with this email exists, you will receive password reset instructions."

// AuthService defines the interface for authentication operations.
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Verify(ctx context.Context, tokenString string) (*domain.User, error)
	ForgotPassword(ctx context.Context, email string) string
	ValidateToken(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateToken(user *domain.User) (string, error)
	SeedAdminUser(ctx context.Context) error
}

type authServiceImpl struct {
	userRepo  domain.UserRepository
	validator *validation.Validator
	cfg       *config.Config
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo domain.UserRepository, cfg *config.Config) (AuthService, error) {
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("JWT secret is not configured")
	}
	return &authServiceImpl{
		userRepo:  userRepo,
		validator: validation.NewValidator(cfg.Auth.PasswordMinLength),
		cfg:       cfg,
	}, nil
}

// Signup validates the request, hashes the password and stores a new user.
// It returns the created user together with a fresh access token.
func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*domain.User, string, error) {
	if errs := s.validator.ValidateSignupRequest(req); len(errs) > 0 {
		return nil, "", errs
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", domain.NewInternalError("Failed to look up user", err)
	}
	if existing != nil {
		return nil, "", domain.NewConflictError("An account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", domain.NewInternalError("Failed to hash password", err)
	}

	user := &domain.User{
		ID:           util.NewULID(),
		Email:        email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Institution:  strings.TrimSpace(req.Institution),
		Role:         domain.RoleUser,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.userRepo.Insert(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.CreateToken(user)
	if err != nil {
		return nil, "", domain.NewInternalError("Failed to generate token", err)
	}

	logger.Get().Info("New user signed up", zap.String("user_id", user.ID), zap.String("email", user.Email))
	return user, token, nil
}

// Login authenticates an email/password pair. Unknown emails and wrong
// passwords produce the same error so accounts cannot be probed.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if errs := s.validator.ValidateLoginRequest(&dto.LoginRequest{Email: email, Password: password}); len(errs) > 0 {
		return nil, "", errs
	}

	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", domain.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return nil, "", domain.NewUnauthorizedError("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.NewUnauthorizedError("Invalid email or password")
	}

	token, err := s.CreateToken(user)
	if err != nil {
		return nil, "", domain.NewInternalError("Failed to generate token", err)
	}

	logger.Get().Info("User logged in", zap.String("user_id", user.ID))
	return user, token, nil
}

// Verify resolves a bearer token to its user record.
func (s *authServiceImpl) Verify(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := s.ValidateToken(ctx, tokenString)
	if err != nil {
		return nil, domain.NewUnauthorizedError("Invalid token")
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return nil, domain.NewUnauthorizedError("Invalid token")
	}
	return user, nil
}

// ForgotPassword always returns the same message regardless of whether the
// account exists. Actual reset delivery is out of scope; a hit is logged
// so operators can see the request.
func (s *authServiceImpl) ForgotPassword(ctx context.Context, email string) string {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err == nil && user != nil {
		logger.Get().Info("Password reset requested", zap.String("user_id", user.ID))
	}
	return forgotPasswordMessage
}

// CreateToken issues a signed HS256 access token carrying the user ID and
// role.
func (s *authServiceImpl) CreateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    user.ID,
		Role:      user.Role,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Auth.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.JWTSecret))
}

// ValidateToken parses and verifies a token's signature and registered
// claims.
func (s *authServiceImpl) ValidateToken(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Warn("Token expired", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != tokenTypeAccess {
		return nil, fmt.Errorf("%w: not an access token", ErrInvalidToken)
	}
	return claims, nil
}

// SeedAdminUser inserts the configured admin account. The user store is
// in-memory, so this runs on every start; an already-seeded admin is not
// an error.
func (s *authServiceImpl) SeedAdminUser(ctx context.Context) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &domain.User{
		ID:           util.NewULID(),
		Email:        strings.ToLower(s.cfg.Admin.Email),
		FirstName:    "Admin",
		LastName:     "User",
		Institution:  "QuizCraft AI",
		Role:         domain.RoleAdmin,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	err = s.userRepo.Insert(ctx, admin)
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) && domainErr.Code == domain.CodeConflict {
		return nil
	}
	return err
}

// ToUserResponse converts a user record to its public API view.
func ToUserResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Institution: user.Institution,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt.UTC().Format(time.RFC3339),
	}
}
