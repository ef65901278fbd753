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
	"golang.org/x/crypto/bcrypt"
)

// mockUserRepo is a function-field mock of domain.UserRepository for tests
// that need to force specific repository behavior.
type mockUserRepo struct {
	InsertFunc      func(ctx context.Context, user *domain.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	ListFunc        func(ctx context.Context) ([]*domain.User, error)
	CountFunc       func(ctx context.Context) (int, error)
}

func (m *mockUserRepo) Insert(ctx context.Context, user *domain.User) error {
	return m.InsertFunc(ctx, user)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.FindByEmailFunc(ctx, email)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	return m.ListFunc(ctx)
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	return m.CountFunc(ctx)
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:         "test-signing-key",
			TokenTTL:          time.Hour,
			PasswordMinLength: 8,
		},
		Admin: config.AdminConfig{
			Email:    "admin@quizcraft.ai",
			Password: "admin123",
		},
	}
}

func newTestAuthService(t *testing.T) (AuthService, domain.UserRepository) {
	t.Helper()
	repo := repository.NewMemoryUserRepository()
	svc, err := NewAuthService(repo, testConfig())
	require.NoError(t, err)
	return svc, repo
}

func validSignup() *dto.SignupRequest {
	return &dto.SignupRequest{
		Email:       "student@example.com",
		Password:    "correct-horse",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Institution: "Analytical Engine U",
	}
}

func TestAuthService_RequiresJWTSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecret = ""

	_, err := NewAuthService(repository.NewMemoryUserRepository(), cfg)
	assert.Error(t, err)
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, _ := newTestAuthService(t)

		user, token, err := svc.Signup(ctx, validSignup())
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "student@example.com", user.Email)
		assert.Equal(t, domain.RoleUser, user.Role)
		assert.NotEmpty(t, token)

		// The stored hash must verify against the original password.
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct-horse")))
	})

	t.Run("NormalizesEmailCase", func(t *testing.T) {
		svc, _ := newTestAuthService(t)

		req := validSignup()
		req.Email = "Student@Example.COM"
		user, _, err := svc.Signup(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "student@example.com", user.Email)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		svc, _ := newTestAuthService(t)

		_, _, err := svc.Signup(ctx, validSignup())
		require.NoError(t, err)

		_, _, err = svc.Signup(ctx, validSignup())
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeConflict, domainErr.Code)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		svc, _ := newTestAuthService(t)

		req := validSignup()
		req.Password = "short"
		_, _, err := svc.Signup(ctx, req)

		var errs domain.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "password", errs[0].Field)
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		svc, _ := newTestAuthService(t)

		req := validSignup()
		req.Email = "not-an-email"
		_, _, err := svc.Signup(ctx, req)

		var errs domain.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "email", errs[0].Field)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, _ := newTestAuthService(t)
		_, _, err := svc.Signup(ctx, validSignup())
		require.NoError(t, err)

		user, token, err := svc.Login(ctx, "student@example.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "student@example.com", user.Email)
		assert.NotEmpty(t, token)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		svc, _ := newTestAuthService(t)
		_, _, err := svc.Signup(ctx, validSignup())
		require.NoError(t, err)

		_, _, err = svc.Login(ctx, "student@example.com", "wrong-password")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)
		assert.Equal(t, "Invalid email or password", domainErr.Message)
	})

	t.Run("UnknownEmailSameError", func(t *testing.T) {
		// Unknown accounts and wrong passwords must be indistinguishable.
		svc, _ := newTestAuthService(t)

		_, _, err := svc.Login(ctx, "nobody@example.com", "whatever-pass")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)
		assert.Equal(t, "Invalid email or password", domainErr.Message)
	})
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)

	user, token, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)

	verified, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.ValidateToken(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.Auth.TokenTTL = -time.Minute
	svc, err := NewAuthService(repository.NewMemoryUserRepository(), cfg)
	require.NoError(t, err)

	user := &domain.User{ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV", Role: domain.RoleUser}
	token, err := svc.CreateToken(user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_Verify_DeletedUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)

	// Token for a user that was never stored.
	token, err := svc.CreateToken(&domain.User{ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = svc.Verify(ctx, token)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)
}

func TestAuthService_ForgotPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)
	_, _, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	known := svc.ForgotPassword(ctx, "student@example.com")
	unknown := svc.ForgotPassword(ctx, "nobody@example.com")
	assert.Equal(t, known, unknown)
	assert.NotEmpty(t, known)
}

func TestAuthService_SeedAdminUser(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestAuthService(t)

	require.NoError(t, svc.SeedAdminUser(ctx))

	admin, err := repo.FindByEmail(ctx, "admin@quizcraft.ai")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, domain.RoleAdmin, admin.Role)

	// Seeding twice must not fail.
	assert.NoError(t, svc.SeedAdminUser(ctx))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestToUserResponse_OmitsPasswordHash(t *testing.T) {
	user := &domain.User{
		ID:           "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		Email:        "student@example.com",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Role:         domain.RoleUser,
		PasswordHash: "$2a$10$secret",
		CreatedAt:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	resp := ToUserResponse(user)
	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, "2025-03-01T12:00:00Z", resp.CreatedAt)
}
