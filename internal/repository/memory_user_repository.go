package repository

import (
	"context"
	"strings"
	"sync"

	"quizcraft/internal/domain"
)

// MemoryUserRepository is an in-memory implementation of
// domain.UserRepository. All state is lost on restart; persistence is
// intentionally out of scope, and the repository interface lets a
// database-backed implementation replace this one without touching the
// service layer.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
	order   []string // insertion order of user IDs, for stable listings
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

// Insert adds a new user. Emails are unique case-insensitively; inserting
// a duplicate returns a conflict error.
func (r *MemoryUserRepository) Insert(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, exists := r.byEmail[email]; exists {
		return domain.NewConflictError("An account with this email already exists")
	}

	stored := *user
	stored.Email = email
	r.byID[stored.ID] = &stored
	r.byEmail[email] = &stored
	r.order = append(r.order, stored.ID)
	return nil
}

// FindByEmail returns the user with the given email, or (nil, nil) when no
// such user exists.
func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

// FindByID returns the user with the given ID, or (nil, nil) when no such
// user exists.
func (r *MemoryUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

// List returns all users in insertion order.
func (r *MemoryUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.order))
	for _, id := range r.order {
		copied := *r.byID[id]
		users = append(users, &copied)
	}
	return users, nil
}

// Count returns the number of stored users.
func (r *MemoryUserRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

var _ domain.UserRepository = (*MemoryUserRepository)(nil)
