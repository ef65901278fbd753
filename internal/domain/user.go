package domain

import (
	"context"
	"time"
)

// User roles. Admin-gated endpoints require RoleAdmin.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account record. PasswordHash is a bcrypt hash and never leaves
// the service layer.
type User struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	Institution  string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository defines the interface for user data operations.
// Implementations return (nil, nil) when a user is not found; services
// decide how to surface that.
type UserRepository interface {
	Insert(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Count(ctx context.Context) (int, error)
}
