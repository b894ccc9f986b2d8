package domain

import (
	"context"
	"time"
)

// RoleAdmin is the only role issued to dashboard operators.
const RoleAdmin = "admin"

// Admin is a dashboard operator.
// swagger:model Admin
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated admin.
type TokenIssuer interface {
	Issue(adminID, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated admin ID.
type TokenVerifier interface {
	Verify(token string) (adminID string, err error)
}

// AdminRepository defines storage operations for admins.
type AdminRepository interface {
	Create(ctx context.Context, a *Admin) error
	GetByEmail(ctx context.Context, email string) (*Admin, error)
}

// AuthService authenticates dashboard operators.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, admin *Admin, err error)
	EnsureAdmin(ctx context.Context, email, name, password string) (*Admin, error)
}
