package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fleetadmin/internal/domain"
)

const minPasswordLen = 8

type authService struct {
	adminRepo   domain.AdminRepository
	hasher      domain.PasswordHasher
	tokenIssuer domain.TokenIssuer
	tokenExpiry time.Duration
	audit       domain.AuditService
	logger      *slog.Logger
}

// NewAuthService creates an AuthService with the given repository and auth ports.
func NewAuthService(adminRepo domain.AdminRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration, audit domain.AuditService, logger *slog.Logger) domain.AuthService {
	return &authService{
		adminRepo:   adminRepo,
		hasher:      hasher,
		tokenIssuer: tokenIssuer,
		tokenExpiry: tokenExpiry,
		audit:       audit,
		logger:      logger.With("component", "auth"),
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Admin, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.InfoContext(ctx, "login rejected", "email", email, "reason", "unknown email")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get admin: %w", err)
	}
	if err := s.hasher.Compare(admin.PasswordHash, admin.Salt, password); err != nil {
		s.logger.InfoContext(ctx, "login rejected", "email", email, "reason", "password mismatch")
		return "", nil, domain.ErrInvalidCredentials
	}
	token, err := s.tokenIssuer.Issue(admin.ID, admin.Email, []string{domain.RoleAdmin}, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	s.audit.Record(ctx, admin.ID, domain.AuditLogin, domain.EntityAdmin, admin.ID, "signed in")
	return token, admin, nil
}

// EnsureAdmin returns the admin with email, creating it with password when missing.
// An existing admin keeps its current password.
func (s *authService) EnsureAdmin(ctx context.Context, email, name, password string) (*domain.Admin, error) {
	email = normalizeEmail(email)
	if !emailRegexp.MatchString(email) {
		return nil, invalidInput("invalid email format")
	}
	existing, err := s.adminRepo.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get admin: %w", err)
	}
	if len(password) < minPasswordLen {
		return nil, invalidInput("password must be at least %d characters", minPasswordLen)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	admin := &domain.Admin{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Salt:         salt,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	s.logger.InfoContext(ctx, "admin account created", "email", email)
	return admin, nil
}
