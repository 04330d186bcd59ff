package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hoteldesk/hotel-booking-backend/internal/auth"
)

// Service defines business logic related to identities.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Identity, error)
	Login(ctx context.Context, username, password string) (*Identity, error)
	GetByID(ctx context.Context, id string) (*Identity, error)
}

// RegisterRequest carries the fields needed to create an identity.
type RegisterRequest struct {
	Username  string
	Password  string
	Role      string
	FirstName string
	LastName  string
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher

	minPasswordLength int
}

// NewService creates a new identity Service.
func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		minPasswordLength: 8,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Identity, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	if len(req.Password) < s.minPasswordLength {
		return nil, fmt.Errorf("%w: minimum %d characters", ErrPasswordTooShort, s.minPasswordLength)
	}

	role := req.Role
	if role == "" {
		role = RoleGuest
	}
	if role != RoleGuest && role != RoleAdmin {
		return nil, ErrInvalidRole
	}

	// Check first so the common case gets a clean error; the unique constraint
	// still catches a concurrent registration of the same username.
	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing username: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	ident := &Identity{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		FirstName:    optional(req.FirstName),
		LastName:     optional(req.LastName),
	}

	if err := s.repo.Create(ctx, ident); err != nil {
		return nil, err
	}

	return ident, nil
}

func (s *service) Login(ctx context.Context, username, password string) (*Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	ident, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch identity: %w", err)
	}

	if err := s.hasher.Compare(ident.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best effort; a failed timestamp update must not fail the login.
	now := time.Now().UTC()
	_ = s.repo.UpdateLastLogin(ctx, ident.ID, now)

	return ident, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Identity, error) {
	return s.repo.GetByID(ctx, id)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
