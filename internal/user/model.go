package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("identity not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameRequired   = errors.New("username is required")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidRole        = errors.New("invalid role")
)

// Roles an identity can hold. Admins may manage the room catalog and any
// reservation; guests only their own.
const (
	RoleGuest = "guest"
	RoleAdmin = "admin"
)

// Identity is the resolved caller principal. Its ID doubles as the customer id
// on reservations, so the optional profile names live on the same record.
type Identity struct {
	ID           string // UUID
	Username     string
	PasswordHash string
	Role         string
	FirstName    *string
	LastName     *string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// IsAdmin reports whether the identity holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
