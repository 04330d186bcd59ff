package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoteldesk/hotel-booking-backend/internal/auth"
	"github.com/hoteldesk/hotel-booking-backend/internal/user"
)

func newIdentityService(t *testing.T) user.Service {
	t.Helper()
	// Low cost keeps the test fast; production cost comes from config.
	hasher := auth.NewBcryptPasswordHasherWithCost(4)
	return user.NewService(user.NewMemoryRepository(), hasher)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := newIdentityService(t)

	t.Run("defaults to guest role", func(t *testing.T) {
		u, err := svc.Register(ctx, user.RegisterRequest{
			Username: "alice",
			Password: "correct horse",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, user.RoleGuest, u.Role)
		assert.False(t, u.IsAdmin())
		assert.Nil(t, u.FirstName)
		assert.NotEqual(t, "correct horse", u.PasswordHash)
	})

	t.Run("stores optional profile names", func(t *testing.T) {
		u, err := svc.Register(ctx, user.RegisterRequest{
			Username:  "bob",
			Password:  "longenough",
			FirstName: "Bob",
			LastName:  "Smith",
		})
		require.NoError(t, err)
		require.NotNil(t, u.FirstName)
		assert.Equal(t, "Bob", *u.FirstName)
		require.NotNil(t, u.LastName)
		assert.Equal(t, "Smith", *u.LastName)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, user.RegisterRequest{Username: "alice", Password: "longenough"})
		assert.ErrorIs(t, err, user.ErrUsernameTaken)
	})

	t.Run("empty username", func(t *testing.T) {
		_, err := svc.Register(ctx, user.RegisterRequest{Username: "   ", Password: "longenough"})
		assert.ErrorIs(t, err, user.ErrUsernameRequired)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.Register(ctx, user.RegisterRequest{Username: "carol", Password: "short"})
		assert.ErrorIs(t, err, user.ErrPasswordTooShort)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := svc.Register(ctx, user.RegisterRequest{Username: "carol", Password: "longenough", Role: "owner"})
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newIdentityService(t)

	registered, err := svc.Register(ctx, user.RegisterRequest{
		Username: "alice",
		Password: "correct horse",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		u, err := svc.Login(ctx, "alice", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
	})

	t.Run("records last login", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "correct horse")
		require.NoError(t, err)

		u, err := svc.GetByID(ctx, registered.ID)
		require.NoError(t, err)
		assert.NotNil(t, u.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "wrong horse")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody", "correct horse")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("empty password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}
