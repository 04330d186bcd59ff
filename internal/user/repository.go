package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing identity data from storage.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (*Identity, error)
	GetByID(ctx context.Context, id string) (*Identity, error)
	Create(ctx context.Context, ident *Identity) error
	UpdateLastLogin(ctx context.Context, id string, t time.Time) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{
		pool: pool,
	}
}

func (r *pgxRepository) GetByUsername(ctx context.Context, username string) (*Identity, error) {
	const query = `
		SELECT id, username, password_hash, role, first_name, last_name, created_at, last_login_at
		FROM public.identities
		WHERE username = $1
	`

	return r.scanOne(r.pool.QueryRow(ctx, query, username))
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Identity, error) {
	const query = `
		SELECT id, username, password_hash, role, first_name, last_name, created_at, last_login_at
		FROM public.identities
		WHERE id = $1
	`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) scanOne(row pgx.Row) (*Identity, error) {
	var ident Identity
	if err := row.Scan(
		&ident.ID,
		&ident.Username,
		&ident.PasswordHash,
		&ident.Role,
		&ident.FirstName,
		&ident.LastName,
		&ident.CreatedAt,
		&ident.LastLoginAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get identity failed: %w", err)
	}
	return &ident, nil
}

func (r *pgxRepository) Create(ctx context.Context, ident *Identity) error {
	const query = `
		INSERT INTO public.identities (username, password_hash, role, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(
		ctx,
		query,
		ident.Username,
		ident.PasswordHash,
		ident.Role,
		ident.FirstName,
		ident.LastName,
	).Scan(&ident.ID, &ident.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrUsernameTaken
		}
		return fmt.Errorf("create identity failed: %w", err)
	}

	return nil
}

func (r *pgxRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	const query = `
		UPDATE public.identities
		SET last_login_at = $1
		WHERE id = $2
	`

	ct, err := r.pool.Exec(ctx, query, t, id)
	if err != nil {
		return fmt.Errorf("update last login failed: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
