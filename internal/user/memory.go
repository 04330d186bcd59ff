package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRepository is an in-memory Repository used by tests and local runs
// without a database. It mirrors the behavior of the pgx implementation,
// including the unique-username constraint.
type memoryRepository struct {
	mu         sync.RWMutex
	byID       map[string]*Identity
	byUsername map[string]string // username -> id
}

// NewMemoryRepository creates an empty in-memory identity repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:       make(map[string]*Identity),
		byUsername: make(map[string]string),
	}
}

func (r *memoryRepository) GetByUsername(ctx context.Context, username string) (*Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneIdentity(r.byID[id]), nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ident, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneIdentity(ident), nil
}

func (r *memoryRepository) Create(ctx context.Context, ident *Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[ident.Username]; exists {
		return ErrUsernameTaken
	}

	ident.ID = uuid.New().String()
	ident.CreatedAt = time.Now().UTC()

	r.byID[ident.ID] = cloneIdentity(ident)
	r.byUsername[ident.Username] = ident.ID
	return nil
}

func (r *memoryRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ident, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	ident.LastLoginAt = &t
	return nil
}

func cloneIdentity(i *Identity) *Identity {
	c := *i
	return &c
}
