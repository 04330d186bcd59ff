package room

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRepository is an in-memory Repository used by tests. It enforces the
// same room-number uniqueness as the pgx implementation and preserves
// insertion order for listing.
type memoryRepository struct {
	mu       sync.RWMutex
	byID     map[string]*Room
	byNumber map[string]string // room_number -> id
	order    []string
}

// NewMemoryRepository creates an empty in-memory room repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:     make(map[string]*Room),
		byNumber: make(map[string]string),
	}
}

func (r *memoryRepository) Create(ctx context.Context, rm *Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byNumber[rm.RoomNumber]; exists {
		return ErrDuplicateRoomNumber
	}

	rm.ID = uuid.New().String()
	rm.CreatedAt = time.Now().UTC()

	r.byID[rm.ID] = cloneRoom(rm)
	r.byNumber[rm.RoomNumber] = rm.ID
	r.order = append(r.order, rm.ID)
	return nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rm, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRoom(rm), nil
}

func (r *memoryRepository) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Room
	for _, id := range r.order {
		rm := r.byID[id]
		if filter.RoomType != "" && rm.RoomType != filter.RoomType {
			continue
		}
		matched = append(matched, cloneRoom(rm))
	}
	total := len(matched)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	start := (filter.Page - 1) * filter.PageSize
	if start >= total {
		return nil, total, nil
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *memoryRepository) ListByType(ctx context.Context, roomType string) ([]*Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rooms []*Room
	for _, id := range r.order {
		rm := r.byID[id]
		if rm.RoomType == roomType {
			rooms = append(rooms, cloneRoom(rm))
		}
	}
	return rooms, nil
}

func cloneRoom(rm *Room) *Room {
	c := *rm
	return &c
}
