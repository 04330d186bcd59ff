package reservation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hoteldesk/hotel-booking-backend/internal/interval"
)

// memoryRepository is an in-memory Repository used by tests. It provides the
// same per-room linearization guarantee as the exclusion constraint in the
// pgx implementation, using one mutex per room so reservations on different
// rooms never contend.
type memoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]*Reservation
	order []string

	roomLocks sync.Map // roomID -> *sync.Mutex
}

// NewMemoryRepository creates an empty in-memory reservation repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID: make(map[string]*Reservation),
	}
}

func (r *memoryRepository) roomLock(roomID string) *sync.Mutex {
	l, _ := r.roomLocks.LoadOrStore(roomID, &sync.Mutex{})
	return l.(*sync.Mutex)
}

func (r *memoryRepository) TryReserve(ctx context.Context, res *Reservation) error {
	// The room lock serializes the check-and-insert for this room; the map
	// mutex only guards the shared structures inside it.
	lock := r.roomLock(res.RoomID)
	lock.Lock()
	defer lock.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order {
		existing := r.byID[id]
		if existing.RoomID == res.RoomID && existing.Stay.Overlaps(res.Stay) {
			return ErrConflict
		}
	}

	res.ID = uuid.New().String()
	res.CreatedAt = time.Now().UTC()
	r.byID[res.ID] = cloneReservation(res)
	r.order = append(r.order, res.ID)
	return nil
}

func (r *memoryRepository) FindConflicts(ctx context.Context, roomID string, stay interval.Range) ([]*Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var conflicts []*Reservation
	for _, id := range r.order {
		res := r.byID[id]
		if res.RoomID == roomID && res.Stay.Overlaps(stay) {
			conflicts = append(conflicts, cloneReservation(res))
		}
	}
	return conflicts, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneReservation(res), nil
}

func (r *memoryRepository) Cancel(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memoryRepository) ListByCustomer(ctx context.Context, customerID string) ([]*Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var reservations []*Reservation
	for _, id := range r.order {
		res := r.byID[id]
		if res.CustomerID == customerID {
			reservations = append(reservations, cloneReservation(res))
		}
	}
	return reservations, nil
}

func (r *memoryRepository) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Reservation
	for _, id := range r.order {
		res := r.byID[id]
		if filter.CustomerID != "" && res.CustomerID != filter.CustomerID {
			continue
		}
		if filter.RoomID != "" && res.RoomID != filter.RoomID {
			continue
		}
		matched = append(matched, cloneReservation(res))
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

func cloneReservation(res *Reservation) *Reservation {
	c := *res
	return &c
}
