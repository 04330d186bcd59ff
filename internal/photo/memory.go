package photo

import (
	"context"
	"sync"
)

// memoryRepository is an in-memory Repository used by tests.
type memoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]*RoomPhoto
	order []string
}

// NewMemoryRepository creates an empty in-memory photo repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID: make(map[string]*RoomPhoto),
	}
}

func (r *memoryRepository) Create(ctx context.Context, p *RoomPhoto) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[p.ID] = clonePhoto(p)
	r.order = append(r.order, p.ID)
	return nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*RoomPhoto, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clonePhoto(p), nil
}

func (r *memoryRepository) ListByRoom(ctx context.Context, roomID string) ([]*RoomPhoto, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var photos []*RoomPhoto
	for _, id := range r.order {
		p := r.byID[id]
		if p.RoomID == roomID {
			photos = append(photos, clonePhoto(p))
		}
	}
	return photos, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string) error {
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

func clonePhoto(p *RoomPhoto) *RoomPhoto {
	c := *p
	if p.ThumbnailPath != nil {
		tp := *p.ThumbnailPath
		c.ThumbnailPath = &tp
	}
	return &c
}
