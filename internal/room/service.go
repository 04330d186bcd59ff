package room

import (
	"context"
	"strings"
)

type CreateRequest struct {
	RoomType   string
	RoomNumber string
	PriceCents int64
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	ListByType(ctx context.Context, roomType string) ([]*Room, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	// Room type is matched verbatim elsewhere, so only whitespace-only input
	// is rejected here; no trimming or case folding is applied.
	if strings.TrimSpace(req.RoomType) == "" {
		return nil, ErrEmptyRoomType
	}
	if strings.TrimSpace(req.RoomNumber) == "" {
		return nil, ErrEmptyRoomNumber
	}
	if req.PriceCents <= 0 {
		return nil, ErrInvalidPrice
	}

	rm := &Room{
		RoomType:   req.RoomType,
		RoomNumber: req.RoomNumber,
		PriceCents: req.PriceCents,
	}

	if err := s.repo.Create(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ListByType(ctx context.Context, roomType string) ([]*Room, error) {
	return s.repo.ListByType(ctx, roomType)
}
