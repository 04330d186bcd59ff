package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/hoteldesk/hotel-booking-backend/internal/events"
	"github.com/hoteldesk/hotel-booking-backend/internal/interval"
	"github.com/hoteldesk/hotel-booking-backend/internal/room"
)

// BookRequest carries the fields needed to book a room.
type BookRequest struct {
	CustomerID string
	RoomID     string
	StartDate  time.Time
	EndDate    time.Time
}

// Service is the booking engine: it composes the room catalog and the
// reservation store and owns no persistent state of its own.
type Service interface {
	// SearchAvailability returns every room of the exact type with no
	// conflicting reservation over the range. The result is a point-in-time
	// view and never a hold; only Book grants a room.
	SearchAvailability(ctx context.Context, roomType string, start, end time.Time) ([]*AvailableRoom, error)

	// Book validates the range and the room, then delegates to the store's
	// atomic TryReserve. No advisory pre-check is performed here; the store
	// is the authoritative gate.
	Book(ctx context.Context, req BookRequest) (*Reservation, error)

	GetByID(ctx context.Context, id string) (*Reservation, error)

	// Cancel removes a reservation. Only the owning customer or an admin may
	// cancel; anyone else gets ErrPermissionDenied.
	Cancel(ctx context.Context, id string, callerID string, isAdmin bool) error

	ListMine(ctx context.Context, customerID string) ([]*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
}

type service struct {
	repo        Repository
	roomService room.Service
	publisher   events.Publisher
}

func NewService(repo Repository, roomService room.Service, publisher events.Publisher) Service {
	return &service{
		repo:        repo,
		roomService: roomService,
		publisher:   publisher,
	}
}

func (s *service) SearchAvailability(ctx context.Context, roomType string, start, end time.Time) ([]*AvailableRoom, error) {
	stay, err := interval.New(start, end)
	if err != nil {
		return nil, ErrInvalidRange
	}

	rooms, err := s.roomService.ListByType(ctx, roomType)
	if err != nil {
		return nil, err
	}

	var available []*AvailableRoom
	for _, rm := range rooms {
		conflicts, err := s.repo.FindConflicts(ctx, rm.ID, stay)
		if err != nil {
			return nil, err
		}
		if len(conflicts) == 0 {
			available = append(available, &AvailableRoom{
				RoomID:     rm.ID,
				RoomNumber: rm.RoomNumber,
				PriceCents: rm.PriceCents,
			})
		}
	}
	return available, nil
}

func (s *service) Book(ctx context.Context, req BookRequest) (*Reservation, error) {
	stay, err := interval.New(req.StartDate, req.EndDate)
	if err != nil {
		return nil, ErrInvalidRange
	}

	rm, err := s.roomService.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	res := &Reservation{
		CustomerID: req.CustomerID,
		RoomID:     rm.ID,
		RoomNumber: rm.RoomNumber,
		RoomType:   rm.RoomType,
		PriceCents: rm.PriceCents,
		Stay:       stay,
	}

	if err := s.repo.TryReserve(ctx, res); err != nil {
		return nil, err
	}

	// Best effort; the reservation is committed regardless.
	_ = s.publisher.ReservationBooked(ctx, s.event(res))

	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Reservation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Cancel(ctx context.Context, id string, callerID string, isAdmin bool) error {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !isAdmin && res.CustomerID != callerID {
		return ErrPermissionDenied
	}

	if err := s.repo.Cancel(ctx, id); err != nil {
		return err
	}

	_ = s.publisher.ReservationCancelled(ctx, s.event(res))

	return nil
}

func (s *service) ListMine(ctx context.Context, customerID string) ([]*Reservation, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) event(res *Reservation) events.ReservationEvent {
	return events.ReservationEvent{
		ReservationID: res.ID,
		CustomerID:    res.CustomerID,
		RoomID:        res.RoomID,
		RoomNumber:    res.RoomNumber,
		RoomType:      res.RoomType,
		StartDate:     res.Stay.Start.Format(time.DateOnly),
		EndDate:       res.Stay.End.Format(time.DateOnly),
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
}
