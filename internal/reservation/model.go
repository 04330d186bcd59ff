package reservation

import (
	"net/http"
	"time"

	"github.com/hoteldesk/hotel-booking-backend/internal/interval"
	"github.com/hoteldesk/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "reservation not found")
	ErrConflict         = apperror.New(http.StatusConflict, "room is already booked for the requested dates")
	ErrInvalidRange     = apperror.New(http.StatusBadRequest, "check-in date must be before check-out date")
	ErrRoomNotFound     = apperror.New(http.StatusNotFound, "room not found")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

// Reservation is an active stay on a room. It is never mutated in place;
// a date change is a cancel followed by a new booking.
//
// RoomNumber, RoomType and PriceCents are denormalized from the catalog for
// listings (joined on read by the pgx repository, carried through on write by
// the in-memory one).
type Reservation struct {
	ID         string
	CustomerID string
	RoomID     string
	RoomNumber string
	RoomType   string
	PriceCents int64
	Stay       interval.Range
	CreatedAt  time.Time
}

// AvailableRoom is a single availability search hit.
type AvailableRoom struct {
	RoomID     string
	RoomNumber string
	PriceCents int64
}

// Filter defines parameters for the admin reservation listing.
type Filter struct {
	CustomerID string
	RoomID     string
	Page       int
	PageSize   int
}
