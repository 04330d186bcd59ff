package room

import (
	"net/http"
	"time"

	"github.com/hoteldesk/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "room not found")
	ErrDuplicateRoomNumber = apperror.New(http.StatusConflict, "room number already exists")
	ErrInvalidPrice        = apperror.New(http.StatusBadRequest, "price must be positive")
	ErrEmptyRoomNumber     = apperror.New(http.StatusBadRequest, "room number cannot be empty")
	ErrEmptyRoomType       = apperror.New(http.StatusBadRequest, "room type cannot be empty")
)

// Room is a bookable hotel room. Identity is immutable once created and rooms
// are never deleted; the room number is unique across the catalog.
type Room struct {
	ID         string
	RoomType   string
	RoomNumber string
	PriceCents int64 // price per night in cents
	CreatedAt  time.Time
}

// Filter defines parameters for listing rooms.
type Filter struct {
	RoomType string
	Page     int
	PageSize int
}
