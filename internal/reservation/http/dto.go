package http

import (
	"time"

	"github.com/hoteldesk/hotel-booking-backend/internal/pkg/request"
	"github.com/hoteldesk/hotel-booking-backend/internal/reservation"
)

type ReservationResponse struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	RoomID     string    `json:"room_id"`
	RoomNumber string    `json:"room_number"`
	RoomType   string    `json:"room_type"`
	PriceCents int64     `json:"price_cents"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewReservationResponse(res *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:         res.ID,
		CustomerID: res.CustomerID,
		RoomID:     res.RoomID,
		RoomNumber: res.RoomNumber,
		RoomType:   res.RoomType,
		PriceCents: res.PriceCents,
		StartDate:  res.Stay.Start.Format(time.DateOnly),
		EndDate:    res.Stay.End.Format(time.DateOnly),
		CreatedAt:  res.CreatedAt,
	}
}

type BookReservationBody struct {
	RoomID    string `json:"room_id" binding:"required,uuid"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type AvailabilityRequest struct {
	RoomType  string `form:"room_type" binding:"required"`
	StartDate string `form:"start" binding:"required"`
	EndDate   string `form:"end" binding:"required"`
}

type AvailableRoomResponse struct {
	RoomID     string `json:"room_id"`
	RoomNumber string `json:"room_number"`
	PriceCents int64  `json:"price_cents"`
}

type ListReservationsRequest struct {
	request.ListParams
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	RoomID     string `form:"room_id" binding:"omitempty,uuid"`
}
