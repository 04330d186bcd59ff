package http

import (
	"time"

	"github.com/hoteldesk/hotel-booking-backend/internal/pkg/request"
	"github.com/hoteldesk/hotel-booking-backend/internal/room"
)

type RoomResponse struct {
	ID         string    `json:"id"`
	RoomType   string    `json:"room_type"`
	RoomNumber string    `json:"room_number"`
	PriceCents int64     `json:"price_cents"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewRoomResponse(rm *room.Room) RoomResponse {
	return RoomResponse{
		ID:         rm.ID,
		RoomType:   rm.RoomType,
		RoomNumber: rm.RoomNumber,
		PriceCents: rm.PriceCents,
		CreatedAt:  rm.CreatedAt,
	}
}

type CreateRoomBody struct {
	RoomType   string `json:"room_type" binding:"required"`
	RoomNumber string `json:"room_number" binding:"required"`
	PriceCents int64  `json:"price_cents" binding:"required"`
}

type ListRoomsRequest struct {
	request.ListParams
	RoomType string `form:"room_type"`
}
