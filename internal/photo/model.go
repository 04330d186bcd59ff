package photo

import (
	"net/http"
	"time"

	"github.com/hoteldesk/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "photo not found")
	ErrNotAnImage   = apperror.New(http.StatusBadRequest, "uploaded file is not an image")
	ErrRoomNotFound = apperror.New(http.StatusNotFound, "room not found")
)

// RoomPhoto is an image attached to a room by an admin.
type RoomPhoto struct {
	ID            string    `json:"id"`
	RoomID        string    `json:"room_id"`
	Filename      string    `json:"filename"`
	StoragePath   string    `json:"-"` // Internal path
	ThumbnailPath *string   `json:"-"` // Internal path
	ContentType   string    `json:"content_type"`
	Size          int64     `json:"size"`
	CreatedAt     time.Time `json:"created_at"`
}

// URL returns the public URL for downloading a photo by its ID.
func URL(id string) string {
	return "/v1/photos/" + id
}

// ThumbnailURL returns the public URL for a photo's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/v1/photos/" + id + "/thumbnail"
}
