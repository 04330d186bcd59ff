// Package events publishes reservation lifecycle events to a message broker.
// Publication is best effort: failures are logged and must never fail the
// booking or cancellation that triggered them.
package events

// ReservationEvent is the payload published when a reservation is booked or
// cancelled. It carries enough for downstream consumers (notifications,
// analytics) to act without querying the primary database.
type ReservationEvent struct {
	ReservationID string `json:"reservation_id"`
	CustomerID    string `json:"customer_id"`
	RoomID        string `json:"room_id"`
	RoomNumber    string `json:"room_number"`
	RoomType      string `json:"room_type"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	OccurredAt    string `json:"occurred_at"`
}

// Queue names for reservation lifecycle events.
const (
	QueueReservationBooked    = "reservation.booked"
	QueueReservationCancelled = "reservation.cancelled"
)
