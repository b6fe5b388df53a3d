package occupancy

import (
	"context"
	"time"

	"hostel/internal/domain"
)

// RoomReader is the read side the evaluator needs. Both the pooled and the
// transactional room repositories satisfy it.
type RoomReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	CountActiveBookings(ctx context.Context, roomID int64, statuses []domain.BookingStatus) (int64, error)
}

type RoomStore interface {
	RoomReader
	UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error
	ListIDs(ctx context.Context) ([]int64, error)
}

// StatusChange describes one persisted room status transition.
type StatusChange struct {
	RoomID     int64             `json:"roomId"`
	HostelID   int64             `json:"hostelId"`
	RoomNumber string            `json:"roomNumber"`
	From       domain.RoomStatus `json:"from"`
	To         domain.RoomStatus `json:"to"`
	Occupied   int64             `json:"occupied"`
	Capacity   int               `json:"capacity"`
	At         time.Time         `json:"at"`
}

type StatusListener interface {
	RoomStatusChanged(ctx context.Context, change StatusChange)
}
