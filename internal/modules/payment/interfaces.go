package payment

import (
	"context"

	"hostel/internal/modules/occupancy"
)

// RoomRecalculator refreshes derived room status after a booking cascade.
type RoomRecalculator interface {
	RecalculateRoom(ctx context.Context, roomID int64) (occupancy.Result, error)
}
