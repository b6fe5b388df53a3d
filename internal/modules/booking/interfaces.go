package booking

import (
	"context"

	"hostel/internal/modules/occupancy"
)

// RoomRecalculator refreshes derived room status after a booking change.
type RoomRecalculator interface {
	RecalculateRoom(ctx context.Context, roomID int64) (occupancy.Result, error)
	RecalculateAll(ctx context.Context) (occupancy.Summary, error)
}
