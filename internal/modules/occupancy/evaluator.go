package occupancy

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hostel/internal/database"
	"hostel/internal/domain"
)

type Availability struct {
	Available bool              `json:"available"`
	Reason    string            `json:"reason,omitempty"`
	RoomID    int64             `json:"roomId"`
	Status    domain.RoomStatus `json:"status,omitempty"`
	Occupied  int64             `json:"occupied"`
	Capacity  int               `json:"capacity"`
}

// Evaluator answers whether a room can take one more booking. It never writes.
type Evaluator struct {
	rooms  RoomReader
	policy Policy
}

func NewEvaluator(rooms RoomReader, policy Policy) *Evaluator {
	return &Evaluator{rooms: rooms, policy: policy}
}

// Using returns an evaluator with the same policy reading through rooms,
// typically a transaction-bound repository.
func (e *Evaluator) Using(rooms RoomReader) *Evaluator {
	return &Evaluator{rooms: rooms, policy: e.policy}
}

func (e *Evaluator) Policy() Policy { return e.policy }

func (e *Evaluator) CheckAvailability(ctx context.Context, roomID int64) (Availability, error) {
	out := Availability{RoomID: roomID}

	room, err := e.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			out.Reason = "Room not found"
			return out, nil
		}
		return out, database.Classify("Failed to load room", err)
	}
	out.Status = room.Status
	out.Capacity = room.Capacity

	if !room.Status.IsDerived() {
		out.Reason = fmt.Sprintf("Room %s is %s", room.RoomNumber, room.Status)
		return out, nil
	}

	occupied, err := e.rooms.CountActiveBookings(ctx, roomID, e.policy.ActiveStatuses())
	if err != nil {
		return out, database.Classify("Failed to count active bookings", err)
	}
	out.Occupied = occupied

	if occupied >= int64(room.Capacity) {
		out.Reason = fmt.Sprintf("Room %s is fully occupied (%d/%d)", room.RoomNumber, occupied, room.Capacity)
		return out, nil
	}

	out.Available = true
	return out, nil
}
