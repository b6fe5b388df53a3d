package occupancy

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hostel/internal/database"
	"hostel/internal/domain"
	"hostel/internal/pkg/apperr"
)

type Result struct {
	RoomID   int64             `json:"roomId"`
	Previous domain.RoomStatus `json:"previous"`
	Status   domain.RoomStatus `json:"status"`
	Occupied int64             `json:"occupied"`
	Capacity int               `json:"capacity"`
	Changed  bool              `json:"changed"`
	Skipped  bool              `json:"skipped"`

	// Overbooked is set when more bookings are active than the room holds.
	Overbooked bool `json:"overbooked,omitempty"`
}

type Summary struct {
	Checked int `json:"checked"`
	Changed int `json:"changed"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Recalculator keeps AVAILABLE/OCCUPIED in step with committed bookings.
// Rooms forced into MAINTENANCE or OUT_OF_ORDER are left alone.
type Recalculator struct {
	rooms    RoomStore
	policy   Policy
	listener StatusListener
	log      *zap.Logger
	now      func() time.Time
}

func NewRecalculator(rooms RoomStore, policy Policy, log *zap.Logger) *Recalculator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recalculator{rooms: rooms, policy: policy, log: log, now: time.Now}
}

// SetListener registers the subscriber for persisted status changes.
func (r *Recalculator) SetListener(l StatusListener) {
	r.listener = l
}

func (r *Recalculator) RecalculateRoom(ctx context.Context, roomID int64) (Result, error) {
	room, err := r.loadRoom(ctx, roomID)
	if err != nil {
		return Result{RoomID: roomID}, err
	}
	if !room.Status.IsDerived() {
		return Result{
			RoomID:   roomID,
			Previous: room.Status,
			Status:   room.Status,
			Capacity: room.Capacity,
			Skipped:  true,
		}, nil
	}
	return r.derive(ctx, room)
}

// RecalculateRooms processes each id independently; a failing room is logged
// and counted without stopping the rest.
func (r *Recalculator) RecalculateRooms(ctx context.Context, ids []int64) Summary {
	var sum Summary
	for _, id := range ids {
		if ctx.Err() != nil {
			r.log.Warn("recalculation interrupted", zap.Error(ctx.Err()), zap.Int("remaining", len(ids)-sum.Checked))
			break
		}
		sum.Checked++

		res, err := r.RecalculateRoom(ctx, id)
		if err != nil {
			sum.Failed++
			r.log.Error("recalculate room", zap.Int64("room_id", id), zap.Error(err))
			continue
		}
		switch {
		case res.Skipped:
			sum.Skipped++
		case res.Changed:
			sum.Changed++
		}
	}
	return sum
}

func (r *Recalculator) RecalculateAll(ctx context.Context) (Summary, error) {
	ids, err := r.rooms.ListIDs(ctx)
	if err != nil {
		return Summary{}, database.Classify("Failed to list rooms", err)
	}
	sum := r.RecalculateRooms(ctx, ids)
	r.log.Info("global recalculation finished",
		zap.Int("checked", sum.Checked),
		zap.Int("changed", sum.Changed),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed),
	)
	return sum, nil
}

// SetStatus applies a staff-chosen status. MAINTENANCE and OUT_OF_ORDER are
// stored as given; AVAILABLE or OCCUPIED release the manual hold and the
// room is immediately re-derived from its bookings.
func (r *Recalculator) SetStatus(ctx context.Context, roomID int64, status domain.RoomStatus) (Result, error) {
	if !status.IsValid() {
		return Result{RoomID: roomID}, apperr.InvalidInput("INVALID_ROOM_STATUS",
			"Invalid room status. Valid values: AVAILABLE, OCCUPIED, MAINTENANCE, OUT_OF_ORDER")
	}
	room, err := r.loadRoom(ctx, roomID)
	if err != nil {
		return Result{RoomID: roomID}, err
	}
	if status.IsDerived() {
		return r.derive(ctx, room)
	}

	res := Result{RoomID: roomID, Previous: room.Status, Status: status, Capacity: room.Capacity}
	if room.Status == status {
		return res, nil
	}
	if err := r.write(ctx, room, status, 0); err != nil {
		return res, err
	}
	res.Changed = true
	return res, nil
}

func (r *Recalculator) loadRoom(ctx context.Context, roomID int64) (*domain.Room, error) {
	room, err := r.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("ROOM_NOT_FOUND", "Room not found")
		}
		return nil, database.Classify("Failed to load room", err)
	}
	return room, nil
}

func (r *Recalculator) derive(ctx context.Context, room *domain.Room) (Result, error) {
	res := Result{RoomID: room.ID, Previous: room.Status, Capacity: room.Capacity}

	occupied, err := r.rooms.CountActiveBookings(ctx, room.ID, r.policy.ActiveStatuses())
	if err != nil {
		return res, database.Classify("Failed to count active bookings", err)
	}
	res.Occupied = occupied
	res.Status = DerivedStatus(occupied, room.Capacity)
	if occupied > int64(room.Capacity) {
		res.Overbooked = true
		r.log.Warn("room over capacity",
			zap.Int64("room_id", room.ID),
			zap.String("room_number", room.RoomNumber),
			zap.Int64("occupied", occupied),
			zap.Int("capacity", room.Capacity),
		)
	}

	if res.Status == room.Status {
		return res, nil
	}
	if err := r.write(ctx, room, res.Status, occupied); err != nil {
		return res, err
	}
	res.Changed = true
	return res, nil
}

func (r *Recalculator) write(ctx context.Context, room *domain.Room, to domain.RoomStatus, occupied int64) error {
	if err := r.rooms.UpdateStatus(ctx, room.ID, to); err != nil {
		return database.Classify("Failed to update room status", err)
	}
	r.log.Info("room status changed",
		zap.Int64("room_id", room.ID),
		zap.String("from", string(room.Status)),
		zap.String("to", string(to)),
	)
	if r.listener != nil {
		r.listener.RoomStatusChanged(ctx, StatusChange{
			RoomID:     room.ID,
			HostelID:   room.HostelID,
			RoomNumber: room.RoomNumber,
			From:       room.Status,
			To:         to,
			Occupied:   occupied,
			Capacity:   room.Capacity,
			At:         r.now(),
		})
	}
	return nil
}
