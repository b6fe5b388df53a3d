package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hostel/internal/database"
	"hostel/internal/domain"
	"hostel/internal/modules/mirror"
	"hostel/internal/modules/notification"
	"hostel/internal/modules/occupancy"
	"hostel/internal/pkg/apperr"
	"hostel/internal/repository"
)

type CreateInput struct {
	RoomID      int64
	HostelID    int64
	UserID      int64
	CheckIn     *time.Time
	CheckOut    *time.Time
	BookingType domain.BookingType
	Price       *float64
	Status      domain.BookingStatus
	Notes       string
}

type Service struct {
	store  *repository.Store
	eval   *occupancy.Evaluator
	recalc RoomRecalculator
	notify notification.Dispatcher
	mirror mirror.Mirror
	log    *zap.Logger
	now    func() time.Time
}

func NewService(
	store *repository.Store,
	eval *occupancy.Evaluator,
	recalc RoomRecalculator,
	notify notification.Dispatcher,
	mir mirror.Mirror,
	log *zap.Logger,
) *Service {
	if notify == nil {
		notify = notification.Nop{}
	}
	if mir == nil {
		mir = mirror.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:  store,
		eval:   eval,
		recalc: recalc,
		notify: notify,
		mirror: mir,
		log:    log,
		now:    time.Now,
	}
}

// Create validates the request, checks capacity and inserts the booking in
// one transaction holding the room row lock.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Booking, error) {
	if !in.BookingType.IsValid() {
		return nil, ErrInvalidBookingType
	}
	if in.Status == "" {
		in.Status = domain.BookingPending
	}
	if !in.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if in.Status.IsTerminal() {
		return nil, apperr.InvalidInput("INVALID_STATUS", "New bookings cannot start as "+string(in.Status))
	}
	if in.UserID <= 0 {
		return nil, apperr.InvalidInput("VALIDATION_ERROR", "userId is required")
	}

	var b *domain.Booking
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		room, err := tx.Rooms.GetByIDForUpdate(ctx, in.RoomID)
		if err != nil {
			return notFoundOr(err, ErrRoomNotFound, "Failed to load room")
		}
		if _, err := tx.Hostels.GetByID(ctx, in.HostelID); err != nil {
			return notFoundOr(err, ErrHostelNotFound, "Failed to load hostel")
		}
		if room.HostelID != in.HostelID {
			return ErrRoomHostelMismatch
		}
		if _, err := tx.Users.GetByID(ctx, in.UserID); err != nil {
			return notFoundOr(err, ErrUserNotFound, "Failed to load user")
		}

		stay, err := Quote(room, in.BookingType, in.CheckIn, in.CheckOut, in.Price, s.now())
		if err != nil {
			return err
		}

		av, err := s.eval.Using(tx.Rooms).CheckAvailability(ctx, room.ID)
		if err != nil {
			return err
		}
		if !av.Available {
			return apperr.Conflict("ROOM_UNAVAILABLE", av.Reason)
		}

		b = &domain.Booking{
			RoomID:      room.ID,
			HostelID:    in.HostelID,
			UserID:      in.UserID,
			CheckIn:     stay.CheckIn,
			CheckOut:    stay.CheckOut,
			BookingType: in.BookingType,
			Price:       stay.Price,
			Status:      in.Status,
			Duration:    stay.Duration,
			Notes:       in.Notes,
		}
		if err := tx.Bookings.Create(ctx, b); err != nil {
			return database.Classify("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.refreshRoom(ctx, b.RoomID, false)
	if _, err := s.store.Users.PromoteToGuest(ctx, b.UserID); err != nil {
		s.log.Warn("promote user to guest", zap.Int64("user_id", b.UserID), zap.Error(err))
	}

	detailed := s.reload(ctx, b)
	s.mirror.RecordBooking(mirror.BookingFrom("created", detailed, s.now()))
	s.notifyGuest(ctx, detailed, domain.NotifBookingCreated, notification.Payload{
		"status": string(detailed.Status),
	})
	return detailed, nil
}

// ChangeStatus moves the booking along the lifecycle. Setting the current
// status again is a no-op.
func (s *Service) ChangeStatus(ctx context.Context, id int64, status domain.BookingStatus, actorID int64) (*domain.Booking, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	var (
		from    domain.BookingStatus
		changed bool
	)
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		changed = false
		b, err := tx.Bookings.GetByIDForUpdate(ctx, id)
		if err != nil {
			return notFoundOr(err, ErrBookingNotFound, "Failed to load booking")
		}
		from = b.Status
		if from == status {
			return nil
		}
		if !from.CanTransitionTo(status) {
			return apperr.Conflict("INVALID_TRANSITION",
				fmt.Sprintf("Cannot change booking status from %s to %s", from, status))
		}

		now := s.now()
		fields := map[string]any{"status": status}
		if status == domain.BookingCancelled {
			fields["cancelled_at"] = now
			if actorID > 0 {
				fields["cancelled_by"] = actorID
			}
		}
		if err := tx.Bookings.UpdateFields(ctx, id, fields); err != nil {
			return database.Classify("Failed to update booking status", err)
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !changed {
		return b, nil
	}

	s.refreshRoom(ctx, b.RoomID, true)
	s.mirror.RecordBooking(mirror.BookingFrom("status_changed", b, s.now()))
	s.notifyGuest(ctx, b, domain.NotifBookingStatusChanged, notification.Payload{
		"from": string(from),
		"to":   string(status),
	})
	return b, nil
}

// Delete removes a booking and its payments. Checked-out bookings are kept
// as history.
func (s *Service) Delete(ctx context.Context, id int64) error {
	var deleted *domain.Booking
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		b, err := tx.Bookings.GetByIDForUpdate(ctx, id)
		if err != nil {
			return notFoundOr(err, ErrBookingNotFound, "Failed to load booking")
		}
		if b.Status == domain.BookingCheckedOut {
			return ErrBookingCompleted
		}
		if _, err := tx.Payments.DeleteByBooking(ctx, id); err != nil {
			return database.Classify("Failed to delete booking payments", err)
		}
		if err := tx.Bookings.Delete(ctx, id); err != nil {
			return notFoundOr(err, ErrBookingNotFound, "Failed to delete booking")
		}
		deleted = b
		return nil
	})
	if err != nil {
		return err
	}

	s.refreshRoom(ctx, deleted.RoomID, true)
	s.mirror.RecordBooking(mirror.BookingFrom("deleted", deleted, s.now()))
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.store.Bookings.GetDetailed(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrBookingNotFound, "Failed to load booking")
	}
	return b, nil
}

func (s *Service) List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, int64, error) {
	if f.Status != "" && !f.Status.IsValid() {
		return nil, 0, ErrInvalidStatus
	}
	list, total, err := s.store.Bookings.List(ctx, f)
	if err != nil {
		return nil, 0, database.Classify("Failed to list bookings", err)
	}
	return list, total, nil
}

// refreshRoom re-derives the room status and, when global is set, runs a
// pass over every room. Failures are logged; the next pass repairs them.
func (s *Service) refreshRoom(ctx context.Context, roomID int64, global bool) {
	if s.recalc == nil {
		return
	}
	if _, err := s.recalc.RecalculateRoom(ctx, roomID); err != nil {
		s.log.Error("recalculate room after booking change", zap.Int64("room_id", roomID), zap.Error(err))
	}
	if global {
		if _, err := s.recalc.RecalculateAll(ctx); err != nil {
			s.log.Error("global recalculation after booking change", zap.Error(err))
		}
	}
}

func (s *Service) reload(ctx context.Context, b *domain.Booking) *domain.Booking {
	detailed, err := s.store.Bookings.GetDetailed(ctx, b.ID)
	if err != nil {
		s.log.Warn("reload booking", zap.Int64("booking_id", b.ID), zap.Error(err))
		return b
	}
	return detailed
}

func (s *Service) notifyGuest(ctx context.Context, b *domain.Booking, kind domain.NotificationKind, extra notification.Payload) {
	if b.User == nil || b.User.Email == "" {
		return
	}
	payload := notification.Payload{
		"bookingId": b.ID,
		"checkin":   b.CheckIn.Format("2006-01-02"),
		"checkout":  b.CheckOut.Format("2006-01-02"),
	}
	if b.Room != nil {
		payload["roomNumber"] = b.Room.RoomNumber
	}
	if b.Hostel != nil {
		payload["hostel"] = b.Hostel.Name
	}
	for k, v := range extra {
		payload[k] = v
	}
	if err := s.notify.SendNotification(ctx, b.User.Email, kind, payload); err != nil {
		s.log.Warn("booking notification failed",
			zap.Int64("booking_id", b.ID),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
}

func notFoundOr(err error, notFound *apperr.Error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return database.Classify(msg, err)
}
