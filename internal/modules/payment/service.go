package payment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"hostel/internal/domain"
	"hostel/internal/modules/mirror"
	"hostel/internal/modules/notification"
	"hostel/internal/repository"
)

// Service runs the approval workflow for every Kind.
type Service struct {
	store    *repository.Store
	variants map[Kind]Variant
	recalc   RoomRecalculator
	notify   notification.Dispatcher
	mirror   mirror.Mirror
	log      *zap.Logger
	now      func() time.Time
}

func NewService(
	store *repository.Store,
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
		store: store,
		variants: map[Kind]Variant{
			KindBooking: bookingPayment{},
			KindSalary:  salaryPayout{},
			KindExpense: expenseClaim{},
		},
		recalc: recalc,
		notify: notify,
		mirror: mir,
		log:    log,
		now:    time.Now,
	}
}

// Approve applies the approval transition of kind to entity id.
func (s *Service) Approve(ctx context.Context, kind Kind, id, actorID int64) (*Outcome, error) {
	return s.decide(ctx, kind, Decision{ID: id, ActorID: actorID}, true)
}

// Reject applies the rejection transition of kind to entity id.
func (s *Service) Reject(ctx context.Context, kind Kind, id, actorID int64, reason string) (*Outcome, error) {
	return s.decide(ctx, kind, Decision{ID: id, ActorID: actorID, Reason: reason}, false)
}

func (s *Service) decide(ctx context.Context, kind Kind, d Decision, approve bool) (*Outcome, error) {
	v, ok := s.variants[kind]
	if !ok {
		return nil, ErrUnknownType
	}
	d.At = s.now()

	var out *Outcome
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		if approve {
			out, err = v.Approve(ctx, tx, d)
		} else {
			out, err = v.Reject(ctx, tx, d)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("approval decision",
		zap.String("type", string(kind)),
		zap.Int64("id", d.ID),
		zap.Bool("approved", approve),
		zap.Int64("actor_id", d.ActorID),
	)
	if out.Payment != nil {
		s.afterPayment(ctx, out, approve, d.Reason)
	}
	return out, nil
}

func (s *Service) afterPayment(ctx context.Context, out *Outcome, approve bool, reason string) {
	p := out.Payment
	event := "rejected"
	kind := domain.NotifPaymentRejected
	if approve {
		event = "approved"
		kind = domain.NotifPaymentApproved
	}
	s.mirror.RecordPayment(mirror.PaymentFrom(event, p, s.now()))

	if out.BookingConfirmed && out.Booking != nil {
		s.mirror.RecordBooking(mirror.BookingFrom("status_changed", out.Booking, s.now()))
		if s.recalc != nil {
			if _, err := s.recalc.RecalculateRoom(ctx, out.Booking.RoomID); err != nil {
				s.log.Error("recalculate room after payment approval",
					zap.Int64("room_id", out.Booking.RoomID), zap.Error(err))
			}
		}
	}

	u, err := s.store.Users.GetByID(ctx, p.UserID)
	if err != nil {
		s.log.Warn("load payer for notification", zap.Int64("payment_id", p.ID), zap.Error(err))
		return
	}
	payload := notification.Payload{
		"paymentId": p.ID,
		"amount":    p.Amount,
	}
	if p.BookingID != nil {
		payload["bookingId"] = *p.BookingID
	}
	if reason != "" {
		payload["reason"] = reason
	}
	if err := s.notify.SendNotification(ctx, u.Email, kind, payload); err != nil {
		s.log.Warn("payment notification failed",
			zap.Int64("payment_id", p.ID),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
}
