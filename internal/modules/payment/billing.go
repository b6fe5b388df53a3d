package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"hostel/internal/database"
	"hostel/internal/domain"
	"hostel/internal/modules/mirror"
	"hostel/internal/repository"
)

// Billing raises one pending charge per checked-in monthly booking and
// period.
type Billing struct {
	store  *repository.Store
	mirror mirror.Mirror
	log    *zap.Logger
	now    func() time.Time
}

func NewBilling(store *repository.Store, mir mirror.Mirror, log *zap.Logger) *Billing {
	if mir == nil {
		mir = mirror.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Billing{store: store, mirror: mir, log: log, now: time.Now}
}

// GenerateMonthlyCharges creates the charges for period (YYYY-MM) and
// returns how many were created. Bookings already charged for the period
// are skipped, so repeated runs are harmless.
func (b *Billing) GenerateMonthlyCharges(ctx context.Context, period string) (int, error) {
	if _, err := time.Parse("2006-01", period); err != nil {
		return 0, ErrInvalidPeriod
	}

	bookings, err := b.store.Bookings.ListBillable(ctx)
	if err != nil {
		return 0, database.Classify("Failed to list billable bookings", err)
	}

	var (
		created int
		errs    []error
	)
	for i := range bookings {
		bk := &bookings[i]
		var charge *domain.Payment
		err := b.store.Transaction(ctx, func(tx *repository.Store) error {
			charge = nil
			exists, err := tx.Payments.ExistsForPeriod(ctx, bk.ID, period)
			if err != nil || exists {
				return err
			}
			charge = &domain.Payment{
				BookingID:      &bk.ID,
				UserID:         bk.UserID,
				HostelID:       bk.HostelID,
				RoomID:         &bk.RoomID,
				Amount:         bk.Price,
				Method:         domain.MethodCash,
				Status:         domain.PaymentPending,
				ApprovalStatus: domain.ApprovalPending,
				Period:         period,
				Notes:          fmt.Sprintf("Monthly charge %s", period),
			}
			return tx.Payments.Create(ctx, charge)
		})
		if err != nil {
			b.log.Error("monthly charge failed", zap.Int64("booking_id", bk.ID), zap.String("period", period), zap.Error(err))
			errs = append(errs, fmt.Errorf("booking %d: %w", bk.ID, err))
			continue
		}
		if charge != nil {
			created++
			b.mirror.RecordPayment(mirror.PaymentFrom("billed", charge, b.now()))
		}
	}

	b.log.Info("monthly billing finished",
		zap.String("period", period),
		zap.Int("billable", len(bookings)),
		zap.Int("created", created),
	)
	return created, errors.Join(errs...)
}
