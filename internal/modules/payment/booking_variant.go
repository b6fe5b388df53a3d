package payment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hostel/internal/database"
	"hostel/internal/domain"
	"hostel/internal/repository"
)

// bookingPayment approves guest payments. Approval completes the payment and
// confirms a still-pending booking; rejection leaves the booking untouched.
type bookingPayment struct{}

func (bookingPayment) lock(ctx context.Context, tx *repository.Store, id int64) (*domain.Payment, error) {
	p, err := tx.Payments.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrPaymentNotFound, "Failed to load payment")
	}
	if p.ApprovalStatus != domain.ApprovalPending {
		return nil, notPending("Payment")
	}
	return p, nil
}

func (v bookingPayment) Approve(ctx context.Context, tx *repository.Store, d Decision) (*Outcome, error) {
	p, err := v.lock(ctx, tx, d.ID)
	if err != nil {
		return nil, err
	}

	err = tx.Payments.UpdateFields(ctx, p.ID, map[string]any{
		"approval_status": domain.ApprovalApproved,
		"status":          domain.PaymentCompleted,
		"approved_by":     d.ActorID,
		"approved_at":     d.At,
	})
	if err != nil {
		return nil, database.Classify("Failed to approve payment", err)
	}
	p.ApprovalStatus = domain.ApprovalApproved
	p.Status = domain.PaymentCompleted
	p.ApprovedBy = &d.ActorID
	p.ApprovedAt = &d.At

	out := &Outcome{Type: KindBooking, Payment: p}
	if p.BookingID == nil {
		return out, nil
	}

	b, err := tx.Bookings.GetByIDForUpdate(ctx, *p.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, nil
		}
		return nil, database.Classify("Failed to load booking", err)
	}
	if b.Status == domain.BookingPending {
		if err := tx.Bookings.UpdateFields(ctx, b.ID, map[string]any{"status": domain.BookingConfirmed}); err != nil {
			return nil, database.Classify("Failed to confirm booking", err)
		}
		b.Status = domain.BookingConfirmed
		out.BookingConfirmed = true
	}
	out.Booking = b
	return out, nil
}

func (v bookingPayment) Reject(ctx context.Context, tx *repository.Store, d Decision) (*Outcome, error) {
	p, err := v.lock(ctx, tx, d.ID)
	if err != nil {
		return nil, err
	}

	err = tx.Payments.UpdateFields(ctx, p.ID, map[string]any{
		"approval_status":  domain.ApprovalRejected,
		"status":           domain.PaymentFailed,
		"rejected_by":      d.ActorID,
		"rejected_at":      d.At,
		"rejection_reason": d.Reason,
	})
	if err != nil {
		return nil, database.Classify("Failed to reject payment", err)
	}
	p.ApprovalStatus = domain.ApprovalRejected
	p.Status = domain.PaymentFailed
	p.RejectedBy = &d.ActorID
	p.RejectedAt = &d.At
	p.RejectionReason = d.Reason

	return &Outcome{Type: KindBooking, Payment: p}, nil
}
