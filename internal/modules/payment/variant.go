package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"hostel/internal/database"
	"hostel/internal/domain"
	"hostel/internal/pkg/apperr"
	"hostel/internal/repository"
)

// Kind discriminates the approval-bearing entities.
type Kind string

const (
	KindBooking Kind = "booking"
	KindSalary  Kind = "salary"
	KindExpense Kind = "expense"
)

// ParseKind accepts the request discriminator. An empty value means a
// booking payment.
func ParseKind(raw string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(raw))); k {
	case "":
		return KindBooking, nil
	case KindBooking, KindSalary, KindExpense:
		return k, nil
	}
	return "", ErrUnknownType
}

// Decision is one approval or rejection request.
type Decision struct {
	ID      int64
	ActorID int64
	Reason  string
	At      time.Time
}

// Outcome is the state after a committed decision.
type Outcome struct {
	Type    Kind            `json:"type"`
	Payment *domain.Payment `json:"payment,omitempty"`
	Salary  *domain.Salary  `json:"salary,omitempty"`
	Expense *domain.Expense `json:"expense,omitempty"`
	Booking *domain.Booking `json:"booking,omitempty"`

	// BookingConfirmed is set when approval promoted the parent booking.
	BookingConfirmed bool `json:"bookingConfirmed"`
}

// Variant owns the guard, transition and cascade of one entity kind. Both
// methods run inside the caller's transaction.
type Variant interface {
	Approve(ctx context.Context, tx *repository.Store, d Decision) (*Outcome, error)
	Reject(ctx context.Context, tx *repository.Store, d Decision) (*Outcome, error)
}

func notPending(entity string) error {
	return ErrNotPending.WithMessage("%s is not pending approval", entity)
}

func notFoundOr(err error, notFound *apperr.Error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return database.Classify(msg, err)
}
