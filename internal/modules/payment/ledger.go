package payment

import (
	"context"
	"strings"
	"time"

	"hostel/internal/database"
	"hostel/internal/domain"
	"hostel/internal/modules/mirror"
	"hostel/internal/repository"
)

// Actor is the authenticated caller.
type Actor struct {
	ID    int64
	Staff bool
}

type PaymentInput struct {
	BookingID int64
	Amount    float64
	Method    domain.PaymentMethod
	Notes     string
}

type SalaryInput struct {
	HostelID   int64
	EmployeeID int64
	Amount     float64
	Month      string
}

type ExpenseInput struct {
	HostelID    int64
	Category    string
	Description string
	Amount      float64
}

// RecordPayment registers a pending payment against a booking. Guests may
// only pay for their own bookings.
func (s *Service) RecordPayment(ctx context.Context, in PaymentInput, actor Actor) (*domain.Payment, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if in.Method == "" {
		in.Method = domain.MethodCash
	}
	if !in.Method.IsValid() {
		return nil, ErrInvalidMethod
	}

	b, err := s.store.Bookings.GetByID(ctx, in.BookingID)
	if err != nil {
		return nil, notFoundOr(err, ErrBookingNotFound, "Failed to load booking")
	}
	if !actor.Staff && b.UserID != actor.ID {
		return nil, ErrForbidden
	}

	p := &domain.Payment{
		BookingID:      &b.ID,
		UserID:         b.UserID,
		HostelID:       b.HostelID,
		RoomID:         &b.RoomID,
		Amount:         in.Amount,
		Method:         in.Method,
		Status:         domain.PaymentPending,
		ApprovalStatus: domain.ApprovalPending,
		Notes:          in.Notes,
	}
	if err := s.store.Payments.Create(ctx, p); err != nil {
		return nil, database.Classify("Failed to record payment", err)
	}
	s.mirror.RecordPayment(mirror.PaymentFrom("created", p, s.now()))
	return p, nil
}

func (s *Service) ListPayments(ctx context.Context, f repository.PaymentFilter) ([]domain.Payment, error) {
	list, err := s.store.Payments.List(ctx, f)
	if err != nil {
		return nil, database.Classify("Failed to list payments", err)
	}
	return list, nil
}

func (s *Service) CreateSalary(ctx context.Context, in SalaryInput) (*domain.Salary, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if _, err := time.Parse("2006-01", in.Month); err != nil {
		return nil, ErrInvalidPeriod
	}
	if _, err := s.store.Hostels.GetByID(ctx, in.HostelID); err != nil {
		return nil, notFoundOr(err, ErrHostelNotFound, "Failed to load hostel")
	}
	if _, err := s.store.Users.GetByID(ctx, in.EmployeeID); err != nil {
		return nil, notFoundOr(err, ErrEmployeeNotFound, "Failed to load employee")
	}

	sal := &domain.Salary{
		HostelID:   in.HostelID,
		EmployeeID: in.EmployeeID,
		Amount:     in.Amount,
		Month:      in.Month,
		Status:     domain.SalaryPending,
	}
	if err := s.store.Salaries.Create(ctx, sal); err != nil {
		return nil, database.Classify("Failed to create salary", err)
	}
	return sal, nil
}

func (s *Service) ListSalaries(ctx context.Context, hostelID int64, status domain.SalaryStatus) ([]domain.Salary, error) {
	list, err := s.store.Salaries.List(ctx, hostelID, status)
	if err != nil {
		return nil, database.Classify("Failed to list salaries", err)
	}
	return list, nil
}

func (s *Service) SubmitExpense(ctx context.Context, in ExpenseInput, submittedBy int64) (*domain.Expense, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if _, err := s.store.Hostels.GetByID(ctx, in.HostelID); err != nil {
		return nil, notFoundOr(err, ErrHostelNotFound, "Failed to load hostel")
	}

	e := &domain.Expense{
		HostelID:    in.HostelID,
		Category:    strings.TrimSpace(in.Category),
		Description: in.Description,
		Amount:      in.Amount,
		Status:      domain.ExpensePending,
		SubmittedBy: submittedBy,
	}
	if err := s.store.Expenses.Create(ctx, e); err != nil {
		return nil, database.Classify("Failed to submit expense", err)
	}
	return e, nil
}

func (s *Service) ListExpenses(ctx context.Context, hostelID int64, status domain.ExpenseStatus) ([]domain.Expense, error) {
	list, err := s.store.Expenses.List(ctx, hostelID, status)
	if err != nil {
		return nil, database.Classify("Failed to list expenses", err)
	}
	return list, nil
}
