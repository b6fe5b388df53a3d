package repository

import (
	"context"

	"gorm.io/gorm"

	"hostel/internal/database"
)

// Store groups the repositories that share one connection or transaction.
type Store struct {
	db *gorm.DB

	Users         *UserRepository
	Hostels       *HostelRepository
	Rooms         *RoomRepository
	Bookings      *BookingRepository
	Payments      *PaymentRepository
	Salaries      *SalaryRepository
	Expenses      *ExpenseRepository
	Notifications *NotificationRepository
	Reports       *ReportRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Users:         NewUserRepository(db),
		Hostels:       NewHostelRepository(db),
		Rooms:         NewRoomRepository(db),
		Bookings:      NewBookingRepository(db),
		Payments:      NewPaymentRepository(db),
		Salaries:      NewSalaryRepository(db),
		Expenses:      NewExpenseRepository(db),
		Notifications: NewNotificationRepository(db),
		Reports:       NewReportRepository(db),
	}
}

func (s *Store) DB() *gorm.DB { return s.db }

func newTxStore(tx *gorm.DB) *Store {
	s := NewStore(tx)
	s.Rooms.inTx = true
	return s
}

// Transaction runs fn against a Store bound to a single database transaction.
// Returning an error from fn rolls everything back. A transient failure
// restarts the whole transaction, so fn must not leak state between attempts.
// Repositories inside fn never retry single statements: after a serialization
// failure Postgres rejects everything until rollback.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	err := database.WithRetry(ctx, func(ctx context.Context) error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(newTxStore(tx))
		})
	})
	if err != nil && database.IsTransient(err) {
		return database.Classify("Database temporarily unavailable", err)
	}
	return err
}
