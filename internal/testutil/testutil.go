// Package testutil builds in-memory SQLite stores and fixtures for tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hostel/internal/database"
	"hostel/internal/domain"
	"hostel/internal/repository"
)

// NewStore opens a fresh, migrated in-memory database.
func NewStore(t testing.TB) *repository.Store {
	t.Helper()
	db, err := database.Open(":memory:", &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db, ":memory:"))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return repository.NewStore(db)
}

func Hostel(t testing.TB, s *repository.Store, name string) *domain.Hostel {
	t.Helper()
	h := &domain.Hostel{Name: name, City: "Nairobi"}
	require.NoError(t, s.Hostels.Create(context.Background(), h))
	return h
}

func Room(t testing.TB, s *repository.Store, hostelID int64, number string, capacity int) *domain.Room {
	t.Helper()
	r := &domain.Room{
		HostelID:      hostelID,
		RoomNumber:    number,
		Capacity:      capacity,
		PricePerNight: 1000,
		PricePerMonth: 25000,
		Status:        domain.RoomAvailable,
	}
	require.NoError(t, s.Rooms.Create(context.Background(), r))
	return r
}

func User(t testing.TB, s *repository.Store, email string, role domain.UserRole) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, Name: email, Role: role}
	require.NoError(t, s.Users.Create(context.Background(), u))
	return u
}

func Booking(t testing.TB, s *repository.Store, room *domain.Room, userID int64, status domain.BookingStatus, typ domain.BookingType) *domain.Booking {
	t.Helper()
	in := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	b := &domain.Booking{
		RoomID:      room.ID,
		HostelID:    room.HostelID,
		UserID:      userID,
		CheckIn:     in,
		CheckOut:    in.Add(48 * time.Hour),
		BookingType: typ,
		Price:       2000,
		Status:      status,
		Duration:    2,
	}
	require.NoError(t, s.Bookings.Create(context.Background(), b))
	return b
}

func Payment(t testing.TB, s *repository.Store, b *domain.Booking, amount float64) *domain.Payment {
	t.Helper()
	id := b.ID
	roomID := b.RoomID
	p := &domain.Payment{
		BookingID:      &id,
		UserID:         b.UserID,
		HostelID:       b.HostelID,
		RoomID:         &roomID,
		Amount:         amount,
		Method:         domain.MethodCash,
		Status:         domain.PaymentPending,
		ApprovalStatus: domain.ApprovalPending,
	}
	require.NoError(t, s.Payments.Create(context.Background(), p))
	return p
}
