package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hostel/internal/database"
	"hostel/internal/domain"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(":memory:", &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db, ":memory:"))
	return NewStore(db)
}

func seedRoom(t *testing.T, s *Store, capacity int) (*domain.Hostel, *domain.Room, *domain.User) {
	t.Helper()
	ctx := context.Background()

	h := &domain.Hostel{Name: "Central"}
	require.NoError(t, s.Hostels.Create(ctx, h))

	room := &domain.Room{HostelID: h.ID, RoomNumber: "101", Capacity: capacity, PricePerNight: 1000}
	require.NoError(t, s.Rooms.Create(ctx, room))

	u := &domain.User{Email: " Guest@Example.com ", Name: "Guest"}
	require.NoError(t, s.Users.Create(ctx, u))
	return h, room, u
}

func addBooking(t *testing.T, s *Store, h *domain.Hostel, room *domain.Room, u *domain.User, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		RoomID:      room.ID,
		HostelID:    h.ID,
		UserID:      u.ID,
		CheckIn:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		BookingType: domain.BookingDaily,
		Status:      status,
	}
	require.NoError(t, s.Bookings.Create(context.Background(), b))
	return b
}

func TestRoomCountActiveBookings(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	h, room, u := seedRoom(t, s, 2)

	addBooking(t, s, h, room, u, domain.BookingConfirmed)
	addBooking(t, s, h, room, u, domain.BookingCheckedIn)
	addBooking(t, s, h, room, u, domain.BookingPending)
	addBooking(t, s, h, room, u, domain.BookingCancelled)

	cnt, err := s.Rooms.CountActiveBookings(ctx, room.ID, []domain.BookingStatus{domain.BookingConfirmed, domain.BookingCheckedIn})
	require.NoError(t, err)
	assert.Equal(t, int64(2), cnt)
}

func TestRoomUpdateStatusMissingRoom(t *testing.T) {
	s := setupStore(t)

	err := s.Rooms.UpdateStatus(context.Background(), 999, domain.RoomOccupied)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserEmailIsNormalized(t *testing.T) {
	s := setupStore(t)
	_, _, u := seedRoom(t, s, 1)

	assert.Equal(t, "guest@example.com", u.Email)
	got, err := s.Users.GetByEmail(context.Background(), "GUEST@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestPromoteToGuestOnlyTouchesPlainUsers(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	_, _, u := seedRoom(t, s, 1)

	admin := &domain.User{Email: "admin@example.com", Role: domain.RoleAdmin}
	require.NoError(t, s.Users.Create(ctx, admin))

	changed, err := s.Users.PromoteToGuest(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = s.Users.PromoteToGuest(ctx, admin.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	got, err := s.Users.GetByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Role)
}

func TestTransactionRollsBack(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	h, room, u := seedRoom(t, s, 1)

	err := s.Transaction(ctx, func(tx *Store) error {
		addBooking(t, tx, h, room, u, domain.BookingPending)
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	_, total, err := s.Bookings.List(ctx, BookingFilter{RoomID: room.ID})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestDeleteByBookingAndPeriodLookup(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	h, room, u := seedRoom(t, s, 1)
	b := addBooking(t, s, h, room, u, domain.BookingCheckedIn)

	p := &domain.Payment{
		BookingID:      &b.ID,
		UserID:         u.ID,
		HostelID:       h.ID,
		Amount:         500,
		Status:         domain.PaymentPending,
		ApprovalStatus: domain.ApprovalPending,
		Period:         "2024-02",
	}
	require.NoError(t, s.Payments.Create(ctx, p))

	exists, err := s.Payments.ExistsForPeriod(ctx, b.ID, "2024-02")
	require.NoError(t, err)
	assert.True(t, exists)

	n, err := s.Payments.DeleteByBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	exists, err = s.Payments.ExistsForPeriod(ctx, b.ID, "2024-02")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestReportAggregates(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	h, room, u := seedRoom(t, s, 3)
	addBooking(t, s, h, room, u, domain.BookingConfirmed)

	require.NoError(t, s.Payments.Create(ctx, &domain.Payment{
		UserID: u.ID, HostelID: h.ID, Amount: 750,
		Status: domain.PaymentCompleted, ApprovalStatus: domain.ApprovalApproved,
	}))

	counts, err := s.Reports.RoomStatusCounts(ctx, h.ID)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, string(domain.RoomAvailable), counts[0].Status)
	assert.Equal(t, int64(1), counts[0].Count)

	capacity, err := s.Reports.TotalCapacity(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), capacity)

	revenue, err := s.Reports.ApprovedRevenue(ctx, h.ID)
	require.NoError(t, err)
	assert.InDelta(t, 750.0, revenue, 0.001)
}
