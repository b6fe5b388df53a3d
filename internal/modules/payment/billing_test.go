package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel/internal/domain"
	"hostel/internal/repository"
	"hostel/internal/testutil"
)

func TestGenerateMonthlyChargesIsIdempotent(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()
	h := testutil.Hostel(t, store, "Central")
	room := testutil.Room(t, store, h.ID, "201", 4)
	guest := testutil.User(t, store, "guest@example.com", domain.RoleGuest)

	billed := testutil.Booking(t, store, room, guest.ID, domain.BookingCheckedIn, domain.BookingMonthly)
	testutil.Booking(t, store, room, guest.ID, domain.BookingCheckedIn, domain.BookingDaily)
	testutil.Booking(t, store, room, guest.ID, domain.BookingPending, domain.BookingMonthly)

	billing := NewBilling(store, nil, nil)
	billing.now = func() time.Time { return fixedNow }

	created, err := billing.GenerateMonthlyCharges(ctx, "2024-06")
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	created, err = billing.GenerateMonthlyCharges(ctx, "2024-06")
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	created, err = billing.GenerateMonthlyCharges(ctx, "2024-07")
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	charges, err := store.Payments.List(ctx, repository.PaymentFilter{BookingID: billed.ID})
	require.NoError(t, err)
	require.Len(t, charges, 2)
	for _, c := range charges {
		assert.Equal(t, domain.ApprovalPending, c.ApprovalStatus)
		assert.InDelta(t, billed.Price, c.Amount, 0.001)
	}
}

func TestGenerateMonthlyChargesRejectsBadPeriod(t *testing.T) {
	billing := NewBilling(testutil.NewStore(t), nil, nil)

	_, err := billing.GenerateMonthlyCharges(context.Background(), "June")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
