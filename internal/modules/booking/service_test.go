package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel/internal/domain"
	"hostel/internal/modules/notification"
	"hostel/internal/modules/occupancy"
	"hostel/internal/pkg/apperr"
	"hostel/internal/repository"
	"hostel/internal/testutil"
)

var fixedNow = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

type sentNotification struct {
	email   string
	kind    domain.NotificationKind
	payload notification.Payload
}

type recordingDispatcher struct {
	mu   sync.Mutex
	sent []sentNotification
	err  error
}

func (d *recordingDispatcher) SendNotification(_ context.Context, email string, kind domain.NotificationKind, p notification.Payload) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, sentNotification{email, kind, p})
	return d.err
}

type fixture struct {
	store  *repository.Store
	svc    *Service
	notify *recordingDispatcher
	hostel *domain.Hostel
	room   *domain.Room
	guest  *domain.User
}

func setup(t *testing.T, capacity int) *fixture {
	t.Helper()
	store := testutil.NewStore(t)
	policy := occupancy.Policy{}
	notify := &recordingDispatcher{}

	svc := NewService(store,
		occupancy.NewEvaluator(store.Rooms, policy),
		occupancy.NewRecalculator(store.Rooms, policy, nil),
		notify, nil, nil)
	svc.now = func() time.Time { return fixedNow }

	h := testutil.Hostel(t, store, "Central")
	return &fixture{
		store:  store,
		svc:    svc,
		notify: notify,
		hostel: h,
		room:   testutil.Room(t, store, h.ID, "101", capacity),
		guest:  testutil.User(t, store, "guest@example.com", domain.RoleUser),
	}
}

func ptrTime(t time.Time) *time.Time { return &t }

func (f *fixture) roomStatus(t *testing.T) domain.RoomStatus {
	t.Helper()
	r, err := f.store.Rooms.GetByID(context.Background(), f.room.ID)
	require.NoError(t, err)
	return r.Status
}

func TestCreateDailyBookingComputesNightlyPrice(t *testing.T) {
	f := setup(t, 2)

	b, err := f.svc.Create(context.Background(), CreateInput{
		RoomID:      f.room.ID,
		HostelID:    f.hostel.ID,
		UserID:      f.guest.ID,
		CheckIn:     ptrTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		CheckOut:    ptrTime(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)),
		BookingType: domain.BookingDaily,
	})

	require.NoError(t, err)
	assert.InDelta(t, 2000.0, b.Price, 0.001)
	assert.Equal(t, 2, b.Duration)
	assert.Equal(t, domain.BookingPending, b.Status)
	require.NotNil(t, b.Room)
	assert.Equal(t, "101", b.Room.RoomNumber)

	u, err := f.store.Users.GetByID(context.Background(), f.guest.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleGuest, u.Role)

	require.Len(t, f.notify.sent, 1)
	assert.Equal(t, domain.NotifBookingCreated, f.notify.sent[0].kind)
	assert.Equal(t, "guest@example.com", f.notify.sent[0].email)
}

func TestCreateMonthlyBookingDefaultsWindow(t *testing.T) {
	f := setup(t, 2)

	b, err := f.svc.Create(context.Background(), CreateInput{
		RoomID:      f.room.ID,
		HostelID:    f.hostel.ID,
		UserID:      f.guest.ID,
		BookingType: domain.BookingMonthly,
	})

	require.NoError(t, err)
	assert.True(t, b.CheckIn.Equal(fixedNow), "checkin %s", b.CheckIn)
	assert.True(t, b.CheckOut.Equal(fixedNow.Add(30*24*time.Hour)), "checkout %s", b.CheckOut)
	assert.InDelta(t, f.room.PricePerMonth, b.Price, 0.001)
	assert.Equal(t, 30, b.Duration)
}

func TestCreateUsesSuppliedPrice(t *testing.T) {
	f := setup(t, 2)
	price := 1234.5

	b, err := f.svc.Create(context.Background(), CreateInput{
		RoomID: f.room.ID, HostelID: f.hostel.ID, UserID: f.guest.ID,
		BookingType: domain.BookingMonthly, Price: &price,
	})

	require.NoError(t, err)
	assert.InDelta(t, 1234.5, b.Price, 0.001)
}

func TestCreateRejectsFullRoom(t *testing.T) {
	f := setup(t, 1)
	testutil.Booking(t, f.store, f.room, f.guest.ID, domain.BookingConfirmed, domain.BookingDaily)

	_, err := f.svc.Create(context.Background(), CreateInput{
		RoomID: f.room.ID, HostelID: f.hostel.ID, UserID: f.guest.ID, BookingType: domain.BookingMonthly,
	})

	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
	assert.Contains(t, err.Error(), "1/1")
}

func TestCreateRejectsRoomUnderMaintenance(t *testing.T) {
	f := setup(t, 3)
	require.NoError(t, f.store.Rooms.UpdateStatus(context.Background(), f.room.ID, domain.RoomMaintenance))

	_, err := f.svc.Create(context.Background(), CreateInput{
		RoomID: f.room.ID, HostelID: f.hostel.ID, UserID: f.guest.ID, BookingType: domain.BookingMonthly,
	})

	assert.True(t, apperr.IsConflict(err))
	assert.Contains(t, err.Error(), "MAINTENANCE")
}

func TestCreateValidation(t *testing.T) {
	f := setup(t, 1)
	other := testutil.Hostel(t, f.store, "Annex")

	cases := []struct {
		name string
		in   CreateInput
		kind apperr.Kind
	}{
		{"missing room", CreateInput{RoomID: 999, HostelID: f.hostel.ID, UserID: f.guest.ID, BookingType: domain.BookingMonthly}, apperr.KindNotFound},
		{"missing hostel", CreateInput{RoomID: f.room.ID, HostelID: 999, UserID: f.guest.ID, BookingType: domain.BookingMonthly}, apperr.KindNotFound},
		{"wrong hostel", CreateInput{RoomID: f.room.ID, HostelID: other.ID, UserID: f.guest.ID, BookingType: domain.BookingMonthly}, apperr.KindInvalidInput},
		{"bad type", CreateInput{RoomID: f.room.ID, HostelID: f.hostel.ID, UserID: f.guest.ID, BookingType: "WEEKLY"}, apperr.KindInvalidInput},
		{"daily without dates", CreateInput{RoomID: f.room.ID, HostelID: f.hostel.ID, UserID: f.guest.ID, BookingType: domain.BookingDaily}, apperr.KindInvalidInput},
		{"terminal status", CreateInput{RoomID: f.room.ID, HostelID: f.hostel.ID, UserID: f.guest.ID, BookingType: domain.BookingMonthly, Status: domain.BookingCheckedOut}, apperr.KindInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), tc.in)
			require.Error(t, err)
			assert.Equal(t, tc.kind, apperr.KindOf(err))
		})
	}

	_, total, err := f.store.Bookings.List(context.Background(), repository.BookingFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCreateSurvivesNotificationFailure(t *testing.T) {
	f := setup(t, 1)
	f.notify.err = errors.New("smtp down")

	_, err := f.svc.Create(context.Background(), CreateInput{
		RoomID: f.room.ID, HostelID: f.hostel.ID, UserID: f.guest.ID, BookingType: domain.BookingMonthly,
	})
	assert.NoError(t, err)
}

func TestCreateKeepsStaffRole(t *testing.T) {
	f := setup(t, 1)
	admin := testutil.User(t, f.store, "admin@example.com", domain.RoleAdmin)

	_, err := f.svc.Create(context.Background(), CreateInput{
		RoomID: f.room.ID, HostelID: f.hostel.ID, UserID: admin.ID, BookingType: domain.BookingMonthly,
	})
	require.NoError(t, err)

	u, err := f.store.Users.GetByID(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)
}

func TestChangeStatusConfirmOccupiesRoom(t *testing.T) {
	f := setup(t, 1)
	b := testutil.Booking(t, f.store, f.room, f.guest.ID, domain.BookingPending, domain.BookingDaily)

	got, err := f.svc.ChangeStatus(context.Background(), b.ID, domain.BookingConfirmed, 1)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, got.Status)
	assert.Equal(t, domain.RoomOccupied, f.roomStatus(t))

	require.Len(t, f.notify.sent, 1)
	assert.Equal(t, domain.NotifBookingStatusChanged, f.notify.sent[0].kind)
	assert.Equal(t, "PENDING", f.notify.sent[0].payload["from"])
	assert.Equal(t, "CONFIRMED", f.notify.sent[0].payload["to"])
}

func TestChangeStatusCheckoutFreesRoom(t *testing.T) {
	f := setup(t, 1)
	b := testutil.Booking(t, f.store, f.room, f.guest.ID, domain.BookingCheckedIn, domain.BookingDaily)
	require.NoError(t, f.store.Rooms.UpdateStatus(context.Background(), f.room.ID, domain.RoomOccupied))

	_, err := f.svc.ChangeStatus(context.Background(), b.ID, domain.BookingCheckedOut, 1)

	require.NoError(t, err)
	assert.Equal(t, domain.RoomAvailable, f.roomStatus(t))
}

func TestChangeStatusCancelStampsActor(t *testing.T) {
	f := setup(t, 2)
	b := testutil.Booking(t, f.store, f.room, f.guest.ID, domain.BookingConfirmed, domain.BookingDaily)

	got, err := f.svc.ChangeStatus(context.Background(), b.ID, domain.BookingCancelled, 77)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, got.Status)
	require.NotNil(t, got.CancelledAt)
	require.NotNil(t, got.CancelledBy)
	assert.Equal(t, int64(77), *got.CancelledBy)
}

func TestChangeStatusErrors(t *testing.T) {
	f := setup(t, 2)
	done := testutil.Booking(t, f.store, f.room, f.guest.ID, domain.BookingCheckedOut, domain.BookingDaily)
	ctx := context.Background()

	_, err := f.svc.ChangeStatus(ctx, done.ID, "ARCHIVED", 1)
	assert.True(t, apperr.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "CHECKED_IN")

	_, err = f.svc.ChangeStatus(ctx, 999, domain.BookingConfirmed, 1)
	assert.True(t, apperr.IsNotFound(err))

	_, err = f.svc.ChangeStatus(ctx, done.ID, domain.BookingPending, 1)
	assert.True(t, apperr.IsConflict(err))

	got, err := f.svc.ChangeStatus(ctx, done.ID, domain.BookingCheckedOut, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCheckedOut, got.Status)
	assert.Empty(t, f.notify.sent)
}

func TestDeleteCheckedOutIsAlwaysRefused(t *testing.T) {
	f := setup(t, 5)
	for _, typ := range []domain.BookingType{domain.BookingDaily, domain.BookingMonthly} {
		b := testutil.Booking(t, f.store, f.room, f.guest.ID, domain.BookingCheckedOut, typ)
		testutil.Payment(t, f.store, b, 500)

		err := f.svc.Delete(context.Background(), b.ID)
		assert.True(t, apperr.IsConflict(err))

		_, err = f.store.Bookings.GetByID(context.Background(), b.ID)
		assert.NoError(t, err)
	}
}

func TestDeleteRemovesPaymentsAndRecalculates(t *testing.T) {
	f := setup(t, 1)
	b := testutil.Booking(t, f.store, f.room, f.guest.ID, domain.BookingConfirmed, domain.BookingDaily)
	testutil.Payment(t, f.store, b, 500)
	testutil.Payment(t, f.store, b, 700)
	require.NoError(t, f.store.Rooms.UpdateStatus(context.Background(), f.room.ID, domain.RoomOccupied))

	require.NoError(t, f.svc.Delete(context.Background(), b.ID))

	_, err := f.svc.Get(context.Background(), b.ID)
	assert.True(t, apperr.IsNotFound(err))

	payments, err := f.store.Payments.List(context.Background(), repository.PaymentFilter{BookingID: b.ID})
	require.NoError(t, err)
	assert.Empty(t, payments)
	assert.Equal(t, domain.RoomAvailable, f.roomStatus(t))

	assert.True(t, apperr.IsNotFound(f.svc.Delete(context.Background(), b.ID)))
}

func TestListFiltersByStatus(t *testing.T) {
	f := setup(t, 5)
	testutil.Booking(t, f.store, f.room, f.guest.ID, domain.BookingPending, domain.BookingDaily)
	testutil.Booking(t, f.store, f.room, f.guest.ID, domain.BookingConfirmed, domain.BookingDaily)

	list, total, err := f.svc.List(context.Background(), repository.BookingFilter{Status: domain.BookingConfirmed})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	_, _, err = f.svc.List(context.Background(), repository.BookingFilter{Status: "NOPE"})
	assert.True(t, apperr.IsInvalidInput(err))
}
