package report

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel/internal/domain"
	"hostel/internal/modules/occupancy"
	"hostel/internal/repository"
	"hostel/internal/testutil"
)

var fixedNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store  *repository.Store
	svc    *Service
	hostel *domain.Hostel
	guest  *domain.User
	b      *domain.Booking
}

func setup(t *testing.T) *fixture {
	t.Helper()
	store := testutil.NewStore(t)
	ctx := context.Background()

	h := testutil.Hostel(t, store, "Central")
	r1 := testutil.Room(t, store, h.ID, "101", 2)
	r2 := testutil.Room(t, store, h.ID, "102", 2)
	r3 := testutil.Room(t, store, h.ID, "103", 4)
	require.NoError(t, store.Rooms.UpdateStatus(ctx, r2.ID, domain.RoomOccupied))
	require.NoError(t, store.Rooms.UpdateStatus(ctx, r3.ID, domain.RoomMaintenance))

	guest := testutil.User(t, store, "guest@example.com", domain.RoleGuest)
	b := testutil.Booking(t, store, r1, guest.ID, domain.BookingCheckedIn, domain.BookingDaily)
	testutil.Booking(t, store, r2, guest.ID, domain.BookingConfirmed, domain.BookingDaily)
	testutil.Booking(t, store, r2, guest.ID, domain.BookingCancelled, domain.BookingDaily)

	paid := testutil.Payment(t, store, b, 1500)
	require.NoError(t, store.Payments.UpdateFields(ctx, paid.ID, map[string]any{"approval_status": domain.ApprovalApproved}))
	testutil.Payment(t, store, b, 500)

	svc := NewService(store, occupancy.Policy{})
	svc.now = func() time.Time { return fixedNow }
	return &fixture{store: store, svc: svc, hostel: h, guest: guest, b: b}
}

func TestOccupancyReport(t *testing.T) {
	f := setup(t)

	rep, err := f.svc.Occupancy(context.Background(), f.hostel.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(3), rep.TotalRooms)
	assert.Equal(t, int64(1), rep.RoomsByStatus["AVAILABLE"])
	assert.Equal(t, int64(1), rep.RoomsByStatus["OCCUPIED"])
	assert.Equal(t, int64(1), rep.RoomsByStatus["MAINTENANCE"])
	assert.Equal(t, int64(8), rep.TotalCapacity)
	assert.Equal(t, int64(2), rep.ActiveBookings)
	assert.InDelta(t, 25.0, rep.OccupancyRate, 0.001)
	assert.InDelta(t, 1500.0, rep.ApprovedRevenue, 0.001)
}

func TestOccupancyReportUnknownHostel(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Occupancy(context.Background(), 999)
	assert.ErrorIs(t, err, ErrHostelNotFound)
}

func TestInvoice(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	data, name, err := f.svc.Invoice(ctx, f.b.ID, f.guest.ID, false)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Equal(t, fmt.Sprintf("INVOICE_%d_20240101.pdf", f.b.ID), name)

	_, _, err = f.svc.Invoice(ctx, f.b.ID, f.guest.ID+100, false)
	assert.ErrorIs(t, err, ErrForbidden)

	_, _, err = f.svc.Invoice(ctx, f.b.ID, 0, true)
	assert.NoError(t, err)

	_, _, err = f.svc.Invoice(ctx, 999, 0, true)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestHandlerRoutes(t *testing.T) {
	f := setup(t)
	gin.SetMode(gin.TestMode)

	as := func(role domain.UserRole) *gin.Engine {
		r := gin.New()
		api := r.Group("/api/v1", func(c *gin.Context) {
			c.Set("user_id", f.guest.ID)
			c.Set("role", string(role))
			c.Next()
		})
		NewHandler(f.svc, true).RegisterRoutes(api)
		return r
	}
	get := func(r *gin.Engine, path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := get(as(domain.RoleGuest), fmt.Sprintf("/api/v1/reports/occupancy?hostelId=%d", f.hostel.ID))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = get(as(domain.RoleManager), "/api/v1/reports/occupancy")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(as(domain.RoleManager), fmt.Sprintf("/api/v1/reports/occupancy?hostelId=%d", f.hostel.ID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"occupancyRate":25`)

	w = get(as(domain.RoleGuest), fmt.Sprintf("/api/v1/bookings/%d/invoice", f.b.ID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "INVOICE_")
}
