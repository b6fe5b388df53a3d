package booking

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel/internal/domain"
	"hostel/internal/testutil"
)

func routerAs(f *fixture, userID int64, role domain.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", string(role))
		c.Next()
	})
	NewHandler(f.svc, true).RegisterRoutes(api)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerCreateBookingForcesGuestIdentity(t *testing.T) {
	f := setup(t, 2)
	other := testutil.User(t, f.store, "other@example.com", domain.RoleUser)

	body := fmt.Sprintf(`{"roomId":%d,"hostelId":%d,"userId":%d,"checkin":"2024-01-01","checkout":"2024-01-03","bookingType":"daily"}`,
		f.room.ID, f.hostel.ID, other.ID)
	w := do(routerAs(f, f.guest.ID, domain.RoleUser), http.MethodPost, "/api/v1/bookings", body)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Booking domain.Booking `json:"booking"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, f.guest.ID, resp.Data.Booking.UserID)
	assert.InDelta(t, 2000.0, resp.Data.Booking.Price, 0.001)
}

func TestHandlerCreateBookingUnavailableIsBadRequest(t *testing.T) {
	f := setup(t, 1)
	testutil.Booking(t, f.store, f.room, f.guest.ID, domain.BookingCheckedIn, domain.BookingDaily)

	body := fmt.Sprintf(`{"roomId":%d,"hostelId":%d,"bookingType":"MONTHLY"}`, f.room.ID, f.hostel.ID)
	w := do(routerAs(f, f.guest.ID, domain.RoleGuest), http.MethodPost, "/api/v1/bookings", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ROOM_UNAVAILABLE")
}

func TestHandlerGetBookingOfAnotherGuestIsForbidden(t *testing.T) {
	f := setup(t, 2)
	b := testutil.Booking(t, f.store, f.room, f.guest.ID, domain.BookingPending, domain.BookingDaily)
	intruder := testutil.User(t, f.store, "intruder@example.com", domain.RoleGuest)

	w := do(routerAs(f, intruder.ID, domain.RoleGuest), http.MethodGet, fmt.Sprintf("/api/v1/bookings/%d", b.ID), "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(routerAs(f, 1, domain.RoleStaff), http.MethodGet, fmt.Sprintf("/api/v1/bookings/%d", b.ID), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandlerStatusAndDeleteRoutes(t *testing.T) {
	f := setup(t, 2)
	b := testutil.Booking(t, f.store, f.room, f.guest.ID, domain.BookingPending, domain.BookingDaily)
	path := fmt.Sprintf("/api/v1/bookings/%d", b.ID)

	w := do(routerAs(f, f.guest.ID, domain.RoleGuest), http.MethodDelete, path, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	staff := routerAs(f, 1, domain.RoleStaff)
	w = do(staff, http.MethodPut, path+"/status", `{"status":"bogus"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATUS")

	w = do(staff, http.MethodPut, path+"/status", `{"status":"confirmed"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CONFIRMED")

	w = do(staff, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(staff, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerCreateBookingIgnoresGuestStatus(t *testing.T) {
	f := setup(t, 1)

	body := fmt.Sprintf(`{"roomId":%d,"hostelId":%d,"checkin":"2024-01-01","checkout":"2024-01-03","bookingType":"DAILY","status":"CHECKED_IN"}`,
		f.room.ID, f.hostel.ID)
	w := do(routerAs(f, f.guest.ID, domain.RoleUser), http.MethodPost, "/api/v1/bookings", body)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Data struct {
			Booking domain.Booking `json:"booking"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.BookingPending, resp.Data.Booking.Status)
	assert.Equal(t, domain.RoomAvailable, f.roomStatus(t))
}

func TestHandlerCreateBookingStaffMayChooseStatus(t *testing.T) {
	f := setup(t, 1)

	body := fmt.Sprintf(`{"roomId":%d,"hostelId":%d,"userId":%d,"checkin":"2024-01-01","checkout":"2024-01-03","bookingType":"DAILY","status":"CHECKED_IN"}`,
		f.room.ID, f.hostel.ID, f.guest.ID)
	w := do(routerAs(f, 1, domain.RoleStaff), http.MethodPost, "/api/v1/bookings", body)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"CHECKED_IN"`)
	assert.Equal(t, domain.RoomOccupied, f.roomStatus(t))
}
