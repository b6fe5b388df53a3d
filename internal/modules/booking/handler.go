package booking

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hostel/internal/domain"
	"hostel/internal/middleware"
	"hostel/internal/pkg/request"
	"hostel/internal/pkg/response"
	"hostel/internal/pkg/validator"
	"hostel/internal/repository"
)

type Handler struct {
	service      *Service
	exposeDetail bool
}

func NewHandler(service *Service, exposeDetail bool) *Handler {
	return &Handler{service: service, exposeDetail: exposeDetail}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/bookings")
	{
		g.POST("", h.CreateBooking)
		g.GET("", h.ListBookings)
		g.GET("/:id", h.GetBooking)
		g.PUT("/:id/status", middleware.StaffOnly(), h.UpdateStatus)
		g.DELETE("/:id", middleware.StaffOnly(), h.DeleteBooking)
	}
}

// CreateBooking books a room after checking its capacity.
// @Summary		Create booking
// @Description	Guests book for themselves and always start PENDING. Staff may pass userId and an initial status. The price is derived from the room rate when absent.
// @Tags		Bookings
// @Security	BearerAuth
// @Param		request	body	CreateBookingRequest	true	"roomId, hostelId, bookingType, checkin, checkout"
// @Success		201	{object}	map[string]interface{} "created"
// @Failure		400	{object}	map[string]interface{} "validation error or room unavailable"
// @Failure		404	{object}	map[string]interface{} "room, hostel or user not found"
// @Router		/bookings [POST]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	// Guests always book for themselves and start PENDING; only a payment
	// approval confirms their booking. Staff may book on behalf of anyone.
	if !middleware.IsStaff(c) {
		req.UserID = 0
		req.Status = ""
	}
	if req.UserID == 0 {
		req.UserID = middleware.UserID(c)
	}

	in, err := req.toInput()
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}

	b, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

// ListBookings returns a page of bookings.
// @Summary		List bookings
// @Description	Guests see only their own bookings. Staff may filter by hostel, room, user and status.
// @Tags		Bookings
// @Security	BearerAuth
// @Param		hostelId	query	int	false	"hostel id"
// @Param		roomId	query	int	false	"room id"
// @Param		userId	query	int	false	"guest id, staff only"
// @Param		status	query	string	false	"booking status"
// @Param		limit	query	int	false	"page size"
// @Param		offset	query	int	false	"page offset"
// @Success		200	{object}	map[string]interface{} "ok"
// @Failure		400	{object}	map[string]interface{} "invalid filter"
// @Router		/bookings [GET]
func (h *Handler) ListBookings(c *gin.Context) {
	f := repository.BookingFilter{
		Status: domain.BookingStatus(strings.ToUpper(c.Query("status"))),
		Limit:  request.QueryInt(c, "limit", 20),
		Offset: request.QueryInt(c, "offset", 0),
	}
	var err error
	if f.HostelID, err = request.QueryID(c, "hostelId"); err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	if f.RoomID, err = request.QueryID(c, "roomId"); err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	if f.UserID, err = request.QueryID(c, "userId"); err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	if !middleware.IsStaff(c) {
		f.UserID = middleware.UserID(c)
	}

	list, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"bookings": list,
		"total":    total,
		"limit":    f.Limit,
		"offset":   f.Offset,
	})
}

// GetBooking returns one booking.
// @Summary		Get booking
// @Description	Returns the booking with room, hostel and guest.
// @Tags		Bookings
// @Security	BearerAuth
// @Param		id	path	int	true	"booking id"
// @Success		200	{object}	map[string]interface{} "ok"
// @Failure		403	{object}	map[string]interface{} "booking of another guest"
// @Failure		404	{object}	map[string]interface{} "booking not found"
// @Router		/bookings/{id} [GET]
func (h *Handler) GetBooking(c *gin.Context) {
	id, err := request.PathID(c, "id")
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}

	b, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	if !middleware.IsStaff(c) && b.UserID != middleware.UserID(c) {
		response.FromError(c, ErrForbidden, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

// UpdateStatus moves a booking along its lifecycle.
// @Summary		Change booking status
// @Description	Staff only. Disallowed transitions are refused. The room is recalculated afterwards.
// @Tags		Bookings
// @Security	BearerAuth
// @Param		id	path	int	true	"booking id"
// @Param		request	body	UpdateStatusRequest	true	"status"
// @Success		200	{object}	map[string]interface{} "ok"
// @Failure		400	{object}	map[string]interface{} "invalid status or transition"
// @Failure		403	{object}	map[string]interface{} "staff only"
// @Failure		404	{object}	map[string]interface{} "booking not found"
// @Router		/bookings/{id}/status [PUT]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := request.PathID(c, "id")
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	status := domain.BookingStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	b, err := h.service.ChangeStatus(c.Request.Context(), id, status, middleware.UserID(c))
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

// DeleteBooking removes a booking.
// @Summary		Delete booking
// @Description	Staff only. Removes the booking and its payments. Checked-out bookings are kept.
// @Tags		Bookings
// @Security	BearerAuth
// @Param		id	path	int	true	"booking id"
// @Success		200	{object}	map[string]interface{} "ok"
// @Failure		400	{object}	map[string]interface{} "booking already checked out"
// @Failure		403	{object}	map[string]interface{} "staff only"
// @Failure		404	{object}	map[string]interface{} "booking not found"
// @Router		/bookings/{id} [DELETE]
func (h *Handler) DeleteBooking(c *gin.Context) {
	id, err := request.PathID(c, "id")
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}
