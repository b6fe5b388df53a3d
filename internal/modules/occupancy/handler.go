package occupancy

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel/internal/domain"
	"hostel/internal/middleware"
	"hostel/internal/pkg/apperr"
	"hostel/internal/pkg/request"
	"hostel/internal/pkg/response"
	"hostel/internal/pkg/validator"
)

type Handler struct {
	eval         *Evaluator
	recalc       *Recalculator
	exposeDetail bool
}

func NewHandler(eval *Evaluator, recalc *Recalculator, exposeDetail bool) *Handler {
	return &Handler{eval: eval, recalc: recalc, exposeDetail: exposeDetail}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/availability", h.CheckAvailability)

	rooms := rg.Group("/rooms")
	rooms.GET("/:id/occupancy", h.GetOccupancy)
	rooms.PUT("/:id/status", middleware.ManagerOnly(), h.SetStatus)
	rooms.POST("/recalculate", middleware.ManagerOnly(), h.RecalculateAll)
}

// CheckAvailability reports whether a room can take another booking.
// @Summary		Check room availability
// @Description	Read only. Unavailable rooms carry a reason.
// @Tags		Occupancy
// @Security	BearerAuth
// @Param		roomId	query	int	true	"room id"
// @Success		200	{object}	map[string]interface{} "ok"
// @Failure		400	{object}	map[string]interface{} "roomId is required"
// @Router		/availability [GET]
func (h *Handler) CheckAvailability(c *gin.Context) {
	roomID, err := request.QueryID(c, "roomId")
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	if roomID == 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "roomId is required")
		return
	}

	av, err := h.eval.CheckAvailability(c.Request.Context(), roomID)
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusOK, av)
}

// GetOccupancy returns the room's live counts.
// @Summary		Room occupancy
// @Description	Returns active bookings, capacity and status.
// @Tags		Occupancy
// @Security	BearerAuth
// @Param		id	path	int	true	"room id"
// @Success		200	{object}	map[string]interface{} "ok"
// @Failure		404	{object}	map[string]interface{} "room not found"
// @Router		/rooms/{id}/occupancy [GET]
func (h *Handler) GetOccupancy(c *gin.Context) {
	roomID, err := request.PathID(c, "id")
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}

	av, err := h.eval.CheckAvailability(c.Request.Context(), roomID)
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	if av.Status == "" {
		response.FromError(c, apperr.NotFound("ROOM_NOT_FOUND", "Room not found"), h.exposeDetail)
		return
	}
	response.Success(c, http.StatusOK, av)
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SetStatus applies a manual room status.
// @Summary		Set room status
// @Description	Managers only. MAINTENANCE and OUT_OF_ORDER hold the room; AVAILABLE or OCCUPIED release it and recalculate.
// @Tags		Occupancy
// @Security	BearerAuth
// @Param		id	path	int	true	"room id"
// @Param		request	body	setStatusRequest	true	"status"
// @Success		200	{object}	map[string]interface{} "ok"
// @Failure		400	{object}	map[string]interface{} "invalid status"
// @Failure		404	{object}	map[string]interface{} "room not found"
// @Router		/rooms/{id}/status [PUT]
func (h *Handler) SetStatus(c *gin.Context) {
	roomID, err := request.PathID(c, "id")
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	res, err := h.recalc.SetStatus(c.Request.Context(), roomID, domain.RoomStatus(req.Status))
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// RecalculateAll runs a global recalculation pass.
// @Summary		Recalculate all rooms
// @Description	Managers only. Returns the pass summary.
// @Tags		Occupancy
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{} "ok"
// @Failure		403	{object}	map[string]interface{} "managers only"
// @Router		/rooms/recalculate [POST]
func (h *Handler) RecalculateAll(c *gin.Context) {
	sum, err := h.recalc.RecalculateAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusOK, sum)
}
