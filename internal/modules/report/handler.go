package report

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel/internal/middleware"
	"hostel/internal/pkg/apperr"
	"hostel/internal/pkg/request"
	"hostel/internal/pkg/response"
)

type Handler struct {
	service      *Service
	exposeDetail bool
}

func NewHandler(service *Service, exposeDetail bool) *Handler {
	return &Handler{service: service, exposeDetail: exposeDetail}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/occupancy", middleware.ManagerOnly(), h.Occupancy)
	rg.GET("/bookings/:id/invoice", h.Invoice)
}

// Occupancy builds the hostel occupancy report.
// @Summary		Occupancy report
// @Description	Managers only. Rooms by status, active bookings, occupancy rate and approved revenue.
// @Tags		Reports
// @Security	BearerAuth
// @Param		hostelId	query	int	true	"hostel id"
// @Success		200	{object}	map[string]interface{} "ok"
// @Failure		400	{object}	map[string]interface{} "hostelId is required"
// @Failure		404	{object}	map[string]interface{} "hostel not found"
// @Router		/reports/occupancy [GET]
func (h *Handler) Occupancy(c *gin.Context) {
	hostelID, err := request.QueryID(c, "hostelId")
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	if hostelID == 0 {
		response.FromError(c, apperr.InvalidInput("VALIDATION_ERROR", "hostelId is required"), h.exposeDetail)
		return
	}

	rep, err := h.service.Occupancy(c.Request.Context(), hostelID)
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusOK, rep)
}

// Invoice streams the booking invoice as a PDF.
// @Summary		Booking invoice
// @Description	Guests may only download their own invoices.
// @Tags		Reports
// @Security	BearerAuth
// @Param		id	path	int	true	"booking id"
// @Success		200	{object}	map[string]interface{} "ok"
// @Failure		403	{object}	map[string]interface{} "booking of another guest"
// @Failure		404	{object}	map[string]interface{} "booking not found"
// @Router		/bookings/{id}/invoice [GET]
func (h *Handler) Invoice(c *gin.Context) {
	id, err := request.PathID(c, "id")
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}

	data, filename, err := h.service.Invoice(c.Request.Context(), id, middleware.UserID(c), middleware.IsStaff(c))
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
