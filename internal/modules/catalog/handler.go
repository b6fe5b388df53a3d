package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel/internal/middleware"
	"hostel/internal/pkg/request"
	"hostel/internal/pkg/response"
	"hostel/internal/pkg/validator"
)

type Handler struct {
	service      *Service
	exposeDetail bool
}

func NewHandler(service *Service, exposeDetail bool) *Handler {
	return &Handler{service: service, exposeDetail: exposeDetail}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/hostels")
	{
		g.GET("", h.ListHostels)
		g.POST("", middleware.ManagerOnly(), h.CreateHostel)
		g.GET("/:id", h.GetHostel)
		g.GET("/:id/rooms", h.ListRooms)
		g.POST("/:id/rooms", middleware.ManagerOnly(), h.CreateRoom)
	}
}

// ListHostels returns all hostels.
// @Summary		List hostels
// @Description	Returns every hostel.
// @Tags		Catalog
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{} "ok"
// @Router		/hostels [GET]
func (h *Handler) ListHostels(c *gin.Context) {
	list, err := h.service.ListHostels(c.Request.Context())
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hostels": list})
}

// CreateHostel adds a hostel.
// @Summary		Create hostel
// @Description	Managers only.
// @Tags		Catalog
// @Security	BearerAuth
// @Param		request	body	CreateHostelRequest	true	"hostel data"
// @Success		201	{object}	map[string]interface{} "created"
// @Failure		400	{object}	map[string]interface{} "validation error"
// @Failure		403	{object}	map[string]interface{} "managers only"
// @Router		/hostels [POST]
func (h *Handler) CreateHostel(c *gin.Context) {
	var req CreateHostelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	hostel, err := h.service.CreateHostel(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"hostel": hostel})
}

// GetHostel returns one hostel.
// @Summary		Get hostel
// @Tags		Catalog
// @Security	BearerAuth
// @Param		id	path	int	true	"hostel id"
// @Success		200	{object}	map[string]interface{} "ok"
// @Failure		404	{object}	map[string]interface{} "hostel not found"
// @Router		/hostels/{id} [GET]
func (h *Handler) GetHostel(c *gin.Context) {
	id, err := request.PathID(c, "id")
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	hostel, err := h.service.GetHostel(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hostel": hostel})
}

// ListRooms returns the rooms of a hostel.
// @Summary		List rooms
// @Description	Returns the hostel rooms ordered by number.
// @Tags		Catalog
// @Security	BearerAuth
// @Param		id	path	int	true	"hostel id"
// @Success		200	{object}	map[string]interface{} "ok"
// @Failure		404	{object}	map[string]interface{} "hostel not found"
// @Router		/hostels/{id}/rooms [GET]
func (h *Handler) ListRooms(c *gin.Context) {
	id, err := request.PathID(c, "id")
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	rooms, err := h.service.ListRooms(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

// CreateRoom adds a room to a hostel.
// @Summary		Create room
// @Description	Managers only. Room numbers are unique per hostel.
// @Tags		Catalog
// @Security	BearerAuth
// @Param		id	path	int	true	"hostel id"
// @Param		request	body	CreateRoomRequest	true	"room data"
// @Success		201	{object}	map[string]interface{} "created"
// @Failure		400	{object}	map[string]interface{} "validation error or duplicate room number"
// @Failure		403	{object}	map[string]interface{} "managers only"
// @Failure		404	{object}	map[string]interface{} "hostel not found"
// @Router		/hostels/{id}/rooms [POST]
func (h *Handler) CreateRoom(c *gin.Context) {
	id, err := request.PathID(c, "id")
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	room, err := h.service.CreateRoom(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"room": room})
}
