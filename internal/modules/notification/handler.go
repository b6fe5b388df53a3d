package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel/internal/middleware"
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

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/notifications")
	{
		g.GET("", h.GetNotifications)
		g.PUT("/:id/read", h.MarkAsRead)
	}
}

// GetNotifications returns the caller's inbox.
// @Summary		List notifications
// @Description	Returns the inbox of the current user.
// @Tags		Notifications
// @Security	BearerAuth
// @Param		unread	query	boolean	false	"only unread"
// @Success		200	{object}	map[string]interface{} "ok"
// @Router		/notifications [GET]
func (h *Handler) GetNotifications(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	limit := request.QueryInt(c, "limit", 20)
	list, unread, err := h.service.GetUserNotifications(c.Request.Context(), userID, c.Query("unread") == "true", limit)
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"notifications": list,
		"unread_count":  unread,
	})
}

// MarkAsRead marks one notification as read.
// @Summary		Mark notification read
// @Tags		Notifications
// @Security	BearerAuth
// @Param		id	path	int	true	"notification id"
// @Success		200	{object}	map[string]interface{} "ok"
// @Failure		404	{object}	map[string]interface{} "notification not found"
// @Router		/notifications/{id}/read [PUT]
func (h *Handler) MarkAsRead(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	id, err := request.PathID(c, "id")
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}

	if err := h.service.MarkAsRead(c.Request.Context(), id, userID); err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "is_read": true})
}
