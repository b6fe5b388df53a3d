package live

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"hostel/internal/middleware"
	"hostel/internal/pkg/response"
)

type Handler struct {
	hub      *Hub
	tokens   middleware.TokenValidator
	upgrader websocket.Upgrader
}

// NewHandler builds the websocket endpoint. An empty origin list accepts
// any origin.
func NewHandler(hub *Hub, tokens middleware.TokenValidator, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}
	return &Handler{
		hub:    hub,
		tokens: tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin]
			},
		},
	}
}

// RegisterRoutes mounts GET /ws/rooms on a public group; the token travels in
// the query string.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/rooms", h.ServeRooms)
}

// ServeRooms upgrades to a websocket. ?hostelId= may repeat to subscribe
// up front.
// @Summary		Live room board
// @Description	Upgrades to a websocket and streams room_status_changed events for the subscribed hostels.
// @Tags		Live
// @Param		token	query	string	true	"JWT"
// @Param		hostelId	query	int	false	"hostel to subscribe, repeatable"
// @Success		101	{object}	map[string]interface{} "switching protocols"
// @Failure		401	{object}	map[string]interface{} "missing or invalid token"
// @Router		/ws/rooms [GET]
func (h *Handler) ServeRooms(c *gin.Context) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token is required")
		return
	}
	claims, err := h.tokens.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	var hostels []int64
	for _, raw := range c.QueryArray("hostelId") {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, http.StatusBadRequest, "INVALID_QUERY", "Invalid hostelId")
			return
		}
		hostels = append(hostels, id)
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	h.hub.ServeWS(conn, claims.UserID, hostels)
}
