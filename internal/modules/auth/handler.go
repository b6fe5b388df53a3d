package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hostel/internal/middleware"
	"hostel/internal/pkg/response"
	"hostel/internal/pkg/validator"
)

type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type Handler struct {
	service      *Service
	cookie       CookieConfig
	exposeDetail bool
}

func NewHandler(service *Service, cookie CookieConfig, exposeDetail bool) *Handler {
	return &Handler{service: service, cookie: cookie, exposeDetail: exposeDetail}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	g := v1.Group("/auth")
	{
		g.POST("/register", h.Register)
		g.POST("/login", h.Login)
		g.POST("/logout", h.Logout)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/me", h.GetMe)
}

// Register creates a USER account.
// @Summary		Register an account
// @Description	Creates a USER account. The role becomes GUEST after the first booking.
// @Tags		Auth
// @Param		request	body	RegisterRequest	true	"name, email, phone, password"
// @Success		201	{object}	map[string]interface{} "created"
// @Failure		400	{object}	map[string]interface{} "validation error or email already registered"
// @Failure		500	{object}	map[string]interface{} "server error"
// @Router		/auth/register [POST]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	u, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": toPublic(u)})
}

// Login checks credentials and issues a JWT, also set as an HttpOnly cookie.
// @Summary		Log in
// @Description	Returns the user and a JWT. The same token is set in the auth cookie.
// @Tags		Auth
// @Param		request	body	LoginRequest	true	"email, password"
// @Success		200	{object}	map[string]interface{} "ok"
// @Failure		400	{object}	map[string]interface{} "validation error"
// @Failure		401	{object}	map[string]interface{} "invalid email or password"
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, res.Token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.Secure, true)
	response.Success(c, http.StatusOK, gin.H{
		"user":  toPublic(res.User),
		"token": res.Token,
	})
}

// Logout clears the auth cookie.
// @Summary		Log out
// @Description	Expires the auth cookie.
// @Tags		Auth
// @Success		200	{object}	map[string]interface{} "ok"
// @Router		/auth/logout [POST]
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true})
}

// GetMe returns the current user read from the database.
// @Summary		Current user
// @Description	Returns the profile of the authenticated user, with the role as stored.
// @Tags		Auth
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{} "ok"
// @Failure		401	{object}	map[string]interface{} "missing or invalid token"
// @Failure		404	{object}	map[string]interface{} "user not found"
// @Router		/auth/me [GET]
func (h *Handler) GetMe(c *gin.Context) {
	u, err := h.service.GetCurrentUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": toPublic(u)})
}
