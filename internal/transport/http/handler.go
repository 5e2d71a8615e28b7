package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	authErrors "github.com/veldt-labs/auth-service/internal/auth/errors"
	"github.com/veldt-labs/auth-service/internal/auth/dto"
	"github.com/veldt-labs/auth-service/internal/auth/model"
	"github.com/veldt-labs/auth-service/internal/auth/service"
	"github.com/veldt-labs/auth-service/internal/transport/http/middleware"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

type Handler struct {
	svc          service.Service
	log          *zap.Logger
	cookieDomain string
}

func NewHandler(svc service.Service, log *zap.Logger, cookieDomain string) *Handler {
	return &Handler{svc: svc, log: log, cookieDomain: cookieDomain}
}

// Routes mounts the user-facing endpoints under /api/v1/users.
func (h *Handler) Routes(r *gin.Engine) {
	users := r.Group("/api/v1/users")
	users.POST("/register", h.register)
	users.POST("/login", h.login)
	users.POST("/refresh", h.refresh)

	authed := users.Group("", middleware.RequireAuth(h.svc))
	authed.POST("/logout", h.logout)
	authed.GET("/me", h.currentUser)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func (h *Handler) register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.Register(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *Handler) login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, pair, err := h.svc.Login(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.setTokenCookies(c, pair)
	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"expiresIn":    int(pair.AccessTTL.Seconds()),
	})
}

func (h *Handler) refresh(c *gin.Context) {
	var body dto.RefreshDTO
	// body is optional when the cookie is present
	_ = c.ShouldBindJSON(&body)
	if body.RefreshToken == "" {
		if cookie, err := c.Cookie(refreshCookie); err == nil {
			body.RefreshToken = cookie
		}
	}

	pair, err := h.svc.Refresh(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.setTokenCookies(c, pair)
	c.JSON(http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"expiresIn":    int(pair.AccessTTL.Seconds()),
	})
}

func (h *Handler) logout(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	raw := c.GetString(middleware.ContextAccessToken)

	if err := h.svc.Logout(c.Request.Context(), userID, dto.LogoutDTO{AccessToken: raw}); err != nil {
		h.handleError(c, err)
		return
	}

	h.clearTokenCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *Handler) currentUser(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	raw := c.GetString(middleware.ContextAccessToken)

	user, err := h.svc.Validate(c.Request.Context(), dto.ValidateDTO{AccessToken: raw})
	if err != nil || user.ID != userID {
		h.handleError(c, authErrors.ErrInvalidToken)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) setTokenCookies(c *gin.Context, pair model.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessCookie, pair.AccessToken,
		int(pair.AccessTTL.Seconds()), "/", h.cookieDomain, true, true)

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookie, pair.RefreshToken,
		int(pair.RefreshTTL.Seconds()), "/", h.cookieDomain, true, true)
}

func (h *Handler) clearTokenCookies(c *gin.Context) {
	c.SetCookie(accessCookie, "", -1, "/", h.cookieDomain, true, true)
	c.SetCookie(refreshCookie, "", -1, "/", h.cookieDomain, true, true)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case authErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case authErrors.IsInvalidCredentials(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case authErrors.IsInvalidToken(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	case authErrors.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, gin.H{"error": "username or email already taken"})
	case authErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		h.log.Error("internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
