package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/veldt-labs/auth-service/internal/auth/dto"
	"github.com/veldt-labs/auth-service/internal/auth/service"
)

const (
	// ContextUserID is the gin context key holding the authenticated
	// user's id (uuid.UUID).
	ContextUserID = "auth.userID"
	// ContextAccessToken holds the raw access token the request carried.
	ContextAccessToken = "auth.accessToken"

	accessCookie = "access_token"
)

// RequireAuth authenticates the request from the access-token cookie or a
// Bearer header and stashes the subject in the context. Responses for every
// failure mode are identical.
func RequireAuth(svc service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromRequest(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		user, err := svc.Validate(c.Request.Context(), dto.ValidateDTO{AccessToken: raw})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextAccessToken, raw)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(accessCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}
