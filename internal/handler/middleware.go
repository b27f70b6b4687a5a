package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dkhalizov/movielog/internal/domain"
	"github.com/dkhalizov/movielog/internal/dto"
	"github.com/dkhalizov/movielog/internal/service"
)

// Context keys set by AuthMiddleware
const (
	ContextUserIDKey = "user_id"
	ContextUserKey   = "user"
)

// AuthMiddleware validates the bearer token and loads the user into the gin
// context. Each failure mode gets its own message: missing header, malformed
// scheme, bad signature, expired token and a vanished user are all 401 but
// distinguishable by the client.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "authentication required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c, "invalid authorization header format")
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTokenExpired):
				unauthorized(c, "token expired")
			case errors.Is(err, domain.ErrUserNotFound):
				unauthorized(c, "user not found")
			default:
				unauthorized(c, "invalid token")
			}
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserKey, user)

		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error:   "Unauthorized",
		Message: message,
	})
	c.Abort()
}

// currentUserID returns the authenticated user's id placed by AuthMiddleware
func currentUserID(c *gin.Context) string {
	return c.GetString(ContextUserIDKey)
}
