package middleware

import (
	"net/http"
	"strings"

	"github.com/profilehub/profile-hub/api/common"
	"github.com/profilehub/profile-hub/database/repo/accounts"
	"github.com/profilehub/profile-hub/internal/auth"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"
)

// RequireAuth validates the Bearer token and resolves the account behind it.
// Requests with a token for a deleted or deactivated account are rejected.
func RequireAuth(jwtService *auth.JWTService, accountsRepo *accounts.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.RespondError(c, http.StatusUnauthorized, "No Authorization request header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 {
			common.RespondError(c, http.StatusBadRequest, "Authorization field format error")
			c.Abort()
			return
		}

		if parts[0] != "Bearer" {
			common.RespondError(c, http.StatusUnauthorized, "Unsupported authentication scheme")
			c.Abort()
			return
		}

		claims, err := jwtService.VerifyToken(parts[1])
		if err != nil {
			common.RespondError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		user, err := accountsRepo.WithContext(c.Request.Context()).GetUserByID(claims.UserID)
		if err != nil || !user.IsActive {
			common.RespondError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUsernameKey, user.Username)

		c.Next()
	}
}