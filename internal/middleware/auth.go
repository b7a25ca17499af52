// File: internal/middleware/auth.go
package middleware

import (
	"devconnector_backend/internal/auth"
	"devconnector_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware creates a Gin middleware that verifies the token carried in
// the x-auth-token header and resolves it to a user id.
func AuthMiddleware(tokenService auth.TokenService, blocklist auth.TokenBlocklistService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader(common.AuthTokenHeader)
		if tokenString == "" {
			logger.Debug("Auth token header missing")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("No token, authorization denied"))
			// c.Abort() is handled by RespondWithError's AbortWithStatusJSON
			return
		}

		claims, err := tokenService.Parse(tokenString)
		if err != nil {
			logger.Warn("Token validation failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Token is not valid."))
			return
		}

		blocked, err := blocklist.IsBlocklisted(c.Request.Context(), claims.ID)
		if err != nil {
			logger.Error("Blocklist lookup failed", zap.Error(err))
			common.RespondWithError(c, common.ErrInternalServer)
			return
		}
		if blocked {
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Token is not valid."))
			return
		}

		// Set caller identity in context for downstream handlers
		c.Set(common.UserIDKey, claims.UserID)
		c.Set(common.TokenClaimsKey, claims)

		c.Next()
	}
}
