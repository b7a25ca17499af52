// File: internal/auth/handler.go
package auth

import (
	"errors"

	"devconnector_backend/internal/common"
	"devconnector_backend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for auth handlers.
type Handler struct {
	userService user.Service
	blocklist   TokenBlocklistService
	logger      *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(userService user.Service, blocklist TokenBlocklistService, logger *zap.Logger) *Handler {
	return &Handler{
		userService: userService,
		blocklist:   blocklist,
		logger:      logger,
	}
}

// RegisterRoutes sets up the routes for authentication operations.
// authMW guards the routes that require an already-authenticated caller.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("", h.login)
		authGroup.GET("", authMW, h.currentUser)
		authGroup.POST("/logout", authMW, h.logout)
	}
}

func (h *Handler) login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Login: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	token, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, user.TokenResponse{Token: token})
}

func (h *Handler) currentUser(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	account, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, user.ToUserResponse(account))
}

func (h *Handler) logout(c *gin.Context) {
	val, exists := c.Get(common.TokenClaimsKey)
	claims, ok := val.(*Claims)
	if !exists || !ok {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("No token, authorization denied"))
		return
	}

	if err := h.blocklist.AddToBlocklist(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		h.logger.Error("Failed to blocklist token", zap.String("jti", claims.ID), zap.Error(err))
		common.RespondWithError(c, common.ErrInternalServer)
		return
	}
	common.RespondMessage(c, "Logged out.")
}
