// File: internal/profile/handler.go
package profile

import (
	"errors"

	"devconnector_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for profiles.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new profile handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for profile operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	profiles := router.Group("/profile")
	{
		profiles.GET("", h.listProfiles)
		profiles.GET("/user/:user_id", h.getProfileByUserID)
		profiles.GET("/me", authMW, h.getOwnProfile)
		profiles.POST("", authMW, h.upsertProfile)
		profiles.DELETE("", authMW, h.deleteAccount)
		profiles.PUT("/experience", authMW, h.addExperience)
		profiles.DELETE("/experience/:exp_id", authMW, h.removeExperience)
		profiles.PUT("/education", authMW, h.addEducation)
		profiles.DELETE("/education/:edu_id", authMW, h.removeEducation)
	}
}

func (h *Handler) upsertProfile(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindingError(c, err)
		return
	}

	resp, err := h.service.CreateOrUpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, resp)
}

func (h *Handler) getOwnProfile(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)

	resp, err := h.service.GetOwnProfile(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, resp)
}

func (h *Handler) getProfileByUserID(c *gin.Context) {
	// A malformed id is indistinguishable from an unknown user to the caller.
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		common.RespondWithError(c, errProfileNotFound)
		return
	}

	resp, err := h.service.GetProfileByUserID(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, resp)
}

func (h *Handler) listProfiles(c *gin.Context) {
	resp, err := h.service.ListProfiles(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, resp)
}

func (h *Handler) addExperience(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)

	var req AddExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindingError(c, err)
		return
	}

	resp, err := h.service.AddExperience(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, resp)
}

func (h *Handler) removeExperience(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	// Removal is forgiving: a malformed id matches no entry, same as an
	// already-removed one.
	entryID, err := uuid.Parse(c.Param("exp_id"))
	if err != nil {
		entryID = uuid.Nil
	}

	resp, err := h.service.RemoveExperience(c.Request.Context(), userID, entryID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, resp)
}

func (h *Handler) addEducation(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)

	var req AddEducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindingError(c, err)
		return
	}

	resp, err := h.service.AddEducation(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, resp)
}

func (h *Handler) removeEducation(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	entryID, err := uuid.Parse(c.Param("edu_id"))
	if err != nil {
		entryID = uuid.Nil
	}

	resp, err := h.service.RemoveEducation(c.Request.Context(), userID, entryID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, resp)
}

func (h *Handler) deleteAccount(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)

	if err := h.service.DeleteAccount(c.Request.Context(), userID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondMessage(c, "User deleted.")
}

func (h *Handler) respondBindingError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrors)))
		return
	}
	common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
}
