// File: internal/post/handler.go
package post

import (
	"errors"

	"devconnector_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for posts.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new post handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for post operations. Every route requires
// authentication.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	posts := router.Group("/posts", authMW)
	{
		posts.POST("", h.createPost)
		posts.GET("", h.listPosts)
		posts.GET("/:id", h.getPost)
		posts.DELETE("/:id", h.deletePost)
		posts.PUT("/like/:id", h.likePost)
		posts.PUT("/unlike/:id", h.unlikePost)
		posts.POST("/comment/:id", h.addComment)
		posts.DELETE("/comment/:id/:comment_id", h.removeComment)
	}
}

func (h *Handler) createPost(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindingError(c, err)
		return
	}

	resp, err := h.service.CreatePost(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, resp)
}

func (h *Handler) listPosts(c *gin.Context) {
	resp, err := h.service.ListPosts(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, resp)
}

func (h *Handler) getPost(c *gin.Context) {
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetPost(c.Request.Context(), postID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, resp)
}

func (h *Handler) deletePost(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), userID, postID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondMessage(c, "Post removed.")
}

func (h *Handler) likePost(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	likes, err := h.service.LikePost(c.Request.Context(), userID, postID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, likes)
}

func (h *Handler) unlikePost(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	likes, err := h.service.UnlikePost(c.Request.Context(), userID, postID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, likes)
}

func (h *Handler) addComment(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindingError(c, err)
		return
	}

	comments, err := h.service.AddComment(c.Request.Context(), userID, postID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, comments)
}

func (h *Handler) removeComment(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	postID, ok := h.postID(c)
	if !ok {
		return
	}
	commentID, err := uuid.Parse(c.Param("comment_id"))
	if err != nil {
		common.RespondWithError(c, errCommentNotFound)
		return
	}

	comments, err := h.service.RemoveComment(c.Request.Context(), userID, postID, commentID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, comments)
}

// postID parses the path id; a malformed id reads the same as an unknown post.
func (h *Handler) postID(c *gin.Context) (uuid.UUID, bool) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, errPostNotFound)
		return uuid.Nil, false
	}
	return postID, true
}

func (h *Handler) respondBindingError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrors)))
		return
	}
	common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
}
