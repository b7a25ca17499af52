// File: internal/post/service.go
package post

import (
	"context"
	"errors"
	"net/http"

	"devconnector_backend/internal/common"
	"devconnector_backend/internal/platform/cache"
	"devconnector_backend/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListCacheKey holds the rendered feed. Account deletion invalidates it from
// the profile side, so it is exported.
const ListCacheKey = "posts:all"

var (
	errPostNotFound    = common.NewAPIError(http.StatusNotFound, "POST_NOT_FOUND", "Post not found.")
	errCommentNotFound = common.NewAPIError(http.StatusNotFound, "COMMENT_NOT_FOUND", "Comment does not exist.")
	errNotAuthorized   = common.NewAPIError(http.StatusUnauthorized, "NOT_AUTHORIZED", "User not authorized.")
)

// Service defines the interface for post business logic.
type Service interface {
	CreatePost(ctx context.Context, userID uuid.UUID, req CreatePostRequest) (*PostResponse, error)
	ListPosts(ctx context.Context) ([]PostResponse, error)
	GetPost(ctx context.Context, postID uuid.UUID) (*PostResponse, error)
	// DeletePost removes the post if the caller authored it.
	DeletePost(ctx context.Context, userID, postID uuid.UUID) error
	// LikePost records the caller's like and returns the updated like list.
	LikePost(ctx context.Context, userID, postID uuid.UUID) ([]LikeResponse, error)
	UnlikePost(ctx context.Context, userID, postID uuid.UUID) ([]LikeResponse, error)
	// AddComment appends the caller's comment and returns the updated
	// comment list, newest first.
	AddComment(ctx context.Context, userID, postID uuid.UUID, req AddCommentRequest) ([]CommentResponse, error)
	RemoveComment(ctx context.Context, userID, postID, commentID uuid.UUID) ([]CommentResponse, error)
}

// ServiceImplementation provides post business logic.
type ServiceImplementation struct {
	repo   Repository
	users  user.Repository
	cache  *cache.Cache
	logger *zap.Logger
}

// NewService creates a new post service instance.
func NewService(repo Repository, users user.Repository, cacheClient *cache.Cache, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{repo: repo, users: users, cache: cacheClient, logger: logger}
}

func (s *ServiceImplementation) CreatePost(ctx context.Context, userID uuid.UUID, req CreatePostRequest) (*PostResponse, error) {
	author, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &Post{
		UserID: userID,
		Text:   req.Text,
		Name:   author.Name,
		Avatar: author.AvatarURL,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("Failed to create post", zap.Error(err), zap.String("userID", userID.String()))
		return nil, err
	}
	s.cache.Invalidate(ctx, ListCacheKey)

	created, err := s.repo.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	resp := ToPostResponse(created)
	return &resp, nil
}

func (s *ServiceImplementation) ListPosts(ctx context.Context) ([]PostResponse, error) {
	var cached []PostResponse
	if s.cache.GetJSON(ctx, ListCacheKey, &cached) {
		return cached, nil
	}

	posts, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list posts", zap.Error(err))
		return nil, err
	}

	responses := make([]PostResponse, len(posts))
	for i := range posts {
		responses[i] = ToPostResponse(&posts[i])
	}
	s.cache.SetJSON(ctx, ListCacheKey, responses)
	return responses, nil
}

func (s *ServiceImplementation) GetPost(ctx context.Context, postID uuid.UUID) (*PostResponse, error) {
	p, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	resp := ToPostResponse(p)
	return &resp, nil
}

func (s *ServiceImplementation) DeletePost(ctx context.Context, userID, postID uuid.UUID) error {
	p, err := s.findPost(ctx, postID)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return errNotAuthorized
	}
	if err := s.repo.Delete(ctx, postID); err != nil {
		s.logger.Error("Failed to delete post", zap.Error(err), zap.String("postID", postID.String()))
		return err
	}
	s.cache.Invalidate(ctx, ListCacheKey)
	return nil
}

func (s *ServiceImplementation) LikePost(ctx context.Context, userID, postID uuid.UUID) ([]LikeResponse, error) {
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.repo.AddLike(ctx, &Like{PostID: postID, UserID: userID}); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, ListCacheKey)
	return s.reloadLikes(ctx, postID)
}

func (s *ServiceImplementation) UnlikePost(ctx context.Context, userID, postID uuid.UUID) ([]LikeResponse, error) {
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.repo.RemoveLike(ctx, postID, userID); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, ListCacheKey)
	return s.reloadLikes(ctx, postID)
}

func (s *ServiceImplementation) AddComment(ctx context.Context, userID, postID uuid.UUID, req AddCommentRequest) ([]CommentResponse, error) {
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}
	author, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &Comment{
		PostID: postID,
		UserID: userID,
		Text:   req.Text,
		Name:   author.Name,
		Avatar: author.AvatarURL,
	}
	if err := s.repo.AddComment(ctx, comment); err != nil {
		s.logger.Error("Failed to add comment", zap.Error(err), zap.String("postID", postID.String()))
		return nil, err
	}
	s.cache.Invalidate(ctx, ListCacheKey)
	return s.reloadComments(ctx, postID)
}

func (s *ServiceImplementation) RemoveComment(ctx context.Context, userID, postID, commentID uuid.UUID) ([]CommentResponse, error) {
	p, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	var target *Comment
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			target = &p.Comments[i]
			break
		}
	}
	if target == nil {
		return nil, errCommentNotFound
	}
	if target.UserID != userID {
		return nil, errNotAuthorized
	}

	if _, err := s.repo.RemoveComment(ctx, postID, commentID); err != nil {
		s.logger.Error("Failed to remove comment", zap.Error(err), zap.String("postID", postID.String()))
		return nil, err
	}
	s.cache.Invalidate(ctx, ListCacheKey)
	return s.reloadComments(ctx, postID)
}

// findPost maps repository absence to the public not-found error.
func (s *ServiceImplementation) findPost(ctx context.Context, postID uuid.UUID) (*Post, error) {
	p, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		var apiErr *common.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, errPostNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *ServiceImplementation) reloadLikes(ctx context.Context, postID uuid.UUID) ([]LikeResponse, error) {
	p, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	likes := make([]LikeResponse, len(p.Likes))
	for i, l := range p.Likes {
		likes[i] = LikeResponse{User: l.UserID}
	}
	return likes, nil
}

func (s *ServiceImplementation) reloadComments(ctx context.Context, postID uuid.UUID) ([]CommentResponse, error) {
	p, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	comments := make([]CommentResponse, len(p.Comments))
	for i := range p.Comments {
		comments[i] = ToCommentResponse(&p.Comments[i])
	}
	return comments, nil
}
