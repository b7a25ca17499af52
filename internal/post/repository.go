// File: internal/post/repository.go
package post

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"devconnector_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrAlreadyLiked is returned when a like insert hits the (post, user)
	// unique index.
	ErrAlreadyLiked = common.NewAPIError(http.StatusBadRequest, "ALREADY_LIKED", "Post already liked.")
	// ErrNotLiked is returned when an unlike matches no row.
	ErrNotLiked = common.NewAPIError(http.StatusBadRequest, "NOT_LIKED", "Post has not yet been liked.")
)

// Repository defines persistence operations for posts.
type Repository interface {
	Create(ctx context.Context, p *Post) error
	// FindByID loads the post with likes and comments preloaded, comments
	// newest-first.
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)
	FindAll(ctx context.Context) ([]Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// AddLike inserts the like; the unique index decides the race, so a
	// concurrent duplicate surfaces as ErrAlreadyLiked for exactly one caller.
	AddLike(ctx context.Context, like *Like) error
	RemoveLike(ctx context.Context, postID, userID uuid.UUID) error
	AddComment(ctx context.Context, comment *Comment) error
	// RemoveComment deletes the comment by id within the post and reports
	// whether a row was removed.
	RemoveComment(ctx context.Context, postID, commentID uuid.UUID) (bool, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM-based post repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, p *Post) error {
	if err := r.db.WithContext(ctx).Omit("Likes", "Comments").Create(p).Error; err != nil {
		return common.ErrInternalServer.WithDetails(fmt.Sprintf("failed to create post: %v", err))
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	var p Post
	err := r.db.WithContext(ctx).
		Preload("Likes", func(db *gorm.DB) *gorm.DB {
			return db.Order("post_likes.created_at DESC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("post_comments.seq DESC")
		}).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails(fmt.Sprintf("post %s not found", id))
		}
		return nil, common.ErrInternalServer.WithDetails(fmt.Sprintf("failed to find post: %v", err))
	}
	return &p, nil
}

func (r *gormRepository) FindAll(ctx context.Context) ([]Post, error) {
	var posts []Post
	err := r.db.WithContext(ctx).
		Preload("Likes", func(db *gorm.DB) *gorm.DB {
			return db.Order("post_likes.created_at DESC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("post_comments.seq DESC")
		}).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, common.ErrInternalServer.WithDetails(fmt.Sprintf("failed to list posts: %v", err))
	}
	return posts, nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Post{}).Error; err != nil {
		return common.ErrInternalServer.WithDetails(fmt.Sprintf("failed to delete post: %v", err))
	}
	return nil
}

func (r *gormRepository) AddLike(ctx context.Context, like *Like) error {
	err := r.db.WithContext(ctx).Create(like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return ErrAlreadyLiked
		}
		return common.ErrInternalServer.WithDetails(fmt.Sprintf("failed to add like: %v", err))
	}
	return nil
}

func (r *gormRepository) RemoveLike(ctx context.Context, postID, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&Like{})
	if res.Error != nil {
		return common.ErrInternalServer.WithDetails(fmt.Sprintf("failed to remove like: %v", res.Error))
	}
	if res.RowsAffected == 0 {
		return ErrNotLiked
	}
	return nil
}

func (r *gormRepository) AddComment(ctx context.Context, comment *Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return common.ErrInternalServer.WithDetails(fmt.Sprintf("failed to add comment: %v", err))
	}
	return nil
}

func (r *gormRepository) RemoveComment(ctx context.Context, postID, commentID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND post_id = ?", commentID, postID).
		Delete(&Comment{})
	if res.Error != nil {
		return false, common.ErrInternalServer.WithDetails(fmt.Sprintf("failed to remove comment: %v", res.Error))
	}
	return res.RowsAffected > 0, nil
}
