// File: internal/post/model.go
package post

import (
	"time"

	"devconnector_backend/internal/common"

	"github.com/google/uuid"
)

// Post is a short text post. Author name and avatar are snapshotted at
// creation so feeds render without joining accounts, even after the author
// changes or deletes their profile.
type Post struct {
	common.BaseModel
	UserID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Text     string    `gorm:"type:text;not null"`
	Name     string    `gorm:"type:varchar(100);not null"`
	Avatar   string    `gorm:"type:text"`
	Likes    []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Post model.
func (Post) TableName() string {
	return "posts"
}

// Like marks one user's like on one post. The composite unique index makes a
// concurrent double-like impossible; the insert itself is the check.
type Like struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_likes_post_user"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_likes_post_user"`
	CreatedAt time.Time
}

// TableName specifies the table name for the Like model.
func (Like) TableName() string {
	return "post_likes"
}

// Comment is a reply on a post, with the same author snapshot as the post
// itself. Seq orders comments newest-first when read ORDER BY seq DESC.
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	PostID    uuid.UUID `gorm:"type:uuid;index;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	Seq       int64     `gorm:"autoIncrement;uniqueIndex"`
	Text      string    `gorm:"type:text;not null"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Avatar    string    `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName specifies the table name for the Comment model.
func (Comment) TableName() string {
	return "post_comments"
}

// --- DTOs (Data Transfer Objects) for API requests/responses ---

// CreatePostRequest defines the body for POST /api/posts.
type CreatePostRequest struct {
	Text string `json:"text" binding:"required"`
}

// AddCommentRequest defines the body for POST /api/posts/:post_id/comments.
type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// LikeResponse carries the liking user's id.
type LikeResponse struct {
	User uuid.UUID `json:"user"`
}

// CommentResponse defines a comment in API responses.
type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	User      uuid.UUID `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// PostResponse defines a post in API responses.
type PostResponse struct {
	ID        uuid.UUID         `json:"id"`
	User      uuid.UUID         `json:"user"`
	Text      string            `json:"text"`
	Name      string            `json:"name"`
	Avatar    string            `json:"avatar"`
	Likes     []LikeResponse    `json:"likes"`
	Comments  []CommentResponse `json:"comments"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ToPostResponse converts a Post model (with preloaded likes and comments) to
// a PostResponse DTO.
func ToPostResponse(p *Post) PostResponse {
	resp := PostResponse{
		ID:        p.ID,
		User:      p.UserID,
		Text:      p.Text,
		Name:      p.Name,
		Avatar:    p.Avatar,
		Likes:     make([]LikeResponse, len(p.Likes)),
		Comments:  make([]CommentResponse, len(p.Comments)),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	for i, l := range p.Likes {
		resp.Likes[i] = LikeResponse{User: l.UserID}
	}
	for i, cm := range p.Comments {
		resp.Comments[i] = ToCommentResponse(&cm)
	}
	return resp
}

// ToCommentResponse converts a Comment model to a CommentResponse DTO.
func ToCommentResponse(cm *Comment) CommentResponse {
	return CommentResponse{
		ID:        cm.ID,
		User:      cm.UserID,
		Text:      cm.Text,
		Name:      cm.Name,
		Avatar:    cm.Avatar,
		CreatedAt: cm.CreatedAt,
	}
}
