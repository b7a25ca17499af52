// File: internal/user/model.go
package user

import (
	"time"

	"devconnector_backend/internal/common"

	"github.com/google/uuid"
)

// User represents an account record in the database.
type User struct {
	common.BaseModel        // Embeds ID, CreatedAt, UpdatedAt
	Name             string `gorm:"type:varchar(100);not null"`
	Email            string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash     string `gorm:"type:varchar(255);not null"`
	AvatarURL        string `gorm:"type:text"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// --- DTOs (Data Transfer Objects) for API requests/responses ---

// RegisterRequest defines the structure for registering a new account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"` // bcrypt max is 72 bytes
}

// LoginRequest defines the structure for authenticating an account.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries a freshly issued auth token.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse defines the account data sent in API responses.
// The password hash never leaves the service layer.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse converts a User model to a UserResponse DTO.
func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}
