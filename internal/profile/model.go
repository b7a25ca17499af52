// File: internal/profile/model.go
package profile

import (
	"strings"
	"time"

	"devconnector_backend/internal/common"
	"devconnector_backend/internal/user"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Profile is the one-per-user professional profile aggregate. Nested
// experience and education entries live in child tables and are owned by the
// profile; they have no lifecycle of their own.
type Profile struct {
	common.BaseModel
	UserID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	User           user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Company        *string   `gorm:"type:varchar(255)"`
	Website        *string   `gorm:"type:text"`
	Location       *string   `gorm:"type:varchar(255)"`
	Bio            *string   `gorm:"type:text"`
	Status         string    `gorm:"type:varchar(255);not null"`
	GithubUsername *string   `gorm:"type:varchar(100)"`

	// Ordered skill names parsed from the submitted CSV.
	Skills pq.StringArray `gorm:"type:text[]"`

	// Social links are one flat column set; any submission carrying a social
	// field replaces the whole group.
	SocialYoutube   *string `gorm:"type:text"`
	SocialTwitter   *string `gorm:"type:text"`
	SocialFacebook  *string `gorm:"type:text"`
	SocialLinkedin  *string `gorm:"type:text"`
	SocialInstagram *string `gorm:"type:text"`

	Experience []Experience `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Education  []Education  `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Profile model.
func (Profile) TableName() string {
	return "profiles"
}

// Experience is a work-history entry. Seq increases monotonically per table,
// so reading ORDER BY seq DESC yields newest-first, matching prepend semantics.
type Experience struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ProfileID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Seq         int64     `gorm:"autoIncrement;uniqueIndex"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Company     string    `gorm:"type:varchar(255);not null"`
	Location    *string   `gorm:"type:varchar(255)"`
	From        time.Time `gorm:"not null"`
	To          *time.Time
	Current     bool    `gorm:"not null;default:false"`
	Description *string `gorm:"type:text"`
	CreatedAt   time.Time
}

// TableName specifies the table name for the Experience model.
func (Experience) TableName() string {
	return "profile_experiences"
}

// Education is a schooling entry, ordered the same way as Experience.
type Education struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ProfileID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Seq          int64     `gorm:"autoIncrement;uniqueIndex"`
	School       string    `gorm:"type:varchar(255);not null"`
	Degree       string    `gorm:"type:varchar(255);not null"`
	FieldOfStudy string    `gorm:"type:varchar(255);not null"`
	From         time.Time `gorm:"not null"`
	To           *time.Time
	Current      bool    `gorm:"not null;default:false"`
	Description  *string `gorm:"type:text"`
	CreatedAt    time.Time
}

// TableName specifies the table name for the Education model.
func (Education) TableName() string {
	return "profile_educations"
}

// --- DTOs (Data Transfer Objects) for API requests/responses ---

// UpsertProfileRequest is the flat submission body for POST /api/profile.
// Pointer fields distinguish "not submitted" from "submitted empty".
type UpsertProfileRequest struct {
	Status         string  `json:"status" binding:"required"`
	Skills         string  `json:"skills" binding:"required"` // CSV, e.g. "go, rust ,sql"
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	GithubUsername *string `json:"githubusername"`
	Youtube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	Linkedin       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

// HasSocial reports whether any social link was submitted. One submitted link
// replaces the whole social group.
func (r *UpsertProfileRequest) HasSocial() bool {
	return r.Youtube != nil || r.Twitter != nil || r.Facebook != nil ||
		r.Linkedin != nil || r.Instagram != nil
}

// AddExperienceRequest defines the body for PUT /api/profile/experience.
type AddExperienceRequest struct {
	Title       string  `json:"title" binding:"required"`
	Company     string  `json:"company" binding:"required"`
	Location    *string `json:"location"`
	From        string  `json:"from" binding:"required"` // YYYY-MM-DD
	To          *string `json:"to"`
	Current     bool    `json:"current"`
	Description *string `json:"description"`
}

// AddEducationRequest defines the body for PUT /api/profile/education.
type AddEducationRequest struct {
	School       string  `json:"school" binding:"required"`
	Degree       string  `json:"degree" binding:"required"`
	FieldOfStudy string  `json:"fieldofstudy" binding:"required"`
	From         string  `json:"from" binding:"required"` // YYYY-MM-DD
	To           *string `json:"to"`
	Current      bool    `json:"current"`
	Description  *string `json:"description"`
}

// ProfileOwner is the joined owner identity rendered on every profile response.
type ProfileOwner struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
}

// SocialLinks groups the social columns back into the nested wire shape.
type SocialLinks struct {
	Youtube   *string `json:"youtube,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	Facebook  *string `json:"facebook,omitempty"`
	Linkedin  *string `json:"linkedin,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
}

// ExperienceResponse defines an experience entry in API responses.
type ExperienceResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    *string    `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description *string    `json:"description,omitempty"`
}

// EducationResponse defines an education entry in API responses.
type EducationResponse struct {
	ID           uuid.UUID  `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  *string    `json:"description,omitempty"`
}

// ProfileResponse defines the full profile aggregate sent in API responses.
type ProfileResponse struct {
	ID             uuid.UUID            `json:"id"`
	User           ProfileOwner         `json:"user"`
	Company        *string              `json:"company,omitempty"`
	Website        *string              `json:"website,omitempty"`
	Location       *string              `json:"location,omitempty"`
	Bio            *string              `json:"bio,omitempty"`
	Status         string               `json:"status"`
	GithubUsername *string              `json:"githubusername,omitempty"`
	Skills         []string             `json:"skills"`
	Social         *SocialLinks         `json:"social,omitempty"`
	Experience     []ExperienceResponse `json:"experience"`
	Education      []EducationResponse  `json:"education"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// ToProfileResponse converts a Profile model (with preloaded owner and
// children) to a ProfileResponse DTO.
func ToProfileResponse(p *Profile) ProfileResponse {
	resp := ProfileResponse{
		ID: p.ID,
		User: ProfileOwner{
			ID:     p.UserID,
			Name:   p.User.Name,
			Avatar: p.User.AvatarURL,
		},
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Bio:            p.Bio,
		Status:         p.Status,
		GithubUsername: p.GithubUsername,
		Skills:         append([]string{}, p.Skills...),
		Experience:     make([]ExperienceResponse, len(p.Experience)),
		Education:      make([]EducationResponse, len(p.Education)),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}

	if p.SocialYoutube != nil || p.SocialTwitter != nil || p.SocialFacebook != nil ||
		p.SocialLinkedin != nil || p.SocialInstagram != nil {
		resp.Social = &SocialLinks{
			Youtube:   p.SocialYoutube,
			Twitter:   p.SocialTwitter,
			Facebook:  p.SocialFacebook,
			Linkedin:  p.SocialLinkedin,
			Instagram: p.SocialInstagram,
		}
	}

	for i, e := range p.Experience {
		resp.Experience[i] = ExperienceResponse{
			ID:          e.ID,
			Title:       e.Title,
			Company:     e.Company,
			Location:    e.Location,
			From:        e.From,
			To:          e.To,
			Current:     e.Current,
			Description: e.Description,
		}
	}
	for i, e := range p.Education {
		resp.Education[i] = EducationResponse{
			ID:           e.ID,
			School:       e.School,
			Degree:       e.Degree,
			FieldOfStudy: e.FieldOfStudy,
			From:         e.From,
			To:           e.To,
			Current:      e.Current,
			Description:  e.Description,
		}
	}
	return resp
}

// ParseSkills splits the submitted CSV into the stored skill list. Each
// segment is trimmed; order is preserved, nothing is deduplicated, and
// empty-after-trim segments are kept.
func ParseSkills(csv string) []string {
	parts := strings.Split(csv, ",")
	skills := make([]string, len(parts))
	for i, part := range parts {
		skills[i] = strings.TrimSpace(part)
	}
	return skills
}
