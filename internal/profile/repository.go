// File: internal/profile/repository.go
package profile

import (
	"context"
	"errors"
	"fmt"

	"devconnector_backend/internal/common"
	"devconnector_backend/internal/post"
	"devconnector_backend/internal/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines persistence operations for the profile aggregate.
type Repository interface {
	// Upsert inserts the profile or, when a row for the user already exists,
	// applies assignments to it. Concurrent submissions for the same user
	// serialize on the user_id unique index; last writer wins.
	Upsert(ctx context.Context, p *Profile, assignments map[string]interface{}) error
	// FindByUserID loads the profile with owner and children preloaded,
	// children newest-first.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	FindAll(ctx context.Context) ([]Profile, error)
	AddExperience(ctx context.Context, exp *Experience) error
	// RemoveExperience deletes the entry if it belongs to the profile. A
	// missing entry is not an error.
	RemoveExperience(ctx context.Context, profileID, entryID uuid.UUID) error
	AddEducation(ctx context.Context, edu *Education) error
	RemoveEducation(ctx context.Context, profileID, entryID uuid.UUID) error
	// DeleteAccountData removes the user's posts, profile, and account row in
	// one transaction. Child rows go with their parents via FK cascade.
	DeleteAccountData(ctx context.Context, userID uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM-based profile repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Upsert(ctx context.Context, p *Profile, assignments map[string]interface{}) error {
	err := r.db.WithContext(ctx).
		Omit("User", "Experience", "Education").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(p).Error
	if err != nil {
		return common.ErrInternalServer.WithDetails(fmt.Sprintf("failed to upsert profile: %v", err))
	}
	return nil
}

func (r *gormRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("profile_experiences.seq DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("profile_educations.seq DESC")
		}).
		Where("user_id = ?", userID).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails(fmt.Sprintf("profile for user %s not found", userID))
		}
		return nil, common.ErrInternalServer.WithDetails(fmt.Sprintf("failed to find profile: %v", err))
	}
	return &p, nil
}

func (r *gormRepository) FindAll(ctx context.Context) ([]Profile, error) {
	var profiles []Profile
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("profile_experiences.seq DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("profile_educations.seq DESC")
		}).
		Order("created_at DESC").
		Find(&profiles).Error
	if err != nil {
		return nil, common.ErrInternalServer.WithDetails(fmt.Sprintf("failed to list profiles: %v", err))
	}
	return profiles, nil
}

func (r *gormRepository) AddExperience(ctx context.Context, exp *Experience) error {
	if err := r.db.WithContext(ctx).Create(exp).Error; err != nil {
		return common.ErrInternalServer.WithDetails(fmt.Sprintf("failed to add experience: %v", err))
	}
	return nil
}

func (r *gormRepository) RemoveExperience(ctx context.Context, profileID, entryID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", entryID, profileID).
		Delete(&Experience{}).Error
	if err != nil {
		return common.ErrInternalServer.WithDetails(fmt.Sprintf("failed to remove experience: %v", err))
	}
	return nil
}

func (r *gormRepository) AddEducation(ctx context.Context, edu *Education) error {
	if err := r.db.WithContext(ctx).Create(edu).Error; err != nil {
		return common.ErrInternalServer.WithDetails(fmt.Sprintf("failed to add education: %v", err))
	}
	return nil
}

func (r *gormRepository) RemoveEducation(ctx context.Context, profileID, entryID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", entryID, profileID).
		Delete(&Education{}).Error
	if err != nil {
		return common.ErrInternalServer.WithDetails(fmt.Sprintf("failed to remove education: %v", err))
	}
	return nil
}

func (r *gormRepository) DeleteAccountData(ctx context.Context, userID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&post.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&Profile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", userID).Delete(&user.User{}).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return common.ErrInternalServer.WithDetails(fmt.Sprintf("failed to delete account data: %v", err))
	}
	return nil
}
