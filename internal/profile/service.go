// File: internal/profile/service.go
package profile

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"devconnector_backend/internal/common"
	"devconnector_backend/internal/platform/cache"
	"devconnector_backend/internal/post"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// listCacheKey holds the rendered public profile directory.
const listCacheKey = "profiles:all"

var (
	// errNoProfile covers operations against the caller's own, absent profile.
	errNoProfile = common.NewAPIError(http.StatusBadRequest, "PROFILE_NOT_FOUND", "There is no profile for this user.")
	// errProfileNotFound covers lookups of other users' profiles.
	errProfileNotFound = common.NewAPIError(http.StatusBadRequest, "PROFILE_NOT_FOUND", "Profile not found.")
)

// Service defines the interface for profile business logic.
type Service interface {
	// CreateOrUpdateProfile upserts the caller's profile and returns the
	// resulting aggregate.
	CreateOrUpdateProfile(ctx context.Context, userID uuid.UUID, req UpsertProfileRequest) (*ProfileResponse, error)
	GetOwnProfile(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error)
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error)
	ListProfiles(ctx context.Context) ([]ProfileResponse, error)
	AddExperience(ctx context.Context, userID uuid.UUID, req AddExperienceRequest) (*ProfileResponse, error)
	RemoveExperience(ctx context.Context, userID, entryID uuid.UUID) (*ProfileResponse, error)
	AddEducation(ctx context.Context, userID uuid.UUID, req AddEducationRequest) (*ProfileResponse, error)
	RemoveEducation(ctx context.Context, userID, entryID uuid.UUID) (*ProfileResponse, error)
	// DeleteAccount removes the caller's posts, profile, and user account.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

// ServiceImplementation provides profile business logic.
type ServiceImplementation struct {
	repo   Repository
	cache  *cache.Cache
	logger *zap.Logger
}

// NewService creates a new profile service instance.
func NewService(repo Repository, cacheClient *cache.Cache, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{repo: repo, cache: cacheClient, logger: logger}
}

func (s *ServiceImplementation) CreateOrUpdateProfile(ctx context.Context, userID uuid.UUID, req UpsertProfileRequest) (*ProfileResponse, error) {
	skills := ParseSkills(req.Skills)

	p := &Profile{
		UserID:         userID,
		Status:         req.Status,
		Skills:         skills,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
	}

	// Only submitted fields overwrite an existing row; status and skills are
	// always present by validation.
	assignments := map[string]interface{}{
		"status":     req.Status,
		"skills":     p.Skills,
		"updated_at": time.Now(),
	}
	if req.Company != nil {
		assignments["company"] = req.Company
	}
	if req.Website != nil {
		assignments["website"] = req.Website
	}
	if req.Location != nil {
		assignments["location"] = req.Location
	}
	if req.Bio != nil {
		assignments["bio"] = req.Bio
	}
	if req.GithubUsername != nil {
		assignments["github_username"] = req.GithubUsername
	}

	// One submitted social link replaces the whole group; absent links in the
	// same submission clear their columns.
	if req.HasSocial() {
		p.SocialYoutube = req.Youtube
		p.SocialTwitter = req.Twitter
		p.SocialFacebook = req.Facebook
		p.SocialLinkedin = req.Linkedin
		p.SocialInstagram = req.Instagram
		assignments["social_youtube"] = req.Youtube
		assignments["social_twitter"] = req.Twitter
		assignments["social_facebook"] = req.Facebook
		assignments["social_linkedin"] = req.Linkedin
		assignments["social_instagram"] = req.Instagram
	}

	if err := s.repo.Upsert(ctx, p, assignments); err != nil {
		s.logger.Error("Failed to upsert profile", zap.Error(err), zap.String("userID", userID.String()))
		return nil, err
	}
	s.cache.Invalidate(ctx, listCacheKey)

	return s.reload(ctx, userID)
}

func (s *ServiceImplementation) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error) {
	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, errNoProfile
		}
		return nil, err
	}
	resp := ToProfileResponse(p)
	return &resp, nil
}

func (s *ServiceImplementation) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error) {
	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, errProfileNotFound
		}
		return nil, err
	}
	resp := ToProfileResponse(p)
	return &resp, nil
}

func (s *ServiceImplementation) ListProfiles(ctx context.Context) ([]ProfileResponse, error) {
	var cached []ProfileResponse
	if s.cache.GetJSON(ctx, listCacheKey, &cached) {
		return cached, nil
	}

	profiles, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list profiles", zap.Error(err))
		return nil, err
	}

	responses := make([]ProfileResponse, len(profiles))
	for i := range profiles {
		responses[i] = ToProfileResponse(&profiles[i])
	}
	s.cache.SetJSON(ctx, listCacheKey, responses)
	return responses, nil
}

func (s *ServiceImplementation) AddExperience(ctx context.Context, userID uuid.UUID, req AddExperienceRequest) (*ProfileResponse, error) {
	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		return nil, err
	}

	exp := &Experience{
		ProfileID:   p.ID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	}
	if err := s.repo.AddExperience(ctx, exp); err != nil {
		s.logger.Error("Failed to add experience", zap.Error(err), zap.String("userID", userID.String()))
		return nil, err
	}
	s.cache.Invalidate(ctx, listCacheKey)

	return s.reload(ctx, userID)
}

func (s *ServiceImplementation) RemoveExperience(ctx context.Context, userID, entryID uuid.UUID) (*ProfileResponse, error) {
	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.RemoveExperience(ctx, p.ID, entryID); err != nil {
		s.logger.Error("Failed to remove experience", zap.Error(err), zap.String("userID", userID.String()))
		return nil, err
	}
	s.cache.Invalidate(ctx, listCacheKey)

	return s.reload(ctx, userID)
}

func (s *ServiceImplementation) AddEducation(ctx context.Context, userID uuid.UUID, req AddEducationRequest) (*ProfileResponse, error) {
	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		return nil, err
	}

	edu := &Education{
		ProfileID:    p.ID,
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	}
	if err := s.repo.AddEducation(ctx, edu); err != nil {
		s.logger.Error("Failed to add education", zap.Error(err), zap.String("userID", userID.String()))
		return nil, err
	}
	s.cache.Invalidate(ctx, listCacheKey)

	return s.reload(ctx, userID)
}

func (s *ServiceImplementation) RemoveEducation(ctx context.Context, userID, entryID uuid.UUID) (*ProfileResponse, error) {
	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.RemoveEducation(ctx, p.ID, entryID); err != nil {
		s.logger.Error("Failed to remove education", zap.Error(err), zap.String("userID", userID.String()))
		return nil, err
	}
	s.cache.Invalidate(ctx, listCacheKey)

	return s.reload(ctx, userID)
}

func (s *ServiceImplementation) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.DeleteAccountData(ctx, userID); err != nil {
		s.logger.Error("Failed to delete account data", zap.Error(err), zap.String("userID", userID.String()))
		return err
	}
	s.cache.Invalidate(ctx, listCacheKey)
	s.cache.Invalidate(ctx, post.ListCacheKey)
	s.logger.Info("Account deleted", zap.String("userID", userID.String()))
	return nil
}

// ownProfile loads the caller's profile for mutation, mapping absence to the
// own-profile error message.
func (s *ServiceImplementation) ownProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, errNoProfile
		}
		return nil, err
	}
	return p, nil
}

// reload fetches the aggregate after a mutation so the response reflects the
// stored state, including child ordering.
func (s *ServiceImplementation) reload(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error) {
	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToProfileResponse(p)
	return &resp, nil
}

func parseDateRange(fromStr string, toStr *string) (time.Time, *time.Time, error) {
	from, err := time.Parse(dateLayout, fromStr)
	if err != nil {
		return time.Time{}, nil, common.ErrBadRequest.WithDetails(fmt.Sprintf("invalid from date %q, expected YYYY-MM-DD", fromStr))
	}
	var to *time.Time
	if toStr != nil && *toStr != "" {
		parsed, err := time.Parse(dateLayout, *toStr)
		if err != nil {
			return time.Time{}, nil, common.ErrBadRequest.WithDetails(fmt.Sprintf("invalid to date %q, expected YYYY-MM-DD", *toStr))
		}
		to = &parsed
	}
	return from, to, nil
}

func isNotFound(err error) bool {
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}
