// File: internal/user/service.go
package user

import (
	"context"
	"errors"
	"net/http"

	"devconnector_backend/internal/common"
	"devconnector_backend/internal/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// errInvalidCredentials deliberately does not reveal whether the email or the
// password was wrong.
var errInvalidCredentials = common.NewAPIError(http.StatusBadRequest, "INVALID_CREDENTIALS", "Invalid Credentials.")

// TokenIssuer signs an auth token for a user id. Implemented by auth.TokenService;
// declared here so this package does not depend on the auth package.
type TokenIssuer interface {
	Generate(userID uuid.UUID) (string, error)
}

// Service defines the interface for account business logic.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, string, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
}

// ServiceImplementation implements the user Service interface.
type ServiceImplementation struct {
	repo   Repository
	tokens TokenIssuer
	cfg    *config.Config
	logger *zap.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, tokens TokenIssuer, cfg *config.Config, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		tokens: tokens,
		cfg:    cfg,
		logger: logger,
	}
}

// Register creates a new account and returns it together with a signed auth token.
func (s *ServiceImplementation) Register(ctx context.Context, req RegisterRequest) (*User, string, error) {
	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if apiErr, ok := common.IsAPIError(err); !ok || apiErr.StatusCode != http.StatusNotFound {
			s.logger.Error("Failed to check for existing account", zap.Error(err))
			return nil, "", common.ErrInternalServer
		}
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, "", common.ErrInternalServer
	}

	newUser := &User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		AvatarURL:    GravatarURL(s.cfg, req.Email),
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		// ErrEmailTaken from the unique index covers the lookup/insert race.
		if _, ok := common.IsAPIError(err); ok {
			return nil, "", err
		}
		s.logger.Error("Failed to create account", zap.Error(err))
		return nil, "", common.ErrInternalServer
	}

	token, err := s.tokens.Generate(newUser.ID)
	if err != nil {
		s.logger.Error("Failed to sign token for new account", zap.String("userID", newUser.ID.String()), zap.Error(err))
		return nil, "", common.ErrInternalServer
	}

	s.logger.Info("Account registered", zap.String("userID", newUser.ID.String()))
	return newUser, token, nil
}

// Login verifies credentials and returns a signed auth token.
func (s *ServiceImplementation) Login(ctx context.Context, email, password string) (string, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if apiErr, ok := common.IsAPIError(err); ok && apiErr.StatusCode == http.StatusNotFound {
			return "", errInvalidCredentials
		}
		s.logger.Error("Failed to look up account for login", zap.Error(err))
		return "", common.ErrInternalServer
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", errInvalidCredentials
	}

	token, err := s.tokens.Generate(account.ID)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.String("userID", account.ID.String()), zap.Error(err))
		return "", common.ErrInternalServer
	}
	return token, nil
}

// GetUserByID returns the account for an authenticated caller.
func (s *ServiceImplementation) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		var apiErr *common.APIError
		if errors.As(err, &apiErr) {
			return nil, err
		}
		s.logger.Error("Failed to load account", zap.String("userID", id.String()), zap.Error(err))
		return nil, common.ErrInternalServer
	}
	return account, nil
}
