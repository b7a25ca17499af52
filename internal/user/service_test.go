// File: internal/user/service_test.go
package user

import (
	"context"
	"testing"

	"devconnector_backend/internal/common"
	"devconnector_backend/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock type for user.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

// stubTokenIssuer signs a fixed token so tests do not need real keys.
type stubTokenIssuer struct {
	token string
	err   error
}

func (s *stubTokenIssuer) Generate(userID uuid.UUID) (string, error) {
	return s.token, s.err
}

func testConfig() *config.Config {
	return &config.Config{
		GravatarSize:    "200",
		GravatarRating:  "pg",
		GravatarDefault: "mm",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		req       RegisterRequest
		setupMock func(repo *MockUserRepository)
		wantErr   string
		wantToken string
	}{
		{
			name: "new account gets avatar and token",
			req:  RegisterRequest{Name: "Jane Doe", Email: "jane@example.com", Password: "secret123"},
			setupMock: func(repo *MockUserRepository) {
				repo.On("FindByEmail", ctx, "jane@example.com").Return(nil, common.ErrNotFound)
				repo.On("Create", ctx, mock.AnythingOfType("*user.User")).
					Run(func(args mock.Arguments) {
						u := args.Get(1).(*User)
						u.ID = uuid.New()
						assert.NotEmpty(t, u.AvatarURL)
						assert.NotEqual(t, "secret123", u.PasswordHash)
					}).
					Return(nil)
			},
			wantToken: "signed-token",
		},
		{
			name: "duplicate email rejected",
			req:  RegisterRequest{Name: "Jane Doe", Email: "jane@example.com", Password: "secret123"},
			setupMock: func(repo *MockUserRepository) {
				repo.On("FindByEmail", ctx, "jane@example.com").
					Return(&User{Email: "jane@example.com"}, nil)
			},
			wantErr: "User already exists.",
		},
		{
			name: "insert race surfaces as duplicate",
			req:  RegisterRequest{Name: "Jane Doe", Email: "jane@example.com", Password: "secret123"},
			setupMock: func(repo *MockUserRepository) {
				repo.On("FindByEmail", ctx, "jane@example.com").Return(nil, common.ErrNotFound)
				repo.On("Create", ctx, mock.AnythingOfType("*user.User")).Return(ErrEmailTaken)
			},
			wantErr: "User already exists.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			svc := NewService(mockRepo, &stubTokenIssuer{token: "signed-token"}, testConfig(), zap.NewNop())

			account, token, err := svc.Register(ctx, tt.req)

			if tt.wantErr != "" {
				apiErr, ok := common.IsAPIError(err)
				assert.True(t, ok)
				assert.Equal(t, tt.wantErr, apiErr.Message)
				assert.Nil(t, account)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
			assert.NotNil(t, account)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	account := &User{
		BaseModel:    common.BaseModel{ID: uuid.New()},
		Email:        "jane@example.com",
		PasswordHash: string(hash),
	}

	tests := []struct {
		name      string
		email     string
		password  string
		setupMock func(repo *MockUserRepository)
		wantErr   bool
	}{
		{
			name:     "valid credentials",
			email:    "jane@example.com",
			password: "secret123",
			setupMock: func(repo *MockUserRepository) {
				repo.On("FindByEmail", ctx, "jane@example.com").Return(account, nil)
			},
		},
		{
			name:     "wrong password",
			email:    "jane@example.com",
			password: "wrong",
			setupMock: func(repo *MockUserRepository) {
				repo.On("FindByEmail", ctx, "jane@example.com").Return(account, nil)
			},
			wantErr: true,
		},
		{
			name:     "unknown email reads the same as wrong password",
			email:    "nobody@example.com",
			password: "secret123",
			setupMock: func(repo *MockUserRepository) {
				repo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, common.ErrNotFound)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			svc := NewService(mockRepo, &stubTokenIssuer{token: "signed-token"}, testConfig(), zap.NewNop())

			token, err := svc.Login(ctx, tt.email, tt.password)

			if tt.wantErr {
				apiErr, ok := common.IsAPIError(err)
				assert.True(t, ok)
				assert.Equal(t, 400, apiErr.StatusCode)
				assert.Equal(t, "Invalid Credentials.", apiErr.Message)
				assert.Empty(t, token)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "signed-token", token)
		})
	}
}

func TestGravatarURL(t *testing.T) {
	cfg := testConfig()

	// Hash is over the lowercased, trimmed address.
	a := GravatarURL(cfg, "  Jane@Example.COM ")
	b := GravatarURL(cfg, "jane@example.com")
	assert.Equal(t, a, b)
	assert.Contains(t, a, "gravatar.com/avatar/")
	assert.Contains(t, a, "s=200")
}
