// File: internal/post/service_test.go
package post

import (
	"context"
	"testing"
	"time"

	"devconnector_backend/internal/common"
	"devconnector_backend/internal/config"
	"devconnector_backend/internal/platform/cache"
	"devconnector_backend/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockPostRepository is a mock type for post.Repository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, p *Post) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Post), args.Error(1)
}

func (m *MockPostRepository) FindAll(ctx context.Context) ([]Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Post), args.Error(1)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) AddLike(ctx context.Context, like *Like) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

func (m *MockPostRepository) RemoveLike(ctx context.Context, postID, userID uuid.UUID) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *MockPostRepository) AddComment(ctx context.Context, comment *Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockPostRepository) RemoveComment(ctx context.Context, postID, commentID uuid.UUID) (bool, error) {
	args := m.Called(ctx, postID, commentID)
	return args.Bool(0), args.Error(1)
}

// MockUserRepository is a mock type for user.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func newTestService(repo Repository, users user.Repository) *ServiceImplementation {
	return NewService(repo, users, cache.New(&config.Config{}, zap.NewNop()), zap.NewNop())
}

func sampleAuthor(id uuid.UUID) *user.User {
	return &user.User{
		BaseModel: common.BaseModel{ID: id},
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		AvatarURL: "https://gravatar.com/avatar/abc",
	}
}

func samplePost(postID, authorID uuid.UUID) *Post {
	now := time.Now()
	return &Post{
		BaseModel: common.BaseModel{ID: postID, CreatedAt: now, UpdatedAt: now},
		UserID:    authorID,
		Text:      "hello world",
		Name:      "Jane Doe",
		Avatar:    "https://gravatar.com/avatar/abc",
	}
}

func TestCreatePost_SnapshotsAuthor(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()

	mockRepo := new(MockPostRepository)
	mockUsers := new(MockUserRepository)
	svc := newTestService(mockRepo, mockUsers)

	mockUsers.On("FindByID", ctx, authorID).Return(sampleAuthor(authorID), nil)
	mockRepo.On("Create", ctx, mock.AnythingOfType("*post.Post")).
		Run(func(args mock.Arguments) {
			p := args.Get(1).(*Post)
			p.ID = uuid.New()
			assert.Equal(t, "Jane Doe", p.Name)
			assert.Equal(t, "https://gravatar.com/avatar/abc", p.Avatar)
		}).
		Return(nil)
	mockRepo.On("FindByID", ctx, mock.AnythingOfType("uuid.UUID")).
		Return(samplePost(uuid.New(), authorID), nil)

	resp, err := svc.CreatePost(ctx, authorID, CreatePostRequest{Text: "hello world"})

	assert.NoError(t, err)
	assert.Equal(t, "Jane Doe", resp.Name)
	mockRepo.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
}

func TestGetPost_NotFound(t *testing.T) {
	ctx := context.Background()
	postID := uuid.New()

	mockRepo := new(MockPostRepository)
	svc := newTestService(mockRepo, new(MockUserRepository))

	mockRepo.On("FindByID", ctx, postID).Return(nil, common.ErrNotFound)

	resp, err := svc.GetPost(ctx, postID)

	assert.Nil(t, resp)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Equal(t, "Post not found.", apiErr.Message)
}

func TestDeletePost_OnlyAuthor(t *testing.T) {
	ctx := context.Background()
	postID := uuid.New()
	authorID := uuid.New()
	strangerID := uuid.New()

	mockRepo := new(MockPostRepository)
	svc := newTestService(mockRepo, new(MockUserRepository))

	mockRepo.On("FindByID", ctx, postID).Return(samplePost(postID, authorID), nil)

	err := svc.DeletePost(ctx, strangerID, postID)

	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, 401, apiErr.StatusCode)
	assert.Equal(t, "User not authorized.", apiErr.Message)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeletePost_Author(t *testing.T) {
	ctx := context.Background()
	postID := uuid.New()
	authorID := uuid.New()

	mockRepo := new(MockPostRepository)
	svc := newTestService(mockRepo, new(MockUserRepository))

	mockRepo.On("FindByID", ctx, postID).Return(samplePost(postID, authorID), nil)
	mockRepo.On("Delete", ctx, postID).Return(nil)

	assert.NoError(t, svc.DeletePost(ctx, authorID, postID))
	mockRepo.AssertExpectations(t)
}

func TestLikePost_DuplicateRejected(t *testing.T) {
	ctx := context.Background()
	postID := uuid.New()
	likerID := uuid.New()

	mockRepo := new(MockPostRepository)
	svc := newTestService(mockRepo, new(MockUserRepository))

	mockRepo.On("FindByID", ctx, postID).Return(samplePost(postID, uuid.New()), nil)
	mockRepo.On("AddLike", ctx, mock.AnythingOfType("*post.Like")).Return(ErrAlreadyLiked)

	likes, err := svc.LikePost(ctx, likerID, postID)

	assert.Nil(t, likes)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Equal(t, "Post already liked.", apiErr.Message)
}

func TestLikePost_ReturnsUpdatedLikes(t *testing.T) {
	ctx := context.Background()
	postID := uuid.New()
	likerID := uuid.New()

	liked := samplePost(postID, uuid.New())
	liked.Likes = []Like{{ID: uuid.New(), PostID: postID, UserID: likerID}}

	mockRepo := new(MockPostRepository)
	svc := newTestService(mockRepo, new(MockUserRepository))

	mockRepo.On("FindByID", ctx, postID).Return(liked, nil)
	mockRepo.On("AddLike", ctx, mock.AnythingOfType("*post.Like")).Return(nil)

	likes, err := svc.LikePost(ctx, likerID, postID)

	assert.NoError(t, err)
	assert.Len(t, likes, 1)
	assert.Equal(t, likerID, likes[0].User)
}

func TestUnlikePost_NotLiked(t *testing.T) {
	ctx := context.Background()
	postID := uuid.New()
	likerID := uuid.New()

	mockRepo := new(MockPostRepository)
	svc := newTestService(mockRepo, new(MockUserRepository))

	mockRepo.On("FindByID", ctx, postID).Return(samplePost(postID, uuid.New()), nil)
	mockRepo.On("RemoveLike", ctx, postID, likerID).Return(ErrNotLiked)

	likes, err := svc.UnlikePost(ctx, likerID, postID)

	assert.Nil(t, likes)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, "Post has not yet been liked.", apiErr.Message)
}

func TestAddComment_SnapshotsAuthor(t *testing.T) {
	ctx := context.Background()
	postID := uuid.New()
	commenterID := uuid.New()

	commented := samplePost(postID, uuid.New())
	commented.Comments = []Comment{{
		ID:     uuid.New(),
		PostID: postID,
		UserID: commenterID,
		Text:   "nice post",
		Name:   "Jane Doe",
	}}

	mockRepo := new(MockPostRepository)
	mockUsers := new(MockUserRepository)
	svc := newTestService(mockRepo, mockUsers)

	mockRepo.On("FindByID", ctx, postID).Return(commented, nil)
	mockUsers.On("FindByID", ctx, commenterID).Return(sampleAuthor(commenterID), nil)
	mockRepo.On("AddComment", ctx, mock.AnythingOfType("*post.Comment")).
		Run(func(args mock.Arguments) {
			cm := args.Get(1).(*Comment)
			assert.Equal(t, "Jane Doe", cm.Name)
			assert.Equal(t, commenterID, cm.UserID)
		}).
		Return(nil)

	comments, err := svc.AddComment(ctx, commenterID, postID, AddCommentRequest{Text: "nice post"})

	assert.NoError(t, err)
	assert.Len(t, comments, 1)
	assert.Equal(t, "nice post", comments[0].Text)
	mockRepo.AssertExpectations(t)
}

func TestRemoveComment_UnknownComment(t *testing.T) {
	ctx := context.Background()
	postID := uuid.New()
	callerID := uuid.New()

	mockRepo := new(MockPostRepository)
	svc := newTestService(mockRepo, new(MockUserRepository))

	mockRepo.On("FindByID", ctx, postID).Return(samplePost(postID, uuid.New()), nil)

	comments, err := svc.RemoveComment(ctx, callerID, postID, uuid.New())

	assert.Nil(t, comments)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Equal(t, "Comment does not exist.", apiErr.Message)
	mockRepo.AssertNotCalled(t, "RemoveComment", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveComment_OnlyCommentAuthor(t *testing.T) {
	ctx := context.Background()
	postID := uuid.New()
	commentID := uuid.New()
	commenterID := uuid.New()
	strangerID := uuid.New()

	p := samplePost(postID, uuid.New())
	p.Comments = []Comment{{ID: commentID, PostID: postID, UserID: commenterID, Text: "mine"}}

	mockRepo := new(MockPostRepository)
	svc := newTestService(mockRepo, new(MockUserRepository))

	mockRepo.On("FindByID", ctx, postID).Return(p, nil)

	comments, err := svc.RemoveComment(ctx, strangerID, postID, commentID)

	assert.Nil(t, comments)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, 401, apiErr.StatusCode)
	assert.Equal(t, "User not authorized.", apiErr.Message)
	mockRepo.AssertNotCalled(t, "RemoveComment", mock.Anything, mock.Anything, mock.Anything)
}

func TestListPosts(t *testing.T) {
	ctx := context.Background()

	first := samplePost(uuid.New(), uuid.New())
	second := samplePost(uuid.New(), uuid.New())

	mockRepo := new(MockPostRepository)
	svc := newTestService(mockRepo, new(MockUserRepository))

	mockRepo.On("FindAll", ctx).Return([]Post{*first, *second}, nil)

	posts, err := svc.ListPosts(ctx)

	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, first.ID, posts[0].ID)
}
