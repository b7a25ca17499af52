// File: internal/auth/token_test.go
package auth

import (
	"context"
	"testing"
	"time"

	"devconnector_backend/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testTokenService(expiry time.Duration) TokenService {
	return NewTokenService(&config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: expiry,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	svc := testTokenService(time.Hour)
	userID := uuid.New()

	token, err := svc.Generate(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.NotEmpty(t, claims.ID, "token must carry a JTI for logout")
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParse_RejectsExpiredToken(t *testing.T) {
	svc := testTokenService(-time.Minute)

	token, err := svc.Generate(uuid.New())
	assert.NoError(t, err)

	_, err = svc.Parse(token)
	assert.Error(t, err)
}

func TestParse_RejectsForeignSignature(t *testing.T) {
	token, err := testTokenService(time.Hour).Generate(uuid.New())
	assert.NoError(t, err)

	other := NewTokenService(&config.Config{JWTSecret: "different-secret", JWTExpiry: time.Hour})
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParse_RejectsGarbage(t *testing.T) {
	svc := testTokenService(time.Hour)
	_, err := svc.Parse("not-a-token")
	assert.Error(t, err)
}

func TestBlocklist(t *testing.T) {
	ctx := context.Background()
	bl := NewInMemoryBlocklistService()

	jti := uuid.NewString()
	blocked, err := bl.IsBlocklisted(ctx, jti)
	assert.NoError(t, err)
	assert.False(t, blocked)

	assert.NoError(t, bl.AddToBlocklist(ctx, jti, time.Now().Add(time.Hour)))

	blocked, err = bl.IsBlocklisted(ctx, jti)
	assert.NoError(t, err)
	assert.True(t, blocked)
}

func TestBlocklist_IgnoresAlreadyExpired(t *testing.T) {
	ctx := context.Background()
	bl := NewInMemoryBlocklistService()

	jti := uuid.NewString()
	assert.NoError(t, bl.AddToBlocklist(ctx, jti, time.Now().Add(-time.Minute)))

	blocked, err := bl.IsBlocklisted(ctx, jti)
	assert.NoError(t, err)
	assert.False(t, blocked)
}
