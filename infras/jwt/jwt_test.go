package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportshub/config"
)

func newTestService(now time.Time) *Service {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "test-secret"
	cfg.JWT.Issuer = "sportshub-auth"

	return &Service{config: cfg, now: func() time.Time { return now }}
}

func TestSignAndValidate(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(now)

	token, err := svc.Sign("club-user-1", "club", "club-1", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token, AccessToken)
	require.NoError(t, err)

	assert.Equal(t, "club-user-1", claims.UserID)
	assert.Equal(t, "club", claims.Role)
	assert.Equal(t, "club-1", claims.ClubID)
	assert.NotEmpty(t, claims.TokenID)
}

func TestValidateToken_Rejections(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(now)

	expired, err := svc.Sign("player-1", "player", "", time.Minute)
	require.NoError(t, err)

	later := newTestService(now.Add(2 * time.Minute))
	_, err = later.ValidateToken(context.Background(), expired, AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)

	other := newTestService(now)
	other.config.JWT.AccessSecret = "another-secret"
	forged, err := other.Sign("player-1", "player", "", time.Hour)
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), forged, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noRole, err := svc.Sign("player-1", "", "", time.Hour)
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), noRole, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidClaim)

	_, err = svc.ValidateToken(context.Background(), "not-a-token", AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := ExtractTokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = ExtractTokenFromHeader("Basic dXNlcjpwYXNz")
	assert.Error(t, err)

	_, err = ExtractTokenFromHeader("Bearer ")
	assert.Error(t, err)
}
