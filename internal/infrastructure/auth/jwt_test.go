package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicehub/backend/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "invoicehub-test",
		MaxRefreshCount:        3,
	})
}

func TestJWTService_GenerateTokenPair(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: userID, Email: "owner@example.com"})
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))
}

func TestJWTService_ValidateAccessToken(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: userID, Email: "owner@example.com"})
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "owner@example.com", claims.Email)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)

		parsed, err := claims.GetUserUUID()
		require.NoError(t, err)
		assert.Equal(t, userID, parsed)
	})

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                 "a-completely-different-secret-key",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: 24 * time.Hour,
			Issuer:                 "other",
		})
		otherPair, err := other.GenerateTokenPair(GenerateTokenInput{UserID: userID})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(otherPair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		shortLived := NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-key-for-unit-tests-only",
			AccessTokenExpiration:  -time.Minute,
			RefreshTokenExpiration: 24 * time.Hour,
			Issuer:                 "invoicehub-test",
		})
		expiredPair, err := shortLived.GenerateTokenPair(GenerateTokenInput{UserID: userID})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(expiredPair.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestJWTService_RefreshTokenPair(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: userID, Email: "owner@example.com"})
	require.NoError(t, err)

	t.Run("refresh produces a new valid pair", func(t *testing.T) {
		newPair, err := svc.RefreshTokenPair(pair.RefreshToken, "owner@example.com")
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(newPair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)

		refreshClaims, err := svc.ValidateRefreshToken(newPair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, 1, refreshClaims.RefreshCount)
	})

	t.Run("refresh count limit is enforced", func(t *testing.T) {
		current := pair.RefreshToken
		var err error
		for i := 0; i < 3; i++ {
			var next *TokenPair
			next, err = svc.RefreshTokenPair(current, "owner@example.com")
			require.NoError(t, err)
			current = next.RefreshToken
		}

		_, err = svc.RefreshTokenPair(current, "owner@example.com")
		assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
	})

	t.Run("access token cannot be used for refresh", func(t *testing.T) {
		_, err := svc.RefreshTokenPair(pair.AccessToken, "owner@example.com")
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	bl := NewInMemoryTokenBlacklist()

	blacklisted, err := bl.IsBlacklisted(ctx, "some-jti")
	require.NoError(t, err)
	assert.False(t, blacklisted)

	require.NoError(t, bl.AddToBlacklist(ctx, "some-jti", time.Minute))

	blacklisted, err = bl.IsBlacklisted(ctx, "some-jti")
	require.NoError(t, err)
	assert.True(t, blacklisted)

	// Entries past their TTL are dropped
	require.NoError(t, bl.AddToBlacklist(ctx, "expired-jti", -time.Second))
	blacklisted, err = bl.IsBlacklisted(ctx, "expired-jti")
	require.NoError(t, err)
	assert.False(t, blacklisted)
}
