package auth

import (
	"testing"
	"time"

	"catalog/config"
	"catalog/internal/domain/entity"
	"catalog/internal/domain/service"
	"catalog/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"
	cfg.Auth.AccessTokenTTL = 15 * time.Minute
	cfg.Auth.RefreshTokenTTL = 7 * 24 * time.Hour

	return cfg
}

func newTestUser() *entity.User {
	return &entity.User{ID: 42, Username: "alice", Email: "alice@example.com", Role: entity.RoleModerator}
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	pair, err := jwtService.GenerateTokens(newTestUser())
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, 15*time.Minute, pair.ExpiresIn)

	accessClaims, err := jwtService.ValidateToken(pair.AccessToken, service.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(42), accessClaims.UserID)
	assert.Equal(t, "alice", accessClaims.Subject)
	assert.Equal(t, "alice@example.com", accessClaims.Email)
	assert.Equal(t, entity.RoleModerator, accessClaims.Role)
	assert.Equal(t, service.TokenTypeAccess, accessClaims.Type)

	refreshClaims, err := jwtService.ValidateToken(pair.RefreshToken, service.TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, int64(42), refreshClaims.UserID)
	assert.Equal(t, service.TokenTypeRefresh, refreshClaims.Type)
}

func TestJWTService_RejectsWrongTokenType(t *testing.T) {
	cfg := newTestConfig()
	// Same secret for both types so only the type claim can tell them apart.
	cfg.SecretKey.Refresh = cfg.SecretKey.Access

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)

	pair, err := jwtService.GenerateTokens(newTestUser())
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(pair.RefreshToken, service.TokenTypeAccess)
	assert.True(t, errors.Is(err, ErrTokenTypeMismatch))
}

func TestJWTService_RejectsTokenSignedWithOtherSecret(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	pair, err := jwtService.GenerateTokens(newTestUser())
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(pair.AccessToken, service.TokenTypeRefresh)
	assert.True(t, errors.Is(err, jwt.ErrTokenSignatureInvalid))
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	claims, err := jwtService.ValidateToken("clearly-not-a-jwt-token-format", service.TokenTypeAccess)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, jwt.ErrTokenMalformed))
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	impl := svc.(*jwtService)
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	impl.now = func() time.Time { return issued }

	pair, err := svc.GenerateTokens(newTestUser())
	require.NoError(t, err)

	impl.now = func() time.Time { return issued.Add(16 * time.Minute) }
	_, err = svc.ValidateToken(pair.AccessToken, service.TokenTypeAccess)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))

	// Refresh tokens live longer.
	_, err = svc.ValidateToken(pair.RefreshToken, service.TokenTypeRefresh)
	assert.NoError(t, err)
}

func TestJWTService_RequiresSecrets(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
}

func TestJWTService_GetRefreshTokenDuration(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	assert.Equal(t, 7*24*time.Hour, jwtService.GetRefreshTokenDuration())
}
