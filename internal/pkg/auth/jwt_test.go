package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "uisgo.app",
		TokenAudience:  "uisgo-api",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testJWTService()
	userID := uuid.New()

	token, expiresIn, err := svc.GenerateAccessToken(userID, "student")
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "student", claims.Role)

	parsedID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := testJWTService()
	token, _, err := svc.GenerateAccessToken(uuid.New(), "student")
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{
		SecretKey:      "another-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "uisgo.app",
		TokenAudience:  "uisgo-api",
	})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenWrongIssuer(t *testing.T) {
	issuing := NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "someone-else",
		TokenAudience:  "uisgo-api",
	})
	token, _, err := issuing.GenerateAccessToken(uuid.New(), "student")
	require.NoError(t, err)

	_, err = testJWTService().ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenWrongAudience(t *testing.T) {
	issuing := NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "uisgo.app",
		TokenAudience:  "other-api",
	})
	token, _, err := issuing.GenerateAccessToken(uuid.New(), "student")
	require.NoError(t, err)

	_, err = testJWTService().ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	issuing := NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: -time.Minute,
		TokenIssuer:    "uisgo.app",
		TokenAudience:  "uisgo-api",
	})
	token, _, err := issuing.GenerateAccessToken(uuid.New(), "student")
	require.NoError(t, err)

	_, err = testJWTService().ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateAndExtractClaimsEmptyToken(t *testing.T) {
	_, err := testJWTService().ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	// A raw token without the prefix is accepted as-is
	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
