package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	SetSecret("round-trip")
	token, err := GenerateToken("staff-1", []string{"admin"})
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", claims.UserID)
	assert.Equal(t, []string{"admin"}, claims.Roles)
}

func TestValidateTokenRejects(t *testing.T) {
	SetSecret("one")
	token, err := GenerateToken("staff-1", nil)
	require.NoError(t, err)

	SetSecret("two")
	_, err = ValidateToken(token)
	assert.Error(t, err)

	noUser := jwt.NewWithClaims(jwt.SigningMethodHS256, UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	signed, err := noUser.SignedString(jwtSecret)
	require.NoError(t, err)
	_, err = ValidateToken(signed)
	assert.ErrorIs(t, err, ErrMissingUserID)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, UserClaims{
		UserID:           "staff-1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))},
	})
	signed, err = expired.SignedString(jwtSecret)
	require.NoError(t, err)
	_, err = ValidateToken(signed)
	assert.Error(t, err)
}
