package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	ConfigureJWT("round-trip-secret", time.Hour)

	token, err := GenerateJWT(42, "leo")
	require.NoError(t, err)

	userID, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestJWT_RejectsForeignSecret(t *testing.T) {
	ConfigureJWT("first-secret", time.Hour)
	token, err := GenerateJWT(1, "leo")
	require.NoError(t, err)

	ConfigureJWT("second-secret", time.Hour)
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestJWT_RejectsExpired(t *testing.T) {
	ConfigureJWT("expiry-secret", time.Hour)

	claims := &Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("expiry-secret"))
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestJWT_RejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not-a-token")
	assert.Error(t, err)
}
