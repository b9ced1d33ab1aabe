package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestVerifyValidToken(t *testing.T) {
	token, err := Issue("42", secret, time.Hour)
	require.NoError(t, err)

	claims, err := Verify(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestVerifyMissingToken(t *testing.T) {
	_, err := Verify("", secret)
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestVerifyMalformedToken(t *testing.T) {
	_, err := Verify("not-a-jwt", secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := Issue("42", "other-secret", time.Hour)
	require.NoError(t, err)

	_, err = Verify(token, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpiredToken(t *testing.T) {
	token, err := Issue("42", secret, -time.Minute)
	require.NoError(t, err)

	_, err = Verify(token, secret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyTokenWithoutUserID(t *testing.T) {
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token, err := raw.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = Verify(token, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyLegacyIDClaim(t *testing.T) {
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "7",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token, err := raw.SignedString([]byte(secret))
	require.NoError(t, err)

	claims, err := Verify(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.UserID)
}
