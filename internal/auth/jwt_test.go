package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	// Any key works: InspectToken never verifies.
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-side-secret"))
	require.NoError(t, err)
	return s
}

func TestInspectTokenReadsUserIDAndExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	info, err := InspectToken(signed(t, jwt.MapClaims{"user_id": 42, "exp": exp.Unix()}))
	require.NoError(t, err)

	assert.Equal(t, int64(42), info.UserID)
	assert.True(t, exp.Equal(info.ExpiresAt))
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(exp.Add(time.Second)))
}

func TestInspectTokenFallsBackToSubject(t *testing.T) {
	info, err := InspectToken(signed(t, jwt.MapClaims{"sub": "7"}))
	require.NoError(t, err)
	assert.Equal(t, int64(7), info.UserID)
	assert.False(t, info.Expired(time.Now()))
}

func TestInspectTokenErrors(t *testing.T) {
	_, err := InspectToken("")
	assert.ErrorIs(t, err, ErrNoToken)

	_, err = InspectToken("not-a-jwt")
	assert.Error(t, err)

	_, err = InspectToken(signed(t, jwt.MapClaims{"name": "nobody"}))
	assert.Error(t, err)
}
