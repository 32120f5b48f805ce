package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	token, expiresAt, err := GenerateSessionToken("secret", "sess-1", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ParseSessionToken("secret", token)
	require.NoError(t, err)
	require.Equal(t, "sess-1", claims.SessionID)
}

func TestSessionToken_WrongSecret(t *testing.T) {
	token, _, err := GenerateSessionToken("secret", "sess-1", time.Hour)
	require.NoError(t, err)

	_, err = ParseSessionToken("other", token)
	require.Error(t, err)
}

func TestSessionToken_Expired(t *testing.T) {
	token, _, err := GenerateSessionToken("secret", "sess-1", -time.Minute)
	require.NoError(t, err)

	_, err = ParseSessionToken("secret", token)
	require.Error(t, err)
}

func TestSessionToken_MissingSecret(t *testing.T) {
	_, _, err := GenerateSessionToken("", "sess-1", time.Hour)
	require.Error(t, err)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("password")
	require.NoError(t, err)

	require.True(t, CheckPassword("password", string(hash)))
	require.False(t, CheckPassword("wrong", string(hash)))
}
