package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	token, expires, err := GenerateToken(testSecret, time.Hour)
	require.NoError(t, err)
	assert.True(t, expires.After(time.Now()))

	claims, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "owner", claims.Subject)
	assert.NotEmpty(t, claims.SessionID)
}

func TestParseWithWrongSecret(t *testing.T) {
	token, _, err := GenerateToken(testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("another-secret-another-secret-00", token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, _, err := GenerateToken(testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.Error(t, err)
}

func TestPasscodeHashVerify(t *testing.T) {
	hash, err := HashPasscode("1234")
	require.NoError(t, err)

	assert.NoError(t, VerifyPasscode(hash, "1234"))
	assert.Error(t, VerifyPasscode(hash, "4321"))
}
