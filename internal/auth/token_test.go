package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := IssueToken("admin", "test-secret", DefaultTTL)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := ParseToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := IssueToken("admin", "test-secret", DefaultTTL)
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := IssueToken("admin", "test-secret", -time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "test-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token", "test-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
