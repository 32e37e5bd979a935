package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_IssueAndParse(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)

	signed, issued, err := tokens.Issue("1", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)

	claims, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, issued.ID, claims.ID)
}

func TestTokens_WrongSecret(t *testing.T) {
	signed, _, err := NewTokens("secret", time.Hour).Issue("1", "admin")
	require.NoError(t, err)

	_, err = NewTokens("other", time.Hour).Parse(signed)

	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestTokens_Expired(t *testing.T) {
	tokens := NewTokens("secret", time.Minute)
	now := time.Now()
	tokens.now = func() time.Time { return now }

	signed, _, err := tokens.Issue("1", "admin")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = tokens.Parse(signed)

	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestTokens_Garbage(t *testing.T) {
	_, err := NewTokens("secret", time.Hour).Parse("not-a-token")

	assert.True(t, errors.Is(err, ErrInvalidToken))
}
