package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/roadmap-board/backend/internal/models"
)

func TestTokensRoundTrip(t *testing.T) {
	tokens := NewTokens([]byte("secret"), time.Hour)

	raw, err := tokens.Issue(&models.User{ID: 7, Username: "ada", IsAdmin: true})
	require.NoError(t, err)

	p, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, Principal{ID: 7, Username: "ada", IsAdmin: true, IsAuthenticated: true}, p)
}

func TestTokensRejectWrongSecret(t *testing.T) {
	raw, err := NewTokens([]byte("secret"), time.Hour).Issue(&models.User{ID: 1, Username: "a"})
	require.NoError(t, err)

	p, err := NewTokens([]byte("other"), time.Hour).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.False(t, p.IsAuthenticated)
}

func TestTokensRejectExpired(t *testing.T) {
	tokens := NewTokens([]byte("secret"), time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	tokens.now = func() time.Time { return issued }

	raw, err := tokens.Issue(&models.User{ID: 1, Username: "a"})
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokensRejectGarbage(t *testing.T) {
	_, err := NewTokens([]byte("secret"), time.Hour).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPrincipalOwns(t *testing.T) {
	assert.True(t, Principal{ID: 3, IsAuthenticated: true}.Owns(3))
	assert.False(t, Principal{ID: 3, IsAuthenticated: true}.Owns(4))
	assert.False(t, Anonymous.Owns(0))
}
