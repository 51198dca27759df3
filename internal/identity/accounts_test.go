package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/roadmap-board/backend/internal/database/dbtest"
)

func TestAccountsRegisterAndAuthenticate(t *testing.T) {
	accounts := NewAccounts(dbtest.New(t))
	ctx := context.Background()

	user, err := accounts.CreateAccount(ctx, " alice ", "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "secret1", user.Password)
	assert.False(t, user.IsAdmin)

	got, err := accounts.Authenticate(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = accounts.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = accounts.Authenticate(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAccountsRejectDuplicates(t *testing.T) {
	accounts := NewAccounts(dbtest.New(t))
	ctx := context.Background()

	_, err := accounts.CreateAccount(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	_, err = accounts.CreateAccount(ctx, "alice", "other@example.com", "secret1")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = accounts.CreateAccount(ctx, "bob", "ALICE@example.com", "secret1")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAccountsPromote(t *testing.T) {
	accounts := NewAccounts(dbtest.New(t))
	ctx := context.Background()

	user, err := accounts.CreateAccount(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, accounts.Promote(ctx, "alice"))
	got, err := accounts.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)

	assert.ErrorIs(t, accounts.Promote(ctx, "nobody"), ErrUserNotFound)

	_, err = accounts.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
