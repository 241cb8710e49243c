package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quiz-service/internal/user"
)

func registerVerified(t *testing.T, svc *Service, store user.Store, username, password string) {
	t.Helper()
	ctx := context.Background()
	_, err := svc.Register(ctx, username, "", password)
	require.NoError(t, err)
	_, err = store.MarkVerified(ctx, username)
	require.NoError(t, err)
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	store := user.NewMemStore()
	svc := NewService(store, false)

	u, err := svc.Register(context.Background(), "alice", "a@x.com", "pw123")
	require.NoError(t, err)

	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, user.RoleUser, u.Role)
	assert.True(t, u.Active)
	assert.False(t, u.Verified)
	assert.NotEqual(t, "pw123", u.PasswordHash)
	assert.True(t, VerifyPassword(u.PasswordHash, "pw123"))
}

func TestRegisterRejectsBadUsernames(t *testing.T) {
	svc := NewService(user.NewMemStore(), false)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "", "pw")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(ctx, "   ", "", "pw")
	assert.ErrorIs(t, err, ErrInvalidInput)

	// the claim delimiter cannot appear in usernames
	_, err = svc.Register(ctx, "alice:admin", "", "pw")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(ctx, "alice", "", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegisterDuplicateConflicts(t *testing.T) {
	svc := NewService(user.NewMemStore(), false)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "a@x.com", "pw123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "b@y.com", "pw456")
	assert.ErrorIs(t, err, user.ErrConflict)
}

func TestAuthenticateSuccess(t *testing.T) {
	store := user.NewMemStore()
	svc := NewService(store, true)
	registerVerified(t, svc, store, "alice", "pw123")

	u, err := svc.Authenticate(context.Background(), "alice", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
}

func TestAuthenticateFailuresAreGeneric(t *testing.T) {
	store := user.NewMemStore()
	svc := NewService(store, true)
	registerVerified(t, svc, store, "alice", "pw123")

	// wrong password and unknown user must be indistinguishable
	_, err := svc.Authenticate(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody", "pw123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	store := user.NewMemStore()
	svc := NewService(store, false)

	hash, err := HashPassword("pw123")
	require.NoError(t, err)
	_, err = store.Create(context.Background(), &user.User{
		Username:     "alice",
		PasswordHash: hash,
		Active:       false,
		Role:         user.RoleUser,
	})
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "alice", "pw123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUnverifiedIsDistinct(t *testing.T) {
	store := user.NewMemStore()
	svc := NewService(store, true)

	_, err := svc.Register(context.Background(), "alice", "a@x.com", "pw123")
	require.NoError(t, err)

	// correct credentials, verification pending
	_, err = svc.Authenticate(context.Background(), "alice", "pw123")
	assert.ErrorIs(t, err, ErrNotVerified)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUnverifiedAllowedWhenPolicyOff(t *testing.T) {
	store := user.NewMemStore()
	svc := NewService(store, false)

	_, err := svc.Register(context.Background(), "alice", "a@x.com", "pw123")
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "alice", "pw123")
	assert.NoError(t, err)
}

func TestMarkVerifiedTerminal(t *testing.T) {
	store := user.NewMemStore()
	svc := NewService(store, true)

	_, err := svc.Register(context.Background(), "alice", "a@x.com", "pw123")
	require.NoError(t, err)

	u, err := svc.MarkVerified(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, u.Verified)

	// idempotent: verifying twice stays verified
	u, err = svc.MarkVerified(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, u.Verified)
}

func TestMarkVerifiedUnknownUser(t *testing.T) {
	svc := NewService(user.NewMemStore(), true)

	_, err := svc.MarkVerified(context.Background(), "ghost")
	assert.ErrorIs(t, err, user.ErrNotFound)
}
