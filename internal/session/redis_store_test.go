package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func testSession(id string, ttl time.Duration) Session {
	now := time.Now()
	return Session{
		SessionID: id,
		Claim:     "alice:$2a$10$hash",
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestRedisStoreCreateGet(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	in := testSession("sid-1", time.Hour)
	require.NoError(t, store.Create(ctx, in))

	out, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in.SessionID, out.SessionID)
	assert.Equal(t, in.Claim, out.Claim)
	assert.WithinDuration(t, in.ExpiresAt, out.ExpiresAt, time.Second)
}

func TestRedisStoreGetMissing(t *testing.T) {
	store, _ := newRedisStore(t)

	out, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestRedisStoreCreateRejectsExpired(t *testing.T) {
	store, _ := newRedisStore(t)

	err := store.Create(context.Background(), testSession("sid-2", -time.Minute))
	assert.Error(t, err)
}

func TestRedisStoreCreateRejectsIncomplete(t *testing.T) {
	store, _ := newRedisStore(t)

	s := testSession("sid-3", time.Hour)
	s.Claim = ""
	assert.Error(t, store.Create(context.Background(), s))
}

func TestRedisStoreDelete(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, testSession("sid-4", time.Hour)))
	require.NoError(t, store.Delete(ctx, "sid-4"))

	out, err := store.Get(ctx, "sid-4")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestRedisStoreTTLExpires(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, testSession("sid-5", time.Minute)))

	mr.FastForward(2 * time.Minute)

	out, err := store.Get(ctx, "sid-5")
	require.NoError(t, err)
	assert.Nil(t, out, "redis should have dropped the key after the TTL")
}
