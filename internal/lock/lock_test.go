package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentKey(t *testing.T) {
	assert.Equal(t, "inventory-doc:abc", DocumentKey("abc"))
}

func TestLocalLocker_ExcludesSameKey(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLocker()

	lease, err := l.Obtain(ctx, "k1")
	require.NoError(t, err)

	_, err = l.Obtain(ctx, "k1")
	assert.ErrorIs(t, err, ErrNotObtained)

	other, err := l.Obtain(ctx, "k2")
	require.NoError(t, err)
	require.NoError(t, other.Release(ctx))

	require.NoError(t, lease.Release(ctx))
	require.NoError(t, lease.Release(ctx))

	again, err := l.Obtain(ctx, "k1")
	require.NoError(t, err)
	require.NoError(t, again.Release(ctx))
}

func TestRedisLocker(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	l := NewRedisLocker(rdb, 5*time.Second)

	lease, err := l.Obtain(ctx, DocumentKey("d1"))
	require.NoError(t, err)
	assert.True(t, mr.Exists(DocumentKey("d1")))

	_, err = l.Obtain(ctx, DocumentKey("d1"))
	assert.ErrorIs(t, err, ErrNotObtained)

	require.NoError(t, lease.Release(ctx))
	assert.False(t, mr.Exists(DocumentKey("d1")))

	lease, err = l.Obtain(ctx, DocumentKey("d1"))
	require.NoError(t, err)
	require.NoError(t, lease.Release(ctx))
}

func TestRedisLocker_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	l := NewRedisLocker(rdb, time.Second)
	_, err := l.Obtain(ctx, "stale")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	lease, err := l.Obtain(ctx, "stale")
	require.NoError(t, err)
	require.NoError(t, lease.Release(ctx))
}
