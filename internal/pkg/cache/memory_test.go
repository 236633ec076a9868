package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClient_SetGetDelete(t *testing.T) {
	c := NewMemoryClient()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "product:1", []byte(`{"id":1}`), time.Minute))

	val, err := c.Get(ctx, "product:1")
	require.NoError(t, err)
	assert.Equal(t, `{"id":1}`, val)

	require.NoError(t, c.Delete(ctx, "product:1"))
	_, err = c.Get(ctx, "product:1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryClient_Expiration(t *testing.T) {
	c := NewMemoryClient()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Second))
	now = now.Add(2 * time.Second)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryClient_DeleteByPrefix(t *testing.T) {
	c := NewMemoryClient()
	ctx := context.Background()

	_ = c.Set(ctx, "product:1", "a", 0)
	_ = c.Set(ctx, "product:2", "b", 0)
	_ = c.Set(ctx, "categories:all", "c", 0)

	require.NoError(t, c.DeleteByPrefix(ctx, "product:"))

	_, err := c.Get(ctx, "product:1")
	assert.ErrorIs(t, err, ErrCacheMiss)
	val, err := c.Get(ctx, "categories:all")
	require.NoError(t, err)
	assert.Equal(t, "c", val)
}

func TestMemoryClient_IncrStartsWindow(t *testing.T) {
	c := NewMemoryClient()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		n, err := c.Incr(ctx, "rate-limit:10.0.0.1", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	now = now.Add(time.Minute)
	n, err := c.Incr(ctx, "rate-limit:10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
