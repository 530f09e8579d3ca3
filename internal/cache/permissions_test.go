package cache

import (
	"context"
	"testing"
	"time"

	"warehouse/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPermissionCacheExpires(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryPermissionCache(time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "qc_inspector", []string{"quality_control:read"}))
	codes, ok, err := c.Get(ctx, "qc_inspector")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"quality_control:read"}, codes)

	now = now.Add(2 * time.Minute)
	_, ok, _ = c.Get(ctx, "qc_inspector")
	assert.False(t, ok)
}

func TestMemoryPermissionCacheInvalidateAll(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryPermissionCache(time.Minute)
	require.NoError(t, c.Set(ctx, "a", nil))
	require.NoError(t, c.Set(ctx, "b", nil))

	require.NoError(t, c.Invalidate(ctx, ""))
	_, okA, _ := c.Get(ctx, "a")
	_, okB, _ := c.Get(ctx, "b")
	assert.False(t, okA)
	assert.False(t, okB)
}

func TestRedisPermissionCache(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client, err := NewRedis(ctx, config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	c := NewRedisPermissionCache(client, time.Minute)

	_, ok, err := c.Get(ctx, "warehouse_manager")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "warehouse_manager", []string{"warehouse_approval:approve", "inventory:read"}))
	codes, ok, err := c.Get(ctx, "warehouse_manager")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"warehouse_approval:approve", "inventory:read"}, codes)

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.Get(ctx, "warehouse_manager")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "viewer", []string{}))
	require.NoError(t, c.Invalidate(ctx, ""))
	assert.False(t, mr.Exists(permissionKeyPrefix+"viewer"))
}
