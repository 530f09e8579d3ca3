package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// PermissionCache stores the permission codes granted to each role.
type PermissionCache interface {
	Get(ctx context.Context, role string) ([]string, bool, error)
	Set(ctx context.Context, role string, codes []string) error
	// Invalidate drops one role, or every role when role is empty.
	Invalidate(ctx context.Context, role string) error
}

type memoryEntry struct {
	codes     []string
	expiresAt time.Time
}

// MemoryPermissionCache keeps entries in process with a TTL.
type MemoryPermissionCache struct {
	entries sync.Map // role -> memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryPermissionCache(ttl time.Duration) *MemoryPermissionCache {
	return &MemoryPermissionCache{ttl: ttl, now: time.Now}
}

func (m *MemoryPermissionCache) Get(_ context.Context, role string) ([]string, bool, error) {
	v, ok := m.entries.Load(role)
	if !ok {
		return nil, false, nil
	}
	entry := v.(memoryEntry)
	if m.now().After(entry.expiresAt) {
		m.entries.Delete(role)
		return nil, false, nil
	}
	return entry.codes, true, nil
}

func (m *MemoryPermissionCache) Set(_ context.Context, role string, codes []string) error {
	m.entries.Store(role, memoryEntry{codes: codes, expiresAt: m.now().Add(m.ttl)})
	return nil
}

func (m *MemoryPermissionCache) Invalidate(_ context.Context, role string) error {
	if role != "" {
		m.entries.Delete(role)
		return nil
	}
	m.entries.Range(func(key, _ interface{}) bool {
		m.entries.Delete(key)
		return true
	})
	return nil
}

const permissionKeyPrefix = "warehouse:role_permissions:"

// RedisPermissionCache shares entries between API replicas.
type RedisPermissionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPermissionCache(client *redis.Client, ttl time.Duration) *RedisPermissionCache {
	return &RedisPermissionCache{client: client, ttl: ttl}
}

func (r *RedisPermissionCache) Get(ctx context.Context, role string) ([]string, bool, error) {
	raw, err := r.client.Get(ctx, permissionKeyPrefix+role).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var codes []string
	if err := json.Unmarshal(raw, &codes); err != nil {
		return nil, false, err
	}
	return codes, true, nil
}

func (r *RedisPermissionCache) Set(ctx context.Context, role string, codes []string) error {
	raw, err := json.Marshal(codes)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, permissionKeyPrefix+role, raw, r.ttl).Err()
}

func (r *RedisPermissionCache) Invalidate(ctx context.Context, role string) error {
	if role != "" {
		return r.client.Del(ctx, permissionKeyPrefix+role).Err()
	}

	iter := r.client.Scan(ctx, 0, permissionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
