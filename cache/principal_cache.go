// Package cache chứa decorator Redis cho principal store.
// Key được gắn version; tăng version là vô hiệu hóa toàn bộ entry cũ.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/techmaster-vietnam/goerrorkit"
	"github.com/techmaster-vietnam/kidsenglish/authz"
)

// PrincipalCache wraps an authz.PrincipalStore with a versioned Redis cache.
type PrincipalCache struct {
	inner  authz.PrincipalStore
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewPrincipalCache creates the decorator. A nil client disables caching.
func NewPrincipalCache(inner authz.PrincipalStore, client *redis.Client, ttl time.Duration, prefix string) *PrincipalCache {
	if prefix == "" {
		prefix = "authz"
	}
	return &PrincipalCache{inner: inner, client: client, ttl: ttl, prefix: prefix}
}

func (c *PrincipalCache) versionKey() string {
	return c.prefix + ":version"
}

// version đọc version hiện tại, 0 khi chưa có key
func (c *PrincipalCache) version(ctx context.Context) (int64, error) {
	ver, err := c.client.Get(ctx, c.versionKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return ver, err
}

func (c *PrincipalCache) principalKey(ver int64, userID string) string {
	return fmt.Sprintf("%s:v%d:principal:%s", c.prefix, ver, userID)
}

// LoadPrincipal implements authz.PrincipalStore.
// Lỗi Redis chỉ được log rồi đọc thẳng từ inner store.
func (c *PrincipalCache) LoadPrincipal(ctx context.Context, userID string) (*authz.Principal, error) {
	if c.client == nil {
		return c.inner.LoadPrincipal(ctx, userID)
	}

	ver, err := c.version(ctx)
	if err != nil {
		c.logFailure(err, "read cache version")
		return c.inner.LoadPrincipal(ctx, userID)
	}
	key := c.principalKey(ver, userID)

	payload, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var principal authz.Principal
		jsonErr := json.Unmarshal(payload, &principal)
		if jsonErr == nil {
			return &principal, nil
		}
		c.logFailure(jsonErr, "decode cached principal")
	case !errors.Is(err, redis.Nil):
		c.logFailure(err, "read cached principal")
		return c.inner.LoadPrincipal(ctx, userID)
	}

	principal, err := c.inner.LoadPrincipal(ctx, userID)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(principal)
	if err != nil {
		c.logFailure(err, "encode principal")
		return principal, nil
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logFailure(err, "write cached principal")
	}
	return principal, nil
}

// InvalidatePrincipals implements core.CacheInvalidator
func (c *PrincipalCache) InvalidatePrincipals(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Incr(ctx, c.versionKey()).Err(); err != nil {
		return fmt.Errorf("cache: bump version: %w", err)
	}
	return nil
}

func (c *PrincipalCache) logFailure(err error, action string) {
	appErr := goerrorkit.WrapWithMessage(err, "principal cache: "+action)
	goerrorkit.LogError(appErr, "cache.PrincipalCache")
}
