// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Get2Core/fs-project/internal/feature/financials/domain/entity"
	"github.com/Get2Core/fs-project/internal/feature/financials/usecase"
)

// CachingAccountFetcher decorates an AccountFetcher with Redis caching.
// Disclosures are published once a day, so entries live until the next 08:00 KST by default.
type CachingAccountFetcher struct {
	inner     usecase.AccountFetcher
	rdb       *redis.Client
	ttl       func() time.Duration
	namespace string
}

var _ usecase.AccountFetcher = (*CachingAccountFetcher)(nil)

// NewCachingAccountFetcher decorates an AccountFetcher with Redis caching.
// If ttl is 0, entries expire at the next 08:00 KST. If namespace is empty, it uses "financials".
// A nil rdb disables caching.
func NewCachingAccountFetcher(rdb *redis.Client, ttl time.Duration, inner usecase.AccountFetcher, namespace string) *CachingAccountFetcher {
	ttlFn := TimeUntilNext8AM
	if ttl > 0 {
		ttlFn = func() time.Duration { return ttl }
	}
	if namespace == "" {
		namespace = "financials"
	}
	return &CachingAccountFetcher{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttlFn,
		namespace: namespace,
	}
}

// FetchAccounts checks the cache first and falls back to the inner fetcher.
// Empty results (no data for that year) are cached too; errors are not.
func (c *CachingAccountFetcher) FetchAccounts(ctx context.Context, corpCode string, year int, reprtCode string) ([]entity.AccountRow, error) {
	if c.rdb == nil {
		return c.inner.FetchAccounts(ctx, corpCode, year, reprtCode)
	}

	key := c.cacheKey(corpCode, year, reprtCode)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.AccountRow
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to OpenDART
	out, err := c.inner.FetchAccounts(ctx, corpCode, year, reprtCode)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl()).Err()
	}
	return out, nil
}

func (c *CachingAccountFetcher) cacheKey(corpCode string, year int, reprtCode string) string {
	return fmt.Sprintf("%s:%s:%d:%s", c.namespace, safe(corpCode), year, safe(reprtCode))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
