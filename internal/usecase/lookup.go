package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/iho/tradebook/internal/infrastructure/metrics"
)

const (
	lookupKeyGroups = "lookup:account_groups"
	lookupKeyMaster = "lookup:master:"
)

// LookupCache is a read-through cache for small reference lists (account
// groups, categories, brands, units). Concurrent misses on the same key
// share one database round trip. A nil *LookupCache always goes to the
// database.
type LookupCache struct {
	cache   Cache
	ttl     time.Duration
	group   singleflight.Group
	metrics *metrics.Metrics
}

// NewLookupCache creates a LookupCache backed by cache.
func NewLookupCache(cache Cache, ttl time.Duration, m *metrics.Metrics) *LookupCache {
	if ttl <= 0 {
		ttl = DefaultLookupTTL
	}
	return &LookupCache{cache: cache, ttl: ttl, metrics: m}
}

// Invalidate drops a cached list. Errors are logged, not returned; the
// entry expires on its own.
func (l *LookupCache) Invalidate(ctx context.Context, key string) {
	if l == nil || l.cache == nil {
		return
	}
	if err := l.cache.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("lookup cache invalidation failed")
	}
}

func (l *LookupCache) observe(result string) {
	if l.metrics != nil {
		l.metrics.LookupCache.WithLabelValues(result).Inc()
	}
}

// readThrough serves key from the cache or loads it with fetch and stores
// the JSON encoding. Cache failures fall through to fetch.
func readThrough[T any](ctx context.Context, l *LookupCache, key string, fetch func(context.Context) (T, error)) (T, error) {
	if l == nil || l.cache == nil {
		return fetch(ctx)
	}

	if raw, err := l.cache.Get(ctx, key); err == nil && len(raw) > 0 {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			l.observe("hit")
			return cached, nil
		}
	} else if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("lookup cache read failed")
	}
	l.observe("miss")

	v, err, _ := l.group.Do(key, func() (any, error) {
		fresh, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(fresh); err == nil {
			if err := l.cache.Set(ctx, key, raw, l.ttl); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("lookup cache write failed")
			}
		}
		return fresh, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return v.(T), nil
}
