package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// DefaultComputeTimeout bounds a shared compute call once it is detached from its callers.
const DefaultComputeTimeout = 30 * time.Second

// ResultCache is a content-addressed, write-once cache in front of upstream calls.
// Entries never expire.
type ResultCache struct {
	store          Store
	group          singleflight.Group
	computeTimeout time.Duration
	logger         *slog.Logger
	metrics        *metrics.AppMetrics
}

type Option func(*ResultCache)

// WithComputeTimeout overrides DefaultComputeTimeout.
func WithComputeTimeout(d time.Duration) Option {
	return func(c *ResultCache) {
		if d > 0 {
			c.computeTimeout = d
		}
	}
}

func New(store Store, m *metrics.AppMetrics, logger *slog.Logger, opts ...Option) *ResultCache {
	c := &ResultCache{store: store, computeTimeout: DefaultComputeTimeout, logger: logger, metrics: m}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchKey addresses a coarse search result.
func SearchKey(category types.Category, query string) string {
	return fmt.Sprintf("search:%s:%s", category, query)
}

// DetailKey addresses the enriched record for one place.
func DetailKey(placeID string) string {
	return "detail:" + placeID
}

func namespace(key string) string {
	ns, _, _ := strings.Cut(key, ":")
	return ns
}

// GetOrCompute returns the cached value for key, calling compute only on a miss.
// Concurrent misses on the same key share one compute call. Store failures
// degrade to computing the value; they are logged, not returned.
func GetOrCompute[T any](ctx context.Context, c *ResultCache, key string, compute func(context.Context) (T, error)) (T, error) {
	var zero T
	l := c.logger.With(slog.String("cache_key", key))

	raw, found, err := c.store.Find(ctx, key)
	if err != nil {
		l.WarnContext(ctx, "Cache lookup failed, computing value", slog.Any("error", err))
	}
	if found {
		var v T
		decodeErr := json.Unmarshal(raw, &v)
		if decodeErr == nil {
			c.metrics.RecordCacheLookup(ctx, namespace(key), true)
			return v, nil
		}
		// The stored entry stays; first write wins even when unreadable.
		l.WarnContext(ctx, "Cache entry is not decodable, recomputing", slog.Any("error", decodeErr))
		return compute(ctx)
	}
	c.metrics.RecordCacheLookup(ctx, namespace(key), false)

	// The shared compute outlives any single caller; each waiter still honors its own ctx.
	ch := c.group.DoChan(key, func() (any, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.computeTimeout)
		defer cancel()

		v, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode cache value: %w", err)
		}
		if err := c.store.Insert(ctx, key, b); err != nil {
			l.WarnContext(ctx, "Cache insert failed", slog.Any("error", err))
		}
		return b, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		var v T
		if err := json.Unmarshal(res.Val.([]byte), &v); err != nil {
			return zero, fmt.Errorf("decode cache value: %w", err)
		}
		return v, nil
	}
}
