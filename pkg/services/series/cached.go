package series

import (
	"context"
	"time"

	"github.com/de-tools/rate-atlas/pkg/models/domain"
	"github.com/de-tools/rate-atlas/pkg/observability"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const DefaultTTL = time.Hour

// CachedSource fetches each series at most once per TTL. Concurrent requests
// for the same key share a single upstream fetch.
type CachedSource struct {
	source  Source
	cache   Cache
	ttl     time.Duration
	metrics *observability.Metrics
	now     func() time.Time
	group   singleflight.Group
}

type CachedSourceOption func(*CachedSource)

func WithMetrics(m *observability.Metrics) CachedSourceOption {
	return func(c *CachedSource) {
		c.metrics = m
	}
}

func WithClock(now func() time.Time) CachedSourceOption {
	return func(c *CachedSource) {
		c.now = now
	}
}

func NewCachedSource(source Source, cache Cache, ttl time.Duration, opts ...CachedSourceOption) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &CachedSource{
		source: source,
		cache:  cache,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetSeries serves a cached copy younger than the TTL, otherwise it joins the
// shared upstream fetch for the key. The fetch ignores caller cancellation;
// each caller still returns early when its own ctx is done.
func (c *CachedSource) GetSeries(ctx context.Context, id string, start time.Time) (domain.TimeSeries, error) {
	key := Key{ID: id, Start: start}
	logger := zerolog.Ctx(ctx).With().Str("series", id).Logger()

	if s, ok := c.fresh(ctx, key, logger); ok {
		c.hit()
		return s, nil
	}
	c.miss()

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key.String(), func() (interface{}, error) {
		if s, ok := c.fresh(fetchCtx, key, logger); ok {
			return s, nil
		}

		began := time.Now()
		s, err := c.source.GetSeries(fetchCtx, id, start)
		c.observeFetch(id, began, err)
		if err != nil {
			return domain.TimeSeries{}, err
		}

		if err := c.cache.Put(fetchCtx, key, Entry{Series: s, FetchedAt: c.now()}); err != nil {
			logger.Warn().Err(err).Msg("cache write failed")
		}
		return s, nil
	})

	select {
	case <-ctx.Done():
		return domain.TimeSeries{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.TimeSeries{}, res.Err
		}
		return res.Val.(domain.TimeSeries), nil
	}
}

func (c *CachedSource) fresh(ctx context.Context, key Key, logger zerolog.Logger) (domain.TimeSeries, bool) {
	entry, err := c.cache.Get(ctx, key)
	if err != nil {
		logger.Warn().Err(err).Msg("cache read failed, fetching from source")
		return domain.TimeSeries{}, false
	}
	if entry == nil || c.now().Sub(entry.FetchedAt) >= c.ttl {
		return domain.TimeSeries{}, false
	}
	return entry.Series, true
}

func (c *CachedSource) hit() {
	if c.metrics != nil {
		c.metrics.CacheHits.Inc()
	}
}

func (c *CachedSource) miss() {
	if c.metrics != nil {
		c.metrics.CacheMisses.Inc()
	}
}

func (c *CachedSource) observeFetch(id string, began time.Time, err error) {
	if c.metrics == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.metrics.SeriesFetches.WithLabelValues(id, result).Inc()
	c.metrics.SeriesFetchLatency.WithLabelValues(id).Observe(time.Since(began).Seconds())
}
