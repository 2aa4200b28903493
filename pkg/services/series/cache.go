package series

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/de-tools/rate-atlas/pkg/adapters"
	"github.com/de-tools/rate-atlas/pkg/models/domain"
	"github.com/de-tools/rate-atlas/pkg/models/store"
	seriesstore "github.com/de-tools/rate-atlas/pkg/store/duckdb/series"
)

type Key struct {
	ID    string
	Start time.Time
}

func (k Key) String() string {
	return fmt.Sprintf("%s@%s", k.ID, k.Start.Format("2006-01-02"))
}

// Entry is a cached series together with the time it was fetched.
type Entry struct {
	Series    domain.TimeSeries
	FetchedAt time.Time
}

// Cache stores fetched series. Expiry is decided by the caller from FetchedAt.
type Cache interface {
	Get(ctx context.Context, key Key) (*Entry, error)
	Put(ctx context.Context, key Key, entry Entry) error
}

type memoryCache struct {
	mu      sync.RWMutex
	entries map[Key]Entry
}

func NewMemoryCache() Cache {
	return &memoryCache{entries: make(map[Key]Entry)}
}

func (c *memoryCache) Get(_ context.Context, key Key) (*Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (c *memoryCache) Put(_ context.Context, key Key, entry Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry
	return nil
}

type storeCache struct {
	store seriesstore.Store
}

// NewStoreCache keeps cached series in the DuckDB series store so they
// survive restarts.
func NewStoreCache(st seriesstore.Store) Cache {
	return &storeCache{store: st}
}

func (c *storeCache) Get(ctx context.Context, key Key) (*Entry, error) {
	snapshot, err := c.store.Get(ctx, key.ID, key.Start)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, nil
	}
	return &Entry{
		Series:    adapters.MapStoreSnapshotToDomainSeries(*snapshot),
		FetchedAt: snapshot.FetchedAt,
	}, nil
}

func (c *storeCache) Put(ctx context.Context, key Key, entry Entry) error {
	return c.store.Put(ctx, store.SeriesSnapshot{
		SeriesID:  key.ID,
		Start:     key.Start,
		FetchedAt: entry.FetchedAt,
		Points:    adapters.MapDomainSeriesToStorePoints(entry.Series),
	})
}
