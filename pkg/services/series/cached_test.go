package series

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/de-tools/rate-atlas/pkg/models/domain"
	"github.com/de-tools/rate-atlas/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) GetSeries(ctx context.Context, id string, start time.Time) (domain.TimeSeries, error) {
	args := m.Called(ctx, id, start)
	return args.Get(0).(domain.TimeSeries), args.Error(1)
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var start = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)

func fedfunds() domain.TimeSeries {
	return domain.NewTimeSeries("FEDFUNDS",
		domain.Value(start, 8.23),
		domain.Value(start.AddDate(0, 1, 0), 8.24),
	)
}

func TestCachedSource_ServesWithinTTL(t *testing.T) {
	src := new(mockSource)
	src.On("GetSeries", mock.Anything, "FEDFUNDS", start).Return(fedfunds(), nil).Once()

	clk := &clock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	metrics := observability.NewMetrics("")
	cached := NewCachedSource(src, NewMemoryCache(), time.Hour, WithClock(clk.Now), WithMetrics(metrics))

	ctx := context.Background()
	first, err := cached.GetSeries(ctx, "FEDFUNDS", start)
	require.NoError(t, err)

	clk.Advance(30 * time.Minute)
	second, err := cached.GetSeries(ctx, "FEDFUNDS", start)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	src.AssertNumberOfCalls(t, "GetSeries", 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheMisses))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SeriesFetches.WithLabelValues("FEDFUNDS", "ok")))
}

func TestCachedSource_RefetchesAfterTTL(t *testing.T) {
	src := new(mockSource)
	src.On("GetSeries", mock.Anything, "FEDFUNDS", start).Return(fedfunds(), nil).Twice()

	clk := &clock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	cached := NewCachedSource(src, NewMemoryCache(), time.Hour, WithClock(clk.Now))

	_, err := cached.GetSeries(context.Background(), "FEDFUNDS", start)
	require.NoError(t, err)

	clk.Advance(time.Hour)
	_, err = cached.GetSeries(context.Background(), "FEDFUNDS", start)
	require.NoError(t, err)

	src.AssertNumberOfCalls(t, "GetSeries", 2)
}

func TestCachedSource_ErrorsAreNotCached(t *testing.T) {
	src := new(mockSource)
	src.On("GetSeries", mock.Anything, "DPRIME", start).
		Return(domain.TimeSeries{}, errors.New("provider down")).Once()
	src.On("GetSeries", mock.Anything, "DPRIME", start).
		Return(domain.NewTimeSeries("DPRIME", domain.Value(start, 10)), nil).Once()

	cached := NewCachedSource(src, NewMemoryCache(), time.Hour)

	_, err := cached.GetSeries(context.Background(), "DPRIME", start)
	require.Error(t, err)

	s, err := cached.GetSeries(context.Background(), "DPRIME", start)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestCachedSource_KeysIncludeStart(t *testing.T) {
	later := start.AddDate(10, 0, 0)
	src := new(mockSource)
	src.On("GetSeries", mock.Anything, "FEDFUNDS", start).Return(fedfunds(), nil).Once()
	src.On("GetSeries", mock.Anything, "FEDFUNDS", later).Return(domain.TimeSeries{ID: "FEDFUNDS"}, nil).Once()

	cached := NewCachedSource(src, NewMemoryCache(), time.Hour)

	_, err := cached.GetSeries(context.Background(), "FEDFUNDS", start)
	require.NoError(t, err)
	_, err = cached.GetSeries(context.Background(), "FEDFUNDS", later)
	require.NoError(t, err)

	src.AssertExpectations(t)
}

func TestCachedSource_ConcurrentCallsShareFetch(t *testing.T) {
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex
	src := SourceFunc(func(ctx context.Context, id string, start time.Time) (domain.TimeSeries, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-release
		return fedfunds(), nil
	})

	cached := NewCachedSource(src, NewMemoryCache(), time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := cached.GetSeries(context.Background(), "FEDFUNDS", start)
			assert.NoError(t, err)
			assert.Equal(t, 2, s.Len())
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestCachedSource_CancelledCallerDoesNotFailSharedFetch(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex
	src := SourceFunc(func(ctx context.Context, id string, start time.Time) (domain.TimeSeries, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		close(entered)
		<-release
		if err := ctx.Err(); err != nil {
			return domain.TimeSeries{}, err
		}
		return fedfunds(), nil
	})

	cached := NewCachedSource(src, NewMemoryCache(), time.Hour)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := cached.GetSeries(ctxA, "FEDFUNDS", start)
		errA <- err
	}()
	<-entered

	type result struct {
		series domain.TimeSeries
		err    error
	}
	resB := make(chan result, 1)
	go func() {
		s, err := cached.GetSeries(context.Background(), "FEDFUNDS", start)
		resB <- result{series: s, err: err}
	}()

	time.Sleep(20 * time.Millisecond)
	cancelA()
	assert.ErrorIs(t, <-errA, context.Canceled)

	close(release)
	b := <-resB
	require.NoError(t, b.err)
	assert.Equal(t, 2, b.series.Len())

	s, err := cached.GetSeries(context.Background(), "FEDFUNDS", start)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}
