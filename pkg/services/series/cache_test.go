package series

import (
	"context"
	"testing"
	"time"

	"github.com/de-tools/rate-atlas/pkg/models/domain"
	"github.com/de-tools/rate-atlas/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, seriesID string, start time.Time) (*store.SeriesSnapshot, error) {
	args := m.Called(ctx, seriesID, start)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.SeriesSnapshot), args.Error(1)
}

func (m *mockStore) Put(ctx context.Context, snapshot store.SeriesSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	key := Key{ID: "FEDFUNDS", Start: start}

	entry, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, entry)

	fetchedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, c.Put(ctx, key, Entry{Series: fedfunds(), FetchedAt: fetchedAt}))

	entry, err = c.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, fetchedAt, entry.FetchedAt)
	assert.Equal(t, fedfunds(), entry.Series)
}

func TestStoreCache_RoundTripsMissingValues(t *testing.T) {
	st := new(mockStore)
	c := NewStoreCache(st)
	ctx := context.Background()
	key := Key{ID: "PCE", Start: start}
	fetchedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	series := domain.NewTimeSeries("PCE",
		domain.Value(start, 100),
		domain.Missing(start.AddDate(0, 1, 0)),
	)

	var saved store.SeriesSnapshot
	st.On("Put", ctx, mock.AnythingOfType("store.SeriesSnapshot")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(store.SeriesSnapshot)
		}).
		Return(nil)

	require.NoError(t, c.Put(ctx, key, Entry{Series: series, FetchedAt: fetchedAt}))
	assert.Equal(t, "PCE", saved.SeriesID)
	require.Len(t, saved.Points, 2)
	assert.Nil(t, saved.Points[1].Value)

	st.On("Get", ctx, "PCE", start).Return(&saved, nil)

	entry, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, series, entry.Series)
	assert.Equal(t, fetchedAt, entry.FetchedAt)
}

func TestStoreCache_Miss(t *testing.T) {
	st := new(mockStore)
	st.On("Get", mock.Anything, "PCE", start).Return(nil, nil)

	entry, err := NewStoreCache(st).Get(context.Background(), Key{ID: "PCE", Start: start})
	require.NoError(t, err)
	assert.Nil(t, entry)
}
