package window

import (
	"testing"
	"time"

	"github.com/de-tools/rate-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flat returns twelve months of pre values ending at cycleStart followed by
// twelve months of post values.
func flat(cycleStart time.Time, pre, post float64) domain.TimeSeries {
	values := make([]float64, 0, 24)
	for i := 0; i < 12; i++ {
		values = append(values, pre)
	}
	for i := 0; i < 12; i++ {
		values = append(values, post)
	}
	return monthly(cycleStart.AddDate(0, -11, 0), values...)
}

func TestPrePostGrowth(t *testing.T) {
	cycleStart := month(2020, time.March)

	t.Run("ten percent increase", func(t *testing.T) {
		pct, ok := PrePostGrowth(flat(cycleStart, 100, 110), cycleStart, 12)
		require.True(t, ok)
		assert.InDelta(t, 10.0, pct, 1e-9)
	})

	t.Run("decline is negative", func(t *testing.T) {
		pct, ok := PrePostGrowth(flat(cycleStart, 200, 150), cycleStart, 12)
		require.True(t, ok)
		assert.InDelta(t, -25.0, pct, 1e-9)
	})

	t.Run("zero pre-window mean is absent", func(t *testing.T) {
		_, ok := PrePostGrowth(flat(cycleStart, 0, 110), cycleStart, 12)
		assert.False(t, ok)
	})

	t.Run("no post-window data", func(t *testing.T) {
		s := monthly(cycleStart.AddDate(0, -11, 0), 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)
		_, ok := PrePostGrowth(s, cycleStart, 12)
		assert.False(t, ok)
	})

	t.Run("no pre-window data", func(t *testing.T) {
		s := monthly(cycleStart.AddDate(0, 1, 0), 1, 2, 3)
		_, ok := PrePostGrowth(s, cycleStart, 12)
		assert.False(t, ok)
	})

	t.Run("empty series", func(t *testing.T) {
		_, ok := PrePostGrowth(domain.TimeSeries{}, cycleStart, 12)
		assert.False(t, ok)
	})

	t.Run("window bounds", func(t *testing.T) {
		// Values outside (start-12m, start+12m] must not count.
		s := domain.NewTimeSeries("PCE",
			domain.Value(cycleStart.AddDate(0, -12, 0), 1000),
			domain.Value(cycleStart.AddDate(0, -1, 0), 100),
			domain.Value(cycleStart, 100),
			domain.Value(cycleStart.AddDate(0, 1, 0), 120),
			domain.Value(cycleStart.AddDate(0, 12, 0), 120),
			domain.Value(cycleStart.AddDate(0, 13, 0), 1000),
		)
		pct, ok := PrePostGrowth(s, cycleStart, 12)
		require.True(t, ok)
		assert.InDelta(t, 20.0, pct, 1e-9)
	})

	t.Run("missing values are ignored", func(t *testing.T) {
		s := domain.NewTimeSeries("RSXFS",
			domain.Value(cycleStart.AddDate(0, -1, 0), 50),
			domain.Missing(cycleStart),
			domain.Missing(cycleStart.AddDate(0, 1, 0)),
			domain.Value(cycleStart.AddDate(0, 2, 0), 55),
		)
		pct, ok := PrePostGrowth(s, cycleStart, 12)
		require.True(t, ok)
		assert.InDelta(t, 10.0, pct, 1e-9)
	})
}

func TestGrowthResult_String(t *testing.T) {
	assert.Equal(t, "+10.0%", domain.GrowthResult{Percent: 10, Available: true}.String())
	assert.Equal(t, "-2.4%", domain.GrowthResult{Percent: -2.36, Available: true}.String())
	assert.Equal(t, "n/a", domain.GrowthResult{}.String())
}
