package adapters

import (
	"testing"
	"time"

	"github.com/de-tools/rate-atlas/pkg/models/domain"
	"github.com/de-tools/rate-atlas/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapLagResultDomainToApi(t *testing.T) {
	tests := []struct {
		name       string
		lag        domain.Lag
		wantText   string
		wantMonths *int
	}{
		{"measured", domain.Lag{Outcome: domain.LagMeasured, Months: 4, Lookahead: 24}, "4 mo", intPtr(4)},
		{"exceeds", domain.Lag{Outcome: domain.LagExceedsWindow, Lookahead: 24}, ">24 mo", nil},
		{"insufficient", domain.Lag{Outcome: domain.LagInsufficientData, Lookahead: 24}, "n/a", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := MapLagResultDomainToApi(domain.LagResult{Cycle: 1, Label: "Cycle 1 (Jan 2001)", Series: "Prime", Lag: tt.lag})
			assert.Equal(t, tt.wantText, row.Text)
			assert.Equal(t, string(tt.lag.Outcome), row.Outcome)
			assert.Equal(t, tt.wantMonths, row.Months)
			assert.Equal(t, "Cycle 1 (Jan 2001)", row.Cycle)
		})
	}
}

func TestMapGrowthResultDomainToApi(t *testing.T) {
	row := MapGrowthResultDomainToApi(domain.GrowthResult{Label: "Cycle 2 (Sep 2007)", Series: "PCE", Percent: 3.456, Available: true})
	require.NotNil(t, row.Percent)
	assert.Equal(t, "+3.5%", row.Text)

	row = MapGrowthResultDomainToApi(domain.GrowthResult{Label: "Cycle 2 (Sep 2007)", Series: "PCE"})
	assert.Nil(t, row.Percent)
	assert.Equal(t, "n/a", row.Text)
}

func TestMapViewDomainToApi(t *testing.T) {
	jan := time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)
	feb := jan.AddDate(0, 1, 0)

	view := domain.View{
		Def: domain.ViewDef{Name: "lending", Title: "Lending Impact", WindowMonths: 12, Metric: domain.MetricLag},
		Markers: []domain.CycleMarker{
			{Index: 1, Start: jan, End: jan.AddDate(1, 0, 0), Label: "Cycle 1 (Jan 2001)", Style: domain.CycleStyle{Color: "#ff7b72"}},
		},
		Series: []domain.SeriesStatus{{
			Ref:    domain.SeriesRef{ID: "FEDFUNDS", Label: "Fed Funds Rate"},
			Series: domain.NewTimeSeries("FEDFUNDS", domain.Value(jan, 6.0), domain.Missing(feb)),
		}},
		Unavailable: []domain.UnavailableSeries{{Ref: domain.SeriesRef{ID: "DPRIME", Label: "Prime"}, Reason: "timeout"}},
	}

	res := MapViewDomainToApi(view)
	assert.Equal(t, "lending", res.Name)
	assert.Equal(t, "lag", res.Metric)
	require.Len(t, res.Cycles, 1)
	assert.Equal(t, "#ff7b72", res.Cycles[0].Color)
	require.Len(t, res.Series, 1)
	require.Len(t, res.Series[0].Points, 2)
	assert.Equal(t, 6.0, *res.Series[0].Points[0].Value)
	assert.Nil(t, res.Series[0].Points[1].Value)
	require.Len(t, res.Unavailable, 1)
	assert.Equal(t, "DPRIME", res.Unavailable[0].ID)
}

func TestSeriesRoundTripKeepsMissing(t *testing.T) {
	jan := time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)
	ts := domain.NewTimeSeries("X", domain.Value(jan, 1.5), domain.Missing(jan.AddDate(0, 1, 0)))

	points := MapDomainSeriesToStorePoints(ts)
	got := MapStoreSnapshotToDomainSeries(store.SeriesSnapshot{SeriesID: "X", Points: points})

	assert.Equal(t, ts, got)
}

func intPtr(v int) *int { return &v }
