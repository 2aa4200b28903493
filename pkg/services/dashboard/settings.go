package dashboard

import (
	"time"

	"github.com/de-tools/rate-atlas/pkg/models/domain"
	"github.com/de-tools/rate-atlas/pkg/services/cycles"
	"github.com/de-tools/rate-atlas/pkg/services/window"
)

const DefaultPolicySeries = "FEDFUNDS"

var DefaultStart = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)

// DefaultCycleStyle is used for cycles past the end of the configured styles.
var DefaultCycleStyle = domain.CycleStyle{Color: "#8b949e"}

type Settings struct {
	PolicySeries string
	Start        time.Time
	Detection    cycles.Options
	Lag          window.LagOptions
	CycleStyles  []domain.CycleStyle
	Views        []domain.ViewDef
}

func DefaultSettings() Settings {
	return Settings{
		PolicySeries: DefaultPolicySeries,
		Start:        DefaultStart,
		Detection:    cycles.DefaultOptions(),
		Lag:          window.DefaultLagOptions(),
		CycleStyles:  DefaultCycleStyles(),
		Views:        DefaultViews(),
	}
}

func DefaultCycleStyles() []domain.CycleStyle {
	return []domain.CycleStyle{
		{Color: "#ff7b72"},
		{Color: "#d2a8ff"},
		{Color: "#79c0ff"},
	}
}

func DefaultViews() []domain.ViewDef {
	return []domain.ViewDef{
		{
			Name:         "lending",
			Title:        "Lending Impact",
			Question:     "Should we reprice our loan products?",
			WindowMonths: 12,
			Metric:       domain.MetricLag,
			MetricTitle:  "Rate pass-through lag: months until first ≥25 bps decline",
			Series: []domain.SeriesRef{
				{ID: "FEDFUNDS", Label: "Fed Funds Rate", Color: "#58a6ff", Format: "%.2f%%"},
				{ID: "MORTGAGE30US", Label: "Mortgage (MORTGAGE30US)", Color: "#3fb950", Metric: true, Format: "%.2f%%"},
				{ID: "DPRIME", Label: "Prime (DPRIME)", Color: "#d2a8ff", Metric: true, Format: "%.2f%%"},
			},
		},
		{
			Name:         "credit",
			Title:        "Credit Risk",
			Question:     "Are our credit models still valid?",
			WindowMonths: 18,
			Series: []domain.SeriesRef{
				{ID: "DRCCLACBS", Label: "Credit Card (DRCCLACBS)", Color: "#ff7b72", Format: "%.2f%%"},
				{ID: "DRCLACBS", Label: "Consumer Loans (DRCLACBS)", Color: "#ffa657", Format: "%.2f%%"},
				{ID: "DRSFRMACBS", Label: "SF Mortgage (DRSFRMACBS)", Color: "#3fb950", Format: "%.2f%%"},
				{ID: "FEDFUNDS", Label: "Fed Funds Rate", Color: "#58a6ff", Panel: 1, Format: "%.2f%%"},
			},
		},
		{
			Name:         "spending",
			Title:        "Payment Volumes",
			Question:     "Should we expect payment volume to shift?",
			WindowMonths: 12,
			Metric:       domain.MetricGrowth,
			MetricTitle:  "Average spending: 12 months post-cut vs. 12 months pre-cut",
			Series: []domain.SeriesRef{
				{ID: "RSXFS", Label: "RSXFS", Color: "#58a6ff", Metric: true, Format: "$%.0fM"},
				{ID: "PCE", Label: "PCE", Color: "#d2a8ff", Panel: 1, Metric: true, Format: "$%.1fB"},
			},
		},
	}
}
