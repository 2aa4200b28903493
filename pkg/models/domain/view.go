package domain

import "time"

type MetricKind string

const (
	MetricNone   MetricKind = ""
	MetricLag    MetricKind = "lag"
	MetricGrowth MetricKind = "growth"
)

// SeriesRef describes one series drawn on a view.
type SeriesRef struct {
	ID     string
	Label  string
	Color  string
	Panel  int  // 0 = main panel, 1 = context panel
	Metric bool // included in the view's metric table
	Format string
}

type ViewDef struct {
	Name         string
	Title        string
	Question     string
	WindowMonths int
	Metric       MetricKind
	MetricTitle  string
	Series       []SeriesRef
}

type SeriesStatus struct {
	Ref    SeriesRef
	Series TimeSeries
}

type UnavailableSeries struct {
	Ref    SeriesRef
	Reason string
}

// View is a fully computed dashboard view.
type View struct {
	Def         ViewDef
	Markers     []CycleMarker
	Series      []SeriesStatus
	Unavailable []UnavailableSeries
	Lags        []LagResult
	Growth      []GrowthResult
	GeneratedAt time.Time
}

// Report bundles all views of a dashboard refresh.
type Report struct {
	Title       string
	PolicyID    string
	Cycles      []CycleMarker
	Views       []View
	GeneratedAt time.Time
}
