package api

import "time"

type Cycle struct {
	Index int       `json:"index"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
	Color string    `json:"color"`
}

type CyclesResponse struct {
	PolicySeries string  `json:"policy_series"`
	Cycles       []Cycle `json:"cycles"`
}

type ViewSummary struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	Question     string `json:"question"`
	WindowMonths int    `json:"window_months"`
	Metric       string `json:"metric,omitempty"`
}

type Point struct {
	Date  time.Time `json:"date"`
	Value *float64  `json:"value"`
}

type Series struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Color  string  `json:"color"`
	Panel  int     `json:"panel"`
	Points []Point `json:"points"`
}

type UnavailableSeries struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Reason string `json:"reason"`
}

// LagRow carries both the tagged outcome and its display text.
type LagRow struct {
	Cycle   string `json:"cycle"`
	Series  string `json:"series"`
	Outcome string `json:"outcome"`
	Months  *int   `json:"months,omitempty"`
	Text    string `json:"text"`
}

type GrowthRow struct {
	Cycle   string   `json:"cycle"`
	Series  string   `json:"series"`
	Percent *float64 `json:"percent,omitempty"`
	Text    string   `json:"text"`
}

type View struct {
	ViewSummary
	MetricTitle string              `json:"metric_title,omitempty"`
	Cycles      []Cycle             `json:"cycles"`
	Series      []Series            `json:"series"`
	Unavailable []UnavailableSeries `json:"unavailable,omitempty"`
	Lags        []LagRow            `json:"lags,omitempty"`
	Growth      []GrowthRow         `json:"growth,omitempty"`
	GeneratedAt time.Time           `json:"generated_at"`
}

type Report struct {
	Title        string    `json:"title"`
	PolicySeries string    `json:"policy_series"`
	Cycles       []Cycle   `json:"cycles"`
	Views        []View    `json:"views"`
	GeneratedAt  time.Time `json:"generated_at"`
}
