package domain

import "time"

// Observation is a single monthly data point. Valid is false when the provider
// had no value for the month; Value is meaningless in that case.
type Observation struct {
	Date  time.Time
	Value float64
	Valid bool
}

// TimeSeries is an ordered, monthly, duplicate-free sequence of observations.
type TimeSeries struct {
	ID           string
	Observations []Observation
}

func NewTimeSeries(id string, observations ...Observation) TimeSeries {
	return TimeSeries{ID: id, Observations: observations}
}

func Value(date time.Time, v float64) Observation {
	return Observation{Date: date, Value: v, Valid: true}
}

func Missing(date time.Time) Observation {
	return Observation{Date: date}
}

func (s TimeSeries) Len() int {
	return len(s.Observations)
}

func (s TimeSeries) IsEmpty() bool {
	return len(s.Observations) == 0
}

// AsOf returns the last valid value at or before t.
func (s TimeSeries) AsOf(t time.Time) (float64, bool) {
	for i := len(s.Observations) - 1; i >= 0; i-- {
		o := s.Observations[i]
		if o.Date.After(t) || !o.Valid {
			continue
		}
		return o.Value, true
	}
	return 0, false
}

// ValidCount is the number of observations that carry a value.
func (s TimeSeries) ValidCount() int {
	n := 0
	for _, o := range s.Observations {
		if o.Valid {
			n++
		}
	}
	return n
}

// Span returns the dates of the first and last observations.
func (s TimeSeries) Span() (time.Time, time.Time, bool) {
	if s.IsEmpty() {
		return time.Time{}, time.Time{}, false
	}
	return s.Observations[0].Date, s.Observations[len(s.Observations)-1].Date, true
}
