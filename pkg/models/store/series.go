package store

import "time"

// SeriesPoint is a raw provider observation. A nil Value is a missing observation.
type SeriesPoint struct {
	Date  time.Time
	Value *float64
}

type SeriesSnapshot struct {
	SeriesID  string
	Start     time.Time // observation_start the snapshot was fetched with
	FetchedAt time.Time
	Points    []SeriesPoint
}
