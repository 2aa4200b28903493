package cycles

import (
	"time"

	"github.com/de-tools/rate-atlas/pkg/models/domain"
)

const (
	DefaultDropThreshold  = -0.05
	DefaultMinSpacingDays = 180
	DefaultMaxCycles      = 3
)

type Options struct {
	// DropThreshold is the month-over-month change a cut month must fall below.
	DropThreshold float64
	// MinSpacingDays is the gap between cut months that opens a new cycle.
	MinSpacingDays int
	MaxCycles      int
}

func DefaultOptions() Options {
	return Options{
		DropThreshold:  DefaultDropThreshold,
		MinSpacingDays: DefaultMinSpacingDays,
		MaxCycles:      DefaultMaxCycles,
	}
}

type change struct {
	date  time.Time
	delta float64
}

// Detect returns the most recent easing cycle starts in rate, oldest first.
// A cycle starts at the first cut month after a quiet gap longer than
// MinSpacingDays; later cuts in the same burst are absorbed into it.
func Detect(rate domain.TimeSeries, opts Options) []domain.CycleStart {
	var (
		starts []domain.CycleStart
		prev   time.Time
	)
	for i, c := range cutMonths(rate, opts.DropThreshold) {
		if i == 0 || daysBetween(prev, c) > opts.MinSpacingDays {
			starts = append(starts, domain.CycleStart{Time: c})
		}
		prev = c
	}

	if opts.MaxCycles > 0 && len(starts) > opts.MaxCycles {
		starts = starts[len(starts)-opts.MaxCycles:]
	}
	return starts
}

func cutMonths(rate domain.TimeSeries, threshold float64) []time.Time {
	var cuts []time.Time
	for _, d := range diff(rate) {
		if d.delta < threshold {
			cuts = append(cuts, d.date)
		}
	}
	return cuts
}

// diff computes first differences. The first observation and any pair
// touching a missing value produce no change.
func diff(s domain.TimeSeries) []change {
	if s.Len() < 2 {
		return nil
	}
	changes := make([]change, 0, s.Len()-1)
	for i := 1; i < s.Len(); i++ {
		prev, cur := s.Observations[i-1], s.Observations[i]
		if !prev.Valid || !cur.Valid {
			continue
		}
		changes = append(changes, change{date: cur.Date, delta: cur.Value - prev.Value})
	}
	return changes
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
