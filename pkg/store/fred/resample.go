package fred

import (
	"time"

	"github.com/de-tools/rate-atlas/pkg/models/domain"
	"github.com/de-tools/rate-atlas/pkg/models/store"
)

// ResampleMonthly averages raw observations into month-start buckets (UTC),
// forward-fills months without a value and drops the months before the first
// value. The result has no missing observations.
func ResampleMonthly(id string, points []store.SeriesPoint) domain.TimeSeries {
	type bucket struct {
		sum float64
		n   int
	}

	buckets := make(map[time.Time]*bucket)
	var first, last time.Time
	for _, p := range points {
		m := monthStart(p.Date)
		if last.IsZero() || m.After(last) {
			last = m
		}
		if p.Value == nil {
			continue
		}
		b, ok := buckets[m]
		if !ok {
			b = &bucket{}
			buckets[m] = b
		}
		b.sum += *p.Value
		b.n++
		if first.IsZero() || m.Before(first) {
			first = m
		}
	}

	series := domain.TimeSeries{ID: id}
	if first.IsZero() {
		return series
	}

	var carry float64
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		if b, ok := buckets[m]; ok {
			carry = b.sum / float64(b.n)
		}
		series.Observations = append(series.Observations, domain.Value(m, carry))
	}
	return series
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
