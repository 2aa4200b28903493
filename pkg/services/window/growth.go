package window

import (
	"time"

	"github.com/de-tools/rate-atlas/pkg/models/domain"
)

const DefaultGrowthWindowMonths = 12

// PrePostGrowth compares the mean of series over the windowMonths after
// cycleStart with the mean over the windowMonths up to and including it.
// It reports false when either window holds no valid value or the pre-window
// mean is zero.
func PrePostGrowth(series domain.TimeSeries, cycleStart time.Time, windowMonths int) (float64, bool) {
	from := cycleStart.AddDate(0, -windowMonths, 0)
	to := cycleStart.AddDate(0, windowMonths, 0)

	pre, ok := mean(series, from, cycleStart)
	if !ok || pre == 0 {
		return 0, false
	}
	post, ok := mean(series, cycleStart, to)
	if !ok {
		return 0, false
	}

	return (post - pre) / pre * 100, true
}

// mean averages the valid observations dated in (from, to].
func mean(series domain.TimeSeries, from, to time.Time) (float64, bool) {
	sum, n := 0.0, 0
	for _, o := range series.Observations {
		if !o.Valid || !o.Date.After(from) || o.Date.After(to) {
			continue
		}
		sum += o.Value
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
