package window

import (
	"time"

	"github.com/de-tools/rate-atlas/pkg/models/domain"
)

const (
	DefaultLookaheadMonths  = 24
	DefaultDeclineThreshold = -0.25
)

type LagOptions struct {
	LookaheadMonths  int
	DeclineThreshold float64
}

func DefaultLagOptions() LagOptions {
	return LagOptions{
		LookaheadMonths:  DefaultLookaheadMonths,
		DeclineThreshold: DefaultDeclineThreshold,
	}
}

// PassThroughLag counts the months from cycleStart until series first falls
// by at least DeclineThreshold from its value as of cycleStart.
//
// The base is the last valid observation at or before cycleStart. The scan
// covers the first LookaheadMonths observations dated on or after cycleStart;
// missing observations occupy a position but never qualify.
func PassThroughLag(series domain.TimeSeries, cycleStart time.Time, opts LagOptions) domain.Lag {
	base, ok := series.AsOf(cycleStart)
	if !ok {
		return domain.Lag{Outcome: domain.LagInsufficientData, Lookahead: opts.LookaheadMonths}
	}

	offset := 0
	for _, o := range series.Observations {
		if o.Date.Before(cycleStart) {
			continue
		}
		if offset >= opts.LookaheadMonths {
			break
		}
		if o.Valid && o.Value-base <= opts.DeclineThreshold {
			return domain.Lag{Outcome: domain.LagMeasured, Months: offset, Lookahead: opts.LookaheadMonths}
		}
		offset++
	}

	return domain.Lag{Outcome: domain.LagExceedsWindow, Lookahead: opts.LookaheadMonths}
}
