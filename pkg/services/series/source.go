package series

import (
	"context"
	"time"

	"github.com/de-tools/rate-atlas/pkg/models/domain"
)

// Source supplies monthly, forward-filled series.
type Source interface {
	GetSeries(ctx context.Context, id string, start time.Time) (domain.TimeSeries, error)
}

type SourceFunc func(ctx context.Context, id string, start time.Time) (domain.TimeSeries, error)

func (f SourceFunc) GetSeries(ctx context.Context, id string, start time.Time) (domain.TimeSeries, error) {
	return f(ctx, id, start)
}
