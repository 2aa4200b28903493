package adapters

import (
	"github.com/de-tools/rate-atlas/pkg/models/domain"
	"github.com/de-tools/rate-atlas/pkg/models/store"
)

func MapStoreSnapshotToDomainSeries(snapshot store.SeriesSnapshot) domain.TimeSeries {
	series := domain.TimeSeries{
		ID:           snapshot.SeriesID,
		Observations: make([]domain.Observation, 0, len(snapshot.Points)),
	}
	for _, p := range snapshot.Points {
		if p.Value == nil {
			series.Observations = append(series.Observations, domain.Missing(p.Date))
			continue
		}
		series.Observations = append(series.Observations, domain.Value(p.Date, *p.Value))
	}
	return series
}

func MapDomainSeriesToStorePoints(series domain.TimeSeries) []store.SeriesPoint {
	points := make([]store.SeriesPoint, 0, series.Len())
	for _, o := range series.Observations {
		p := store.SeriesPoint{Date: o.Date}
		if o.Valid {
			v := o.Value
			p.Value = &v
		}
		points = append(points, p)
	}
	return points
}
