package adapters

import (
	"github.com/de-tools/rate-atlas/pkg/models/api"
	"github.com/de-tools/rate-atlas/pkg/models/domain"
)

func MapCycleMarkerDomainToApi(m domain.CycleMarker) api.Cycle {
	return api.Cycle{
		Index: m.Index,
		Start: m.Start,
		End:   m.End,
		Label: m.Label,
		Color: m.Style.Color,
	}
}

func MapCycleMarkersDomainToApi(markers []domain.CycleMarker) []api.Cycle {
	res := make([]api.Cycle, 0, len(markers))
	for _, m := range markers {
		res = append(res, MapCycleMarkerDomainToApi(m))
	}
	return res
}

func MapViewDefDomainToApi(def domain.ViewDef) api.ViewSummary {
	return api.ViewSummary{
		Name:         def.Name,
		Title:        def.Title,
		Question:     def.Question,
		WindowMonths: def.WindowMonths,
		Metric:       string(def.Metric),
	}
}

func MapSeriesDomainToApi(s domain.SeriesStatus) api.Series {
	res := api.Series{
		ID:     s.Ref.ID,
		Label:  s.Ref.Label,
		Color:  s.Ref.Color,
		Panel:  s.Ref.Panel,
		Points: make([]api.Point, 0, s.Series.Len()),
	}
	for _, o := range s.Series.Observations {
		p := api.Point{Date: o.Date}
		if o.Valid {
			v := o.Value
			p.Value = &v
		}
		res.Points = append(res.Points, p)
	}
	return res
}

func MapLagResultDomainToApi(r domain.LagResult) api.LagRow {
	row := api.LagRow{
		Cycle:   r.Label,
		Series:  r.Series,
		Outcome: string(r.Lag.Outcome),
		Text:    r.Lag.String(),
	}
	if r.Lag.Outcome == domain.LagMeasured {
		months := r.Lag.Months
		row.Months = &months
	}
	return row
}

func MapGrowthResultDomainToApi(r domain.GrowthResult) api.GrowthRow {
	row := api.GrowthRow{
		Cycle:  r.Label,
		Series: r.Series,
		Text:   r.String(),
	}
	if r.Available {
		pct := r.Percent
		row.Percent = &pct
	}
	return row
}

func MapViewDomainToApi(v domain.View) api.View {
	res := api.View{
		ViewSummary: MapViewDefDomainToApi(v.Def),
		MetricTitle: v.Def.MetricTitle,
		Cycles:      MapCycleMarkersDomainToApi(v.Markers),
		Series:      make([]api.Series, 0, len(v.Series)),
		GeneratedAt: v.GeneratedAt,
	}
	for _, s := range v.Series {
		res.Series = append(res.Series, MapSeriesDomainToApi(s))
	}
	for _, u := range v.Unavailable {
		res.Unavailable = append(res.Unavailable, api.UnavailableSeries{
			ID:     u.Ref.ID,
			Label:  u.Ref.Label,
			Reason: u.Reason,
		})
	}
	for _, r := range v.Lags {
		res.Lags = append(res.Lags, MapLagResultDomainToApi(r))
	}
	for _, r := range v.Growth {
		res.Growth = append(res.Growth, MapGrowthResultDomainToApi(r))
	}
	return res
}

func MapReportDomainToApi(r domain.Report) api.Report {
	res := api.Report{
		Title:        r.Title,
		PolicySeries: r.PolicyID,
		Cycles:       MapCycleMarkersDomainToApi(r.Cycles),
		Views:        make([]api.View, 0, len(r.Views)),
		GeneratedAt:  r.GeneratedAt,
	}
	for _, v := range r.Views {
		res.Views = append(res.Views, MapViewDomainToApi(v))
	}
	return res
}
