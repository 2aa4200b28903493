package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/rate-atlas/pkg/models/domain"
	"github.com/de-tools/rate-atlas/pkg/observability"
	"github.com/de-tools/rate-atlas/pkg/services/cycles"
	"github.com/de-tools/rate-atlas/pkg/services/series"
	"github.com/de-tools/rate-atlas/pkg/services/window"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const prefetchConcurrency = 4

// Service computes dashboard views from a series source. It holds no state
// between calls; sharing fetched series is the source's job.
type Service struct {
	source   series.Source
	settings Settings
	metrics  *observability.Metrics
	now      func() time.Time
}

func NewService(source series.Source, settings Settings, metrics *observability.Metrics) (*Service, error) {
	if source == nil {
		return nil, fmt.Errorf("series source is nil")
	}
	if settings.PolicySeries == "" {
		return nil, fmt.Errorf("policy series is required")
	}

	seen := make(map[string]bool, len(settings.Views))
	for _, v := range settings.Views {
		if v.Name == "" {
			return nil, fmt.Errorf("view name cannot be empty")
		}
		if seen[v.Name] {
			return nil, fmt.Errorf("duplicate view: %s", v.Name)
		}
		if v.WindowMonths <= 0 {
			return nil, fmt.Errorf("view %s: window must be positive", v.Name)
		}
		seen[v.Name] = true
	}

	return &Service{
		source:   source,
		settings: settings,
		metrics:  metrics,
		now:      time.Now,
	}, nil
}

func (s *Service) PolicySeries() string {
	return s.settings.PolicySeries
}

func (s *Service) Views() []domain.ViewDef {
	return s.settings.Views
}

// Cycles detects the cycle starts in the policy series.
// It returns domain.ErrNoCyclesDetected when there are none.
func (s *Service) Cycles(ctx context.Context) ([]domain.CycleStart, error) {
	policy, err := s.source.GetSeries(ctx, s.settings.PolicySeries, s.settings.Start)
	if err != nil {
		return nil, fmt.Errorf("load policy series %s: %w", s.settings.PolicySeries, err)
	}

	starts := cycles.Detect(policy, s.settings.Detection)
	if s.metrics != nil {
		s.metrics.CyclesDetected.Set(float64(len(starts)))
	}
	if len(starts) == 0 {
		if s.metrics != nil {
			s.metrics.NoCyclesDetected.Inc()
		}
		zerolog.Ctx(ctx).Error().
			Str("series", s.settings.PolicySeries).
			Int("observations", policy.Len()).
			Msg("no rate-cut cycles detected")
		return nil, domain.ErrNoCyclesDetected
	}
	return starts, nil
}

// Markers annotates the detected cycles for display with the given window.
func (s *Service) Markers(ctx context.Context, windowMonths int) ([]domain.CycleMarker, error) {
	starts, err := s.Cycles(ctx)
	if err != nil {
		return nil, err
	}
	return Annotate(starts, s.settings.CycleStyles, windowMonths), nil
}

func (s *Service) View(ctx context.Context, name string) (*domain.View, error) {
	def, ok := s.viewDef(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownView, name)
	}

	starts, err := s.Cycles(ctx)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, def, starts), nil
}

// Report computes every view against a single cycle detection.
func (s *Service) Report(ctx context.Context) (*domain.Report, error) {
	starts, err := s.Cycles(ctx)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		Title:       "Fed Surprise Dashboard: Rate Cut Analysis",
		PolicyID:    s.settings.PolicySeries,
		Cycles:      Annotate(starts, s.settings.CycleStyles, 0),
		Views:       make([]domain.View, 0, len(s.settings.Views)),
		GeneratedAt: s.now(),
	}
	for _, def := range s.settings.Views {
		report.Views = append(report.Views, *s.buildView(ctx, def, starts))
	}
	return report, nil
}

// Prefetch loads every distinct series once. Per-series failures are logged
// and do not fail the prefetch.
func (s *Service) Prefetch(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(prefetchConcurrency)
	for _, id := range s.seriesIDs() {
		g.Go(func() error {
			if _, err := s.source.GetSeries(gctx, id, s.settings.Start); err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				logger.Warn().Err(err).Str("series", id).Msg("prefetch failed")
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *Service) buildView(ctx context.Context, def domain.ViewDef, starts []domain.CycleStart) *domain.View {
	logger := zerolog.Ctx(ctx).With().Str("view", def.Name).Logger()

	view := &domain.View{
		Def:         def,
		Markers:     Annotate(starts, s.settings.CycleStyles, def.WindowMonths),
		GeneratedAt: s.now(),
	}

	for _, ref := range def.Series {
		ts, err := s.source.GetSeries(ctx, ref.ID, s.settings.Start)
		if err == nil && ts.IsEmpty() {
			err = domain.ErrEmptySeries
		}
		if err != nil {
			logger.Warn().Err(err).Str("series", ref.ID).Msg("series unavailable")
			if s.metrics != nil {
				s.metrics.SeriesUnavailable.WithLabelValues(ref.ID).Inc()
			}
			view.Unavailable = append(view.Unavailable, domain.UnavailableSeries{Ref: ref, Reason: err.Error()})
			continue
		}
		view.Series = append(view.Series, domain.SeriesStatus{Ref: ref, Series: ts})
	}

	switch def.Metric {
	case domain.MetricLag:
		view.Lags = s.lagTable(view)
	case domain.MetricGrowth:
		view.Growth = growthTable(view)
	}

	if s.metrics != nil {
		s.metrics.ViewsComputed.WithLabelValues(def.Name).Inc()
		s.metrics.LastSuccessfulView.SetToCurrentTime()
	}
	return view
}

func (s *Service) lagTable(view *domain.View) []domain.LagResult {
	var rows []domain.LagResult
	for _, m := range view.Markers {
		for _, st := range view.Series {
			if !st.Ref.Metric {
				continue
			}
			rows = append(rows, domain.LagResult{
				Cycle:  m.Index,
				Label:  m.Label,
				Series: st.Ref.Label,
				Lag:    window.PassThroughLag(st.Series, m.Start, s.settings.Lag),
			})
		}
	}
	return rows
}

func growthTable(view *domain.View) []domain.GrowthResult {
	var rows []domain.GrowthResult
	for _, m := range view.Markers {
		for _, st := range view.Series {
			if !st.Ref.Metric {
				continue
			}
			pct, ok := window.PrePostGrowth(st.Series, m.Start, view.Def.WindowMonths)
			rows = append(rows, domain.GrowthResult{
				Cycle:     m.Index,
				Label:     m.Label,
				Series:    st.Ref.Label,
				Percent:   pct,
				Available: ok,
			})
		}
	}
	return rows
}

func (s *Service) viewDef(name string) (domain.ViewDef, bool) {
	for _, v := range s.settings.Views {
		if v.Name == name {
			return v, true
		}
	}
	return domain.ViewDef{}, false
}

func (s *Service) seriesIDs() []string {
	seen := map[string]bool{s.settings.PolicySeries: true}
	ids := []string{s.settings.PolicySeries}
	for _, v := range s.settings.Views {
		for _, ref := range v.Series {
			if seen[ref.ID] {
				continue
			}
			seen[ref.ID] = true
			ids = append(ids, ref.ID)
		}
	}
	return ids
}
