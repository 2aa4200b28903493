// Package chart draws dashboard views with their cycle overlays.
package chart

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/de-tools/rate-atlas/pkg/models/domain"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

const shadeAlpha = 40

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case PNG, "":
		return PNG, nil
	case SVG:
		return SVG, nil
	default:
		return "", fmt.Errorf("unsupported chart format: %s", s)
	}
}

func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

type Options struct {
	Format Format
	Width  int
	Height int
}

func DefaultOptions() Options {
	return Options{Format: PNG, Width: 1200, Height: 480}
}

// Render draws every available series of view. Series on panel 1 use the
// secondary axis. Each cycle gets a dashed start line and a shaded window.
func Render(w io.Writer, view *domain.View, opts Options) error {
	if view == nil || len(view.Series) == 0 {
		return fmt.Errorf("view has no series to draw")
	}

	// The secondary axis is only used next to a populated main panel.
	useSecondary := false
	for _, st := range view.Series {
		if st.Ref.Panel == 0 && st.Series.ValidCount() >= 2 {
			useSecondary = true
			break
		}
	}

	var series []gochart.Series
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, st := range view.Series {
		xs, ys := points(st.Series)
		if len(xs) < 2 {
			continue
		}
		axis := gochart.YAxisPrimary
		if useSecondary && st.Ref.Panel > 0 {
			axis = gochart.YAxisSecondary
		} else {
			lo, hi = bounds(ys, lo, hi)
		}
		series = append(series, gochart.TimeSeries{
			Name:    st.Ref.Label,
			YAxis:   axis,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: color(st.Ref.Color),
				StrokeWidth: 2,
			},
		})
	}
	if len(series) == 0 {
		return fmt.Errorf("view %s has no series with enough points", view.Def.Name)
	}

	for _, m := range view.Markers {
		series = append(series, cycleOverlay(m, lo, hi)...)
	}

	ch := gochart.Chart{
		Title:      view.Def.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeValueFormatterWithFormat("2006"),
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.LegendLeft(&ch)}

	provider := gochart.PNG
	if opts.Format == SVG {
		provider = gochart.SVG
	}
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("failed to render view %s: %w", view.Def.Name, err)
	}
	return nil
}

func cycleOverlay(m domain.CycleMarker, lo, hi float64) []gochart.Series {
	c := color(m.Style.Color)
	overlay := []gochart.Series{
		gochart.TimeSeries{
			Name:    m.Label,
			XValues: []time.Time{m.Start, m.Start},
			YValues: []float64{lo, hi},
			Style: gochart.Style{
				StrokeColor:     c,
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{5, 5},
			},
		},
	}
	if m.End.After(m.Start) {
		overlay = append(overlay, gochart.TimeSeries{
			Name:    m.Label + " window",
			XValues: []time.Time{m.Start, m.End},
			YValues: []float64{hi, hi},
			Style: gochart.Style{
				StrokeColor: c.WithAlpha(shadeAlpha),
				FillColor:   c.WithAlpha(shadeAlpha),
			},
		})
	}
	return overlay
}

// points drops missing observations.
func points(s domain.TimeSeries) ([]time.Time, []float64) {
	xs := make([]time.Time, 0, s.Len())
	ys := make([]float64, 0, s.Len())
	for _, o := range s.Observations {
		if !o.Valid {
			continue
		}
		xs = append(xs, o.Date)
		ys = append(ys, o.Value)
	}
	return xs, ys
}

func bounds(ys []float64, lo, hi float64) (float64, float64) {
	for _, y := range ys {
		lo = math.Min(lo, y)
		hi = math.Max(hi, y)
	}
	return lo, hi
}

func color(hex string) drawing.Color {
	hex = strings.TrimPrefix(hex, "#")
	if hex == "" {
		return gochart.ColorAlternateGray
	}
	return drawing.ColorFromHex(hex)
}
