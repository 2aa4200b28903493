package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/de-tools/rate-atlas/pkg/adapters"
	"github.com/de-tools/rate-atlas/pkg/models/api"
	"github.com/de-tools/rate-atlas/pkg/models/domain"
	"github.com/de-tools/rate-atlas/pkg/render/chart"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const defaultWindowMonths = 12

type Dashboard interface {
	PolicySeries() string
	Views() []domain.ViewDef
	Markers(ctx context.Context, windowMonths int) ([]domain.CycleMarker, error)
	View(ctx context.Context, name string) (*domain.View, error)
}

type Handler struct {
	dashboard Dashboard
}

func NewHandler(dashboard Dashboard) *Handler {
	return &Handler{dashboard: dashboard}
}

func (h *Handler) ListCycles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	window := defaultWindowMonths
	if raw := r.URL.Query().Get("window"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "invalid 'window'. Expected a non-negative number of months", http.StatusBadRequest)
			return
		}
		window = n
	}

	markers, err := h.dashboard.Markers(ctx, window)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, api.CyclesResponse{
		PolicySeries: h.dashboard.PolicySeries(),
		Cycles:       adapters.MapCycleMarkersDomainToApi(markers),
	}, logger)
}

func (h *Handler) ListViews(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	defs := h.dashboard.Views()
	response := make([]api.ViewSummary, 0, len(defs))
	for _, def := range defs {
		response = append(response, adapters.MapViewDefDomainToApi(def))
	}
	writeJSON(w, response, logger)
}

func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "view")
	logger := zerolog.Ctx(ctx).With().Str("view", name).Logger()

	view, err := h.dashboard.View(ctx, name)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, adapters.MapViewDomainToApi(*view), &logger)
}

func (h *Handler) GetViewChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "view")
	logger := zerolog.Ctx(ctx)

	format, err := chart.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := h.dashboard.View(ctx, name)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	opts := chart.DefaultOptions()
	opts.Format = format

	var buf bytes.Buffer
	if err := chart.Render(&buf, view, opts); err != nil {
		logger.Error().Err(err).Str("view", name).Msg("failed to render chart")
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Error().Err(err).Str("view", name).Msg("failed to write chart")
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	logger := zerolog.Ctx(ctx)

	switch {
	case errors.Is(err, domain.ErrNoCyclesDetected):
		http.Error(w, "analysis unavailable: "+err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, domain.ErrUnknownView):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		logger.Error().Err(err).Msg("failed to load dashboard data")
		http.Error(w, "failed to load data from provider", http.StatusBadGateway)
	}
}

func writeJSON(w http.ResponseWriter, v any, logger *zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode response")
	}
}
