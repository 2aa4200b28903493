package commands

import (
	"context"
	"time"

	"github.com/de-tools/rate-atlas/pkg/models/domain"
)

const commandTimeout = 2 * time.Minute

type Dashboard interface {
	PolicySeries() string
	Markers(ctx context.Context, windowMonths int) ([]domain.CycleMarker, error)
	View(ctx context.Context, name string) (*domain.View, error)
	Report(ctx context.Context) (*domain.Report, error)
}

type Exporter interface {
	Export(ctx context.Context, report *domain.Report) (string, error)
}

// Runtime is what a command needs once the configuration is loaded.
type Runtime struct {
	Dashboard Dashboard
	// NewExporter builds an exporter for bucket; an empty bucket means the configured one.
	NewExporter func(ctx context.Context, bucket string) (Exporter, error)
	Close       func() error
}

func (rt *Runtime) release() {
	if rt.Close != nil {
		_ = rt.Close()
	}
}

type LoadFunc func(ctx context.Context) (*Runtime, error)
