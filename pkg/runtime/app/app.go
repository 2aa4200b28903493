// Package app wires configuration into the dashboard service.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	s3export "github.com/de-tools/rate-atlas/pkg/export/s3"
	"github.com/de-tools/rate-atlas/pkg/observability"
	"github.com/de-tools/rate-atlas/pkg/services/config"
	"github.com/de-tools/rate-atlas/pkg/services/dashboard"
	"github.com/de-tools/rate-atlas/pkg/services/series"
	"github.com/de-tools/rate-atlas/pkg/store/duckdb"
	duckdbseries "github.com/de-tools/rate-atlas/pkg/store/duckdb/series"
	"github.com/de-tools/rate-atlas/pkg/store/fred"
	"github.com/rs/zerolog"
)

type App struct {
	Config    *config.Config
	Metrics   *observability.Metrics
	Dashboard *dashboard.Service
	db        *sql.DB
}

// NewLogger builds the process logger at the given level.
func NewLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger(), nil
}

// New builds the dashboard service and its series source. The FRED key comes
// from fred.api_key or, failing that, the credentials file.
func New(ctx context.Context, cfg *config.Config, credentialsPath string) (*App, error) {
	logger := zerolog.Ctx(ctx)

	apiKey, err := cfg.ResolveAPIKey(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve FRED api key: %w", err)
	}

	settings, err := cfg.DashboardSettings()
	if err != nil {
		return nil, fmt.Errorf("invalid dashboard settings: %w", err)
	}

	client, err := fred.NewClient(fred.Options{
		BaseURL:  cfg.Fred.BaseURL,
		APIKey:   apiKey,
		Timeout:  cfg.Fred.Timeout,
		RetryMax: cfg.Fred.Retries,
		Logger:   *logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create FRED client: %w", err)
	}

	a := &App{
		Config:  cfg,
		Metrics: observability.NewMetrics(observability.DefaultNamespace),
	}

	cache, err := a.newCache(cfg.Cache)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("backend", cfg.Cache.Backend).
		Dur("ttl", cfg.Cache.TTL).
		Msg("series cache configured")

	source := series.NewCachedSource(client, cache, cfg.Cache.TTL, series.WithMetrics(a.Metrics))

	a.Dashboard, err = dashboard.NewService(source, settings, a.Metrics)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to create dashboard service: %w", err)
	}
	return a, nil
}

func (a *App) newCache(cfg config.CacheConfig) (series.Cache, error) {
	switch cfg.Backend {
	case config.CacheBackendMemory, "":
		return series.NewMemoryCache(), nil
	case config.CacheBackendDuckDB:
		db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.DbPath})
		if err != nil {
			return nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
		}
		st, err := duckdbseries.NewStore(db)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create series store: %w", err)
		}
		a.db = db
		return series.NewStoreCache(st), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// NewExporter builds an S3 exporter; an empty bucket means export.bucket.
func (a *App) NewExporter(ctx context.Context, bucket string) (*s3export.Exporter, error) {
	settings := s3export.Settings{
		Bucket:  a.Config.Export.Bucket,
		Prefix:  a.Config.Export.Prefix,
		Region:  a.Config.Export.Region,
		Profile: a.Config.Export.Profile,
	}
	if bucket != "" {
		settings.Bucket = bucket
	}
	if settings.Bucket == "" {
		return nil, fmt.Errorf("no export bucket configured")
	}
	return s3export.NewExporter(ctx, settings)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
