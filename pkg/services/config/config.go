package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/rate-atlas/pkg/models/domain"
	"github.com/de-tools/rate-atlas/pkg/services/cycles"
	"github.com/de-tools/rate-atlas/pkg/services/dashboard"
	"github.com/de-tools/rate-atlas/pkg/services/window"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "RATE_ATLAS"
	dateLayout = "2006-01-02"

	CacheBackendMemory = "memory"
	CacheBackendDuckDB = "duckdb"
)

type Config struct {
	Fred      FredConfig      `mapstructure:"fred"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Detection DetectionConfig `mapstructure:"detection"`
	Lag       LagConfig       `mapstructure:"lag"`
	Growth    GrowthConfig    `mapstructure:"growth"`
	Cycles    []CycleConfig   `mapstructure:"cycles"`
	Views     []ViewConfig    `mapstructure:"views"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Export    ExportConfig    `mapstructure:"export"`
}

type FredConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	Profile   string        `mapstructure:"profile"`
	BaseURL   string        `mapstructure:"base_url"`
	StartDate string        `mapstructure:"start_date"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Retries   int           `mapstructure:"retries"`
}

type CacheConfig struct {
	TTL     time.Duration `mapstructure:"ttl"`
	Backend string        `mapstructure:"backend"`
	DbPath  string        `mapstructure:"db_path"`
}

type DetectionConfig struct {
	PolicySeries   string  `mapstructure:"policy_series"`
	DropThreshold  float64 `mapstructure:"drop_threshold"`
	MinSpacingDays int     `mapstructure:"min_spacing_days"`
	MaxCycles      int     `mapstructure:"max_cycles"`
}

type LagConfig struct {
	LookaheadMonths  int     `mapstructure:"lookahead_months"`
	DeclineThreshold float64 `mapstructure:"decline_threshold"`
}

type GrowthConfig struct {
	WindowMonths int `mapstructure:"window_months"`
}

// CycleConfig holds the display attributes of the cycle at the same position.
type CycleConfig struct {
	Color string `mapstructure:"color"`
}

type SeriesConfig struct {
	ID     string `mapstructure:"id"`
	Label  string `mapstructure:"label"`
	Color  string `mapstructure:"color"`
	Panel  int    `mapstructure:"panel"`
	Metric bool   `mapstructure:"metric"`
	Format string `mapstructure:"format"`
}

type ViewConfig struct {
	Name         string         `mapstructure:"name"`
	Title        string         `mapstructure:"title"`
	Question     string         `mapstructure:"question"`
	WindowMonths int            `mapstructure:"window_months"`
	Metric       string         `mapstructure:"metric"`
	MetricTitle  string         `mapstructure:"metric_title"`
	Series       []SeriesConfig `mapstructure:"series"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type ExportConfig struct {
	Bucket  string `mapstructure:"bucket"`
	Prefix  string `mapstructure:"prefix"`
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("fred.api_key", "")
	v.SetDefault("fred.profile", "DEFAULT")
	v.SetDefault("fred.base_url", "https://api.stlouisfed.org/fred")
	v.SetDefault("fred.start_date", dashboard.DefaultStart.Format(dateLayout))
	v.SetDefault("fred.timeout", 30*time.Second)
	v.SetDefault("fred.retries", 3)

	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("cache.backend", CacheBackendMemory)
	v.SetDefault("cache.db_path", "rate-atlas.db")

	v.SetDefault("detection.policy_series", dashboard.DefaultPolicySeries)
	v.SetDefault("detection.drop_threshold", cycles.DefaultDropThreshold)
	v.SetDefault("detection.min_spacing_days", cycles.DefaultMinSpacingDays)
	v.SetDefault("detection.max_cycles", cycles.DefaultMaxCycles)

	v.SetDefault("lag.lookahead_months", window.DefaultLookaheadMonths)
	v.SetDefault("lag.decline_threshold", window.DefaultDeclineThreshold)
	v.SetDefault("growth.window_months", window.DefaultGrowthWindowMonths)

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("log.level", "info")

	v.SetDefault("export.bucket", "")
	v.SetDefault("export.prefix", "reports")
	v.SetDefault("export.region", "us-east-1")
	v.SetDefault("export.profile", "")
}

// Load reads the config file at path, if any, on top of the defaults.
// Every key can be overridden by RATE_ATLAS_<SECTION>_<KEY>.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// DashboardSettings converts the config into dashboard settings. Empty
// cycle and view lists fall back to the built-in ones.
func (c *Config) DashboardSettings() (dashboard.Settings, error) {
	settings := dashboard.DefaultSettings()

	start, err := time.Parse(dateLayout, c.Fred.StartDate)
	if err != nil {
		return settings, fmt.Errorf("invalid fred.start_date %q: %w", c.Fred.StartDate, err)
	}
	settings.Start = start

	if c.Detection.PolicySeries != "" {
		settings.PolicySeries = c.Detection.PolicySeries
	}
	if c.Detection.MaxCycles <= 0 {
		return settings, fmt.Errorf("detection.max_cycles must be positive")
	}
	settings.Detection = cycles.Options{
		DropThreshold:  c.Detection.DropThreshold,
		MinSpacingDays: c.Detection.MinSpacingDays,
		MaxCycles:      c.Detection.MaxCycles,
	}
	settings.Lag = window.LagOptions{
		LookaheadMonths:  c.Lag.LookaheadMonths,
		DeclineThreshold: c.Lag.DeclineThreshold,
	}
	if settings.Lag.LookaheadMonths <= 0 {
		return settings, fmt.Errorf("lag.lookahead_months must be positive")
	}

	if len(c.Cycles) > 0 {
		settings.CycleStyles = make([]domain.CycleStyle, 0, len(c.Cycles))
		for _, cc := range c.Cycles {
			settings.CycleStyles = append(settings.CycleStyles, domain.CycleStyle{Color: cc.Color})
		}
	}

	if len(c.Views) > 0 {
		settings.Views = make([]domain.ViewDef, 0, len(c.Views))
		for _, vc := range c.Views {
			def, err := vc.viewDef(c.Growth.WindowMonths)
			if err != nil {
				return settings, err
			}
			settings.Views = append(settings.Views, def)
		}
	} else if c.Growth.WindowMonths > 0 {
		for i := range settings.Views {
			if settings.Views[i].Metric == domain.MetricGrowth {
				settings.Views[i].WindowMonths = c.Growth.WindowMonths
			}
		}
	}

	return settings, nil
}

func (vc ViewConfig) viewDef(defaultWindow int) (domain.ViewDef, error) {
	metric := domain.MetricKind(vc.Metric)
	switch metric {
	case domain.MetricNone, domain.MetricLag, domain.MetricGrowth:
	default:
		return domain.ViewDef{}, fmt.Errorf("view %s: unknown metric %q", vc.Name, vc.Metric)
	}

	def := domain.ViewDef{
		Name:         vc.Name,
		Title:        vc.Title,
		Question:     vc.Question,
		WindowMonths: vc.WindowMonths,
		Metric:       metric,
		MetricTitle:  vc.MetricTitle,
		Series:       make([]domain.SeriesRef, 0, len(vc.Series)),
	}
	if def.WindowMonths == 0 {
		def.WindowMonths = defaultWindow
	}
	for _, sc := range vc.Series {
		if sc.ID == "" {
			return domain.ViewDef{}, fmt.Errorf("view %s: series id is required", vc.Name)
		}
		label := sc.Label
		if label == "" {
			label = sc.ID
		}
		def.Series = append(def.Series, domain.SeriesRef{
			ID:     sc.ID,
			Label:  label,
			Color:  sc.Color,
			Panel:  sc.Panel,
			Metric: sc.Metric,
			Format: sc.Format,
		})
	}
	return def, nil
}
