package fred

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/de-tools/rate-atlas/pkg/models/domain"
	"github.com/de-tools/rate-atlas/pkg/models/store"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL = "https://api.stlouisfed.org/fred"
	dateLayout     = "2006-01-02"
	missingValue   = "."
)

type Options struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	RetryMax int
	Logger   zerolog.Logger
}

// Client reads series observations from the FRED API.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
	apiKey  string
}

type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

type errorResponse struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

func NewClient(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("FRED api key is required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	httpClient := retryablehttp.NewClient()
	httpClient.Logger = leveledLogger{logger: opts.Logger}
	if opts.RetryMax > 0 {
		httpClient.RetryMax = opts.RetryMax
	}
	if opts.Timeout > 0 {
		httpClient.HTTPClient.Timeout = opts.Timeout
	}

	return &Client{
		http:    httpClient,
		baseURL: opts.BaseURL,
		apiKey:  opts.APIKey,
	}, nil
}

// GetSeries fetches a series and resamples it to gap-free month-start observations.
func (c *Client) GetSeries(ctx context.Context, id string, start time.Time) (domain.TimeSeries, error) {
	points, err := c.Observations(ctx, id, start)
	if err != nil {
		return domain.TimeSeries{}, err
	}
	return ResampleMonthly(id, points), nil
}

// Observations returns the raw observations of a series from start onwards.
func (c *Client) Observations(ctx context.Context, id string, start time.Time) ([]store.SeriesPoint, error) {
	query := url.Values{}
	query.Set("series_id", id)
	query.Set("api_key", c.apiKey)
	query.Set("file_type", "json")
	if !start.IsZero() {
		query.Set("observation_start", start.Format(dateLayout))
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/series/observations?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", id, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", id, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", id, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.ErrorMessage != "" {
			return nil, fmt.Errorf("fetch %s: status %d: %s", id, resp.StatusCode, apiErr.ErrorMessage)
		}
		return nil, fmt.Errorf("fetch %s: unexpected status %d", id, resp.StatusCode)
	}

	var payload observationsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode %s observations: %w", id, err)
	}

	points := make([]store.SeriesPoint, 0, len(payload.Observations))
	for _, o := range payload.Observations {
		date, err := time.Parse(dateLayout, o.Date)
		if err != nil {
			return nil, fmt.Errorf("parse %s date %q: %w", id, o.Date, err)
		}
		point := store.SeriesPoint{Date: date}
		if o.Value != missingValue {
			v, err := strconv.ParseFloat(o.Value, 64)
			if err != nil {
				return nil, fmt.Errorf("parse %s value %q: %w", id, o.Value, err)
			}
			point.Value = &v
		}
		points = append(points, point)
	}
	return points, nil
}

// leveledLogger adapts zerolog to retryablehttp. Info is demoted to debug.
type leveledLogger struct {
	logger zerolog.Logger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error().Fields(keysAndValues).Msg(msg)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn().Fields(keysAndValues).Msg(msg)
}
