// Package weather looks up the current temperature and wind speed for the
// test site from free public services.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/fire-protocols/internal/config"
)

// DefaultTimeout bounds every single lookup.
const DefaultTimeout = 5 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "fire-protocols/1.0"

const (
	SourceWttr      = "wttr.in"
	SourceOpenMeteo = "open-meteo"
)

const (
	defaultWttrURL  = "https://wttr.in"
	defaultMeteoURL = "https://api.open-meteo.com/v1/forecast"
)

// Conditions is the current weather at the test site.
type Conditions struct {
	Temperature float64 `json:"temperature"`
	// WindSpeed is in m/s.
	WindSpeed   float64 `json:"wind_speed"`
	Description string  `json:"description,omitempty"`
	Source      string  `json:"source"`
}

// Error represents a failed lookup.
type Error struct {
	Source  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("weather error for %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("weather error for %s: %s", e.Source, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Client queries wttr.in first and Open-Meteo second.
type Client struct {
	http      *http.Client
	city      string
	latitude  float64
	longitude float64
	wttrURL   string
	meteoURL  string
	logger    *zap.Logger
}

// NewClient returns a client for the configured site.
func NewClient(cfg config.Weather, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		city:      cfg.City,
		latitude:  cfg.Latitude,
		longitude: cfg.Longitude,
		wttrURL:   defaultWttrURL,
		meteoURL:  defaultMeteoURL,
		logger:    logger,
	}
}

// Current returns the first conditions any source reports.
func (c *Client) Current(ctx context.Context) (Conditions, error) {
	cond, wttrErr := c.fromWttr(ctx)
	if wttrErr == nil {
		return cond, nil
	}
	c.logger.Warn("weather lookup failed", zap.String("source", SourceWttr), zap.Error(wttrErr))

	cond, meteoErr := c.fromOpenMeteo(ctx)
	if meteoErr == nil {
		return cond, nil
	}
	c.logger.Warn("weather lookup failed", zap.String("source", SourceOpenMeteo), zap.Error(meteoErr))

	return Conditions{}, errors.Join(wttrErr, meteoErr)
}

type wttrResponse struct {
	CurrentCondition []struct {
		TempC         string `json:"temp_C"`
		WindspeedKmph string `json:"windspeedKmph"`
		WeatherDesc   []struct {
			Value string `json:"value"`
		} `json:"weatherDesc"`
		LangRu []struct {
			Value string `json:"value"`
		} `json:"lang_ru"`
	} `json:"current_condition"`
}

func (c *Client) fromWttr(ctx context.Context) (Conditions, error) {
	if c.city == "" {
		return Conditions{}, &Error{Source: SourceWttr, Message: "no city configured"}
	}
	u := strings.TrimRight(c.wttrURL, "/") + "/" + url.PathEscape(c.city) + "?format=j1&lang=ru"

	var resp wttrResponse
	if err := c.getJSON(ctx, SourceWttr, u, &resp); err != nil {
		return Conditions{}, err
	}
	if len(resp.CurrentCondition) == 0 {
		return Conditions{}, &Error{Source: SourceWttr, Message: "response has no current conditions"}
	}
	cur := resp.CurrentCondition[0]

	temp, err := strconv.ParseFloat(cur.TempC, 64)
	if err != nil {
		return Conditions{}, &Error{Source: SourceWttr, Message: "bad temperature", Cause: err}
	}
	kmh, err := strconv.ParseFloat(cur.WindspeedKmph, 64)
	if err != nil {
		return Conditions{}, &Error{Source: SourceWttr, Message: "bad wind speed", Cause: err}
	}

	cond := Conditions{
		Temperature: round1(temp),
		WindSpeed:   round1(kmh / 3.6),
		Source:      SourceWttr,
	}
	switch {
	case len(cur.LangRu) > 0:
		cond.Description = cur.LangRu[0].Value
	case len(cur.WeatherDesc) > 0:
		cond.Description = cur.WeatherDesc[0].Value
	}
	c.logger.Info("weather received", zap.String("source", SourceWttr),
		zap.Float64("temperature", cond.Temperature), zap.Float64("wind_speed", cond.WindSpeed))
	return cond, nil
}

type meteoResponse struct {
	Current *struct {
		Temperature float64 `json:"temperature_2m"`
		WindSpeed   float64 `json:"wind_speed_10m"`
	} `json:"current"`
}

func (c *Client) fromOpenMeteo(ctx context.Context) (Conditions, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(c.latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(c.longitude, 'f', -1, 64))
	q.Set("current", "temperature_2m,wind_speed_10m")
	q.Set("wind_speed_unit", "ms")
	q.Set("timezone", "Europe/Moscow")

	var resp meteoResponse
	if err := c.getJSON(ctx, SourceOpenMeteo, c.meteoURL+"?"+q.Encode(), &resp); err != nil {
		return Conditions{}, err
	}
	if resp.Current == nil {
		return Conditions{}, &Error{Source: SourceOpenMeteo, Message: "response has no current conditions"}
	}

	cond := Conditions{
		Temperature: round1(resp.Current.Temperature),
		WindSpeed:   round1(resp.Current.WindSpeed),
		Source:      SourceOpenMeteo,
	}
	c.logger.Info("weather received", zap.String("source", SourceOpenMeteo),
		zap.Float64("temperature", cond.Temperature), zap.Float64("wind_speed", cond.WindSpeed))
	return cond, nil
}

func (c *Client) getJSON(ctx context.Context, source, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &Error{Source: source, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Source: source, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &Error{Source: source, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &Error{Source: source, Message: "failed to read response body", Cause: err}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &Error{Source: source, Message: "failed to decode response", Cause: err}
	}
	return nil
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
