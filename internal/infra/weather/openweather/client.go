package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vaesta/outfit-advisor/internal/domain/outfit"
)

const (
	defaultBaseURL = "https://api.openweathermap.org/data/2.5"
	defaultGeoURL  = "https://api.openweathermap.org/geo/1.0/direct"

	// A current-conditions spread this wide marks the forecast as volatile.
	tempSwingThresholdC = 8.0
)

// Client fetches current conditions from OpenWeatherMap. Without an API key
// it serves a fixed mock reading, matching local development usage.
type Client struct {
	apiKey     string
	baseURL    string
	geoURL     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds an API client.
func NewClient(apiKey, baseURL, geoURL string, logger *slog.Logger) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	geo := strings.TrimSpace(geoURL)
	if geo == "" {
		geo = defaultGeoURL
	}
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimRight(base, "/"),
		geoURL:  strings.TrimRight(geo, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.With("component", "weather.openweather"),
	}
}

// Current implements outfit.WeatherClient.
func (c *Client) Current(ctx context.Context, city string) (outfit.WeatherReading, error) {
	if c.apiKey == "" {
		c.logger.Warn("no openweather api key, serving mock reading", "city", city)
		return mockReading(city), nil
	}

	params := url.Values{
		"appid": {c.apiKey},
		"units": {"metric"},
	}
	if loc, ok := c.resolveCity(ctx, city); ok {
		params.Set("lat", fmt.Sprintf("%f", loc.Lat))
		params.Set("lon", fmt.Sprintf("%f", loc.Lon))
	} else {
		params.Set("q", city)
	}

	endpoint := fmt.Sprintf("%s/weather?%s", c.baseURL, params.Encode())
	body, err := c.fetch(ctx, endpoint)
	if err != nil {
		return outfit.WeatherReading{}, err
	}

	var raw currentResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return outfit.WeatherReading{}, fmt.Errorf("decode weather response: %w", err)
	}
	return raw.toReading(city), nil
}

type geoEntry struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

func (c *Client) resolveCity(ctx context.Context, city string) (geoEntry, bool) {
	params := url.Values{
		"q":     {city},
		"limit": {"1"},
		"appid": {c.apiKey},
	}
	body, err := c.fetch(ctx, fmt.Sprintf("%s?%s", c.geoURL, params.Encode()))
	if err != nil {
		c.logger.Warn("geocoding failed, falling back to name lookup", "city", city, "error", err)
		return geoEntry{}, false
	}
	var entries []geoEntry
	if err := json.Unmarshal(body, &entries); err != nil || len(entries) == 0 {
		return geoEntry{}, false
	}
	return entries[0], true
}

func (c *Client) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("weather request error: status=%d body=%s", resp.StatusCode, string(payload))
	}
	return io.ReadAll(resp.Body)
}

type currentResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp    float64 `json:"temp"`
		TempMin float64 `json:"temp_min"`
		TempMax float64 `json:"temp_max"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"` // m/s in metric mode
	} `json:"wind"`
	Rain struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
}

func (r currentResponse) toReading(fallbackCity string) outfit.WeatherReading {
	city := r.Name
	if city == "" {
		city = fallbackCity
	}
	return outfit.WeatherReading{
		City:            city,
		TemperatureC:    r.Main.Temp,
		PrecipitationMM: r.Rain.OneHour,
		WindSpeedKMH:    r.Wind.Speed * 3.6,
		TempSwing:       r.Main.TempMax-r.Main.TempMin >= tempSwingThresholdC,
	}
}

func mockReading(city string) outfit.WeatherReading {
	return outfit.WeatherReading{
		City:            city,
		TemperatureC:    15.0,
		PrecipitationMM: 0,
		WindSpeedKMH:    12.6,
	}
}

var _ outfit.WeatherClient = (*Client)(nil)
