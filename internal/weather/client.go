package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.openweathermap.org/data/2.5"
	cacheDuration  = 10 * time.Minute
)

// Weather is the resolved weather for a location.
type Weather struct {
	Temp        float64 `json:"temp"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
}

// Client fetches current weather from OpenWeather with a short in-memory
// cache. A zero API key disables lookups entirely: Current returns nil.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	data    *Weather
	fetched time.Time
}

// Config for the weather client.
type Config struct {
	APIKey  string
	Timeout time.Duration
	BaseURL string // Overridable for tests
}

type apiResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

// NewClient creates a new weather client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		cache:      make(map[string]cacheEntry),
	}
}

// Current returns the weather for a location, or nil when no API key is
// configured, the location is empty, or the upstream call fails. The
// recommendation flow treats weather as best-effort context and never
// fails on it.
func (c *Client) Current(ctx context.Context, location string) *Weather {
	if c.apiKey == "" || location == "" {
		return nil
	}

	cacheKey := strings.ToLower(location)
	c.mu.Lock()
	if entry, ok := c.cache[cacheKey]; ok && time.Since(entry.fetched) < cacheDuration {
		c.mu.Unlock()
		return entry.data
	}
	c.mu.Unlock()

	reqURL := fmt.Sprintf("%s/weather?q=%s&appid=%s&units=metric",
		c.baseURL, url.QueryEscape(location), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Weather lookup failed", zap.String("location", location), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Weather API returned error status",
			zap.String("location", location),
			zap.Int("status", resp.StatusCode))
		return nil
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil
	}

	if len(apiResp.Weather) == 0 {
		return nil
	}

	data := &Weather{
		Temp:        apiResp.Main.Temp,
		Condition:   apiResp.Weather[0].Main,
		Description: apiResp.Weather[0].Description,
		Location:    apiResp.Name,
	}

	c.mu.Lock()
	c.cache[cacheKey] = cacheEntry{data: data, fetched: time.Now()}
	c.mu.Unlock()

	return data
}

// Classify reduces raw weather into the coarse descriptor the prompt
// builder and decision context use.
func Classify(w *Weather) string {
	if w == nil {
		return "neutral"
	}

	condition := strings.ToLower(w.Condition)

	switch {
	case w.Temp > 30:
		return "hot"
	case w.Temp < 10:
		return "cold"
	case strings.Contains(condition, "rain"):
		return "rainy"
	case strings.Contains(condition, "cloud"):
		return "cloudy"
	case strings.Contains(condition, "snow"):
		return "cold"
	case strings.Contains(condition, "clear"):
		return "sunny"
	}

	return "neutral"
}
