package delivery

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	weatherBaseURL   = "https://wttr.in"
	weatherUserAgent = "DailyBriefing/1.0"
)

// WeatherClient fetches a one-line conditions string from wttr.in for
// the briefing header.
type WeatherClient struct {
	baseURL  string
	location string
	client   *http.Client
}

// NewWeatherClient creates a client for the given location, e.g.
// "New York".
func NewWeatherClient(location string) *WeatherClient {
	return &WeatherClient{
		baseURL:  weatherBaseURL,
		location: location,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// Current returns "<location> <conditions>", or "" when the lookup
// fails. Weather is garnish; failures only log a warning.
func (c *WeatherClient) Current(ctx context.Context) string {
	path := strings.ReplaceAll(c.location, " ", "+")
	url := fmt.Sprintf("%s/%s?format=%%c+%%t", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		slog.Warn("failed to fetch weather", "error", err)
		return ""
	}
	req.Header.Set("User-Agent", weatherUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Warn("failed to fetch weather", "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("failed to fetch weather", "status", resp.StatusCode)
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		slog.Warn("failed to fetch weather", "error", err)
		return ""
	}

	conditions := strings.TrimSpace(string(body))
	if conditions == "" {
		return ""
	}
	return c.location + " " + conditions
}
