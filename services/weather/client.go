package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

// Conditions is the current weather at a location.
type Conditions struct {
	Code        int     // WMO weather code
	Temperature float64 // Celsius
}

// Client fetches current conditions from an Open-Meteo style endpoint.
type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpc: httpc}
}

type currentWeatherResponse struct {
	CurrentWeather struct {
		WeatherCode int     `json:"weathercode"`
		Temperature float64 `json:"temperature"`
	} `json:"current_weather"`
}

// Current performs a single one-shot conditions lookup. Transient HTTP
// failures are retried with backoff; callers treat any returned error as the
// terminal "weather unavailable" branch.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*Conditions, error) {
	endpoint := c.baseURL + "/forecast"
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	q.Set("current_weather", "true")

	var payload currentWeatherResponse
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := c.httpc.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return fmt.Errorf("weather request failed: %s", resp.Status)
			}
			if resp.StatusCode >= 400 {
				return retry.Unrecoverable(fmt.Errorf("weather request failed: %s", resp.Status))
			}
			return json.NewDecoder(resp.Body).Decode(&payload)
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(300*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}

	return &Conditions{
		Code:        payload.CurrentWeather.WeatherCode,
		Temperature: payload.CurrentWeather.Temperature,
	}, nil
}
