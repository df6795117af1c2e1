package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

var (
	// ErrAuth indicates the weather provider rejected the API key.
	ErrAuth = errors.New("weather provider rejected credentials")

	// ErrBadPayload indicates the provider response was missing the
	// current or daily sections.
	ErrBadPayload = errors.New("malformed weather payload")
)

// Snapshot is the per-run weather record: current conditions, today's
// forecast, and any active alerts. Immutable after Fetch returns.
type Snapshot struct {
	Current  Current
	Forecast Forecast
	Alerts   []Alert
}

// Current describes conditions at fetch time.
type Current struct {
	Temperature string // e.g. "0.3°C"
	Description string
	Sunrise     string
	Sunset      string
	WindSpeed   string // e.g. "6.17 m/s"
	Humidity    string // e.g. "96%"
}

// Forecast describes today's expected range.
type Forecast struct {
	MaxTemp    string
	MinTemp    string
	Conditions string
}

// Alert is an active weather warning.
type Alert struct {
	Title       string
	Description string
	Start       string
	End         string
}

// Client fetches weather data from the OpenWeatherMap One Call 3.0 API.
type Client struct {
	apiKey   string
	baseURL  string
	lat, lon float64
	loc      *time.Location
	http     *http.Client
}

// NewClient creates a weather client for a fixed location. Timestamps in the
// snapshot are rendered in loc.
func NewClient(apiKey string, lat, lon float64, loc *time.Location) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/3.0/onecall",
		lat:     lat,
		lon:     lon,
		loc:     loc,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
			Timeout: 15 * time.Second,
		},
	}
}

// oneCallResponse mirrors the One Call JSON fields the briefing uses.
type oneCallResponse struct {
	Current *struct {
		Temp      float64 `json:"temp"`
		Sunrise   int64   `json:"sunrise"`
		Sunset    int64   `json:"sunset"`
		WindSpeed float64 `json:"wind_speed"`
		Humidity  int     `json:"humidity"`
		Weather   []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"current"`
	Daily []struct {
		Temp struct {
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		} `json:"temp"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"daily"`
	Alerts []struct {
		Event       string `json:"event"`
		Description string `json:"description"`
		Start       int64  `json:"start"`
		End         int64  `json:"end"`
	} `json:"alerts"`
}

// Fetch performs one One Call request and converts the response into a
// Snapshot. Any transport failure, non-success status, or payload missing the
// current/daily sections fails the fetch.
func (c *Client) Fetch(ctx context.Context) (*Snapshot, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%g", c.lat))
	q.Set("lon", fmt.Sprintf("%g", c.lon))
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching weather: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading weather response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", ErrAuth, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("weather provider returned status %d: %s", resp.StatusCode, string(body))
	}

	var raw oneCallResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if raw.Current == nil || len(raw.Daily) == 0 {
		return nil, fmt.Errorf("%w: missing current or daily section", ErrBadPayload)
	}

	snap := &Snapshot{
		Current: Current{
			Temperature: fmt.Sprintf("%g°C", raw.Current.Temp),
			Sunrise:     c.localTime(raw.Current.Sunrise),
			Sunset:      c.localTime(raw.Current.Sunset),
			WindSpeed:   fmt.Sprintf("%g m/s", raw.Current.WindSpeed),
			Humidity:    fmt.Sprintf("%d%%", raw.Current.Humidity),
		},
	}
	if len(raw.Current.Weather) > 0 {
		snap.Current.Description = raw.Current.Weather[0].Description
	}

	today := raw.Daily[0]
	snap.Forecast = Forecast{
		MaxTemp: fmt.Sprintf("%g°C", today.Temp.Max),
		MinTemp: fmt.Sprintf("%g°C", today.Temp.Min),
	}
	if len(today.Weather) > 0 {
		snap.Forecast.Conditions = today.Weather[0].Description
	}

	for _, a := range raw.Alerts {
		snap.Alerts = append(snap.Alerts, Alert{
			Title:       a.Event,
			Description: a.Description,
			Start:       c.localTime(a.Start),
			End:         c.localTime(a.End),
		})
	}

	return snap, nil
}

// localTime renders a unix timestamp in the client's time zone.
func (c *Client) localTime(unix int64) string {
	if unix == 0 {
		return ""
	}
	return time.Unix(unix, 0).In(c.loc).Format("2006-01-02 15:04:05 MST")
}
