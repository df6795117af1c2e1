package fitness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

var (
	// ErrAuth indicates the fitness proxy rejected the request.
	ErrAuth = errors.New("fitness proxy rejected credentials")

	// ErrBadPayload indicates the proxy response could not be decoded.
	ErrBadPayload = errors.New("malformed fitness payload")
)

// Summary holds the prior day's activity metrics. A nil pointer field means
// the proxy did not report that metric; the composer renders it as
// unavailable.
type Summary struct {
	Steps             *int
	ActiveMinutes     *int
	Calories          *int
	ElevatedHRMinutes *int
	WeightKg          *float64
}

// Client fetches activity data from a Google Fit proxy. The proxy returns a
// map of metric name to a one-element sample array; metrics with any other
// sample count are skipped.
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates a fitness client for the given proxy URL. The URL carries
// its own credentials (NocodeAPI convention).
func NewClient(url string) *Client {
	return &Client{
		url: url,
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

type sample struct {
	Value json.Number `json:"value"`
}

// Fetch performs one proxy request and extracts the metrics the briefing
// reports on.
func (c *Client) Fetch(ctx context.Context) (*Summary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating fitness request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching fitness data: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading fitness response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", ErrAuth, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fitness proxy returned status %d: %s", resp.StatusCode, string(body))
	}

	var raw map[string][]sample
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	s := &Summary{
		Steps:             intMetric(raw, "steps_count"),
		ActiveMinutes:     intMetric(raw, "active_minutes"),
		Calories:          intMetric(raw, "calories_expended"),
		ElevatedHRMinutes: intMetric(raw, "heart_minutes"),
		WeightKg:          floatMetric(raw, "weight"),
	}

	return s, nil
}

func intMetric(raw map[string][]sample, key string) *int {
	samples, ok := raw[key]
	if !ok || len(samples) != 1 {
		return nil
	}
	f, err := samples[0].Value.Float64()
	if err != nil {
		return nil
	}
	n := int(f)
	return &n
}

func floatMetric(raw map[string][]sample, key string) *float64 {
	samples, ok := raw[key]
	if !ok || len(samples) != 1 {
		return nil
	}
	f, err := samples[0].Value.Float64()
	if err != nil {
		return nil
	}
	return &f
}
