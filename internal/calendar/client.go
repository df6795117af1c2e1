package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"time"
)

// ErrBadPayload indicates the calendar proxy response could not be decoded.
var ErrBadPayload = errors.New("malformed calendar payload")

// Event is one calendar entry inside the briefing horizon.
type Event struct {
	Name        string
	Description string
	Start       string
	End         string
}

// Client fetches events from a calendar JSON proxy.
type Client struct {
	baseURL    string
	calendarID string
	timezone   string
	http       *http.Client

	now func() time.Time
}

// NewClient creates a calendar client for the given proxy URL and calendar.
func NewClient(baseURL, calendarID, timezone string) *Client {
	return &Client{
		baseURL:    baseURL,
		calendarID: calendarID,
		timezone:   timezone,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
			Timeout: 15 * time.Second,
		},
		now: time.Now,
	}
}

type eventList struct {
	Items []struct {
		Summary     string `json:"summary"`
		Description string `json:"description"`
		Start       struct {
			DateTime string `json:"dateTime"`
		} `json:"start"`
		End struct {
			DateTime string `json:"dateTime"`
		} `json:"end"`
	} `json:"items"`
}

// Fetch lists events up to daysAhead days out, ordered by start time.
func (c *Client) Fetch(ctx context.Context, daysAhead int) ([]Event, error) {
	timeMax := c.now().AddDate(0, 0, daysAhead)
	timeMax = time.Date(timeMax.Year(), timeMax.Month(), timeMax.Day(), 0, 0, 0, 0, timeMax.Location())

	q := url.Values{}
	q.Set("calendarId", c.calendarID)
	q.Set("orderBy", "startTime")
	q.Set("timeMax", timeMax.Format("2006-01-02T15:04:05")+"Z")
	q.Set("timeZone", c.timezone)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/listEvents?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating calendar request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching calendar events: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading calendar response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar proxy returned status %d: %s", resp.StatusCode, string(body))
	}

	var list eventList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	events := make([]Event, 0, len(list.Items))
	for _, item := range list.Items {
		events = append(events, Event{
			Name:        item.Summary,
			Description: item.Description,
			Start:       item.Start.DateTime,
			End:         item.End.DateTime,
		})
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Start < events[j].Start })

	return events, nil
}
