package tasks

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

var (
	// ErrAuth indicates the task provider rejected the API key.
	ErrAuth = errors.New("task provider rejected credentials")

	// ErrBadPayload indicates a task page could not be decoded.
	ErrBadPayload = errors.New("malformed task payload")
)

// Task statuses as the briefing partitions them.
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

// Task is one planner task scheduled inside the briefing horizon.
type Task struct {
	Name            string
	Description     string
	DurationMinutes int
	ScheduledStart  time.Time
	DueDate         string
	Status          string
	Label           string
}

// Client fetches tasks from the Motion planner API.
type Client struct {
	apiKey    string
	baseURL   string
	loc       *time.Location
	daysAhead int
	http      *http.Client

	// now is swappable so tests can pin the horizon window.
	now func() time.Time
}

// NewClient creates a task client that keeps tasks scheduled between today
// and daysAhead days out, in loc.
func NewClient(apiKey string, daysAhead int, loc *time.Location) *Client {
	return &Client{
		apiKey:    apiKey,
		baseURL:   "https://api.usemotion.com",
		loc:       loc,
		daysAhead: daysAhead,
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

// taskPage is one page of GET /v1/tasks.
type taskPage struct {
	Tasks []rawTask `json:"tasks"`
	Meta  struct {
		NextCursor string `json:"nextCursor"`
	} `json:"meta"`
}

type rawTask struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Duration       int    `json:"duration"`
	ScheduledStart string `json:"scheduledStart"`
	DueDate        string `json:"dueDate"`
	Completed      bool   `json:"completed"`
	Labels         []struct {
		Name string `json:"name"`
	} `json:"labels"`
}

// Fetch pulls every task page, keeps the ones scheduled inside the horizon,
// and returns them ordered by scheduled start.
func (c *Client) Fetch(ctx context.Context) ([]Task, error) {
	var all []rawTask
	cursor := ""

	for {
		page, err := c.fetchPage(ctx, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Tasks...)

		cursor = page.Meta.NextCursor
		if cursor == "" {
			break
		}
	}

	now := c.now().In(c.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)
	horizon := dayStart.AddDate(0, 0, c.daysAhead)

	tasks := make([]Task, 0, len(all))
	for _, raw := range all {
		if raw.ScheduledStart == "" {
			continue
		}
		start, err := time.Parse(time.RFC3339, raw.ScheduledStart)
		if err != nil {
			continue
		}
		start = start.In(c.loc)
		if start.Before(dayStart) || !start.Before(horizon) {
			continue
		}

		task := Task{
			Name:            raw.Name,
			Description:     raw.Description,
			DurationMinutes: raw.Duration,
			ScheduledStart:  start,
			DueDate:         raw.DueDate,
			Status:          StatusPending,
		}
		if raw.Completed {
			task.Status = StatusCompleted
		}
		if len(raw.Labels) > 0 {
			task.Label = raw.Labels[0].Name
		}
		tasks = append(tasks, task)
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].ScheduledStart.Before(tasks[j].ScheduledStart)
	})

	return tasks, nil
}

func (c *Client) fetchPage(ctx context.Context, cursor string) (*taskPage, error) {
	endpoint := c.baseURL + "/v1/tasks"
	if cursor != "" {
		endpoint += "?cursor=" + url.QueryEscape(cursor)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating task request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading task response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", ErrAuth, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("task provider returned status %d: %s", resp.StatusCode, string(body))
	}

	var page taskPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	return &page, nil
}
