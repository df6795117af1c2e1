package tasks

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow is mid-day so "today 00:00" and the horizon are unambiguous.
var fixedNow = time.Date(2023, 12, 22, 12, 0, 0, 0, time.UTC)

func testClient(t *testing.T, endpoint string, daysAhead int) *Client {
	t.Helper()
	c := NewClient("motion-key", daysAhead, time.UTC)
	c.baseURL = endpoint
	c.now = func() time.Time { return fixedNow }
	return c
}

func TestFetch_FiltersAndSorts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/tasks", r.URL.Path)
		assert.Equal(t, "motion-key", r.Header.Get("X-API-Key"))

		w.Write([]byte(`{
			"tasks": [
				{"name": "afternoon review", "duration": 30, "scheduledStart": "2023-12-22T15:00:00Z", "dueDate": "2023-12-22T22:59:59Z", "completed": false, "labels": [{"name": "Work"}]},
				{"name": "morning workout", "duration": 45, "scheduledStart": "2023-12-22T07:00:00Z", "completed": true},
				{"name": "next week", "duration": 60, "scheduledStart": "2023-12-30T09:00:00Z"},
				{"name": "unscheduled", "duration": 15},
				{"name": "yesterday", "duration": 10, "scheduledStart": "2023-12-21T10:00:00Z"}
			],
			"meta": {}
		}`))
	}))
	defer srv.Close()

	got, err := testClient(t, srv.URL, 1).Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "morning workout", got[0].Name)
	assert.Equal(t, StatusCompleted, got[0].Status)
	assert.Equal(t, "afternoon review", got[1].Name)
	assert.Equal(t, StatusPending, got[1].Status)
	assert.Equal(t, "Work", got[1].Label)
	assert.Equal(t, 30, got[1].DurationMinutes)
	assert.Equal(t, "2023-12-22T22:59:59Z", got[1].DueDate)
}

func TestFetch_FollowsCursors(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.RequestURI())
		switch r.URL.Query().Get("cursor") {
		case "":
			w.Write([]byte(`{"tasks":[{"name":"page one","scheduledStart":"2023-12-22T08:00:00Z"}],"meta":{"nextCursor":"abc"}}`))
		case "abc":
			w.Write([]byte(`{"tasks":[{"name":"page two","scheduledStart":"2023-12-22T09:00:00Z"}],"meta":{}}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	got, err := testClient(t, srv.URL, 1).Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "page one", got[0].Name)
	assert.Equal(t, "page two", got[1].Name)
	assert.Equal(t, []string{"/v1/tasks", "/v1/tasks?cursor=abc"}, paths)
}

func TestFetch_WiderHorizon(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tasks":[
			{"name":"in six days","scheduledStart":"2023-12-28T09:00:00Z"},
			{"name":"in eight days","scheduledStart":"2023-12-30T09:00:00Z"}
		],"meta":{}}`))
	}))
	defer srv.Close()

	got, err := testClient(t, srv.URL, 7).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "in six days", got[0].Name)
}

func TestFetch_AuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL, 1).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrAuth)
}

func TestFetch_BadPayloadMidPagination(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Write([]byte(`{"tasks":[],"meta":{"nextCursor":"x"}}`))
			return
		}
		fmt.Fprint(w, "not json")
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL, 1).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrBadPayload)
	assert.Equal(t, 2, calls)
}
