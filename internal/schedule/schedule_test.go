package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/daybrief/internal/calendar"
	"github.com/alexanderramin/daybrief/internal/tasks"
)

type stubTasks struct {
	tasks []tasks.Task
	err   error
}

func (s stubTasks) Fetch(context.Context) ([]tasks.Task, error) { return s.tasks, s.err }

type stubEvents struct {
	events []calendar.Event
	err    error
	seen   int
}

func (s *stubEvents) Fetch(_ context.Context, daysAhead int) ([]calendar.Event, error) {
	s.seen = daysAhead
	return s.events, s.err
}

func TestFetch_MergesSources(t *testing.T) {
	taskList := []tasks.Task{{Name: "write report", ScheduledStart: time.Now()}}
	events := &stubEvents{events: []calendar.Event{{Name: "standup"}}}

	svc := NewService(stubTasks{tasks: taskList}, events, 3)
	sched, err := svc.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, sched.Tasks, 1)
	assert.Equal(t, "write report", sched.Tasks[0].Name)
	require.Len(t, sched.Events, 1)
	assert.Equal(t, "standup", sched.Events[0].Name)
	assert.Equal(t, 3, events.seen)
}

func TestFetch_NoCalendarConfigured(t *testing.T) {
	svc := NewService(stubTasks{tasks: []tasks.Task{{Name: "only task"}}}, nil, 1)
	sched, err := svc.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, sched.Tasks, 1)
	assert.Empty(t, sched.Events)
}

func TestFetch_TaskFailureAborts(t *testing.T) {
	boom := errors.New("motion down")
	events := &stubEvents{}

	svc := NewService(stubTasks{err: boom}, events, 1)
	_, err := svc.Fetch(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Zero(t, events.seen, "calendar must not be queried after a task failure")
}

func TestFetch_EventFailureAborts(t *testing.T) {
	boom := errors.New("calendar down")
	svc := NewService(stubTasks{}, &stubEvents{err: boom}, 1)
	_, err := svc.Fetch(context.Background())
	assert.ErrorIs(t, err, boom)
}
