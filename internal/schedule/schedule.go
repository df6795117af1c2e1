package schedule

import (
	"context"
	"fmt"

	"github.com/alexanderramin/daybrief/internal/calendar"
	"github.com/alexanderramin/daybrief/internal/tasks"
)

// TaskSource lists planner tasks inside the briefing horizon.
type TaskSource interface {
	Fetch(ctx context.Context) ([]tasks.Task, error)
}

// EventSource lists calendar events up to daysAhead days out.
type EventSource interface {
	Fetch(ctx context.Context, daysAhead int) ([]calendar.Event, error)
}

// Schedule combines planner tasks and calendar events for one run.
type Schedule struct {
	Tasks  []tasks.Task
	Events []calendar.Event
}

// Service merges the task and calendar sources into one Schedule.
type Service struct {
	tasks     TaskSource
	events    EventSource // nil when no calendar is configured
	daysAhead int
}

// NewService creates a schedule service. events may be nil, in which case the
// schedule carries tasks only.
func NewService(tasks TaskSource, events EventSource, daysAhead int) *Service {
	return &Service{tasks: tasks, events: events, daysAhead: daysAhead}
}

// Fetch pulls both sources. Either source failing fails the whole fetch;
// the briefing never proceeds on a partial schedule.
func (s *Service) Fetch(ctx context.Context) (*Schedule, error) {
	taskList, err := s.tasks.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}

	sched := &Schedule{Tasks: taskList}

	if s.events != nil {
		events, err := s.events.Fetch(ctx, s.daysAhead)
		if err != nil {
			return nil, fmt.Errorf("fetching calendar events: %w", err)
		}
		sched.Events = events
	}

	return sched, nil
}
