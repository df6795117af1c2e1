package briefing

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/daybrief/internal/fitness"
	"github.com/alexanderramin/daybrief/internal/llm"
	"github.com/alexanderramin/daybrief/internal/mail"
	"github.com/alexanderramin/daybrief/internal/schedule"
	"github.com/alexanderramin/daybrief/internal/weather"
)

// WeatherSource fetches the weather snapshot for the current run.
type WeatherSource interface {
	Fetch(ctx context.Context) (*weather.Snapshot, error)
}

// FitnessSource fetches the activity summary for the current run.
type FitnessSource interface {
	Fetch(ctx context.Context) (*fitness.Summary, error)
}

// ScheduleSource fetches the combined task/event schedule for the current run.
type ScheduleSource interface {
	Fetch(ctx context.Context) (*schedule.Schedule, error)
}

// Options holds the personalization and delivery settings for the pipeline.
type Options struct {
	RecipientName string
	Goals         string
	FromEmail     string
	ToEmail       string
	Subject       string
}

// Service runs the daily briefing pipeline: fetch, compose, generate,
// render, deliver. Each run is stateless; any stage failing aborts the run
// before the next stage starts.
type Service struct {
	weather  WeatherSource
	fitness  FitnessSource
	schedule ScheduleSource
	llm      llm.Client
	sender   mail.Sender
	opts     Options
	log      io.Writer

	now      func() time.Time
	newRunID func() string
}

// NewService wires the pipeline. log may be nil to disable run logging.
func NewService(w WeatherSource, f FitnessSource, s ScheduleSource, client llm.Client, sender mail.Sender, opts Options, log io.Writer) *Service {
	if log == nil {
		log = io.Discard
	}
	return &Service{
		weather:  w,
		fitness:  f,
		schedule: s,
		llm:      client,
		sender:   sender,
		opts:     opts,
		log:      log,
		now:      time.Now,
		newRunID: uuid.NewString,
	}
}

// Result describes one completed run.
type Result struct {
	RunID     string
	Prompt    string
	HTML      string
	Delivered bool
}

// Run executes the whole pipeline once. With dryRun set the email step is
// skipped and the rendered HTML is returned in the Result instead.
func (s *Service) Run(ctx context.Context, dryRun bool) (*Result, error) {
	runID := s.newRunID()
	s.logf("run_start id=%s dry_run=%t", runID, dryRun)

	prompt, err := s.composePrompt(ctx)
	if err != nil {
		s.logf("run_abort id=%s stage=fetch err=%v", runID, err)
		return nil, err
	}

	resp, err := s.llm.Generate(ctx, llm.GenerateRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		s.logf("run_abort id=%s stage=generate err=%v", runID, err)
		return nil, fmt.Errorf("generating briefing: %w", err)
	}
	if resp.Text == "" {
		s.logf("run_abort id=%s stage=generate err=empty_report", runID)
		return nil, fmt.Errorf("generating briefing: %w", llm.ErrInvalidOutput)
	}

	htmlBody := RenderEmail(s.opts.RecipientName, ExtractSections(resp.Text), resp.Text)

	result := &Result{RunID: runID, Prompt: prompt, HTML: htmlBody}
	if dryRun {
		s.logf("run_done id=%s delivered=false", runID)
		return result, nil
	}

	err = s.sender.Send(ctx, mail.Message{
		From:     s.opts.FromEmail,
		To:       s.opts.ToEmail,
		Subject:  s.opts.Subject,
		HTMLBody: htmlBody,
	})
	if err != nil {
		s.logf("run_abort id=%s stage=deliver err=%v", runID, err)
		return nil, fmt.Errorf("delivering briefing: %w", err)
	}

	result.Delivered = true
	s.logf("run_done id=%s delivered=true", runID)
	return result, nil
}

// Preview holds the fetched snapshots and the prompt they compose into,
// without touching the LLM or the mail provider.
type Preview struct {
	Weather  *weather.Snapshot
	Fitness  *fitness.Summary
	Schedule *schedule.Schedule
	Prompt   string
}

// BuildPreview fetches all sources and composes the prompt. Used by the
// preview command.
func (s *Service) BuildPreview(ctx context.Context) (*Preview, error) {
	w, f, sched, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return &Preview{
		Weather:  w,
		Fitness:  f,
		Schedule: sched,
		Prompt:   Compose(w, f, sched, s.now(), s.opts.Goals),
	}, nil
}

func (s *Service) composePrompt(ctx context.Context) (string, error) {
	w, f, sched, err := s.fetchAll(ctx)
	if err != nil {
		return "", err
	}
	return Compose(w, f, sched, s.now(), s.opts.Goals), nil
}

// fetchAll pulls the three sources sequentially. All must succeed before
// composition proceeds; there is no partial briefing.
func (s *Service) fetchAll(ctx context.Context) (*weather.Snapshot, *fitness.Summary, *schedule.Schedule, error) {
	w, err := s.weather.Fetch(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetching weather: %w", err)
	}
	f, err := s.fitness.Fetch(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetching fitness data: %w", err)
	}
	sched, err := s.schedule.Fetch(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetching schedule: %w", err)
	}
	return w, f, sched, nil
}

func (s *Service) logf(format string, args ...any) {
	ts := time.Now().UTC().Format(time.RFC3339)
	fmt.Fprintf(s.log, "[%s] %s\n", ts, fmt.Sprintf(format, args...))
}
