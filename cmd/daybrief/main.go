package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/daybrief/internal/briefing"
	"github.com/alexanderramin/daybrief/internal/calendar"
	"github.com/alexanderramin/daybrief/internal/cli"
	"github.com/alexanderramin/daybrief/internal/config"
	"github.com/alexanderramin/daybrief/internal/fitness"
	"github.com/alexanderramin/daybrief/internal/llm"
	"github.com/alexanderramin/daybrief/internal/mail"
	"github.com/alexanderramin/daybrief/internal/schedule"
	"github.com/alexanderramin/daybrief/internal/tasks"
	"github.com/alexanderramin/daybrief/internal/weather"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{
		// Configuration is loaded lazily so setup can run on a clean machine.
		NewService: buildService,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		},
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// buildService loads configuration and wires the full briefing pipeline:
// data clients, schedule merge, LLM client, and mail delivery.
func buildService() (*briefing.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	var observer llm.Observer = llm.NoopObserver{}
	var runLog io.Writer
	if cfg.LogCalls {
		observer = llm.NewLogObserver(os.Stderr)
		runLog = os.Stderr
	}

	llmClient := llm.NewOpenAIClient(llm.Config{
		Endpoint:    cfg.OpenAIEndpoint,
		APIKey:      cfg.OpenAIKey,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		TimeoutMs:   cfg.LLMTimeoutMs,
		MaxRetries:  cfg.LLMMaxRetries,
	}, observer)

	weatherClient := weather.NewClient(cfg.OpenWeatherKey, cfg.Latitude, cfg.Longitude, cfg.Location())
	fitnessClient := fitness.NewClient(cfg.FitnessURL)
	taskClient := tasks.NewClient(cfg.MotionKey, cfg.DaysAhead, cfg.Location())

	var events schedule.EventSource
	if cfg.CalendarURL != "" {
		events = calendar.NewClient(cfg.CalendarURL, cfg.CalendarID, cfg.Timezone)
	}
	scheduleSvc := schedule.NewService(taskClient, events, cfg.DaysAhead)

	sender := mail.NewClient(cfg.SendGridKey)

	opts := briefing.Options{
		RecipientName: cfg.RecipientName,
		Goals:         cfg.Goals,
		FromEmail:     cfg.FromEmail,
		ToEmail:       cfg.ToEmail,
		Subject:       cfg.Subject,
	}

	return briefing.NewService(weatherClient, fitnessClient, scheduleSvc, llmClient, sender, opts, runLog), nil
}
