package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds every setting a briefing run needs: provider credentials,
// the user's location and horizon, and delivery addresses. Credentials are
// required; tunables fall back to defaults.
type Config struct {
	// Weather (OpenWeatherMap One Call 3.0).
	OpenWeatherKey string  `env:"OPENWEATHER_API_KEY,required"`
	Latitude       float64 `env:"DAYBRIEF_LATITUDE" envDefault:"50.0755"`
	Longitude      float64 `env:"DAYBRIEF_LONGITUDE" envDefault:"14.4378"`
	Timezone       string  `env:"DAYBRIEF_TIMEZONE" envDefault:"Europe/Prague"`

	// Fitness proxy (Google Fit via a NocodeAPI-style gateway).
	FitnessURL string `env:"FITNESS_PROXY_URL,required"`

	// Motion task planner.
	MotionKey string `env:"MOTION_API_KEY,required"`
	DaysAhead int    `env:"DAYBRIEF_DAYS_AHEAD" envDefault:"1"`

	// Calendar proxy. Optional: when the URL is empty the schedule
	// contains tasks only.
	CalendarURL string `env:"CALENDAR_PROXY_URL"`
	CalendarID  string `env:"CALENDAR_ID"`

	// Language model (OpenAI chat completions).
	OpenAIKey      string  `env:"OPENAI_API_KEY,required"`
	OpenAIEndpoint string  `env:"DAYBRIEF_LLM_ENDPOINT" envDefault:"https://api.openai.com"`
	Model          string  `env:"DAYBRIEF_LLM_MODEL" envDefault:"gpt-3.5-turbo"`
	Temperature    float64 `env:"DAYBRIEF_LLM_TEMPERATURE" envDefault:"0"`
	MaxTokens      int     `env:"DAYBRIEF_LLM_MAX_TOKENS" envDefault:"2048"`
	LLMTimeoutMs   int     `env:"DAYBRIEF_LLM_TIMEOUT_MS" envDefault:"60000"`
	LLMMaxRetries  int     `env:"DAYBRIEF_LLM_MAX_RETRIES" envDefault:"1"`

	// Delivery (SendGrid).
	SendGridKey string `env:"SENDGRID_API_KEY,required"`
	FromEmail   string `env:"DAYBRIEF_FROM_EMAIL,required"`
	ToEmail     string `env:"DAYBRIEF_TO_EMAIL,required"`
	Subject     string `env:"DAYBRIEF_SUBJECT" envDefault:"Your Morning Briefing"`

	// Personalization.
	RecipientName string `env:"DAYBRIEF_RECIPIENT_NAME" envDefault:"there"`
	Goals         string `env:"DAYBRIEF_GOALS"`

	// Call logging to stderr.
	LogCalls bool `env:"DAYBRIEF_LOG_CALLS" envDefault:"false"`

	location *time.Location
}

// Load reads a .env file when one is present, then populates the Config from
// the environment. A missing required credential or an unknown timezone name
// is an error.
func Load() (*Config, error) {
	// Best effort: running without a .env file is fine, the environment
	// may already be populated (e.g. by cron).
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("resolving timezone %q: %w", cfg.Timezone, err)
	}
	cfg.location = loc

	if cfg.DaysAhead < 1 {
		cfg.DaysAhead = 1
	}

	return cfg, nil
}

// Location returns the user's resolved time zone.
func (c *Config) Location() *time.Location {
	if c.location != nil {
		return c.location
	}
	return time.UTC
}
