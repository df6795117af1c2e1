package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newSetupCmd(app *App) *cobra.Command {
	var envPath string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Interactively collect credentials and write a .env file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("setup needs an interactive terminal")
			}

			if _, err := os.Stat(envPath); err == nil {
				overwrite := false
				confirm := huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("%s already exists. Overwrite it?", envPath)).
						Value(&overwrite),
				))
				if err := confirm.Run(); err != nil {
					return err
				}
				if !overwrite {
					fmt.Fprintln(cmd.OutOrStdout(), "Leaving existing file untouched.")
					return nil
				}
			}

			answers, err := runSetupForm()
			if err != nil {
				return err
			}

			if err := os.WriteFile(envPath, []byte(answers.envFile()), 0o600); err != nil {
				return fmt.Errorf("writing %s: %w", envPath, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s. Try it with: daybrief run --dry-run\n", envPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&envPath, "env-file", ".env", "Path of the env file to write")

	return cmd
}

// setupAnswers collects every value the form asks for, as entered.
type setupAnswers struct {
	OpenWeatherKey string
	Latitude       string
	Longitude      string
	Timezone       string
	FitnessURL     string
	MotionKey      string
	CalendarURL    string
	CalendarID     string
	OpenAIKey      string
	SendGridKey    string
	FromEmail      string
	ToEmail        string
	RecipientName  string
	Goals          string
}

func runSetupForm() (*setupAnswers, error) {
	a := &setupAnswers{
		Latitude:  "50.0755",
		Longitude: "14.4378",
		Timezone:  "Europe/Prague",
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("OpenWeatherMap API key").Value(&a.OpenWeatherKey).Validate(required),
			huh.NewInput().Title("Latitude").Value(&a.Latitude).Validate(validFloat),
			huh.NewInput().Title("Longitude").Value(&a.Longitude).Validate(validFloat),
			huh.NewInput().Title("Timezone (IANA name)").Value(&a.Timezone).Validate(validTimezone),
		),
		huh.NewGroup(
			huh.NewInput().Title("Fitness proxy URL").Value(&a.FitnessURL).Validate(required),
			huh.NewInput().Title("Motion API key").Value(&a.MotionKey).Validate(required),
			huh.NewInput().Title("Calendar proxy URL (blank to skip)").Value(&a.CalendarURL),
			huh.NewInput().Title("Calendar ID").Value(&a.CalendarID),
		),
		huh.NewGroup(
			huh.NewInput().Title("OpenAI API key").Value(&a.OpenAIKey).Validate(required),
			huh.NewInput().Title("SendGrid API key").Value(&a.SendGridKey).Validate(required),
			huh.NewInput().Title("Sender email").Value(&a.FromEmail).Validate(required),
			huh.NewInput().Title("Recipient email").Value(&a.ToEmail).Validate(required),
			huh.NewInput().Title("Recipient name").Placeholder("Nicholas").Value(&a.RecipientName),
			huh.NewText().Title("Long-term goals (used to personalize the briefing)").Value(&a.Goals),
		),
	).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return nil, err
	}
	return a, nil
}

// envFile renders the answers as a dotenv file matching the config loader's
// variable names.
func (a *setupAnswers) envFile() string {
	var b strings.Builder

	set := func(key, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%s=%s\n", key, envQuote(value))
	}

	set("OPENWEATHER_API_KEY", a.OpenWeatherKey)
	set("DAYBRIEF_LATITUDE", a.Latitude)
	set("DAYBRIEF_LONGITUDE", a.Longitude)
	set("DAYBRIEF_TIMEZONE", a.Timezone)
	set("FITNESS_PROXY_URL", a.FitnessURL)
	set("MOTION_API_KEY", a.MotionKey)
	set("CALENDAR_PROXY_URL", a.CalendarURL)
	set("CALENDAR_ID", a.CalendarID)
	set("OPENAI_API_KEY", a.OpenAIKey)
	set("SENDGRID_API_KEY", a.SendGridKey)
	set("DAYBRIEF_FROM_EMAIL", a.FromEmail)
	set("DAYBRIEF_TO_EMAIL", a.ToEmail)
	set("DAYBRIEF_RECIPIENT_NAME", a.RecipientName)
	set("DAYBRIEF_GOALS", a.Goals)

	return b.String()
}

func envQuote(v string) string {
	if strings.ContainsAny(v, " \t\n#\"'") {
		return strconv.Quote(strings.ReplaceAll(v, "\n", " "))
	}
	return v
}

func required(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validFloat(v string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
		return fmt.Errorf("must be a number")
	}
	return nil
}

func validTimezone(v string) error {
	if _, err := time.LoadLocation(strings.TrimSpace(v)); err != nil {
		return fmt.Errorf("unknown timezone")
	}
	return nil
}
