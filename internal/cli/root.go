package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexanderramin/daybrief/internal/briefing"
)

// App holds the hooks CLI commands need. The briefing service is built
// lazily so that commands like setup work before any configuration exists.
type App struct {
	// NewService loads configuration and wires the briefing pipeline.
	NewService func() (*briefing.Service, error)

	// IsInteractive reports whether stdout is a terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "daybrief" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "daybrief",
		Short:         "Daily morning briefing: weather, fitness, and schedule by email",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRunCmd(app),
		newPreviewCmd(app),
		newSetupCmd(app),
	)

	return root
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}
