package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRunCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch data, generate the briefing, and email it",
		Long: `Run executes one briefing pass: fetch weather, fitness, and schedule data,
compose the prompt, generate the briefing text, and email it to the configured
recipient. This is the entry point a cron job invokes once a day.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.NewService()
			if err != nil {
				return err
			}

			result, err := svc.Run(cmd.Context(), dryRun)
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), result.HTML)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Briefing delivered (run %s).\n", result.RunID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the briefing HTML instead of emailing it")

	return cmd
}
