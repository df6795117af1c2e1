package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/daybrief/internal/cli/formatter"
)

func newPreviewCmd(app *App) *cobra.Command {
	var showPrompt bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Fetch data and show what the briefing would be built from",
		Long: `Preview fetches the same data a real run would, then prints the snapshots
and (optionally) the composed prompt. It never calls the language model and
never sends mail.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.NewService()
			if err != nil {
				return err
			}

			var spinner *formatter.Spinner
			if app.interactive() {
				spinner = formatter.NewSpinner("fetching briefing data")
				spinner.Start()
			}

			preview, err := svc.BuildPreview(cmd.Context())
			if spinner != nil {
				spinner.Stop()
			}
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPreview(preview))

			if showPrompt {
				fmt.Fprintln(cmd.OutOrStdout())
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Header("Composed Prompt"))
				fmt.Fprintln(cmd.OutOrStdout(), preview.Prompt)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&showPrompt, "prompt", false, "Also print the composed LLM prompt")

	return cmd
}
