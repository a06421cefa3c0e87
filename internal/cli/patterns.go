package cli

import (
	"outlog/internal/reports"

	"github.com/spf13/cobra"
)

func newPatternsCommand(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List the loop patterns in scan order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := opts.newApp(configOverrides{})
			if err != nil {
				return err
			}
			renderer, err := reports.NewRenderer(output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return renderer.RenderPatterns(application.Catalogue().Patterns())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", reports.FormatText, "output format: text, json")
	return cmd
}
