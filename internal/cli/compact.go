package cli

import (
	"os"
	"os/signal"
	"syscall"

	"outlog/internal/compactors"
	"outlog/internal/reports"

	"github.com/spf13/cobra"
)

func newCompactCommand(opts *rootOptions) *cobra.Command {
	var (
		glob    string
		output  string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "compact [dir]",
		Short: "Compact every outlog in a directory",
		Long: `Compact every outlog matching the glob in dir (default: input.dir from the config).
Each <name>.log is written to <output dir>/<name>.filtered.log next to it, and a JSON
run report is stored under the report dir.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := reports.NewRenderer(output, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			application, err := opts.newApp(configOverrides{inputDir: dirArg(args), glob: glob, workers: workers})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			report, err := application.Compact(ctx, compactors.CompactDirectoryRequest{})
			if err != nil {
				return err
			}
			return renderer.Render(report)
		},
	}

	cmd.Flags().StringVar(&glob, "glob", "", `input glob relative to dir, doublestar syntax (default "*.log")`)
	cmd.Flags().StringVarP(&output, "output", "o", reports.FormatText, "report format: text, json")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "files compacted concurrently (default from config)")
	return cmd
}
