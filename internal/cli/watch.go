package cli

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"outlog/internal/compactors"
	"outlog/internal/models"
	"outlog/internal/reports"
	"outlog/internal/shared/svcerrors"

	"github.com/spf13/cobra"
)

func newWatchCommand(opts *rootOptions) *cobra.Command {
	var (
		glob   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Compact outlogs again whenever they change",
		Long: `Compact the outlogs in dir once, then keep watching dir and its subdirectories and
compact each outlog again after it is written. Stops on SIGINT or SIGTERM.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := reports.NewRenderer(output, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			application, err := opts.newApp(configOverrides{inputDir: dirArg(args), glob: glob})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			report, err := application.Compact(ctx, compactors.CompactDirectoryRequest{})
			switch {
			case err == nil:
				if err := renderer.Render(report); err != nil {
					return err
				}
			case !isNotFound(err):
				return err
			}

			// consumer workers run one per partition
			var mu sync.Mutex
			return application.Watch(ctx, func(_ context.Context, result *models.CompactionResult) {
				mu.Lock()
				defer mu.Unlock()
				if err := renderer.RenderFile(models.NewFileReport(result)); err != nil {
					application.Logger().Warn().Err(err).Msg("failed to render compaction")
				}
			})
		},
	}

	cmd.Flags().StringVar(&glob, "glob", "", `input glob relative to dir, doublestar syntax (default "*.log")`)
	cmd.Flags().StringVarP(&output, "output", "o", reports.FormatText, "report format: text, json")
	return cmd
}

// isNotFound reports whether err means no outlog matched yet, which is fine before watching.
func isNotFound(err error) bool {
	svcErr, ok := svcerrors.As(err)
	return ok && svcErr.IsNotFound()
}
