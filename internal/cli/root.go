package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"outlog/internal/app"
	"outlog/internal/shared/configs"
	"outlog/internal/shared/svcerrors"

	"github.com/spf13/cobra"
)

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	configFile string
	logLevel   string

	stdout io.Writer
	stderr io.Writer
}

// NewRootCommand builds the outlog command tree writing reports to stdout and logs to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "outlog",
		Short: "outlog compacts breakpoint-hook debug logs",
		Long: `outlog keeps the frame lines a breakpoint hook wrote under a project root and
collapses repeated solver loops into "# <pattern> repeated <n> times" lines.

Examples:
  outlog compact ./output_logs
  outlog compact ./output_logs --glob "**/*.log" --output json
  outlog watch ./output_logs
  outlog serve --port 8080`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file (default: built-in defaults and OUTLOG_* env)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(
		newCompactCommand(opts),
		newWatchCommand(opts),
		newServeCommand(opts),
		newPatternsCommand(opts),
	)
	return rootCmd
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	rootCmd := NewRootCommand(os.Stdout, os.Stderr)
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return reportError(os.Stderr, err)
	}
	return 0
}

const exitInterrupted = 130

// reportError prints err and maps it to an exit code. An interrupted run exits 130 even when the
// cancellation surfaced wrapped in a service error; other service errors map by category.
func reportError(w io.Writer, err error) int {
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(w, "outlog: interrupted")
		return exitInterrupted
	}
	if svcErr, ok := svcerrors.As(err); ok {
		fmt.Fprintf(w, "outlog: %s\n", svcErr.Error())
		return svcErr.ExitCode()
	}
	fmt.Fprintf(w, "outlog: %v\n", err)
	return 1
}

// configOverrides are command line values applied on top of the loaded config; zero values are skipped.
type configOverrides struct {
	inputDir string
	glob     string
	workers  int
	port     int
}

func (opts *rootOptions) loadConfig(overrides configOverrides) (*configs.Config, error) {
	cfg, err := configs.LoadConfig(opts.configFile)
	if err != nil {
		return nil, err
	}

	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if overrides.inputDir != "" {
		cfg.Input.Dir = overrides.inputDir
	}
	if overrides.glob != "" {
		cfg.Input.Glob = overrides.glob
	}
	if overrides.workers != 0 {
		cfg.Compaction.Workers = overrides.workers
	}
	if overrides.port != 0 {
		cfg.Server.Port = overrides.port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (opts *rootOptions) newApp(overrides configOverrides) (*app.App, error) {
	cfg, err := opts.loadConfig(overrides)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, opts.stderr)
}

func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
