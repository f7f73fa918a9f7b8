package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vk/sweepgrid/internal/app"
)

// ExitError is a custom error type that carries a specific exit code
// through the cobra chain.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Execute parses args, runs the selected command, and returns the process
// exit code. opts are forwarded to the App so callers can register call
// targets or swap ports.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...app.Option) int {
	root := newRootCmd(stdout, stderr, opts)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer, opts []app.Option) *cobra.Command {
	cfg := &app.Config{}

	root := &cobra.Command{
		Use:          "sweepgrid",
		Short:        "Expand parameter sweeps into command invocations and dispatch them",
		Long: `sweepgrid reads a declarative job file, expands its sweep expressions
into a concrete ordered set of invocations, and dispatches them through
one of three backends: run, submit or call.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&cfg.FilePath, "file", "f", "sweepgrid.yaml", "Path to the job definition file.")
	pf.StringVar(&cfg.LogLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return validateConfig(cfg)
	}

	newApp := func() *app.App {
		all := append([]app.Option{app.WithOutput(stdout)}, opts...)
		return app.New(cfg, stderr, all...)
	}

	root.AddCommand(newRunCmd(cfg, newApp))
	root.AddCommand(newShowCmd(newApp))
	root.AddCommand(newListCmd(newApp))
	return root
}

func validateConfig(cfg *app.Config) error {
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	if _, err := app.NewConfig(*cfg); err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	return nil
}

func newRunCmd(cfg *app.Config, newApp func() *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <job> [key=value ...]",
		Short: "Expand a job and dispatch its invocations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newApp().Run(cmd.Context(), args[0], args[1:]); err != nil {
				return &ExitError{Code: 1, Message: err.Error()}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "Print the plan without launching anything.")
	cmd.Flags().BoolVar(&cfg.FailFast, "fail-fast", false, "Abort on the first failed invocation.")
	return cmd
}

func newShowCmd(newApp func() *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <job> [key=value ...]",
		Short: "Print a job's expanded plan without dispatching it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newApp().Show(cmd.Context(), args[0], args[1:]); err != nil {
				return &ExitError{Code: 1, Message: err.Error()}
			}
			return nil
		},
	}
}

func newListCmd(newApp func() *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the jobs defined in the job file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := newApp().Jobs(cmd.Context())
			if err != nil {
				return &ExitError{Code: 1, Message: err.Error()}
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
