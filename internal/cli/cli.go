package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/rockerbuild/internal/app"
	"github.com/specialistvlad/rockerbuild/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error(), Err: err}
}

func buildError(err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &ExitError{Code: 1, Message: err.Error(), Err: err}
}

// options holds the values of the persistent flags.
type options struct {
	buildPath     string
	logFormat     string
	logLevel      string
	workers       int
	keepGoing     bool
	rockerVersion string
}

func (o *options) appConfig() (*app.Config, error) {
	cfg, err := app.NewConfig(app.Config{
		BuildPath:     o.buildPath,
		LogFormat:     o.logFormat,
		LogLevel:      o.logLevel,
		WorkerCount:   o.workers,
		KeepGoing:     o.keepGoing,
		RockerVersion: o.rockerVersion,
	})
	if err != nil {
		return nil, usageError(err)
	}
	return cfg, nil
}

// NewRootCommand builds the command tree. Command output goes to outW,
// logs and errors to errW.
func NewRootCommand(outW, errW io.Writer, loader config.Loader) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "rockerbuild",
		Short: "rockerbuild runs Rocker template generation as part of a build",
		Long: `rockerbuild reads HCL build files declaring source sets, dependency scopes
and Rocker units, wires one generation task per unit in front of the
matching compile task, and pins every com.fizzed:rocker-* dependency to a
single version.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError(err) })

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.buildPath, "file", "f", ".", "Build file or directory of .hcl build files")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log output format: 'text' or 'json'")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Logging level: 'debug', 'info', 'warn' or 'error'")
	flags.IntVar(&opts.workers, "workers", 4, "Number of tasks run concurrently")
	flags.BoolVar(&opts.keepGoing, "keep-going", false, "Keep running independent tasks after a failure")
	flags.StringVar(&opts.rockerVersion, "rocker-version", "", "Override the Rocker version for the whole build")

	// open builds the app for a subcommand.
	open := func(cmd *cobra.Command) (*app.App, error) {
		cfg, err := opts.appConfig()
		if err != nil {
			return nil, err
		}
		a, err := app.NewApp(cmd.Context(), outW, errW, cfg, loader)
		if err != nil {
			return nil, buildError(err)
		}
		return a, nil
	}

	root.AddCommand(
		newRunCommand(open),
		newTasksCommand(open),
		newResolveCommand(open),
		newPlanCommand(open),
	)
	return root
}

type opener func(cmd *cobra.Command) (*app.App, error)

// Execute runs the CLI with args. Every returned error is an *ExitError.
func Execute(ctx context.Context, args []string, outW, errW io.Writer, loader config.Loader) error {
	root := NewRootCommand(outW, errW, loader)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr
		}
		// Unknown commands and argument count errors come back unwrapped.
		return usageError(err)
	}
	return nil
}
