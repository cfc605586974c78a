// Package main implements the sample CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ekisa-team/sample/internal/config"
	"github.com/ekisa-team/sample/internal/core"
	"github.com/ekisa-team/sample/internal/env"
	"github.com/ekisa-team/sample/internal/logger"
)

const (
	exitError        = 1
	exitInvalidInput = 2
	exitNotFound     = 3
)

var (
	// Set via ldflags during build.
	version   = "dev"
	gitCommit = "unknown"
)

// Options holds the persistent command-line options.
type Options struct {
	ConfigPath string
	SchemaPath string
}

func main() {
	os.Exit(execute(context.Background(), os.Stdout, os.Stderr, os.Args[1:]))
}

// execute runs the CLI and returns the process exit code.
func execute(ctx context.Context, stdout, stderr io.Writer, args []string) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, err)
		return exitCode(err)
	}

	return 0
}

func exitCode(err error) int {
	kind, ok := core.KindOf(err)
	if !ok {
		return exitError
	}

	switch kind {
	case core.KindNotFound:
		return exitNotFound
	case core.KindInvalidInput:
		return exitInvalidInput
	default:
		return exitError
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &Options{}

	root := &cobra.Command{
		Use:   "sample",
		Short: "Run the engine against configured contexts",
		Long: `sample drives the engine over the contexts declared in a YAML config file.

The config file is validated against a JSON schema before use.`,
		Example: `  sample run                     # Print the engine banner
  sample process                 # Process the default context
  sample process staging         # Process a named context
  sample serve --grpc-port 6000  # Serve health checks and reload on change`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			slog.SetDefault(logger.New(env.FromEnv(), logger.WithWriter(cmd.ErrOrStderr())))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate(fmt.Sprintf("sample version %s\n  commit: %s\n", version, gitCommit))

	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", config.DefaultConfigFile(), "Path to config file")
	root.PersistentFlags().StringVar(&opts.SchemaPath, "schema", "", "Path to schema file (defaults to the built-in schema)")

	root.AddCommand(
		newRunCmd(),
		newProcessCmd(opts),
		newContextsCmd(opts),
		newServeCmd(opts),
		newStatusCmd(),
	)

	return root
}

// loadConfig loads the config and reconfigures logging from it.
func loadConfig(cmd *cobra.Command, opts *Options) (*config.Config, error) {
	cfg, err := config.LoadAndValidate(opts.ConfigPath, opts.SchemaPath)
	if err != nil {
		return nil, err
	}

	configureLogging(cmd, cfg)
	slog.Debug("Config loaded", "config", opts.ConfigPath, "name", cfg.Name)

	return cfg, nil
}

func configureLogging(cmd *cobra.Command, cfg *config.Config) {
	slog.SetDefault(logger.New(env.FromEnv(),
		logger.WithWriter(cmd.ErrOrStderr()),
		logger.WithLevel(logger.ParseLevel(cfg.Log.Level)),
		logger.WithLogToFile(cfg.Log.ToFile),
		logger.WithLogFile(cfg.Log.File),
	))
}
