// Package cli wires the varcall command line.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-varcall/internal/config"
	"github.com/askiada/go-varcall/internal/logger"
	"github.com/askiada/go-varcall/internal/workflow"
	"github.com/askiada/go-varcall/pkg/pipeline"
)

type globalFlags struct {
	envFile    string
	configFile string
	logFile    string
	debug      bool
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	cmd := NewRootCmd(os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree. Traces go to stdout, logs to stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:          "varcall",
		Short:        "Align sequences against a reference and call their variants",
		SilenceUsage: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "dotenv file to load (default .env, optional)")
	cmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "also write JSON logs to this file")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newRunCmd(flags, stdout, stderr))
	cmd.AddCommand(newConvertCmd(flags, stdout, stderr))

	return cmd
}

// setup loads the configuration and the logger shared by every subcommand.
func setup(flags *globalFlags, stderr io.Writer) (config.Config, *slog.Logger, func() error, error) {
	cfg, err := config.Load(flags.envFile, flags.configFile)
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	err = cfg.Validate()
	if err != nil {
		return config.Config{}, nil, nil, errors.Wrap(err, "invalid configuration")
	}

	log, cleanup, err := logger.Setup(logger.Config{
		Console: stderr,
		File:    flags.logFile,
		Debug:   flags.debug,
	})
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	return cfg, log, cleanup, nil
}

func tracer(quiet bool, stdout io.Writer) pipeline.Tracer {
	if quiet {
		return pipeline.DiscardTracer
	}

	return pipeline.NewConsoleTracer(stdout)
}

func newRunCmd(flags *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	var (
		jobs    int
		drawDir string
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Convert the sequences, align every sample and call its variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, cleanup, err := setup(flags, stderr)
			if err != nil {
				return err
			}
			defer func() { _ = cleanup() }()

			runner := workflow.NewRunner(cfg,
				workflow.WithLogger(log),
				workflow.WithTracer(tracer(quiet, stdout)),
				workflow.WithJobs(jobs),
				workflow.WithDrawDir(drawDir),
			)

			err = runner.Execute(cmd.Context())
			if err != nil {
				log.Error("run.failed", "error", err)
			}

			return err
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 1, "number of samples processed at the same time")
	cmd.Flags().StringVar(&drawDir, "draw-dir", "", "write a DOT graph of every pipeline into this folder")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the external commands")

	return cmd
}

func newConvertCmd(flags *globalFlags, _, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "convert",
		Short: "Prepare the workspace and convert the sequences to FASTA",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, cleanup, err := setup(flags, stderr)
			if err != nil {
				return err
			}
			defer func() { _ = cleanup() }()

			return workflow.NewRunner(cfg, workflow.WithLogger(log)).Convert(cmd.Context())
		},
	}
}
