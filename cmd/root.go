// Package cmd implements the CLI commands for html2wikijs using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jj-sm/html2wikijs/config"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "html2wikijs",
		Short: "html2wikijs converts Google Docs HTML exports into Wiki.js markdown",
		Long: `html2wikijs reads a Google Docs "Web page (.html)" export, recovers the
formatting the export encodes in CSS classes (bold, italic, strikethrough,
colored callout boxes, code blocks) and writes Wiki.js flavored markdown.

Usage:
  html2wikijs convert <file.html|url> [flags]
  html2wikijs convert <directory> --all [flags]`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: prepareEnv,
	}
	root.PersistentFlags().String("config", "", "load configuration from `FILE` (YAML)")
	root.AddCommand(newConvertCmd(), newDumpConfigCmd())
	return root
}

// prepareEnv loads the configuration and builds the logger before any
// subcommand runs.
func prepareEnv(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfiguration(path)
	if err != nil {
		return fmt.Errorf("unable to prepare configuration: %w", err)
	}
	log, closeLog, err := cfg.Logging.Prepare()
	if err != nil {
		return fmt.Errorf("unable to prepare logs: %w", err)
	}
	log.Debug("Program started", zap.String("config", path))
	cmd.SetContext(withEnv(cmd.Context(), &env{cfg: cfg, log: log, closeLog: closeLog}))
	return nil
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, rootCmd); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// run executes root and releases the logger of whichever command ran, on
// success and on failure alike.
func run(ctx context.Context, root *cobra.Command) error {
	cmd, err := root.ExecuteContextC(ctx)
	if cmd != nil {
		if cerr := envFrom(cmd.Context()).close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing log: %w", cerr)
		}
	}
	return err
}
