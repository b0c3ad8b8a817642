package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jj-sm/html2wikijs/config"
)

func newDumpConfigCmd() *cobra.Command {
	var flagDefault bool
	cmd := &cobra.Command{
		Use:   "dumpconfig",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flagDefault {
				_, err := cmd.OutOrStdout().Write(config.Default())
				return err
			}
			data, err := config.Dump(envFrom(cmd.Context()).cfg)
			if err != nil {
				return fmt.Errorf("dumpconfig: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&flagDefault, "default", false, "print the built-in defaults with comments")
	return cmd
}
