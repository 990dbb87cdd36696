package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/cmakedox/internal/converter"
)

func newFilterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filter FILE",
		Short: "Write the conversion of one script to stdout",
		Long: `Convert a single script and write the result to stdout.

Use it as a Doxygen input filter:

  FILTER_PATTERNS = *.cmake="cmakedox filter"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

			result, err := converter.New(nil, logger).Convert(cmd.OutOrStdout(), args[0])
			if err != nil {
				return err
			}
			logger.Debug("filtered", "input", args[0], "group", result.GroupID, "records", result.Records())
			return nil
		},
	}
}
