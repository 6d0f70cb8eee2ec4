package main

import (
	"github.com/spf13/cobra"

	"reclip/internal/daemonrun"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the scheduling loop in the foreground",
		Long: "Watch runs the same loop as reclipd without detaching: it waits\n" +
			"for the configured upload windows, publishes pending compilations,\n" +
			"and drains new channel videos until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return daemonrun.Run(cmd.Context(), cfg, daemonrun.Options{LogLevel: logLevel})
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "", "Override the configured log level")
	return cmd
}
