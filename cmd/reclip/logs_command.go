package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"reclip/internal/ipc"
	"reclip/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent daemon log lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()

			err := ctx.withClient(func(client *ipc.Client) error {
				offset := int64(-1)
				for {
					resp, err := client.LogTail(ipc.LogTailRequest{
						Offset:     offset,
						Limit:      lines,
						Follow:     follow,
						WaitMillis: 2000,
					})
					if err != nil {
						return err
					}
					for _, line := range resp.Lines {
						fmt.Fprintln(stdout, line)
					}
					offset = resp.Offset
					if !follow {
						return nil
					}
					if err := cmd.Context().Err(); err != nil {
						return err
					}
				}
			})
			if err == nil || !errors.Is(err, errDaemonNotRunning) {
				return err
			}

			// No daemon; read the log file directly.
			cfg, cfgErr := ctx.ensureConfig()
			if cfgErr != nil {
				return cfgErr
			}
			path := filepath.Join(cfg.Paths.LogDir, "reclip.log")
			result, tailErr := logs.Tail(cmd.Context(), path, logs.TailOptions{Offset: -1, Limit: lines})
			if tailErr != nil {
				return tailErr
			}
			for _, line := range result.Lines {
				fmt.Fprintln(stdout, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep streaming new lines (requires a running daemon)")
	return cmd
}
