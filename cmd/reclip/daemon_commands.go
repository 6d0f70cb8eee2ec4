package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"reclip/internal/ipc"
	"reclip/internal/ledger"
	"reclip/internal/preflight"
)

func newDaemonCommands(ctx *commandContext) []*cobra.Command {
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon and ledger status",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			colorize := shouldColorize(stdout)

			err := ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Status()
				if err != nil {
					return err
				}
				for _, line := range renderSectionHeader("Daemon", colorize) {
					fmt.Fprintln(stdout, line)
				}
				runKind := statusError
				runDetail := "stopped"
				if resp.Running {
					runKind = statusOK
					runDetail = "running (pid " + strconv.Itoa(resp.PID) + ")"
				}
				fmt.Fprintln(stdout, renderStatusLine("Scheduler", runKind, runDetail, colorize))
				pausedKind := statusOK
				if resp.Paused {
					pausedKind = statusWarn
				}
				fmt.Fprintln(stdout, renderStatusLine("Paused", pausedKind, yesNo(resp.Paused), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Windows", statusInfo, resp.Windows, colorize))
				fmt.Fprintln(stdout, renderStatusLine("Next window", statusInfo, resp.NextWindow, colorize))
				fmt.Fprintln(stdout, renderStatusLine("Pending uploads", statusInfo, strconv.Itoa(resp.PendingCount), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Ledger", statusInfo, resp.LedgerDBPath, colorize))
				return nil
			})
			if err == nil {
				return nil
			}
			if !errors.Is(err, errDaemonNotRunning) {
				return err
			}

			fmt.Fprintln(stdout, "Daemon is not running")
			fmt.Fprintln(stdout)
			return printLocalStatus(cmd, ctx, colorize)
		},
	}

	pauseCmd := &cobra.Command{
		Use:   "pause",
		Short: "Suspend publishing passes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.Pause(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Scheduling paused")
				return nil
			})
		},
	}

	resumeCmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume publishing passes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.Resume(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Scheduling resumed")
				return nil
			})
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the reclip daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			err := ctx.withClient(func(client *ipc.Client) error {
				_, err := client.Stop()
				return err
			})
			if errors.Is(err, errDaemonNotRunning) {
				fmt.Fprintln(stdout, "Daemon is not running")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, "Daemon stopped")
			return nil
		},
	}

	return []*cobra.Command{statusCmd, pauseCmd, resumeCmd, stopCmd}
}

// printLocalStatus reports what can be known without a daemon: preflight
// results and pending ledger rows.
func printLocalStatus(cmd *cobra.Command, ctx *commandContext, colorize bool) error {
	stdout := cmd.OutOrStdout()
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	for _, line := range renderSectionHeader("Preflight", colorize) {
		fmt.Fprintln(stdout, line)
	}
	for _, result := range preflight.RunAll(cmd.Context(), cfg) {
		kind := statusOK
		if !result.Passed {
			kind = statusError
		}
		fmt.Fprintln(stdout, renderStatusLine(result.Name, kind, result.Detail, colorize))
	}
	fmt.Fprintln(stdout)

	store, err := ledger.Open(cfg)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer store.Close()

	pending, err := store.PendingUploads(cmd.Context())
	if err != nil {
		return err
	}
	for _, line := range renderSectionHeader("Ledger", colorize) {
		fmt.Fprintln(stdout, line)
	}
	fmt.Fprintln(stdout, renderStatusLine("Path", statusInfo, store.Path(), colorize))
	fmt.Fprintln(stdout, renderStatusLine("Pending uploads", statusInfo, strconv.Itoa(len(pending)), colorize))
	return nil
}
