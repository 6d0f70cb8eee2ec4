package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"reclip/internal/ipc"
	"reclip/internal/notifications"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()

			err := ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.TestNotification()
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout, resp.Message)
				return nil
			})
			if err == nil || !errors.Is(err, errDaemonNotRunning) {
				return err
			}

			cfg, cfgErr := ctx.ensureConfig()
			if cfgErr != nil {
				return cfgErr
			}
			if cfg.Notifications.NtfyTopic == "" {
				fmt.Fprintln(stdout, "ntfy topic not configured")
				return nil
			}
			notifier := notifications.NewService(cfg)
			if err := notifier.Publish(cmd.Context(), notifications.EventTest, nil); err != nil {
				return err
			}
			fmt.Fprintln(stdout, "test notification sent")
			return nil
		},
	}
}
