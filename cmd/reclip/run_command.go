package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reclip/internal/logging"
	"reclip/internal/scheduler"
	"reclip/internal/wiring"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var videoID string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one publishing pass immediately",
		Long: "Run ignores the upload windows: it publishes pending compilations,\n" +
			"then drains the channel once and exits. With --video only that\n" +
			"single video is processed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}
			components, err := wiring.Build(cfg, logger)
			if err != nil {
				return err
			}
			defer components.Close()

			stdout := cmd.OutOrStdout()

			if videoID != "" {
				video, err := components.Catalog.FetchVideo(cmd.Context(), videoID)
				if err != nil {
					return fmt.Errorf("fetch video %s: %w", videoID, err)
				}
				result := components.Orchestrator.Process(cmd.Context(), video)
				fmt.Fprintf(stdout, "%s: %s", result.VideoID, result.Outcome)
				if result.Reason != "" {
					fmt.Fprintf(stdout, " (%s)", result.Reason)
				}
				fmt.Fprintln(stdout)
				if result.Err != nil {
					return result.Err
				}
				return nil
			}

			summary := components.Coordinator.PublishPending(cmd.Context())
			drained, err := components.Coordinator.Drain(cmd.Context())
			if err != nil {
				return err
			}
			summary = mergeSummaries(summary, drained)
			fmt.Fprintf(stdout, "Examined %d, published %d, skipped %d, failed %d\n",
				summary.Examined, summary.Published, summary.Skipped, summary.Failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&videoID, "video", "", "Process a single video ID instead of draining")
	return cmd
}

func mergeSummaries(a, b scheduler.Summary) scheduler.Summary {
	a.Examined += b.Examined
	a.Published += b.Published
	a.Skipped += b.Skipped
	a.Failed += b.Failed
	return a
}
