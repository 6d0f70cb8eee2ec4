package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reclip/internal/logging"
	"reclip/internal/services/youtube"
	"reclip/internal/wiring"
)

func newReupCommand(ctx *commandContext) *cobra.Command {
	var keepDownload bool
	var skipPlaylist bool

	cmd := &cobra.Command{
		Use:   "reup <url-or-video-id>",
		Short: "Republish a single video as-is",
		Long: "Reup downloads one video and republishes it with the configured\n" +
			"title prefix and a description linking back to the source. The\n" +
			"download is deleted afterwards unless --keep is set.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID, err := youtube.ExtractVideoID(args[0])
			if err != nil {
				return err
			}

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
			runCtx := cmd.Context()

			video, err := components.Catalog.FetchVideo(runCtx, videoID)
			if err != nil {
				return fmt.Errorf("fetch video %s: %w", videoID, err)
			}
			fmt.Fprintf(stdout, "Downloading %s (%s)\n", video.ID, video.Title)

			if err := components.Workspace.EnsureVideoDir(video.ID); err != nil {
				return err
			}
			rawPath, err := components.Downloader.Download(runCtx, video.ID, components.Workspace.VideoDir(video.ID), nil)
			if err != nil {
				return fmt.Errorf("download %s: %w", video.ID, err)
			}
			if !keepDownload {
				defer func() {
					if err := components.Workspace.RemoveRaw(rawPath); err != nil {
						logger.Warn("failed to remove download", logging.Error(err))
					}
				}()
			}

			meta := youtube.UploadMetadata{
				Title:       youtube.ComposeTitle(cfg.Publish.TitlePrefix, video.Title),
				Description: youtube.ReuploadDescription(video.ID),
				Privacy:     cfg.Publish.Privacy,
				Tags:        youtube.MergeTags(cfg.Publish.Tags, ""),
			}
			fmt.Fprintf(stdout, "Uploading as %q\n", meta.Title)
			publishedID, err := components.Catalog.Publish(runCtx, rawPath, meta)
			if err != nil {
				return fmt.Errorf("publish: %w", err)
			}

			if cfg.Publish.PlaylistID != "" && !skipPlaylist {
				if err := components.Catalog.AddToPlaylist(runCtx, cfg.Publish.PlaylistID, publishedID); err != nil {
					fmt.Fprintf(stdout, "Warning: playlist add failed: %v\n", err)
				}
			}

			fmt.Fprintf(stdout, "Published %s\n", youtube.SourceURL(publishedID))
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepDownload, "keep", false, "Keep the downloaded file after publishing")
	cmd.Flags().BoolVar(&skipPlaylist, "no-playlist", false, "Skip the configured playlist add")
	return cmd
}
