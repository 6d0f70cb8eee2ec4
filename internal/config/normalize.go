package config

import (
	"os"
	"strings"
)

// normalize expands paths, applies environment overrides, and trims list
// entries so the rest of the process never re-cleans configuration values.
func (c *Config) normalize() error {
	var err error
	if c.Paths.DownloadDir, err = expandPath(c.Paths.DownloadDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	if c.Paths.BackupDir, err = expandPath(c.Paths.BackupDir); err != nil {
		return err
	}

	if token := strings.TrimSpace(os.Getenv("RECLIP_ACCESS_TOKEN")); token != "" {
		c.YouTube.AccessToken = token
	}

	c.Source.ChannelID = strings.TrimSpace(c.Source.ChannelID)
	c.Source.AllowedCommenters = cleanList(c.Source.AllowedCommenters, false)
	c.Source.IncludeKeywords = cleanList(c.Source.IncludeKeywords, true)
	c.Source.ExcludeKeywords = cleanList(c.Source.ExcludeKeywords, true)
	if c.Source.BatchSize <= 0 {
		c.Source.BatchSize = Default().Source.BatchSize
	}

	c.Publish.Privacy = strings.ToLower(strings.TrimSpace(c.Publish.Privacy))
	c.Publish.TitlePrefix = strings.TrimSpace(c.Publish.TitlePrefix)
	c.Publish.Tags = cleanList(c.Publish.Tags, false)
	c.Publish.PlaylistID = strings.TrimSpace(c.Publish.PlaylistID)
	c.Publish.UploadTimes = strings.TrimSpace(c.Publish.UploadTimes)

	c.YouTube.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.YouTube.APIBaseURL), "/")
	c.YouTube.UploadBaseURL = strings.TrimRight(strings.TrimSpace(c.YouTube.UploadBaseURL), "/")
	c.YouTube.AccessToken = strings.TrimSpace(c.YouTube.AccessToken)

	c.Tools.YtdlpBinary = strings.TrimSpace(c.Tools.YtdlpBinary)
	c.Tools.FFmpegBinary = strings.TrimSpace(c.Tools.FFmpegBinary)
	c.Tools.DownloadFormat = strings.TrimSpace(c.Tools.DownloadFormat)

	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)

	return nil
}

// cleanList trims entries and drops empties; lower forces case folding for
// keyword lists so matching is case-insensitive by construction.
func cleanList(values []string, lower bool) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if lower {
			v = strings.ToLower(v)
		}
		out = append(out, v)
	}
	return out
}
