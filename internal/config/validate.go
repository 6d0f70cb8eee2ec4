package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var validPrivacy = map[string]struct{}{
	"private":  {},
	"unlisted": {},
	"public":   {},
}

// Validate ensures the configuration is usable. A validation failure at
// startup is fatal before any scheduling begins.
func (c *Config) Validate() error {
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validatePublish(); err != nil {
		return err
	}
	if err := c.validateYouTube(); err != nil {
		return err
	}
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSource() error {
	if c.Source.ChannelID == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/reclip/config.toml"
		}
		return fmt.Errorf("source.channel_id is required. Edit %s (create with 'reclip config init')", defaultPath)
	}
	if len(c.Source.AllowedCommenters) == 0 {
		return errors.New("source.allowed_commenters must list at least one trusted commenter")
	}
	if len(c.Source.IncludeKeywords) == 0 {
		return errors.New("source.include_keywords must list at least one keyword")
	}
	return nil
}

func (c *Config) validatePublish() error {
	if _, ok := validPrivacy[c.Publish.Privacy]; !ok {
		return fmt.Errorf("publish.privacy must be one of private, unlisted, public (got %q)", c.Publish.Privacy)
	}
	if c.Publish.UploadTimes == "" {
		return errors.New("publish.upload_times must not be empty")
	}
	for _, entry := range strings.Split(c.Publish.UploadTimes, ",") {
		if err := validateClockEntry(entry); err != nil {
			return fmt.Errorf("publish.upload_times: %w", err)
		}
	}
	return nil
}

func (c *Config) validateYouTube() error {
	if c.YouTube.APIBaseURL == "" {
		return errors.New("youtube.api_base_url must be set")
	}
	if c.YouTube.UploadBaseURL == "" {
		return errors.New("youtube.upload_base_url must be set")
	}
	if c.YouTube.AccessToken == "" {
		return errors.New("youtube.access_token is required. Set RECLIP_ACCESS_TOKEN or add it to the config file")
	}
	return nil
}

func (c *Config) validateTools() error {
	if c.Tools.YtdlpBinary == "" {
		return errors.New("tools.ytdlp_binary must be set")
	}
	if c.Tools.FFmpegBinary == "" {
		return errors.New("tools.ffmpeg_binary must be set")
	}
	if c.Tools.DownloadFormat == "" {
		return errors.New("tools.download_format must be set")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.RetryMaxAttempts < 1 {
		return errors.New("workflow.retry_max_attempts must be at least 1")
	}
	if c.Workflow.SleepTick < 1 {
		return errors.New("workflow.sleep_tick must be at least 1 second")
	}
	return nil
}

func validateClockEntry(entry string) error {
	parts := strings.Split(strings.TrimSpace(entry), ":")
	if len(parts) != 2 {
		return fmt.Errorf("invalid time %q, expected HH:MM", entry)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return fmt.Errorf("invalid hour in %q", entry)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return fmt.Errorf("invalid minute in %q", entry)
	}
	return nil
}
