package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains working directory configuration.
type Paths struct {
	DownloadDir string `toml:"download_dir"`
	LogDir      string `toml:"log_dir"`
	BackupDir   string `toml:"backup_dir"`
}

// Source describes the watched channel and the comment trust boundary.
type Source struct {
	ChannelID         string   `toml:"channel_id"`
	AllowedCommenters []string `toml:"allowed_commenters"`
	IncludeKeywords   []string `toml:"include_keywords"`
	ExcludeKeywords   []string `toml:"exclude_keywords"`
	BatchSize         int      `toml:"batch_size"`
}

// Publish configures the destination channel side of the pipeline.
type Publish struct {
	Privacy      string   `toml:"privacy"`
	TitlePrefix  string   `toml:"title_prefix"`
	Tags         []string `toml:"tags"`
	PlaylistID   string   `toml:"playlist_id"`
	UploadTimes  string   `toml:"upload_times"`
	StrictMinute bool     `toml:"strict_minute"`
}

// YouTube contains Data API connection settings.
type YouTube struct {
	APIBaseURL     string `toml:"api_base_url"`
	UploadBaseURL  string `toml:"upload_base_url"`
	AccessToken    string `toml:"access_token"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Tools configures the external media binaries.
type Tools struct {
	YtdlpBinary      string `toml:"ytdlp_binary"`
	FFmpegBinary     string `toml:"ffmpeg_binary"`
	DownloadFormat   string `toml:"download_format"`
	DownloadTimeout  int    `toml:"download_timeout"`
	TransformTimeout int    `toml:"transform_timeout"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	Publishes      bool   `toml:"publishes"`
	Passes         bool   `toml:"passes"`
	Errors         bool   `toml:"errors"`
}

// Workflow contains retry budgets and scheduler pacing.
type Workflow struct {
	ErrorRetryInterval int `toml:"error_retry_interval"`
	RetryMaxAttempts   int `toml:"retry_max_attempts"`
	RetryBaseDelay     int `toml:"retry_base_delay"`
	SleepTick          int `toml:"sleep_tick"`
	MinFreeSpaceGiB    int `toml:"min_free_space_gib"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for reclip.
type Config struct {
	Paths         Paths         `toml:"paths"`
	Source        Source        `toml:"source"`
	Publish       Publish       `toml:"publish"`
	YouTube       YouTube       `toml:"youtube"`
	Tools         Tools         `toml:"tools"`
	Notifications Notifications `toml:"notifications"`
	Workflow      Workflow      `toml:"workflow"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/reclip/config.toml")
}

// SampleConfig returns the embedded sample configuration used by
// `reclip config init`.
func SampleConfig() string {
	return sampleConfig
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// ExpandPath resolves ~ and relative segments to an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

// EnsureDirectories creates the working directories the pipeline writes to.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DownloadDir, c.Paths.LogDir, c.Paths.BackupDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	projectPath, err := filepath.Abs("reclip.toml")
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}
