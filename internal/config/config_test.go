package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reclip/internal/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
[source]
channel_id = "UCabc123"
allowed_commenters = ["trusted"]
include_keywords = ["ASMR"]

[youtube]
access_token = "token"
`

func TestLoadMinimalConfig(t *testing.T) {
	path := writeConfig(t, minimalConfig)
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q exists = %v", resolved, exists)
	}
	if cfg.Source.ChannelID != "UCabc123" {
		t.Fatalf("channel id = %q", cfg.Source.ChannelID)
	}
	if cfg.Publish.Privacy != "private" {
		t.Fatalf("default privacy = %q", cfg.Publish.Privacy)
	}
	if cfg.Tools.YtdlpBinary != "yt-dlp" {
		t.Fatalf("default ytdlp binary = %q", cfg.Tools.YtdlpBinary)
	}
}

func TestLoadLowercasesKeywords(t *testing.T) {
	path := writeConfig(t, minimalConfig)
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Source.IncludeKeywords) != 1 || cfg.Source.IncludeKeywords[0] != "asmr" {
		t.Fatalf("include keywords = %v, want [asmr]", cfg.Source.IncludeKeywords)
	}
}

func TestLoadMissingChannelID(t *testing.T) {
	path := writeConfig(t, `
[source]
allowed_commenters = ["trusted"]
include_keywords = ["asmr"]

[youtube]
access_token = "token"
`)
	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "channel_id") {
		t.Fatalf("expected channel_id error, got %v", err)
	}
}

func TestLoadMissingCommenters(t *testing.T) {
	path := writeConfig(t, `
[source]
channel_id = "UCabc123"
include_keywords = ["asmr"]

[youtube]
access_token = "token"
`)
	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "allowed_commenters") {
		t.Fatalf("expected allowed_commenters error, got %v", err)
	}
}

func TestLoadRejectsBadPrivacy(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
[publish]
privacy = "secret"
upload_times = "10:00"
`)
	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "privacy") {
		t.Fatalf("expected privacy error, got %v", err)
	}
}

func TestLoadRejectsBadUploadTimes(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
[publish]
upload_times = "25:99"
`)
	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "upload_times") {
		t.Fatalf("expected upload_times error, got %v", err)
	}
}

func TestAccessTokenEnvOverride(t *testing.T) {
	t.Setenv("RECLIP_ACCESS_TOKEN", "env-token")
	path := writeConfig(t, minimalConfig)
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.YouTube.AccessToken != "env-token" {
		t.Fatalf("access token = %q, want env override", cfg.YouTube.AccessToken)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DownloadDir = filepath.Join(base, "downloads")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.BackupDir = filepath.Join(base, "backups")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DownloadDir, cfg.Paths.LogDir, cfg.Paths.BackupDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s", dir)
		}
	}
}

func TestSampleConfigParses(t *testing.T) {
	path := writeConfig(t, config.SampleConfig())
	// The sample leaves required fields empty, so Load must fail validation
	// but not parsing.
	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "channel_id") {
		t.Fatalf("expected validation failure on empty sample, got %v", err)
	}
}
