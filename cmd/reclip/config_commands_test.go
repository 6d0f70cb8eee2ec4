package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("output = %q", out)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	for _, want := range []string{"[source]", "[publish]", "[youtube]", "channel_id"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("sample missing %q", want)
		}
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if _, err := runCommand(t, "config", "init", "--path", target); err != nil {
		t.Fatalf("first init: %v", err)
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("second init should fail without --overwrite")
	}
	if _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("overwrite init: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	configPath := writeConfig(t, "")

	out, err := runCommand(t, "-c", configPath, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "Configuration valid") {
		t.Fatalf("output = %q", out)
	}
}

func TestConfigValidateRejectsBadWindow(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "reclip.toml")
	content := `[source]
channel_id = "UCtest"
allowed_commenters = ["trusted"]
include_keywords = ["asmr"]

[publish]
upload_times = "25:00"

[youtube]
access_token = "token"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := runCommand(t, "config", "validate", "-c", path); err == nil {
		t.Fatal("expected validation failure for invalid upload time")
	}
}
