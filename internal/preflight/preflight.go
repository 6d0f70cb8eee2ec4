package preflight

import (
	"context"
	"fmt"

	"reclip/internal/config"
	"reclip/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every applicable preflight check for the given
// config. The scheduler refuses to start while any required check
// fails.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Download directory", cfg.Paths.DownloadDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckFreeSpace(cfg.Paths.DownloadDir, cfg.Workflow.MinFreeSpaceGiB),
		CheckAPI(ctx, cfg),
	}
	if cfg.Paths.BackupDir != "" {
		results = append(results, CheckDirectoryAccess("Backup directory", cfg.Paths.BackupDir))
	}

	for _, status := range CheckTools(ctx, cfg) {
		result := Result{Name: status.Name, Passed: status.Available, Detail: status.Detail}
		if status.Available {
			result.Detail = status.Command
			if status.Version != "" {
				result.Detail = fmt.Sprintf("%s (%s)", status.Command, status.Version)
			}
		}
		if status.Optional && !status.Available {
			result.Passed = true
			result.Detail = status.Detail + " (optional)"
		}
		results = append(results, result)
	}
	return results
}

// Passed reports whether every check in results succeeded.
func Passed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}

// CheckTools evaluates the external binaries the pipeline shells out to.
func CheckTools(ctx context.Context, cfg *config.Config) []deps.Status {
	return deps.CheckBinaries(ctx, []deps.Requirement{
		{
			Name:        "yt-dlp",
			Command:     cfg.Tools.YtdlpBinary,
			VersionArgs: []string{"--version"},
			Description: "Required for downloading source videos",
		},
		{
			Name:        "FFmpeg",
			Command:     cfg.Tools.FFmpegBinary,
			VersionArgs: []string{"-version"},
			Description: "Required for cutting and stitching clips",
		},
	})
}
