package config

// Default returns the configuration seeded with built-in defaults. File
// values are merged over this by Load.
func Default() Config {
	return Config{
		Paths: Paths{
			DownloadDir: "~/.local/share/reclip/downloads",
			LogDir:      "~/.local/share/reclip/logs",
			BackupDir:   "~/.local/share/reclip/backups",
		},
		Source: Source{
			BatchSize: 10,
		},
		Publish: Publish{
			Privacy:     "private",
			TitlePrefix: "[ASMR Clip]",
			Tags:        []string{"ASMR", "relaxing"},
			UploadTimes: "10:00,18:00",
		},
		YouTube: YouTube{
			APIBaseURL:     "https://www.googleapis.com/youtube/v3",
			UploadBaseURL:  "https://www.googleapis.com/upload/youtube/v3",
			RequestTimeout: 30,
		},
		Tools: Tools{
			YtdlpBinary:      "yt-dlp",
			FFmpegBinary:     "ffmpeg",
			DownloadFormat:   "best[height<=720][ext=mp4]/best[height<=720]",
			DownloadTimeout:  3600,
			TransformTimeout: 1800,
		},
		Notifications: Notifications{
			RequestTimeout: 10,
			Publishes:      true,
			Passes:         true,
			Errors:         true,
		},
		Workflow: Workflow{
			ErrorRetryInterval: 300,
			RetryMaxAttempts:   3,
			RetryBaseDelay:     1,
			SleepTick:          1,
			MinFreeSpaceGiB:    5,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}
