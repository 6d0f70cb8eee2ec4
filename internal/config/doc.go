// Package config loads, normalizes, and validates the TOML configuration
// for the reclip pipeline.
//
// Configuration sections by subsystem:
//   - Paths: working directories for downloads, logs, and ledger backups
//   - Source: the watched channel, trusted commenters, and keyword filters
//   - Publish: destination privacy, title prefix, tags, playlist, schedule
//   - YouTube: Data API endpoints and credentials
//   - Tools: yt-dlp and ffmpeg binaries plus their timeouts
//   - Notifications: ntfy push notification settings
//   - Workflow: retry budgets and scheduler pacing
//   - Logging: log format and level
//
// Load resolves the config path (explicit flag, then
// ~/.config/reclip/config.toml, then ./reclip.toml), merges the file over
// defaults, expands paths, and validates. Validation failures are fatal at
// startup; nothing else in the process is allowed to run with a broken
// configuration.
package config
