// Package ytdlp downloads source videos by shelling out to yt-dlp.
// Command execution sits behind an Executor so tests run without the
// binary installed.
package ytdlp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"reclip/internal/config"
	"reclip/internal/fileutil"
)

// containerExtensions lists output containers in probe order.
var containerExtensions = []string{"mp4", "mkv", "webm"}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onStdout func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps yt-dlp CLI interactions.
type Client struct {
	binary  string
	format  string
	timeout time.Duration
	exec    Executor
}

// New constructs a yt-dlp client from configuration.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	binary := strings.TrimSpace(cfg.Tools.YtdlpBinary)
	if binary == "" {
		return nil, errors.New("yt-dlp binary required")
	}
	client := &Client{
		binary:  binary,
		format:  strings.TrimSpace(cfg.Tools.DownloadFormat),
		timeout: time.Duration(cfg.Tools.DownloadTimeout) * time.Second,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Download fetches a video into destDir and returns the path of the
// resulting file. The output template pins the filename to the video
// ID so later runs find it again.
func (c *Client) Download(ctx context.Context, videoID, destDir string, onProgress func(string)) (string, error) {
	if videoID == "" {
		return "", errors.New("video id required")
	}
	if destDir == "" {
		return "", errors.New("destination directory required")
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create destination: %w", err)
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{
		"--no-warnings",
		"--no-progress",
		"--newline",
		"--retries", "10",
		"--fragment-retries", "10",
		"--socket-timeout", "30",
		"--merge-output-format", "mp4",
		"--output", filepath.Join(destDir, "%(id)s.%(ext)s"),
	}
	if c.format != "" {
		args = append(args, "--format", c.format)
	}
	args = append(args, "https://www.youtube.com/watch?v="+videoID)

	if err := c.exec.Run(runCtx, c.binary, args, func(line string) {
		if onProgress != nil {
			onProgress(line)
		}
	}); err != nil {
		return "", fmt.Errorf("yt-dlp download: %w", err)
	}

	for _, ext := range containerExtensions {
		path := filepath.Join(destDir, videoID+"."+ext)
		if fileutil.NonEmptyFile(path) {
			return path, nil
		}
	}
	return "", fmt.Errorf("yt-dlp reported success but produced no output for %s", videoID)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onStdout func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	consume := func(reader io.Reader) {
		defer wg.Done()
		scanner := bufio.NewScanner(reader)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			if onStdout != nil {
				onStdout(scanner.Text())
			}
		}
	}
	wg.Add(2)
	go consume(stdout)
	go consume(stderr)
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("yt-dlp exited: %w", err)
	}
	return nil
}
