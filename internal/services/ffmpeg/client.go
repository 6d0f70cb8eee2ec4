// Package ffmpeg cuts clips out of a source video and stitches them
// into a compilation by shelling out to ffmpeg. Cuts re-encode so
// segment boundaries land exactly; the final merge is a stream copy
// over the concat demuxer.
package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"reclip/internal/config"
	"reclip/internal/fileutil"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onOutput func(string)) error
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

// Client wraps ffmpeg CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
}

// New constructs an ffmpeg client from configuration.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	binary := strings.TrimSpace(cfg.Tools.FFmpegBinary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	client := &Client{
		binary:  binary,
		timeout: time.Duration(cfg.Tools.TransformTimeout) * time.Second,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

var durationPattern = regexp.MustCompile(`Duration:\s*(\d+):(\d\d):(\d\d)(?:\.\d+)?`)

// Duration returns the length of a media file in whole seconds. It
// runs a bare probe invocation and reads the Duration line; the probe
// exits non-zero because no output file is given, which is fine as
// long as the duration was seen.
func (c *Client) Duration(ctx context.Context, input string) (int, error) {
	runCtx, cancel := c.boundContext(ctx)
	defer cancel()

	var seconds int
	var found bool
	runErr := c.exec.Run(runCtx, c.binary, []string{"-hide_banner", "-i", input}, func(line string) {
		if found {
			return
		}
		match := durationPattern.FindStringSubmatch(line)
		if match == nil {
			return
		}
		hours, _ := strconv.Atoi(match[1])
		minutes, _ := strconv.Atoi(match[2])
		secs, _ := strconv.Atoi(match[3])
		seconds = hours*3600 + minutes*60 + secs
		found = true
	})
	if !found {
		if runErr != nil {
			return 0, fmt.Errorf("probe duration: %w", runErr)
		}
		return 0, fmt.Errorf("probe duration: no duration reported for %s", input)
	}
	return seconds, nil
}

// Cut re-encodes the [start, end) span of input into output. Times are
// whole seconds; end must be greater than start.
func (c *Client) Cut(ctx context.Context, input, output string, start, end int) error {
	if end <= start {
		return fmt.Errorf("cut span %d-%d is empty", start, end)
	}
	runCtx, cancel := c.boundContext(ctx)
	defer cancel()

	args := []string{
		"-hide_banner", "-y",
		"-i", input,
		"-ss", strconv.Itoa(start),
		"-to", strconv.Itoa(end),
		"-c:v", "libx264",
		"-c:a", "aac",
		"-r", "24",
		output,
	}
	if err := c.exec.Run(runCtx, c.binary, args, nil); err != nil {
		return fmt.Errorf("ffmpeg cut: %w", err)
	}
	if !fileutil.NonEmptyFile(output) {
		return fmt.Errorf("ffmpeg cut produced no output at %s", output)
	}
	return nil
}

// Concat stitches the clips into output in order, stream-copying since
// every clip shares the cut stage's encode settings. The concat list
// file lives next to the output and is removed afterwards.
func (c *Client) Concat(ctx context.Context, clips []string, output string) error {
	if len(clips) == 0 {
		return errors.New("no clips to concatenate")
	}
	runCtx, cancel := c.boundContext(ctx)
	defer cancel()

	listPath := output + ".list"
	var list strings.Builder
	for _, clip := range clips {
		fmt.Fprintf(&list, "file '%s'\n", strings.ReplaceAll(clip, "'", `'\''`))
	}
	if err := os.WriteFile(listPath, []byte(list.String()), 0o644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	defer os.Remove(listPath)

	args := []string{
		"-hide_banner", "-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		output,
	}
	if err := c.exec.Run(runCtx, c.binary, args, nil); err != nil {
		return fmt.Errorf("ffmpeg concat: %w", err)
	}
	if !fileutil.NonEmptyFile(output) {
		return fmt.Errorf("ffmpeg concat produced no output at %s", output)
	}
	return nil
}

func (c *Client) boundContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onOutput func(string)) error {
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
			if onOutput != nil {
				onOutput(scanner.Text())
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
		return fmt.Errorf("ffmpeg exited: %w", err)
	}
	return nil
}
