package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"reclip/internal/config"
)

// CheckDirectoryAccess verifies that the directory exists and is
// readable, writable, and traversable. Missing directories are created
// first since EnsureDirectories normally runs before this.
func CheckDirectoryAccess(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(path, 0o755); err != nil {
				return Result{Name: name, Detail: fmt.Sprintf("%s (error: create: %v)", path, err)}
			}
			info, err = os.Stat(path)
		}
		if err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
		}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFreeSpace verifies the download filesystem has at least
// minGiB available.
func CheckFreeSpace(path string, minGiB int) Result {
	const name = "Free space"
	if minGiB <= 0 {
		return Result{Name: name, Passed: true, Detail: "check disabled"}
	}
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	freeGiB := stat.Bavail * uint64(stat.Bsize) / (1 << 30)
	if freeGiB < uint64(minGiB) {
		return Result{Name: name, Detail: fmt.Sprintf("%d GiB free, need %d GiB", freeGiB, minGiB)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d GiB free", freeGiB)}
}

// CheckAPI verifies the Data API is reachable and the token is
// accepted, using a single cheap channel lookup.
func CheckAPI(ctx context.Context, cfg *config.Config) Result {
	const name = "YouTube API"
	base := strings.TrimRight(strings.TrimSpace(cfg.YouTube.APIBaseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing api base url"}
	}
	if strings.TrimSpace(cfg.YouTube.AccessToken) == "" {
		return Result{Name: name, Detail: "missing access token"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := url.Values{
		"part": {"id"},
		"id":   {cfg.Source.ChannelID},
	}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, base+"/channels?"+query.Encode(), nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("reachability check failed (%v)", err)}
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(cfg.YouTube.AccessToken))

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: summarizeNetError(err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return Result{Name: name, Passed: true, Detail: "API reachable"}
	case http.StatusUnauthorized, http.StatusForbidden:
		return Result{Name: name, Detail: "auth failed (invalid or expired token)"}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("reachability check failed (%d)", resp.StatusCode)}
	}
}

func summarizeNetError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "reachability check timed out (API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "reachability check timed out (API unreachable)"
	}
	return err.Error()
}
