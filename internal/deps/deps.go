// Package deps reports on the external binaries the pipeline shells
// out to: whether each configured command resolves on PATH and, when
// it does, what version it identifies itself as.
package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const probeTimeout = 5 * time.Second

// Requirement names an external tool the pipeline invokes. VersionArgs,
// when set, are passed to the resolved binary to read its version.
type Requirement struct {
	Name        string
	Command     string
	VersionArgs []string
	Description string
	Optional    bool
}

// Status reports the availability of one requirement. Version is the
// first line the tool printed for its version invocation, empty when
// the probe was skipped or failed.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Version     string
	Detail      string
}

// CheckBinaries resolves each requirement on PATH and probes versions
// for diagnostics. A failed version probe does not mark the tool
// unavailable; the binary may still work for the pipeline's calls.
func CheckBinaries(ctx context.Context, requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		if len(req.VersionArgs) > 0 {
			status.Version = probeVersion(ctx, cmd, req.VersionArgs)
		}
		results = append(results, status)
	}
	return results
}

// probeVersion runs the tool's version invocation and returns the
// first output line.
func probeVersion(ctx context.Context, binary string, args []string) string {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	out, err := exec.CommandContext(probeCtx, binary, args...).Output()
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(line)
}
