package health

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/process"
)

// Status represents the overall health of a toolkit configuration.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"

	// ShellProbeTimeout bounds the shell probe run by Check.
	ShellProbeTimeout = 10 * time.Second
)

// CheckResult contains the results of health checks
type CheckResult struct {
	Workspace         string
	WorkspaceExists   bool
	WorkspaceWritable bool
	SandboxEnabled    bool
	SandboxRequired   bool
	Launcher          string
	LauncherPresent   bool
	ShellWorks        bool
	ShellLatency      time.Duration
	ShellError        string
}

// CheckWorkspace reports whether the workspace exists and accepts new
// files.
func CheckWorkspace(workspace string) (exists, writable bool) {
	info, err := os.Stat(workspace)
	if err != nil || !info.IsDir() {
		return false, false
	}
	probe, err := os.CreateTemp(workspace, ".forage-probe-*")
	if err != nil {
		return true, false
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)
	return true, true
}

// CheckShell runs a no-op shell the same way the toolkit runs commands,
// through the launcher when one is in use.
func CheckShell(ctx context.Context, cfg *config.Config) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, ShellProbeTimeout)
	defer cancel()

	res, err := process.New(cfg).Run(ctx, shellProbe)
	if err != nil {
		return 0, err
	}
	if res.ExitCode != 0 {
		return res.Duration, fmt.Errorf("probe exited with code %d", res.ExitCode)
	}
	return res.Duration, nil
}

// Check performs all health checks for cfg. The shell probe is skipped when
// the workspace is unusable.
func Check(ctx context.Context, cfg *config.Config) *CheckResult {
	result := &CheckResult{
		Workspace:       cfg.Workspace(),
		SandboxEnabled:  cfg.SandboxEnabled(),
		SandboxRequired: cfg.SandboxRequired(),
		Launcher:        cfg.LauncherPath(),
		LauncherPresent: process.LauncherAvailable(cfg),
	}

	result.WorkspaceExists, result.WorkspaceWritable = CheckWorkspace(cfg.Workspace())
	if !result.WorkspaceExists {
		return result
	}

	latency, err := CheckShell(ctx, cfg)
	result.ShellLatency = latency
	result.ShellWorks = err == nil
	if err != nil {
		result.ShellError = err.Error()
	}

	return result
}

// Degraded reports whether commands silently run without the sandbox
// that was asked for.
func (r *CheckResult) Degraded() bool {
	return r.SandboxEnabled && !r.LauncherPresent && !r.SandboxRequired
}

// Summary returns the overall status.
func (r *CheckResult) Summary() Status {
	switch {
	case !r.WorkspaceExists, !r.WorkspaceWritable, !r.ShellWorks:
		return StatusUnhealthy
	case r.Degraded():
		return StatusDegraded
	default:
		return StatusHealthy
	}
}

// Problems describes every failed check, one line each.
func (r *CheckResult) Problems() []string {
	var problems []string
	if !r.WorkspaceExists {
		problems = append(problems, fmt.Sprintf("workspace %s does not exist", r.Workspace))
	} else if !r.WorkspaceWritable {
		problems = append(problems, fmt.Sprintf("workspace %s is not writable", r.Workspace))
	}
	if r.SandboxEnabled && !r.LauncherPresent {
		if r.SandboxRequired {
			problems = append(problems, fmt.Sprintf("sandbox launcher %s not found; commands will be refused", r.Launcher))
		} else {
			problems = append(problems, fmt.Sprintf("sandbox launcher %s not found; commands run unsandboxed", r.Launcher))
		}
	}
	if r.WorkspaceExists && !r.ShellWorks {
		problems = append(problems, fmt.Sprintf("shell probe failed: %s", r.ShellError))
	}
	return problems
}
