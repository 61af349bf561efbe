package process

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/system"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/textenc"
)

// EncodingEnv is set in the child environment to the configured encoding.
const EncodingEnv = "PYTHONIOENCODING"

// waitDelay bounds how long Wait blocks on output pipes held open by
// processes that survived the kill.
const waitDelay = 2 * time.Second

// Result is the outcome of a command that ran to completion.
type Result struct {
	Command         string
	ExitCode        int
	Stdout          string
	Stderr          string
	StdoutTruncated bool
	StderrTruncated bool
	Sandboxed       bool
	Duration        time.Duration
}

// Format renders the result text: the return code line, then the stdout
// and stderr sections when non-empty.
func (r *Result) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Return code: %d\n", r.ExitCode)

	if r.Stdout != "" {
		sb.WriteString("Output:\n")
		sb.WriteString(r.Stdout)
		sb.WriteString("\n")
		if r.StdoutTruncated {
			sb.WriteString("\n... (output truncated)")
		}
	}

	if r.Stderr != "" {
		sb.WriteString("Errors:\n")
		sb.WriteString(r.Stderr)
		if r.StderrTruncated {
			sb.WriteString("\n... (error output truncated)")
		}
	}

	return sb.String()
}

// Runner executes commands according to a Config.
type Runner struct {
	cfg *config.Config
}

// New returns a Runner for cfg.
func New(cfg *config.Config) *Runner {
	return &Runner{cfg: cfg}
}

// LauncherAvailable reports whether the configured launcher exists as a
// regular file.
func LauncherAvailable(cfg *config.Config) bool {
	path := cfg.LauncherPath()
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Wrap returns the command line that will be handed to the shell and
// whether it goes through the sandbox launcher.
func (r *Runner) Wrap(command string) (string, bool, error) {
	if !r.cfg.SandboxEnabled() {
		return command, false, nil
	}

	launcher := r.cfg.LauncherPath()
	if !LauncherAvailable(r.cfg) {
		if r.cfg.SandboxRequired() {
			return "", false, errors.ExecutionFailure(
				fmt.Sprintf("sandbox launcher %s not found and sandbox is required", launcher), nil)
		}
		logging.Warn("sandbox launcher not found, running command unsandboxed", "launcher", launcher)
		return command, false, nil
	}

	return quoteLauncher(launcher) + " " + command, true, nil
}

// Run executes command and waits for it to finish or time out. A non-zero
// exit status is a Result, not an error.
func (r *Runner) Run(ctx context.Context, command string) (*Result, error) {
	line, sandboxed, err := r.Wrap(command)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, r.cfg.CommandTimeout())
	defer cancel()

	limit := r.cfg.MaxOutputLength()
	stdout, stderr := newCaptureBuffer(limit), newCaptureBuffer(limit)
	cmd := shellCommand(runCtx, line)
	cmd.Dir = r.cfg.Workspace()
	cmd.Env = system.Environ(map[string]string{EncodingEnv: r.cfg.Encoding().Name()})
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay
	group := newProcessGroup(cmd)

	logging.Debug("running command", "command", line, "sandboxed", sandboxed, "timeout", r.cfg.CommandTimeout())

	start := time.Now()
	err = cmd.Start()
	if err == nil {
		if attachErr := group.attach(cmd); attachErr != nil {
			logging.Warn("cannot track child processes", "error", attachErr)
		}
		err = cmd.Wait()
	}
	group.release()
	elapsed := time.Since(start)

	if runCtx.Err() != nil && ctx.Err() == nil {
		logging.Warn("command timed out", "command", command, "timeout", r.cfg.CommandTimeout())
		return nil, errors.ExecutionTimeout(r.cfg.CommandTimeoutSeconds())
	}
	if ctx.Err() != nil {
		return nil, errors.ExecutionFailure("command cancelled", ctx.Err())
	}

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, errors.ExecutionFailure("failed to run command", err)
		}
		exitCode = exitStatus(exitErr.ProcessState)
	}

	res := &Result{
		Command:   line,
		ExitCode:  exitCode,
		Sandboxed: sandboxed,
		Duration:  elapsed,
	}
	codec := r.cfg.Encoding()
	res.Stdout, res.StdoutTruncated = textenc.Truncate(codec.DecodeReplacing(stdout.Bytes()), limit)
	res.Stderr, res.StderrTruncated = textenc.Truncate(codec.DecodeReplacing(stderr.Bytes()), limit)
	res.StdoutTruncated = res.StdoutTruncated || stdout.Truncated()
	res.StderrTruncated = res.StderrTruncated || stderr.Truncated()

	logging.Debug("command finished", "exit_code", exitCode, "duration", elapsed)
	return res, nil
}

// Execute runs command and returns the formatted result text.
func (r *Runner) Execute(ctx context.Context, command string) (string, error) {
	res, err := r.Run(ctx, command)
	if err != nil {
		return "", err
	}
	return res.Format(), nil
}
