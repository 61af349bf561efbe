//go:build !windows

package process

import (
	"context"
	"os"
	"os/exec"
	"syscall"

	"github.com/kballard/go-shellquote"
	"golang.org/x/sys/unix"
)

func shellCommand(ctx context.Context, line string) *exec.Cmd {
	return exec.CommandContext(ctx, "sh", "-c", line)
}

// processGroup puts the shell in its own process group so cancellation
// kills everything it started.
type processGroup struct{}

func newProcessGroup(cmd *exec.Cmd) *processGroup {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
	cmd.Cancel = func() error {
		err := unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
		if err == unix.ESRCH {
			return os.ErrProcessDone
		}
		return err
	}
	return &processGroup{}
}

// attach is a no-op: the group exists from the moment the shell starts.
func (g *processGroup) attach(cmd *exec.Cmd) error { return nil }

func (g *processGroup) release() {}

func quoteLauncher(path string) string {
	return shellquote.Join(path)
}

// exitStatus reports the exit code, or the negated signal number when the
// process was killed by a signal.
func exitStatus(state *os.ProcessState) int {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return -int(ws.Signal())
	}
	return state.ExitCode()
}
