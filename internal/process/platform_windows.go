//go:build windows

package process

import (
	"context"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"golang.org/x/sys/windows"
)

// shellCommand hands line to cmd.exe verbatim. /S with the outer quotes
// makes cmd strip exactly that pair and keep every quote inside line.
func shellCommand(ctx context.Context, line string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "cmd")
	cmd.SysProcAttr = &syscall.SysProcAttr{CmdLine: windowsCmdLine(line)}
	return cmd
}

func windowsCmdLine(line string) string {
	return `cmd /S /C "` + line + `"`
}

// processGroup tracks the shell and its descendants in a job object so
// cancellation terminates all of them.
type processGroup struct {
	mu  sync.Mutex
	job windows.Handle
}

func newProcessGroup(cmd *exec.Cmd) *processGroup {
	g := &processGroup{}
	cmd.Cancel = func() error {
		g.mu.Lock()
		job := g.job
		g.mu.Unlock()
		if job != 0 {
			if err := windows.TerminateJobObject(job, 1); err == nil {
				return nil
			}
		}
		return cmd.Process.Kill()
	}
	return g
}

// attach assigns the started shell to a new job object. Processes it
// spawns afterwards join the job automatically.
func (g *processGroup) attach(cmd *exec.Cmd) error {
	job, err := windows.CreateJobObject(nil, nil)
	if err != nil {
		return err
	}
	proc, err := windows.OpenProcess(windows.PROCESS_SET_QUOTA|windows.PROCESS_TERMINATE, false, uint32(cmd.Process.Pid))
	if err != nil {
		windows.CloseHandle(job)
		return err
	}
	defer windows.CloseHandle(proc)

	if err := windows.AssignProcessToJobObject(job, proc); err != nil {
		windows.CloseHandle(job)
		return err
	}

	g.mu.Lock()
	g.job = job
	g.mu.Unlock()
	return nil
}

func (g *processGroup) release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.job != 0 {
		windows.CloseHandle(g.job)
		g.job = 0
	}
}

func quoteLauncher(path string) string {
	return `"` + path + `"`
}

func exitStatus(state *os.ProcessState) int {
	return state.ExitCode()
}
