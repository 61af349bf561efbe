package process

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/testutil"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestResultFormat(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{
			name: "exit code only",
			res:  Result{ExitCode: 7},
			want: "Return code: 7\n",
		},
		{
			name: "stdout",
			res:  Result{Stdout: "hi\n"},
			want: "Return code: 0\nOutput:\nhi\n\n",
		},
		{
			name: "stderr",
			res:  Result{ExitCode: 1, Stderr: "bad"},
			want: "Return code: 1\nErrors:\nbad",
		},
		{
			name: "both truncated",
			res:  Result{Stdout: "abc", StdoutTruncated: true, Stderr: "def", StderrTruncated: true},
			want: "Return code: 0\nOutput:\nabc\n\n... (output truncated)Errors:\ndef\n... (error output truncated)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.Format())
		})
	}
}

func TestExecuteExitCode(t *testing.T) {
	skipOnWindows(t)
	env := testutil.NewTestEnv(t)

	out, err := New(env.Config).Execute(context.Background(), "exit 7")
	require.NoError(t, err)
	assert.Equal(t, "Return code: 7\n", out)
}

func TestRunCapturesStreams(t *testing.T) {
	skipOnWindows(t)
	env := testutil.NewTestEnv(t)

	res, err := New(env.Config).Run(context.Background(), "echo hello; echo oops 1>&2")
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hello\n", res.Stdout)
	assert.Equal(t, "oops\n", res.Stderr)
	assert.False(t, res.Sandboxed)
	assert.Equal(t, "Return code: 0\nOutput:\nhello\n\nErrors:\noops\n", res.Format())
}

func TestRunTruncatesEachStream(t *testing.T) {
	skipOnWindows(t)
	env := testutil.NewTestEnv(t, func(s *config.Settings) { s.MaxOutputLength = 5 })

	res, err := New(env.Config).Run(context.Background(), "printf 1234567890; printf abc 1>&2")
	require.NoError(t, err)
	assert.Equal(t, "12345", res.Stdout)
	assert.True(t, res.StdoutTruncated)
	assert.Equal(t, "abc", res.Stderr)
	assert.False(t, res.StderrTruncated)
	assert.Contains(t, res.Format(), "... (output truncated)")
	assert.NotContains(t, res.Format(), "error output truncated")
}

func TestRunTruncatesByCharacter(t *testing.T) {
	skipOnWindows(t)
	env := testutil.NewTestEnv(t, func(s *config.Settings) { s.MaxOutputLength = 2 })

	res, err := New(env.Config).Run(context.Background(), "printf 'héllo'")
	require.NoError(t, err)
	assert.Equal(t, "hé", res.Stdout)
	assert.True(t, res.StdoutTruncated)
}

func TestRunBoundsCapturedOutput(t *testing.T) {
	skipOnWindows(t)
	env := testutil.NewTestEnv(t, func(s *config.Settings) { s.MaxOutputLength = 10 })

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	res, err := New(env.Config).Run(context.Background(), "head -c 50000000 /dev/zero | tr '\\0' a")
	runtime.ReadMemStats(&after)

	require.NoError(t, err)
	assert.Equal(t, "aaaaaaaaaa", res.Stdout)
	assert.True(t, res.StdoutTruncated)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(16<<20), "output was buffered in full")
}

func TestRunReplacesInvalidOutput(t *testing.T) {
	skipOnWindows(t)
	env := testutil.NewTestEnv(t)

	res, err := New(env.Config).Run(context.Background(), `printf '\377ok'`)
	require.NoError(t, err)
	assert.Equal(t, "�ok", res.Stdout)
}

func TestRunInWorkspace(t *testing.T) {
	skipOnWindows(t)
	env := testutil.NewTestEnv(t)

	res, err := New(env.Config).Run(context.Background(), "pwd -P")
	require.NoError(t, err)
	assert.Equal(t, env.Workspace, strings.TrimSpace(res.Stdout))
}

func TestRunSetsEncodingEnv(t *testing.T) {
	skipOnWindows(t)
	env := testutil.NewTestEnv(t, func(s *config.Settings) { s.DefaultEncoding = "latin1" })

	res, err := New(env.Config).Run(context.Background(), "echo $"+EncodingEnv)
	require.NoError(t, err)
	assert.Equal(t, env.Config.Encoding().Name()+"\n", res.Stdout)
}

func TestRunSignalExit(t *testing.T) {
	skipOnWindows(t)
	env := testutil.NewTestEnv(t)

	res, err := New(env.Config).Run(context.Background(), "kill -9 $$")
	require.NoError(t, err)
	assert.Equal(t, -9, res.ExitCode)
}

func TestRunTimeoutKillsProcessGroup(t *testing.T) {
	skipOnWindows(t)
	env := testutil.NewTestEnv(t, func(s *config.Settings) { s.CommandTimeout = 1 })

	start := time.Now()
	_, err := New(env.Config).Run(context.Background(), "sleep 30 & echo $! > child.pid; wait")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrExecutionTimeout), "error = %v", err)
	assert.Equal(t, "command timed out after 1s", err.Error())
	assert.Less(t, time.Since(start), 10*time.Second)

	pid := readPID(t, filepath.Join(env.Workspace, "child.pid"))
	assert.Eventually(t, func() bool { return !processAlive(pid) }, 5*time.Second, 50*time.Millisecond,
		"background child %d survived the timeout", pid)
}

func TestRunContextCancelled(t *testing.T) {
	skipOnWindows(t)
	env := testutil.NewTestEnv(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := New(env.Config).Run(ctx, "sleep 30")
	assert.True(t, errors.Is(err, errors.ErrExecutionFailure), "error = %v", err)
}

func TestRunStartFailure(t *testing.T) {
	skipOnWindows(t)
	env := testutil.NewTestEnv(t)
	require.NoError(t, os.RemoveAll(env.Workspace))

	_, err := New(env.Config).Run(context.Background(), "true")
	assert.True(t, errors.Is(err, errors.ErrExecutionFailure), "error = %v", err)
}

func TestSandboxLauncherPrefix(t *testing.T) {
	skipOnWindows(t)
	env := testutil.NewTestEnv(t)
	launcher := env.FakeLauncher("launcher", "SANDBOXED")
	cfg := env.Reconfigure(func(s *config.Settings) {
		s.SandboxEnabled = true
		s.SandboxPath = launcher
	})
	r := New(cfg)

	line, sandboxed, err := r.Wrap("echo hi")
	require.NoError(t, err)
	assert.True(t, sandboxed)
	assert.Equal(t, shellquote.Join(launcher)+" echo hi", line)

	res, err := r.Run(context.Background(), "echo hi")
	require.NoError(t, err)
	assert.True(t, res.Sandboxed)
	assert.Equal(t, "SANDBOXED\nhi\n", res.Stdout)

	res, err = r.Run(context.Background(), "sh -c 'exit 3'")
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
}

func TestSandboxLauncherReceivesArguments(t *testing.T) {
	skipOnWindows(t)
	env := testutil.NewTestEnv(t)
	launcher := env.FakeLauncher("launch dir launcher", "SANDBOXED")
	cfg := env.Reconfigure(func(s *config.Settings) {
		s.SandboxEnabled = true
		s.SandboxPath = launcher
	})

	res, err := New(cfg).Run(context.Background(), `printf '%s|' 'a b' "c'd" e`)
	require.NoError(t, err)
	assert.True(t, res.Sandboxed)
	assert.Equal(t, "SANDBOXED\na b|c'd|e|", res.Stdout)

	// Builtins are not programs; a launcher cannot execute them.
	res, err = New(cfg).Run(context.Background(), "exit 0")
	require.NoError(t, err)
	assert.Equal(t, 127, res.ExitCode)
}

func TestSandboxDisabledIgnoresLauncher(t *testing.T) {
	skipOnWindows(t)
	env := testutil.NewTestEnv(t)
	launcher := env.FakeLauncher("launcher", "SANDBOXED")
	cfg := env.Reconfigure(func(s *config.Settings) { s.SandboxPath = launcher })

	res, err := New(cfg).Run(context.Background(), "echo hi")
	require.NoError(t, err)
	assert.False(t, res.Sandboxed)
	assert.Equal(t, "hi\n", res.Stdout)
}

func TestSandboxMissingLauncherFallsBack(t *testing.T) {
	skipOnWindows(t)
	env := testutil.NewTestEnv(t)
	cfg := env.Reconfigure(func(s *config.Settings) {
		s.SandboxEnabled = true
		s.SandboxPath = filepath.Join(env.TmpDir, "missing")
	})

	res, err := New(cfg).Run(context.Background(), "echo direct")
	require.NoError(t, err)
	assert.False(t, res.Sandboxed)
	assert.Equal(t, "direct\n", res.Stdout)
}

func TestSandboxRequiredMissingLauncher(t *testing.T) {
	env := testutil.NewTestEnv(t)
	cfg := env.Reconfigure(func(s *config.Settings) {
		s.SandboxEnabled = true
		s.SandboxRequired = true
		s.SandboxPath = filepath.Join(env.TmpDir, "missing")
	})

	_, err := New(cfg).Run(context.Background(), "echo never")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrExecutionFailure))
	assert.Contains(t, err.Error(), "sandbox is required")
}

func TestLauncherAvailable(t *testing.T) {
	env := testutil.NewTestEnv(t)
	assert.False(t, LauncherAvailable(env.Config))

	cfg := env.Reconfigure(func(s *config.Settings) { s.SandboxPath = env.TmpDir })
	assert.Equal(t, filepath.Join(env.TmpDir, "Start.exe"), cfg.LauncherPath())
	assert.False(t, LauncherAvailable(cfg))

	env.Outside("Start.exe", []byte("binary"))
	assert.True(t, LauncherAvailable(cfg))
}
