package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/config"
)

// TestEnv holds a temporary workspace and the configuration built for it.
type TestEnv struct {
	T *testing.T

	// TmpDir is the canonical temp directory; it lies outside Workspace.
	TmpDir    string
	Workspace string
	Settings  config.Settings
	Config    *config.Config
}

// NewTestEnv creates a workspace under a fresh temp dir and a Config for it
// with sandboxing disabled. Options adjust the settings before the Config
// is built.
func NewTestEnv(t *testing.T, opts ...func(*config.Settings)) *TestEnv {
	t.Helper()

	tmpDir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}

	s := config.DefaultSettings()
	s.Workspace = filepath.Join(tmpDir, "workspace")
	s.SandboxEnabled = false
	s.SandboxPath = filepath.Join(tmpDir, "no-launcher")
	for _, opt := range opts {
		opt(&s)
	}

	cfg, err := config.New(s)
	if err != nil {
		t.Fatalf("Failed to build config: %v", err)
	}

	return &TestEnv{
		T:         t,
		TmpDir:    tmpDir,
		Workspace: cfg.Workspace(),
		Settings:  s,
		Config:    cfg,
	}
}

// Reconfigure replaces the environment's Config with one built from the
// current settings adjusted by mutate.
func (e *TestEnv) Reconfigure(mutate func(*config.Settings)) *config.Config {
	e.T.Helper()

	mutate(&e.Settings)
	cfg, err := config.New(e.Settings)
	if err != nil {
		e.T.Fatalf("Failed to rebuild config: %v", err)
	}
	e.Config = cfg
	e.Workspace = cfg.Workspace()
	return cfg
}

// Path returns the absolute path of rel inside the workspace.
func (e *TestEnv) Path(rel string) string {
	return filepath.Join(e.Workspace, rel)
}

// WriteFile creates rel inside the workspace with the given content.
func (e *TestEnv) WriteFile(rel string, content []byte) string {
	e.T.Helper()

	path := e.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.T.Fatalf("Failed to create parent of %s: %v", rel, err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		e.T.Fatalf("Failed to write %s: %v", rel, err)
	}
	return path
}

// ReadFile returns the raw contents of rel inside the workspace.
func (e *TestEnv) ReadFile(rel string) []byte {
	e.T.Helper()

	data, err := os.ReadFile(e.Path(rel))
	if err != nil {
		e.T.Fatalf("Failed to read %s: %v", rel, err)
	}
	return data
}

// Mkdir creates rel inside the workspace.
func (e *TestEnv) Mkdir(rel string) string {
	e.T.Helper()

	path := e.Path(rel)
	if err := os.MkdirAll(path, 0755); err != nil {
		e.T.Fatalf("Failed to create %s: %v", rel, err)
	}
	return path
}

// Symlink creates a link named rel inside the workspace pointing at target.
// The test is skipped where symlinks are unavailable.
func (e *TestEnv) Symlink(target, rel string) string {
	e.T.Helper()

	if runtime.GOOS == "windows" {
		e.T.Skip("symlink tests require unix permissions")
	}
	path := e.Path(rel)
	if err := os.Symlink(target, path); err != nil {
		e.T.Fatalf("Failed to symlink %s: %v", rel, err)
	}
	return path
}

// Outside creates a file in the temp dir, outside the workspace, and
// returns its path.
func (e *TestEnv) Outside(name string, content []byte) string {
	e.T.Helper()

	path := filepath.Join(e.TmpDir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		e.T.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// FakeLauncher installs an executable shell script acting as a sandbox
// launcher. It prints marker on stdout and then executes its arguments
// directly, the way real launchers do. The test is skipped on Windows.
func (e *TestEnv) FakeLauncher(name, marker string) string {
	e.T.Helper()

	if runtime.GOOS == "windows" {
		e.T.Skip("fake launcher requires a POSIX shell")
	}
	path := filepath.Join(e.TmpDir, name)
	script := "#!/bin/sh\necho " + marker + "\nexec \"$@\"\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		e.T.Fatalf("Failed to write launcher: %v", err)
	}
	return path
}
