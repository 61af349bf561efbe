package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/textenc"
)

// Config is the validated, immutable runtime configuration. Reconfiguring
// produces a new value; a Config is safe to share between goroutines.
type Config struct {
	workspace       string
	sandboxEnabled  bool
	sandboxPath     string
	launcherPath    string
	sandboxRequired bool
	commandTimeout  int
	maxOutputLength int
	maxFileSize     int64
	encoding        *textenc.Codec
	auditLog        string
}

// New validates s, creates the workspace directory and returns the
// resulting Config.
func New(s Settings) (*Config, error) {
	if err := s.Validate(); err != nil {
		return nil, errors.ConfigError("invalid settings", err)
	}

	workspace, err := filepath.Abs(s.Workspace)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("cannot resolve workspace %s", s.Workspace), err)
	}
	if err := os.MkdirAll(workspace, 0755); err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("cannot create workspace %s", workspace), err)
	}

	codec, err := textenc.Lookup(s.DefaultEncoding)
	if err != nil {
		return nil, errors.ConfigError("invalid default_encoding", err)
	}

	auditLog := s.AuditLog
	if auditLog != "" {
		if auditLog, err = filepath.Abs(auditLog); err != nil {
			return nil, errors.ConfigError(fmt.Sprintf("cannot resolve audit_log %s", s.AuditLog), err)
		}
	}

	return &Config{
		workspace:       workspace,
		sandboxEnabled:  s.SandboxEnabled,
		sandboxPath:     s.SandboxPath,
		launcherPath:    resolveLauncher(s.SandboxPath),
		sandboxRequired: s.SandboxRequired,
		commandTimeout:  s.CommandTimeout,
		maxOutputLength: s.MaxOutputLength,
		maxFileSize:     s.MaxFileSize,
		encoding:        codec,
		auditLog:        auditLog,
	}, nil
}

// Default returns a Config built from DefaultSettings.
func Default() (*Config, error) {
	return New(DefaultSettings())
}

// With returns a new Config with mutate applied to a copy of the settings.
// The receiver is unchanged.
func (c *Config) With(mutate func(*Settings)) (*Config, error) {
	s := c.Settings()
	mutate(&s)
	return New(s)
}

// Settings returns the settings document this Config was built from,
// with the workspace in absolute form.
func (c *Config) Settings() Settings {
	return Settings{
		Workspace:       c.workspace,
		SandboxEnabled:  c.sandboxEnabled,
		SandboxPath:     c.sandboxPath,
		SandboxRequired: c.sandboxRequired,
		CommandTimeout:  c.commandTimeout,
		MaxOutputLength: c.maxOutputLength,
		MaxFileSize:     c.maxFileSize,
		DefaultEncoding: c.encoding.Name(),
		AuditLog:        c.auditLog,
	}
}

// Workspace returns the absolute workspace root.
func (c *Config) Workspace() string { return c.workspace }

// SandboxEnabled reports whether commands should go through the launcher.
func (c *Config) SandboxEnabled() bool { return c.sandboxEnabled }

// SandboxPath returns sandbox_path as configured.
func (c *Config) SandboxPath() string { return c.sandboxPath }

// LauncherPath returns the launcher executable derived from sandbox_path.
// Its existence is checked by callers at execution time.
func (c *Config) LauncherPath() string { return c.launcherPath }

// SandboxRequired reports whether a missing launcher is fatal.
func (c *Config) SandboxRequired() bool { return c.sandboxRequired }

// CommandTimeout returns the per-command time budget.
func (c *Config) CommandTimeout() time.Duration {
	return time.Duration(c.commandTimeout) * time.Second
}

// CommandTimeoutSeconds returns the per-command time budget in seconds.
func (c *Config) CommandTimeoutSeconds() int { return c.commandTimeout }

// MaxOutputLength returns the per-stream output cap in characters.
func (c *Config) MaxOutputLength() int { return c.maxOutputLength }

// MaxFileSize returns the read cap in bytes.
func (c *Config) MaxFileSize() int64 { return c.maxFileSize }

// Encoding returns the text codec for file contents and process output.
func (c *Config) Encoding() *textenc.Codec { return c.encoding }

// AuditLog returns the audit log path, or "" when auditing is off.
func (c *Config) AuditLog() string { return c.auditLog }
