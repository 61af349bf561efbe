package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/textenc"
)

// Defaults for the settings document.
const (
	DefaultWorkspace       = "./workspace"
	DefaultSandboxEnabled  = true
	DefaultCommandTimeout  = 60
	DefaultMaxOutputLength = 10000
	DefaultMaxFileSize     = 1024 * 100
	DefaultEncoding        = textenc.DefaultName
	DefaultConfigFile      = "config.json"

	// ConfigPathEnv overrides the default settings file location.
	ConfigPathEnv = "FORAGE_TOOLS_CONFIG"
)

// DefaultSandboxPath returns the platform's default launcher location.
func DefaultSandboxPath() string {
	if runtime.GOOS == "windows" {
		return `D:\sandboxieplus\Sandboxie-Plus`
	}
	return "/usr/bin/firejail"
}

// DefaultPath returns the settings file location.
func DefaultPath() string {
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return path
	}
	return DefaultConfigFile
}

// Settings is the persisted settings document.
type Settings struct {
	Workspace       string `json:"workspace" toml:"workspace" yaml:"workspace"`
	SandboxEnabled  bool   `json:"sandbox_enabled" toml:"sandbox_enabled" yaml:"sandbox_enabled"`
	SandboxPath     string `json:"sandbox_path" toml:"sandbox_path" yaml:"sandbox_path"`
	SandboxRequired bool   `json:"sandbox_required" toml:"sandbox_required" yaml:"sandbox_required"`
	CommandTimeout  int    `json:"command_timeout" toml:"command_timeout" yaml:"command_timeout"`
	MaxOutputLength int    `json:"max_output_length" toml:"max_output_length" yaml:"max_output_length"`
	MaxFileSize     int64  `json:"max_file_size" toml:"max_file_size" yaml:"max_file_size"`
	DefaultEncoding string `json:"default_encoding" toml:"default_encoding" yaml:"default_encoding"`
	AuditLog        string `json:"audit_log,omitempty" toml:"audit_log,omitempty" yaml:"audit_log,omitempty"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		Workspace:       DefaultWorkspace,
		SandboxEnabled:  DefaultSandboxEnabled,
		SandboxPath:     DefaultSandboxPath(),
		CommandTimeout:  DefaultCommandTimeout,
		MaxOutputLength: DefaultMaxOutputLength,
		MaxFileSize:     DefaultMaxFileSize,
		DefaultEncoding: DefaultEncoding,
	}
}

// Validate checks that the Settings are usable. All problems are reported
// together.
func (s Settings) Validate() error {
	var problems []error

	if strings.TrimSpace(s.Workspace) == "" {
		problems = append(problems, fmt.Errorf("workspace cannot be empty"))
	}
	if s.SandboxEnabled && strings.TrimSpace(s.SandboxPath) == "" {
		problems = append(problems, fmt.Errorf("sandbox_path cannot be empty when sandbox is enabled"))
	}
	if s.SandboxRequired && !s.SandboxEnabled {
		problems = append(problems, fmt.Errorf("sandbox_required needs sandbox_enabled"))
	}
	if s.CommandTimeout <= 0 {
		problems = append(problems, fmt.Errorf("command_timeout must be greater than 0"))
	}
	if s.MaxOutputLength <= 0 {
		problems = append(problems, fmt.Errorf("max_output_length must be greater than 0"))
	}
	if s.MaxFileSize <= 0 {
		problems = append(problems, fmt.Errorf("max_file_size must be greater than 0"))
	}
	if _, err := textenc.Lookup(s.DefaultEncoding); err != nil {
		problems = append(problems, fmt.Errorf("default_encoding: %w", err))
	}

	return errors.Join(problems...)
}

// field binds a settings key to typed accessors.
type field struct {
	get func(s *Settings) any
	set func(s *Settings, value string) error
}

var fields = map[string]field{
	"workspace": {
		get: func(s *Settings) any { return s.Workspace },
		set: func(s *Settings, v string) error { s.Workspace = v; return nil },
	},
	"sandbox_enabled": {
		get: func(s *Settings) any { return s.SandboxEnabled },
		set: func(s *Settings, v string) error { return parseBool(v, &s.SandboxEnabled) },
	},
	"sandbox_path": {
		get: func(s *Settings) any { return s.SandboxPath },
		set: func(s *Settings, v string) error { s.SandboxPath = v; return nil },
	},
	"sandbox_required": {
		get: func(s *Settings) any { return s.SandboxRequired },
		set: func(s *Settings, v string) error { return parseBool(v, &s.SandboxRequired) },
	},
	"command_timeout": {
		get: func(s *Settings) any { return s.CommandTimeout },
		set: func(s *Settings, v string) error { return parseInt(v, &s.CommandTimeout) },
	},
	"max_output_length": {
		get: func(s *Settings) any { return s.MaxOutputLength },
		set: func(s *Settings, v string) error { return parseInt(v, &s.MaxOutputLength) },
	},
	"max_file_size": {
		get: func(s *Settings) any { return s.MaxFileSize },
		set: func(s *Settings, v string) error {
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return fmt.Errorf("expected an integer, got %q", v)
			}
			s.MaxFileSize = n
			return nil
		},
	},
	"default_encoding": {
		get: func(s *Settings) any { return s.DefaultEncoding },
		set: func(s *Settings, v string) error { s.DefaultEncoding = v; return nil },
	},
	"audit_log": {
		get: func(s *Settings) any { return s.AuditLog },
		set: func(s *Settings, v string) error { s.AuditLog = v; return nil },
	},
}

// Keys returns the settings keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value stored under key.
func (s Settings) Get(key string) (any, error) {
	f, ok := fields[key]
	if !ok {
		return nil, fmt.Errorf("unknown setting %q", key)
	}
	return f.get(&s), nil
}

// Set parses value for key and stores it.
func (s *Settings) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	if err := f.set(s, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

func parseBool(v string, dst *bool) error {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("expected a boolean, got %q", v)
	}
	*dst = b
	return nil
}

func parseInt(v string, dst *int) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("expected an integer, got %q", v)
	}
	*dst = n
	return nil
}

// resolveLauncher maps sandbox_path onto the launcher executable. An
// installation directory resolves to its Start.exe.
func resolveLauncher(sandboxPath string) string {
	if sandboxPath == "" {
		return ""
	}
	if info, err := os.Stat(sandboxPath); err == nil && info.IsDir() {
		return filepath.Join(sandboxPath, "Start.exe")
	}
	return sandboxPath
}
