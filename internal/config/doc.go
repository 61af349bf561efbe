// Package config provides the settings document and the runtime
// configuration for forage-tools.
//
// # Settings
//
// Settings is the persisted form, stored as JSON, TOML or YAML depending on
// the file extension:
//
//	{
//	  "workspace": "./workspace",
//	  "sandbox_enabled": true,
//	  "sandbox_path": "/usr/bin/firejail",
//	  "sandbox_required": false,
//	  "command_timeout": 60,
//	  "max_output_length": 10000,
//	  "max_file_size": 102400,
//	  "default_encoding": "utf-8",
//	  "audit_log": ""
//	}
//
// Store loads and saves that document. A missing file is created with
// defaults and a corrupt one is replaced by defaults.
//
// # Runtime Configuration
//
// Config is built from Settings with New. Construction validates every
// field, resolves the workspace to an absolute path and creates it. A
// Config never changes after construction; With returns an adjusted copy.
//
//	store, err := config.Open(config.DefaultPath())
//	cfg, err := store.ToConfig()
//	strict, err := cfg.With(func(s *config.Settings) { s.SandboxRequired = true })
package config
