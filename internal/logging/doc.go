// Package logging provides logging utilities for forage-tools.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("write_file", "path", path, "bytes", len(content))
//	logging.Warn("sandbox launcher missing", "launcher", launcher)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Loading settings from %s", path)
//	logging.UserSuccess("Settings saved to %s", path)
//	logging.UserWarning("Sandbox launcher %s not found", launcher)
//	logging.UserError("Invalid settings: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// # Status Indicators
//
// User functions prepend status indicators, colored with lipgloss when the
// terminal supports it:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
