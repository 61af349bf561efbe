// Package health checks whether a toolkit configuration can actually
// serve requests.
//
// # Health Status
//
// The result of a check is summarised as a Status:
//
//	StatusHealthy   - Workspace usable, commands run as configured
//	StatusDegraded  - Sandbox enabled but launcher missing; commands fall
//	                  back to running without it
//	StatusUnhealthy - Workspace missing or read-only, or the shell probe
//	                  failed (including a missing launcher when the sandbox
//	                  is required)
//
// # Check Functions
//
// Individual checks:
//
//	health.CheckWorkspace(dir)     // exists, writable
//	health.CheckShell(ctx, cfg)    // runs "exit 0" through the runner
//
// Combined checks:
//
//	result := health.Check(ctx, cfg)
//	status := result.Summary()
//	for _, p := range result.Problems() { ... }
package health
