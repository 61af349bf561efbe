// Package process runs shell commands inside the workspace with a time
// budget, capturing and truncating their output.
//
// Commands are handed to the platform shell ("sh -c" on Unix, "cmd /C" on
// Windows) with the workspace root as working directory. The child
// inherits the current environment with PYTHONIOENCODING set to the
// configured encoding.
//
// # Sandbox Launcher
//
// When sandboxing is enabled and the launcher executable exists, the
// launcher is prefixed to the command:
//
//	'/usr/bin/firejail' python script.py
//
// A missing launcher either fails the call (sandbox_required) or falls
// back to running the command directly with a warning logged on every
// call.
//
// # Timeouts
//
// On Unix the child runs in its own process group and the whole group is
// killed with SIGKILL when the timeout expires or the context is
// cancelled, so no grandchild outlives the call.
package process
