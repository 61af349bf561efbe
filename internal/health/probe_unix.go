//go:build !windows

package health

// shellProbe starts a real shell binary so a launcher that executes its
// arguments directly can run it.
const shellProbe = "sh -c 'exit 0'"
