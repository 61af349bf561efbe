// Package errors provides typed errors with exit codes for forage-tools.
//
// # Error Types
//
// ToolError is the base error type that wraps an error with an exit code
// and a kind from the toolkit's failure taxonomy:
//
//	type ToolError struct {
//	    Code    int    // Exit code
//	    Kind    Kind   // Taxonomy member
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess            = 0  // Success
//	ExitGeneralError       = 1  // General/unknown errors
//	ExitPathEscape         = 2  // Path resolves outside the workspace
//	ExitInvalidPackageName = 3  // Package name rejected by the validator
//	ExitExecutionTimeout   = 4  // Command exceeded its timeout
//	ExitExecutionFailure   = 5  // Command could not be launched
//	ExitConfigError        = 6  // Configuration error
//	ExitIOFailure          = 7  // Missing file, is-a-directory, permission
//
// # Error Constructors
//
//	errors.PathEscape("../etc/passwd")
//	errors.InvalidPackageName("pkg; rm -rf /")
//	errors.ExecutionTimeout(60)
//	errors.IOFailure("failed to write file", err)
//
// # Matching
//
// Each kind has a sentinel usable with errors.Is:
//
//	if errors.Is(err, errors.ErrPathEscape) { ... }
//
// # Rendering
//
// Toolkit operations never return errors across their public boundary.
// Render turns an error into the "Error: ..." result string instead:
//
//	return errors.Render(err)
package errors
