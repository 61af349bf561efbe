// Package pkgname validates package identifiers before they are
// interpolated into installer command lines.
//
// Validation is the only injection defense for package names: there is no
// escaping fallback, so anything the pattern does not accept is rejected.
package pkgname

import (
	"regexp"

	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/errors"
)

// packageNameRegex accepts a name of letters, digits, underscores and
// hyphens, optionally followed by one bracketed extras group drawn from the
// same characters (e.g. "uvicorn[standard]").
var packageNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+(\[[a-zA-Z0-9_-]+\])?$`)

// IsValid reports whether name is a safe package identifier.
func IsValid(name string) bool {
	return packageNameRegex.MatchString(name)
}

// Validate returns an InvalidPackageName error for unsafe names.
func Validate(name string) error {
	if !IsValid(name) {
		return errors.InvalidPackageName(name)
	}
	return nil
}
