package pathguard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/errors"
)

// maxSymlinkHops bounds link following, matching the Linux MAXSYMLINKS limit.
const maxSymlinkHops = 255

// Guard resolves paths relative to a workspace root.
type Guard struct {
	workspace string
}

// New creates a guard for the given workspace directory.
func New(workspace string) *Guard {
	return &Guard{workspace: workspace}
}

// Root returns the canonical workspace path.
func (g *Guard) Root() (string, error) {
	abs, err := filepath.Abs(g.workspace)
	if err != nil {
		return "", errors.IOFailure("invalid workspace path", err)
	}
	root, err := canonicalize(abs)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(root)
	if err != nil {
		return "", errors.IOFailure("workspace unavailable", err)
	}
	if !info.IsDir() {
		return "", errors.IOFailure(fmt.Sprintf("workspace %s is not a directory", root), nil)
	}
	return root, nil
}

// Resolve returns the canonical absolute path for p, or a PathEscape error
// when it lies outside the workspace. An empty path resolves to the root.
func (g *Guard) Resolve(p string) (string, error) {
	root, err := g.Root()
	if err != nil {
		return "", err
	}

	target := filepath.FromSlash(p)
	if !filepath.IsAbs(target) {
		target = root + string(filepath.Separator) + target
	}

	resolved, err := canonicalize(target)
	if err != nil {
		return "", err
	}

	if !Within(root, resolved) {
		return "", errors.PathEscape(p)
	}

	rel, err := filepath.Rel(root, resolved)
	if err != nil {
		return "", errors.PathEscape(p)
	}
	scoped, err := securejoin.SecureJoin(root, rel)
	if err != nil || scoped != resolved {
		return "", errors.PathEscape(p)
	}

	return resolved, nil
}

// Within reports whether path equals root or lies beneath it. Both
// arguments must already be canonical.
func Within(root, path string) bool {
	if path == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

// canonicalize follows symlinks component by component and applies each
// ".." to the path resolved so far, as realpath does. Components that do
// not exist are kept as written.
func canonicalize(path string) (string, error) {
	hops := 0
	for {
		resolved, next, err := walk(path)
		if err != nil {
			return "", err
		}
		if next == "" {
			return resolved, nil
		}
		hops++
		if hops > maxSymlinkHops {
			return "", errors.IOFailure(fmt.Sprintf("too many levels of symbolic links: %s", path), nil)
		}
		path = next
	}
}

// walk scans an absolute path until it meets a symlink. It returns either
// the fully resolved path, or a rewritten path to restart from when a link
// was found. The rewritten path is not cleaned so ".." after the link
// applies to the link target.
func walk(path string) (resolved, restart string, err error) {
	sep := string(filepath.Separator)
	volume := filepath.VolumeName(path)
	current := volume + sep
	parts := strings.Split(path[len(volume):], sep)

	for i, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			current = filepath.Dir(current)
			continue
		}

		next := filepath.Join(current, part)
		info, statErr := os.Lstat(next)
		if statErr != nil {
			if os.IsNotExist(statErr) {
				current = next
				continue
			}
			return "", "", errors.IOFailure(fmt.Sprintf("cannot resolve %s", next), statErr)
		}
		if info.Mode()&os.ModeSymlink == 0 {
			current = next
			continue
		}

		link, linkErr := os.Readlink(next)
		if linkErr != nil {
			return "", "", errors.IOFailure(fmt.Sprintf("cannot read link %s", next), linkErr)
		}
		link = filepath.FromSlash(link)
		if !filepath.IsAbs(link) {
			link = current + sep + link
		}
		return "", strings.Join(append([]string{link}, parts[i+1:]...), sep), nil
	}
	return current, "", nil
}
