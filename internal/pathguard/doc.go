// Package pathguard confines caller-supplied paths to a workspace root.
//
// # Resolution
//
// Resolve joins a path onto the workspace and canonicalizes it the way
// realpath does: every symbolic link along the existing portion of the path
// is followed, including dangling links whose target does not exist yet,
// and each ".." steps up from the path resolved so far. "link/.." is the
// parent of the link target, not the directory holding the link. Both the workspace and the target are canonicalized on every
// call; nothing is cached.
//
//	g := pathguard.New("/srv/agent/workspace")
//	abs, err := g.Resolve("src/main.go")   // /srv/agent/workspace/src/main.go
//	_, err = g.Resolve("../etc/passwd")     // errors.ErrPathEscape
//
// # Containment
//
// A resolved path is accepted when it equals the canonical workspace or
// lies beneath it. Ancestors of the workspace and siblings sharing a name
// prefix ("/srv/agent/workspace-evil") are rejected.
//
// An accepted path is re-derived with filepath-securejoin, which resolves
// the same components scoped to the workspace. A disagreement between the
// two (for example a symlink swapped in between the steps) is reported as
// an escape.
package pathguard
