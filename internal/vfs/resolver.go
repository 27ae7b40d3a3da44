// SPDX-License-Identifier: MPL-2.0

package vfs

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Resolver maps user-typed virtual paths onto real filesystem paths
// confined under a single root directory.
//
// Virtual paths use forward slashes. A path starting with "/" is rooted at
// the virtual root; anything else is joined onto the session's current
// directory. The current directory is kept in virtual form: "." at the
// root, otherwise a slash-separated path like "a/b".
type Resolver struct {
	root string
}

// NewResolver returns a Resolver confined to root, which must be an
// absolute real path (the workspace extraction directory).
func NewResolver(root string) *Resolver {
	return &Resolver{root: filepath.Clean(root)}
}

// Root returns the real path of the virtual root.
func (r *Resolver) Root() string { return r.root }

// Resolve maps userPath, interpreted against the virtual current directory
// cwd, to a real path. The result always lies within the root: a path that
// would climb above it via ".." segments is clamped to the root itself and
// reported via clamped. Resolution never touches the filesystem; existence
// and type checks belong to the callers.
func (r *Resolver) Resolve(cwd, userPath string) (real string, clamped bool) {
	virtual := userPath
	if !strings.HasPrefix(virtual, "/") {
		virtual = path.Join(cwd, virtual)
	}
	virtual = strings.TrimLeft(virtual, "/")

	real = filepath.Clean(filepath.Join(r.root, filepath.FromSlash(virtual)))
	if !r.Contains(real) {
		return r.root, true
	}
	return real, false
}

// Contains reports whether real (a cleaned real path) lies within the root.
func (r *Resolver) Contains(real string) bool {
	return real == r.root || strings.HasPrefix(real, r.root+string(os.PathSeparator))
}

// Display returns the virtual, slash-separated form of a real path under
// the root, always starting with "/" ("/" for the root itself). Used for
// recursive listing headers and removal messages.
func (r *Resolver) Display(real string) string {
	rel, err := filepath.Rel(r.root, real)
	if err != nil || rel == "." {
		return "/"
	}
	return "/" + filepath.ToSlash(rel)
}

// Virtual returns the current-directory form of a real path under the
// root: "." for the root itself, otherwise a relative slash path. This is
// the value cd stores as the session's current directory.
func (r *Resolver) Virtual(real string) string {
	rel, err := filepath.Rel(r.root, real)
	if err != nil {
		return "."
	}
	return filepath.ToSlash(rel)
}
