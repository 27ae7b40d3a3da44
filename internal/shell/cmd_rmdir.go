// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// cmdRmdir removes an empty directory. -v prints each removal, -p walks
// upward removing now-empty ancestors until one is non-empty or the walk
// leaves the virtual root. There is no recursive deletion.
type cmdRmdir struct{}

func (cmdRmdir) execute(ctx commandContext) {
	s := ctx.session

	if len(ctx.args) == 0 {
		fmt.Fprintln(s.out, "Usage: rmdir [-p] [-v] <directory>")
		return
	}

	verbose := false
	parents := false
	target := ""
	for _, arg := range ctx.args {
		switch {
		case arg == "-v":
			verbose = true
		case arg == "-p":
			parents = true
		case strings.HasPrefix(arg, "-"):
			// Unknown flags are ignored, as in rmdir's lenient parsing.
		case target == "":
			target = arg
		}
	}
	if target == "" {
		fmt.Fprintln(s.out, "Usage: rmdir [-p] [-v] <directory>")
		return
	}

	real, clamped := s.res.Resolve(s.cwd, target)
	if clamped {
		fmt.Fprintf(s.out, "rmdir: permission denied: %s\n", target)
		return
	}

	info, err := os.Stat(real)
	if err != nil {
		fmt.Fprintf(s.out, "rmdir: no such file or directory: %s\n", target)
		return
	}
	if !info.IsDir() {
		fmt.Fprintf(s.out, "rmdir: %s is not a directory\n", target)
		return
	}
	if !isEmptyDir(real) {
		fmt.Fprintf(s.out, "rmdir: directory not empty: %s\n", target)
		return
	}

	if err := os.Remove(real); err != nil {
		fmt.Fprintf(s.out, "rmdir: failed to remove %s: %v\n", target, err)
		return
	}
	if verbose {
		fmt.Fprintf(s.out, "Removed directory: %s\n", target)
	}

	if !parents {
		return
	}

	// Ancestor walk: keep removing while the candidate still has the root
	// path as prefix and is empty. The test is a plain prefix check on the
	// real path, so an emptied-out root itself is removable, exactly like
	// the historical behavior.
	parent := filepath.Dir(real)
	for strings.HasPrefix(parent, s.res.Root()) && isEmptyDir(parent) {
		if err := os.Remove(parent); err != nil {
			fmt.Fprintf(s.out, "rmdir: failed to remove %s: %v\n", target, err)
			return
		}
		if verbose {
			rel, err := filepath.Rel(s.res.Root(), parent)
			if err != nil {
				rel = parent
			}
			fmt.Fprintf(s.out, "Removed parent directory: %s\n", filepath.ToSlash(rel))
		}
		parent = filepath.Dir(parent)
	}
}

// isEmptyDir reports whether the directory has no entries. Unreadable
// directories count as non-empty so the walk stops rather than failing.
func isEmptyDir(dir string) bool {
	des, err := os.ReadDir(dir)
	return err == nil && len(des) == 0
}
