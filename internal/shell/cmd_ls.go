// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// cmdLs lists directory contents: optionally recursive with -R, optional
// single path argument defaulting to the current directory.
type cmdLs struct{}

func (cmdLs) execute(ctx commandContext) {
	s := ctx.session

	recursive := false
	target := "."
	for _, arg := range ctx.args {
		if arg == "-R" {
			recursive = true
		} else {
			target = arg
		}
	}

	real, _ := s.res.Resolve(s.cwd, target)
	info, err := os.Stat(real)
	if err != nil {
		fmt.Fprintf(s.out, "ls: cannot access '%s': No such file or directory\n", real)
		return
	}

	// A plain file lists as itself, directories list their entries.
	if !info.IsDir() {
		fmt.Fprintln(s.out, filepath.Base(real))
		return
	}

	if recursive {
		listRecursive(s, real)
	} else {
		listDirectory(s, real, false)
	}
}

// listDirectory prints one directory's entries on a single line, sorted
// lexicographically, directories suffixed with "/". An empty directory
// prints a blank line. The returned names drive the recursive descent.
func listDirectory(s *Session, dir string, showHeader bool) []string {
	if showHeader {
		fmt.Fprintf(s.out, "%s:\n", s.res.Display(dir))
	}

	des, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			fmt.Fprintf(s.out, "ls: cannot open directory '%s': Permission denied\n", s.res.Display(dir))
		} else {
			fmt.Fprintf(s.out, "ls: cannot access '%s': No such file or directory\n", dir)
		}
		return nil
	}

	names := make([]string, 0, len(des))
	shown := make([]string, 0, len(des))
	for _, de := range des { // os.ReadDir sorts by name
		names = append(names, de.Name())
		if de.IsDir() {
			shown = append(shown, de.Name()+"/")
		} else {
			shown = append(shown, de.Name())
		}
	}
	fmt.Fprintln(s.out, strings.Join(shown, "  "))
	return names
}

// listRecursive prints a header and listing for dir, then descends into
// each subdirectory in sorted order, depth-first, with a blank line
// before every subdirectory block.
func listRecursive(s *Session, dir string) {
	names := listDirectory(s, dir, true)
	for _, name := range names {
		child := filepath.Join(dir, name)
		if info, err := os.Stat(child); err == nil && info.IsDir() {
			fmt.Fprintln(s.out)
			listRecursive(s, child)
		}
	}
}
