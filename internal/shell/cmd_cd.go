// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"fmt"
	"os"
)

// cmdCd changes the session's current directory. It never creates
// directories and, via the resolver's clamp, can never leave the root.
type cmdCd struct{}

func (cmdCd) execute(ctx commandContext) {
	s := ctx.session

	if len(ctx.args) == 0 {
		fmt.Fprintln(s.out, "Usage: cd <directory>")
		return
	}

	target := ctx.args[0]
	real, clamped := s.res.Resolve(s.cwd, target)

	// A clamped resolution means the path tried to climb out of the
	// virtual root: no movement is possible there.
	if clamped {
		fmt.Fprintf(s.out, "cd: permission denied: %s\n", target)
		return
	}

	info, err := os.Stat(real)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(s.out, "cd: no such file or directory: %s\n", target)
		return
	}

	s.cwd = s.res.Virtual(real)
}
