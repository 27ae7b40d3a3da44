// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// cmdTail prints the last lines of a regular file. -n <count> overrides
// the configured default line count.
type cmdTail struct{}

const tailUsage = "Usage: tail [-n <number_of_lines>] <file>"

func (cmdTail) execute(ctx commandContext) {
	s := ctx.session

	if len(ctx.args) == 0 {
		fmt.Fprintln(s.out, tailUsage)
		return
	}

	count := s.tailDefault
	args := ctx.args
	for i, arg := range args {
		if arg != "-n" {
			continue
		}
		if i+1 >= len(args) {
			fmt.Fprintln(s.out, tailUsage)
			return
		}
		n, err := strconv.Atoi(args[i+1])
		if err != nil {
			fmt.Fprintln(s.out, tailUsage)
			return
		}
		count = n
		args = append(append([]string{}, args[:i]...), args[i+2:]...)
		break
	}

	if len(args) == 0 {
		fmt.Fprintln(s.out, tailUsage)
		return
	}
	target := args[0]

	real, _ := s.res.Resolve(s.cwd, target)
	info, err := os.Stat(real)
	if err != nil {
		fmt.Fprintf(s.out, "tail: cannot open '%s': No such file or directory\n", target)
		return
	}
	if !info.Mode().IsRegular() {
		fmt.Fprintf(s.out, "tail: %s is not a regular file\n", target)
		return
	}

	lines, err := readLines(real)
	if err != nil {
		fmt.Fprintf(s.out, "tail: error reading '%s': %v\n", target, err)
		return
	}

	if count < 0 {
		count = 0
	}
	if count < len(lines) {
		lines = lines[len(lines)-count:]
	}
	// Line terminators are preserved from the source; nothing extra is
	// appended after the final line.
	fmt.Fprint(s.out, strings.Join(lines, ""))
}

// readLines reads the whole file as lines, keeping each line's own
// terminator (the final line may have none).
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
