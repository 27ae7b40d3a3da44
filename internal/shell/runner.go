// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"tarsh-cli/internal/sessionlog"

	"github.com/charmbracelet/log"
)

// Runner drives a session through its two phases: the optional startup
// script, then the interactive loop. All three ways out of the loop (the
// exit verb, end of input, context cancellation from an interrupt) funnel
// into the same termination path, which always attempts both the session
// log flush and the workspace cleanup.
type Runner struct {
	session    *Session
	in         io.Reader
	scriptPath string
	logger     *log.Logger
}

// NewRunner returns a Runner reading interactive input from in. A non-empty
// scriptPath is executed first, one command per line.
func NewRunner(session *Session, in io.Reader, scriptPath string, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		session:    session,
		in:         in,
		scriptPath: scriptPath,
		logger:     logger,
	}
}

// Run executes the script phase and then the interactive loop, blocking
// until the session terminates. The returned error covers only the
// termination steps (log flush, workspace cleanup); command failures are
// printed output, never errors.
func (r *Runner) Run(ctx context.Context) error {
	r.runScript()
	return r.interactive(ctx)
}

// runScript executes the startup script, if any. Each non-blank line is
// logged as a script command, echoed behind the prompt, and dispatched.
// A missing script file is non-fatal: report it and fall through to the
// interactive phase.
func (r *Runner) runScript() {
	if r.scriptPath == "" {
		return
	}

	f, err := os.Open(r.scriptPath)
	if err != nil {
		fmt.Fprintf(r.session.out, "Start script not found: %s\n", r.scriptPath)
		return
	}
	defer f.Close()

	r.logger.Debug("executing start script", "path", r.scriptPath)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		r.session.recorder.Record(sessionlog.ActionScript, line)
		fmt.Fprintf(r.session.out, "%s%s\n", r.session.Prompt(), line)
		r.session.Dispatch(line)
	}
	if err := scanner.Err(); err != nil {
		r.logger.Error("error reading start script", "path", r.scriptPath, "error", err)
	}
}

// interactive runs the prompt/read/dispatch loop. The blocking line read
// is the session's sole suspension point; it is serviced by a reader
// goroutine so that context cancellation (the interrupt path) can be
// observed while waiting for input.
func (r *Runner) interactive(ctx context.Context) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(r.session.out, r.session.Prompt())

		select {
		case <-ctx.Done():
			r.logger.Debug("interrupt received, terminating session")
			return r.terminate(true)

		case line, ok := <-lines:
			if !ok {
				r.logger.Debug("end of input, terminating session")
				return r.terminate(true)
			}

			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			r.session.recorder.Record(sessionlog.ActionInput, line)
			if strings.Fields(line)[0] == "exit" {
				return r.terminate(false)
			}
			r.session.Dispatch(line)
		}
	}
}

// terminate prints the exit message, flushes the session log, and releases
// the workspace. Both steps are attempted regardless of the other's
// outcome; their errors are joined for the caller.
func (r *Runner) terminate(newline bool) error {
	if newline {
		fmt.Fprintln(r.session.out)
	}
	fmt.Fprintln(r.session.out, "Exiting shell...")

	flushErr := r.session.recorder.Flush()
	if flushErr != nil {
		r.logger.Error("failed to flush session log", "error", flushErr)
	}

	removed, cleanupErr := r.session.ws.Cleanup()
	if cleanupErr != nil {
		r.logger.Error("failed to remove extraction directory", "error", cleanupErr)
	}
	if removed {
		fmt.Fprintln(r.session.out, "Temporary virtual file system removed.")
	}

	return errors.Join(flushErr, cleanupErr)
}
