// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"fmt"
	"io"
	"os"
	"strings"

	"tarsh-cli/internal/config"
	"tarsh-cli/internal/sessionlog"
	"tarsh-cli/internal/vfs"

	"github.com/charmbracelet/log"
)

// Session holds the state of one shell over one workspace. It is created
// after archive extraction and mutated only by the control loop that owns
// it; cd is the only command that moves the current directory.
type Session struct {
	username string
	cwd      string // virtual form: "." at the root, otherwise "a/b"

	ws       *vfs.Workspace
	res      *vfs.Resolver
	recorder *sessionlog.Recorder
	out      io.Writer

	tailDefault int
	logger      *log.Logger
}

// Options configures a new Session. Zero fields get production defaults:
// stdout output, the built-in tail line count, a discarding logger.
type Options struct {
	Username  string
	Workspace *vfs.Workspace
	Recorder  *sessionlog.Recorder
	Out       io.Writer
	// DefaultTailLines overrides the line count tail uses without -n.
	DefaultTailLines int
	Logger           *log.Logger
}

// NewSession creates a session rooted at the workspace's extraction
// directory, with the current directory at the virtual root.
func NewSession(opts Options) *Session {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	tailDefault := opts.DefaultTailLines
	if tailDefault <= 0 {
		tailDefault = config.DefaultTailLines
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		username:    opts.Username,
		cwd:         ".",
		ws:          opts.Workspace,
		res:         vfs.NewResolver(opts.Workspace.Root()),
		recorder:    opts.Recorder,
		out:         out,
		tailDefault: tailDefault,
		logger:      logger,
	}
}

// Username returns the session's user name as shown in the prompt.
func (s *Session) Username() string { return s.username }

// Cwd returns the current directory in virtual form ("." at the root).
func (s *Session) Cwd() string { return s.cwd }

// Recorder returns the session's command log.
func (s *Session) Recorder() *sessionlog.Recorder { return s.recorder }

// Prompt returns the interactive prompt string, trailing space included.
func (s *Session) Prompt() string {
	return fmt.Sprintf("%s:%s$ ", s.username, s.cwd)
}

// Dispatch splits a raw command line on whitespace and routes it to the
// matching handler. An empty line is a no-op; an unknown verb prints a
// diagnostic and returns. Dispatch never fails the session: every handler
// reports its own errors as printed text.
func (s *Session) Dispatch(rawLine string) {
	fields := strings.Fields(rawLine)
	if len(fields) == 0 {
		return
	}

	verb, args := fields[0], fields[1:]
	cmd, ok := commands[verb]
	if !ok {
		fmt.Fprintf(s.out, "Unknown command: %s\n", verb)
		return
	}

	s.logger.Debug("dispatching command", "verb", verb, "args", args)
	cmd.execute(commandContext{session: s, args: args})
}
