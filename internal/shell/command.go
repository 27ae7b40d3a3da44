// SPDX-License-Identifier: MPL-2.0

package shell

type (
	// commandContext carries everything a handler needs for one invocation.
	commandContext struct {
		session *Session
		args    []string
	}

	// command is one shell verb. Handlers print their own output and
	// error messages to the session writer; they never return errors and
	// never terminate the session.
	command interface {
		execute(ctx commandContext)
	}
)

// commands is the closed set of verbs the shell dispatches. The exit verb
// is deliberately absent: it is intercepted by the interactive loop only,
// so a script line reading "exit" reports an unknown command.
var commands = map[string]command{
	"ls":    cmdLs{},
	"cd":    cmdCd{},
	"rmdir": cmdRmdir{},
	"tail":  cmdTail{},
}
