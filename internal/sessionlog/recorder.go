// SPDX-License-Identifier: MPL-2.0

// Package sessionlog records every command a shell session processes and
// persists the record as a JSON artifact. The on-disk format is part of
// the tool's external contract: an insertion-ordered JSON array of
// {user, action, details} objects, rewritten in full on every flush.
package sessionlog

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	// ActionInput marks a command typed at the interactive prompt.
	ActionInput Action = "input"
	// ActionScript marks a command executed from the startup script.
	ActionScript Action = "script_command"
)

type (
	// Action classifies the origin of a logged command.
	Action string

	// Entry is one logged command. Details is a pointer so that entries
	// recorded without command text serialize as JSON null.
	Entry struct {
		User    string  `json:"user"`
		Action  Action  `json:"action"`
		Details *string `json:"details"`
	}

	// Recorder is the append-only in-memory session log. It is owned and
	// mutated only by the session's control loop; there is no locking.
	Recorder struct {
		user    string
		path    string
		entries []Entry
	}
)

// NewRecorder returns a Recorder for the given user that flushes to path.
func NewRecorder(user, path string) *Recorder {
	return &Recorder{
		user:    user,
		path:    path,
		entries: []Entry{},
	}
}

// Record appends an entry with the given command text.
func (r *Recorder) Record(action Action, details string) {
	r.entries = append(r.entries, Entry{User: r.user, Action: action, Details: &details})
}

// RecordBare appends an entry with null details.
func (r *Recorder) RecordBare(action Action) {
	r.entries = append(r.entries, Entry{User: r.user, Action: action})
}

// Len returns the number of recorded entries.
func (r *Recorder) Len() int { return len(r.entries) }

// Entries returns a copy of the recorded entries in insertion order.
func (r *Recorder) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Flush rewrites the log file with the full accumulated log as an
// indented JSON array. An empty log flushes as "[]", not null.
func (r *Recorder) Flush() error {
	data, err := json.MarshalIndent(r.entries, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode session log: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write session log: %w", err)
	}
	return nil
}
