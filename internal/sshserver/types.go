// SPDX-License-Identifier: MPL-2.0

package sshserver

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// StateCreated indicates the server has been created but not started.
	StateCreated State = iota
	// StateStarting indicates the server is in the process of starting.
	StateStarting
	// StateRunning indicates the server is running and accepting connections.
	StateRunning
	// StateStopping indicates the server is shutting down.
	StateStopping
	// StateStopped indicates the server has stopped (terminal state).
	StateStopped
	// StateFailed indicates the server failed to start or encountered a fatal error (terminal state).
	StateFailed
)

var (
	// ErrInvalidHostAddress is the sentinel error wrapped by InvalidHostAddressError.
	ErrInvalidHostAddress = errors.New("invalid host address")
	// ErrInvalidListenPort is the sentinel error wrapped by InvalidListenPortError.
	ErrInvalidListenPort = errors.New("invalid listen port")
	// ErrInvalidServerConfig is the sentinel error wrapped by InvalidServerConfigError.
	ErrInvalidServerConfig = errors.New("invalid SSH server config")
	// ErrServerAlreadyStarted is returned by Start on a server that left StateCreated.
	ErrServerAlreadyStarted = errors.New("server already started")
	// ErrServerNotStarted is returned by Stop on a server that never started.
	ErrServerNotStarted = errors.New("server not started")
)

type (
	// State represents the lifecycle state of the server.
	State int32

	// Config holds immutable configuration for the SSH server.
	Config struct {
		// Host is the address to bind to (default: 127.0.0.1)
		Host string
		// Port is the port to listen on (0 = auto-select)
		Port int
		// HostKeyPath is the SSH host key location ("" lets wish generate one)
		HostKeyPath string
		// MetricsAddr exposes prometheus metrics on this address when non-empty
		MetricsAddr string
		// ArchivePath is the tar archive extracted for every session
		ArchivePath string
		// LogDir receives one JSON session log per connection
		LogDir string
		// ScratchDir is the parent for extraction directories ("" = system temp)
		ScratchDir string
		// DefaultTailLines is the in-session tail default line count
		DefaultTailLines int
		// StartupTimeout is the max time to wait for the server to be ready (default: 5s)
		StartupTimeout time.Duration
		// ShutdownTimeout is the timeout for graceful shutdown (default: 10s)
		ShutdownTimeout time.Duration
	}

	// InvalidHostAddressError is returned when the Host value is empty or
	// whitespace-only. It wraps ErrInvalidHostAddress for errors.Is().
	InvalidHostAddressError struct {
		Value string
	}

	// InvalidListenPortError is returned when the Port value is outside
	// 0-65535. It wraps ErrInvalidListenPort for errors.Is().
	InvalidListenPortError struct {
		Value int
	}

	// InvalidServerConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidServerConfig for errors.Is() compatibility and
	// collects field-level validation errors.
	InvalidServerConfigError struct {
		FieldErrors []error
	}
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

// Validate returns nil if the Config is usable, or an
// InvalidServerConfigError collecting every field problem.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Host) == "" {
		errs = append(errs, &InvalidHostAddressError{Value: c.Host})
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, &InvalidListenPortError{Value: c.Port})
	}
	if strings.TrimSpace(c.ArchivePath) == "" {
		errs = append(errs, errors.New("archive path must be set"))
	}
	if strings.TrimSpace(c.LogDir) == "" {
		errs = append(errs, errors.New("session log directory must be set"))
	}
	if len(errs) > 0 {
		return &InvalidServerConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidHostAddressError.
func (e *InvalidHostAddressError) Error() string {
	return fmt.Sprintf("invalid host address %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidHostAddress for errors.Is() compatibility.
func (e *InvalidHostAddressError) Unwrap() error { return ErrInvalidHostAddress }

// Error implements the error interface for InvalidListenPortError.
func (e *InvalidListenPortError) Error() string {
	return fmt.Sprintf("invalid listen port %d: must be between 0 and 65535", e.Value)
}

// Unwrap returns ErrInvalidListenPort for errors.Is() compatibility.
func (e *InvalidListenPortError) Unwrap() error { return ErrInvalidListenPort }

// Error implements the error interface for InvalidServerConfigError.
func (e *InvalidServerConfigError) Error() string {
	return fmt.Sprintf("invalid SSH server config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidServerConfig for errors.Is() compatibility.
func (e *InvalidServerConfigError) Unwrap() error { return ErrInvalidServerConfig }
