// SPDX-License-Identifier: MPL-2.0

package sshserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"tarsh-cli/internal/sessionlog"
	"tarsh-cli/internal/shell"
	"tarsh-cli/internal/vfs"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	wishlog "github.com/charmbracelet/wish/logging"
)

// Server wraps a wish SSH server that hands every connection its own
// tar shell session. It moves through Created -> Starting -> Running ->
// Stopping -> Stopped; Failed is reached only from Starting.
type Server struct {
	cfg    Config
	logger *log.Logger

	state      atomic.Int32
	mu         sync.Mutex
	listener   net.Listener
	sshSrv     *ssh.Server
	metricsSrv *http.Server
	sessionSeq atomic.Uint64
	wg         sync.WaitGroup
}

// New validates cfg, fills in defaults, and returns a Server in
// StateCreated. Nothing is bound until Start.
func New(cfg Config, logger *log.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.StartupTimeout <= 0 {
		cfg.StartupTimeout = 5 * time.Second
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{cfg: cfg, logger: logger}, nil
}

// State returns the server's current lifecycle state.
func (s *Server) State() State {
	return State(s.state.Load())
}

// Addr returns the bound listen address, or "" before Start succeeds.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Start binds the listener and begins serving. It blocks until the server
// is accepting connections, the startup times out, or ctx is cancelled.
// A Server can be started at most once.
func (s *Server) Start(ctx context.Context) error {
	if !s.state.CompareAndSwap(int32(StateCreated), int32(StateStarting)) {
		return fmt.Errorf("%w: state is %s", ErrServerAlreadyStarted, s.State())
	}

	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprintf("%d", s.cfg.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		s.state.Store(int32(StateFailed))
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	opts := []ssh.Option{
		wish.WithAddress(addr),
		wish.WithMiddleware(
			s.sessionMiddleware(),
			wishlog.Middleware(),
		),
	}
	if s.cfg.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(s.cfg.HostKeyPath))
	}

	srv, err := wish.NewServer(opts...)
	if err != nil {
		listener.Close()
		s.state.Store(int32(StateFailed))
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	s.mu.Lock()
	s.listener = listener
	s.sshSrv = srv
	if s.cfg.MetricsAddr != "" {
		s.metricsSrv = newMetricsServer(s.cfg.MetricsAddr)
	}
	s.mu.Unlock()

	started := make(chan struct{})
	serveErr := make(chan error, 1)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		close(started)
		if err := srv.Serve(listener); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			serveErr <- err
		}
	}()

	if s.metricsSrv != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.logger.Info("metrics endpoint listening", "addr", s.cfg.MetricsAddr)
			if err := s.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	select {
	case <-started:
		// The serve goroutine is up; give the accept loop a moment to fail
		// fast on a dead listener before declaring the server running.
		select {
		case err := <-serveErr:
			s.state.Store(int32(StateFailed))
			return fmt.Errorf("SSH server failed to start: %w", err)
		case <-time.After(10 * time.Millisecond):
		}
	case <-time.After(s.cfg.StartupTimeout):
		s.state.Store(int32(StateFailed))
		return errors.New("timed out waiting for SSH server to start")
	case <-ctx.Done():
		s.state.Store(int32(StateFailed))
		listener.Close()
		return ctx.Err()
	}

	s.state.Store(int32(StateRunning))
	s.logger.Info("SSH server listening", "addr", listener.Addr().String())
	return nil
}

// Stop shuts the server down gracefully, waiting up to ShutdownTimeout for
// in-flight sessions. Stopping an already stopped server is a no-op.
func (s *Server) Stop() error {
	cur := s.State()
	switch cur {
	case StateCreated:
		return ErrServerNotStarted
	case StateStopped, StateStopping, StateFailed:
		return nil
	}
	if !s.state.CompareAndSwap(int32(cur), int32(StateStopping)) {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	var errs []error
	s.mu.Lock()
	sshSrv := s.sshSrv
	metricsSrv := s.metricsSrv
	s.mu.Unlock()

	if sshSrv != nil {
		if err := sshSrv.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errs = append(errs, fmt.Errorf("SSH server shutdown: %w", err))
		}
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	s.wg.Wait()
	s.state.Store(int32(StateStopped))
	s.logger.Info("SSH server stopped")
	return errors.Join(errs...)
}

// sessionMiddleware builds the wish middleware that runs one shell session
// per connection.
func (s *Server) sessionMiddleware() wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			s.handleSession(sess)
			next(sess)
		}
	}
}

// handleSession extracts a fresh workspace for the connection, runs the
// shell loop over the SSH channel, and records outcome metrics. Workspace
// cleanup is owned by the shell's termination path.
func (s *Server) handleSession(sess ssh.Session) {
	seq := s.sessionSeq.Add(1)
	user := sess.User()
	sessionsTotal.Inc()
	activeSessions.Inc()
	defer activeSessions.Dec()

	logger := s.logger.With("session", seq, "user", user)
	logger.Info("session started", "remote", sess.RemoteAddr().String())

	ws, err := vfs.New(s.cfg.ArchivePath, s.cfg.ScratchDir)
	if err != nil {
		sessionErrorsTotal.Inc()
		logger.Error("failed to prepare workspace", "error", err)
		fmt.Fprintf(sess, "Error: %v\n", err)
		return
	}

	logPath := filepath.Join(s.cfg.LogDir, fmt.Sprintf("session-%d-%s.json", seq, user))
	recorder := sessionlog.NewRecorder(user, logPath)

	session := shell.NewSession(shell.Options{
		Username:         user,
		Workspace:        ws,
		Recorder:         recorder,
		Out:              sess,
		DefaultTailLines: s.cfg.DefaultTailLines,
		Logger:           logger,
	})

	runner := shell.NewRunner(session, sess, "", logger)
	if err := runner.Run(sess.Context()); err != nil {
		sessionErrorsTotal.Inc()
		logger.Error("session ended with error", "error", err)
	}

	commandsTotal.Add(float64(recorder.Len()))
	logger.Info("session finished", "commands", recorder.Len())
}
