// Package ssh serves the panebar TUI over SSH. Every session gets its own
// toolbar, window and manager.
package ssh

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"sync"

	"panebar/internal/config"
	"panebar/internal/logger"
	"panebar/internal/metrics"
	"panebar/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"golang.org/x/time/rate"
)

// Server is the SSH front end.
type Server struct {
	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Metrics
	panes   fs.FS
	server  *ssh.Server

	mu   sync.Mutex
	apps map[string]*tui.App // by session id
}

// ServerOption configures the server.
type ServerOption func(*Server)

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) ServerOption {
	return func(s *Server) {
		s.log = log
	}
}

// WithMetrics records every session's selections in m.
func WithMetrics(m *metrics.Metrics) ServerOption {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithPanes sets where sessions load pane resources from.
func WithPanes(fsys fs.FS) ServerOption {
	return func(s *Server) {
		s.panes = fsys
	}
}

// NewServer creates a server for cfg.
func NewServer(cfg *config.Config, opts ...ServerOption) *Server {
	s := &Server{cfg: cfg, log: logger.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListenAndServe serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := s.cfg.SSH.Address()
	srv, err := wish.NewServer(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(s.cfg.SSH.HostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(s.handler),
			s.closeSessions(),
			activeterm.Middleware(),
			s.limitSessions(),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}
	s.server = srv

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting SSH server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.log.Info("stopping SSH server")
		if err := srv.Shutdown(context.Background()); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// closeSessions releases a session's app once its program has exited.
// It must wrap the bubbletea middleware, which blocks until then.
func (s *Server) closeSessions() wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			defer s.release(sess.Context().SessionID())
			next(sess)
		}
	}
}

func (s *Server) track(id string, app *tui.App) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.apps == nil {
		s.apps = make(map[string]*tui.App)
	}
	s.apps[id] = app
}

func (s *Server) release(id string) {
	s.mu.Lock()
	app, ok := s.apps[id]
	delete(s.apps, id)
	s.mu.Unlock()
	if ok {
		app.Close()
	}
}

// Sessions returns the number of sessions with a live app.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.apps)
}

// limitSessions rejects sessions arriving faster than ssh.session_rate.
func (s *Server) limitSessions() wish.Middleware {
	if s.cfg.SSH.SessionRate <= 0 {
		return func(next ssh.Handler) ssh.Handler { return next }
	}
	limiter := rate.NewLimiter(rate.Limit(s.cfg.SSH.SessionRate), max(s.cfg.SSH.SessionBurst, 1))
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			if !limiter.Allow() {
				s.log.Warn("session rejected by rate limit", "user", sess.User())
				wish.Fatalln(sess, "too many sessions, try again later")
				return
			}
			next(sess)
		}
	}
}

// handler builds the model for one session.
func (s *Server) handler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, active := sess.Pty()
	if !active {
		return nil, nil
	}

	cc := logger.NewSessionContext(sess.User(), remoteHost(sess.RemoteAddr()))
	log := cc.Attach(s.log)

	app, err := tui.New(tui.Options{
		Config:  s.cfg,
		Panes:   s.panes,
		Logger:  log,
		Metrics: s.metrics,
	})
	if err != nil {
		log.Error("failed to start session", logger.WithError(err))
		return nil, nil
	}
	s.track(sess.Context().SessionID(), app)
	log.Info("session started", "user", sess.User(), "term", pty.Term)
	return app, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

func remoteHost(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
