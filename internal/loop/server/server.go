// Package server tracks the sessions of connected players. Every connection
// plays its own independent session; the server only hands out identities,
// enforces the session limit and coordinates shutdown.
package server

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/starfall/internal/loop"
	"github.com/tomz197/starfall/internal/loop/config"
)

var (
	ErrServerFull   = errors.New("server is full")
	ErrShuttingDown = errors.New("server is shutting down")
)

// GameServer is the interface clients use to register with the server.
type GameServer interface {
	Register(ctx context.Context, username string) (*Handle, error)
	Unregister(h *Handle, res loop.Result)
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// Handle represents one connected player's session.
type Handle struct {
	ID       string
	Username string
	Started  time.Time

	ctx      context.Context
	cancel   context.CancelFunc
	shutdown chan struct{}
}

// Context is cancelled when the server forcibly ends the session.
func (h *Handle) Context() context.Context {
	return h.ctx
}

// ShuttingDown is closed when the server starts shutting down.
func (h *Handle) ShuttingDown() <-chan struct{} {
	return h.shutdown
}

// Options configures a Server.
type Options struct {
	MaxSessions int // Defaults to config.MaxSessions
	Logger      *log.Logger
}

// Stats summarizes finished sessions since the server started.
type Stats struct {
	Active    int
	Finished  int
	BestScore int
	BestName  string
}

// Server manages session registrations.
type Server struct {
	mu       sync.RWMutex
	sessions map[string]*Handle
	max      int
	closing  bool
	finished int
	best     int
	bestName string
	logger   *log.Logger
}

// NewServer creates a new server.
func NewServer(opts Options) *Server {
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = config.MaxSessions
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Server{
		sessions: make(map[string]*Handle),
		max:      opts.MaxSessions,
		logger:   opts.Logger,
	}
}

// Register admits a new session. The handle's context derives from ctx.
func (s *Server) Register(ctx context.Context, username string) (*Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closing {
		return nil, ErrShuttingDown
	}
	if len(s.sessions) >= s.max {
		s.logger.Warn("session rejected", "user", username, "active", len(s.sessions))
		return nil, ErrServerFull
	}

	hctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		ID:       uuid.NewString(),
		Username: username,
		Started:  time.Now(),
		ctx:      hctx,
		cancel:   cancel,
		shutdown: make(chan struct{}),
	}
	s.sessions[h.ID] = h
	s.logger.Info("session registered", "id", h.ID, "user", username, "active", len(s.sessions))
	return h, nil
}

// Unregister removes a session and records its result. Unregistering twice is a no-op.
func (s *Server) Unregister(h *Handle, res loop.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[h.ID]; !ok {
		return
	}
	delete(s.sessions, h.ID)
	h.cancel()

	s.finished++
	if res.Score > s.best {
		s.best = res.Score
		s.bestName = h.Username
	}
	s.logger.Info("session unregistered",
		"id", h.ID,
		"user", h.Username,
		"reason", res.Reason,
		"score", res.Score,
		"duration", time.Since(h.Started).Round(time.Second),
		"active", len(s.sessions),
	)
}

// Len returns the number of active sessions.
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Stats returns a summary of the server's sessions.
func (s *Server) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Active:    len(s.sessions),
		Finished:  s.finished,
		BestScore: s.best,
		BestName:  s.bestName,
	}
}

// Shutdown notifies every session, stops admitting new ones and waits up to
// grace for them to unregister. Sessions still running after grace are cancelled.
func (s *Server) Shutdown(grace time.Duration) {
	s.mu.Lock()
	if !s.closing {
		s.closing = true
		for _, h := range s.sessions {
			close(h.shutdown)
		}
	}
	s.mu.Unlock()

	deadline := time.After(grace)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.mu.RLock()
			for _, h := range s.sessions {
				h.cancel()
			}
			remaining := len(s.sessions)
			s.mu.RUnlock()
			if remaining > 0 {
				s.logger.Warn("cancelled sessions after grace period", "remaining", remaining)
			}
			return
		case <-ticker.C:
			if s.Len() == 0 {
				return
			}
		}
	}
}
