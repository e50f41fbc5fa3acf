package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/ui"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/views"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidUser     = errors.New("user id is required")
)

// ViewBuilder assembles the collaborators of both views for one user.
type ViewBuilder func(userID string) (views.ProjectViewDeps, views.SampleViewDeps)

// Session is one open dashboard of one user.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time

	UI        *ui.UI
	Navigator *views.Navigator

	lastSeen atomic.Int64
}

func (s *Session) LastSeen() time.Time { return time.Unix(0, s.lastSeen.Load()) }

func (s *Session) touch(now time.Time) { s.lastSeen.Store(now.UnixNano()) }

type Options struct {
	QueueSize int
	Workers   *ui.Workers
	Logger    *slog.Logger
	// StopTimeout bounds how long Close waits for the views to detach.
	StopTimeout time.Duration
	Now         func() time.Time
}

// Registry keeps the open sessions in memory.
type Registry struct {
	build  ViewBuilder
	opts   Options
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry(build ViewBuilder, opts Options) *Registry {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Workers == nil {
		opts.Workers = ui.NewWorkers(4, opts.Logger)
	}
	if opts.StopTimeout <= 0 {
		opts.StopTimeout = 2 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Registry{
		build:    build,
		opts:     opts,
		logger:   opts.Logger.With("component", "sessions"),
		sessions: make(map[string]*Session),
	}
}

// Create opens a session for userID with the given viewport and shows the
// project list.
func (r *Registry) Create(ctx context.Context, userID string, width, height int) (*Session, error) {
	if userID == "" {
		return nil, ErrInvalidUser
	}

	id := uuid.NewString()
	logger := r.opts.Logger.With("session", id, "user", userID)
	u := ui.New(context.Background(), ui.Options{
		QueueSize: r.opts.QueueSize,
		Logger:    logger,
		Workers:   r.opts.Workers,
		Page:      ui.NewPage(width, height),
	})
	u.Start()

	pd, sd := r.build(userID)
	pd.Logger = logger
	sd.Logger = logger
	nav := views.NewNavigator(u, views.NewProjectView(pd), views.NewSampleView(sd), logger)

	if err := u.AccessSync(ctx, nav.Start); err != nil {
		u.Close()
		return nil, fmt.Errorf("start session: %w", err)
	}

	now := r.opts.Now()
	s := &Session{ID: id, UserID: userID, CreatedAt: now, UI: u, Navigator: nav}
	s.touch(now)

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()

	r.logger.Info("session created", "session", id, "user", userID)
	return s, nil
}

// Get returns the session id of userID and marks it as seen. Sessions of
// other users are reported as not found.
func (r *Registry) Get(id, userID string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok || s.UserID != userID {
		return nil, ErrSessionNotFound
	}
	s.touch(r.opts.Now())
	return s, nil
}

// Close detaches the views of session id and stops its UI loop.
func (r *Registry) Close(id, userID string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if !ok || s.UserID != userID {
		r.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	r.mu.Unlock()

	r.stop(s)
	return nil
}

func (r *Registry) stop(s *Session) {
	ctx, cancel := context.WithTimeout(context.Background(), r.opts.StopTimeout)
	defer cancel()
	if err := s.UI.AccessSync(ctx, s.Navigator.Stop); err != nil {
		r.logger.Warn("stop navigator", "session", s.ID, "error", err)
	}
	s.UI.Close()
	r.logger.Info("session closed", "session", s.ID, "user", s.UserID)
}

// Reap closes every session not seen for longer than idle and returns how
// many were closed.
func (r *Registry) Reap(idle time.Duration) int {
	cutoff := r.opts.Now().Add(-idle)

	r.mu.Lock()
	var stale []*Session
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			stale = append(stale, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range stale {
		r.stop(s)
	}
	return len(stale)
}

// CloseAll closes every open session.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	all := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, s)
	}
	clear(r.sessions)
	r.mu.Unlock()

	for _, s := range all {
		r.stop(s)
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
