package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/finance-tracker/tracker/internal/application/adapter"
	domainerror "github.com/finance-tracker/tracker/internal/domain/error"
)

// Manager owns the open sessions, at most one per user.
type Manager struct {
	transactionFeed adapter.TransactionFeed
	goalFeed        adapter.GoalFeed
	cfg             Config

	// base outlives requests; sessions are cancelled through it on Shutdown.
	base   context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	opening  singleflight.Group
}

// NewManager creates a new Manager instance.
func NewManager(transactionFeed adapter.TransactionFeed, goalFeed adapter.GoalFeed, cfg Config) *Manager {
	base, cancel := context.WithCancel(context.Background())

	return &Manager{
		transactionFeed: transactionFeed,
		goalFeed:        goalFeed,
		cfg:             cfg.withDefaults(),
		base:            base,
		cancel:          cancel,
		sessions:        make(map[uuid.UUID]*Session),
	}
}

// Open starts a session for the user, or returns the one already open.
// Feed subscriptions happen outside the manager lock; concurrent opens for
// the same user share one attempt.
func (m *Manager) Open(ctx context.Context, userID uuid.UUID) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s, ok, err := m.lookup(userID); ok || err != nil {
		return s, err
	}

	result := m.opening.DoChan(userID.String(), func() (any, error) {
		return m.open(userID)
	})

	select {
	case res := <-result:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Session), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (m *Manager) open(userID uuid.UUID) (*Session, error) {
	// A previous attempt may have finished after the caller's lookup.
	if s, ok, err := m.lookup(userID); ok || err != nil {
		return s, err
	}

	s := newSession(m.base, userID, m.cfg)

	transactions, err := m.transactionFeed.Subscribe(s.ctx, userID)
	if err != nil {
		s.cancel()
		return nil, fmt.Errorf("failed to subscribe to transactions: %w", err)
	}

	goals, err := m.goalFeed.Subscribe(s.ctx, userID)
	if err != nil {
		s.cancel()
		if closeErr := transactions.Close(); closeErr != nil {
			slog.Warn("failed to close subscription", "user_id", userID, "error", closeErr)
		}
		return nil, fmt.Errorf("failed to subscribe to goals: %w", err)
	}

	s.start(transactions, goals)
	s.touch(m.cfg.Now())

	m.mu.Lock()
	if m.base.Err() != nil {
		m.mu.Unlock()
		s.close()
		return nil, errManagerShutDown()
	}
	if existing, ok := m.sessions[userID]; ok {
		m.mu.Unlock()
		s.close()
		return existing, nil
	}
	m.sessions[userID] = s
	m.mu.Unlock()

	slog.Info("session opened", "user_id", userID)
	return s, nil
}

// lookup returns the open session of the user and marks it as accessed.
func (m *Manager) lookup(userID uuid.UUID) (*Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.base.Err() != nil {
		return nil, false, errManagerShutDown()
	}

	s, ok := m.sessions[userID]
	if ok {
		s.touch(m.cfg.Now())
	}
	return s, ok, nil
}

func errManagerShutDown() error {
	return domainerror.NewFeedError(
		domainerror.ErrCodeSessionClosed, "", "session manager is shut down", domainerror.ErrSessionClosed,
	)
}

// Acquire returns the user's session, opening one when none exists. This
// covers authenticated requests arriving after a restart.
func (m *Manager) Acquire(ctx context.Context, userID uuid.UUID) (*Session, error) {
	if s, ok := m.Get(userID); ok {
		s.touch(m.cfg.Now())
		return s, nil
	}
	return m.Open(ctx, userID)
}

// Get returns the user's open session.
func (m *Manager) Get(userID uuid.UUID) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	return s, ok
}

// Close ends the user's session. Nothing is computed for the user afterwards.
// It reports whether a session was open.
func (m *Manager) Close(userID uuid.UUID) bool {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()

	if !ok {
		return false
	}

	s.close()
	slog.Info("session closed", "user_id", userID)
	return true
}

// CloseIdle ends the sessions last accessed before the given time. Sessions
// with a live watcher are kept. It returns how many were closed.
func (m *Manager) CloseIdle(before time.Time) int {
	m.mu.Lock()
	var idle []*Session
	for id, s := range m.sessions {
		if s.idleSince(before) {
			idle = append(idle, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range idle {
		s.close()
		slog.Info("idle session closed", "user_id", s.userID)
	}
	return len(idle)
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Shutdown closes every session and rejects new ones.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	m.cancel()
	open := make([]*Session, 0, len(m.sessions))
	for id, s := range m.sessions {
		open = append(open, s)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		for _, s := range open {
			s.close()
		}
		close(done)
	}()

	select {
	case <-done:
		slog.Info("all sessions closed", "count", len(open))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to close sessions: %w", ctx.Err())
	}
}
