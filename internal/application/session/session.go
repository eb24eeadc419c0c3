// Package session keeps the derived dashboard state of logged-in users.
//
// A Session subscribes to the user's transaction and goal feeds and
// recomputes the summary and goal progress from scratch on every snapshot.
// Closing a session stops all computation for that user immediately.
package session

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/tracker/internal/application/adapter"
	"github.com/finance-tracker/tracker/internal/application/ingest"
	"github.com/finance-tracker/tracker/internal/application/usecase/dashboard"
	"github.com/finance-tracker/tracker/internal/application/usecase/goal"
	"github.com/finance-tracker/tracker/internal/domain/entity"
	domainerror "github.com/finance-tracker/tracker/internal/domain/error"
	"github.com/finance-tracker/tracker/internal/domain/valueobject"
)

// Config holds the settings shared by every session.
type Config struct {
	// Location resolves "today" for the current month.
	Location *time.Location
	// InitialSnapshotWait bounds how long readers wait for the first snapshot.
	InitialSnapshotWait time.Duration
	// Now is the clock; defaults to time.Now.
	Now func() time.Time
}

func (c Config) withDefaults() Config {
	if c.Location == nil {
		c.Location = time.UTC
	}
	if c.InitialSnapshotWait <= 0 {
		c.InitialSnapshotWait = 3 * time.Second
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// View is an immutable copy of a session's derived state.
type View struct {
	UserID uuid.UUID

	Summary      entity.Summary
	Transactions []entity.Transaction
	Goals        []entity.GoalWithProgress

	TransactionSeq uint64
	GoalSeq        uint64
	UpdatedAt      time.Time

	// LastError is the most recent feed failure, cleared by the next good snapshot.
	LastError error
}

// Session holds the latest derived state of one user.
type Session struct {
	userID uuid.UUID
	cfg    Config

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu   sync.RWMutex
	view View

	// lastAccess is the unix nano time of the last Open or Acquire.
	lastAccess atomic.Int64

	transactionsReady chan struct{}
	goalsReady        chan struct{}
	readyOnce         [2]sync.Once

	watchMu  sync.Mutex
	watchers map[int]*adapter.Mailbox[View]
	nextID   int
}

func newSession(parent context.Context, userID uuid.UUID, cfg Config) *Session {
	ctx, cancel := context.WithCancel(parent)

	return &Session{
		userID:            userID,
		cfg:               cfg,
		ctx:               ctx,
		cancel:            cancel,
		view:              View{UserID: userID, Summary: dashboard.ComputeSummary(nil, cfg.Now().In(cfg.Location))},
		transactionsReady: make(chan struct{}),
		goalsReady:        make(chan struct{}),
		watchers:          make(map[int]*adapter.Mailbox[View]),
	}
}

// UserID returns the owner of the session.
func (s *Session) UserID() uuid.UUID {
	return s.userID
}

// Done is closed once the session has been closed.
func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Snapshot returns the current view without waiting.
func (s *Session) Snapshot() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Summary returns the view once the first transaction snapshot was computed.
// The summary is recomputed when the current month changed since then.
func (s *Session) Summary(ctx context.Context) (View, error) {
	v, err := s.waitFor(ctx, s.transactionsReady)
	if err != nil {
		return View{}, err
	}
	return s.refreshMonth(v), nil
}

func (s *Session) refreshMonth(v View) View {
	today := s.cfg.Now().In(s.cfg.Location)
	if valueobject.MonthOf(today) == v.Summary.CurrentMonth {
		return v
	}

	v.Summary = dashboard.ComputeSummary(v.Transactions, today)

	s.mu.Lock()
	if s.ctx.Err() == nil && s.view.TransactionSeq == v.TransactionSeq {
		s.view.Summary = v.Summary
	}
	s.mu.Unlock()
	return v
}

// Goals returns the view once the first goal snapshot was computed.
func (s *Session) Goals(ctx context.Context) (View, error) {
	return s.waitFor(ctx, s.goalsReady)
}

func (s *Session) waitFor(ctx context.Context, ready <-chan struct{}) (View, error) {
	timer := time.NewTimer(s.cfg.InitialSnapshotWait)
	defer timer.Stop()

	select {
	case <-ready:
	case <-s.ctx.Done():
		return View{}, domainerror.NewFeedError(
			domainerror.ErrCodeSessionClosed, "", "session closed", domainerror.ErrSessionClosed,
		)
	case <-ctx.Done():
		return View{}, ctx.Err()
	case <-timer.C:
		return View{}, domainerror.NewFeedError(
			domainerror.ErrCodeSnapshotNotReady, "", "first snapshot did not arrive in time", domainerror.ErrSnapshotNotReady,
		)
	}

	// Closing can race with readiness; a closed session serves nothing.
	if s.ctx.Err() != nil {
		return View{}, domainerror.NewFeedError(
			domainerror.ErrCodeSessionClosed, "", "session closed", domainerror.ErrSessionClosed,
		)
	}
	return s.Snapshot(), nil
}

// Watch returns a latest-wins channel receiving the view after every
// recompute, and a function releasing it. The channel is closed when the
// session closes.
func (s *Session) Watch() (<-chan View, func()) {
	box := adapter.NewMailbox[View]()

	s.watchMu.Lock()
	if s.ctx.Err() != nil {
		s.watchMu.Unlock()
		box.Close()
		return box.C(), func() {}
	}
	id := s.nextID
	s.nextID++
	s.watchers[id] = box
	s.watchMu.Unlock()

	release := func() {
		s.watchMu.Lock()
		delete(s.watchers, id)
		s.watchMu.Unlock()
		box.Close()
	}
	return box.C(), release
}

func (s *Session) touch(at time.Time) {
	s.lastAccess.Store(at.UnixNano())
}

// idleSince reports whether the session was last accessed before the given
// time and nobody is watching it.
func (s *Session) idleSince(before time.Time) bool {
	if s.lastAccess.Load() >= before.UnixNano() {
		return false
	}

	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	return len(s.watchers) == 0
}

func (s *Session) broadcast(v View) {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	for _, box := range s.watchers {
		box.Put(v)
	}
}

func (s *Session) start(transactions adapter.Subscription[ingest.RawTransaction], goals adapter.Subscription[ingest.RawGoal]) {
	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		consume(s, adapter.CollectionTransactions, transactions, s.applyTransactions)
	}()
	go func() {
		defer s.wg.Done()
		consume(s, adapter.CollectionGoals, goals, s.applyGoals)
	}()
}

// consume drains one subscription until the session closes.
func consume[T any](s *Session, collection adapter.Collection, sub adapter.Subscription[T], apply func(adapter.Snapshot[T])) {
	defer func() {
		if err := sub.Close(); err != nil {
			slog.Warn("failed to close subscription",
				"user_id", s.userID,
				"collection", collection,
				"error", err,
			)
		}
	}()

	snapshots := sub.Snapshots()
	errs := sub.Errors()

	for {
		select {
		case <-s.ctx.Done():
			return
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			apply(snap)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			s.recordError(collection, err)
		}
	}
}

func (s *Session) applyTransactions(snap adapter.Snapshot[ingest.RawTransaction]) {
	records, issues := ingest.Transactions(snap.Records)
	logIssues(s.userID, adapter.CollectionTransactions, snap.Seq, issues)

	summary := dashboard.ComputeSummary(records, s.cfg.Now().In(s.cfg.Location))

	s.publish(func(v *View) bool {
		if snap.Seq <= v.TransactionSeq {
			return false
		}
		v.Summary = summary
		v.Transactions = records
		v.TransactionSeq = snap.Seq
		return true
	}, 0, s.transactionsReady)
}

func (s *Session) applyGoals(snap adapter.Snapshot[ingest.RawGoal]) {
	goals, issues := ingest.Goals(snap.Records)
	logIssues(s.userID, adapter.CollectionGoals, snap.Seq, issues)

	withProgress := goal.WithProgress(goals)

	s.publish(func(v *View) bool {
		if snap.Seq <= v.GoalSeq {
			return false
		}
		v.Goals = withProgress
		v.GoalSeq = snap.Seq
		return true
	}, 1, s.goalsReady)
}

// publish applies update under the lock unless the session is closed or the
// update is stale, then wakes readers and watchers.
func (s *Session) publish(update func(v *View) bool, readyIndex int, ready chan struct{}) {
	s.mu.Lock()
	if s.ctx.Err() != nil || !update(&s.view) {
		s.mu.Unlock()
		return
	}
	s.view.UpdatedAt = s.cfg.Now()
	s.view.LastError = nil
	v := s.view
	s.mu.Unlock()

	s.readyOnce[readyIndex].Do(func() { close(ready) })
	s.broadcast(v)
}

func (s *Session) recordError(collection adapter.Collection, err error) {
	slog.Error("feed delivery failed, keeping last summary",
		"user_id", s.userID,
		"collection", collection,
		"error", err,
	)

	s.mu.Lock()
	if s.ctx.Err() == nil {
		s.view.LastError = err
	}
	s.mu.Unlock()
}

func (s *Session) close() {
	s.cancel()
	s.wg.Wait()

	s.watchMu.Lock()
	for id, box := range s.watchers {
		box.Close()
		delete(s.watchers, id)
	}
	s.watchMu.Unlock()
}

func logIssues(userID uuid.UUID, collection adapter.Collection, seq uint64, issues []ingest.Issue) {
	for _, issue := range issues {
		slog.Debug("coerced record field",
			"user_id", userID,
			"collection", collection,
			"seq", seq,
			"issue", issue.String(),
		)
	}
}
