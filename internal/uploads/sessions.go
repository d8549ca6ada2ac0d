package uploads

import (
	"log/slog"
	"sync"
	"time"

	"github.com/JaimeStill/portfolio-admin/pkg/lifecycle"
	"github.com/google/uuid"
)

// Sessions keeps one Registry per open edit session. A session is leased for
// the duration of a save so the same registry never backs two passes at once.
type Sessions struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

type session struct {
	registry *Registry
	busy     bool
	touched  time.Time
}

// NewSessions creates a session store whose idle sessions expire after ttl.
func NewSessions(ttl time.Duration, logger *slog.Logger) *Sessions {
	return &Sessions{
		sessions: make(map[uuid.UUID]*session),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger.With("system", "upload-sessions"),
	}
}

// Start runs the expiry sweeper until the lifecycle context is cancelled.
func (s *Sessions) Start(lc *lifecycle.Coordinator) error {
	interval := max(s.ttl/2, time.Second)

	lc.OnShutdown(func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-lc.Context().Done():
				s.mu.Lock()
				n := len(s.sessions)
				clear(s.sessions)
				s.mu.Unlock()
				s.logger.Info("upload sessions discarded", "count", n)
				return
			case <-ticker.C:
				if n := s.Sweep(); n > 0 {
					s.logger.Info("expired upload sessions removed", "count", n)
				}
			}
		}
	})

	return nil
}

// Open starts a new edit session and returns its id.
func (s *Sessions) Open() uuid.UUID {
	id := uuid.New()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &session{registry: NewRegistry(), touched: s.now()}
	return id
}

// Registry returns the registry of an open session.
func (s *Sessions) Registry(id uuid.UUID) (*Registry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.touched = s.now()
	return sess.registry, nil
}

// Close clears and forgets a session. A session leased to a running save
// cannot be closed.
func (s *Sessions) Close(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if sess.busy {
		return ErrSessionBusy
	}

	sess.registry.Clear()
	delete(s.sessions, id)
	return nil
}

// Checkout leases the session for one save. A nil id yields a lease over an
// empty source, for saves that carry no new images.
func (s *Sessions) Checkout(id *uuid.UUID) (*Lease, error) {
	if id == nil {
		return &Lease{source: Bindings{}}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[*id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.busy {
		return nil, ErrSessionBusy
	}

	sess.busy = true
	sess.touched = s.now()

	return &Lease{owner: s, id: *id, source: sess.registry.Snapshot(), registry: sess.registry}, nil
}

// Sweep removes idle sessions older than the ttl and returns how many were removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.busy || sess.touched.After(cutoff) {
			continue
		}
		sess.registry.Clear()
		delete(s.sessions, id)
		removed++
	}
	return removed
}

// Len returns the number of open sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Sessions) release(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.busy = false
		sess.touched = s.now()
	}
}

// Lease is exclusive use of one session's registry during a save. The save
// sees the bindings registered before Checkout; images staged while it runs
// stay in the registry for the next save.
// Exactly one of Commit or Release ends it; later calls are no-ops.
type Lease struct {
	owner    *Sessions
	id       uuid.UUID
	source   Bindings
	registry *Registry
	once     sync.Once
}

// Source returns the bindings available to the save.
func (l *Lease) Source() Source {
	return l.source
}

// Commit drops the bindings the save consumed and ends the lease.
func (l *Lease) Commit() {
	l.once.Do(func() {
		if l.registry != nil {
			for id := range l.source {
				l.registry.Remove(id)
			}
		}
		if l.owner != nil {
			l.owner.release(l.id)
		}
	})
}

// Release ends the lease and keeps the registry intact so a failed save can be retried.
func (l *Lease) Release() {
	l.once.Do(func() {
		if l.owner != nil {
			l.owner.release(l.id)
		}
	})
}

// Save runs fn with the bindings of session id under a lease. The consumed
// bindings are dropped when fn succeeds and kept intact when it fails or panics.
func (s *Sessions) Save(id *uuid.UUID, fn func(images Source) error) error {
	lease, err := s.Checkout(id)
	if err != nil {
		return err
	}
	defer lease.Release()

	if err := fn(lease.Source()); err != nil {
		return err
	}

	lease.Commit()
	return nil
}
