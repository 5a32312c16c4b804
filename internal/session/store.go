package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"learnpath/internal/domain/assessment"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// Store holds live assessment sessions in memory. Each session is owned by
// exactly one flow; Update serializes all mutation so handlers never touch a
// session concurrently.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*assessment.Session
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store{
		sessions: make(map[uuid.UUID]*assessment.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *Store) Create() *assessment.Session {
	sess := assessment.NewSession()
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get returns a snapshot copy of the session. Callers needing to mutate go
// through Update instead.
func (s *Store) Get(id uuid.UUID) (assessment.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || s.expired(sess) {
		return assessment.Session{}, ErrNotFound
	}
	return *sess, nil
}

// Update runs fn against the live session under the store lock. fn must not
// block on I/O; extraction calls snapshot what they need and re-enter via a
// second Update when they complete.
func (s *Store) Update(id uuid.UUID, fn func(*assessment.Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || s.expired(sess) {
		return ErrNotFound
	}
	return fn(sess)
}

func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes expired sessions every interval until ctx is done.
func (s *Store) Sweep(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.sweepOnce()
		}
	}
}

func (s *Store) sweepOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
		}
	}
}

func (s *Store) expired(sess *assessment.Session) bool {
	return s.now().Sub(sess.UpdatedAt) > s.ttl
}
