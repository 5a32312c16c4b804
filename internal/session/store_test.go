package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"learnpath/internal/domain/assessment"

	"github.com/google/uuid"
)

func TestStoreCreateGetUpdate(t *testing.T) {
	store := NewStore(time.Minute)

	sess := store.Create()
	if sess.Step != assessment.StepGoal {
		t.Fatalf("new session step = %d", sess.Step)
	}

	if err := store.Update(sess.ID, func(s *assessment.Session) error {
		s.SetCareerGoal("Data Scientist")
		return nil
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	snap, err := store.Get(sess.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if snap.CareerGoal != "Data Scientist" {
		t.Fatalf("career goal = %q", snap.CareerGoal)
	}

	// Snapshots do not alias live state.
	snap.CareerGoal = "changed"
	again, _ := store.Get(sess.ID)
	if again.CareerGoal != "Data Scientist" {
		t.Fatalf("snapshot aliased live session")
	}
}

func TestStoreGetUnknown(t *testing.T) {
	store := NewStore(time.Minute)
	if _, err := store.Get(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := store.Update(uuid.New(), func(*assessment.Session) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update err = %v, want ErrNotFound", err)
	}
}

func TestStoreTTLExpiry(t *testing.T) {
	store := NewStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	sess := store.Create()
	_ = store.Update(sess.ID, func(s *assessment.Session) error { return nil })

	now = now.Add(2 * time.Minute)
	if _, err := store.Get(sess.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired session still readable: %v", err)
	}

	store.sweepOnce()
	if store.Len() != 0 {
		t.Fatalf("sweep left %d sessions", store.Len())
	}
}

func TestStoreConcurrentUpdates(t *testing.T) {
	store := NewStore(time.Minute)
	sess := store.Create()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Update(sess.ID, func(s *assessment.Session) error {
				s.BeginExtraction()
				return nil
			})
		}()
	}
	wg.Wait()

	var last uint64
	_ = store.Update(sess.ID, func(s *assessment.Session) error {
		last = s.BeginExtraction()
		return nil
	})
	if last != 51 {
		t.Fatalf("extraction seq = %d, want 51", last)
	}
}
