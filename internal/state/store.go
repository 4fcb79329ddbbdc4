package state

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot is the latest persistence health visible to the UI.
type Snapshot struct {
	Pending             bool // an edit is waiting for the debounce window
	LastSaved           time.Time
	LastAttempt         time.Time
	Saves               int
	LastError           error
	ConsecutiveFailures int
	QuotaWarned         bool
}

// IsDegraded returns true when saving has failed more than once in a row.
func (s Snapshot) IsDegraded() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// MarkPending records that a save has been scheduled.
func (s *Store) MarkPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Pending = true
}

// Update records the outcome of a save attempt. When err is non-nil the last
// successful save time is kept and the failure is counted.
func (s *Store) Update(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.snapshot.Pending = false
	s.snapshot.LastAttempt = now
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.LastError = nil
	s.snapshot.LastSaved = now
	s.snapshot.Saves++
	s.snapshot.ConsecutiveFailures = 0
}

// WarnQuota sets the quota warning flag and reports whether this call was the
// first to do so.
func (s *Store) WarnQuota() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot.QuotaWarned {
		return false
	}
	s.snapshot.QuotaWarned = true
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
