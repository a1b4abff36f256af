package snapshot

import (
	"sync"
	"time"

	"timviec/internal/domain/job"
)

// Store holds the latest raw listing fetched from the backend. Each refresh
// attempt captures a monotonically increasing generation before it starts;
// a slow attempt that finishes after a newer one already applied is dropped
// silently instead of overwriting fresher data.
type Store struct {
	mu          sync.Mutex
	nextGen     uint64
	appliedGen  uint64
	records     []job.Record
	refreshedAt time.Time
}

func NewStore() *Store {
	return &Store{}
}

// NextGeneration reserves the generation token for a refresh attempt.
func (s *Store) NextGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextGen++
	return s.nextGen
}

// Apply installs the records fetched under gen. It reports false, changing
// nothing, when a later generation has already been applied.
func (s *Store) Apply(gen uint64, records []job.Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen <= s.appliedGen {
		return false
	}
	s.appliedGen = gen
	s.records = records
	s.refreshedAt = time.Now()
	return true
}

// Snapshot returns the current records and whether any refresh has applied
// yet. Callers must not mutate the returned slice.
func (s *Store) Snapshot() ([]job.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records, s.appliedGen > 0
}

// RefreshedAt reports when the current snapshot was applied.
func (s *Store) RefreshedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshedAt
}
