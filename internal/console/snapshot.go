package console

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/coastal-hazard-console/internal/domain"
)

// Source labels where a snapshot's data came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// Snapshot is one immutable fetch result: the whole report collection plus
// provenance. Renderers and subscribers only ever see complete snapshots,
// never a partially replaced one.
type Snapshot struct {
	Seq       uint64
	Reports   []domain.HazardReport
	FetchedAt time.Time
	Source    Source
}

// Store holds the current snapshot. Replacement is wholesale and guarded by a
// monotonically increasing sequence: a refresh that resolves after a newer one
// has already published is discarded instead of clobbering fresher data.
type Store struct {
	mu      sync.RWMutex
	current Snapshot
	seq     atomic.Uint64
	filled  atomic.Bool
}

// NewStore creates an empty snapshot store.
func NewStore() *Store {
	return &Store{}
}

// NextSeq allocates the sequence number for a refresh about to start.
func (s *Store) NextSeq() uint64 {
	return s.seq.Add(1)
}

// Publish installs the snapshot unless a newer one already landed. Returns
// false when the snapshot was discarded as stale.
func (s *Store) Publish(snap Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.filled.Load() && snap.Seq <= s.current.Seq {
		return false
	}
	s.current = snap
	s.filled.Store(true)
	return true
}

// Current returns the latest published snapshot.
func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// CheckReadiness returns nil once at least one snapshot has been published,
// or an error describing why the console is not yet ready.
func (s *Store) CheckReadiness(_ context.Context) error {
	if !s.filled.Load() {
		return errors.New("no snapshot published yet")
	}
	return nil
}
