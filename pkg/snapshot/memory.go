package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-leads-dashboard/components/leads"
)

// MemoryStore keeps snapshots in process memory. Useful for tests and for
// running without a database.
type MemoryStore struct {
	mu     sync.RWMutex
	keep   int
	nextID uint
	items  []Snapshot
	now    func() time.Time
}

// NewMemoryStore builds an in-memory store keeping the newest keep snapshots.
func NewMemoryStore(keep int) *MemoryStore {
	if keep <= 0 {
		keep = DefaultKeep
	}
	return &MemoryStore{keep: keep, now: time.Now}
}

// Save stores a copy of items.
func (s *MemoryStore) Save(_ context.Context, items []leads.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.items = append(s.items, Snapshot{
		ID:         s.nextID,
		Leads:      append([]leads.Lead{}, items...),
		CapturedAt: s.now(),
	})
	if extra := len(s.items) - s.keep; extra > 0 {
		s.items = append([]Snapshot(nil), s.items[extra:]...)
	}
	return nil
}

// Latest returns the newest snapshot.
func (s *MemoryStore) Latest(context.Context) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.items) == 0 {
		return Snapshot{}, ErrNoSnapshot
	}
	latest := s.items[len(s.items)-1]
	latest.Leads = append([]leads.Lead{}, latest.Leads...)
	return latest, nil
}

// Len reports how many snapshots are retained.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
