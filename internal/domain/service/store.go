package service

import (
	"sort"
	"sync"
	"time"

	"github.com/noteminder/noteminder/internal/domain/entity"
)

// occurrenceStore holds the current generation cycle's occurrence set. It is
// a full-replacement cache, not a persistent ledger: ReplaceAll discards all
// previous entries together with their fired flags.
type occurrenceStore struct {
	mu   sync.RWMutex
	byID map[string]*entity.Occurrence
}

func newOccurrenceStore() *occurrenceStore {
	return &occurrenceStore{byID: make(map[string]*entity.Occurrence)}
}

// ReplaceAll swaps in a fresh occurrence set, superseding all prior state.
func (s *occurrenceStore) ReplaceAll(occurrences []*entity.Occurrence) {
	next := make(map[string]*entity.Occurrence, len(occurrences))
	for _, occ := range occurrences {
		next[occ.ID] = occ
	}

	s.mu.Lock()
	s.byID = next
	s.mu.Unlock()
}

// DueAsOf returns unfired occurrences whose fire time has arrived, sorted
// ascending by fire time.
func (s *occurrenceStore) DueAsOf(instant time.Time) []*entity.Occurrence {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var due []*entity.Occurrence
	for _, occ := range s.byID {
		if !occ.Fired && !occ.FireTime.After(instant) {
			due = append(due, occ)
		}
	}
	sortByFireTime(due)
	return due
}

// Upcoming returns unfired occurrences strictly after the given instant,
// sorted ascending by fire time and truncated to limit.
func (s *occurrenceStore) Upcoming(limit int, instant time.Time) []*entity.Occurrence {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var upcoming []*entity.Occurrence
	for _, occ := range s.byID {
		if !occ.Fired && occ.FireTime.After(instant) {
			upcoming = append(upcoming, occ)
		}
	}
	sortByFireTime(upcoming)

	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// MarkFired flips the fired flag. Returns false when the occurrence is not
// part of the current generation cycle.
func (s *occurrenceStore) MarkFired(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	occ, ok := s.byID[id]
	if !ok {
		return false
	}
	occ.Fired = true
	return true
}

// Get returns the occurrence with the given id, or nil.
func (s *occurrenceStore) Get(id string) *entity.Occurrence {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id]
}

// Size returns the number of occurrences in the current cycle.
func (s *occurrenceStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// All returns the full current set, sorted, for persistence.
func (s *occurrenceStore) All() []*entity.Occurrence {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*entity.Occurrence, 0, len(s.byID))
	for _, occ := range s.byID {
		all = append(all, occ)
	}
	sortByFireTime(all)
	return all
}

func sortByFireTime(occurrences []*entity.Occurrence) {
	sort.Slice(occurrences, func(i, j int) bool {
		if !occurrences[i].FireTime.Equal(occurrences[j].FireTime) {
			return occurrences[i].FireTime.Before(occurrences[j].FireTime)
		}
		return occurrences[i].ID < occurrences[j].ID
	})
}
