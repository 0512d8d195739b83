package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noteminder/noteminder/internal/domain/contract"
	"github.com/noteminder/noteminder/internal/domain/entity"
	"github.com/noteminder/noteminder/internal/logger"
)

// engineService owns the occurrence store, the generator and the dispatcher:
// the full schedule-generation and firing pipeline behind the control
// surface.
type engineService struct {
	dm         contract.DataManager
	store      *occurrenceStore
	dispatcher *dispatcher
	privacy    bool
	nowFn      func() time.Time

	// checkMu serializes store swaps against dispatcher due-check passes.
	checkMu sync.Mutex

	indexMu sync.RWMutex
	index   entity.Index
}

// SetIndex replaces the engine's view of the document index. The next
// Rebuild generates from this snapshot.
func (s *engineService) SetIndex(index entity.Index) {
	s.indexMu.Lock()
	s.index = index
	s.indexMu.Unlock()
}

// RebuildWith swaps in a fresh index snapshot and rebuilds in one step.
func (s *engineService) RebuildWith(ctx context.Context, index entity.Index) (int, error) {
	s.SetIndex(index)
	return s.Rebuild(ctx)
}

// Rebuild regenerates the full occurrence set from the enabled rules and the
// current index snapshot, replacing the store contents wholesale, and
// persists the new cycle unless privacy mode is on. Returns the occurrence
// count of the new cycle.
func (s *engineService) Rebuild(ctx context.Context) (int, error) {
	rules, err := s.dm.Rule().GetEnabled()
	if err != nil {
		return 0, fmt.Errorf("failed to load enabled rules: %w", err)
	}

	s.indexMu.RLock()
	index := s.index
	s.indexMu.RUnlock()

	if index == nil {
		// Recoverable: this cycle yields zero occurrences and the next
		// rebuild trigger retries.
		logger.Log.Warn("Document index unavailable, generating empty cycle")
	}

	occurrences := generate(rules, index, s.nowFn())

	// The store owns the occurrence pointers once swapped in, and a due-check
	// pass flips their Fired flags. Persisting under the same lock keeps the
	// snapshot a consistent view of the cycle.
	s.checkMu.Lock()
	s.store.ReplaceAll(occurrences)
	s.persist(occurrences)
	s.checkMu.Unlock()

	logger.Log.Infof("Rebuilt schedule: %d rule(s), %d document(s), %d occurrence(s)",
		len(rules), len(index), len(occurrences))

	return len(occurrences), nil
}

// LoadPrior seeds the store with the persisted snapshot from the previous
// run. Called once at startup, before the first regeneration overwrites it.
func (s *engineService) LoadPrior(ctx context.Context) {
	if s.privacy {
		logger.Log.Info("Privacy mode on, skipping persisted occurrence snapshot")
		return
	}

	occurrences, err := s.dm.Occurrence().LoadSnapshot()
	if err != nil {
		logger.Log.Errorf("Failed to load prior occurrence snapshot: %v", err)
		return
	}
	if len(occurrences) == 0 {
		return
	}

	s.checkMu.Lock()
	s.store.ReplaceAll(occurrences)
	s.checkMu.Unlock()
	logger.Log.Infof("Loaded %d occurrence(s) from prior snapshot", len(occurrences))
}

// persist writes the new cycle to storage. Failures are logged and ignored:
// the in-memory schedule stays authoritative for the running process.
func (s *engineService) persist(occurrences []*entity.Occurrence) {
	if s.privacy {
		return
	}

	cycleID := uuid.NewString()
	if err := s.dm.Occurrence().SaveSnapshot(cycleID, occurrences); err != nil {
		logger.Log.Errorf("Failed to persist occurrence snapshot (cycle %s): %v", cycleID, err)
	}
}

// Control surface, consumed by the HTTP layer.

func (s *engineService) Start()         { s.dispatcher.Start() }
func (s *engineService) Stop()          { s.dispatcher.Stop() }
func (s *engineService) Pause()         { s.dispatcher.Pause() }
func (s *engineService) Resume()        { s.dispatcher.Resume() }
func (s *engineService) IsPaused() bool { return s.dispatcher.IsPaused() }

// GetUpcoming returns the next unfired occurrences ordered by fire time.
func (s *engineService) GetUpcoming(limit int) []*entity.Occurrence {
	return s.store.Upcoming(limit, s.nowFn())
}

// FireNow delivers one occurrence immediately, bypassing its due time.
func (s *engineService) FireNow(id string) error {
	return s.dispatcher.FireNow(id)
}

// Size returns the occurrence count of the current cycle.
func (s *engineService) Size() int {
	return s.store.Size()
}
