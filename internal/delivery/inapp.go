package delivery

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/noteminder/noteminder/internal/domain"
	"github.com/noteminder/noteminder/internal/domain/contract"
	"github.com/noteminder/noteminder/internal/domain/entity"
	"github.com/noteminder/noteminder/internal/logger"
)

// InApp delivers notifications to the in-process feed. The feed is a bounded
// ring kept in memory; entries are additionally persisted through the feed
// repository unless it is nil (privacy mode).
type InApp struct {
	mu      sync.RWMutex
	entries []*entity.FeedEntry
	maxSize int
	repo    contract.FeedRepo
	nowFn   func() time.Time
}

func NewInApp(maxSize int, repo contract.FeedRepo) *InApp {
	if maxSize <= 0 {
		maxSize = 100
	}

	d := &InApp{
		maxSize: maxSize,
		repo:    repo,
		nowFn:   time.Now,
	}

	if repo != nil {
		prior, err := repo.Recent(maxSize)
		if err != nil {
			logger.Log.Warnf("Could not load prior feed entries: %v", err)
		} else {
			// Recent returns newest first, the ring stores oldest first
			for i := len(prior) - 1; i >= 0; i-- {
				d.entries = append(d.entries, prior[i])
			}
		}
	}

	return d
}

func (d *InApp) Channel() domain.Channel {
	return domain.ChannelInApp
}

func (d *InApp) Deliver(ctx context.Context, occurrence *entity.Occurrence) error {
	entry := &entity.FeedEntry{
		ID:           uuid.NewString(),
		OccurrenceID: occurrence.ID,
		RuleField:    occurrence.RuleField,
		DocumentPath: occurrence.DocumentPath,
		Message:      occurrence.Message,
		DeliveredAt:  d.nowFn(),
	}

	d.mu.Lock()
	d.entries = append(d.entries, entry)
	if len(d.entries) > d.maxSize {
		d.entries = d.entries[len(d.entries)-d.maxSize:]
	}
	d.mu.Unlock()

	if d.repo != nil {
		if err := d.repo.Append(entry); err != nil {
			// The in-memory feed already has the entry, losing the
			// persisted copy is not a delivery failure.
			logger.Log.Warnf("Could not persist feed entry %s: %v", entry.ID, err)
		}
	}

	return nil
}

// Recent returns up to limit feed entries, newest first.
func (d *InApp) Recent(limit int) []*entity.FeedEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if limit <= 0 || limit > len(d.entries) {
		limit = len(d.entries)
	}

	out := make([]*entity.FeedEntry, 0, limit)
	for i := len(d.entries) - 1; i >= len(d.entries)-limit; i-- {
		out = append(out, d.entries[i])
	}
	return out
}
