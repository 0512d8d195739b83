package contract

//go:generate mockgen -source=repo.go -destination=../../../mocks/repo.go -package=mocks
//go:generate mockgen -source=delivery.go -destination=../../../mocks/delivery.go -package=mocks

import (
	"context"

	"github.com/noteminder/noteminder/internal/domain/entity"
)

// DataManager aggregates all repository interfaces
type DataManager interface {
	WithTransaction(ctx context.Context, fn func(dm DataManager) error) error
	Rule() RuleRepo
	Occurrence() OccurrenceRepo
	Feed() FeedRepo
}

// RuleRepo defines the contract for the rule repository
type RuleRepo interface {
	Create(rule *entity.Rule) error
	GetByID(id int64) (*entity.Rule, error)
	Update(rule *entity.Rule) error
	Delete(id int64) error
	List() ([]*entity.Rule, error)
	GetEnabled() ([]*entity.Rule, error)
	SetEnabled(id int64, enabled bool) error
}

// OccurrenceRepo persists the generated occurrence set between process runs.
// The snapshot is an opaque blob: it is loaded verbatim at startup and fully
// replaced after each regeneration.
type OccurrenceRepo interface {
	SaveSnapshot(cycleID string, occurrences []*entity.Occurrence) error
	LoadSnapshot() ([]*entity.Occurrence, error)
}

// FeedRepo stores delivered in-app notifications
type FeedRepo interface {
	Append(entry *entity.FeedEntry) error
	Recent(limit int) ([]*entity.FeedEntry, error)
}
