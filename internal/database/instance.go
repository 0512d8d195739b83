package database

import (
	"context"
	"fmt"

	"github.com/noteminder/noteminder/internal/domain/contract"
)

// instance implements DataManager interface
type instance struct {
	db             *DB
	ruleRepo       contract.RuleRepo
	occurrenceRepo contract.OccurrenceRepo
	feedRepo       contract.FeedRepo
}

// NewInstance creates a new database instance with all repositories
func NewInstance(db *DB) contract.DataManager {
	instance := &instance{
		db: db,
	}
	instance.repoInstances()
	return instance
}

// repoInstances initializes all repositories
func (i *instance) repoInstances() {
	i.ruleRepo = newRuleRepo(i.db.conn)
	i.occurrenceRepo = newOccurrenceRepo(i.db.conn)
	i.feedRepo = newFeedRepo(i.db.conn)
}

// repoInstancesWithConn creates repository instances with custom dbConn
func repoInstancesWithConn(db dbConn) *instance {
	return &instance{
		ruleRepo:       newRuleRepo(db),
		occurrenceRepo: newOccurrenceRepo(db),
		feedRepo:       newFeedRepo(db),
	}
}

// Rule returns the rule repository
func (i *instance) Rule() contract.RuleRepo {
	return i.ruleRepo
}

// Occurrence returns the occurrence snapshot repository
func (i *instance) Occurrence() contract.OccurrenceRepo {
	return i.occurrenceRepo
}

// Feed returns the in-app feed repository
func (i *instance) Feed() contract.FeedRepo {
	return i.feedRepo
}

// WithTransaction executes a function within a database transaction
func (i *instance) WithTransaction(ctx context.Context, fn func(dm contract.DataManager) error) error {
	tx, err := i.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txInstance := repoInstancesWithConn(tx)
	err = fn(txInstance)
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
