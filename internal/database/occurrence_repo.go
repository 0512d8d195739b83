package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/noteminder/noteminder/internal/domain/contract"
	"github.com/noteminder/noteminder/internal/domain/entity"
)

type occurrenceRepository struct {
	db dbConn
}

func newOccurrenceRepo(db dbConn) contract.OccurrenceRepo {
	return &occurrenceRepository{db: db}
}

// SaveSnapshot replaces any previously stored snapshot with the current
// occurrence set. Only the latest generation cycle is ever kept.
func (r *occurrenceRepository) SaveSnapshot(cycleID string, occurrences []*entity.Occurrence) error {
	if occurrences == nil {
		occurrences = []*entity.Occurrence{}
	}
	payload, err := json.Marshal(occurrences)
	if err != nil {
		return fmt.Errorf("failed to marshal occurrence snapshot: %w", err)
	}

	if _, err := r.db.Exec(`DELETE FROM occurrence_snapshots`); err != nil {
		return fmt.Errorf("failed to clear prior snapshots: %w", err)
	}

	query := `INSERT INTO occurrence_snapshots (cycle_id, payload) VALUES (?, ?)`
	if _, err := r.db.Exec(query, cycleID, string(payload)); err != nil {
		return fmt.Errorf("failed to save occurrence snapshot: %w", err)
	}

	return nil
}

func (r *occurrenceRepository) LoadSnapshot() ([]*entity.Occurrence, error) {
	query := `SELECT payload FROM occurrence_snapshots ORDER BY id DESC LIMIT 1`

	var payload string
	err := r.db.QueryRow(query).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load occurrence snapshot: %w", err)
	}

	var occurrences []*entity.Occurrence
	if err := json.Unmarshal([]byte(payload), &occurrences); err != nil {
		return nil, fmt.Errorf("failed to unmarshal occurrence snapshot: %w", err)
	}

	return occurrences, nil
}
