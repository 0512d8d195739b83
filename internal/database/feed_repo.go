package database

import (
	"fmt"

	"github.com/noteminder/noteminder/internal/domain/contract"
	"github.com/noteminder/noteminder/internal/domain/entity"
)

type feedRepository struct {
	db dbConn
}

func newFeedRepo(db dbConn) contract.FeedRepo {
	return &feedRepository{db: db}
}

func (r *feedRepository) Append(entry *entity.FeedEntry) error {
	query := `
		INSERT INTO feed_entries (id, occurrence_id, rule_field, document_path, message, delivered_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		entry.ID,
		entry.OccurrenceID,
		entry.RuleField,
		entry.DocumentPath,
		entry.Message,
		entry.DeliveredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append feed entry: %w", err)
	}

	return nil
}

func (r *feedRepository) Recent(limit int) ([]*entity.FeedEntry, error) {
	query := `
		SELECT id, occurrence_id, rule_field, document_path, message, delivered_at
		FROM feed_entries
		ORDER BY delivered_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query feed entries: %w", err)
	}
	defer rows.Close()

	var entries []*entity.FeedEntry
	for rows.Next() {
		entry := &entity.FeedEntry{}
		err := rows.Scan(
			&entry.ID,
			&entry.OccurrenceID,
			&entry.RuleField,
			&entry.DocumentPath,
			&entry.Message,
			&entry.DeliveredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feed entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
