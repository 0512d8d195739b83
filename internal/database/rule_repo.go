package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/noteminder/noteminder/internal/domain"
	"github.com/noteminder/noteminder/internal/domain/contract"
	"github.com/noteminder/noteminder/internal/domain/entity"
)

type ruleRepository struct {
	db dbConn
}

func newRuleRepo(db dbConn) contract.RuleRepo {
	return &ruleRepository{db: db}
}

const ruleColumns = "id, field, default_time, offsets, repeat, message_template, channels, is_enabled, ignore_year, created_at, updated_at"

func (r *ruleRepository) Create(rule *entity.Rule) error {
	query := `
		INSERT INTO rules (field, default_time, offsets, repeat, message_template, channels, is_enabled, ignore_year, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	offsetsJSON, channelsJSON, err := marshalRuleLists(rule)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(query,
		rule.Field,
		rule.DefaultTime,
		offsetsJSON,
		string(rule.Repeat),
		rule.MessageTemplate,
		channelsJSON,
		rule.Enabled,
		rule.IgnoreYear,
		rule.CreatedAt,
		rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create rule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	rule.ID = id
	return nil
}

func (r *ruleRepository) GetByID(id int64) (*entity.Rule, error) {
	query := `SELECT ` + ruleColumns + ` FROM rules WHERE id = ?`

	rule, err := scanRule(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rule: %w", err)
	}

	return rule, nil
}

func (r *ruleRepository) Update(rule *entity.Rule) error {
	query := `
		UPDATE rules SET
			field = ?,
			default_time = ?,
			offsets = ?,
			repeat = ?,
			message_template = ?,
			channels = ?,
			is_enabled = ?,
			ignore_year = ?,
			updated_at = ?
		WHERE id = ?
	`

	offsetsJSON, channelsJSON, err := marshalRuleLists(rule)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(query,
		rule.Field,
		rule.DefaultTime,
		offsetsJSON,
		string(rule.Repeat),
		rule.MessageTemplate,
		channelsJSON,
		rule.Enabled,
		rule.IgnoreYear,
		time.Now(),
		rule.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update rule: %w", err)
	}

	return nil
}

func (r *ruleRepository) Delete(id int64) error {
	query := `DELETE FROM rules WHERE id = ?`

	_, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}

	return nil
}

func (r *ruleRepository) List() ([]*entity.Rule, error) {
	query := `SELECT ` + ruleColumns + ` FROM rules ORDER BY id`

	return r.queryRules(query)
}

func (r *ruleRepository) GetEnabled() ([]*entity.Rule, error) {
	query := `SELECT ` + ruleColumns + ` FROM rules WHERE is_enabled = 1 ORDER BY id`

	return r.queryRules(query)
}

func (r *ruleRepository) SetEnabled(id int64, enabled bool) error {
	query := `
		UPDATE rules SET
			is_enabled = ?,
			updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query, enabled, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set rule enabled status: %w", err)
	}

	return nil
}

func (r *ruleRepository) queryRules(query string, args ...interface{}) ([]*entity.Rule, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer rows.Close()

	var rules []*entity.Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*entity.Rule, error) {
	rule := &entity.Rule{}
	var offsetsJSON, channelsJSON, repeat string

	err := row.Scan(
		&rule.ID,
		&rule.Field,
		&rule.DefaultTime,
		&offsetsJSON,
		&repeat,
		&rule.MessageTemplate,
		&channelsJSON,
		&rule.Enabled,
		&rule.IgnoreYear,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.Repeat = domain.Repeat(repeat)
	if err := json.Unmarshal([]byte(offsetsJSON), &rule.Offsets); err != nil {
		return nil, fmt.Errorf("failed to unmarshal offsets: %w", err)
	}
	if err := json.Unmarshal([]byte(channelsJSON), &rule.Channels); err != nil {
		return nil, fmt.Errorf("failed to unmarshal channels: %w", err)
	}

	return rule, nil
}

func marshalRuleLists(rule *entity.Rule) (offsetsJSON, channelsJSON string, err error) {
	offsets := rule.Offsets
	if offsets == nil {
		offsets = []string{}
	}
	offsetsBytes, err := json.Marshal(offsets)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal offsets: %w", err)
	}

	channels := rule.Channels
	if channels == nil {
		channels = []domain.Channel{}
	}
	channelsBytes, err := json.Marshal(channels)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal channels: %w", err)
	}

	return string(offsetsBytes), string(channelsBytes), nil
}
