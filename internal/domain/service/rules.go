package service

import (
	"context"
	"fmt"
	"time"

	"github.com/noteminder/noteminder/internal/calendar"
	"github.com/noteminder/noteminder/internal/domain"
	"github.com/noteminder/noteminder/internal/domain/contract"
	"github.com/noteminder/noteminder/internal/domain/entity"
)

// ruleService is the editing boundary for rules: malformed input is rejected
// here with a specific error before it can ever reach the generator.
type ruleService struct {
	dm          contract.DataManager
	coordinator *rebuildCoordinator
}

func newRuleService(dm contract.DataManager) *ruleService {
	return &ruleService{
		dm:          dm,
		coordinator: nil, // Will be set later to avoid circular dependency
	}
}

func (s *ruleService) SetCoordinator(coordinator *rebuildCoordinator) {
	s.coordinator = coordinator
}

func (s *ruleService) Create(ctx context.Context, rule *entity.Rule) error {
	applyDefaults(rule)
	if err := validateRule(rule); err != nil {
		return err
	}

	rule.CreatedAt = time.Now()
	rule.UpdatedAt = rule.CreatedAt
	if err := s.dm.Rule().Create(rule); err != nil {
		return fmt.Errorf("failed to create rule: %w", err)
	}

	s.notifyChange()
	return nil
}

func (s *ruleService) Update(ctx context.Context, rule *entity.Rule) error {
	existing, err := s.dm.Rule().GetByID(rule.ID)
	if err != nil {
		return fmt.Errorf("failed to check rule: %w", err)
	}
	if existing == nil {
		return domain.ErrRuleNotFound
	}

	applyDefaults(rule)
	if err := validateRule(rule); err != nil {
		return err
	}

	rule.UpdatedAt = time.Now()
	if err := s.dm.Rule().Update(rule); err != nil {
		return fmt.Errorf("failed to update rule: %w", err)
	}

	s.notifyChange()
	return nil
}

func (s *ruleService) Delete(ctx context.Context, id int64) error {
	existing, err := s.dm.Rule().GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to check rule: %w", err)
	}
	if existing == nil {
		return domain.ErrRuleNotFound
	}

	if err := s.dm.Rule().Delete(id); err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}

	s.notifyChange()
	return nil
}

func (s *ruleService) Get(ctx context.Context, id int64) (*entity.Rule, error) {
	rule, err := s.dm.Rule().GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get rule: %w", err)
	}
	if rule == nil {
		return nil, domain.ErrRuleNotFound
	}
	return rule, nil
}

func (s *ruleService) List(ctx context.Context) ([]*entity.Rule, error) {
	rules, err := s.dm.Rule().List()
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	return rules, nil
}

func (s *ruleService) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	existing, err := s.dm.Rule().GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to check rule: %w", err)
	}
	if existing == nil {
		return domain.ErrRuleNotFound
	}

	if err := s.dm.Rule().SetEnabled(id, enabled); err != nil {
		return fmt.Errorf("failed to set rule enabled status: %w", err)
	}

	s.notifyChange()
	return nil
}

// notifyChange triggers a debounced regeneration: rule mutations are never
// applied to the existing occurrence store in place.
func (s *ruleService) notifyChange() {
	if s.coordinator != nil {
		s.coordinator.Notify()
	}
}

func applyDefaults(rule *entity.Rule) {
	if rule.Repeat == "" {
		rule.Repeat = domain.RepeatNone
	}
	if rule.MessageTemplate == "" {
		rule.MessageTemplate = domain.DefaultMessageTemplate
	}
}

func validateRule(rule *entity.Rule) error {
	if rule.Field == "" || !domain.FieldNamePattern.MatchString(rule.Field) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidRuleField, rule.Field)
	}

	if rule.DefaultTime != "" {
		if _, _, err := calendar.ParseClock(rule.DefaultTime); err != nil {
			return fmt.Errorf("%w: %q", domain.ErrInvalidTimeFormat, rule.DefaultTime)
		}
	}

	if !domain.ValidRepeat(rule.Repeat) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidRepeat, rule.Repeat)
	}

	for _, offset := range rule.Offsets {
		if _, err := calendar.ParseDuration(offset); err != nil {
			return fmt.Errorf("%w: %q", domain.ErrInvalidOffset, offset)
		}
	}

	if len(rule.Channels) == 0 {
		return domain.ErrNoChannels
	}
	for _, channel := range rule.Channels {
		if !domain.ValidChannel(channel) {
			return fmt.Errorf("%w: %q", domain.ErrUnknownChannel, channel)
		}
	}

	return nil
}
