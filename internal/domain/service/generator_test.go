package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noteminder/noteminder/internal/domain"
	"github.com/noteminder/noteminder/internal/domain/entity"
)

func birthdayRule() *entity.Rule {
	return &entity.Rule{
		ID:              1,
		Field:           "birthday",
		DefaultTime:     "09:00",
		Offsets:         []string{"-P1D"},
		Repeat:          domain.RepeatYearly,
		MessageTemplate: "{title} has a {field} on {date}",
		Channels:        []domain.Channel{domain.ChannelInApp, domain.ChannelSystem},
		Enabled:         true,
		IgnoreYear:      true,
	}
}

func indexWith(path, title string, dates ...entity.ExtractedDate) entity.Index {
	return entity.Index{path: entity.Document{Title: title, Dates: dates}}
}

func TestGenerate_YearlyBirthday(t *testing.T) {
	// Scenario: yearly birthday rule with a -P1D offset and a 09:00 default
	// time against a 1985 date yields next year's eve at 09:00.
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	index := indexWith("people/anna.md", "Anna",
		entity.ExtractedDate{Field: "birthday", Value: "1985-02-20", Raw: "birthday: 1985-02-20"})

	occurrences := generate([]*entity.Rule{birthdayRule()}, index, now)

	require.Len(t, occurrences, 1)
	occ := occurrences[0]
	assert.Equal(t, time.Date(2025, 2, 19, 9, 0, 0, 0, time.UTC), occ.FireTime)
	assert.Equal(t, "people/anna.md", occ.DocumentPath)
	assert.Equal(t, "Anna", occ.DocumentTitle)
	assert.Equal(t, "Anna has a birthday on 2025-02-20 09:00", occ.Message)
	assert.Equal(t, []domain.Channel{domain.ChannelInApp, domain.ChannelSystem}, occ.Channels)
	assert.False(t, occ.Fired)
}

func TestGenerate_NonRepeatingOffset(t *testing.T) {
	rule := &entity.Rule{
		ID:              2,
		Field:           "due",
		Offsets:         []string{"-PT30M"},
		Repeat:          domain.RepeatNone,
		MessageTemplate: "{field} soon: {title}",
		Channels:        []domain.Channel{domain.ChannelInApp},
		Enabled:         true,
	}
	index := indexWith("tasks/report.md", "Report",
		entity.ExtractedDate{Field: "due", Value: "2025-10-01T14:00:00", Raw: "due:: 2025-10-01T14:00:00"})

	t.Run("Should fire thirty minutes before the due time", func(t *testing.T) {
		now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
		occurrences := generate([]*entity.Rule{rule}, index, now)

		require.Len(t, occurrences, 1)
		assert.Equal(t, time.Date(2025, 10, 1, 13, 30, 0, 0, time.UTC), occurrences[0].FireTime)
	})

	t.Run("Should drop the occurrence once the fire time has passed", func(t *testing.T) {
		now := time.Date(2025, 10, 1, 13, 31, 0, 0, time.UTC)
		occurrences := generate([]*entity.Rule{rule}, index, now)

		assert.Empty(t, occurrences)
	})
}

func TestGenerate_InvalidOffsetSkippedIndividually(t *testing.T) {
	rule := birthdayRule()
	rule.Offsets = []string{"-P1D", "bad-offset"}
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	index := indexWith("people/anna.md", "Anna",
		entity.ExtractedDate{Field: "birthday", Value: "1985-02-20", Raw: "birthday: 1985-02-20"})

	occurrences := generate([]*entity.Rule{rule}, index, now)

	// The invalid offset is skipped, not the whole rule.
	require.Len(t, occurrences, 1)
	assert.Equal(t, time.Date(2025, 2, 19, 9, 0, 0, 0, time.UTC), occurrences[0].FireTime)
}

func TestGenerate_EmptyOffsetsFireAtBaseTime(t *testing.T) {
	rule := &entity.Rule{
		ID:              3,
		Field:           "due",
		Offsets:         nil,
		Repeat:          domain.RepeatNone,
		MessageTemplate: "{title}",
		Channels:        []domain.Channel{domain.ChannelInApp},
		Enabled:         true,
	}
	now := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	index := indexWith("tasks/report.md", "Report",
		entity.ExtractedDate{Field: "due", Value: "2025-10-01T14:00:00", Raw: ""})

	occurrences := generate([]*entity.Rule{rule}, index, now)

	require.Len(t, occurrences, 1)
	assert.Equal(t, time.Date(2025, 10, 1, 14, 0, 0, 0, time.UTC), occurrences[0].FireTime)
}

func TestGenerate_DisabledRuleExcluded(t *testing.T) {
	rule := birthdayRule()
	rule.Enabled = false
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	index := indexWith("people/anna.md", "Anna",
		entity.ExtractedDate{Field: "birthday", Value: "1985-02-20", Raw: ""})

	assert.Empty(t, generate([]*entity.Rule{rule}, index, now))
}

func TestGenerate_MultipleDatesSameField(t *testing.T) {
	// A document may repeat the same field; each date schedules independently.
	rule := &entity.Rule{
		ID:              4,
		Field:           "due",
		Repeat:          domain.RepeatNone,
		MessageTemplate: "{date}",
		Channels:        []domain.Channel{domain.ChannelInApp},
		Enabled:         true,
	}
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	index := indexWith("tasks/multi.md", "Multi",
		entity.ExtractedDate{Field: "due", Value: "2025-03-01T10:00", Raw: ""},
		entity.ExtractedDate{Field: "due", Value: "2025-04-01T10:00", Raw: ""},
		entity.ExtractedDate{Field: "other", Value: "2025-05-01T10:00", Raw: ""})

	occurrences := generate([]*entity.Rule{rule}, index, now)

	require.Len(t, occurrences, 2)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), occurrences[0].FireTime)
	assert.Equal(t, time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC), occurrences[1].FireTime)
}

func TestGenerate_DuplicateDateValuesScheduleIndependently(t *testing.T) {
	// Two identical (field, value) entries on one document are still two
	// independent occurrences with distinct ids.
	rule := &entity.Rule{
		ID:              4,
		Field:           "due",
		Repeat:          domain.RepeatNone,
		MessageTemplate: "{date}",
		Channels:        []domain.Channel{domain.ChannelInApp},
		Enabled:         true,
	}
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	index := indexWith("tasks/multi.md", "Multi",
		entity.ExtractedDate{Field: "due", Value: "2025-03-01T10:00", Raw: ""},
		entity.ExtractedDate{Field: "due", Value: "2025-03-01T10:00", Raw: ""})

	occurrences := generate([]*entity.Rule{rule}, index, now)

	require.Len(t, occurrences, 2)
	assert.NotEqual(t, occurrences[0].ID, occurrences[1].ID)
}

func TestGenerate_Idempotent(t *testing.T) {
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	rules := []*entity.Rule{birthdayRule()}
	index := indexWith("people/anna.md", "Anna",
		entity.ExtractedDate{Field: "birthday", Value: "1985-02-20", Raw: ""})

	first := generate(rules, index, now)
	second := generate(rules, index, now)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].FireTime, second[i].FireTime)
		assert.Equal(t, first[i].Message, second[i].Message)
	}
}

func TestGenerate_NoPastOccurrencesForNonRepeating(t *testing.T) {
	rule := &entity.Rule{
		ID:              5,
		Field:           "due",
		Offsets:         []string{"-P1D", "PT0S", "P1D"},
		Repeat:          domain.RepeatNone,
		MessageTemplate: "{date}",
		Channels:        []domain.Channel{domain.ChannelInApp},
		Enabled:         true,
	}
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	index := indexWith("tasks/a.md", "A",
		entity.ExtractedDate{Field: "due", Value: "2025-06-15T10:00", Raw: ""}, // -P1D and PT0S are past
		entity.ExtractedDate{Field: "due", Value: "2025-06-20T10:00", Raw: ""})

	occurrences := generate([]*entity.Rule{rule}, index, now)

	for _, occ := range occurrences {
		assert.True(t, occ.FireTime.After(now), "occurrence %s fires in the past", occ.ID)
	}
	// first date contributes only +P1D; second date all three offsets
	assert.Len(t, occurrences, 4)
}

func TestGenerate_UnresolvedPlaceholdersLeftAsIs(t *testing.T) {
	rule := &entity.Rule{
		ID:              6,
		Field:           "due",
		Repeat:          domain.RepeatNone,
		MessageTemplate: "{title} {unknown} {path}",
		Channels:        []domain.Channel{domain.ChannelInApp},
		Enabled:         true,
	}
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	index := indexWith("tasks/a.md", "A",
		entity.ExtractedDate{Field: "due", Value: "2025-03-01T10:00", Raw: ""})

	occurrences := generate([]*entity.Rule{rule}, index, now)

	require.Len(t, occurrences, 1)
	assert.Equal(t, "A {unknown} tasks/a.md", occurrences[0].Message)
}

func TestGenerate_UnparseableDateSkipped(t *testing.T) {
	rule := birthdayRule()
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	index := indexWith("people/anna.md", "Anna",
		entity.ExtractedDate{Field: "birthday", Value: "next tuesday", Raw: ""})

	assert.Empty(t, generate([]*entity.Rule{rule}, index, now))
}

func TestGenerate_RepeatingAdvancesPastNow(t *testing.T) {
	rule := &entity.Rule{
		ID:              7,
		Field:           "standup",
		Repeat:          domain.RepeatDaily,
		MessageTemplate: "standup",
		Channels:        []domain.Channel{domain.ChannelInApp},
		Enabled:         true,
	}
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	index := indexWith("cal/standup.md", "Standup",
		entity.ExtractedDate{Field: "standup", Value: "2025-01-01T09:30", Raw: ""})

	occurrences := generate([]*entity.Rule{rule}, index, now)

	require.Len(t, occurrences, 1)
	assert.Equal(t, time.Date(2025, 6, 16, 9, 30, 0, 0, time.UTC), occurrences[0].FireTime)
}
