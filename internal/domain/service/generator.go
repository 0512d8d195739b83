package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/noteminder/noteminder/internal/calendar"
	"github.com/noteminder/noteminder/internal/domain"
	"github.com/noteminder/noteminder/internal/domain/entity"
	"github.com/noteminder/noteminder/internal/logger"
)

// indexDateLayouts are the ISO-8601 shapes the document index may hand us.
// Layouts without a clock mark the date as having no time-of-day component.
var indexDateLayouts = []struct {
	layout   string
	hasClock bool
}{
	{time.RFC3339, true},
	{"2006-01-02T15:04:05", true},
	{"2006-01-02T15:04", true},
	{"2006-01-02 15:04", true},
	{"2006-01-02", false},
}

// generate computes the full occurrence set for the given rules and index
// snapshot. It is a pure function of its inputs: same rules, same index and
// same now always produce the same set with the same occurrence ids.
// Failures local to one rule, one offset or one document never abort the
// rest; the result is always a best-effort complete set.
func generate(rules []*entity.Rule, index entity.Index, now time.Time) []*entity.Occurrence {
	var occurrences []*entity.Occurrence

	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		for path, doc := range index {
			for di, date := range doc.Dates {
				if date.Field != rule.Field {
					continue
				}
				occurrences = append(occurrences, generateForDate(rule, path, doc.Title, di, date, now)...)
			}
		}
	}

	// Iteration over the index map is unordered; sort so every regeneration
	// stores and persists the set in the same order.
	sort.Slice(occurrences, func(i, j int) bool {
		if !occurrences[i].FireTime.Equal(occurrences[j].FireTime) {
			return occurrences[i].FireTime.Before(occurrences[j].FireTime)
		}
		return occurrences[i].ID < occurrences[j].ID
	})

	return occurrences
}

// generateForDate expands one (rule, extracted date) pair into occurrences,
// one per offset, recurrence-advanced and filtered to the future.
func generateForDate(rule *entity.Rule, path, title string, dateIndex int, date entity.ExtractedDate, now time.Time) []*entity.Occurrence {
	base, hasClock, err := parseIndexDate(date.Value, now.Location())
	if err != nil {
		// Unparseable values are the index layer's problem; skip quietly.
		return nil
	}

	if rule.IgnoreYear {
		base = calendar.NormalizeYear(base, now)
	}

	if !hasClock && rule.DefaultTime != "" {
		combined, err := calendar.CombineDateAndTime(base, rule.DefaultTime)
		if err == nil {
			base = combined
		}
	}

	offsets := rule.Offsets
	zeroOffset := len(offsets) == 0
	if zeroOffset {
		offsets = []string{""} // fire at the base time itself
	}

	var out []*entity.Occurrence
	for i, offset := range offsets {
		duration := calendar.Duration{Sign: 1}
		if !zeroOffset {
			parsed, err := calendar.ParseDuration(offset)
			if err != nil {
				logger.Log.Warnf("Skipping invalid offset %q on rule %d: %v", offset, rule.ID, err)
				continue
			}
			duration = parsed
		}

		candidate := calendar.Apply(base, duration)
		fireTime, ok := calendar.AdvanceToNext(candidate, rule.Repeat, now)
		if !ok {
			continue
		}

		out = append(out, &entity.Occurrence{
			ID:            occurrenceID(rule.ID, path, date.Field, date.Value, dateIndex, i),
			RuleID:        rule.ID,
			RuleField:     rule.Field,
			DocumentPath:  path,
			DocumentTitle: title,
			OriginalDate:  base,
			FireTime:      fireTime,
			Message:       resolveMessage(rule.MessageTemplate, title, rule.Field, base, hasClock || rule.DefaultTime != "", path),
			Channels:      append([]domain.Channel(nil), rule.Channels...),
			Fired:         false,
		})
	}

	return out
}

// parseIndexDate parses an ISO date or date-time string as a local wall-clock
// instant and reports whether it carried a time-of-day component.
func parseIndexDate(value string, loc *time.Location) (time.Time, bool, error) {
	trimmed := strings.TrimSpace(value)
	for _, candidate := range indexDateLayouts {
		parsed, err := time.ParseInLocation(candidate.layout, trimmed, loc)
		if err == nil {
			return parsed, candidate.hasClock, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("unrecognized date value %q", value)
}

// resolveMessage substitutes the placeholder tokens. Substitution is literal
// text replacement; unresolved tokens are left as-is.
func resolveMessage(template, title, field string, base time.Time, withClock bool, path string) string {
	dateLayout := "2006-01-02"
	if withClock {
		dateLayout = "2006-01-02 15:04"
	}

	message := template
	message = strings.ReplaceAll(message, domain.TokenTitle, title)
	message = strings.ReplaceAll(message, domain.TokenField, field)
	message = strings.ReplaceAll(message, domain.TokenDate, base.Format(dateLayout))
	message = strings.ReplaceAll(message, domain.TokenPath, path)
	return message
}

// occurrenceID derives a stable identity from the occurrence's source
// coordinates, so regeneration with unchanged inputs is idempotent. The
// date's position in the document's list is part of the identity: a document
// may legitimately carry the same (field, value) pair more than once.
func occurrenceID(ruleID int64, path, field, value string, dateIndex, offsetIndex int) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%d\x1f%s\x1f%s\x1f%s\x1f%d\x1f%d", ruleID, path, field, value, dateIndex, offsetIndex))
	return hex.EncodeToString(sum[:16])
}
