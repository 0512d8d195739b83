// Package calendar implements the pure date arithmetic the scheduling engine
// is built on: signed ISO-8601-style calendar durations, recurrence
// advancement and time-of-day merging. All functions operate on local
// wall-clock instants; time zone resolution is the caller's concern.
package calendar

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/noteminder/noteminder/internal/domain"
)

// ErrInvalidDuration is returned when a string does not parse as a signed
// calendar duration. Recoverable: callers skip the offending offset only.
var ErrInvalidDuration = errors.New("invalid duration format")

// Duration is a signed calendar duration. The sign applies to every
// component at once.
type Duration struct {
	Sign    int // +1 or -1
	Years   int
	Months  int
	Weeks   int
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// durationPattern matches [+-]?P(nY)?(nM)?(nW)?(nD)?(T(nH)?(nM)?(nS)?)?
var durationPattern = regexp.MustCompile(`^([+-]?)P(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)W)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseDuration parses a signed calendar duration string such as "-P1D",
// "+P1Y2M" or "PT30M". At least one component must be present.
func ParseDuration(s string) (Duration, error) {
	matches := durationPattern.FindStringSubmatch(s)
	if matches == nil {
		return Duration{}, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}

	d := Duration{Sign: 1}
	if matches[1] == "-" {
		d.Sign = -1
	}

	hasComponent := false
	fields := []*int{&d.Years, &d.Months, &d.Weeks, &d.Days, &d.Hours, &d.Minutes, &d.Seconds}
	for i, field := range fields {
		raw := matches[i+2]
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return Duration{}, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		*field = value
		hasComponent = true
	}

	if !hasComponent {
		return Duration{}, fmt.Errorf("%w: %q has no components", ErrInvalidDuration, s)
	}

	// The regex lets the time designator through on its own; a T must be
	// followed by at least one of H, M or S.
	if strings.ContainsRune(s, 'T') && matches[6] == "" && matches[7] == "" && matches[8] == "" {
		return Duration{}, fmt.Errorf("%w: %q has a time designator with no components", ErrInvalidDuration, s)
	}

	return d, nil
}

// Apply adds a calendar duration to an instant: years/months first (with
// day-of-month clamped to the last valid day of the target month), then
// weeks/days, then clock-time hours/minutes/seconds.
func Apply(t time.Time, d Duration) time.Time {
	out := t
	if d.Years != 0 || d.Months != 0 {
		out = addMonthsClamped(out, d.Sign*(d.Years*12+d.Months))
	}
	if d.Weeks != 0 || d.Days != 0 {
		out = out.AddDate(0, 0, d.Sign*(d.Weeks*7+d.Days))
	}
	clock := time.Duration(d.Hours)*time.Hour +
		time.Duration(d.Minutes)*time.Minute +
		time.Duration(d.Seconds)*time.Second
	if clock != 0 {
		out = out.Add(time.Duration(d.Sign) * clock)
	}
	return out
}

// AdvanceToNext advances an instant under a repeat cadence until it is
// strictly after the reference instant. For RepeatNone the instant is
// returned unchanged when already in the future; otherwise ok is false.
// The number of cadence steps is estimated analytically so pathological
// inputs (a base date decades in the past) stay cheap.
func AdvanceToNext(t time.Time, cadence domain.Repeat, reference time.Time) (time.Time, bool) {
	if cadence == domain.RepeatNone {
		if t.After(reference) {
			return t, true
		}
		return time.Time{}, false
	}

	if t.After(reference) {
		return t, true
	}

	for n := estimateSteps(t, cadence, reference); ; n++ {
		var next time.Time
		switch cadence {
		case domain.RepeatDaily:
			next = t.AddDate(0, 0, n)
		case domain.RepeatWeekly:
			next = t.AddDate(0, 0, 7*n)
		case domain.RepeatMonthly:
			next = addMonthsClamped(t, n)
		case domain.RepeatYearly:
			next = addMonthsClamped(t, 12*n)
		default:
			return time.Time{}, false
		}
		if next.After(reference) {
			return next, true
		}
	}
}

// estimateSteps returns a lower bound on the number of cadence units between
// t and reference, so the advancement loop starts near the answer instead of
// iterating from one.
func estimateSteps(t time.Time, cadence domain.Repeat, reference time.Time) int {
	delta := reference.Sub(t)
	if delta <= 0 {
		return 1
	}

	var steps int
	switch cadence {
	case domain.RepeatDaily:
		steps = int(delta.Hours() / 25) // slack for DST days
	case domain.RepeatWeekly:
		steps = int(delta.Hours() / (25 * 7))
	case domain.RepeatMonthly:
		steps = (reference.Year()-t.Year())*12 + int(reference.Month()) - int(t.Month()) - 1
	case domain.RepeatYearly:
		steps = reference.Year() - t.Year() - 1
	}

	if steps < 1 {
		return 1
	}
	return steps
}

// CombineDateAndTime replaces only the time-of-day components of an instant
// with the given HH:MM clock, zeroing seconds and sub-second precision.
func CombineDateAndTime(t time.Time, clock string) (time.Time, error) {
	hour, minute, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location()), nil
}

// ParseClock parses an HH:MM 24h clock string.
func ParseClock(clock string) (hour, minute int, err error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid HH:MM time %q: %w", clock, err)
	}
	return parsed.Hour(), parsed.Minute(), nil
}

// NormalizeYear moves an instant into the reference instant's year, advancing
// one more year when the result would not be strictly after the reference.
// Feb 29 collapses to Feb 28 in non-leap target years.
func NormalizeYear(t, reference time.Time) time.Time {
	out := setYearClamped(t, reference.Year())
	if !out.After(reference) {
		out = setYearClamped(t, reference.Year()+1)
	}
	return out
}

func setYearClamped(t time.Time, year int) time.Time {
	day := t.Day()
	if last := lastDayOfMonth(year, t.Month()); day > last {
		day = last
	}
	return time.Date(year, t.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// addMonthsClamped shifts an instant by whole months, clamping the
// day-of-month to the last valid day of the target month instead of letting
// the overflow spill into the following month (Jan 31 + 1 month = Feb 28/29).
func addMonthsClamped(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month()+time.Month(months), 1,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())

	day := t.Day()
	if last := lastDayOfMonth(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
