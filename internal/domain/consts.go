package domain

import "regexp"

// Channel is a delivery medium for a fired occurrence.
type Channel string

const (
	ChannelInApp    Channel = "in-app"
	ChannelSystem   Channel = "system"
	ChannelSlack    Channel = "slack"
	ChannelTelegram Channel = "telegram"
)

// AllChannels lists every channel a rule may reference.
var AllChannels = []Channel{ChannelInApp, ChannelSystem, ChannelSlack, ChannelTelegram}

// ValidChannel reports whether c belongs to the channel enumeration.
func ValidChannel(c Channel) bool {
	for _, known := range AllChannels {
		if c == known {
			return true
		}
	}
	return false
}

// Repeat is the recurrence cadence of a rule.
type Repeat string

const (
	RepeatNone    Repeat = "none"
	RepeatDaily   Repeat = "daily"
	RepeatWeekly  Repeat = "weekly"
	RepeatMonthly Repeat = "monthly"
	RepeatYearly  Repeat = "yearly"
)

// ValidRepeat reports whether r is a known cadence.
func ValidRepeat(r Repeat) bool {
	switch r {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly:
		return true
	}
	return false
}

// Message template placeholder tokens, substituted at generation time.
const (
	TokenTitle = "{title}"
	TokenField = "{field}"
	TokenDate  = "{date}"
	TokenPath  = "{path}"
)

// FieldNamePattern constrains the watched date attribute name of a rule.
var FieldNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// DefaultMessageTemplate is used when a rule is created without one.
const DefaultMessageTemplate = "Reminder: {field} for {title} ({date})"
