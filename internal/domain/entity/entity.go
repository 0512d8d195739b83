package entity

import (
	"time"

	"github.com/noteminder/noteminder/internal/domain"
)

// Rule is a user-authored configuration unit mapping a watched date field to
// notification timing, content and channels.
type Rule struct {
	ID              int64            `json:"id"`
	Field           string           `json:"field"`
	DefaultTime     string           `json:"default_time,omitempty"` // HH:MM, applied when the source date has no time component
	Offsets         []string         `json:"offsets"`                // signed calendar durations, e.g. "-P1D", "+PT30M"
	Repeat          domain.Repeat    `json:"repeat"`
	MessageTemplate string           `json:"message_template"`
	Channels        []domain.Channel `json:"channels"`
	Enabled         bool             `json:"enabled"`
	IgnoreYear      bool             `json:"ignore_year"` // birthday/anniversary semantics
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ExtractedDate is one dated fact attached to a document, produced by the
// host's metadata extraction. The engine never parses document content.
type ExtractedDate struct {
	Field string `json:"field"`
	Value string `json:"value"` // ISO-8601 date or date-time
	Raw   string `json:"raw"`   // source text as it appeared in the document
}

// Document is one indexed document with its extracted dates.
type Document struct {
	Title string          `json:"title"`
	Dates []ExtractedDate `json:"dates"`
}

// Index is a snapshot of the document index, keyed by document path.
type Index map[string]Document

// Occurrence is one concrete, time-stamped, fire-once notification instance
// derived from a rule and a document's date.
type Occurrence struct {
	ID            string           `json:"id"` // content hash, stable across regenerations
	RuleID        int64            `json:"rule_id"`
	RuleField     string           `json:"rule_field"`
	DocumentPath  string           `json:"document_path"`
	DocumentTitle string           `json:"document_title"`
	OriginalDate  time.Time        `json:"original_date"` // source instant before offset application
	FireTime      time.Time        `json:"fire_time"`
	Message       string           `json:"message"`
	Channels      []domain.Channel `json:"channels"`
	Fired         bool             `json:"fired"`
}

// FeedEntry is one delivered notification in the in-app feed.
type FeedEntry struct {
	ID           string    `json:"id"`
	OccurrenceID string    `json:"occurrence_id"`
	RuleField    string    `json:"rule_field"`
	DocumentPath string    `json:"document_path"`
	Message      string    `json:"message"`
	DeliveredAt  time.Time `json:"delivered_at"`
}
