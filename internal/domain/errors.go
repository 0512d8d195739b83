package domain

import "errors"

// Validation errors, surfaced to the rule author at the editing boundary.
var (
	ErrInvalidRuleField  = errors.New("rule field must be non-empty and match [A-Za-z0-9_-]+")
	ErrInvalidTimeFormat = errors.New("default time must be in HH:MM 24h format")
	ErrInvalidOffset     = errors.New("offset is not a valid calendar duration")
	ErrInvalidRepeat     = errors.New("repeat must be one of none|daily|weekly|monthly|yearly")
	ErrNoChannels        = errors.New("rule must declare at least one delivery channel")
	ErrUnknownChannel    = errors.New("unknown delivery channel")
	ErrRuleNotFound      = errors.New("rule not found")
)

// Engine errors.
var (
	ErrOccurrenceNotFound = errors.New("occurrence not found")
	ErrIndexUnavailable   = errors.New("document index unavailable")
	ErrDispatcherStopped  = errors.New("dispatcher has been stopped")
)

// ErrDeliveryUnsupported marks a channel whose capability is absent on this
// host (e.g. no system notification command). Non-fatal: other channels are
// still attempted and the occurrence is still marked fired.
var ErrDeliveryUnsupported = errors.New("delivery channel unsupported")
