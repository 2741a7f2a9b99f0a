package common

import "strings"

// ContentType represents the category of a feed item
type ContentType string

const (
	ContentTypeProgramme    ContentType = "programme"
	ContentTypeAssignment   ContentType = "assignment"
	ContentTypeAnnouncement ContentType = "announcement"
	ContentTypeEvent        ContentType = "event"
	ContentTypeResource     ContentType = "resource"
)

// ExpectedContentTypes is the baseline set used by the missing-content analysis
var ExpectedContentTypes = []ContentType{
	ContentTypeProgramme,
	ContentTypeAssignment,
	ContentTypeAnnouncement,
	ContentTypeEvent,
	ContentTypeResource,
}

// String returns the string representation
func (ct ContentType) String() string {
	return string(ct)
}

// IsValid checks if the content type is one of the known categories
func (ct ContentType) IsValid() bool {
	switch ct {
	case ContentTypeProgramme, ContentTypeAssignment, ContentTypeAnnouncement,
		ContentTypeEvent, ContentTypeResource:
		return true
	}
	return false
}

// ParseContentType normalizes raw input into a ContentType, defaulting to programme
func ParseContentType(raw string) ContentType {
	ct := ContentType(strings.ToLower(strings.TrimSpace(raw)))
	if !ct.IsValid() {
		return ContentTypeProgramme
	}
	return ct
}

// Tone is the editorial tone assigned to an item by enrichment
type Tone string

const (
	ToneUrgent        Tone = "urgent"
	ToneFormal        Tone = "formal"
	ToneInformational Tone = "informational"
)

func (t Tone) String() string {
	return string(t)
}

func (t Tone) IsValid() bool {
	return t == ToneUrgent || t == ToneFormal || t == ToneInformational
}

// UrgencyLevel grades how soon an item needs attention
type UrgencyLevel string

const (
	UrgencyNone     UrgencyLevel = "none"
	UrgencyLow      UrgencyLevel = "low"
	UrgencyMedium   UrgencyLevel = "medium"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyCritical UrgencyLevel = "critical"
)

func (u UrgencyLevel) String() string {
	return string(u)
}

// Rank orders urgency levels so callers can take the max of two signals
func (u UrgencyLevel) Rank() int {
	switch u {
	case UrgencyLow:
		return 1
	case UrgencyMedium:
		return 2
	case UrgencyHigh:
		return 3
	case UrgencyCritical:
		return 4
	}
	return 0
}

// MaxUrgency returns the higher of two urgency levels
func MaxUrgency(a, b UrgencyLevel) UrgencyLevel {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// VideoStatus tracks the promo video pipeline state for an item
type VideoStatus string

const (
	VideoStatusNone       VideoStatus = "none"
	VideoStatusProcessing VideoStatus = "processing"
	VideoStatusCompleted  VideoStatus = "completed"
	VideoStatusFailed     VideoStatus = "failed"
)

func (vs VideoStatus) String() string {
	return string(vs)
}

// CanStartAttempt reports whether a new generation attempt may begin.
// Only none/failed/completed items can start; processing must finish first.
func (vs VideoStatus) CanStartAttempt() bool {
	return vs != VideoStatusProcessing
}
