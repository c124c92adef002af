package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ContentType selects which payload shape a content record carries.
type ContentType string

const (
	ContentCBTThoughtRecords    ContentType = "cbt_thought_records"
	ContentMindfulnessBreathing ContentType = "mindfulness_breathing"
	ContentMusicTherapy         ContentType = "music_therapy"
	ContentGuidedMeditation     ContentType = "guided_meditation"
	ContentJournaling           ContentType = "journaling"
	ContentGratitudePractice    ContentType = "gratitude_practice"
	ContentSleepHygiene         ContentType = "sleep_hygiene"
	ContentMoodTracking         ContentType = "mood_tracking"
	ContentBehavioralActivation ContentType = "behavioral_activation"
	ContentAffirmations         ContentType = "affirmations"
)

// ContentTypes lists every known tag in display order.
var ContentTypes = []ContentType{
	ContentCBTThoughtRecords,
	ContentMindfulnessBreathing,
	ContentMusicTherapy,
	ContentGuidedMeditation,
	ContentJournaling,
	ContentGratitudePractice,
	ContentSleepHygiene,
	ContentMoodTracking,
	ContentBehavioralActivation,
	ContentAffirmations,
}

// Payload is the closed set of content shapes. Only types in this package
// implement it.
type Payload interface {
	ContentType() ContentType
	payload()
}

// Content is the structured content attached to one therapy module.
type Content struct {
	ID          string
	ModuleID    string
	Type        ContentType
	Payload     Payload
	Version     int
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type contentJSON struct {
	ID          string          `json:"id"`
	ModuleID    string          `json:"moduleId"`
	Type        ContentType     `json:"contentType"`
	Payload     json.RawMessage `json:"payload"`
	Version     int             `json:"version"`
	IsPublished bool            `json:"isPublished"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (c Content) MarshalJSON() ([]byte, error) {
	raw := json.RawMessage("{}")
	if c.Payload != nil {
		b, err := json.Marshal(c.Payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", c.Type, err)
		}
		raw = b
	}
	return json.Marshal(contentJSON{
		ID:          c.ID,
		ModuleID:    c.ModuleID,
		Type:        c.Type,
		Payload:     raw,
		Version:     c.Version,
		IsPublished: c.IsPublished,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	})
}

func (c *Content) UnmarshalJSON(data []byte) error {
	var wire contentJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	p, err := DecodePayload(wire.Type, wire.Payload)
	if err != nil {
		return fmt.Errorf("content %s: %w", wire.ID, err)
	}
	*c = Content{
		ID:          wire.ID,
		ModuleID:    wire.ModuleID,
		Type:        wire.Type,
		Payload:     p,
		Version:     wire.Version,
		IsPublished: wire.IsPublished,
		CreatedAt:   wire.CreatedAt,
		UpdatedAt:   wire.UpdatedAt,
	}
	return nil
}

// DecodePayload parses raw JSON into the payload shape selected by t.
// An empty or null raw value yields the zero payload for t.
func DecodePayload(t ContentType, raw json.RawMessage) (Payload, error) {
	var p Payload
	switch t {
	case ContentCBTThoughtRecords:
		p = &CBTPayload{}
	case ContentMindfulnessBreathing:
		p = &BreathingPayload{}
	case ContentMusicTherapy:
		p = &MusicPayload{}
	case ContentGuidedMeditation:
		p = &MeditationPayload{}
	case ContentJournaling:
		p = &JournalingPayload{}
	case ContentGratitudePractice:
		p = &GratitudePayload{}
	case ContentSleepHygiene:
		p = &SleepPayload{}
	case ContentMoodTracking:
		p = &MoodTrackingPayload{}
	case ContentBehavioralActivation:
		p = &ActivationPayload{}
	case ContentAffirmations:
		p = &AffirmationsPayload{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownContentType, t)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return p, nil
	}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", t, err)
	}
	return p, nil
}

// ValidContentType reports whether t is one of the known tags.
func ValidContentType(t ContentType) bool {
	for _, known := range ContentTypes {
		if known == t {
			return true
		}
	}
	return false
}
