package domain

import (
	"context"
	"time"
)

// Topic names a change signal. Subscribers re-read the affected collection.
type Topic string

const (
	TopicModules Topic = "therapy-modules-updated"
	TopicContent Topic = "therapy-content-updated"
	TopicData    Topic = "data-changed"
)

type EventOp string

const (
	OpCreated   EventOp = "created"
	OpUpdated   EventOp = "updated"
	OpDeleted   EventOp = "deleted"
	OpPublished EventOp = "published"
	OpCompleted EventOp = "completed"
)

// Event is broadcast after a successful mutation. ID is the affected record,
// empty when the whole collection changed.
type Event struct {
	Topic Topic     `json:"topic"`
	Op    EventOp   `json:"op"`
	ID    string    `json:"id,omitempty"`
	At    time.Time `json:"at"`
}

// Notifier delivers change events to subscribers.
type Notifier interface {
	Publish(ctx context.Context, event Event) error
}

// Subscriber registers for change events. Cancelling closes the channel.
type Subscriber interface {
	Subscribe(topics ...Topic) (<-chan Event, func())
}
