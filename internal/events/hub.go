// Package events fans change signals out to every view that needs to
// re-read a collection.
package events

import (
	"context"
	"slices"
	"sync"

	"github.com/msomdec/therapy-admin/internal/domain"
)

const subscriberBuffer = 16

// Hub is an in-process domain.Notifier. Delivery never blocks the publisher:
// a subscriber whose buffer is full misses the event, which is harmless
// because every event only means "reload".
type Hub struct {
	mu     sync.Mutex
	subs   map[int]*subscription
	nextID int
}

type subscription struct {
	ch     chan domain.Event
	topics []domain.Topic
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]*subscription)}
}

// Publish delivers event to every subscriber interested in its topic.
func (h *Hub) Publish(_ context.Context, event domain.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, s := range h.subs {
		if len(s.topics) > 0 && !slices.Contains(s.topics, event.Topic) {
			continue
		}
		select {
		case s.ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe registers for the given topics, or for all topics when none are
// given. The returned cancel func closes the channel; it is safe to call
// more than once.
func (h *Hub) Subscribe(topics ...domain.Topic) (<-chan domain.Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	s := &subscription{
		ch:     make(chan domain.Event, subscriberBuffer),
		topics: slices.Clone(topics),
	}
	h.subs[id] = s

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(s.ch)
		})
	}
	return s.ch, cancel
}

// Subscribers returns the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
