package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/msomdec/therapy-admin/internal/domain"
	"github.com/msomdec/therapy-admin/internal/events"
	"github.com/msomdec/therapy-admin/internal/repository/memory"
	"github.com/msomdec/therapy-admin/internal/service"
)

const (
	modulesKey  = "therapy-modules"
	contentKey  = "therapy-content"
	progressKey = "therapy-progress"
)

// recorder is a domain.Notifier that keeps every event it receives.
type recorder struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recorder) Publish(_ context.Context, e domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) Events() []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Event(nil), r.events...)
}

func (r *recorder) Count(topic domain.Topic) int {
	n := 0
	for _, e := range r.Events() {
		if e.Topic == topic {
			n++
		}
	}
	return n
}

// clock is a settable time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock(t time.Time) *clock { return &clock{now: t} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var day1 = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// countingKV wraps a memory store and counts writes.
type countingKV struct {
	*memory.KVStore
	mu   sync.Mutex
	puts int
}

func newCountingKV() *countingKV {
	return &countingKV{KVStore: memory.NewKVStore()}
}

func (c *countingKV) Put(ctx context.Context, key string, data []byte) error {
	c.mu.Lock()
	c.puts++
	c.mu.Unlock()
	return c.KVStore.Put(ctx, key, data)
}

func (c *countingKV) Puts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.puts
}

type fixture struct {
	kv       *countingKV
	clock    *clock
	notes    *recorder
	catalog  *service.CatalogStore
	content  *service.ContentStore
	progress *service.ProgressTracker
}

func newFixture(t *testing.T, opts ...service.StoreOption) *fixture {
	t.Helper()
	f := &fixture{
		kv:    newCountingKV(),
		clock: newClock(day1),
		notes: &recorder{},
	}
	opts = append([]service.StoreOption{service.WithClock(f.clock.Now)}, opts...)
	f.catalog = service.NewCatalogStore(f.kv, modulesKey, service.NewSequenceGenerator("mod"), f.notes, opts...)
	f.content = service.NewContentStore(f.kv, contentKey, service.NewSequenceGenerator("content"), f.notes, opts...)
	f.progress = service.NewProgressTracker(f.kv, progressKey, f.notes, opts...)
	return f
}

// newHubFixture wires the stores to a real hub so subscriptions can be
// exercised end to end.
func newHubFixture(t *testing.T) (*fixture, *events.Hub) {
	t.Helper()
	hub := events.NewHub()
	f := &fixture{kv: newCountingKV(), clock: newClock(day1), notes: &recorder{}}
	f.catalog = service.NewCatalogStore(f.kv, modulesKey, service.NewSequenceGenerator("mod"), hub, service.WithClock(f.clock.Now))
	f.content = service.NewContentStore(f.kv, contentKey, service.NewSequenceGenerator("content"), hub, service.WithClock(f.clock.Now))
	f.progress = service.NewProgressTracker(f.kv, progressKey, hub, service.WithClock(f.clock.Now))
	return f, hub
}

func validInput(title string) domain.ModuleInput {
	return domain.ModuleInput{
		Title:      title,
		Category:   "CBT",
		Difficulty: domain.DifficultyBeginner,
		Sessions:   3,
		Tags:       []string{"a", "b"},
		Status:     domain.ModuleStatusActive,
	}
}

func ptr[T any](v T) *T { return &v }
