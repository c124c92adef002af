package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/msomdec/therapy-admin/internal/domain"
)

// ProgressTracker records which modules were completed on the current
// calendar day. The day rolls over lazily on the first read after midnight.
type ProgressTracker struct {
	mu       sync.Mutex
	kv       domain.KVStore
	key      string
	notifier domain.Notifier
	now      func() time.Time
}

func NewProgressTracker(kv domain.KVStore, key string, notifier domain.Notifier, opts ...StoreOption) *ProgressTracker {
	o := defaultStoreOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &ProgressTracker{
		kv:       kv,
		key:      key,
		notifier: notifier,
		now:      o.now,
	}
}

// Load returns the stored progress with LastResetDate moved to today. The
// advanced date is persisted only when it actually changed; history for
// earlier days is kept.
func (t *ProgressTracker) Load(ctx context.Context) (domain.DailyProgress, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load(ctx)
}

// CompletedToday returns the module ids completed today in completion order.
func (t *ProgressTracker) CompletedToday(ctx context.Context) ([]string, error) {
	p, err := t.Load(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(p.CompletedOn(p.LastResetDate)), nil
}

func (t *ProgressTracker) IsCompletedToday(ctx context.Context, moduleID string) (bool, error) {
	ids, err := t.CompletedToday(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, moduleID), nil
}

// MarkCompleted records moduleID for today and reports whether it was newly
// added. Repeat calls on the same day write nothing and broadcast nothing.
func (t *ProgressTracker) MarkCompleted(ctx context.Context, moduleID string) (bool, error) {
	t.mu.Lock()
	p, err := t.load(ctx)
	if err != nil {
		t.mu.Unlock()
		return false, err
	}
	if !p.Add(p.LastResetDate, moduleID) {
		t.mu.Unlock()
		return false, nil
	}
	err = saveBlob(ctx, t.kv, t.key, p)
	t.mu.Unlock()
	if err != nil {
		return false, fmt.Errorf("mark completed: %w", err)
	}

	notify(ctx, t.notifier, domain.Event{Topic: domain.TopicData, Op: domain.OpCompleted, ID: moduleID, At: t.now()})
	return true, nil
}

// ResetPlan clears the cumulative set of completed modules. Per-day history
// is left alone.
func (t *ProgressTracker) ResetPlan(ctx context.Context) error {
	t.mu.Lock()
	p, err := t.load(ctx)
	if err != nil {
		t.mu.Unlock()
		return err
	}
	p.PlanCompleted = nil
	err = saveBlob(ctx, t.kv, t.key, p)
	t.mu.Unlock()
	if err != nil {
		return fmt.Errorf("reset plan: %w", err)
	}

	notify(ctx, t.notifier, domain.Event{Topic: domain.TopicData, Op: domain.OpUpdated, At: t.now()})
	return nil
}

// load must be called with t.mu held.
func (t *ProgressTracker) load(ctx context.Context) (domain.DailyProgress, error) {
	today := t.now().Format(domain.DateLayout)

	var p domain.DailyProgress
	found, err := loadBlob(ctx, t.kv, t.key, &p)
	if err != nil {
		return domain.DailyProgress{}, err
	}
	if p.CompletedByDate == nil {
		p.CompletedByDate = make(map[string][]string)
	}
	if !found {
		p.LastResetDate = today
		return p, nil
	}
	if p.LastResetDate != today {
		p.LastResetDate = today
		if err := saveBlob(ctx, t.kv, t.key, p); err != nil {
			return domain.DailyProgress{}, fmt.Errorf("roll progress day: %w", err)
		}
	}
	return p, nil
}
