package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/msomdec/therapy-admin/internal/domain"
)

func TestProgressTracker_Load_Fresh(t *testing.T) {
	f := newFixture(t)

	p, err := f.progress.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.LastResetDate != "2026-03-14" {
		t.Fatalf("expected today's date, got %s", p.LastResetDate)
	}
	if len(p.CompletedOn(p.LastResetDate)) != 0 {
		t.Fatal("expected nothing completed")
	}
	if f.kv.Puts() != 0 {
		t.Fatalf("fresh load should not write, got %d writes", f.kv.Puts())
	}
}

func TestProgressTracker_MarkCompleted_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	added, err := f.progress.MarkCompleted(ctx, "m1")
	if err != nil || !added {
		t.Fatalf("first MarkCompleted: added=%v err=%v", added, err)
	}
	added, err = f.progress.MarkCompleted(ctx, "m1")
	if err != nil {
		t.Fatalf("second MarkCompleted: %v", err)
	}
	if added {
		t.Fatal("second MarkCompleted should report false")
	}

	ids, err := f.progress.CompletedToday(ctx)
	if err != nil {
		t.Fatalf("CompletedToday: %v", err)
	}
	if diff := cmp.Diff([]string{"m1"}, ids); diff != "" {
		t.Fatalf("completed mismatch (-want +got):\n%s", diff)
	}
	if got := f.notes.Count(domain.TopicData); got != 1 {
		t.Fatalf("expected 1 data-changed event, got %d", got)
	}
	if f.kv.Puts() != 1 {
		t.Fatalf("expected 1 write, got %d", f.kv.Puts())
	}

	done, err := f.progress.IsCompletedToday(ctx, "m1")
	if err != nil || !done {
		t.Fatalf("IsCompletedToday(m1) = %v, %v", done, err)
	}
	done, err = f.progress.IsCompletedToday(ctx, "m2")
	if err != nil || done {
		t.Fatalf("IsCompletedToday(m2) = %v, %v", done, err)
	}
}

func TestProgressTracker_DayRollover(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stored := domain.DailyProgress{
		LastResetDate:   "2024-01-01",
		CompletedByDate: map[string][]string{"2024-01-01": {"m1", "m2"}},
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := f.kv.Put(ctx, progressKey, raw); err != nil {
		t.Fatalf("Put: %v", err)
	}
	f.clock.Set(time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC))

	p, err := f.progress.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.LastResetDate != "2024-01-02" {
		t.Fatalf("expected rollover to 2024-01-02, got %s", p.LastResetDate)
	}
	if len(p.CompletedOn("2024-01-02")) != 0 {
		t.Fatalf("expected empty set for new day, got %v", p.CompletedOn("2024-01-02"))
	}
	if diff := cmp.Diff([]string{"m1", "m2"}, p.CompletedOn("2024-01-01")); diff != "" {
		t.Fatalf("history lost (-want +got):\n%s", diff)
	}

	// The advanced date is persisted exactly once.
	puts := f.kv.Puts()
	if _, err := f.progress.Load(ctx); err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if f.kv.Puts() != puts {
		t.Fatal("second load on the same day should not write")
	}

	var persisted domain.DailyProgress
	data, err := f.kv.Get(ctx, progressKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if persisted.LastResetDate != "2024-01-02" {
		t.Fatalf("expected persisted date 2024-01-02, got %s", persisted.LastResetDate)
	}
}

func TestProgressTracker_CompletionResetsNextDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.progress.MarkCompleted(ctx, "m1"); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	f.clock.Advance(24 * time.Hour)

	done, err := f.progress.IsCompletedToday(ctx, "m1")
	if err != nil {
		t.Fatalf("IsCompletedToday: %v", err)
	}
	if done {
		t.Fatal("completion should not carry over to the next day")
	}
	added, err := f.progress.MarkCompleted(ctx, "m1")
	if err != nil || !added {
		t.Fatalf("MarkCompleted next day: added=%v err=%v", added, err)
	}
}

func TestProgressTracker_ResetPlan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, id := range []string{"m1", "m2"} {
		if _, err := f.progress.MarkCompleted(ctx, id); err != nil {
			t.Fatalf("MarkCompleted %s: %v", id, err)
		}
	}
	p, err := f.progress.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff([]string{"m1", "m2"}, p.PlanCompleted); diff != "" {
		t.Fatalf("plan mismatch (-want +got):\n%s", diff)
	}

	if err := f.progress.ResetPlan(ctx); err != nil {
		t.Fatalf("ResetPlan: %v", err)
	}
	p, err = f.progress.Load(ctx)
	if err != nil {
		t.Fatalf("Load after reset: %v", err)
	}
	if len(p.PlanCompleted) != 0 {
		t.Fatalf("expected empty plan, got %v", p.PlanCompleted)
	}
	if len(p.CompletedOn(p.LastResetDate)) != 2 {
		t.Fatal("ResetPlan should keep today's completions")
	}
}
