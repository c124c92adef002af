package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/msomdec/therapy-admin/internal/domain"
	"github.com/msomdec/therapy-admin/internal/service"
)

func cbtPayload(titles ...string) *domain.CBTPayload {
	p := &domain.CBTPayload{}
	for i, title := range titles {
		p.Steps = append(p.Steps, domain.CBTStep{ID: title, Order: i + 1, Title: title})
	}
	return p
}

func TestContentStore_ListAll_EmptyWithoutSeeding(t *testing.T) {
	f := newFixture(t)

	all, err := f.content.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if all == nil || len(all) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", all)
	}
	if f.kv.Puts() != 0 {
		t.Fatalf("expected no writes, got %d", f.kv.Puts())
	}
}

func TestContentStore_Save_CreateThenUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.content.Save(ctx, "m1", cbtPayload("a", "b"), "")
	if err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if first.Version != 1 || first.IsPublished {
		t.Fatalf("expected v1 unpublished, got v%d published=%v", first.Version, first.IsPublished)
	}
	if first.Type != domain.ContentCBTThoughtRecords {
		t.Fatalf("expected type from payload, got %s", first.Type)
	}

	f.clock.Advance(time.Minute)
	modified := cbtPayload("a", "b", "c")
	second, err := f.content.Save(ctx, "m1", modified, first.ID)
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same id %s, got %s", first.ID, second.ID)
	}
	if second.Version != 2 {
		t.Fatalf("expected version 2, got %d", second.Version)
	}
	if diff := cmp.Diff(domain.Payload(modified), second.Payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if !second.CreatedAt.Equal(day1) || !second.UpdatedAt.Equal(day1.Add(time.Minute)) {
		t.Fatalf("unexpected timestamps %v/%v", second.CreatedAt, second.UpdatedAt)
	}

	// Reload through the JSON layer.
	stored, err := f.content.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if diff := cmp.Diff(domain.Payload(modified), stored.Payload); diff != "" {
		t.Fatalf("stored payload mismatch (-want +got):\n%s", diff)
	}

	all, err := f.content.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one record, got %d", len(all))
	}
	if got := f.notes.Count(domain.TopicContent); got != 2 {
		t.Fatalf("expected 2 content events, got %d", got)
	}
}

func TestContentStore_Save_UnknownExistingIDCreates(t *testing.T) {
	f := newFixture(t)

	c, err := f.content.Save(context.Background(), "m1", cbtPayload("a"), "stale-id")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if c.ID == "stale-id" || c.Version != 1 {
		t.Fatalf("expected fresh record, got id=%s v%d", c.ID, c.Version)
	}
}

func TestContentStore_Save_NilPayload(t *testing.T) {
	f := newFixture(t)

	_, err := f.content.Save(context.Background(), "m1", nil, "")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestContentStore_Save_ChangesType(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.content.Save(ctx, "m1", cbtPayload("a"), "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	c, err = f.content.Save(ctx, "m1", service.DefaultPayload(domain.ContentAffirmations), c.ID)
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if c.Type != domain.ContentAffirmations {
		t.Fatalf("expected affirmations, got %s", c.Type)
	}
}

func TestContentStore_VersionMonotonic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.content.Save(ctx, "m1", cbtPayload("a"), "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	for want := 2; want <= 10; want++ {
		c, err = f.content.Save(ctx, "m1", cbtPayload("a"), c.ID)
		if err != nil {
			t.Fatalf("Save v%d: %v", want, err)
		}
		if c.Version != want {
			t.Fatalf("expected version %d, got %d", want, c.Version)
		}
	}
}

func TestContentStore_PublishIndependence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.content.Save(ctx, "m1", cbtPayload("a"), "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	ok, err := f.content.Publish(ctx, c.ID, true)
	if err != nil || !ok {
		t.Fatalf("Publish: ok=%v err=%v", ok, err)
	}
	published, err := f.content.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !published.IsPublished {
		t.Fatal("expected published")
	}
	if published.Version != c.Version {
		t.Fatalf("publish changed version %d -> %d", c.Version, published.Version)
	}
	if diff := cmp.Diff(c.Payload, published.Payload); diff != "" {
		t.Fatalf("publish changed payload (-before +after):\n%s", diff)
	}

	saved, err := f.content.Save(ctx, "m1", cbtPayload("b"), c.ID)
	if err != nil {
		t.Fatalf("Save after publish: %v", err)
	}
	if !saved.IsPublished {
		t.Fatal("save must keep the publish flag")
	}

	ok, err = f.content.Publish(ctx, c.ID, false)
	if err != nil || !ok {
		t.Fatalf("Unpublish: ok=%v err=%v", ok, err)
	}
	saved, err = f.content.Save(ctx, "m1", cbtPayload("c"), c.ID)
	if err != nil {
		t.Fatalf("Save after unpublish: %v", err)
	}
	if saved.IsPublished {
		t.Fatal("save must not publish")
	}
}

func TestContentStore_Publish_Unknown(t *testing.T) {
	f := newFixture(t)

	ok, err := f.content.Publish(context.Background(), "missing", true)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if ok {
		t.Fatal("expected false for unknown id")
	}
	if len(f.notes.Events()) != 0 {
		t.Fatal("unknown id should not broadcast")
	}
}

func TestContentStore_GetByModuleID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.content.Save(ctx, "m1", cbtPayload("a"), ""); err != nil {
		t.Fatalf("Save m1: %v", err)
	}
	want, err := f.content.Save(ctx, "m2", service.DefaultPayload(domain.ContentSleepHygiene), "")
	if err != nil {
		t.Fatalf("Save m2: %v", err)
	}

	got, err := f.content.GetByModuleID(ctx, "m2")
	if err != nil {
		t.Fatalf("GetByModuleID: %v", err)
	}
	if got.ID != want.ID || got.Type != domain.ContentSleepHygiene {
		t.Fatalf("unexpected record %+v", got)
	}

	if _, err := f.content.GetByModuleID(ctx, "m3"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := f.content.GetByID(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestContentStore_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.content.Save(ctx, "m1", cbtPayload("a"), "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	removed, err := f.content.Delete(ctx, c.ID)
	if err != nil || !removed {
		t.Fatalf("Delete: removed=%v err=%v", removed, err)
	}
	removed, err = f.content.Delete(ctx, c.ID)
	if err != nil || removed {
		t.Fatalf("second Delete: removed=%v err=%v", removed, err)
	}
	if got := f.notes.Count(domain.TopicContent); got != 2 {
		t.Fatalf("expected 2 content events, got %d", got)
	}
}

func TestContentStore_Subscribe(t *testing.T) {
	f, hub := newHubFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan []domain.Content, 4)
	done := make(chan error, 1)
	go func() {
		done <- f.content.Subscribe(ctx, hub, func(c []domain.Content) { got <- c })
	}()
	waitFor(t, func() bool { return hub.Subscribers() == 1 })

	// Module changes are a different topic and must not wake content watchers.
	if _, err := f.catalog.Create(ctx, validInput("Ignored")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.content.Save(ctx, "m1", cbtPayload("a"), ""); err != nil {
		t.Fatalf("Save: %v", err)
	}

	select {
	case snapshot := <-got:
		if len(snapshot) != 1 {
			t.Fatalf("expected 1 record, got %d", len(snapshot))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for content snapshot")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
}

func TestContentStore_SaveForModule_OneRecordPerModule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.content.SaveForModule(ctx, "m1", cbtPayload("a"), "")
	if err != nil {
		t.Fatalf("first SaveForModule: %v", err)
	}
	second, err := f.content.SaveForModule(ctx, "m1", service.DefaultPayload(domain.ContentMindfulnessBreathing), "")
	if err != nil {
		t.Fatalf("second SaveForModule: %v", err)
	}
	if second.ID != first.ID || second.Version != 2 {
		t.Fatalf("expected %s v2, got %s v%d", first.ID, second.ID, second.Version)
	}

	// A stale id falls back to the module's record as well.
	third, err := f.content.SaveForModule(ctx, "m1", cbtPayload("b"), "gone")
	if err != nil {
		t.Fatalf("third SaveForModule: %v", err)
	}
	if third.ID != first.ID || third.Version != 3 {
		t.Fatalf("expected %s v3, got %s v%d", first.ID, third.ID, third.Version)
	}

	got, err := f.content.GetByModuleID(ctx, "m1")
	if err != nil {
		t.Fatalf("GetByModuleID: %v", err)
	}
	if diff := cmp.Diff(domain.Payload(cbtPayload("b")), got.Payload); diff != "" {
		t.Fatalf("reader sees stale payload (-want +got):\n%s", diff)
	}
	all, err := f.content.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one record, got %d", len(all))
	}
}

func TestContentStore_SaveForModule_RejectsForeignID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other, err := f.content.SaveForModule(ctx, "cbt", cbtPayload("a"), "")
	if err != nil {
		t.Fatalf("SaveForModule: %v", err)
	}
	puts := f.kv.Puts()

	_, err = f.content.SaveForModule(ctx, "music", service.DefaultPayload(domain.ContentMusicTherapy), other.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if f.kv.Puts() != puts {
		t.Fatal("rejected save must not write")
	}

	kept, err := f.content.GetByID(ctx, other.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if kept.ModuleID != "cbt" || kept.Type != domain.ContentCBTThoughtRecords || kept.Version != 1 {
		t.Fatalf("foreign record was modified: %+v", kept)
	}
}

func TestContentStore_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.content.Save(ctx, "m1", cbtPayload("a"), "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	f.clock.Advance(time.Minute)
	updated, err := f.content.Update(ctx, c.ID, func(p domain.Payload) (domain.Payload, error) {
		cbt := p.(*domain.CBTPayload)
		return &domain.CBTPayload{Steps: service.RemoveStep(cbt.Steps, "a")}, nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Version != 2 || !updated.UpdatedAt.Equal(day1.Add(time.Minute)) {
		t.Fatalf("unexpected update %+v", updated)
	}
	if n := len(updated.Payload.(*domain.CBTPayload).Steps); n != 0 {
		t.Fatalf("expected no steps, got %d", n)
	}
}

func TestContentStore_Update_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	keep := func(p domain.Payload) (domain.Payload, error) { return p, nil }
	if _, err := f.content.Update(ctx, "missing", keep); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	c, err := f.content.Save(ctx, "m1", cbtPayload("a"), "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	puts, events := f.kv.Puts(), len(f.notes.Events())

	boom := errors.New("boom")
	if _, err := f.content.Update(ctx, c.ID, func(domain.Payload) (domain.Payload, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}
	if f.kv.Puts() != puts || len(f.notes.Events()) != events {
		t.Fatal("failed update must not write or notify")
	}
}

func TestContentStore_Update_ConcurrentEditsAllLand(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.content.Save(ctx, "m1", &domain.CBTPayload{}, "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	const editors = 20
	ids := service.NewSequenceGenerator("step")
	var wg sync.WaitGroup
	for range editors {
		wg.Go(func() {
			_, err := f.content.Update(ctx, c.ID, func(p domain.Payload) (domain.Payload, error) {
				return &domain.CBTPayload{Steps: service.AddStep(p.(*domain.CBTPayload).Steps, ids)}, nil
			})
			if err != nil {
				t.Errorf("Update: %v", err)
			}
		})
	}
	wg.Wait()

	got, err := f.content.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	steps := got.Payload.(*domain.CBTPayload).Steps
	if len(steps) != editors || got.Version != editors+1 {
		t.Fatalf("expected %d steps at v%d, got %d at v%d", editors, editors+1, len(steps), got.Version)
	}
	assertDense(t, steps)
}
