package view_test

import (
	"context"
	"strings"
	"testing"

	"github.com/msomdec/therapy-admin/internal/domain"
	"github.com/msomdec/therapy-admin/internal/view"
)

func render(t *testing.T, modules []domain.TherapyModule, done []string) string {
	t.Helper()
	var b strings.Builder
	if err := view.TherapyList(modules, done).Render(context.Background(), &b); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return b.String()
}

func TestTherapyList_Badges(t *testing.T) {
	modules := []domain.TherapyModule{
		{ID: "a", Title: "Alpha", Sessions: 2},
		{ID: "b", Title: "Beta", Sessions: 3},
	}

	html := render(t, modules, []string{"b"})

	if !strings.HasPrefix(html, `<ul id="therapy-list">`) {
		t.Fatalf("expected therapy-list root, got %s", html)
	}
	if strings.Count(html, "Done today") != 1 {
		t.Fatalf("expected one badge, got %s", html)
	}
	if !strings.Contains(html, `@post('/api/progress/a/complete')`) {
		t.Fatal("expected a complete button for the unfinished module")
	}
	if strings.Contains(html, `@post('/api/progress/b/complete')`) {
		t.Fatal("finished module should not offer a complete button")
	}
}

func TestTherapyList_EscapesText(t *testing.T) {
	html := render(t, []domain.TherapyModule{{ID: "x", Title: `<script>alert("x")</script>`}}, nil)

	if strings.Contains(html, "<script>") {
		t.Fatalf("title was not escaped: %s", html)
	}
}

func TestTherapyList_Empty(t *testing.T) {
	html := render(t, nil, nil)
	if !strings.Contains(html, "No therapies") {
		t.Fatalf("expected empty message, got %s", html)
	}
}

func TestTherapiesPage_SubscribesToStream(t *testing.T) {
	var b strings.Builder
	if err := view.TherapiesPage(nil, nil).Render(context.Background(), &b); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(b.String(), "/therapies/stream") {
		t.Fatal("page should open the live stream")
	}
}

func TestModuleCard_EscapesAttributesAndTags(t *testing.T) {
	m := domain.TherapyModule{
		ID:         `a"b`,
		Title:      "Breathing",
		Difficulty: domain.DifficultyBeginner,
		Tags:       []string{"<calm>", "focus"},
	}
	var b strings.Builder
	if err := view.ModuleCard(m, true).Render(context.Background(), &b); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := b.String()

	if strings.Contains(html, `id="module-a"b"`) {
		t.Fatalf("id attribute was not escaped: %s", html)
	}
	if !strings.Contains(html, `<li>&lt;calm&gt;</li>`) {
		t.Fatalf("expected escaped tag, got %s", html)
	}
	if !strings.Contains(html, `<dd>Beginner</dd>`) {
		t.Fatalf("expected difficulty, got %s", html)
	}
	if strings.Contains(html, "Mark done") {
		t.Fatal("completed card should not offer the button")
	}
}
