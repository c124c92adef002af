// Package view renders the end-user pages. Components are plain
// templ.Components so handlers can stream them through datastar.
package view

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/a-h/templ"

	"github.com/msomdec/therapy-admin/internal/domain"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// TherapyListID is the element the live stream patches.
const TherapyListID = "therapy-list"

// TherapiesPage renders the catalog of active modules. The list subscribes
// to /therapies/stream and is re-rendered on every catalog or progress change.
func TherapiesPage(modules []domain.TherapyModule, completedToday []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>Therapies</title>`+
			`<script type="module" src="`+datastarScript+`"></script>`+
			`</head><body><main data-init="@get('/therapies/stream')">`+
			`<h1>Your therapies</h1>`); err != nil {
			return err
		}
		if err := TherapyList(modules, completedToday).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// TherapyList renders the #therapy-list fragment.
func TherapyList(modules []domain.TherapyModule, completedToday []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<ul id="`+TherapyListID+`">`); err != nil {
			return err
		}
		if len(modules) == 0 {
			if _, err := io.WriteString(w, `<li class="empty">No therapies are available right now.</li>`); err != nil {
				return err
			}
		}
		for _, m := range modules {
			if err := ModuleCard(m, slices.Contains(completedToday, m.ID)).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	})
}

// ModuleCard renders one module as a list item. Modules not yet done today
// get a button that records a completion.
func ModuleCard(m domain.TherapyModule, done bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<li id="module-%s" class="therapy %s" data-icon="%s">`,
			templ.EscapeString(m.ID), templ.EscapeString(m.Color), templ.EscapeString(m.Icon))
		fmt.Fprintf(&b, `<h2>%s</h2>`, templ.EscapeString(m.Title))
		if done {
			b.WriteString(`<span class="badge done">Done today</span>`)
		}
		if m.Description != "" {
			fmt.Fprintf(&b, `<p>%s</p>`, templ.EscapeString(m.Description))
		}
		fmt.Fprintf(&b, `<dl><dt>Category</dt><dd>%s</dd><dt>Difficulty</dt><dd>%s</dd>`,
			templ.EscapeString(m.Category), templ.EscapeString(m.Difficulty))
		if m.Duration != "" {
			fmt.Fprintf(&b, `<dt>Duration</dt><dd>%s</dd>`, templ.EscapeString(m.Duration))
		}
		fmt.Fprintf(&b, `<dt>Sessions</dt><dd>%d</dd></dl>`, m.Sessions)
		if err := tagList(m.Tags).Render(ctx, &b); err != nil {
			return err
		}
		if !done {
			fmt.Fprintf(&b, `<button data-on:click="@post('/api/progress/%s/complete')">Mark done</button>`, templ.EscapeString(m.ID))
		}
		b.WriteString(`</li>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func tagList(tags []string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(tags) == 0 {
			return nil
		}
		var b strings.Builder
		b.WriteString(`<ul class="tags">`)
		for _, tag := range tags {
			fmt.Fprintf(&b, `<li>%s</li>`, templ.EscapeString(tag))
		}
		b.WriteString(`</ul>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
