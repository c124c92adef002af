package domain

import "time"

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

type ModuleStatus string

const (
	ModuleStatusActive   ModuleStatus = "Active"
	ModuleStatusInactive ModuleStatus = "Inactive"
)

// TherapyModule is one entry of the therapy catalog. Icon and Color are
// presentation tags the admin UI interprets; they are opaque here.
type TherapyModule struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Category    string       `json:"category" yaml:"category"`
	Icon        string       `json:"icon" yaml:"icon"`
	Color       string       `json:"color" yaml:"color"`
	Duration    string       `json:"duration" yaml:"duration"` // free text, e.g. "10-15 min"
	Difficulty  Difficulty   `json:"difficulty" yaml:"difficulty"`
	Sessions    int          `json:"sessions" yaml:"sessions"`
	Tags        []string     `json:"tags" yaml:"tags"`
	Status      ModuleStatus `json:"status" yaml:"status"`
	CreatedAt   time.Time    `json:"createdAt" yaml:"-"`
	UpdatedAt   time.Time    `json:"updatedAt" yaml:"-"`
}

// ModuleInput carries the form fields for a new module.
type ModuleInput struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Icon        string       `json:"icon"`
	Color       string       `json:"color"`
	Duration    string       `json:"duration"`
	Difficulty  Difficulty   `json:"difficulty"`
	Sessions    int          `json:"sessions"`
	Tags        []string     `json:"tags"`
	Status      ModuleStatus `json:"status"`
}

// ModulePatch is a partial update. Nil fields are left untouched.
type ModulePatch struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Category    *string       `json:"category,omitempty"`
	Icon        *string       `json:"icon,omitempty"`
	Color       *string       `json:"color,omitempty"`
	Duration    *string       `json:"duration,omitempty"`
	Difficulty  *Difficulty   `json:"difficulty,omitempty"`
	Sessions    *int          `json:"sessions,omitempty"`
	Tags        *[]string     `json:"tags,omitempty"`
	Status      *ModuleStatus `json:"status,omitempty"`
}

// Apply merges the non-nil fields of p into m.
func (p ModulePatch) Apply(m *TherapyModule) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Category != nil {
		m.Category = *p.Category
	}
	if p.Icon != nil {
		m.Icon = *p.Icon
	}
	if p.Color != nil {
		m.Color = *p.Color
	}
	if p.Duration != nil {
		m.Duration = *p.Duration
	}
	if p.Difficulty != nil {
		m.Difficulty = *p.Difficulty
	}
	if p.Sessions != nil {
		m.Sessions = *p.Sessions
	}
	if p.Tags != nil {
		m.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
}
