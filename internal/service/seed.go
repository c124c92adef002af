package service

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/msomdec/therapy-admin/internal/domain"
)

// BuiltinModules returns the catalog written on first access to an empty
// backend. Each call returns a fresh copy.
func BuiltinModules() []domain.TherapyModule {
	out := make([]domain.TherapyModule, len(builtinModules))
	for i, m := range builtinModules {
		m.Tags = slices.Clone(m.Tags)
		out[i] = m
	}
	return out
}

var builtinModules = []domain.TherapyModule{
	{
		ID:          "cbt-thought-records",
		Title:       "Cognitive Behavioral Therapy",
		Description: "Identify and reframe unhelpful thoughts with guided thought records.",
		Category:    "CBT",
		Icon:        "brain",
		Color:       "from-blue-500 to-indigo-600",
		Duration:    "15-20 min",
		Difficulty:  domain.DifficultyIntermediate,
		Sessions:    8,
		Tags:        []string{"anxiety", "depression", "thought patterns"},
		Status:      domain.ModuleStatusActive,
	},
	{
		ID:          "mindfulness-breathing",
		Title:       "Mindful Breathing",
		Description: "Paced breathing patterns and short grounding exercises.",
		Category:    "Mindfulness",
		Icon:        "wind",
		Color:       "from-teal-400 to-cyan-600",
		Duration:    "5-10 min",
		Difficulty:  domain.DifficultyBeginner,
		Sessions:    10,
		Tags:        []string{"stress", "focus", "breathing"},
		Status:      domain.ModuleStatusActive,
	},
	{
		ID:          "music-therapy",
		Title:       "Music Therapy",
		Description: "Curated tracks grouped by the mood you want to reach.",
		Category:    "Music",
		Icon:        "music",
		Color:       "from-pink-500 to-rose-600",
		Duration:    "10-30 min",
		Difficulty:  domain.DifficultyBeginner,
		Sessions:    6,
		Tags:        []string{"relaxation", "mood"},
		Status:      domain.ModuleStatusActive,
	},
	{
		ID:          "guided-meditation",
		Title:       "Guided Meditation",
		Description: "Narrated meditations from body scans to loving-kindness.",
		Category:    "Meditation",
		Icon:        "sparkles",
		Color:       "from-purple-500 to-violet-600",
		Duration:    "10-20 min",
		Difficulty:  domain.DifficultyBeginner,
		Sessions:    12,
		Tags:        []string{"calm", "sleep", "awareness"},
		Status:      domain.ModuleStatusActive,
	},
	{
		ID:          "reflective-journaling",
		Title:       "Reflective Journaling",
		Description: "Structured prompts for processing the day.",
		Category:    "Journaling",
		Icon:        "book-open",
		Color:       "from-amber-400 to-orange-500",
		Duration:    "10-15 min",
		Difficulty:  domain.DifficultyBeginner,
		Sessions:    14,
		Tags:        []string{"self-reflection", "emotions"},
		Status:      domain.ModuleStatusActive,
	},
	{
		ID:          "sleep-hygiene",
		Title:       "Sleep Hygiene",
		Description: "Evening routines and habits that support restful sleep.",
		Category:    "Sleep",
		Icon:        "moon",
		Color:       "from-slate-600 to-indigo-800",
		Duration:    "5 min",
		Difficulty:  domain.DifficultyBeginner,
		Sessions:    7,
		Tags:        []string{"sleep", "routine"},
		Status:      domain.ModuleStatusInactive,
	},
	{
		ID:          "behavioral-activation",
		Title:       "Behavioral Activation",
		Description: "Schedule rewarding activities to break low-mood cycles.",
		Category:    "CBT",
		Icon:        "activity",
		Color:       "from-green-500 to-emerald-600",
		Duration:    "15 min",
		Difficulty:  domain.DifficultyAdvanced,
		Sessions:    6,
		Tags:        []string{"depression", "motivation"},
		Status:      domain.ModuleStatusActive,
	},
}

type seedFile struct {
	Modules []domain.TherapyModule `yaml:"modules"`
}

// LoadSeedFile reads a YAML catalog to use instead of BuiltinModules:
//
//	modules:
//	  - id: cbt-basics
//	    title: CBT Basics
//	    difficulty: Beginner
//	    sessions: 4
//	    status: Active
func LoadSeedFile(path string) ([]domain.TherapyModule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	seen := make(map[string]bool, len(f.Modules))
	for i, m := range f.Modules {
		if m.ID == "" {
			return nil, fmt.Errorf("%w: seed module %d has no id", domain.ErrInvalidInput, i+1)
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("%w: duplicate seed module id %q", domain.ErrInvalidInput, m.ID)
		}
		seen[m.ID] = true
		if err := ValidateModuleInput(inputFromModule(m)); err != nil {
			return nil, fmt.Errorf("seed module %q: %w", m.ID, err)
		}
	}
	return f.Modules, nil
}

func inputFromModule(m domain.TherapyModule) domain.ModuleInput {
	return domain.ModuleInput{
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		Icon:        m.Icon,
		Color:       m.Color,
		Duration:    m.Duration,
		Difficulty:  m.Difficulty,
		Sessions:    m.Sessions,
		Tags:        m.Tags,
		Status:      m.Status,
	}
}
