package service

import (
	"fmt"
	"slices"

	"github.com/msomdec/therapy-admin/internal/domain"
)

// orderedItem is an element of a 1-based, densely ordered list.
type orderedItem[T any] interface {
	*T
	Key() string
	SetOrder(order int)
}

// Direction moves an item towards the start (Up) or end (Down) of a list.
type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// ParseDirection accepts "up" or "down".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	}
	return 0, fmt.Errorf("%w: direction must be up or down", domain.ErrInvalidInput)
}

// The list helpers never mutate their input. Each returns a new slice with
// Order renumbered 1..n.

// AppendOrdered returns items with item added at the end.
func AppendOrdered[T any, P orderedItem[T]](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	out = append(out, item)
	return renumber[T, P](out)
}

// RemoveOrdered drops the item with the given key. An unknown key returns an
// unchanged copy.
func RemoveOrdered[T any, P orderedItem[T]](items []T, key string) []T {
	out := slices.DeleteFunc(slices.Clone(items), func(it T) bool { return P(&it).Key() == key })
	return renumber[T, P](out)
}

// MoveOrdered swaps the keyed item with its neighbour in dir. Moving past
// either end, or an unknown key, returns an unchanged copy.
func MoveOrdered[T any, P orderedItem[T]](items []T, key string, dir Direction) []T {
	out := slices.Clone(items)
	i := slices.IndexFunc(out, func(it T) bool { return P(&it).Key() == key })
	if i < 0 {
		return out
	}
	j := i + int(dir)
	if j < 0 || j >= len(out) {
		return out
	}
	out[i], out[j] = out[j], out[i]
	return renumber[T, P](out)
}

func renumber[T any, P orderedItem[T]](items []T) []T {
	for i := range items {
		P(&items[i]).SetOrder(i + 1)
	}
	return items
}

// AddStep appends a blank step with a fresh id.
func AddStep(steps []domain.CBTStep, ids domain.IDGenerator) []domain.CBTStep {
	return AppendOrdered(steps, domain.CBTStep{ID: ids.NewID()})
}

func RemoveStep(steps []domain.CBTStep, id string) []domain.CBTStep {
	return RemoveOrdered(steps, id)
}

func MoveStep(steps []domain.CBTStep, id string, dir Direction) []domain.CBTStep {
	return MoveOrdered(steps, id, dir)
}

// StepField names an editable text field of a CBT step.
type StepField string

const (
	StepTitle       StepField = "title"
	StepPrompt      StepField = "prompt"
	StepPlaceholder StepField = "placeholder"
)

// UpdateStep sets one field of the step with the given id. Order is not
// touched. An unknown id returns an unchanged copy.
func UpdateStep(steps []domain.CBTStep, id string, field StepField, value string) ([]domain.CBTStep, error) {
	var set func(*domain.CBTStep)
	switch field {
	case StepTitle:
		set = func(s *domain.CBTStep) { s.Title = value }
	case StepPrompt:
		set = func(s *domain.CBTStep) { s.Prompt = value }
	case StepPlaceholder:
		set = func(s *domain.CBTStep) { s.Placeholder = value }
	default:
		return nil, fmt.Errorf("%w: unknown step field %q", domain.ErrInvalidInput, field)
	}

	out := slices.Clone(steps)
	for i := range out {
		if out[i].ID == id {
			set(&out[i])
		}
	}
	return out, nil
}
