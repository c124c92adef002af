package service

import (
	"fmt"
	"strings"

	"github.com/msomdec/therapy-admin/internal/domain"
)

// ValidateModuleInput runs the form checks the admin UI applies before a
// module reaches the catalog store.
func ValidateModuleInput(in domain.ModuleInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if len(in.Title) > 100 {
		return fmt.Errorf("%w: title must be 100 characters or fewer", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Category) == "" {
		return fmt.Errorf("%w: category is required", domain.ErrInvalidInput)
	}
	if len(in.Description) > 1000 {
		return fmt.Errorf("%w: description must be 1000 characters or fewer", domain.ErrInvalidInput)
	}
	if in.Sessions < 1 {
		return fmt.Errorf("%w: sessions must be at least 1", domain.ErrInvalidInput)
	}
	if err := validateDifficulty(in.Difficulty); err != nil {
		return err
	}
	return validateStatus(in.Status)
}

// ValidateModulePatch applies the same rules to the fields a patch sets.
func ValidateModulePatch(p domain.ModulePatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
	}
	if p.Category != nil && strings.TrimSpace(*p.Category) == "" {
		return fmt.Errorf("%w: category cannot be empty", domain.ErrInvalidInput)
	}
	if p.Sessions != nil && *p.Sessions < 1 {
		return fmt.Errorf("%w: sessions must be at least 1", domain.ErrInvalidInput)
	}
	if p.Difficulty != nil {
		if err := validateDifficulty(*p.Difficulty); err != nil {
			return err
		}
	}
	if p.Status != nil {
		if err := validateStatus(*p.Status); err != nil {
			return err
		}
	}
	return nil
}

func validateDifficulty(d domain.Difficulty) error {
	switch d {
	case domain.DifficultyBeginner, domain.DifficultyIntermediate, domain.DifficultyAdvanced:
		return nil
	}
	return fmt.Errorf("%w: difficulty must be Beginner, Intermediate, or Advanced", domain.ErrInvalidInput)
}

func validateStatus(s domain.ModuleStatus) error {
	switch s {
	case domain.ModuleStatusActive, domain.ModuleStatusInactive:
		return nil
	}
	return fmt.Errorf("%w: status must be Active or Inactive", domain.ErrInvalidInput)
}
