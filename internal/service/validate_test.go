package service_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/msomdec/therapy-admin/internal/domain"
	"github.com/msomdec/therapy-admin/internal/service"
)

func TestValidateModuleInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.ModuleInput)
		wantErr bool
	}{
		{"valid", func(*domain.ModuleInput) {}, false},
		{"blank title", func(in *domain.ModuleInput) { in.Title = "  " }, true},
		{"missing category", func(in *domain.ModuleInput) { in.Category = "" }, true},
		{"zero sessions", func(in *domain.ModuleInput) { in.Sessions = 0 }, true},
		{"bad difficulty", func(in *domain.ModuleInput) { in.Difficulty = "Expert" }, true},
		{"bad status", func(in *domain.ModuleInput) { in.Status = "Archived" }, true},
		{"title too long", func(in *domain.ModuleInput) { in.Title = strings.Repeat("x", 101) }, true},
		{"description too long", func(in *domain.ModuleInput) { in.Description = strings.Repeat("x", 1001) }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput("Title")
			tt.mutate(&in)
			err := service.ValidateModuleInput(in)
			if tt.wantErr && !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateModulePatch(t *testing.T) {
	if err := service.ValidateModulePatch(domain.ModulePatch{}); err != nil {
		t.Fatalf("empty patch: %v", err)
	}
	if err := service.ValidateModulePatch(domain.ModulePatch{Sessions: ptr(0)}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	bad := domain.ModuleStatus("Paused")
	if err := service.ValidateModulePatch(domain.ModulePatch{Status: &bad}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
