package handler

import (
	"encoding/json"
	"time"

	"github.com/msomdec/therapy-admin/internal/domain"
)

// UserDTO is the JSON representation of an admin. The password hash never
// leaves the server.
type UserDTO struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   u.UpdatedAt.Format(time.RFC3339),
	}
}

// ProgressDTO is today's view of the daily progress record.
type ProgressDTO struct {
	Date          string   `json:"date"`
	Completed     []string `json:"completed"`
	PlanCompleted []string `json:"planCompleted"`
}

func toProgressDTO(p domain.DailyProgress) ProgressDTO {
	completed := p.CompletedOn(p.LastResetDate)
	if completed == nil {
		completed = []string{}
	}
	plan := p.PlanCompleted
	if plan == nil {
		plan = []string{}
	}
	return ProgressDTO{
		Date:          p.LastResetDate,
		Completed:     completed,
		PlanCompleted: plan,
	}
}

// saveContentRequest is the body of PUT /api/modules/{id}/content. The raw
// payload is decoded according to contentType.
type saveContentRequest struct {
	ContentType domain.ContentType `json:"contentType"`
	Payload     json.RawMessage    `json:"payload"`
	ExistingID  string             `json:"existingId"`
}

// stepEditRequest is the body of POST /api/content/{id}/steps.
type stepEditRequest struct {
	Op        string `json:"op"` // add, remove, move, update
	StepID    string `json:"stepId"`
	Direction string `json:"direction"`
	Field     string `json:"field"`
	Value     string `json:"value"`
}
