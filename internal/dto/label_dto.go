package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateLabelRequest represents the request to create a new label
type CreateLabelRequest struct {
	KanbanID uuid.UUID `json:"kanbanId" binding:"required"`
	Name     string    `json:"name" binding:"required,min=1,max=100"`
	Color    string    `json:"color" binding:"required,min=1,max=20"`
}

// UpdateLabelRequest represents a partial label update
type UpdateLabelRequest struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Color *string `json:"color,omitempty" binding:"omitempty,min=1,max=20"`
}

// LabelResponse represents the label response
type LabelResponse struct {
	LabelID   uuid.UUID `json:"labelId"`
	KanbanID  uuid.UUID `json:"kanbanId"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
