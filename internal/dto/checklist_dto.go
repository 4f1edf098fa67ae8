package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateChecklistItemRequest represents the request to add a checklist item
type CreateChecklistItemRequest struct {
	CardID uuid.UUID `json:"cardId" binding:"required"`
	Text   string    `json:"text" binding:"required,min=1,max=500"`
}

// UpdateChecklistItemRequest represents a partial checklist item update
type UpdateChecklistItemRequest struct {
	Text *string `json:"text,omitempty" binding:"omitempty,min=1,max=500"`
	Done *bool   `json:"done,omitempty"`
}

// ChecklistItemResponse represents the checklist item response
type ChecklistItemResponse struct {
	ChecklistItemID uuid.UUID `json:"checklistItemId"`
	CardID          uuid.UUID `json:"cardId"`
	Text            string    `json:"text"`
	Done            bool      `json:"done"`
	Position        int       `json:"position"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
