package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateColumnRequest represents the request to create a new column
type CreateColumnRequest struct {
	KanbanID uuid.UUID `json:"kanbanId" binding:"required"`
	Title    string    `json:"title" binding:"required,min=1,max=255"`
}

// UpdateColumnRequest represents a partial column update
type UpdateColumnRequest struct {
	Title *string `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
}

// ReorderColumnsRequest represents the request to reorder all columns of a
// kanban. ColumnIDs must be exactly the kanban's columns in their new order.
type ReorderColumnsRequest struct {
	KanbanID  uuid.UUID   `json:"kanbanId" binding:"required"`
	ColumnIDs []uuid.UUID `json:"columnIds" binding:"required,min=1,dive,required"`
}

// ColumnResponse represents the column response
type ColumnResponse struct {
	ColumnID  uuid.UUID `json:"columnId"`
	KanbanID  uuid.UUID `json:"kanbanId"`
	Title     string    `json:"title"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ColumnDetailResponse represents a column with its cards in order
type ColumnDetailResponse struct {
	ColumnResponse
	Cards []CardResponse `json:"cards"`
}
