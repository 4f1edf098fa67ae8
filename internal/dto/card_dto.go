package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCardRequest represents the request to create a new card
type CreateCardRequest struct {
	ColumnID      uuid.UUID   `json:"columnId" binding:"required"`
	Title         string      `json:"title" binding:"required,min=1,max=255"`
	Description   string      `json:"description,omitempty"`
	DueDate       *time.Time  `json:"dueDate,omitempty"`
	AttachmentIDs []uuid.UUID `json:"attachmentIds,omitempty" binding:"omitempty,dive,required"`
}

// UpdateCardRequest represents a partial card update
type UpdateCardRequest struct {
	Title         *string     `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Description   *string     `json:"description,omitempty"`
	DueDate       *time.Time  `json:"dueDate,omitempty"`
	ClearDueDate  bool        `json:"clearDueDate,omitempty"`
	AttachmentIDs []uuid.UUID `json:"attachmentIds,omitempty" binding:"omitempty,dive,required"`
}

// MoveCardRequest represents a single-card move to a column and index
type MoveCardRequest struct {
	ColumnID uuid.UUID `json:"columnId" binding:"required"`
	Position int       `json:"position" binding:"min=0"`
}

// ReorderEntry is one (card, column, position) triple of a reorder batch
type ReorderEntry struct {
	CardID   uuid.UUID `json:"cardId" binding:"required"`
	ColumnID uuid.UUID `json:"columnId" binding:"required"`
	Position int       `json:"position" binding:"min=0"`
}

// ReorderCardsRequest represents the reorder batch persisted after a drag.
// Within each touched column the positions must form a dense 0..n-1 sequence
// covering every card of that column.
type ReorderCardsRequest struct {
	KanbanID uuid.UUID      `json:"kanbanId" binding:"required"`
	Entries  []ReorderEntry `json:"entries" binding:"required,min=1,dive"`
}

// AddAssigneeRequest represents the request to assign a user to a card
type AddAssigneeRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
}

// AttachLabelRequest represents the request to attach a label to a card
type AttachLabelRequest struct {
	LabelID uuid.UUID `json:"labelId" binding:"required"`
}

// CardResponse represents the card summary response
type CardResponse struct {
	CardID      uuid.UUID       `json:"cardId"`
	ColumnID    uuid.UUID       `json:"columnId"`
	AuthorID    uuid.UUID       `json:"authorId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Position    int             `json:"position"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	Labels      []LabelResponse `json:"labels,omitempty"`
	AssigneeIDs []uuid.UUID     `json:"assigneeIds,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CardDetailResponse represents a card with all nested children and the
// checklist completion percentage
type CardDetailResponse struct {
	CardResponse
	ChecklistItems      []ChecklistItemResponse `json:"checklistItems"`
	ChecklistCompletion float64                 `json:"checklistCompletion"`
	Comments            []CommentResponse       `json:"comments"`
	Attachments         []AttachmentResponse    `json:"attachments"`
}
