package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateKanbanRequest represents the request to create a new kanban
type CreateKanbanRequest struct {
	Name        string                 `json:"name" binding:"required,min=1,max=255"`
	Description string                 `json:"description,omitempty"`
	Settings    map[string]interface{} `json:"settings,omitempty"`
}

// UpdateKanbanRequest represents a partial kanban update
type UpdateKanbanRequest struct {
	Name        *string                `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string                `json:"description,omitempty"`
	Settings    map[string]interface{} `json:"settings,omitempty"`
}

// KanbanResponse represents the kanban summary response
type KanbanResponse struct {
	KanbanID    uuid.UUID              `json:"kanbanId"`
	OwnerID     uuid.UUID              `json:"ownerId"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Settings    map[string]interface{} `json:"settings,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// KanbanDetailResponse represents the full board state: ordered columns with
// their ordered cards and nested children
type KanbanDetailResponse struct {
	KanbanResponse
	Columns []ColumnDetailResponse `json:"columns"`
	Labels  []LabelResponse        `json:"labels"`
	Members []MemberResponse       `json:"members"`
}

// MemberResponse represents a kanban membership entry
type MemberResponse struct {
	UserID   uuid.UUID `json:"userId"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}
