package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCommentRequest represents the request to create a new comment with
// optional attachments to confirm
type CreateCommentRequest struct {
	CardID        uuid.UUID   `json:"cardId" binding:"required"`
	Content       string      `json:"content" binding:"required,min=1"`
	AttachmentIDs []uuid.UUID `json:"attachmentIds,omitempty" binding:"omitempty,dive,required"`
}

// UpdateCommentRequest represents the request to update a comment
type UpdateCommentRequest struct {
	Content       string      `json:"content" binding:"required,min=1"`
	AttachmentIDs []uuid.UUID `json:"attachmentIds,omitempty" binding:"omitempty,dive,required"`
}

// CommentResponse represents the comment response
type CommentResponse struct {
	CommentID   uuid.UUID            `json:"commentId"`
	CardID      uuid.UUID            `json:"cardId"`
	UserID      uuid.UUID            `json:"userId"`
	Content     string               `json:"content"`
	Attachments []AttachmentResponse `json:"attachments,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}
