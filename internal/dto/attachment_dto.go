package dto

import (
	"time"

	"github.com/google/uuid"
)

// AttachmentResponse represents the attachment metadata response
type AttachmentResponse struct {
	AttachmentID uuid.UUID  `json:"attachmentId"`
	EntityType   string     `json:"entityType"`
	EntityID     *uuid.UUID `json:"entityId,omitempty"`
	Status       string     `json:"status"`
	FileName     string     `json:"fileName"`
	FileSize     int64      `json:"fileSize"`
	ContentType  string     `json:"contentType"`
	UploadedBy   uuid.UUID  `json:"uploadedBy"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// UploadAttachmentResponse represents the result of a multipart upload
type UploadAttachmentResponse struct {
	AttachmentID uuid.UUID `json:"attachmentId"`
	FileName     string    `json:"fileName"`
	FileSize     int64     `json:"fileSize"`
	ContentType  string    `json:"contentType"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// AttachmentURLResponse represents a presigned download URL
type AttachmentURLResponse struct {
	AttachmentID uuid.UUID `json:"attachmentId"`
	URL          string    `json:"url"`
	ExpiresIn    int       `json:"expiresIn"` // seconds
}
