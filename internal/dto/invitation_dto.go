package dto

import (
	"time"

	"github.com/google/uuid"
)

// IssueInvitationRequest represents the request to invite a collaborator.
// Exactly one of Email or UserID must be set: a userId attaches the user to
// the membership set directly, an email mints (or returns) a token.
type IssueInvitationRequest struct {
	KanbanID uuid.UUID  `json:"kanbanId" binding:"required"`
	Email    string     `json:"email,omitempty" binding:"omitempty,email"`
	UserID   *uuid.UUID `json:"userId,omitempty"`
	Role     string     `json:"role,omitempty" binding:"omitempty,oneof=ADMIN COLLABORATOR"`
}

// IssueInvitationResponse represents the invitation issuance result.
// Token is empty when the user was attached directly by id.
type IssueInvitationResponse struct {
	InvitationID *uuid.UUID `json:"invitationId,omitempty"`
	KanbanID     uuid.UUID  `json:"kanbanId"`
	Email        string     `json:"email,omitempty"`
	Token        string     `json:"token,omitempty"`
	Attached     bool       `json:"attached"`
}

// AcceptInvitationRequest represents the request to redeem an invitation token
type AcceptInvitationRequest struct {
	Token    string `json:"token" binding:"required"`
	Name     string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Password string `json:"password" binding:"required,min=8"`
}

// AcceptInvitationResponse represents the invitation acceptance result,
// including a session token for the new or existing user
type AcceptInvitationResponse struct {
	KanbanID  uuid.UUID    `json:"kanbanId"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// InvitationResponse represents a pending invitation entry
type InvitationResponse struct {
	InvitationID uuid.UUID  `json:"invitationId"`
	KanbanID     uuid.UUID  `json:"kanbanId"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	InvitedBy    uuid.UUID  `json:"invitedBy"`
	Used         bool       `json:"used"`
	UsedAt       *time.Time `json:"usedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}
