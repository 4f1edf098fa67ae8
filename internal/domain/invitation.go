package domain

import (
	"time"

	"github.com/google/uuid"
)

// Invitation represents a single-use token binding an email to kanban membership.
// A token transitions from unused to used exactly once.
type Invitation struct {
	BaseModel
	KanbanID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_invitations_kanban_id" json:"kanbanId"`
	Email     string     `gorm:"type:varchar(255);not null;index:idx_invitations_email" json:"email"`
	Token     string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"token"`
	Role      Role       `gorm:"type:varchar(20);not null;default:'COLLABORATOR'" json:"role"`
	InvitedBy uuid.UUID  `gorm:"type:uuid;not null" json:"invitedBy"`
	Used      bool       `gorm:"type:boolean;not null;default:false;index:idx_invitations_used" json:"used"`
	UsedAt    *time.Time `gorm:"type:timestamp" json:"usedAt,omitempty"`

	Kanban Kanban `gorm:"foreignKey:KanbanID;constraint:OnDelete:CASCADE" json:"kanban,omitempty"`
}

// TableName specifies the table name for Invitation
func (Invitation) TableName() string {
	return "invitations"
}
