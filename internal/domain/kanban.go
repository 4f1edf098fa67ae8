package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Kanban represents a board owned by a user and shared with members
type Kanban struct {
	BaseModel
	OwnerID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_kanbans_owner_id" json:"ownerId"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Settings    datatypes.JSON `gorm:"type:jsonb" json:"settings,omitempty"`

	Columns     []Column       `gorm:"foreignKey:KanbanID;constraint:OnDelete:CASCADE" json:"columns,omitempty"`
	Labels      []Label        `gorm:"foreignKey:KanbanID;constraint:OnDelete:CASCADE" json:"labels,omitempty"`
	Members     []KanbanMember `gorm:"foreignKey:KanbanID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Invitations []Invitation   `gorm:"foreignKey:KanbanID;constraint:OnDelete:CASCADE" json:"invitations,omitempty"`
}

// KanbanMember represents a user's membership in a kanban
type KanbanMember struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	KanbanID uuid.UUID `gorm:"type:uuid;not null;index:idx_kanban_members_kanban_id;uniqueIndex:uq_kanban_members_kanban_user" json:"kanbanId"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_kanban_members_user_id;uniqueIndex:uq_kanban_members_kanban_user" json:"userId"`
	Role     Role      `gorm:"type:varchar(20);not null;default:'COLLABORATOR'" json:"role"`
	JoinedAt time.Time `gorm:"type:timestamp;not null;default:now()" json:"joinedAt"`
	Kanban   Kanban    `gorm:"foreignKey:KanbanID;constraint:OnDelete:CASCADE" json:"kanban,omitempty"`
}

// TableName specifies the table name for Kanban
func (Kanban) TableName() string {
	return "kanbans"
}

// TableName specifies the table name for KanbanMember
func (KanbanMember) TableName() string {
	return "kanban_members"
}
