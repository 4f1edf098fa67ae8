package domain

import "github.com/google/uuid"

// Label represents a colored tag shared across a kanban's cards
type Label struct {
	BaseModel
	KanbanID uuid.UUID `gorm:"type:uuid;not null;index:idx_labels_kanban_id;uniqueIndex:uq_labels_kanban_name" json:"kanbanId"`
	Name     string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_labels_kanban_name" json:"name"`
	Color    string    `gorm:"type:varchar(20);not null" json:"color"`

	Kanban Kanban `gorm:"foreignKey:KanbanID;constraint:OnDelete:CASCADE" json:"kanban,omitempty"`
	Cards  []Card `gorm:"many2many:card_labels" json:"cards,omitempty"`
}

// TableName specifies the table name for Label
func (Label) TableName() string {
	return "labels"
}
