package domain

import "github.com/google/uuid"

// Column represents an ordered list of cards within a kanban.
// Position is strictly increasing within a kanban but not required to be
// contiguous after deletions; reorder operations renumber it densely.
type Column struct {
	BaseModel
	KanbanID uuid.UUID `gorm:"type:uuid;not null;index:idx_columns_kanban_id" json:"kanbanId"`
	Title    string    `gorm:"type:varchar(255);not null" json:"title"`
	Position int       `gorm:"type:int;not null;default:0;index:idx_columns_position" json:"position"`

	Kanban Kanban `gorm:"foreignKey:KanbanID;constraint:OnDelete:CASCADE" json:"kanban,omitempty"`
	Cards  []Card `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE" json:"cards,omitempty"`
}

// TableName specifies the table name for Column
func (Column) TableName() string {
	return "columns"
}
