package domain

import (
	"time"

	"github.com/google/uuid"
)

// Card represents a unit of work within a column
type Card struct {
	BaseModel
	ColumnID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_cards_column_id" json:"columnId"`
	AuthorID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_cards_author_id" json:"authorId"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Position    int        `gorm:"type:int;not null;default:0;index:idx_cards_position" json:"position"`
	DueDate     *time.Time `gorm:"type:timestamp;index:idx_cards_due_date" json:"dueDate,omitempty"`

	Column         Column          `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE" json:"column,omitempty"`
	Labels         []Label         `gorm:"many2many:card_labels;constraint:OnDelete:CASCADE" json:"labels,omitempty"`
	Assignees      []CardAssignee  `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE" json:"assignees,omitempty"`
	ChecklistItems []ChecklistItem `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE" json:"checklistItems,omitempty"`
	Comments       []Comment       `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	// Attachments use a polymorphic relation, loaded separately in the repository
	Attachments []Attachment `gorm:"-" json:"attachments,omitempty"`
}

// CardAssignee represents a user assigned to a card
type CardAssignee struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CardID     uuid.UUID `gorm:"type:uuid;not null;index:idx_card_assignees_card_id;uniqueIndex:uq_card_assignees_card_user" json:"cardId"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_card_assignees_user_id;uniqueIndex:uq_card_assignees_card_user" json:"userId"`
	AssignedAt time.Time `gorm:"type:timestamp;not null;default:now()" json:"assignedAt"`
	Card       Card      `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE" json:"card,omitempty"`
}

// ChecklistItem represents a single checklist entry on a card
type ChecklistItem struct {
	BaseModel
	CardID   uuid.UUID `gorm:"type:uuid;not null;index:idx_checklist_items_card_id" json:"cardId"`
	Text     string    `gorm:"type:varchar(500);not null" json:"text"`
	Done     bool      `gorm:"type:boolean;not null;default:false" json:"done"`
	Position int       `gorm:"type:int;not null;default:0" json:"position"`
	Card     Card      `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE" json:"card,omitempty"`
}

// TableName specifies the table name for Card
func (Card) TableName() string {
	return "cards"
}

// TableName specifies the table name for CardAssignee
func (CardAssignee) TableName() string {
	return "card_assignees"
}

// TableName specifies the table name for ChecklistItem
func (ChecklistItem) TableName() string {
	return "checklist_items"
}
