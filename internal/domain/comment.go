package domain

import "github.com/google/uuid"

// Comment represents a comment on a card
type Comment struct {
	BaseModel
	CardID  uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_card_id" json:"cardId"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_user_id" json:"userId"`
	Content string    `gorm:"type:text;not null" json:"content"`
	Card    Card      `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE" json:"card,omitempty"`
	// Attachments use a polymorphic relation, loaded separately in the repository
	Attachments []Attachment `gorm:"-" json:"attachments,omitempty"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
