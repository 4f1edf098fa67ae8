package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

// KanbanRepository defines the interface for kanban and membership data access
type KanbanRepository interface {
	Create(ctx context.Context, kanban *domain.Kanban) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Kanban, error)
	FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*domain.Kanban, error)
	FindAccessibleByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Kanban, error)
	Update(ctx context.Context, kanban *domain.Kanban) error
	Delete(ctx context.Context, id uuid.UUID) error

	AddMember(ctx context.Context, member *domain.KanbanMember) error
	RemoveMember(ctx context.Context, kanbanID, userID uuid.UUID) error
	FindMember(ctx context.Context, kanbanID, userID uuid.UUID) (*domain.KanbanMember, error)
	FindMembers(ctx context.Context, kanbanID uuid.UUID) ([]*domain.KanbanMember, error)
}

// kanbanRepositoryImpl is the GORM implementation of KanbanRepository
type kanbanRepositoryImpl struct {
	db *gorm.DB
}

// NewKanbanRepository creates a new instance of KanbanRepository
func NewKanbanRepository(db *gorm.DB) KanbanRepository {
	return &kanbanRepositoryImpl{db: db}
}

// Create creates a new kanban
func (r *kanbanRepositoryImpl) Create(ctx context.Context, kanban *domain.Kanban) error {
	if err := r.db.WithContext(ctx).Create(kanban).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a kanban by ID without nested relations
func (r *kanbanRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Kanban, error) {
	var kanban domain.Kanban
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&kanban).Error; err != nil {
		return nil, err
	}
	return &kanban, nil
}

// FindByIDWithDetails loads the full board state: columns in order, each with
// its cards in order and their labels, assignees, checklist items and comments.
// This is the canonical record the client reconciles against.
func (r *kanbanRepositoryImpl) FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*domain.Kanban, error) {
	var kanban domain.Kanban
	if err := r.db.WithContext(ctx).
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("columns.position ASC")
		}).
		Preload("Columns.Cards", func(db *gorm.DB) *gorm.DB {
			return db.Order("cards.position ASC")
		}).
		Preload("Columns.Cards.Labels").
		Preload("Columns.Cards.Assignees").
		Preload("Columns.Cards.ChecklistItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("checklist_items.position ASC")
		}).
		Preload("Columns.Cards.Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Labels").
		Preload("Members").
		Where("id = ?", id).
		First(&kanban).Error; err != nil {
		return nil, err
	}
	return &kanban, nil
}

// FindAccessibleByUser returns kanbans the user owns or is a member of
func (r *kanbanRepositoryImpl) FindAccessibleByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Kanban, error) {
	var kanbans []*domain.Kanban
	if err := r.db.WithContext(ctx).
		Distinct("kanbans.*").
		Joins("LEFT JOIN kanban_members ON kanban_members.kanban_id = kanbans.id").
		Where("kanbans.owner_id = ? OR kanban_members.user_id = ?", userID, userID).
		Order("kanbans.created_at ASC").
		Find(&kanbans).Error; err != nil {
		return nil, err
	}
	return kanbans, nil
}

// Update saves changed kanban fields
func (r *kanbanRepositoryImpl) Update(ctx context.Context, kanban *domain.Kanban) error {
	if err := r.db.WithContext(ctx).Save(kanban).Error; err != nil {
		return err
	}
	return nil
}

// Delete removes a kanban and everything under it in one transaction:
// columns, cards, card children, label links, labels, members and
// invitations. The explicit cascade keeps behavior identical across postgres
// and the sqlite test database, which runs without FK enforcement.
func (r *kanbanRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var columnIDs []uuid.UUID
		if err := tx.Model(&domain.Column{}).
			Where("kanban_id = ?", id).
			Pluck("id", &columnIDs).Error; err != nil {
			return err
		}

		if len(columnIDs) > 0 {
			var cardIDs []uuid.UUID
			if err := tx.Model(&domain.Card{}).
				Where("column_id IN ?", columnIDs).
				Pluck("id", &cardIDs).Error; err != nil {
				return err
			}

			if len(cardIDs) > 0 {
				if err := deleteCardChildren(tx, cardIDs); err != nil {
					return err
				}
				if err := tx.Where("column_id IN ?", columnIDs).Delete(&domain.Card{}).Error; err != nil {
					return err
				}
			}

			if err := tx.Where("kanban_id = ?", id).Delete(&domain.Column{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("kanban_id = ?", id).Delete(&domain.Label{}).Error; err != nil {
			return err
		}
		if err := tx.Where("kanban_id = ?", id).Delete(&domain.KanbanMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("kanban_id = ?", id).Delete(&domain.Invitation{}).Error; err != nil {
			return err
		}

		return tx.Delete(&domain.Kanban{}, id).Error
	})
}

// deleteCardChildren removes everything owned by the given cards: checklist
// items, comments and their attachment rows, label and assignee links, and the
// cards' own attachment rows.
func deleteCardChildren(tx *gorm.DB, cardIDs []uuid.UUID) error {
	var commentIDs []uuid.UUID
	if err := tx.Model(&domain.Comment{}).
		Where("card_id IN ?", cardIDs).
		Pluck("id", &commentIDs).Error; err != nil {
		return err
	}
	if len(commentIDs) > 0 {
		if err := tx.Where("entity_type = ? AND entity_id IN ?", domain.EntityTypeComment, commentIDs).
			Delete(&domain.Attachment{}).Error; err != nil {
			return err
		}
	}

	if err := tx.Where("card_id IN ?", cardIDs).Delete(&domain.ChecklistItem{}).Error; err != nil {
		return err
	}
	if err := tx.Where("card_id IN ?", cardIDs).Delete(&domain.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("card_id IN ?", cardIDs).Delete(&domain.CardAssignee{}).Error; err != nil {
		return err
	}
	if err := tx.Exec("DELETE FROM card_labels WHERE card_id IN ?", cardIDs).Error; err != nil {
		return err
	}
	if err := tx.Where("entity_type = ? AND entity_id IN ?", domain.EntityTypeCard, cardIDs).
		Delete(&domain.Attachment{}).Error; err != nil {
		return err
	}
	return nil
}

// AddMember attaches a user to the kanban's membership set
func (r *kanbanRepositoryImpl) AddMember(ctx context.Context, member *domain.KanbanMember) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return err
	}
	return nil
}

// RemoveMember detaches a user from the kanban's membership set
func (r *kanbanRepositoryImpl) RemoveMember(ctx context.Context, kanbanID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("kanban_id = ? AND user_id = ?", kanbanID, userID).
		Delete(&domain.KanbanMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindMember finds a membership row for the given kanban and user
func (r *kanbanRepositoryImpl) FindMember(ctx context.Context, kanbanID, userID uuid.UUID) (*domain.KanbanMember, error) {
	var member domain.KanbanMember
	if err := r.db.WithContext(ctx).
		Where("kanban_id = ? AND user_id = ?", kanbanID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindMembers returns all membership rows for a kanban
func (r *kanbanRepositoryImpl) FindMembers(ctx context.Context, kanbanID uuid.UUID) ([]*domain.KanbanMember, error) {
	var members []*domain.KanbanMember
	if err := r.db.WithContext(ctx).
		Where("kanban_id = ?", kanbanID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
