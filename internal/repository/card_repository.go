package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/reorder"
)

// CardRepository defines the interface for card data access
type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	FindByColumnID(ctx context.Context, columnID uuid.UUID) ([]*domain.Card, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Card, error)
	Update(ctx context.Context, card *domain.Card) error
	Delete(ctx context.Context, id uuid.UUID) error
	MaxPosition(ctx context.Context, columnID uuid.UUID) (int, error)
	UpdatePlacements(ctx context.Context, placements []reorder.Placement) error

	AddAssignee(ctx context.Context, assignee *domain.CardAssignee) error
	RemoveAssignee(ctx context.Context, cardID, userID uuid.UUID) error
	FindAssignee(ctx context.Context, cardID, userID uuid.UUID) (*domain.CardAssignee, error)

	AttachLabel(ctx context.Context, cardID, labelID uuid.UUID) error
	DetachLabel(ctx context.Context, cardID, labelID uuid.UUID) error
	HasLabel(ctx context.Context, cardID, labelID uuid.UUID) (bool, error)
}

// cardRepositoryImpl is the GORM implementation of CardRepository
type cardRepositoryImpl struct {
	db *gorm.DB
}

// NewCardRepository creates a new instance of CardRepository
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepositoryImpl{db: db}
}

// Create creates a new card
func (r *cardRepositoryImpl) Create(ctx context.Context, card *domain.Card) error {
	if err := r.db.WithContext(ctx).Create(card).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a card by ID without nested relations
func (r *cardRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	var card domain.Card
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// FindByIDWithDetails loads a card with labels, assignees, checklist items and
// comments. Attachments are polymorphic and loaded separately by the service.
func (r *cardRepositoryImpl) FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	var card domain.Card
	if err := r.db.WithContext(ctx).
		Preload("Labels").
		Preload("Assignees").
		Preload("ChecklistItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("checklist_items.position ASC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Where("id = ?", id).
		First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// FindByColumnID returns all cards of a column in position order
func (r *cardRepositoryImpl) FindByColumnID(ctx context.Context, columnID uuid.UUID) ([]*domain.Card, error) {
	var cards []*domain.Card
	if err := r.db.WithContext(ctx).
		Where("column_id = ?", columnID).
		Order("position ASC").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// FindByIDs finds cards by their IDs
func (r *cardRepositoryImpl) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Card, error) {
	if len(ids) == 0 {
		return []*domain.Card{}, nil
	}

	var cards []*domain.Card
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// Update saves changed card fields
func (r *cardRepositoryImpl) Update(ctx context.Context, card *domain.Card) error {
	if err := r.db.WithContext(ctx).Save(card).Error; err != nil {
		return err
	}
	return nil
}

// Delete removes a card and its children in one transaction
func (r *cardRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteCardChildren(tx, []uuid.UUID{id}); err != nil {
			return err
		}
		return tx.Delete(&domain.Card{}, id).Error
	})
}

// MaxPosition returns the highest position within a column, or -1 when the
// column is empty
func (r *cardRepositoryImpl) MaxPosition(ctx context.Context, columnID uuid.UUID) (int, error) {
	var max *int
	if err := r.db.WithContext(ctx).
		Model(&domain.Card{}).
		Where("column_id = ?", columnID).
		Select("MAX(position)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

// UpdatePlacements persists the reorder batch: every touched card's
// (id, column, position) triple is written inside a single transaction so a
// partial failure leaves no mixed state behind.
func (r *cardRepositoryImpl) UpdatePlacements(ctx context.Context, placements []reorder.Placement) error {
	if len(placements) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range placements {
			if err := tx.Model(&domain.Card{}).
				Where("id = ?", p.ID).
				Updates(map[string]interface{}{
					"column_id": p.ColumnID,
					"position":  p.Position,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AddAssignee assigns a user to a card
func (r *cardRepositoryImpl) AddAssignee(ctx context.Context, assignee *domain.CardAssignee) error {
	if err := r.db.WithContext(ctx).Create(assignee).Error; err != nil {
		return err
	}
	return nil
}

// RemoveAssignee removes a user assignment from a card
func (r *cardRepositoryImpl) RemoveAssignee(ctx context.Context, cardID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("card_id = ? AND user_id = ?", cardID, userID).
		Delete(&domain.CardAssignee{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindAssignee finds an assignment row for the given card and user
func (r *cardRepositoryImpl) FindAssignee(ctx context.Context, cardID, userID uuid.UUID) (*domain.CardAssignee, error) {
	var assignee domain.CardAssignee
	if err := r.db.WithContext(ctx).
		Where("card_id = ? AND user_id = ?", cardID, userID).
		First(&assignee).Error; err != nil {
		return nil, err
	}
	return &assignee, nil
}

// AttachLabel links a label to a card
func (r *cardRepositoryImpl) AttachLabel(ctx context.Context, cardID, labelID uuid.UUID) error {
	card := domain.Card{BaseModel: domain.BaseModel{ID: cardID}}
	label := domain.Label{BaseModel: domain.BaseModel{ID: labelID}}
	return r.db.WithContext(ctx).Model(&card).Association("Labels").Append(&label)
}

// DetachLabel unlinks a label from a card
func (r *cardRepositoryImpl) DetachLabel(ctx context.Context, cardID, labelID uuid.UUID) error {
	card := domain.Card{BaseModel: domain.BaseModel{ID: cardID}}
	label := domain.Label{BaseModel: domain.BaseModel{ID: labelID}}
	return r.db.WithContext(ctx).Model(&card).Association("Labels").Delete(&label)
}

// HasLabel reports whether a label is already linked to a card
func (r *cardRepositoryImpl) HasLabel(ctx context.Context, cardID, labelID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("card_labels").
		Where("card_id = ? AND label_id = ?", cardID, labelID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
