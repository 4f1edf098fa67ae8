package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

// ChecklistRepository defines the interface for checklist item data access
type ChecklistRepository interface {
	Create(ctx context.Context, item *domain.ChecklistItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ChecklistItem, error)
	FindByCardID(ctx context.Context, cardID uuid.UUID) ([]*domain.ChecklistItem, error)
	Update(ctx context.Context, item *domain.ChecklistItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	MaxPosition(ctx context.Context, cardID uuid.UUID) (int, error)
}

// checklistRepositoryImpl is the GORM implementation of ChecklistRepository
type checklistRepositoryImpl struct {
	db *gorm.DB
}

// NewChecklistRepository creates a new instance of ChecklistRepository
func NewChecklistRepository(db *gorm.DB) ChecklistRepository {
	return &checklistRepositoryImpl{db: db}
}

// Create creates a new checklist item
func (r *checklistRepositoryImpl) Create(ctx context.Context, item *domain.ChecklistItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a checklist item by ID
func (r *checklistRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.ChecklistItem, error) {
	var item domain.ChecklistItem
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByCardID returns all checklist items of a card in position order
func (r *checklistRepositoryImpl) FindByCardID(ctx context.Context, cardID uuid.UUID) ([]*domain.ChecklistItem, error) {
	var items []*domain.ChecklistItem
	if err := r.db.WithContext(ctx).
		Where("card_id = ?", cardID).
		Order("position ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update saves changed checklist item fields
func (r *checklistRepositoryImpl) Update(ctx context.Context, item *domain.ChecklistItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return err
	}
	return nil
}

// Delete removes a checklist item
func (r *checklistRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.ChecklistItem{}, id).Error; err != nil {
		return err
	}
	return nil
}

// MaxPosition returns the highest position within a card's checklist, or -1
// when the checklist is empty
func (r *checklistRepositoryImpl) MaxPosition(ctx context.Context, cardID uuid.UUID) (int, error) {
	var max *int
	if err := r.db.WithContext(ctx).
		Model(&domain.ChecklistItem{}).
		Where("card_id = ?", cardID).
		Select("MAX(position)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}
