package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

// LabelRepository defines the interface for label data access
type LabelRepository interface {
	Create(ctx context.Context, label *domain.Label) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Label, error)
	FindByKanbanID(ctx context.Context, kanbanID uuid.UUID) ([]*domain.Label, error)
	FindByKanbanAndName(ctx context.Context, kanbanID uuid.UUID, name string) (*domain.Label, error)
	Update(ctx context.Context, label *domain.Label) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// labelRepositoryImpl is the GORM implementation of LabelRepository
type labelRepositoryImpl struct {
	db *gorm.DB
}

// NewLabelRepository creates a new instance of LabelRepository
func NewLabelRepository(db *gorm.DB) LabelRepository {
	return &labelRepositoryImpl{db: db}
}

// Create creates a new label
func (r *labelRepositoryImpl) Create(ctx context.Context, label *domain.Label) error {
	if err := r.db.WithContext(ctx).Create(label).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a label by ID
func (r *labelRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Label, error) {
	var label domain.Label
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&label).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

// FindByKanbanID returns all labels of a kanban ordered by name
func (r *labelRepositoryImpl) FindByKanbanID(ctx context.Context, kanbanID uuid.UUID) ([]*domain.Label, error) {
	var labels []*domain.Label
	if err := r.db.WithContext(ctx).
		Where("kanban_id = ?", kanbanID).
		Order("name ASC").
		Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

// FindByKanbanAndName finds a label by kanban and name
func (r *labelRepositoryImpl) FindByKanbanAndName(ctx context.Context, kanbanID uuid.UUID, name string) (*domain.Label, error) {
	var label domain.Label
	if err := r.db.WithContext(ctx).
		Where("kanban_id = ? AND name = ?", kanbanID, name).
		First(&label).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

// Update saves changed label fields
func (r *labelRepositoryImpl) Update(ctx context.Context, label *domain.Label) error {
	if err := r.db.WithContext(ctx).Save(label).Error; err != nil {
		return err
	}
	return nil
}

// Delete removes a label and its card links
func (r *labelRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM card_labels WHERE label_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Label{}, id).Error
	})
}
