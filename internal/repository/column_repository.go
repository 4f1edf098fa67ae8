package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

// ColumnRepository defines the interface for column data access
type ColumnRepository interface {
	Create(ctx context.Context, column *domain.Column) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Column, error)
	FindByKanbanID(ctx context.Context, kanbanID uuid.UUID) ([]*domain.Column, error)
	Update(ctx context.Context, column *domain.Column) error
	Delete(ctx context.Context, id uuid.UUID) error
	MaxPosition(ctx context.Context, kanbanID uuid.UUID) (int, error)
	UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error
}

// columnRepositoryImpl is the GORM implementation of ColumnRepository
type columnRepositoryImpl struct {
	db *gorm.DB
}

// NewColumnRepository creates a new instance of ColumnRepository
func NewColumnRepository(db *gorm.DB) ColumnRepository {
	return &columnRepositoryImpl{db: db}
}

// Create creates a new column
func (r *columnRepositoryImpl) Create(ctx context.Context, column *domain.Column) error {
	if err := r.db.WithContext(ctx).Create(column).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a column by ID
func (r *columnRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Column, error) {
	var column domain.Column
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&column).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

// FindByKanbanID returns all columns of a kanban in position order
func (r *columnRepositoryImpl) FindByKanbanID(ctx context.Context, kanbanID uuid.UUID) ([]*domain.Column, error) {
	var columns []*domain.Column
	if err := r.db.WithContext(ctx).
		Where("kanban_id = ?", kanbanID).
		Order("position ASC").
		Find(&columns).Error; err != nil {
		return nil, err
	}
	return columns, nil
}

// Update saves changed column fields
func (r *columnRepositoryImpl) Update(ctx context.Context, column *domain.Column) error {
	if err := r.db.WithContext(ctx).Save(column).Error; err != nil {
		return err
	}
	return nil
}

// Delete removes a column with its cards and their children in one transaction
func (r *columnRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cardIDs []uuid.UUID
		if err := tx.Model(&domain.Card{}).
			Where("column_id = ?", id).
			Pluck("id", &cardIDs).Error; err != nil {
			return err
		}

		if len(cardIDs) > 0 {
			if err := deleteCardChildren(tx, cardIDs); err != nil {
				return err
			}
			if err := tx.Where("column_id = ?", id).Delete(&domain.Card{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&domain.Column{}, id).Error
	})
}

// MaxPosition returns the highest position within a kanban, or -1 when the
// kanban has no columns
func (r *columnRepositoryImpl) MaxPosition(ctx context.Context, kanbanID uuid.UUID) (int, error) {
	var max *int
	if err := r.db.WithContext(ctx).
		Model(&domain.Column{}).
		Where("kanban_id = ?", kanbanID).
		Select("MAX(position)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

// UpdatePositions persists new column positions in a single transaction
func (r *columnRepositoryImpl) UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error {
	if len(positions) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, position := range positions {
			if err := tx.Model(&domain.Column{}).
				Where("id = ?", id).
				Update("position", position).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
