package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/events"
	"kanban-board-api/internal/reorder"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// ColumnService defines the interface for column business logic
type ColumnService interface {
	CreateColumn(ctx context.Context, req *dto.CreateColumnRequest) (*dto.ColumnResponse, error)
	GetColumn(ctx context.Context, columnID uuid.UUID) (*dto.ColumnResponse, error)
	UpdateColumn(ctx context.Context, columnID uuid.UUID, req *dto.UpdateColumnRequest) (*dto.ColumnResponse, error)
	DeleteColumn(ctx context.Context, columnID uuid.UUID) error
	ReorderColumns(ctx context.Context, req *dto.ReorderColumnsRequest) ([]*dto.ColumnResponse, error)
}

// columnServiceImpl is the implementation of ColumnService
type columnServiceImpl struct {
	accessChecker
	columnRepo repository.ColumnRepository
	publisher  events.Publisher
	logger     *zap.Logger
}

// NewColumnService creates a new instance of ColumnService
func NewColumnService(
	columnRepo repository.ColumnRepository,
	kanbanRepo repository.KanbanRepository,
	publisher events.Publisher,
	logger *zap.Logger,
) ColumnService {
	return &columnServiceImpl{
		accessChecker: accessChecker{kanbanRepo: kanbanRepo},
		columnRepo:    columnRepo,
		publisher:     publisher,
		logger:        logger,
	}
}

// CreateColumn appends a new column at the end of the kanban
func (s *columnServiceImpl) CreateColumn(ctx context.Context, req *dto.CreateColumnRequest) (*dto.ColumnResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireMember(ctx, req.KanbanID, userID); err != nil {
		return nil, err
	}

	maxPos, err := s.columnRepo.MaxPosition(ctx, req.KanbanID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to compute column position", err.Error())
	}

	column := &domain.Column{
		KanbanID: req.KanbanID,
		Title:    req.Title,
		Position: maxPos + 1,
	}
	if err := s.columnRepo.Create(ctx, column); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create column", err.Error())
	}

	s.publisher.Publish(ctx, events.Event{
		Type:      events.EventColumnCreated,
		KanbanID:  req.KanbanID,
		EntityID:  column.ID,
		ActorID:   userID,
		Timestamp: time.Now(),
	})

	resp := toColumnResponse(column)
	return &resp, nil
}

// GetColumn returns a single column
func (s *columnServiceImpl) GetColumn(ctx context.Context, columnID uuid.UUID) (*dto.ColumnResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	column, err := s.loadColumn(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireMember(ctx, column.KanbanID, userID); err != nil {
		return nil, err
	}

	resp := toColumnResponse(column)
	return &resp, nil
}

// UpdateColumn applies a partial update to a column
func (s *columnServiceImpl) UpdateColumn(ctx context.Context, columnID uuid.UUID, req *dto.UpdateColumnRequest) (*dto.ColumnResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	column, err := s.loadColumn(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireMember(ctx, column.KanbanID, userID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		column.Title = *req.Title
	}
	if err := s.columnRepo.Update(ctx, column); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update column", err.Error())
	}

	s.publisher.Publish(ctx, events.Event{
		Type:      events.EventColumnUpdated,
		KanbanID:  column.KanbanID,
		EntityID:  column.ID,
		ActorID:   userID,
		Timestamp: time.Now(),
	})

	resp := toColumnResponse(column)
	return &resp, nil
}

// DeleteColumn removes a column and all cards under it. Remaining columns
// keep their positions; only relative order is guaranteed after a delete.
func (s *columnServiceImpl) DeleteColumn(ctx context.Context, columnID uuid.UUID) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	column, err := s.loadColumn(ctx, columnID)
	if err != nil {
		return err
	}
	if _, err := s.requireMember(ctx, column.KanbanID, userID); err != nil {
		return err
	}

	if err := s.columnRepo.Delete(ctx, columnID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete column", err.Error())
	}

	s.publisher.Publish(ctx, events.Event{
		Type:      events.EventColumnDeleted,
		KanbanID:  column.KanbanID,
		EntityID:  columnID,
		ActorID:   userID,
		Timestamp: time.Now(),
	})

	s.logger.Info("Column deleted",
		zap.String("column_id", columnID.String()),
		zap.String("kanban_id", column.KanbanID.String()),
	)
	return nil
}

// ReorderColumns renumbers all columns of a kanban to the requested order.
// The request must list exactly the kanban's columns.
func (s *columnServiceImpl) ReorderColumns(ctx context.Context, req *dto.ReorderColumnsRequest) ([]*dto.ColumnResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireMember(ctx, req.KanbanID, userID); err != nil {
		return nil, err
	}

	columns, err := s.columnRepo.FindByKanbanID(ctx, req.KanbanID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load columns", err.Error())
	}

	currentIDs := make([]uuid.UUID, 0, len(columns))
	for _, column := range columns {
		currentIDs = append(currentIDs, column.ID)
	}
	if err := reorder.ValidatePermutation(currentIDs, req.ColumnIDs); err != nil {
		return nil, response.NewAppError(response.ErrCodeValidation, "Column ids must be a permutation of the kanban's columns", err.Error())
	}

	positions := make(map[uuid.UUID]int, len(req.ColumnIDs))
	for i, id := range req.ColumnIDs {
		positions[id] = i
	}
	if err := s.columnRepo.UpdatePositions(ctx, positions); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to reorder columns", err.Error())
	}

	s.publisher.Publish(ctx, events.Event{
		Type:      events.EventColumnsMoved,
		KanbanID:  req.KanbanID,
		ActorID:   userID,
		Payload:   req.ColumnIDs,
		Timestamp: time.Now(),
	})

	byID := make(map[uuid.UUID]*domain.Column, len(columns))
	for _, column := range columns {
		byID[column.ID] = column
	}
	responses := make([]*dto.ColumnResponse, 0, len(req.ColumnIDs))
	for i, id := range req.ColumnIDs {
		column := byID[id]
		column.Position = i
		resp := toColumnResponse(column)
		responses = append(responses, &resp)
	}
	return responses, nil
}

// loadColumn fetches a column or returns a 404 error
func (s *columnServiceImpl) loadColumn(ctx context.Context, columnID uuid.UUID) (*domain.Column, error) {
	column, err := s.columnRepo.FindByID(ctx, columnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Column not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load column", err.Error())
	}
	return column, nil
}
