package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// LabelService defines the interface for label business logic
type LabelService interface {
	CreateLabel(ctx context.Context, req *dto.CreateLabelRequest) (*dto.LabelResponse, error)
	ListLabels(ctx context.Context, kanbanID uuid.UUID) ([]*dto.LabelResponse, error)
	UpdateLabel(ctx context.Context, labelID uuid.UUID, req *dto.UpdateLabelRequest) (*dto.LabelResponse, error)
	DeleteLabel(ctx context.Context, labelID uuid.UUID) error
}

// labelServiceImpl is the implementation of LabelService
type labelServiceImpl struct {
	accessChecker
	labelRepo repository.LabelRepository
	logger    *zap.Logger
}

// NewLabelService creates a new instance of LabelService
func NewLabelService(labelRepo repository.LabelRepository, kanbanRepo repository.KanbanRepository, logger *zap.Logger) LabelService {
	return &labelServiceImpl{
		accessChecker: accessChecker{kanbanRepo: kanbanRepo},
		labelRepo:     labelRepo,
		logger:        logger,
	}
}

// CreateLabel creates a label. Names are unique per kanban.
func (s *labelServiceImpl) CreateLabel(ctx context.Context, req *dto.CreateLabelRequest) (*dto.LabelResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireMember(ctx, req.KanbanID, userID); err != nil {
		return nil, err
	}

	if _, err := s.labelRepo.FindByKanbanAndName(ctx, req.KanbanID, req.Name); err == nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "A label with this name already exists", "")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check label name", err.Error())
	}

	label := &domain.Label{
		KanbanID: req.KanbanID,
		Name:     req.Name,
		Color:    req.Color,
	}
	if err := s.labelRepo.Create(ctx, label); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create label", err.Error())
	}

	resp := toLabelResponse(label)
	return &resp, nil
}

// ListLabels returns all labels of a kanban
func (s *labelServiceImpl) ListLabels(ctx context.Context, kanbanID uuid.UUID) ([]*dto.LabelResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireMember(ctx, kanbanID, userID); err != nil {
		return nil, err
	}

	labels, err := s.labelRepo.FindByKanbanID(ctx, kanbanID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list labels", err.Error())
	}

	responses := make([]*dto.LabelResponse, 0, len(labels))
	for _, label := range labels {
		resp := toLabelResponse(label)
		responses = append(responses, &resp)
	}
	return responses, nil
}

// UpdateLabel applies a partial update to a label
func (s *labelServiceImpl) UpdateLabel(ctx context.Context, labelID uuid.UUID, req *dto.UpdateLabelRequest) (*dto.LabelResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	label, err := s.loadLabel(ctx, labelID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireMember(ctx, label.KanbanID, userID); err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != label.Name {
		if _, err := s.labelRepo.FindByKanbanAndName(ctx, label.KanbanID, *req.Name); err == nil {
			return nil, response.NewAppError(response.ErrCodeAlreadyExists, "A label with this name already exists", "")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check label name", err.Error())
		}
		label.Name = *req.Name
	}
	if req.Color != nil {
		label.Color = *req.Color
	}

	if err := s.labelRepo.Update(ctx, label); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update label", err.Error())
	}

	resp := toLabelResponse(label)
	return &resp, nil
}

// DeleteLabel removes a label and its card links
func (s *labelServiceImpl) DeleteLabel(ctx context.Context, labelID uuid.UUID) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	label, err := s.loadLabel(ctx, labelID)
	if err != nil {
		return err
	}
	if _, err := s.requireMember(ctx, label.KanbanID, userID); err != nil {
		return err
	}

	if err := s.labelRepo.Delete(ctx, labelID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete label", err.Error())
	}
	return nil
}

// loadLabel fetches a label or returns a 404 error
func (s *labelServiceImpl) loadLabel(ctx context.Context, labelID uuid.UUID) (*domain.Label, error) {
	label, err := s.labelRepo.FindByID(ctx, labelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Label not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load label", err.Error())
	}
	return label, nil
}
