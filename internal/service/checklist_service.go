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

// ChecklistService defines the interface for checklist business logic
type ChecklistService interface {
	CreateItem(ctx context.Context, req *dto.CreateChecklistItemRequest) (*dto.ChecklistItemResponse, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, req *dto.UpdateChecklistItemRequest) (*dto.ChecklistItemResponse, error)
	ToggleItem(ctx context.Context, itemID uuid.UUID) (*dto.ChecklistItemResponse, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
}

// checklistServiceImpl is the implementation of ChecklistService
type checklistServiceImpl struct {
	accessChecker
	checklistRepo repository.ChecklistRepository
	cardRepo      repository.CardRepository
	columnRepo    repository.ColumnRepository
	logger        *zap.Logger
}

// NewChecklistService creates a new instance of ChecklistService
func NewChecklistService(
	checklistRepo repository.ChecklistRepository,
	cardRepo repository.CardRepository,
	columnRepo repository.ColumnRepository,
	kanbanRepo repository.KanbanRepository,
	logger *zap.Logger,
) ChecklistService {
	return &checklistServiceImpl{
		accessChecker: accessChecker{kanbanRepo: kanbanRepo},
		checklistRepo: checklistRepo,
		cardRepo:      cardRepo,
		columnRepo:    columnRepo,
		logger:        logger,
	}
}

// CreateItem appends a checklist item to a card
func (s *checklistServiceImpl) CreateItem(ctx context.Context, req *dto.CreateChecklistItemRequest) (*dto.ChecklistItemResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.requireCardMember(ctx, req.CardID, userID); err != nil {
		return nil, err
	}

	maxPos, err := s.checklistRepo.MaxPosition(ctx, req.CardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to compute checklist position", err.Error())
	}

	item := &domain.ChecklistItem{
		CardID:   req.CardID,
		Text:     req.Text,
		Position: maxPos + 1,
	}
	if err := s.checklistRepo.Create(ctx, item); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create checklist item", err.Error())
	}

	resp := toChecklistItemResponse(item)
	return &resp, nil
}

// UpdateItem applies a partial update to a checklist item
func (s *checklistServiceImpl) UpdateItem(ctx context.Context, itemID uuid.UUID, req *dto.UpdateChecklistItemRequest) (*dto.ChecklistItemResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.requireCardMember(ctx, item.CardID, userID); err != nil {
		return nil, err
	}

	if req.Text != nil {
		item.Text = *req.Text
	}
	if req.Done != nil {
		item.Done = *req.Done
	}
	if err := s.checklistRepo.Update(ctx, item); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update checklist item", err.Error())
	}

	resp := toChecklistItemResponse(item)
	return &resp, nil
}

// ToggleItem flips a checklist item's done flag
func (s *checklistServiceImpl) ToggleItem(ctx context.Context, itemID uuid.UUID) (*dto.ChecklistItemResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.requireCardMember(ctx, item.CardID, userID); err != nil {
		return nil, err
	}

	item.Done = !item.Done
	if err := s.checklistRepo.Update(ctx, item); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to toggle checklist item", err.Error())
	}

	resp := toChecklistItemResponse(item)
	return &resp, nil
}

// DeleteItem removes a checklist item
func (s *checklistServiceImpl) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return err
	}
	if err := s.requireCardMember(ctx, item.CardID, userID); err != nil {
		return err
	}

	if err := s.checklistRepo.Delete(ctx, itemID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete checklist item", err.Error())
	}
	return nil
}

// requireCardMember resolves a card's kanban and checks membership
func (s *checklistServiceImpl) requireCardMember(ctx context.Context, cardID, userID uuid.UUID) error {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Card not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load card", err.Error())
	}
	column, err := s.columnRepo.FindByID(ctx, card.ColumnID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to load column", err.Error())
	}
	_, err = s.requireMember(ctx, column.KanbanID, userID)
	return err
}

// loadItem fetches a checklist item or returns a 404 error
func (s *checklistServiceImpl) loadItem(ctx context.Context, itemID uuid.UUID) (*domain.ChecklistItem, error) {
	item, err := s.checklistRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Checklist item not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load checklist item", err.Error())
	}
	return item, nil
}
