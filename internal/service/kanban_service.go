package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kanban-board-api/internal/client"
	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// KanbanService defines the interface for kanban business logic
type KanbanService interface {
	CreateKanban(ctx context.Context, req *dto.CreateKanbanRequest) (*dto.KanbanResponse, error)
	GetKanban(ctx context.Context, kanbanID uuid.UUID) (*dto.KanbanDetailResponse, error)
	ListKanbans(ctx context.Context) ([]*dto.KanbanResponse, error)
	UpdateKanban(ctx context.Context, kanbanID uuid.UUID, req *dto.UpdateKanbanRequest) (*dto.KanbanResponse, error)
	DeleteKanban(ctx context.Context, kanbanID uuid.UUID) error
	ListMembers(ctx context.Context, kanbanID uuid.UUID) ([]*dto.MemberResponse, error)
	RemoveMember(ctx context.Context, kanbanID, userID uuid.UUID) error
}

// kanbanServiceImpl is the implementation of KanbanService
type kanbanServiceImpl struct {
	accessChecker
	kanbanRepo     repository.KanbanRepository
	attachmentRepo repository.AttachmentRepository
	s3Client       client.S3ClientInterface
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewKanbanService creates a new instance of KanbanService
func NewKanbanService(
	kanbanRepo repository.KanbanRepository,
	attachmentRepo repository.AttachmentRepository,
	s3Client client.S3ClientInterface,
	m *metrics.Metrics,
	logger *zap.Logger,
) KanbanService {
	return &kanbanServiceImpl{
		accessChecker:  accessChecker{kanbanRepo: kanbanRepo},
		kanbanRepo:     kanbanRepo,
		attachmentRepo: attachmentRepo,
		s3Client:       s3Client,
		metrics:        m,
		logger:         logger,
	}
}

// CreateKanban creates a new kanban owned by the caller
func (s *kanbanServiceImpl) CreateKanban(ctx context.Context, req *dto.CreateKanbanRequest) (*dto.KanbanResponse, error) {
	ownerID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	var settingsJSON datatypes.JSON
	if req.Settings != nil {
		jsonBytes, err := json.Marshal(req.Settings)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid settings document", err.Error())
		}
		settingsJSON = jsonBytes
	}

	kanban := &domain.Kanban{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Settings:    settingsJSON,
	}
	if err := s.kanbanRepo.Create(ctx, kanban); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create kanban", err.Error())
	}

	// The owner also appears in the membership set so list/member queries
	// need no special owner case
	member := &domain.KanbanMember{
		KanbanID: kanban.ID,
		UserID:   ownerID,
		Role:     domain.RoleAdmin,
		JoinedAt: time.Now(),
	}
	if err := s.kanbanRepo.AddMember(ctx, member); err != nil {
		s.logger.Warn("Failed to add owner membership",
			zap.String("kanban_id", kanban.ID.String()),
			zap.Error(err),
		)
	}

	s.metrics.IncrementKanbanCreated()
	s.logger.Info("Kanban created",
		zap.String("kanban_id", kanban.ID.String()),
		zap.String("owner_id", ownerID.String()),
	)

	resp := toKanbanResponse(kanban)
	return &resp, nil
}

// GetKanban returns the full board state with ordered columns and cards
func (s *kanbanServiceImpl) GetKanban(ctx context.Context, kanbanID uuid.UUID) (*dto.KanbanDetailResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireMember(ctx, kanbanID, userID); err != nil {
		return nil, err
	}

	kanban, err := s.kanbanRepo.FindByIDWithDetails(ctx, kanbanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Kanban not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load kanban", err.Error())
	}

	detail := &dto.KanbanDetailResponse{
		KanbanResponse: toKanbanResponse(kanban),
		Columns:        make([]dto.ColumnDetailResponse, 0, len(kanban.Columns)),
		Labels:         make([]dto.LabelResponse, 0, len(kanban.Labels)),
		Members:        make([]dto.MemberResponse, 0, len(kanban.Members)),
	}
	for i := range kanban.Columns {
		column := &kanban.Columns[i]
		columnDetail := dto.ColumnDetailResponse{
			ColumnResponse: toColumnResponse(column),
			Cards:          make([]dto.CardResponse, 0, len(column.Cards)),
		}
		for j := range column.Cards {
			columnDetail.Cards = append(columnDetail.Cards, toCardResponse(&column.Cards[j]))
		}
		detail.Columns = append(detail.Columns, columnDetail)
	}
	for i := range kanban.Labels {
		detail.Labels = append(detail.Labels, toLabelResponse(&kanban.Labels[i]))
	}
	for i := range kanban.Members {
		detail.Members = append(detail.Members, toMemberResponse(&kanban.Members[i]))
	}
	return detail, nil
}

// ListKanbans returns kanbans the caller owns or is a member of
func (s *kanbanServiceImpl) ListKanbans(ctx context.Context) ([]*dto.KanbanResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	kanbans, err := s.kanbanRepo.FindAccessibleByUser(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list kanbans", err.Error())
	}

	responses := make([]*dto.KanbanResponse, 0, len(kanbans))
	for _, kanban := range kanbans {
		resp := toKanbanResponse(kanban)
		responses = append(responses, &resp)
	}
	return responses, nil
}

// UpdateKanban applies a partial update. Owner or ADMIN member only.
func (s *kanbanServiceImpl) UpdateKanban(ctx context.Context, kanbanID uuid.UUID, req *dto.UpdateKanbanRequest) (*dto.KanbanResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	kanban, err := s.requireManager(ctx, kanbanID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		kanban.Name = *req.Name
	}
	if req.Description != nil {
		kanban.Description = *req.Description
	}
	if req.Settings != nil {
		jsonBytes, err := json.Marshal(req.Settings)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid settings document", err.Error())
		}
		kanban.Settings = jsonBytes
	}

	if err := s.kanbanRepo.Update(ctx, kanban); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update kanban", err.Error())
	}

	resp := toKanbanResponse(kanban)
	return &resp, nil
}

// DeleteKanban removes a kanban and everything under it. Owner only.
func (s *kanbanServiceImpl) DeleteKanban(ctx context.Context, kanbanID uuid.UUID) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}
	if _, err := s.requireOwner(ctx, kanbanID, userID); err != nil {
		return err
	}

	// Collect object keys before the cascade removes the attachment rows
	fileKeys, err := s.attachmentRepo.FindFileKeysByKanban(ctx, kanbanID)
	if err != nil {
		s.logger.Warn("Failed to collect attachment keys before kanban delete",
			zap.String("kanban_id", kanbanID.String()),
			zap.Error(err),
		)
	}

	if err := s.kanbanRepo.Delete(ctx, kanbanID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete kanban", err.Error())
	}

	// Best effort: orphaned objects are preferable to a failed delete
	for _, key := range fileKeys {
		if err := s.s3Client.DeleteFile(ctx, key); err != nil {
			s.logger.Warn("Failed to delete attachment object",
				zap.String("file_key", key),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("Kanban deleted",
		zap.String("kanban_id", kanbanID.String()),
		zap.String("deleted_by", userID.String()),
	)
	return nil
}

// ListMembers returns the kanban's membership set
func (s *kanbanServiceImpl) ListMembers(ctx context.Context, kanbanID uuid.UUID) ([]*dto.MemberResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireMember(ctx, kanbanID, userID); err != nil {
		return nil, err
	}

	members, err := s.kanbanRepo.FindMembers(ctx, kanbanID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list members", err.Error())
	}

	responses := make([]*dto.MemberResponse, 0, len(members))
	for _, member := range members {
		resp := toMemberResponse(member)
		responses = append(responses, &resp)
	}
	return responses, nil
}

// RemoveMember detaches a member from the kanban. Owner only, and the owner
// membership itself cannot be removed.
func (s *kanbanServiceImpl) RemoveMember(ctx context.Context, kanbanID, userID uuid.UUID) error {
	callerUserID, err := callerID(ctx)
	if err != nil {
		return err
	}
	kanban, err := s.requireOwner(ctx, kanbanID, callerUserID)
	if err != nil {
		return err
	}
	if kanban.OwnerID == userID {
		return response.NewAppError(response.ErrCodeValidation, "The kanban owner cannot be removed", "")
	}

	if _, err := s.kanbanRepo.FindMember(ctx, kanbanID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Member not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load member", err.Error())
	}

	if err := s.kanbanRepo.RemoveMember(ctx, kanbanID, userID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to remove member", err.Error())
	}
	return nil
}
