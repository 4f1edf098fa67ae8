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

// CommentService defines the interface for comment business logic
type CommentService interface {
	CreateComment(ctx context.Context, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, cardID uuid.UUID) ([]*dto.CommentResponse, error)
	UpdateComment(ctx context.Context, commentID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, commentID uuid.UUID) error
}

// commentServiceImpl is the implementation of CommentService
type commentServiceImpl struct {
	accessChecker
	commentRepo    repository.CommentRepository
	cardRepo       repository.CardRepository
	columnRepo     repository.ColumnRepository
	attachmentRepo repository.AttachmentRepository
	logger         *zap.Logger
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(
	commentRepo repository.CommentRepository,
	cardRepo repository.CardRepository,
	columnRepo repository.ColumnRepository,
	kanbanRepo repository.KanbanRepository,
	attachmentRepo repository.AttachmentRepository,
	logger *zap.Logger,
) CommentService {
	return &commentServiceImpl{
		accessChecker:  accessChecker{kanbanRepo: kanbanRepo},
		commentRepo:    commentRepo,
		cardRepo:       cardRepo,
		columnRepo:     columnRepo,
		attachmentRepo: attachmentRepo,
		logger:         logger,
	}
}

// CreateComment adds a comment to a card, optionally confirming attachments
func (s *commentServiceImpl) CreateComment(ctx context.Context, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.kanbanOfCard(ctx, req.CardID, userID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		CardID:  req.CardID,
		UserID:  userID,
		Content: req.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create comment", err.Error())
	}

	if len(req.AttachmentIDs) > 0 {
		if err := s.confirmCommentAttachments(ctx, req.AttachmentIDs, comment.ID); err != nil {
			return nil, err
		}
	}

	resp := toCommentResponse(comment)
	return &resp, nil
}

// ListComments returns a card's comments in creation order
func (s *commentServiceImpl) ListComments(ctx context.Context, cardID uuid.UUID) ([]*dto.CommentResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.kanbanOfCard(ctx, cardID, userID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.FindByCardID(ctx, cardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list comments", err.Error())
	}

	responses := make([]*dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		attachments, err := s.attachmentRepo.FindByEntityID(ctx, domain.EntityTypeComment, comment.ID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load comment attachments", err.Error())
		}
		resp := toCommentResponse(comment)
		for _, attachment := range attachments {
			resp.Attachments = append(resp.Attachments, toAttachmentResponse(attachment))
		}
		responses = append(responses, &resp)
	}
	return responses, nil
}

// UpdateComment edits a comment. Author only.
func (s *commentServiceImpl) UpdateComment(ctx context.Context, commentID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	comment, err := s.loadComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.kanbanOfCard(ctx, comment.CardID, userID); err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only the author can edit a comment", "")
	}

	comment.Content = req.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update comment", err.Error())
	}

	if len(req.AttachmentIDs) > 0 {
		if err := s.confirmCommentAttachments(ctx, req.AttachmentIDs, comment.ID); err != nil {
			return nil, err
		}
	}

	resp := toCommentResponse(comment)
	return &resp, nil
}

// DeleteComment removes a comment. Author or kanban owner.
func (s *commentServiceImpl) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	comment, err := s.loadComment(ctx, commentID)
	if err != nil {
		return err
	}
	kanban, err := s.kanbanOfCard(ctx, comment.CardID, userID)
	if err != nil {
		return err
	}
	if comment.UserID != userID && kanban.OwnerID != userID {
		return response.NewAppError(response.ErrCodeForbidden, "Only the author or the kanban owner can delete a comment", "")
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete comment", err.Error())
	}
	return nil
}

// confirmCommentAttachments binds TEMP comment attachments to a comment
func (s *commentServiceImpl) confirmCommentAttachments(ctx context.Context, attachmentIDs []uuid.UUID, commentID uuid.UUID) error {
	attachments, err := s.attachmentRepo.FindByIDs(ctx, attachmentIDs)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to load attachments", err.Error())
	}
	if len(attachments) != len(attachmentIDs) {
		return response.NewAppError(response.ErrCodeValidation, "One or more attachments were not found", "")
	}
	for _, attachment := range attachments {
		if attachment.EntityType != domain.EntityTypeComment {
			return response.NewAppError(response.ErrCodeValidation, "Attachment was uploaded for a different entity type", "")
		}
	}
	if err := s.attachmentRepo.ConfirmAttachments(ctx, attachmentIDs, commentID); err != nil {
		return response.NewAppError(response.ErrCodeValidation, "Failed to confirm attachments", err.Error())
	}
	return nil
}

// kanbanOfCard resolves a card's kanban and checks the caller's membership
func (s *commentServiceImpl) kanbanOfCard(ctx context.Context, cardID, userID uuid.UUID) (*domain.Kanban, error) {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Card not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load card", err.Error())
	}
	column, err := s.columnRepo.FindByID(ctx, card.ColumnID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load column", err.Error())
	}
	return s.requireMember(ctx, column.KanbanID, userID)
}

// loadComment fetches a comment or returns a 404 error
func (s *commentServiceImpl) loadComment(ctx context.Context, commentID uuid.UUID) (*domain.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Comment not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load comment", err.Error())
	}
	return comment, nil
}
