package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// callerID extracts the authenticated user id stored in the request context
// by the auth middleware
func callerID(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value("user_id").(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, response.NewAppError(response.ErrCodeUnauthorized, "User ID not found in context", "")
	}
	return userID, nil
}

// accessChecker resolves kanban membership for authorization decisions.
// Services embed it so every endpoint applies the same 403/404 rules.
type accessChecker struct {
	kanbanRepo repository.KanbanRepository
}

// requireKanban loads a kanban or returns a 404 error
func (a *accessChecker) requireKanban(ctx context.Context, kanbanID uuid.UUID) (*domain.Kanban, error) {
	kanban, err := a.kanbanRepo.FindByID(ctx, kanbanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Kanban not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load kanban", err.Error())
	}
	return kanban, nil
}

// requireMember verifies the user owns the kanban or is a member of it
func (a *accessChecker) requireMember(ctx context.Context, kanbanID, userID uuid.UUID) (*domain.Kanban, error) {
	kanban, err := a.requireKanban(ctx, kanbanID)
	if err != nil {
		return nil, err
	}
	if kanban.OwnerID == userID {
		return kanban, nil
	}
	_, err = a.kanbanRepo.FindMember(ctx, kanbanID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeForbidden, "Not a member of this kanban", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify membership", err.Error())
	}
	return kanban, nil
}

// requireManager verifies the user owns the kanban or holds an ADMIN membership
func (a *accessChecker) requireManager(ctx context.Context, kanbanID, userID uuid.UUID) (*domain.Kanban, error) {
	kanban, err := a.requireKanban(ctx, kanbanID)
	if err != nil {
		return nil, err
	}
	if kanban.OwnerID == userID {
		return kanban, nil
	}
	member, err := a.kanbanRepo.FindMember(ctx, kanbanID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeForbidden, "Not a member of this kanban", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify membership", err.Error())
	}
	if member.Role != domain.RoleAdmin {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Admin role required for this kanban", "")
	}
	return kanban, nil
}

// requireOwner verifies the user owns the kanban
func (a *accessChecker) requireOwner(ctx context.Context, kanbanID, userID uuid.UUID) (*domain.Kanban, error) {
	kanban, err := a.requireKanban(ctx, kanbanID)
	if err != nil {
		return nil, err
	}
	if kanban.OwnerID != userID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only the kanban owner can perform this action", "")
	}
	return kanban, nil
}
