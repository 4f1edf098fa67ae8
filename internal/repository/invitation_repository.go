package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

// InvitationRepository defines the interface for invitation data access
type InvitationRepository interface {
	Create(ctx context.Context, invitation *domain.Invitation) error
	FindByToken(ctx context.Context, token string) (*domain.Invitation, error)
	FindUnusedByEmailAndKanban(ctx context.Context, email string, kanbanID uuid.UUID) (*domain.Invitation, error)
	FindPendingByKanban(ctx context.Context, kanbanID uuid.UUID) ([]*domain.Invitation, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
	DeleteUsedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// invitationRepositoryImpl is the GORM implementation of InvitationRepository
type invitationRepositoryImpl struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new instance of InvitationRepository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepositoryImpl{db: db}
}

// Create creates a new invitation
func (r *invitationRepositoryImpl) Create(ctx context.Context, invitation *domain.Invitation) error {
	if err := r.db.WithContext(ctx).Create(invitation).Error; err != nil {
		return err
	}
	return nil
}

// FindByToken finds an invitation by its opaque token
func (r *invitationRepositoryImpl) FindByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	var invitation domain.Invitation
	if err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// FindUnusedByEmailAndKanban finds an open invitation for the (email, kanban)
// pair. Used for idempotent issuance.
func (r *invitationRepositoryImpl) FindUnusedByEmailAndKanban(ctx context.Context, email string, kanbanID uuid.UUID) (*domain.Invitation, error) {
	var invitation domain.Invitation
	if err := r.db.WithContext(ctx).
		Where("email = ? AND kanban_id = ? AND used = ?", email, kanbanID, false).
		First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// FindPendingByKanban returns all unused invitations for a kanban
func (r *invitationRepositoryImpl) FindPendingByKanban(ctx context.Context, kanbanID uuid.UUID) ([]*domain.Invitation, error) {
	var invitations []*domain.Invitation
	if err := r.db.WithContext(ctx).
		Where("kanban_id = ? AND used = ?", kanbanID, false).
		Order("created_at ASC").
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

// MarkUsed flips the invitation to used and stamps the time. Only unused rows
// are updated; a second call reports not found.
func (r *invitationRepositoryImpl) MarkUsed(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Invitation{}).
		Where("id = ? AND used = ?", id, false).
		Updates(map[string]interface{}{
			"used":    true,
			"used_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteUsedBefore purges used invitations older than the cutoff
func (r *invitationRepositoryImpl) DeleteUsedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("used = ? AND used_at < ?", true, cutoff).
		Delete(&domain.Invitation{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
