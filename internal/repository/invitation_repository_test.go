package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

func setupInvitationTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	db.Exec(`CREATE TABLE invitations (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		kanban_id TEXT NOT NULL,
		email TEXT NOT NULL,
		token TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL DEFAULT 'COLLABORATOR',
		invited_by TEXT NOT NULL,
		used INTEGER NOT NULL DEFAULT 0,
		used_at DATETIME
	)`)

	return db
}

func newInvitation(kanbanID uuid.UUID, email, token string) *domain.Invitation {
	return &domain.Invitation{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		KanbanID:  kanbanID,
		Email:     email,
		Token:     token,
		Role:      domain.RoleCollaborator,
		InvitedBy: uuid.New(),
	}
}

func TestInvitationRepository_FindByToken(t *testing.T) {
	db := setupInvitationTestDB(t)
	repo := NewInvitationRepository(db)
	ctx := context.Background()

	invitation := newInvitation(uuid.New(), "dev@example.com", "token-one")
	db.Create(invitation)

	got, err := repo.FindByToken(ctx, "token-one")
	if err != nil {
		t.Fatalf("FindByToken() error = %v", err)
	}
	if got.ID != invitation.ID {
		t.Errorf("expected invitation ID %v, got %v", invitation.ID, got.ID)
	}

	if _, err := repo.FindByToken(ctx, "no-such-token"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestInvitationRepository_MarkUsed(t *testing.T) {
	db := setupInvitationTestDB(t)
	repo := NewInvitationRepository(db)
	ctx := context.Background()

	invitation := newInvitation(uuid.New(), "dev@example.com", "token-one")
	db.Create(invitation)

	if err := repo.MarkUsed(ctx, invitation.ID); err != nil {
		t.Fatalf("MarkUsed() error = %v", err)
	}

	var used domain.Invitation
	db.First(&used, invitation.ID)
	if !used.Used || used.UsedAt == nil {
		t.Errorf("expected used invitation with a timestamp, got used=%v usedAt=%v", used.Used, used.UsedAt)
	}

	// A second consume must report not found, not silently succeed
	if err := repo.MarkUsed(ctx, invitation.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound on double use, got %v", err)
	}
}

func TestInvitationRepository_FindUnusedByEmailAndKanban(t *testing.T) {
	db := setupInvitationTestDB(t)
	repo := NewInvitationRepository(db)
	ctx := context.Background()

	kanbanID := uuid.New()
	open := newInvitation(kanbanID, "dev@example.com", "token-open")
	db.Create(open)

	usedAt := time.Now().Add(-time.Hour)
	consumed := newInvitation(kanbanID, "other@example.com", "token-used")
	consumed.Used = true
	consumed.UsedAt = &usedAt
	db.Create(consumed)

	got, err := repo.FindUnusedByEmailAndKanban(ctx, "dev@example.com", kanbanID)
	if err != nil {
		t.Fatalf("FindUnusedByEmailAndKanban() error = %v", err)
	}
	if got.Token != "token-open" {
		t.Errorf("expected token-open, got %v", got.Token)
	}

	if _, err := repo.FindUnusedByEmailAndKanban(ctx, "other@example.com", kanbanID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound for a consumed invitation, got %v", err)
	}
}

func TestInvitationRepository_FindPendingByKanban(t *testing.T) {
	db := setupInvitationTestDB(t)
	repo := NewInvitationRepository(db)
	ctx := context.Background()

	kanbanID := uuid.New()
	db.Create(newInvitation(kanbanID, "a@example.com", "token-a"))
	db.Create(newInvitation(kanbanID, "b@example.com", "token-b"))
	db.Create(newInvitation(uuid.New(), "c@example.com", "token-c"))

	usedAt := time.Now()
	consumed := newInvitation(kanbanID, "d@example.com", "token-d")
	consumed.Used = true
	consumed.UsedAt = &usedAt
	db.Create(consumed)

	got, err := repo.FindPendingByKanban(ctx, kanbanID)
	if err != nil {
		t.Fatalf("FindPendingByKanban() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 pending invitations, got %d", len(got))
	}
}

func TestInvitationRepository_DeleteUsedBefore(t *testing.T) {
	db := setupInvitationTestDB(t)
	repo := NewInvitationRepository(db)
	ctx := context.Background()

	kanbanID := uuid.New()

	oldUse := time.Now().Add(-40 * 24 * time.Hour)
	stale := newInvitation(kanbanID, "stale@example.com", "token-stale")
	stale.Used = true
	stale.UsedAt = &oldUse
	db.Create(stale)

	recentUse := time.Now().Add(-time.Hour)
	recent := newInvitation(kanbanID, "recent@example.com", "token-recent")
	recent.Used = true
	recent.UsedAt = &recentUse
	db.Create(recent)

	pending := newInvitation(kanbanID, "open@example.com", "token-open")
	db.Create(pending)

	deleted, err := repo.DeleteUsedBefore(ctx, time.Now().Add(-30*24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteUsedBefore() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted invitation, got %d", deleted)
	}

	var count int64
	db.Model(&domain.Invitation{}).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 invitations left, got %d", count)
	}
}
