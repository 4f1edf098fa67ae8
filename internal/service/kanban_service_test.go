package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
)

func newKanbanService(
	kanbanRepo *MockKanbanRepository,
	attachmentRepo *MockAttachmentRepository,
	s3Client *MockS3Client,
) KanbanService {
	logger, _ := zap.NewDevelopment()
	return NewKanbanService(kanbanRepo, attachmentRepo, s3Client, nil, logger)
}

func TestKanbanService_CreateKanban(t *testing.T) {
	ownerID := uuid.New()

	var addedMember *domain.KanbanMember
	mockKanbanRepo := &MockKanbanRepository{
		CreateFunc: func(ctx context.Context, kanban *domain.Kanban) error {
			kanban.ID = uuid.New()
			return nil
		},
		AddMemberFunc: func(ctx context.Context, member *domain.KanbanMember) error {
			addedMember = member
			return nil
		},
	}

	service := newKanbanService(mockKanbanRepo, &MockAttachmentRepository{}, &MockS3Client{})

	got, err := service.CreateKanban(ctxWithUser(ownerID), &dto.CreateKanbanRequest{
		Name:     "Sprint Board",
		Settings: map[string]interface{}{"theme": "dark"},
	})
	if err != nil {
		t.Fatalf("CreateKanban() unexpected error = %v", err)
	}
	if got.OwnerID != ownerID {
		t.Errorf("CreateKanban() OwnerID = %v, want %v", got.OwnerID, ownerID)
	}
	if got.Settings["theme"] != "dark" {
		t.Errorf("CreateKanban() Settings = %v, want theme preserved", got.Settings)
	}
	if addedMember == nil {
		t.Fatal("CreateKanban() did not add the owner to the membership set")
	}
	if addedMember.UserID != ownerID || addedMember.Role != domain.RoleAdmin {
		t.Errorf("CreateKanban() owner membership = %+v, want owner with ADMIN role", addedMember)
	}
}

func TestKanbanService_GetKanban_AccessControl(t *testing.T) {
	ownerID := uuid.New()
	memberID := uuid.New()
	strangerID := uuid.New()
	kanbanID := uuid.New()

	mockKanbanRepo := &MockKanbanRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Kanban, error) {
			return &domain.Kanban{BaseModel: domain.BaseModel{ID: kanbanID}, OwnerID: ownerID}, nil
		},
		FindByIDWithDetailsFunc: func(ctx context.Context, id uuid.UUID) (*domain.Kanban, error) {
			return &domain.Kanban{BaseModel: domain.BaseModel{ID: kanbanID}, OwnerID: ownerID}, nil
		},
		FindMemberFunc: func(ctx context.Context, kID, uID uuid.UUID) (*domain.KanbanMember, error) {
			if uID == memberID {
				return &domain.KanbanMember{KanbanID: kID, UserID: uID, Role: domain.RoleCollaborator}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}

	service := newKanbanService(mockKanbanRepo, &MockAttachmentRepository{}, &MockS3Client{})

	if _, err := service.GetKanban(ctxWithUser(ownerID), kanbanID); err != nil {
		t.Errorf("GetKanban() as owner: unexpected error = %v", err)
	}
	if _, err := service.GetKanban(ctxWithUser(memberID), kanbanID); err != nil {
		t.Errorf("GetKanban() as member: unexpected error = %v", err)
	}
	_, err := service.GetKanban(ctxWithUser(strangerID), kanbanID)
	if appErr, ok := err.(*response.AppError); !ok || appErr.Code != response.ErrCodeForbidden {
		t.Errorf("GetKanban() as stranger: error = %v, want code %v", err, response.ErrCodeForbidden)
	}
	if _, err := service.GetKanban(context.Background(), kanbanID); err == nil {
		t.Error("GetKanban() without an authenticated caller succeeded")
	}
}

func TestKanbanService_DeleteKanban(t *testing.T) {
	ownerID := uuid.New()
	kanbanID := uuid.New()

	t.Run("owner delete removes attachment objects", func(t *testing.T) {
		var deletedKeys []string
		mockKanbanRepo := &MockKanbanRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Kanban, error) {
				return &domain.Kanban{BaseModel: domain.BaseModel{ID: kanbanID}, OwnerID: ownerID}, nil
			},
		}
		mockAttachmentRepo := &MockAttachmentRepository{
			FindFileKeysByKanbanFunc: func(ctx context.Context, kID uuid.UUID) ([]string, error) {
				return []string{"kanban/card/a.png", "kanban/comment/b.pdf"}, nil
			},
		}
		mockS3 := &MockS3Client{
			DeleteFileFunc: func(ctx context.Context, key string) error {
				deletedKeys = append(deletedKeys, key)
				return nil
			},
		}

		service := newKanbanService(mockKanbanRepo, mockAttachmentRepo, mockS3)
		if err := service.DeleteKanban(ctxWithUser(ownerID), kanbanID); err != nil {
			t.Fatalf("DeleteKanban() unexpected error = %v", err)
		}
		if len(deletedKeys) != 2 {
			t.Errorf("DeleteKanban() deleted %d objects, want 2", len(deletedKeys))
		}
	})

	t.Run("admin member cannot delete", func(t *testing.T) {
		mockKanbanRepo := &MockKanbanRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Kanban, error) {
				return &domain.Kanban{BaseModel: domain.BaseModel{ID: kanbanID}, OwnerID: ownerID}, nil
			},
			FindMemberFunc: func(ctx context.Context, kID, uID uuid.UUID) (*domain.KanbanMember, error) {
				return &domain.KanbanMember{KanbanID: kID, UserID: uID, Role: domain.RoleAdmin}, nil
			},
			DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
				t.Error("DeleteKanban() deleted for a non-owner")
				return nil
			},
		}

		service := newKanbanService(mockKanbanRepo, &MockAttachmentRepository{}, &MockS3Client{})
		err := service.DeleteKanban(ctxWithUser(uuid.New()), kanbanID)
		if appErr, ok := err.(*response.AppError); !ok || appErr.Code != response.ErrCodeForbidden {
			t.Errorf("DeleteKanban() error = %v, want code %v", err, response.ErrCodeForbidden)
		}
	})
}

func TestKanbanService_RemoveMember(t *testing.T) {
	ownerID := uuid.New()
	memberID := uuid.New()
	kanbanID := uuid.New()

	newRepo := func() *MockKanbanRepository {
		return &MockKanbanRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Kanban, error) {
				return &domain.Kanban{BaseModel: domain.BaseModel{ID: kanbanID}, OwnerID: ownerID}, nil
			},
			FindMemberFunc: func(ctx context.Context, kID, uID uuid.UUID) (*domain.KanbanMember, error) {
				if uID == memberID || uID == ownerID {
					return &domain.KanbanMember{KanbanID: kID, UserID: uID}, nil
				}
				return nil, gorm.ErrRecordNotFound
			},
		}
	}

	t.Run("owner removes a member", func(t *testing.T) {
		repo := newRepo()
		removed := false
		repo.RemoveMemberFunc = func(ctx context.Context, kID, uID uuid.UUID) error {
			removed = true
			return nil
		}

		service := newKanbanService(repo, &MockAttachmentRepository{}, &MockS3Client{})
		if err := service.RemoveMember(ctxWithUser(ownerID), kanbanID, memberID); err != nil {
			t.Fatalf("RemoveMember() unexpected error = %v", err)
		}
		if !removed {
			t.Error("RemoveMember() did not remove the member")
		}
	})

	t.Run("owner membership cannot be removed", func(t *testing.T) {
		service := newKanbanService(newRepo(), &MockAttachmentRepository{}, &MockS3Client{})
		err := service.RemoveMember(ctxWithUser(ownerID), kanbanID, ownerID)
		if appErr, ok := err.(*response.AppError); !ok || appErr.Code != response.ErrCodeValidation {
			t.Errorf("RemoveMember() error = %v, want code %v", err, response.ErrCodeValidation)
		}
	})

	t.Run("removing a non-member is not found", func(t *testing.T) {
		service := newKanbanService(newRepo(), &MockAttachmentRepository{}, &MockS3Client{})
		err := service.RemoveMember(ctxWithUser(ownerID), kanbanID, uuid.New())
		if appErr, ok := err.(*response.AppError); !ok || appErr.Code != response.ErrCodeNotFound {
			t.Errorf("RemoveMember() error = %v, want code %v", err, response.ErrCodeNotFound)
		}
	})
}
