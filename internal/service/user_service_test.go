package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
)

func newUserService(userRepo *MockUserRepository) UserService {
	logger, _ := zap.NewDevelopment()
	return NewUserService(userRepo, logger)
}

func userLookup(users map[uuid.UUID]*domain.User) func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
		if u, ok := users[id]; ok {
			return u, nil
		}
		return nil, gorm.ErrRecordNotFound
	}
}

func TestUserService_ChangePassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("current-password"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}
	userID := uuid.New()

	newRepo := func() *MockUserRepository {
		return &MockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
				return &domain.User{
					BaseModel:    domain.BaseModel{ID: userID},
					PasswordHash: string(hash),
				}, nil
			},
		}
	}

	t.Run("replaces the hash when the current password matches", func(t *testing.T) {
		repo := newRepo()
		var updated *domain.User
		repo.UpdateFunc = func(ctx context.Context, user *domain.User) error {
			updated = user
			return nil
		}

		service := newUserService(repo)
		err := service.ChangePassword(ctxWithUser(userID), &dto.ChangePasswordRequest{
			CurrentPassword: "current-password",
			NewPassword:     "brand-new-password",
		})
		if err != nil {
			t.Fatalf("ChangePassword() unexpected error = %v", err)
		}
		if updated == nil {
			t.Fatal("ChangePassword() did not persist the user")
		}
		if bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("brand-new-password")) != nil {
			t.Error("ChangePassword() stored hash does not match the new password")
		}
	})

	t.Run("rejects a wrong current password", func(t *testing.T) {
		repo := newRepo()
		repo.UpdateFunc = func(ctx context.Context, user *domain.User) error {
			t.Error("ChangePassword() persisted a change for a wrong current password")
			return nil
		}

		service := newUserService(repo)
		err := service.ChangePassword(ctxWithUser(userID), &dto.ChangePasswordRequest{
			CurrentPassword: "wrong-password",
			NewPassword:     "brand-new-password",
		})
		if appErr, ok := err.(*response.AppError); !ok || appErr.Code != response.ErrCodeUnauthorized {
			t.Errorf("ChangePassword() error = %v, want code %v", err, response.ErrCodeUnauthorized)
		}
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	adminID := uuid.New()
	collaboratorID := uuid.New()
	victimID := uuid.New()

	users := map[uuid.UUID]*domain.User{
		adminID:        {BaseModel: domain.BaseModel{ID: adminID}, Role: domain.RoleAdmin},
		collaboratorID: {BaseModel: domain.BaseModel{ID: collaboratorID}, Role: domain.RoleCollaborator},
		victimID:       {BaseModel: domain.BaseModel{ID: victimID}, Role: domain.RoleCollaborator},
	}

	tests := []struct {
		name        string
		caller      uuid.UUID
		target      uuid.UUID
		wantErrCode string
	}{
		{
			name:   "admin deletes another user",
			caller: adminID,
			target: victimID,
		},
		{
			name:        "collaborator cannot delete users",
			caller:      collaboratorID,
			target:      victimID,
			wantErrCode: response.ErrCodeForbidden,
		},
		{
			name:        "admin cannot delete their own account",
			caller:      adminID,
			target:      adminID,
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name:        "deleting an unknown user is not found",
			caller:      adminID,
			target:      uuid.New(),
			wantErrCode: response.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deleted := false
			repo := &MockUserRepository{
				FindByIDFunc: userLookup(users),
				DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
					deleted = true
					return nil
				},
			}

			service := newUserService(repo)
			err := service.DeleteUser(ctxWithUser(tt.caller), tt.target)

			if tt.wantErrCode != "" {
				if appErr, ok := err.(*response.AppError); !ok || appErr.Code != tt.wantErrCode {
					t.Errorf("DeleteUser() error = %v, want code %v", err, tt.wantErrCode)
				}
				if deleted {
					t.Error("DeleteUser() deleted despite the rejection")
				}
				return
			}
			if err != nil {
				t.Fatalf("DeleteUser() unexpected error = %v", err)
			}
			if !deleted {
				t.Error("DeleteUser() did not delete the user")
			}
		})
	}
}

func TestUserService_ListUsers(t *testing.T) {
	adminID := uuid.New()
	collaboratorID := uuid.New()

	users := map[uuid.UUID]*domain.User{
		adminID:        {BaseModel: domain.BaseModel{ID: adminID}, Role: domain.RoleAdmin},
		collaboratorID: {BaseModel: domain.BaseModel{ID: collaboratorID}, Role: domain.RoleCollaborator},
	}

	repo := &MockUserRepository{
		FindByIDFunc: userLookup(users),
		FindAllFunc: func(ctx context.Context) ([]*domain.User, error) {
			return []*domain.User{users[adminID], users[collaboratorID]}, nil
		},
	}
	service := newUserService(repo)

	got, err := service.ListUsers(ctxWithUser(adminID))
	if err != nil {
		t.Fatalf("ListUsers() unexpected error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("ListUsers() returned %d users, want 2", len(got))
	}

	_, err = service.ListUsers(ctxWithUser(collaboratorID))
	if appErr, ok := err.(*response.AppError); !ok || appErr.Code != response.ErrCodeForbidden {
		t.Errorf("ListUsers() error = %v, want code %v", err, response.ErrCodeForbidden)
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	userID := uuid.New()
	repo := &MockUserRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{
				BaseModel: domain.BaseModel{ID: userID},
				Name:      "Old Name",
				AvatarURL: "https://example.com/old.png",
			}, nil
		},
	}
	service := newUserService(repo)

	name := "New Name"
	got, err := service.UpdateProfile(ctxWithUser(userID), &dto.UpdateProfileRequest{Name: &name})
	if err != nil {
		t.Fatalf("UpdateProfile() unexpected error = %v", err)
	}
	if got.Name != "New Name" {
		t.Errorf("UpdateProfile() Name = %v, want New Name", got.Name)
	}
	// Fields not present in the request stay untouched
	if got.AvatarURL != "https://example.com/old.png" {
		t.Errorf("UpdateProfile() AvatarURL = %v, want unchanged", got.AvatarURL)
	}
}
