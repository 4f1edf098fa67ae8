package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// UserService defines the interface for user business logic
type UserService interface {
	GetCurrentUser(ctx context.Context) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error
	ListUsers(ctx context.Context) ([]*dto.UserResponse, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// userServiceImpl is the implementation of UserService
type userServiceImpl struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo repository.UserRepository, logger *zap.Logger) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetCurrentUser returns the authenticated user's profile
func (s *userServiceImpl) GetCurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "User not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load user", err.Error())
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// UpdateProfile applies a partial update to the caller's profile
func (s *userServiceImpl) UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "User not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load user", err.Error())
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update user", err.Error())
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ChangePassword verifies the current password and sets a new one
func (s *userServiceImpl) ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "User not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load user", err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return response.NewAppError(response.ErrCodeUnauthorized, "Current password is incorrect", "")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to hash password", err.Error())
	}

	user.PasswordHash = string(hash)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to update password", err.Error())
	}

	s.logger.Info("User changed password", zap.String("user_id", userID.String()))
	return nil
}

// ListUsers returns all users. Restricted to global admins.
func (s *userServiceImpl) ListUsers(ctx context.Context) ([]*dto.UserResponse, error) {
	if err := s.requireGlobalAdmin(ctx); err != nil {
		return nil, err
	}

	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list users", err.Error())
	}

	responses := make([]*dto.UserResponse, 0, len(users))
	for _, user := range users {
		resp := toUserResponse(user)
		responses = append(responses, &resp)
	}
	return responses, nil
}

// DeleteUser removes a user account. Restricted to global admins, and an
// admin can never delete their own account.
func (s *userServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	callerUserID, err := callerID(ctx)
	if err != nil {
		return err
	}
	if err := s.requireGlobalAdmin(ctx); err != nil {
		return err
	}
	if callerUserID == userID {
		return response.NewAppError(response.ErrCodeValidation, "Cannot delete your own account", "")
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "User not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load user", err.Error())
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete user", err.Error())
	}

	s.logger.Info("User deleted",
		zap.String("user_id", userID.String()),
		zap.String("deleted_by", callerUserID.String()),
	)
	return nil
}

// requireGlobalAdmin verifies the caller holds the global ADMIN role
func (s *userServiceImpl) requireGlobalAdmin(ctx context.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeUnauthorized, "User not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load user", err.Error())
	}
	if !user.IsAdmin() {
		return response.NewAppError(response.ErrCodeForbidden, "Admin role required", "")
	}
	return nil
}
