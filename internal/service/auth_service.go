package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// blacklistKeyPrefix namespaces revoked token JTIs in redis
const blacklistKeyPrefix = "token:blacklist:"

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, tokenString string) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
	EnsureAdminUser(ctx context.Context, email, password string) error
}

// authServiceImpl is the implementation of AuthService
type authServiceImpl struct {
	userRepo repository.UserRepository
	tokens   *TokenManager
	redis    *redis.Client
	logger   *zap.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(userRepo repository.UserRepository, tokens *TokenManager, redisClient *redis.Client, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
		redis:    redisClient,
		logger:   logger,
	}
}

// Login verifies credentials and issues a session token
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid email or password", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to look up user", err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid email or password", "")
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to issue token", err.Error())
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toUserResponse(user),
	}, nil
}

// Logout revokes the presented token until its natural expiry
func (s *authServiceImpl) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return response.NewAppError(response.ErrCodeUnauthorized, "Invalid token", "")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	if err := s.redis.Set(ctx, blacklistKeyPrefix+claims.ID, "1", ttl).Err(); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to revoke token", err.Error())
	}

	s.logger.Info("User logged out", zap.String("user_id", claims.UserID.String()))
	return nil
}

// IsTokenRevoked reports whether a token's JTI has been blacklisted
func (s *authServiceImpl) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.redis.Exists(ctx, blacklistKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// EnsureAdminUser creates the bootstrap administrator when no ADMIN exists
func (s *authServiceImpl) EnsureAdminUser(ctx context.Context, email, password string) error {
	count, err := s.userRepo.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return err
	}

	s.logger.Info("Bootstrap admin user created", zap.String("email", email))
	return nil
}

// toUserResponse converts a user domain model to its response DTO
func toUserResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
