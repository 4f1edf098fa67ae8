package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// InvitationService defines the interface for invitation business logic
type InvitationService interface {
	IssueInvitation(ctx context.Context, req *dto.IssueInvitationRequest) (*dto.IssueInvitationResponse, error)
	AcceptInvitation(ctx context.Context, req *dto.AcceptInvitationRequest) (*dto.AcceptInvitationResponse, error)
	ListPending(ctx context.Context, kanbanID uuid.UUID) ([]*dto.InvitationResponse, error)
}

// invitationServiceImpl is the implementation of InvitationService
type invitationServiceImpl struct {
	accessChecker
	invitationRepo repository.InvitationRepository
	userRepo       repository.UserRepository
	tokens         *TokenManager
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewInvitationService creates a new instance of InvitationService
func NewInvitationService(
	invitationRepo repository.InvitationRepository,
	kanbanRepo repository.KanbanRepository,
	userRepo repository.UserRepository,
	tokens *TokenManager,
	m *metrics.Metrics,
	logger *zap.Logger,
) InvitationService {
	return &invitationServiceImpl{
		accessChecker:  accessChecker{kanbanRepo: kanbanRepo},
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		tokens:         tokens,
		metrics:        m,
		logger:         logger,
	}
}

// IssueInvitation invites a collaborator to a kanban. A userId attaches the
// user directly; an email mints a single-use token. Issuing twice for the
// same unredeemed email returns the existing token unchanged.
func (s *invitationServiceImpl) IssueInvitation(ctx context.Context, req *dto.IssueInvitationRequest) (*dto.IssueInvitationResponse, error) {
	inviterID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireManager(ctx, req.KanbanID, inviterID); err != nil {
		return nil, err
	}

	if (req.Email == "") == (req.UserID == nil) {
		return nil, response.NewAppError(response.ErrCodeValidation, "Exactly one of email or userId must be provided", "")
	}

	role := domain.RoleCollaborator
	if req.Role != "" {
		role = domain.Role(req.Role)
	}

	if req.UserID != nil {
		return s.attachExistingUser(ctx, req.KanbanID, *req.UserID, role)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Idempotent issuance: an unredeemed invitation for this address wins
	existing, err := s.invitationRepo.FindUnusedByEmailAndKanban(ctx, email, req.KanbanID)
	if err == nil {
		return &dto.IssueInvitationResponse{
			InvitationID: &existing.ID,
			KanbanID:     existing.KanbanID,
			Email:        existing.Email,
			Token:        existing.Token,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check existing invitations", err.Error())
	}

	token, err := generateInvitationToken()
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to generate token", err.Error())
	}

	invitation := &domain.Invitation{
		KanbanID:  req.KanbanID,
		Email:     email,
		Token:     token,
		Role:      role,
		InvitedBy: inviterID,
	}
	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create invitation", err.Error())
	}

	s.metrics.IncrementInvitationIssued()
	s.logger.Info("Invitation issued",
		zap.String("kanban_id", req.KanbanID.String()),
		zap.String("invitation_id", invitation.ID.String()),
	)

	return &dto.IssueInvitationResponse{
		InvitationID: &invitation.ID,
		KanbanID:     invitation.KanbanID,
		Email:        invitation.Email,
		Token:        invitation.Token,
	}, nil
}

// AcceptInvitation redeems a token, creating the user if needed, attaching
// membership and issuing a session token. A used token is rejected with no
// side effects.
func (s *invitationServiceImpl) AcceptInvitation(ctx context.Context, req *dto.AcceptInvitationRequest) (*dto.AcceptInvitationResponse, error) {
	invitation, err := s.invitationRepo.FindByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Invitation not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load invitation", err.Error())
	}
	if invitation.Used {
		return nil, response.NewAppError(response.ErrCodeInvitationUsed, "Invitation has already been used", "")
	}

	user, err := s.userRepo.FindByEmail(ctx, invitation.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to look up user", err.Error())
		}

		hash, hashErr := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to hash password", hashErr.Error())
		}
		name := req.Name
		if name == "" {
			name = invitation.Email
		}
		user = &domain.User{
			Name:         name,
			Email:        invitation.Email,
			PasswordHash: string(hash),
			Role:         domain.RoleCollaborator,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create user", err.Error())
		}
	} else if req.Password != "" {
		// An existing account keeps its password; the supplied one is ignored
		s.logger.Warn("Invitation accepted by existing user, supplied password ignored",
			zap.String("user_id", user.ID.String()),
		)
	}

	if err := s.attachMembership(ctx, invitation.KanbanID, user.ID, invitation.Role); err != nil {
		return nil, err
	}

	if err := s.invitationRepo.MarkUsed(ctx, invitation.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Lost the race with a concurrent accept
			return nil, response.NewAppError(response.ErrCodeInvitationUsed, "Invitation has already been used", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to mark invitation used", err.Error())
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to issue token", err.Error())
	}

	s.metrics.IncrementInvitationAccepted()
	s.logger.Info("Invitation accepted",
		zap.String("invitation_id", invitation.ID.String()),
		zap.String("user_id", user.ID.String()),
	)

	return &dto.AcceptInvitationResponse{
		KanbanID:  invitation.KanbanID,
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toUserResponse(user),
	}, nil
}

// ListPending returns a kanban's unredeemed invitations. Owner only.
func (s *invitationServiceImpl) ListPending(ctx context.Context, kanbanID uuid.UUID) ([]*dto.InvitationResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireOwner(ctx, kanbanID, userID); err != nil {
		return nil, err
	}

	invitations, err := s.invitationRepo.FindPendingByKanban(ctx, kanbanID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list invitations", err.Error())
	}

	responses := make([]*dto.InvitationResponse, 0, len(invitations))
	for _, invitation := range invitations {
		responses = append(responses, &dto.InvitationResponse{
			InvitationID: invitation.ID,
			KanbanID:     invitation.KanbanID,
			Email:        invitation.Email,
			Role:         string(invitation.Role),
			InvitedBy:    invitation.InvitedBy,
			Used:         invitation.Used,
			UsedAt:       invitation.UsedAt,
			CreatedAt:    invitation.CreatedAt,
		})
	}
	return responses, nil
}

// attachExistingUser adds a known user to the membership set directly
func (s *invitationServiceImpl) attachExistingUser(ctx context.Context, kanbanID, userID uuid.UUID, role domain.Role) (*dto.IssueInvitationResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "User not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load user", err.Error())
	}

	if _, err := s.kanbanRepo.FindMember(ctx, kanbanID, userID); err == nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyMember, "User is already a member of this kanban", "")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check membership", err.Error())
	}

	member := &domain.KanbanMember{
		KanbanID: kanbanID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now(),
	}
	if err := s.kanbanRepo.AddMember(ctx, member); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to add member", err.Error())
	}

	return &dto.IssueInvitationResponse{
		KanbanID: kanbanID,
		Attached: true,
	}, nil
}

// attachMembership adds the user to the kanban, tolerating an existing row
func (s *invitationServiceImpl) attachMembership(ctx context.Context, kanbanID, userID uuid.UUID, role domain.Role) error {
	if _, err := s.kanbanRepo.FindMember(ctx, kanbanID, userID); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewAppError(response.ErrCodeInternal, "Failed to check membership", err.Error())
	}

	member := &domain.KanbanMember{
		KanbanID: kanbanID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now(),
	}
	if err := s.kanbanRepo.AddMember(ctx, member); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to add member", err.Error())
	}
	return nil
}

// generateInvitationToken mints a 32-byte random hex token
func generateInvitationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
