package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/reorder"
)

// ctxWithUser returns a context carrying the authenticated user, the way the
// auth middleware injects it.
func ctxWithUser(userID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), "user_id", userID)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *domain.User) error
	FindByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	FindAllFunc     func(ctx context.Context) ([]*domain.User, error)
	UpdateFunc      func(ctx context.Context, user *domain.User) error
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error
	CountByRoleFunc func(ctx context.Context, role domain.Role) (int64, error)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	if m.CountByRoleFunc != nil {
		return m.CountByRoleFunc(ctx, role)
	}
	return 0, nil
}

// MockKanbanRepository is a mock implementation of KanbanRepository
type MockKanbanRepository struct {
	CreateFunc               func(ctx context.Context, kanban *domain.Kanban) error
	FindByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.Kanban, error)
	FindByIDWithDetailsFunc  func(ctx context.Context, id uuid.UUID) (*domain.Kanban, error)
	FindAccessibleByUserFunc func(ctx context.Context, userID uuid.UUID) ([]*domain.Kanban, error)
	UpdateFunc               func(ctx context.Context, kanban *domain.Kanban) error
	DeleteFunc               func(ctx context.Context, id uuid.UUID) error
	AddMemberFunc            func(ctx context.Context, member *domain.KanbanMember) error
	RemoveMemberFunc         func(ctx context.Context, kanbanID, userID uuid.UUID) error
	FindMemberFunc           func(ctx context.Context, kanbanID, userID uuid.UUID) (*domain.KanbanMember, error)
	FindMembersFunc          func(ctx context.Context, kanbanID uuid.UUID) ([]*domain.KanbanMember, error)
}

func (m *MockKanbanRepository) Create(ctx context.Context, kanban *domain.Kanban) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, kanban)
	}
	return nil
}

func (m *MockKanbanRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Kanban, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockKanbanRepository) FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*domain.Kanban, error) {
	if m.FindByIDWithDetailsFunc != nil {
		return m.FindByIDWithDetailsFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockKanbanRepository) FindAccessibleByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Kanban, error) {
	if m.FindAccessibleByUserFunc != nil {
		return m.FindAccessibleByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockKanbanRepository) Update(ctx context.Context, kanban *domain.Kanban) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, kanban)
	}
	return nil
}

func (m *MockKanbanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockKanbanRepository) AddMember(ctx context.Context, member *domain.KanbanMember) error {
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(ctx, member)
	}
	return nil
}

func (m *MockKanbanRepository) RemoveMember(ctx context.Context, kanbanID, userID uuid.UUID) error {
	if m.RemoveMemberFunc != nil {
		return m.RemoveMemberFunc(ctx, kanbanID, userID)
	}
	return nil
}

func (m *MockKanbanRepository) FindMember(ctx context.Context, kanbanID, userID uuid.UUID) (*domain.KanbanMember, error) {
	if m.FindMemberFunc != nil {
		return m.FindMemberFunc(ctx, kanbanID, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockKanbanRepository) FindMembers(ctx context.Context, kanbanID uuid.UUID) ([]*domain.KanbanMember, error) {
	if m.FindMembersFunc != nil {
		return m.FindMembersFunc(ctx, kanbanID)
	}
	return nil, nil
}

// MockColumnRepository is a mock implementation of ColumnRepository
type MockColumnRepository struct {
	CreateFunc          func(ctx context.Context, column *domain.Column) error
	FindByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Column, error)
	FindByKanbanIDFunc  func(ctx context.Context, kanbanID uuid.UUID) ([]*domain.Column, error)
	UpdateFunc          func(ctx context.Context, column *domain.Column) error
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
	MaxPositionFunc     func(ctx context.Context, kanbanID uuid.UUID) (int, error)
	UpdatePositionsFunc func(ctx context.Context, positions map[uuid.UUID]int) error
}

func (m *MockColumnRepository) Create(ctx context.Context, column *domain.Column) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, column)
	}
	return nil
}

func (m *MockColumnRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Column, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockColumnRepository) FindByKanbanID(ctx context.Context, kanbanID uuid.UUID) ([]*domain.Column, error) {
	if m.FindByKanbanIDFunc != nil {
		return m.FindByKanbanIDFunc(ctx, kanbanID)
	}
	return nil, nil
}

func (m *MockColumnRepository) Update(ctx context.Context, column *domain.Column) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, column)
	}
	return nil
}

func (m *MockColumnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockColumnRepository) MaxPosition(ctx context.Context, kanbanID uuid.UUID) (int, error) {
	if m.MaxPositionFunc != nil {
		return m.MaxPositionFunc(ctx, kanbanID)
	}
	return -1, nil
}

func (m *MockColumnRepository) UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error {
	if m.UpdatePositionsFunc != nil {
		return m.UpdatePositionsFunc(ctx, positions)
	}
	return nil
}

// MockCardRepository is a mock implementation of CardRepository
type MockCardRepository struct {
	CreateFunc              func(ctx context.Context, card *domain.Card) error
	FindByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	FindByIDWithDetailsFunc func(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	FindByColumnIDFunc      func(ctx context.Context, columnID uuid.UUID) ([]*domain.Card, error)
	FindByIDsFunc           func(ctx context.Context, ids []uuid.UUID) ([]*domain.Card, error)
	UpdateFunc              func(ctx context.Context, card *domain.Card) error
	DeleteFunc              func(ctx context.Context, id uuid.UUID) error
	MaxPositionFunc         func(ctx context.Context, columnID uuid.UUID) (int, error)
	UpdatePlacementsFunc    func(ctx context.Context, placements []reorder.Placement) error
	AddAssigneeFunc         func(ctx context.Context, assignee *domain.CardAssignee) error
	RemoveAssigneeFunc      func(ctx context.Context, cardID, userID uuid.UUID) error
	FindAssigneeFunc        func(ctx context.Context, cardID, userID uuid.UUID) (*domain.CardAssignee, error)
	AttachLabelFunc         func(ctx context.Context, cardID, labelID uuid.UUID) error
	DetachLabelFunc         func(ctx context.Context, cardID, labelID uuid.UUID) error
	HasLabelFunc            func(ctx context.Context, cardID, labelID uuid.UUID) (bool, error)
}

func (m *MockCardRepository) Create(ctx context.Context, card *domain.Card) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, card)
	}
	return nil
}

func (m *MockCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockCardRepository) FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	if m.FindByIDWithDetailsFunc != nil {
		return m.FindByIDWithDetailsFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockCardRepository) FindByColumnID(ctx context.Context, columnID uuid.UUID) ([]*domain.Card, error) {
	if m.FindByColumnIDFunc != nil {
		return m.FindByColumnIDFunc(ctx, columnID)
	}
	return nil, nil
}

func (m *MockCardRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Card, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockCardRepository) Update(ctx context.Context, card *domain.Card) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, card)
	}
	return nil
}

func (m *MockCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockCardRepository) MaxPosition(ctx context.Context, columnID uuid.UUID) (int, error) {
	if m.MaxPositionFunc != nil {
		return m.MaxPositionFunc(ctx, columnID)
	}
	return -1, nil
}

func (m *MockCardRepository) UpdatePlacements(ctx context.Context, placements []reorder.Placement) error {
	if m.UpdatePlacementsFunc != nil {
		return m.UpdatePlacementsFunc(ctx, placements)
	}
	return nil
}

func (m *MockCardRepository) AddAssignee(ctx context.Context, assignee *domain.CardAssignee) error {
	if m.AddAssigneeFunc != nil {
		return m.AddAssigneeFunc(ctx, assignee)
	}
	return nil
}

func (m *MockCardRepository) RemoveAssignee(ctx context.Context, cardID, userID uuid.UUID) error {
	if m.RemoveAssigneeFunc != nil {
		return m.RemoveAssigneeFunc(ctx, cardID, userID)
	}
	return nil
}

func (m *MockCardRepository) FindAssignee(ctx context.Context, cardID, userID uuid.UUID) (*domain.CardAssignee, error) {
	if m.FindAssigneeFunc != nil {
		return m.FindAssigneeFunc(ctx, cardID, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockCardRepository) AttachLabel(ctx context.Context, cardID, labelID uuid.UUID) error {
	if m.AttachLabelFunc != nil {
		return m.AttachLabelFunc(ctx, cardID, labelID)
	}
	return nil
}

func (m *MockCardRepository) DetachLabel(ctx context.Context, cardID, labelID uuid.UUID) error {
	if m.DetachLabelFunc != nil {
		return m.DetachLabelFunc(ctx, cardID, labelID)
	}
	return nil
}

func (m *MockCardRepository) HasLabel(ctx context.Context, cardID, labelID uuid.UUID) (bool, error) {
	if m.HasLabelFunc != nil {
		return m.HasLabelFunc(ctx, cardID, labelID)
	}
	return false, nil
}

// MockLabelRepository is a mock implementation of LabelRepository
type MockLabelRepository struct {
	CreateFunc              func(ctx context.Context, label *domain.Label) error
	FindByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Label, error)
	FindByKanbanIDFunc      func(ctx context.Context, kanbanID uuid.UUID) ([]*domain.Label, error)
	FindByKanbanAndNameFunc func(ctx context.Context, kanbanID uuid.UUID, name string) (*domain.Label, error)
	UpdateFunc              func(ctx context.Context, label *domain.Label) error
	DeleteFunc              func(ctx context.Context, id uuid.UUID) error
}

func (m *MockLabelRepository) Create(ctx context.Context, label *domain.Label) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, label)
	}
	return nil
}

func (m *MockLabelRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Label, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockLabelRepository) FindByKanbanID(ctx context.Context, kanbanID uuid.UUID) ([]*domain.Label, error) {
	if m.FindByKanbanIDFunc != nil {
		return m.FindByKanbanIDFunc(ctx, kanbanID)
	}
	return nil, nil
}

func (m *MockLabelRepository) FindByKanbanAndName(ctx context.Context, kanbanID uuid.UUID, name string) (*domain.Label, error) {
	if m.FindByKanbanAndNameFunc != nil {
		return m.FindByKanbanAndNameFunc(ctx, kanbanID, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockLabelRepository) Update(ctx context.Context, label *domain.Label) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, label)
	}
	return nil
}

func (m *MockLabelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockChecklistRepository is a mock implementation of ChecklistRepository
type MockChecklistRepository struct {
	CreateFunc       func(ctx context.Context, item *domain.ChecklistItem) error
	FindByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.ChecklistItem, error)
	FindByCardIDFunc func(ctx context.Context, cardID uuid.UUID) ([]*domain.ChecklistItem, error)
	UpdateFunc       func(ctx context.Context, item *domain.ChecklistItem) error
	DeleteFunc       func(ctx context.Context, id uuid.UUID) error
	MaxPositionFunc  func(ctx context.Context, cardID uuid.UUID) (int, error)
}

func (m *MockChecklistRepository) Create(ctx context.Context, item *domain.ChecklistItem) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	return nil
}

func (m *MockChecklistRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ChecklistItem, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockChecklistRepository) FindByCardID(ctx context.Context, cardID uuid.UUID) ([]*domain.ChecklistItem, error) {
	if m.FindByCardIDFunc != nil {
		return m.FindByCardIDFunc(ctx, cardID)
	}
	return nil, nil
}

func (m *MockChecklistRepository) Update(ctx context.Context, item *domain.ChecklistItem) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, item)
	}
	return nil
}

func (m *MockChecklistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockChecklistRepository) MaxPosition(ctx context.Context, cardID uuid.UUID) (int, error) {
	if m.MaxPositionFunc != nil {
		return m.MaxPositionFunc(ctx, cardID)
	}
	return -1, nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	CreateFunc       func(ctx context.Context, comment *domain.Comment) error
	FindByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindByCardIDFunc func(ctx context.Context, cardID uuid.UUID) ([]*domain.Comment, error)
	UpdateFunc       func(ctx context.Context, comment *domain.Comment) error
	DeleteFunc       func(ctx context.Context, id uuid.UUID) error
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, comment)
	}
	return nil
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockCommentRepository) FindByCardID(ctx context.Context, cardID uuid.UUID) ([]*domain.Comment, error) {
	if m.FindByCardIDFunc != nil {
		return m.FindByCardIDFunc(ctx, cardID)
	}
	return nil, nil
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, comment)
	}
	return nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockAttachmentRepository is a mock implementation of AttachmentRepository
type MockAttachmentRepository struct {
	CreateFunc                     func(ctx context.Context, attachment *domain.Attachment) error
	FindByIDFunc                   func(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	FindByEntityIDFunc             func(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]*domain.Attachment, error)
	FindByIDsFunc                  func(ctx context.Context, ids []uuid.UUID) ([]*domain.Attachment, error)
	DeleteFunc                     func(ctx context.Context, id uuid.UUID) error
	FindExpiredTempAttachmentsFunc func(ctx context.Context) ([]*domain.Attachment, error)
	ConfirmAttachmentsFunc         func(ctx context.Context, attachmentIDs []uuid.UUID, entityID uuid.UUID) error
	DeleteBatchFunc                func(ctx context.Context, attachmentIDs []uuid.UUID) error
	FindFileKeysByKanbanFunc       func(ctx context.Context, kanbanID uuid.UUID) ([]string, error)
}

func (m *MockAttachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, attachment)
	}
	return nil
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockAttachmentRepository) FindByEntityID(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]*domain.Attachment, error) {
	if m.FindByEntityIDFunc != nil {
		return m.FindByEntityIDFunc(ctx, entityType, entityID)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Attachment, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockAttachmentRepository) FindExpiredTempAttachments(ctx context.Context) ([]*domain.Attachment, error) {
	if m.FindExpiredTempAttachmentsFunc != nil {
		return m.FindExpiredTempAttachmentsFunc(ctx)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) ConfirmAttachments(ctx context.Context, attachmentIDs []uuid.UUID, entityID uuid.UUID) error {
	if m.ConfirmAttachmentsFunc != nil {
		return m.ConfirmAttachmentsFunc(ctx, attachmentIDs, entityID)
	}
	return nil
}

func (m *MockAttachmentRepository) DeleteBatch(ctx context.Context, attachmentIDs []uuid.UUID) error {
	if m.DeleteBatchFunc != nil {
		return m.DeleteBatchFunc(ctx, attachmentIDs)
	}
	return nil
}

func (m *MockAttachmentRepository) FindFileKeysByKanban(ctx context.Context, kanbanID uuid.UUID) ([]string, error) {
	if m.FindFileKeysByKanbanFunc != nil {
		return m.FindFileKeysByKanbanFunc(ctx, kanbanID)
	}
	return nil, nil
}

// MockInvitationRepository is a mock implementation of InvitationRepository
type MockInvitationRepository struct {
	CreateFunc                     func(ctx context.Context, invitation *domain.Invitation) error
	FindByTokenFunc                func(ctx context.Context, token string) (*domain.Invitation, error)
	FindUnusedByEmailAndKanbanFunc func(ctx context.Context, email string, kanbanID uuid.UUID) (*domain.Invitation, error)
	FindPendingByKanbanFunc        func(ctx context.Context, kanbanID uuid.UUID) ([]*domain.Invitation, error)
	MarkUsedFunc                   func(ctx context.Context, id uuid.UUID) error
	DeleteUsedBeforeFunc           func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *MockInvitationRepository) Create(ctx context.Context, invitation *domain.Invitation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, invitation)
	}
	return nil
}

func (m *MockInvitationRepository) FindByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockInvitationRepository) FindUnusedByEmailAndKanban(ctx context.Context, email string, kanbanID uuid.UUID) (*domain.Invitation, error) {
	if m.FindUnusedByEmailAndKanbanFunc != nil {
		return m.FindUnusedByEmailAndKanbanFunc(ctx, email, kanbanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockInvitationRepository) FindPendingByKanban(ctx context.Context, kanbanID uuid.UUID) ([]*domain.Invitation, error) {
	if m.FindPendingByKanbanFunc != nil {
		return m.FindPendingByKanbanFunc(ctx, kanbanID)
	}
	return nil, nil
}

func (m *MockInvitationRepository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	if m.MarkUsedFunc != nil {
		return m.MarkUsedFunc(ctx, id)
	}
	return nil
}

func (m *MockInvitationRepository) DeleteUsedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteUsedBeforeFunc != nil {
		return m.DeleteUsedBeforeFunc(ctx, cutoff)
	}
	return 0, nil
}

// MockS3Client is a mock implementation of S3ClientInterface
type MockS3Client struct {
	GenerateFileKeyFunc         func(entityType string, fileName string) string
	UploadFileFunc              func(ctx context.Context, key string, body io.Reader, contentType string) error
	DeleteFileFunc              func(ctx context.Context, key string) error
	GeneratePresignedGetURLFunc func(ctx context.Context, key string, expiry time.Duration) (string, error)
}

func (m *MockS3Client) GenerateFileKey(entityType string, fileName string) string {
	if m.GenerateFileKeyFunc != nil {
		return m.GenerateFileKeyFunc(entityType, fileName)
	}
	return "kanban/test/" + fileName
}

func (m *MockS3Client) UploadFile(ctx context.Context, key string, body io.Reader, contentType string) error {
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, key, body, contentType)
	}
	return nil
}

func (m *MockS3Client) DeleteFile(ctx context.Context, key string) error {
	if m.DeleteFileFunc != nil {
		return m.DeleteFileFunc(ctx, key)
	}
	return nil
}

func (m *MockS3Client) GeneratePresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if m.GeneratePresignedGetURLFunc != nil {
		return m.GeneratePresignedGetURLFunc(ctx, key, expiry)
	}
	return "https://example.com/" + key, nil
}
