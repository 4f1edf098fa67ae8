package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/events"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/reorder"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// CardService defines the interface for card business logic
type CardService interface {
	CreateCard(ctx context.Context, req *dto.CreateCardRequest) (*dto.CardResponse, error)
	GetCard(ctx context.Context, cardID uuid.UUID) (*dto.CardDetailResponse, error)
	UpdateCard(ctx context.Context, cardID uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error)
	DeleteCard(ctx context.Context, cardID uuid.UUID) error
	MoveCard(ctx context.Context, cardID uuid.UUID, req *dto.MoveCardRequest) error
	ReorderCards(ctx context.Context, req *dto.ReorderCardsRequest) error
	AddAssignee(ctx context.Context, cardID uuid.UUID, req *dto.AddAssigneeRequest) error
	RemoveAssignee(ctx context.Context, cardID, userID uuid.UUID) error
	AttachLabel(ctx context.Context, cardID uuid.UUID, req *dto.AttachLabelRequest) error
	DetachLabel(ctx context.Context, cardID, labelID uuid.UUID) error
}

// cardServiceImpl is the implementation of CardService
type cardServiceImpl struct {
	accessChecker
	cardRepo       repository.CardRepository
	columnRepo     repository.ColumnRepository
	labelRepo      repository.LabelRepository
	attachmentRepo repository.AttachmentRepository
	publisher      events.Publisher
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewCardService creates a new instance of CardService
func NewCardService(
	cardRepo repository.CardRepository,
	columnRepo repository.ColumnRepository,
	kanbanRepo repository.KanbanRepository,
	labelRepo repository.LabelRepository,
	attachmentRepo repository.AttachmentRepository,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) CardService {
	return &cardServiceImpl{
		accessChecker:  accessChecker{kanbanRepo: kanbanRepo},
		cardRepo:       cardRepo,
		columnRepo:     columnRepo,
		labelRepo:      labelRepo,
		attachmentRepo: attachmentRepo,
		publisher:      publisher,
		metrics:        m,
		logger:         logger,
	}
}

// CreateCard creates a card at the end of its column
func (s *cardServiceImpl) CreateCard(ctx context.Context, req *dto.CreateCardRequest) (*dto.CardResponse, error) {
	authorID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	column, err := s.loadColumn(ctx, req.ColumnID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireMember(ctx, column.KanbanID, authorID); err != nil {
		return nil, err
	}

	maxPos, err := s.cardRepo.MaxPosition(ctx, req.ColumnID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to compute card position", err.Error())
	}

	card := &domain.Card{
		ColumnID:    req.ColumnID,
		AuthorID:    authorID,
		Title:       req.Title,
		Description: req.Description,
		Position:    maxPos + 1,
		DueDate:     req.DueDate,
	}
	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create card", err.Error())
	}

	if len(req.AttachmentIDs) > 0 {
		if err := s.confirmAttachments(ctx, req.AttachmentIDs, domain.EntityTypeCard, card.ID); err != nil {
			return nil, err
		}
	}

	s.metrics.IncrementCardCreated()
	s.publisher.Publish(ctx, events.Event{
		Type:      events.EventCardCreated,
		KanbanID:  column.KanbanID,
		EntityID:  card.ID,
		ActorID:   authorID,
		Timestamp: time.Now(),
	})

	resp := toCardResponse(card)
	return &resp, nil
}

// GetCard returns a card with its checklist, comments and attachments
func (s *cardServiceImpl) GetCard(ctx context.Context, cardID uuid.UUID) (*dto.CardDetailResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	card, err := s.cardRepo.FindByIDWithDetails(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Card not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load card", err.Error())
	}

	column, err := s.loadColumn(ctx, card.ColumnID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireMember(ctx, column.KanbanID, userID); err != nil {
		return nil, err
	}

	// Attachments use a polymorphic relation and are loaded explicitly
	cardAttachments, err := s.attachmentRepo.FindByEntityID(ctx, domain.EntityTypeCard, cardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load attachments", err.Error())
	}

	detail := &dto.CardDetailResponse{
		CardResponse:        toCardResponse(card),
		ChecklistItems:      make([]dto.ChecklistItemResponse, 0, len(card.ChecklistItems)),
		ChecklistCompletion: checklistCompletion(card.ChecklistItems),
		Comments:            make([]dto.CommentResponse, 0, len(card.Comments)),
		Attachments:         make([]dto.AttachmentResponse, 0, len(cardAttachments)),
	}
	for i := range card.ChecklistItems {
		detail.ChecklistItems = append(detail.ChecklistItems, toChecklistItemResponse(&card.ChecklistItems[i]))
	}
	for i := range card.Comments {
		comment := &card.Comments[i]
		commentAttachments, err := s.attachmentRepo.FindByEntityID(ctx, domain.EntityTypeComment, comment.ID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load comment attachments", err.Error())
		}
		commentResp := toCommentResponse(comment)
		for _, attachment := range commentAttachments {
			commentResp.Attachments = append(commentResp.Attachments, toAttachmentResponse(attachment))
		}
		detail.Comments = append(detail.Comments, commentResp)
	}
	for _, attachment := range cardAttachments {
		detail.Attachments = append(detail.Attachments, toAttachmentResponse(attachment))
	}
	return detail, nil
}

// UpdateCard applies a partial update to a card
func (s *cardServiceImpl) UpdateCard(ctx context.Context, cardID uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	card, column, err := s.loadCardWithColumn(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireMember(ctx, column.KanbanID, userID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		card.Title = *req.Title
	}
	if req.Description != nil {
		card.Description = *req.Description
	}
	if req.DueDate != nil {
		card.DueDate = req.DueDate
	}
	if req.ClearDueDate {
		card.DueDate = nil
	}

	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update card", err.Error())
	}

	if len(req.AttachmentIDs) > 0 {
		if err := s.confirmAttachments(ctx, req.AttachmentIDs, domain.EntityTypeCard, card.ID); err != nil {
			return nil, err
		}
	}

	s.publisher.Publish(ctx, events.Event{
		Type:      events.EventCardUpdated,
		KanbanID:  column.KanbanID,
		EntityID:  card.ID,
		ActorID:   userID,
		Timestamp: time.Now(),
	})

	resp := toCardResponse(card)
	return &resp, nil
}

// DeleteCard removes a card and everything under it. Sibling positions are
// left untouched; only relative order is guaranteed after a delete.
func (s *cardServiceImpl) DeleteCard(ctx context.Context, cardID uuid.UUID) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	_, column, err := s.loadCardWithColumn(ctx, cardID)
	if err != nil {
		return err
	}
	if _, err := s.requireMember(ctx, column.KanbanID, userID); err != nil {
		return err
	}

	if err := s.cardRepo.Delete(ctx, cardID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete card", err.Error())
	}

	s.publisher.Publish(ctx, events.Event{
		Type:      events.EventCardDeleted,
		KanbanID:  column.KanbanID,
		EntityID:  cardID,
		ActorID:   userID,
		Timestamp: time.Now(),
	})
	return nil
}

// MoveCard moves a single card to a column and index. Both touched columns
// are renumbered densely and persisted in one transaction.
func (s *cardServiceImpl) MoveCard(ctx context.Context, cardID uuid.UUID, req *dto.MoveCardRequest) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	card, srcColumn, err := s.loadCardWithColumn(ctx, cardID)
	if err != nil {
		return err
	}
	if _, err := s.requireMember(ctx, srcColumn.KanbanID, userID); err != nil {
		return err
	}

	dstColumn, err := s.loadColumn(ctx, req.ColumnID)
	if err != nil {
		return err
	}
	if dstColumn.KanbanID != srcColumn.KanbanID {
		return response.NewAppError(response.ErrCodeValidation, "Destination column belongs to a different kanban", "")
	}

	srcIDs, err := s.orderedCardIDs(ctx, srcColumn.ID)
	if err != nil {
		return err
	}
	fromIdx := indexOf(srcIDs, cardID)
	if fromIdx < 0 {
		return response.NewAppError(response.ErrCodeInternal, "Card missing from its column ordering", "")
	}

	var placements []reorder.Placement
	if srcColumn.ID == dstColumn.ID {
		toIdx := req.Position
		if toIdx >= len(srcIDs) {
			toIdx = len(srcIDs) - 1
		}
		newOrder, err := reorder.Move(srcIDs, fromIdx, toIdx)
		if err != nil {
			return response.NewAppError(response.ErrCodeValidation, "Invalid move position", err.Error())
		}
		placements = reorder.Renumber(srcColumn.ID, newOrder)
	} else {
		dstIDs, err := s.orderedCardIDs(ctx, dstColumn.ID)
		if err != nil {
			return err
		}
		toIdx := req.Position
		if toIdx > len(dstIDs) {
			toIdx = len(dstIDs)
		}
		newSrc, newDst, err := reorder.MoveAcross(srcIDs, dstIDs, fromIdx, toIdx)
		if err != nil {
			return response.NewAppError(response.ErrCodeValidation, "Invalid move position", err.Error())
		}
		placements = append(reorder.Renumber(srcColumn.ID, newSrc), reorder.Renumber(dstColumn.ID, newDst)...)
	}

	if err := s.cardRepo.UpdatePlacements(ctx, placements); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to persist card move", err.Error())
	}

	s.metrics.IncrementCardMoved()
	s.publisher.Publish(ctx, events.Event{
		Type:     events.EventCardMoved,
		KanbanID: srcColumn.KanbanID,
		EntityID: card.ID,
		ActorID:  userID,
		Payload: map[string]interface{}{
			"columnId": dstColumn.ID,
			"position": req.Position,
		},
		Timestamp: time.Now(),
	})
	return nil
}

// ReorderCards persists a reorder batch. Every referenced card and column
// must belong to the kanban, and within each touched column the positions
// must form a dense zero-based permutation covering all of that column's
// cards. The whole batch is written in one transaction.
func (s *cardServiceImpl) ReorderCards(ctx context.Context, req *dto.ReorderCardsRequest) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}
	if _, err := s.requireMember(ctx, req.KanbanID, userID); err != nil {
		return err
	}

	columns, err := s.columnRepo.FindByKanbanID(ctx, req.KanbanID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to load columns", err.Error())
	}
	columnSet := make(map[uuid.UUID]bool, len(columns))
	for _, column := range columns {
		columnSet[column.ID] = true
	}

	cardIDs := make([]uuid.UUID, 0, len(req.Entries))
	for _, entry := range req.Entries {
		if !columnSet[entry.ColumnID] {
			return response.NewAppError(response.ErrCodeValidation, "Column does not belong to the kanban", entry.ColumnID.String())
		}
		cardIDs = append(cardIDs, entry.CardID)
	}

	cards, err := s.cardRepo.FindByIDs(ctx, cardIDs)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to load cards", err.Error())
	}
	if len(cards) != len(cardIDs) {
		return response.NewAppError(response.ErrCodeValidation, "Batch references unknown or duplicate cards", "")
	}
	for _, card := range cards {
		if !columnSet[card.ColumnID] {
			return response.NewAppError(response.ErrCodeValidation, "Card does not belong to the kanban", card.ID.String())
		}
	}

	// Per touched column the batch must cover every card with positions 0..n-1
	entriesByColumn := make(map[uuid.UUID][]dto.ReorderEntry)
	for _, entry := range req.Entries {
		entriesByColumn[entry.ColumnID] = append(entriesByColumn[entry.ColumnID], entry)
	}

	placements := make([]reorder.Placement, 0, len(req.Entries))
	for columnID, entries := range entriesByColumn {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Position < entries[j].Position })
		for i, entry := range entries {
			if entry.Position != i {
				return response.NewAppError(response.ErrCodeValidation, "Positions within a column must be a dense zero-based sequence", "")
			}
		}

		columnCards, err := s.orderedCardIDs(ctx, columnID)
		if err != nil {
			return err
		}
		// Cards moving into this column are not yet in it, and cards moving
		// out are. Compare against the batch's final membership.
		finalMembers := make([]uuid.UUID, 0, len(entries))
		for _, entry := range entries {
			finalMembers = append(finalMembers, entry.CardID)
		}
		expected := make([]uuid.UUID, 0, len(columnCards))
		for _, id := range columnCards {
			if target, ok := targetColumn(req.Entries, id); !ok || target == columnID {
				expected = append(expected, id)
			}
		}
		for _, entry := range entries {
			if indexOf(expected, entry.CardID) < 0 {
				expected = append(expected, entry.CardID)
			}
		}
		if err := reorder.ValidatePermutation(expected, finalMembers); err != nil {
			return response.NewAppError(response.ErrCodeValidation, "Batch must cover every card of each touched column", err.Error())
		}

		for _, entry := range entries {
			placements = append(placements, reorder.Placement{ID: entry.CardID, ColumnID: columnID, Position: entry.Position})
		}
	}

	if err := s.cardRepo.UpdatePlacements(ctx, placements); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to persist reorder batch", err.Error())
	}

	s.metrics.IncrementCardMoved()
	s.publisher.Publish(ctx, events.Event{
		Type:      events.EventCardsReordered,
		KanbanID:  req.KanbanID,
		ActorID:   userID,
		Payload:   req.Entries,
		Timestamp: time.Now(),
	})
	return nil
}

// AddAssignee assigns a kanban member to a card
func (s *cardServiceImpl) AddAssignee(ctx context.Context, cardID uuid.UUID, req *dto.AddAssigneeRequest) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	_, column, err := s.loadCardWithColumn(ctx, cardID)
	if err != nil {
		return err
	}
	kanban, err := s.requireMember(ctx, column.KanbanID, userID)
	if err != nil {
		return err
	}

	// The assignee must also be a member of the kanban
	if kanban.OwnerID != req.UserID {
		if _, err := s.kanbanRepo.FindMember(ctx, column.KanbanID, req.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewAppError(response.ErrCodeValidation, "Assignee is not a member of this kanban", "")
			}
			return response.NewAppError(response.ErrCodeInternal, "Failed to verify assignee membership", err.Error())
		}
	}

	if _, err := s.cardRepo.FindAssignee(ctx, cardID, req.UserID); err == nil {
		return response.NewAppError(response.ErrCodeAlreadyExists, "User is already assigned to this card", "")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewAppError(response.ErrCodeInternal, "Failed to check assignee", err.Error())
	}

	assignee := &domain.CardAssignee{
		CardID:     cardID,
		UserID:     req.UserID,
		AssignedAt: time.Now(),
	}
	if err := s.cardRepo.AddAssignee(ctx, assignee); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to add assignee", err.Error())
	}
	return nil
}

// RemoveAssignee removes a card assignment
func (s *cardServiceImpl) RemoveAssignee(ctx context.Context, cardID, userID uuid.UUID) error {
	callerUserID, err := callerID(ctx)
	if err != nil {
		return err
	}

	_, column, err := s.loadCardWithColumn(ctx, cardID)
	if err != nil {
		return err
	}
	if _, err := s.requireMember(ctx, column.KanbanID, callerUserID); err != nil {
		return err
	}

	if _, err := s.cardRepo.FindAssignee(ctx, cardID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Assignee not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to check assignee", err.Error())
	}

	if err := s.cardRepo.RemoveAssignee(ctx, cardID, userID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to remove assignee", err.Error())
	}
	return nil
}

// AttachLabel attaches a label of the same kanban to a card
func (s *cardServiceImpl) AttachLabel(ctx context.Context, cardID uuid.UUID, req *dto.AttachLabelRequest) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	_, column, err := s.loadCardWithColumn(ctx, cardID)
	if err != nil {
		return err
	}
	if _, err := s.requireMember(ctx, column.KanbanID, userID); err != nil {
		return err
	}

	label, err := s.labelRepo.FindByID(ctx, req.LabelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Label not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load label", err.Error())
	}
	if label.KanbanID != column.KanbanID {
		return response.NewAppError(response.ErrCodeValidation, "Label belongs to a different kanban", "")
	}

	hasLabel, err := s.cardRepo.HasLabel(ctx, cardID, req.LabelID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to check label", err.Error())
	}
	if hasLabel {
		return response.NewAppError(response.ErrCodeAlreadyExists, "Label is already attached to this card", "")
	}

	if err := s.cardRepo.AttachLabel(ctx, cardID, req.LabelID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to attach label", err.Error())
	}
	return nil
}

// DetachLabel removes a label from a card
func (s *cardServiceImpl) DetachLabel(ctx context.Context, cardID, labelID uuid.UUID) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	_, column, err := s.loadCardWithColumn(ctx, cardID)
	if err != nil {
		return err
	}
	if _, err := s.requireMember(ctx, column.KanbanID, userID); err != nil {
		return err
	}

	hasLabel, err := s.cardRepo.HasLabel(ctx, cardID, labelID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to check label", err.Error())
	}
	if !hasLabel {
		return response.NewAppError(response.ErrCodeNotFound, "Label is not attached to this card", "")
	}

	if err := s.cardRepo.DetachLabel(ctx, cardID, labelID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to detach label", err.Error())
	}
	return nil
}

// confirmAttachments verifies TEMP attachments belong to the caller's upload
// set and binds them to the entity
func (s *cardServiceImpl) confirmAttachments(ctx context.Context, attachmentIDs []uuid.UUID, entityType domain.EntityType, entityID uuid.UUID) error {
	attachments, err := s.attachmentRepo.FindByIDs(ctx, attachmentIDs)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to load attachments", err.Error())
	}
	if len(attachments) != len(attachmentIDs) {
		return response.NewAppError(response.ErrCodeValidation, "One or more attachments were not found", "")
	}
	for _, attachment := range attachments {
		if attachment.EntityType != entityType {
			return response.NewAppError(response.ErrCodeValidation, "Attachment was uploaded for a different entity type", "")
		}
	}
	if err := s.attachmentRepo.ConfirmAttachments(ctx, attachmentIDs, entityID); err != nil {
		return response.NewAppError(response.ErrCodeValidation, "Failed to confirm attachments", err.Error())
	}
	return nil
}

// loadColumn fetches a column or returns a 404 error
func (s *cardServiceImpl) loadColumn(ctx context.Context, columnID uuid.UUID) (*domain.Column, error) {
	column, err := s.columnRepo.FindByID(ctx, columnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Column not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load column", err.Error())
	}
	return column, nil
}

// loadCardWithColumn fetches a card and its column or returns a 404 error
func (s *cardServiceImpl) loadCardWithColumn(ctx context.Context, cardID uuid.UUID) (*domain.Card, *domain.Column, error) {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, response.NewAppError(response.ErrCodeNotFound, "Card not found", "")
		}
		return nil, nil, response.NewAppError(response.ErrCodeInternal, "Failed to load card", err.Error())
	}
	column, err := s.loadColumn(ctx, card.ColumnID)
	if err != nil {
		return nil, nil, err
	}
	return card, column, nil
}

// orderedCardIDs returns a column's card ids in position order
func (s *cardServiceImpl) orderedCardIDs(ctx context.Context, columnID uuid.UUID) ([]uuid.UUID, error) {
	cards, err := s.cardRepo.FindByColumnID(ctx, columnID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load cards", err.Error())
	}
	ids := make([]uuid.UUID, 0, len(cards))
	for _, card := range cards {
		ids = append(ids, card.ID)
	}
	return ids, nil
}

// indexOf returns the index of id in ids, or -1
func indexOf(ids []uuid.UUID, id uuid.UUID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// targetColumn returns the column a card is placed into by the batch
func targetColumn(entries []dto.ReorderEntry, cardID uuid.UUID) (uuid.UUID, bool) {
	for _, entry := range entries {
		if entry.CardID == cardID {
			return entry.ColumnID, true
		}
	}
	return uuid.Nil, false
}
