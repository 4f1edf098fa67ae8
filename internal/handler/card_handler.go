package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

type CardHandler struct {
	cardService service.CardService
}

func NewCardHandler(cardService service.CardService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
	}
}

// CreateCard godoc
// @Summary      Create a card
// @Description  The card is appended after the column's last card. TEMP attachments listed in attachmentIds are confirmed.
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCardRequest true "Card fields"
// @Success      201 {object} response.SuccessResponse{data=dto.CardResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse
// @Router       /cards [post]
func (h *CardHandler) CreateCard(c *gin.Context) {
	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	card, err := h.cardService.CreateCard(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, card)
}

// GetCard godoc
// @Summary      Get a card with checklist, comments and attachments
// @Tags         cards
// @Produce      json
// @Param        cardId path string true "Card ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.CardDetailResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /cards/{cardId} [get]
func (h *CardHandler) GetCard(c *gin.Context) {
	cardID, ok := parseUUIDParam(c, "cardId")
	if !ok {
		return
	}

	card, err := h.cardService.GetCard(c.Request.Context(), cardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, card)
}

// UpdateCard godoc
// @Summary      Update a card
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        cardId path string true "Card ID (UUID)"
// @Param        request body dto.UpdateCardRequest true "Fields to update"
// @Success      200 {object} response.SuccessResponse{data=dto.CardResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /cards/{cardId} [put]
func (h *CardHandler) UpdateCard(c *gin.Context) {
	cardID, ok := parseUUIDParam(c, "cardId")
	if !ok {
		return
	}

	var req dto.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	card, err := h.cardService.UpdateCard(c.Request.Context(), cardID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, card)
}

// DeleteCard godoc
// @Summary      Delete a card
// @Tags         cards
// @Produce      json
// @Param        cardId path string true "Card ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /cards/{cardId} [delete]
func (h *CardHandler) DeleteCard(c *gin.Context) {
	cardID, ok := parseUUIDParam(c, "cardId")
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(c.Request.Context(), cardID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Card deleted"})
}

// MoveCard godoc
// @Summary      Move a card to a column and index
// @Description  Both touched columns are renumbered densely and persisted in one transaction.
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        cardId path string true "Card ID (UUID)"
// @Param        request body dto.MoveCardRequest true "Destination column and index"
// @Success      200 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse "Cross-kanban move or invalid position"
// @Failure      404 {object} response.ErrorResponse
// @Router       /cards/{cardId}/move [put]
func (h *CardHandler) MoveCard(c *gin.Context) {
	cardID, ok := parseUUIDParam(c, "cardId")
	if !ok {
		return
	}

	var req dto.MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	if err := h.cardService.MoveCard(c.Request.Context(), cardID, &req); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Card moved"})
}

// ReorderCards godoc
// @Summary      Persist a card reorder batch
// @Description  Every referenced card and column must belong to the kanban, and the positions within each touched column must form a dense zero-based permutation covering all of that column's cards.
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        request body dto.ReorderCardsRequest true "Reorder batch"
// @Success      200 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse "Invalid batch"
// @Failure      403 {object} response.ErrorResponse
// @Router       /cards/reorder [put]
func (h *CardHandler) ReorderCards(c *gin.Context) {
	var req dto.ReorderCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	if err := h.cardService.ReorderCards(c.Request.Context(), &req); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Cards reordered"})
}

// AddAssignee godoc
// @Summary      Assign a member to a card
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        cardId path string true "Card ID (UUID)"
// @Param        request body dto.AddAssigneeRequest true "User to assign"
// @Success      201 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse "User is not a kanban member"
// @Failure      409 {object} response.ErrorResponse "Already assigned"
// @Router       /cards/{cardId}/assignees [post]
func (h *CardHandler) AddAssignee(c *gin.Context) {
	cardID, ok := parseUUIDParam(c, "cardId")
	if !ok {
		return
	}

	var req dto.AddAssigneeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	if err := h.cardService.AddAssignee(c.Request.Context(), cardID, &req); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, gin.H{"message": "Assignee added"})
}

// RemoveAssignee godoc
// @Summary      Remove a card assignment
// @Tags         cards
// @Produce      json
// @Param        cardId path string true "Card ID (UUID)"
// @Param        userId path string true "User ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /cards/{cardId}/assignees/{userId} [delete]
func (h *CardHandler) RemoveAssignee(c *gin.Context) {
	cardID, ok := parseUUIDParam(c, "cardId")
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(c, "userId")
	if !ok {
		return
	}

	if err := h.cardService.RemoveAssignee(c.Request.Context(), cardID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Assignee removed"})
}

// AttachLabel godoc
// @Summary      Attach a label to a card
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        cardId path string true "Card ID (UUID)"
// @Param        request body dto.AttachLabelRequest true "Label to attach"
// @Success      201 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse "Label belongs to another kanban"
// @Failure      409 {object} response.ErrorResponse "Already attached"
// @Router       /cards/{cardId}/labels [post]
func (h *CardHandler) AttachLabel(c *gin.Context) {
	cardID, ok := parseUUIDParam(c, "cardId")
	if !ok {
		return
	}

	var req dto.AttachLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	if err := h.cardService.AttachLabel(c.Request.Context(), cardID, &req); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, gin.H{"message": "Label attached"})
}

// DetachLabel godoc
// @Summary      Detach a label from a card
// @Tags         cards
// @Produce      json
// @Param        cardId path string true "Card ID (UUID)"
// @Param        labelId path string true "Label ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /cards/{cardId}/labels/{labelId} [delete]
func (h *CardHandler) DetachLabel(c *gin.Context) {
	cardID, ok := parseUUIDParam(c, "cardId")
	if !ok {
		return
	}
	labelID, ok := parseUUIDParam(c, "labelId")
	if !ok {
		return
	}

	if err := h.cardService.DetachLabel(c.Request.Context(), cardID, labelID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Label detached"})
}
