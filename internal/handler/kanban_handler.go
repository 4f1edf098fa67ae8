package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

type KanbanHandler struct {
	kanbanService     service.KanbanService
	invitationService service.InvitationService
}

func NewKanbanHandler(kanbanService service.KanbanService, invitationService service.InvitationService) *KanbanHandler {
	return &KanbanHandler{
		kanbanService:     kanbanService,
		invitationService: invitationService,
	}
}

// CreateKanban godoc
// @Summary      Create a kanban
// @Tags         kanbans
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateKanbanRequest true "Kanban fields"
// @Success      201 {object} response.SuccessResponse{data=dto.KanbanResponse}
// @Failure      400 {object} response.ErrorResponse
// @Router       /kanbans [post]
func (h *KanbanHandler) CreateKanban(c *gin.Context) {
	var req dto.CreateKanbanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	kanban, err := h.kanbanService.CreateKanban(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, kanban)
}

// GetKanban godoc
// @Summary      Get a kanban with its full board state
// @Description  Columns and cards are returned in position order with nested children.
// @Tags         kanbans
// @Produce      json
// @Param        kanbanId path string true "Kanban ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.KanbanDetailResponse}
// @Failure      403 {object} response.ErrorResponse "Not a member"
// @Failure      404 {object} response.ErrorResponse
// @Router       /kanbans/{kanbanId} [get]
func (h *KanbanHandler) GetKanban(c *gin.Context) {
	kanbanID, ok := parseUUIDParam(c, "kanbanId")
	if !ok {
		return
	}

	kanban, err := h.kanbanService.GetKanban(c.Request.Context(), kanbanID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, kanban)
}

// ListKanbans godoc
// @Summary      List kanbans the caller owns or belongs to
// @Tags         kanbans
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.KanbanResponse}
// @Router       /kanbans [get]
func (h *KanbanHandler) ListKanbans(c *gin.Context) {
	kanbans, err := h.kanbanService.ListKanbans(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, kanbans)
}

// UpdateKanban godoc
// @Summary      Update a kanban
// @Tags         kanbans
// @Accept       json
// @Produce      json
// @Param        kanbanId path string true "Kanban ID (UUID)"
// @Param        request body dto.UpdateKanbanRequest true "Fields to update"
// @Success      200 {object} response.SuccessResponse{data=dto.KanbanResponse}
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /kanbans/{kanbanId} [put]
func (h *KanbanHandler) UpdateKanban(c *gin.Context) {
	kanbanID, ok := parseUUIDParam(c, "kanbanId")
	if !ok {
		return
	}

	var req dto.UpdateKanbanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	kanban, err := h.kanbanService.UpdateKanban(c.Request.Context(), kanbanID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, kanban)
}

// DeleteKanban godoc
// @Summary      Delete a kanban and everything under it
// @Tags         kanbans
// @Produce      json
// @Param        kanbanId path string true "Kanban ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      403 {object} response.ErrorResponse "Not the owner"
// @Failure      404 {object} response.ErrorResponse
// @Router       /kanbans/{kanbanId} [delete]
func (h *KanbanHandler) DeleteKanban(c *gin.Context) {
	kanbanID, ok := parseUUIDParam(c, "kanbanId")
	if !ok {
		return
	}

	if err := h.kanbanService.DeleteKanban(c.Request.Context(), kanbanID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Kanban deleted"})
}

// ListMembers godoc
// @Summary      List a kanban's members
// @Tags         kanbans
// @Produce      json
// @Param        kanbanId path string true "Kanban ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.MemberResponse}
// @Failure      403 {object} response.ErrorResponse
// @Router       /kanbans/{kanbanId}/members [get]
func (h *KanbanHandler) ListMembers(c *gin.Context) {
	kanbanID, ok := parseUUIDParam(c, "kanbanId")
	if !ok {
		return
	}

	members, err := h.kanbanService.ListMembers(c.Request.Context(), kanbanID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, members)
}

// RemoveMember godoc
// @Summary      Remove a member from a kanban
// @Description  Owner only. The owner membership itself cannot be removed.
// @Tags         kanbans
// @Produce      json
// @Param        kanbanId path string true "Kanban ID (UUID)"
// @Param        userId path string true "User ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse "Attempt to remove the owner"
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /kanbans/{kanbanId}/members/{userId} [delete]
func (h *KanbanHandler) RemoveMember(c *gin.Context) {
	kanbanID, ok := parseUUIDParam(c, "kanbanId")
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(c, "userId")
	if !ok {
		return
	}

	if err := h.kanbanService.RemoveMember(c.Request.Context(), kanbanID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Member removed"})
}

// ListInvitations godoc
// @Summary      List a kanban's pending invitations
// @Description  Owner only.
// @Tags         kanbans
// @Produce      json
// @Param        kanbanId path string true "Kanban ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.InvitationResponse}
// @Failure      403 {object} response.ErrorResponse
// @Router       /kanbans/{kanbanId}/invitations [get]
func (h *KanbanHandler) ListInvitations(c *gin.Context) {
	kanbanID, ok := parseUUIDParam(c, "kanbanId")
	if !ok {
		return
	}

	invitations, err := h.invitationService.ListPending(c.Request.Context(), kanbanID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, invitations)
}
