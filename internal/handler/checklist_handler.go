package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

type ChecklistHandler struct {
	checklistService service.ChecklistService
}

func NewChecklistHandler(checklistService service.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{
		checklistService: checklistService,
	}
}

// CreateItem godoc
// @Summary      Add a checklist item to a card
// @Tags         checklist
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateChecklistItemRequest true "Item fields"
// @Success      201 {object} response.SuccessResponse{data=dto.ChecklistItemResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /checklist-items [post]
func (h *ChecklistHandler) CreateItem(c *gin.Context) {
	var req dto.CreateChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	item, err := h.checklistService.CreateItem(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, item)
}

// UpdateItem godoc
// @Summary      Update a checklist item
// @Tags         checklist
// @Accept       json
// @Produce      json
// @Param        itemId path string true "Checklist item ID (UUID)"
// @Param        request body dto.UpdateChecklistItemRequest true "Fields to update"
// @Success      200 {object} response.SuccessResponse{data=dto.ChecklistItemResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /checklist-items/{itemId} [put]
func (h *ChecklistHandler) UpdateItem(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "itemId")
	if !ok {
		return
	}

	var req dto.UpdateChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	item, err := h.checklistService.UpdateItem(c.Request.Context(), itemID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, item)
}

// ToggleItem godoc
// @Summary      Toggle a checklist item's done flag
// @Tags         checklist
// @Produce      json
// @Param        itemId path string true "Checklist item ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ChecklistItemResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /checklist-items/{itemId}/toggle [put]
func (h *ChecklistHandler) ToggleItem(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "itemId")
	if !ok {
		return
	}

	item, err := h.checklistService.ToggleItem(c.Request.Context(), itemID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, item)
}

// DeleteItem godoc
// @Summary      Delete a checklist item
// @Tags         checklist
// @Produce      json
// @Param        itemId path string true "Checklist item ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /checklist-items/{itemId} [delete]
func (h *ChecklistHandler) DeleteItem(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "itemId")
	if !ok {
		return
	}

	if err := h.checklistService.DeleteItem(c.Request.Context(), itemID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Checklist item deleted"})
}
