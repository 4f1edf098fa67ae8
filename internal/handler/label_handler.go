package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

type LabelHandler struct {
	labelService service.LabelService
}

func NewLabelHandler(labelService service.LabelService) *LabelHandler {
	return &LabelHandler{
		labelService: labelService,
	}
}

// CreateLabel godoc
// @Summary      Create a label
// @Description  Label names are unique within a kanban.
// @Tags         labels
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateLabelRequest true "Label fields"
// @Success      201 {object} response.SuccessResponse{data=dto.LabelResponse}
// @Failure      409 {object} response.ErrorResponse "Duplicate name"
// @Router       /labels [post]
func (h *LabelHandler) CreateLabel(c *gin.Context) {
	var req dto.CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	label, err := h.labelService.CreateLabel(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, label)
}

// ListLabels godoc
// @Summary      List a kanban's labels
// @Tags         labels
// @Produce      json
// @Param        kanbanId path string true "Kanban ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.LabelResponse}
// @Router       /labels/kanban/{kanbanId} [get]
func (h *LabelHandler) ListLabels(c *gin.Context) {
	kanbanID, ok := parseUUIDParam(c, "kanbanId")
	if !ok {
		return
	}

	labels, err := h.labelService.ListLabels(c.Request.Context(), kanbanID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, labels)
}

// UpdateLabel godoc
// @Summary      Update a label
// @Tags         labels
// @Accept       json
// @Produce      json
// @Param        labelId path string true "Label ID (UUID)"
// @Param        request body dto.UpdateLabelRequest true "Fields to update"
// @Success      200 {object} response.SuccessResponse{data=dto.LabelResponse}
// @Failure      404 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse "Duplicate name"
// @Router       /labels/{labelId} [put]
func (h *LabelHandler) UpdateLabel(c *gin.Context) {
	labelID, ok := parseUUIDParam(c, "labelId")
	if !ok {
		return
	}

	var req dto.UpdateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	label, err := h.labelService.UpdateLabel(c.Request.Context(), labelID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, label)
}

// DeleteLabel godoc
// @Summary      Delete a label and its card links
// @Tags         labels
// @Produce      json
// @Param        labelId path string true "Label ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /labels/{labelId} [delete]
func (h *LabelHandler) DeleteLabel(c *gin.Context) {
	labelID, ok := parseUUIDParam(c, "labelId")
	if !ok {
		return
	}

	if err := h.labelService.DeleteLabel(c.Request.Context(), labelID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Label deleted"})
}
