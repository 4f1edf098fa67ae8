package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

type ColumnHandler struct {
	columnService service.ColumnService
}

func NewColumnHandler(columnService service.ColumnService) *ColumnHandler {
	return &ColumnHandler{
		columnService: columnService,
	}
}

// CreateColumn godoc
// @Summary      Create a column
// @Description  The new column is appended after the kanban's last column.
// @Tags         columns
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateColumnRequest true "Column fields"
// @Success      201 {object} response.SuccessResponse{data=dto.ColumnResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse
// @Router       /columns [post]
func (h *ColumnHandler) CreateColumn(c *gin.Context) {
	var req dto.CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	column, err := h.columnService.CreateColumn(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, column)
}

// GetColumn godoc
// @Summary      Get a column
// @Tags         columns
// @Produce      json
// @Param        columnId path string true "Column ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ColumnResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /columns/{columnId} [get]
func (h *ColumnHandler) GetColumn(c *gin.Context) {
	columnID, ok := parseUUIDParam(c, "columnId")
	if !ok {
		return
	}

	column, err := h.columnService.GetColumn(c.Request.Context(), columnID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, column)
}

// UpdateColumn godoc
// @Summary      Update a column
// @Tags         columns
// @Accept       json
// @Produce      json
// @Param        columnId path string true "Column ID (UUID)"
// @Param        request body dto.UpdateColumnRequest true "Fields to update"
// @Success      200 {object} response.SuccessResponse{data=dto.ColumnResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /columns/{columnId} [put]
func (h *ColumnHandler) UpdateColumn(c *gin.Context) {
	columnID, ok := parseUUIDParam(c, "columnId")
	if !ok {
		return
	}

	var req dto.UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	column, err := h.columnService.UpdateColumn(c.Request.Context(), columnID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, column)
}

// DeleteColumn godoc
// @Summary      Delete a column and its cards
// @Tags         columns
// @Produce      json
// @Param        columnId path string true "Column ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /columns/{columnId} [delete]
func (h *ColumnHandler) DeleteColumn(c *gin.Context) {
	columnID, ok := parseUUIDParam(c, "columnId")
	if !ok {
		return
	}

	if err := h.columnService.DeleteColumn(c.Request.Context(), columnID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Column deleted"})
}

// ReorderColumns godoc
// @Summary      Reorder a kanban's columns
// @Description  The id list must be exactly the kanban's columns in their new order. Positions are renumbered densely in one transaction.
// @Tags         columns
// @Accept       json
// @Produce      json
// @Param        request body dto.ReorderColumnsRequest true "New column order"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ColumnResponse}
// @Failure      400 {object} response.ErrorResponse "Ids are not a permutation of the kanban's columns"
// @Router       /columns/reorder [put]
func (h *ColumnHandler) ReorderColumns(c *gin.Context) {
	var req dto.ReorderColumnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	columns, err := h.columnService.ReorderColumns(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, columns)
}
