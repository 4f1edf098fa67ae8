package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

type AttachmentHandler struct {
	attachmentService service.AttachmentService
}

func NewAttachmentHandler(attachmentService service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentService: attachmentService,
	}
}

// Upload godoc
// @Summary      Upload a file
// @Description  Stores the file and records TEMP metadata. The attachment must be confirmed by a card or comment within 24 hours or it is cleaned up.
// @Tags         attachments
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "File to upload"
// @Param        entityType formData string true "CARD or COMMENT"
// @Success      201 {object} response.SuccessResponse{data=dto.UploadAttachmentResponse}
// @Failure      400 {object} response.ErrorResponse "Missing file or invalid entity type"
// @Router       /attachments/upload [post]
func (h *AttachmentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "File is required")
		return
	}
	entityType := domain.EntityType(strings.ToUpper(c.PostForm("entityType")))

	file, err := fileHeader.Open()
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Failed to read file")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	result, err := h.attachmentService.Upload(c.Request.Context(), entityType,
		fileHeader.Filename, contentType, fileHeader.Size, file)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, result)
}

// GetDownloadURL godoc
// @Summary      Get a presigned download URL for an attachment
// @Tags         attachments
// @Produce      json
// @Param        attachmentId path string true "Attachment ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.AttachmentURLResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /attachments/{attachmentId}/url [get]
func (h *AttachmentHandler) GetDownloadURL(c *gin.Context) {
	attachmentID, ok := parseUUIDParam(c, "attachmentId")
	if !ok {
		return
	}

	result, err := h.attachmentService.GetDownloadURL(c.Request.Context(), attachmentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// DeleteAttachment godoc
// @Summary      Delete an attachment
// @Description  Uploader only. The stored object is removed before the metadata row.
// @Tags         attachments
// @Produce      json
// @Param        attachmentId path string true "Attachment ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /attachments/{attachmentId} [delete]
func (h *AttachmentHandler) DeleteAttachment(c *gin.Context) {
	attachmentID, ok := parseUUIDParam(c, "attachmentId")
	if !ok {
		return
	}

	if err := h.attachmentService.Delete(c.Request.Context(), attachmentID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Attachment deleted"})
}
