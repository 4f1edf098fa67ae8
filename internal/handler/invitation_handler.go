package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

type InvitationHandler struct {
	invitationService service.InvitationService
}

func NewInvitationHandler(invitationService service.InvitationService) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
	}
}

// IssueInvitation godoc
// @Summary      Invite a collaborator to a kanban
// @Description  A userId attaches the user directly; an email mints a single-use token. Re-issuing for an unredeemed email returns the existing token unchanged.
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Param        request body dto.IssueInvitationRequest true "Invitation request"
// @Success      201 {object} response.SuccessResponse{data=dto.IssueInvitationResponse}
// @Failure      400 {object} response.ErrorResponse "Neither or both of email and userId"
// @Failure      403 {object} response.ErrorResponse "Not a kanban manager"
// @Failure      409 {object} response.ErrorResponse "Already a member"
// @Router       /invitations [post]
func (h *InvitationHandler) IssueInvitation(c *gin.Context) {
	var req dto.IssueInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.invitationService.IssueInvitation(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, result)
}

// AcceptInvitation godoc
// @Summary      Redeem an invitation token
// @Description  Creates the account if the invited email is unknown, attaches membership, marks the token used and returns a session token. A used token is rejected with no side effects.
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Param        request body dto.AcceptInvitationRequest true "Token and credentials"
// @Success      200 {object} response.SuccessResponse{data=dto.AcceptInvitationResponse}
// @Failure      404 {object} response.ErrorResponse "Unknown token"
// @Failure      409 {object} response.ErrorResponse "Token already used"
// @Router       /invitations/accept [post]
func (h *InvitationHandler) AcceptInvitation(c *gin.Context) {
	var req dto.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.invitationService.AcceptInvitation(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}
