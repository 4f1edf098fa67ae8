package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"kanban-board-api/internal/events"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WSHandler upgrades authenticated members onto a kanban's event stream
type WSHandler struct {
	hub           *events.Hub
	tokens        *service.TokenManager
	kanbanService service.KanbanService
	logger        *zap.Logger
}

func NewWSHandler(hub *events.Hub, tokens *service.TokenManager, kanbanService service.KanbanService, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		hub:           hub,
		tokens:        tokens,
		kanbanService: kanbanService,
		logger:        logger,
	}
}

// Subscribe godoc
// @Summary      Subscribe to a kanban's board events
// @Description  WebSocket endpoint streaming mutation events. The session token is passed as the token query parameter.
// @Tags         events
// @Param        kanbanId path string true "Kanban ID (UUID)"
// @Param        token query string true "Session token"
// @Success      101 {string} string "Switching protocols"
// @Failure      401 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse "Not a member"
// @Router       /ws/kanbans/{kanbanId} [get]
func (h *WSHandler) Subscribe(c *gin.Context) {
	kanbanID, ok := parseUUIDParam(c, "kanbanId")
	if !ok {
		return
	}

	tokenString := c.Query("token")
	if tokenString == "" {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}
	claims, err := h.tokens.Parse(tokenString)
	if err != nil {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid or expired token")
		return
	}

	// Membership check reuses the service layer's access rules
	ctx := context.WithValue(c.Request.Context(), "user_id", claims.UserID)
	if _, err := h.kanbanService.ListMembers(ctx, kanbanID); err != nil {
		handleServiceError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	h.hub.Serve(conn, kanbanID, claims.UserID)
}
