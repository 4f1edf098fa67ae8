package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

// sessionCookieName is the cookie carrying the session token for browsers
const sessionCookieName = "kanban_session"

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login godoc
// @Summary      Log in
// @Description  Verifies credentials and returns a session token. The token is also set as a cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Credentials"
// @Success      200 {object} response.SuccessResponse{data=dto.LoginResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request body"
// @Failure      401 {object} response.ErrorResponse "Wrong email or password"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.SetCookie(sessionCookieName, result.Token,
		int(time.Until(result.ExpiresAt).Seconds()), "/", "", false, true)
	response.SendSuccess(c, http.StatusOK, result)
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the presented token and clears the session cookie.
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.SuccessResponse
// @Failure      401 {object} response.ErrorResponse "Missing or invalid token"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenString := ""
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}
	if tokenString == "" {
		if cookie, err := c.Cookie(sessionCookieName); err == nil {
			tokenString = cookie
		}
	}
	if tokenString == "" {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), tokenString); err != nil {
		handleServiceError(c, err)
		return
	}

	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Logged out"})
}
