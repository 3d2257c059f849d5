package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"darf/internal/domain"
	"darf/internal/middleware"
	"darf/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /api/v1/auth/login
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body LoginRequest true "Credentials"
// @Success      200 {object} APIResponse{data=service.Token}
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	token, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, token)
}

// Register handles POST /api/v1/auth/register
// @Summary      Create an operator account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body RegisterRequest true "New user"
// @Success      201 {object} APIResponse{data=domain.User}
// @Failure      400 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Security     BearerAuth
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, user)
}

// Me handles GET /api/v1/auth/me
// @Summary      Current operator
// @Tags         auth
// @Produce      json
// @Success      200 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	RespondOK(c, gin.H{
		"user_id": userID,
		"email":   c.GetString(middleware.ContextKeyEmail),
		"role":    domain.UserRole(middleware.GetRole(c)),
	})
}
