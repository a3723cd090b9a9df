package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/quest-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/quest-tracker-api/internal/errors"
	"github.com/yukikurage/quest-tracker-api/internal/middleware"
	"github.com/yukikurage/quest-tracker-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a user and starts its session.
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.CredentialsInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if err := middleware.StartSession(c, user.Username); err != nil {
		slog.Error("failed to save session", "error", err)
		apierrors.StorageFailure(c)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(c.Request.Context(), services.CredentialsInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if err := middleware.StartSession(c, user.Username); err != nil {
		slog.Error("failed to save session", "error", err)
		apierrors.StorageFailure(c)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.EndSession(c); err != nil {
		slog.Error("failed to clear session", "error", err)
		apierrors.StorageFailure(c)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}

// DeleteAccount removes the caller together with every quest it owns.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	username, ok := middleware.SessionUsername(c)
	if !ok {
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeMissingSession, "No active session")
		return
	}

	if err := h.authService.DeleteAccount(c.Request.Context(), username); err != nil {
		respondAuthError(c, err)
		return
	}

	if err := middleware.EndSession(c); err != nil {
		slog.Error("failed to clear session", "error", err)
		apierrors.StorageFailure(c)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Account deleted successfully"})
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidUsername):
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeInvalidUsername, err.Error())
	case errors.Is(err, services.ErrInvalidPassword):
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeInvalidPassword, err.Error())
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeUsernameTaken, err.Error())
	case errors.Is(err, services.ErrWrongPassword):
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeWrongPassword, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		apierrors.Unauthorized(c, "")
	default:
		slog.Error("auth request failed", "path", c.FullPath(), "error", err)
		apierrors.StorageFailure(c)
	}
}
