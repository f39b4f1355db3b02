package handler

import (
	"net/http"

	"github.com/acharjeesuvo/EvalMind/internal/middleware"
	"github.com/acharjeesuvo/EvalMind/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

type LoginRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and starts a session.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req.UserID, req.Password)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Login successful",
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
		"user_id":    res.Session.UserID,
	})
}

// Logout ends the caller's session.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	if err := h.authService.Logout(c.Request.Context(), sess.ID); err != nil {
		h.logger.Error("Failed to logout user", zap.String("user_id", sess.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// Me describes the caller's session.
// GET /api/me
func (h *AuthHandler) Me(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	c.JSON(http.StatusOK, gin.H{
		"user_id":      sess.UserID,
		"role":         sess.Role,
		"state":        sess.State.String(),
		"logged_in_at": sess.LoggedInAt,
		"expires_at":   sess.ExpiresAt,
	})
}
