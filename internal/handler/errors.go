package handler

import (
	"errors"
	"net/http"

	"github.com/acharjeesuvo/EvalMind/internal/imagestore"
	"github.com/acharjeesuvo/EvalMind/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// User-facing messages.
const (
	msgUserNotFound      = "User ID not found."
	msgIncorrectPassword = "Incorrect password."
	msgAccessDenied      = "Access denied: This account does not have annotator privileges."
	msgTryAgain          = "Something went wrong while talking to the database. Please try again."
	msgAllDone           = "All annotations done!"
)

// respondServiceError maps service errors to a status and message. Anything
// unrecognised is treated as a data store failure.
func respondServiceError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgUserNotFound})
	case errors.Is(err, service.ErrIncorrectPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgIncorrectPassword})
	case errors.Is(err, service.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": msgAccessDenied})
	case errors.Is(err, service.ErrInvalidScore):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrAnnotationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, imagestore.ErrInvalidName):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": msgTryAgain})
	}
}
