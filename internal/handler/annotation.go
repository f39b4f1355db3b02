package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/acharjeesuvo/EvalMind/internal/imagestore"
	"github.com/acharjeesuvo/EvalMind/internal/middleware"
	"github.com/acharjeesuvo/EvalMind/internal/models"
	"github.com/acharjeesuvo/EvalMind/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AnnotationHandler serves the annotation loop: progress, next item, images and submissions.
type AnnotationHandler struct {
	annotations service.AnnotationService
	images      *imagestore.Store
	logger      *zap.Logger
}

func NewAnnotationHandler(annotations service.AnnotationService, images *imagestore.Store, logger *zap.Logger) *AnnotationHandler {
	return &AnnotationHandler{annotations: annotations, images: images, logger: logger}
}

type progressResponse struct {
	Done     int  `json:"done"`
	Total    int  `json:"total"`
	Percent  int  `json:"percent"`
	Complete bool `json:"complete"`
}

func newProgressResponse(p models.Progress) progressResponse {
	return progressResponse{Done: p.Done, Total: p.Total, Percent: p.Percent(), Complete: p.Complete()}
}

type SubmitRequest struct {
	ImageName           string `json:"image_name" binding:"required"`
	EvidenceRecognition int    `json:"evidence_recognition" binding:"required,min=1,max=5"`
	ReasoningChain      int    `json:"reasoning_chain" binding:"required,min=1,max=5"`
	TextNaturalness     int    `json:"text_naturalness" binding:"required,min=1,max=5"`
	Accept              *bool  `json:"accept" binding:"required"`
}

// Progress returns the caller's done/total counts.
// GET /api/progress
func (h *AnnotationHandler) Progress(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	p, err := h.annotations.Progress(c.Request.Context(), sess.UserID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newProgressResponse(p))
}

// Next returns the caller's next item, or the review-complete marker.
// GET /api/items/next
func (h *AnnotationHandler) Next(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	ctx := c.Request.Context()

	p, err := h.annotations.Progress(ctx, sess.UserID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	item, err := h.annotations.Next(ctx, sess.UserID)
	if errors.Is(err, service.ErrNoItemsRemaining) {
		c.JSON(http.StatusOK, gin.H{
			"complete": true,
			"message":  msgAllDone,
			"progress": newProgressResponse(p),
		})
		return
	}
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	resp := gin.H{
		"complete":        false,
		"item":            item,
		"image_url":       "/api/images/" + item.ImageName,
		"image_available": true,
		"progress":        newProgressResponse(p),
	}
	if !h.images.Exists(item.ImageName) {
		h.logger.Warn("Image missing for item", zap.String("image_name", item.ImageName))
		resp["image_available"] = false
		resp["image_error"] = fmt.Sprintf("Image not found: %s", item.ImageName)
	}
	c.JSON(http.StatusOK, resp)
}

// Image streams the stored image for an item.
// GET /api/images/:name
func (h *AnnotationHandler) Image(c *gin.Context) {
	name := c.Param("name")

	f, err := h.images.Open(name)
	if err != nil {
		if errors.Is(err, imagestore.ErrImageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Image not found: %s", name)})
			return
		}
		respondServiceError(c, h.logger, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
}

// Submit stores or replaces the caller's judgment of an item.
// POST /api/annotations
func (h *AnnotationHandler) Submit(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	ctx := c.Request.Context()

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	annotation, err := h.annotations.Submit(ctx, sess.UserID, service.Judgment{
		ImageName:           req.ImageName,
		EvidenceRecognition: req.EvidenceRecognition,
		ReasoningChain:      req.ReasoningChain,
		TextNaturalness:     req.TextNaturalness,
		Accept:              *req.Accept,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	p, err := h.annotations.Progress(ctx, sess.UserID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Annotation submitted!",
		"annotation": annotation,
		"progress":   newProgressResponse(p),
	})
}

// List returns the caller's annotations for review.
// GET /api/annotations
func (h *AnnotationHandler) List(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	list, err := h.annotations.List(c.Request.Context(), sess.UserID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"annotations": list, "count": len(list)})
}

// Get returns the caller's annotation of one item.
// GET /api/annotations/:image_name
func (h *AnnotationHandler) Get(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	a, err := h.annotations.Get(c.Request.Context(), sess.UserID, c.Param("image_name"))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
