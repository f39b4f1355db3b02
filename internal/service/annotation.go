package service

import (
	"context"
	"fmt"
	"time"

	"github.com/acharjeesuvo/EvalMind/internal/metrics"
	"github.com/acharjeesuvo/EvalMind/internal/models"
	"github.com/acharjeesuvo/EvalMind/internal/repository"

	"go.uber.org/zap"
)

// Judgment is the annotator's input for one item.
type Judgment struct {
	ImageName           string
	EvidenceRecognition int
	ReasoningChain      int
	TextNaturalness     int
	Accept              bool
}

func (j Judgment) validate() error {
	for _, score := range []int{j.EvidenceRecognition, j.ReasoningChain, j.TextNaturalness} {
		if score < models.MinScore || score > models.MaxScore {
			return fmt.Errorf("%w: got %d", ErrInvalidScore, score)
		}
	}
	return nil
}

type AnnotationService interface {
	// Next returns the user's next item in ascending image name order, or ErrNoItemsRemaining.
	Next(ctx context.Context, userID string) (*models.Item, error)
	// Submit replaces any earlier judgment of the same item by the same user.
	Submit(ctx context.Context, userID string, j Judgment) (*models.Annotation, error)
	Progress(ctx context.Context, userID string) (models.Progress, error)
	Get(ctx context.Context, userID, imageName string) (*models.Annotation, error)
	List(ctx context.Context, userID string) ([]*models.Annotation, error)
}

type annotationService struct {
	items       repository.ItemRepository
	annotations repository.AnnotationRepository
	progress    repository.ProgressRepository
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

func NewAnnotationService(
	items repository.ItemRepository,
	annotations repository.AnnotationRepository,
	progress repository.ProgressRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) AnnotationService {
	return &annotationService{
		items:       items,
		annotations: annotations,
		progress:    progress,
		metrics:     m,
		logger:      logger,
	}
}

func (s *annotationService) Next(ctx context.Context, userID string) (*models.Item, error) {
	item, err := s.items.NextUnannotated(ctx, userID)
	if err != nil {
		s.metrics.RecordStoreError("next_item")
		return nil, fmt.Errorf("failed to select next item: %w", err)
	}
	if item == nil {
		s.metrics.RecordAssignment(true)
		return nil, ErrNoItemsRemaining
	}
	s.metrics.RecordAssignment(false)
	return item, nil
}

func (s *annotationService) Submit(ctx context.Context, userID string, j Judgment) (*models.Annotation, error) {
	if err := j.validate(); err != nil {
		return nil, err
	}

	item, err := s.items.GetItem(ctx, j.ImageName)
	if err != nil {
		s.metrics.RecordStoreError("get_item")
		return nil, fmt.Errorf("failed to look up item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, j.ImageName)
	}

	now := time.Now().UTC()
	annotation := &models.Annotation{
		UserID:              userID,
		ImageName:           item.ImageName,
		EvidenceRecognition: j.EvidenceRecognition,
		ReasoningChain:      j.ReasoningChain,
		TextNaturalness:     j.TextNaturalness,
		AcceptStatus:        models.AcceptStatusFromBool(j.Accept),
		AnnotatedAt:         &now,
	}

	if err := s.annotations.Upsert(ctx, annotation); err != nil {
		s.metrics.RecordStoreError("save_annotation")
		return nil, fmt.Errorf("failed to save annotation: %w", err)
	}

	s.metrics.RecordAnnotationSaved()
	s.logger.Debug("Annotation saved", zap.String("user_id", userID), zap.String("image_name", item.ImageName))
	return annotation, nil
}

func (s *annotationService) Progress(ctx context.Context, userID string) (models.Progress, error) {
	p, err := s.progress.Progress(ctx, userID)
	if err != nil {
		s.metrics.RecordStoreError("progress")
		return models.Progress{}, fmt.Errorf("failed to get progress: %w", err)
	}
	return p, nil
}

func (s *annotationService) Get(ctx context.Context, userID, imageName string) (*models.Annotation, error) {
	a, err := s.annotations.Get(ctx, userID, imageName)
	if err != nil {
		s.metrics.RecordStoreError("get_annotation")
		return nil, fmt.Errorf("failed to get annotation: %w", err)
	}
	if a == nil {
		return nil, ErrAnnotationNotFound
	}
	return a, nil
}

func (s *annotationService) List(ctx context.Context, userID string) ([]*models.Annotation, error) {
	list, err := s.annotations.ListByUser(ctx, userID)
	if err != nil {
		s.metrics.RecordStoreError("list_annotations")
		return nil, fmt.Errorf("failed to list annotations: %w", err)
	}
	return list, nil
}
