package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/acharjeesuvo/EvalMind/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// AnnotationRepository persists judgments. At most one row exists per (user_id, image_name).
type AnnotationRepository interface {
	// Upsert inserts the annotation or overwrites the existing one for the same pair.
	Upsert(ctx context.Context, annotation *models.Annotation) error
	Get(ctx context.Context, userID, imageName string) (*models.Annotation, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Annotation, error)
}

type annotationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewAnnotationRepository(db *sqlx.DB, logger *zap.Logger) AnnotationRepository {
	return &annotationRepository{db: db, logger: logger}
}

func (r *annotationRepository) Upsert(ctx context.Context, a *models.Annotation) error {
	query := r.db.Rebind(`
		INSERT INTO annotated (
			user_id, image_name, evidence_recognition, reasoning_chain,
			text_naturalness, accept_status, annotated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, image_name) DO UPDATE SET
			evidence_recognition = excluded.evidence_recognition,
			reasoning_chain      = excluded.reasoning_chain,
			text_naturalness     = excluded.text_naturalness,
			accept_status        = excluded.accept_status,
			annotated_at         = excluded.annotated_at
	`)

	_, err := r.db.ExecContext(ctx, query,
		a.UserID,
		a.ImageName,
		a.EvidenceRecognition,
		a.ReasoningChain,
		a.TextNaturalness,
		a.AcceptStatus,
		a.AnnotatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to save annotation",
			zap.String("user_id", a.UserID), zap.String("image_name", a.ImageName), zap.Error(err))
		return err
	}
	return nil
}

func (r *annotationRepository) Get(ctx context.Context, userID, imageName string) (*models.Annotation, error) {
	var a models.Annotation
	query := r.db.Rebind(`
		SELECT user_id, image_name, evidence_recognition, reasoning_chain,
		       text_naturalness, accept_status, annotated_at
		FROM annotated
		WHERE user_id = ? AND image_name = ?
	`)

	err := r.db.GetContext(ctx, &a, query, userID, imageName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get annotation",
			zap.String("user_id", userID), zap.String("image_name", imageName), zap.Error(err))
		return nil, err
	}
	return &a, nil
}

func (r *annotationRepository) ListByUser(ctx context.Context, userID string) ([]*models.Annotation, error) {
	annotations := []*models.Annotation{}
	query := r.db.Rebind(`
		SELECT user_id, image_name, evidence_recognition, reasoning_chain,
		       text_naturalness, accept_status, annotated_at
		FROM annotated
		WHERE user_id = ?
		ORDER BY ` + orderByteWise(r.db, "image_name"))

	if err := r.db.SelectContext(ctx, &annotations, query, userID); err != nil {
		r.logger.Error("Failed to list annotations", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return annotations, nil
}
