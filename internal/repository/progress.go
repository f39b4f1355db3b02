package repository

import (
	"context"

	"github.com/acharjeesuvo/EvalMind/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ProgressRepository counts a user's annotations against the item total.
type ProgressRepository interface {
	Progress(ctx context.Context, userID string) (models.Progress, error)
}

type progressRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewProgressRepository(db *sqlx.DB, logger *zap.Logger) ProgressRepository {
	return &progressRepository{db: db, logger: logger}
}

// Progress only counts annotations whose item still exists, so Done <= Total.
func (r *progressRepository) Progress(ctx context.Context, userID string) (models.Progress, error) {
	var p models.Progress
	query := r.db.Rebind(`
		SELECT
			(SELECT COUNT(*)
			   FROM annotated a
			   JOIN input_data i ON i.image_name = a.image_name
			  WHERE a.user_id = ?) AS done,
			(SELECT COUNT(*) FROM input_data) AS total
	`)

	if err := r.db.GetContext(ctx, &p, query, userID); err != nil {
		r.logger.Error("Failed to get progress", zap.String("user_id", userID), zap.Error(err))
		return models.Progress{}, err
	}
	return p, nil
}
