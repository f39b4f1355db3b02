package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/acharjeesuvo/EvalMind/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ItemRepository reads the input_data seed table.
type ItemRepository interface {
	// NextUnannotated returns the item with the smallest image name that the
	// user has not annotated yet, or nil when none remain.
	NextUnannotated(ctx context.Context, userID string) (*models.Item, error)
	GetItem(ctx context.Context, imageName string) (*models.Item, error)
	CountItems(ctx context.Context) (int, error)
}

type itemRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewItemRepository(db *sqlx.DB, logger *zap.Logger) ItemRepository {
	return &itemRepository{db: db, logger: logger}
}

func (r *itemRepository) NextUnannotated(ctx context.Context, userID string) (*models.Item, error) {
	var item models.Item
	query := r.db.Rebind(`
		SELECT i.image_name,
		       COALESCE(i.tweet_text, '') AS tweet_text,
		       COALESCE(i.llm_reasoning, '') AS llm_reasoning
		FROM input_data i
		WHERE NOT EXISTS (
			SELECT 1 FROM annotated a
			WHERE a.image_name = i.image_name AND a.user_id = ?
		)
		ORDER BY ` + orderByteWise(r.db, "i.image_name") + `
		LIMIT 1
	`)

	err := r.db.GetContext(ctx, &item, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get next unannotated item", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) GetItem(ctx context.Context, imageName string) (*models.Item, error) {
	var item models.Item
	query := r.db.Rebind(`
		SELECT image_name,
		       COALESCE(tweet_text, '') AS tweet_text,
		       COALESCE(llm_reasoning, '') AS llm_reasoning
		FROM input_data
		WHERE image_name = ?
	`)

	err := r.db.GetContext(ctx, &item, query, imageName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get item", zap.String("image_name", imageName), zap.Error(err))
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) CountItems(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM input_data`); err != nil {
		return 0, err
	}
	return count, nil
}
