package repository

import (
	"context"

	"github.com/acharjeesuvo/EvalMind/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// LoginLogRepository appends login events. Nothing in the service reads them back.
type LoginLogRepository interface {
	LogLogin(ctx context.Context, event models.LoginEvent) error
}

type loginLogRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewLoginLogRepository(db *sqlx.DB, logger *zap.Logger) LoginLogRepository {
	return &loginLogRepository{db: db, logger: logger}
}

func (r *loginLogRepository) LogLogin(ctx context.Context, event models.LoginEvent) error {
	query := r.db.Rebind(`INSERT INTO login_log (user_id, login_time) VALUES (?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, event.UserID, event.LoginTime); err != nil {
		r.logger.Error("Failed to log login time", zap.String("user_id", event.UserID), zap.Error(err))
		return err
	}
	return nil
}
