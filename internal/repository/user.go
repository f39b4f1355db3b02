package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/acharjeesuvo/EvalMind/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// UserRepository reads credentials. Users are provisioned outside this service.
type UserRepository interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

type userRepository struct {
	db          *sqlx.DB
	defaultRole string
	logger      *zap.Logger
}

// NewUserRepository reads users whose NULL role is reported as defaultRole.
func NewUserRepository(db *sqlx.DB, defaultRole string, logger *zap.Logger) UserRepository {
	return &userRepository{db: db, defaultRole: defaultRole, logger: logger}
}

// GetUser returns nil, nil when the user does not exist.
func (r *userRepository) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	query := r.db.Rebind(`SELECT user_id, password_hash, COALESCE(role, ?) AS role FROM user_data WHERE user_id = ?`)
	err := r.db.GetContext(ctx, &user, query, r.defaultRole, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get user", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &user, nil
}
