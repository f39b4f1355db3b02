package service

import (
	"context"
	"fmt"
	"time"

	"github.com/acharjeesuvo/EvalMind/internal/crypto"
	"github.com/acharjeesuvo/EvalMind/internal/metrics"
	"github.com/acharjeesuvo/EvalMind/internal/models"
	"github.com/acharjeesuvo/EvalMind/internal/repository"
	"github.com/acharjeesuvo/EvalMind/internal/session"

	"go.uber.org/zap"
)

// LoginResult is a logged-in session and its signed token.
type LoginResult struct {
	Session   session.Session
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Login(ctx context.Context, userID, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
}

type authService struct {
	users         repository.UserRepository
	loginLog      repository.LoginLogRepository
	sessions      *session.Manager
	tokens        *session.TokenIssuer
	annotatorRole string
	metrics       *metrics.Metrics
	logger        *zap.Logger
}

func NewAuthService(
	users repository.UserRepository,
	loginLog repository.LoginLogRepository,
	sessions *session.Manager,
	tokens *session.TokenIssuer,
	annotatorRole string,
	m *metrics.Metrics,
	logger *zap.Logger,
) AuthService {
	return &authService{
		users:         users,
		loginLog:      loginLog,
		sessions:      sessions,
		tokens:        tokens,
		annotatorRole: annotatorRole,
		metrics:       m,
		logger:        logger,
	}
}

// Login checks user existence, then password, then role. Any failure leaves no
// session behind; success registers a LoggedIn session and appends a login event.
func (s *authService) Login(ctx context.Context, userID, password string) (*LoginResult, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		s.metrics.RecordLogin(metrics.LoginError)
		s.metrics.RecordStoreError("get_user")
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	if user == nil {
		s.metrics.RecordLogin(metrics.LoginUserNotFound)
		return nil, ErrUserNotFound
	}

	ok, err := crypto.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		// An unreadable stored hash can never match; report it like a wrong password.
		s.logger.Error("Stored password hash is malformed", zap.String("user_id", userID), zap.Error(err))
	}
	if !ok {
		s.metrics.RecordLogin(metrics.LoginBadPassword)
		return nil, ErrIncorrectPassword
	}

	if user.Role != s.annotatorRole {
		s.metrics.RecordLogin(metrics.LoginDenied)
		s.logger.Info("Login denied for non-annotator", zap.String("user_id", userID), zap.String("role", user.Role))
		return nil, ErrAccessDenied
	}

	now := time.Now().UTC()
	sess := s.sessions.Begin()
	if err := sess.Login(user.UserID, user.Role, now, now.Add(s.tokens.TTL())); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(sess)
	if err != nil {
		s.metrics.RecordLogin(metrics.LoginError)
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.loginLog.LogLogin(ctx, models.LoginEvent{UserID: user.UserID, LoginTime: now}); err != nil {
		s.metrics.RecordLogin(metrics.LoginError)
		s.metrics.RecordStoreError("log_login")
		return nil, fmt.Errorf("failed to log login: %w", err)
	}

	if err := s.sessions.Register(sess); err != nil {
		return nil, err
	}

	s.metrics.RecordLogin(metrics.LoginSuccess)
	s.logger.Info("User logged in successfully.", zap.String("user_id", user.UserID), zap.String("session_id", sess.ID))

	return &LoginResult{Session: *sess, Token: token, ExpiresAt: sess.ExpiresAt}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	ended, err := s.sessions.End(sessionID)
	if err != nil {
		return err
	}
	s.logger.Info("User logged out successfully.", zap.String("user_id", ended.UserID), zap.String("session_id", sessionID))
	return nil
}
