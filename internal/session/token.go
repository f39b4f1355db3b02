package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/acharjeesuvo/EvalMind/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer signs and parses HS256 session tokens. The token ID is the session ID.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// TTL is the lifetime of issued tokens.
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token for a logged-in session.
func (i *TokenIssuer) Issue(s *Session) (string, error) {
	if s.State != LoggedIn {
		return "", fmt.Errorf("%w: session is %s", ErrInvalidTransition, s.State)
	}
	claims := &models.Claims{
		UserID: s.UserID,
		Role:   s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(s.LoggedInAt),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Parse validates the signature and expiry and returns the claims.
func (i *TokenIssuer) Parse(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
