package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAnnotator is the only role allowed to use the tool.
const RoleAnnotator = "annotator"

type User struct {
	UserID       string `db:"user_id"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
}

// LoginEvent is one row of the append-only login_log table.
type LoginEvent struct {
	UserID    string    `db:"user_id"`
	LoginTime time.Time `db:"login_time"`
}

// Claims defines the structure of the JWT claims. RegisteredClaims.ID carries the session ID.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
