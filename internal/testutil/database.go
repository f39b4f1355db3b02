// Package testutil provides an SQLite-backed database for package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/acharjeesuvo/EvalMind/internal/crypto"
	"github.com/acharjeesuvo/EvalMind/internal/repository"
)

// NewDB returns an SQLite database in a temporary directory with every
// embedded migration applied.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite", filepath.Join(t.TempDir(), "evalmind.db"))
	require.NoError(t, err)
	// A single connection avoids SQLITE_BUSY between concurrent test goroutines.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, repository.ApplyMigrations(NewMigrator(t, db), zap.NewNop()))
	return db
}

// NewMigrator returns a migrate instance over db. It is never closed, because
// closing it would close db.
func NewMigrator(t *testing.T, db *sqlx.DB) *migrate.Migrate {
	t.Helper()

	driver, err := sqlite.WithInstance(db.DB, &sqlite.Config{})
	require.NoError(t, err)

	m, err := repository.NewMigrator("sqlite", driver)
	require.NoError(t, err)
	return m
}

// HashPassword returns a bcrypt hash for fixtures.
func HashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)
	return hash
}

// InsertUser adds a user_data row. An empty role is stored as NULL.
func InsertUser(t *testing.T, db *sqlx.DB, userID, passwordHash, role string) {
	t.Helper()
	var roleValue any
	if role != "" {
		roleValue = role
	}
	_, err := db.Exec(`INSERT INTO user_data (user_id, password_hash, role) VALUES (?, ?, ?)`, userID, passwordHash, roleValue)
	require.NoError(t, err)
}

// InsertItems adds input_data rows with generated text.
func InsertItems(t *testing.T, db *sqlx.DB, imageNames ...string) {
	t.Helper()
	for _, name := range imageNames {
		_, err := db.Exec(`INSERT INTO input_data (image_name, tweet_text, llm_reasoning) VALUES (?, ?, ?)`,
			name, "tweet for "+name, "reasoning for "+name)
		require.NoError(t, err)
	}
}

// InsertAnnotation writes an annotated row directly, bypassing the repository.
func InsertAnnotation(t *testing.T, db *sqlx.DB, userID, imageName string, score int, accept int) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO annotated (user_id, image_name, evidence_recognition, reasoning_chain, text_naturalness, accept_status, annotated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, userID, imageName, score, score, score, accept, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
}

// CountRows returns COUNT(*) for a table with an optional WHERE clause.
func CountRows(t *testing.T, db *sqlx.DB, table, where string, args ...any) int {
	t.Helper()
	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	require.NoError(t, db.Get(&n, query, args...))
	return n
}
