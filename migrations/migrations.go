// Package migrations embeds the SQL schema applied by golang-migrate.
//
// Statements are kept portable between PostgreSQL and SQLite; the test suite
// applies the same files to an SQLite database.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
