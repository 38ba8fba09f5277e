// Package db holds the schema migrations and the sqlc query sources.
package db

import "embed"

// Migrations are the goose migrations, rooted at "migrations".
//
//go:embed migrations/*.sql
var Migrations embed.FS
