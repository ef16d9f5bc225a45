// Package migrations embeds the goose SQL migrations for every supported
// database dialect.
package migrations

import (
	"embed"
	"fmt"
)

// Migrations holds one directory of migrations per dialect.
//
//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// Dir returns the migration directory and goose dialect for a database/sql
// driver name.
func Dir(driver string) (dir, dialect string, err error) {
	switch driver {
	case "pgx", "postgres":
		return "postgres", "postgres", nil
	case "sqlite", "sqlite3":
		return "sqlite", "sqlite3", nil
	default:
		return "", "", fmt.Errorf("no migrations for driver %q", driver)
	}
}
