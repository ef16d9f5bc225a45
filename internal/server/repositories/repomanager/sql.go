// Package repomanager provides the RepositoryManager for the SQL backends,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/toursite/internal/dbx"
	"github.com/dmitrijs2005/toursite/internal/server/migrations"
	"github.com/dmitrijs2005/toursite/internal/server/repositories/bookings"
	"github.com/dmitrijs2005/toursite/internal/server/repositories/posts"
	"github.com/dmitrijs2005/toursite/internal/server/repositories/promotions"
	"github.com/dmitrijs2005/toursite/internal/server/repositories/tours"
)

// SQLRepositoryManager vends SQL repository implementations and runs the
// migrations matching its driver. The same queries serve PostgreSQL (pgx)
// and SQLite.
type SQLRepositoryManager struct {
	dir     string
	dialect string
}

func (m *SQLRepositoryManager) Tours(db dbx.DBTX) tours.Repository {
	return tours.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Promotions(db dbx.DBTX) promotions.Repository {
	return promotions.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Posts(db dbx.DBTX) posts.Repository {
	return posts.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Bookings(db dbx.DBTX) bookings.Repository {
	return bookings.NewSQLRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations for the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, m.dir); err != nil {
		return err
	}
	return nil
}

// NewRepositoryManager constructs a RepositoryManager for a database/sql
// driver name ("pgx" or "sqlite").
func NewRepositoryManager(driver string) (RepositoryManager, error) {
	dir, dialect, err := migrations.Dir(driver)
	if err != nil {
		return nil, err
	}
	return &SQLRepositoryManager{dir: dir, dialect: dialect}, nil
}

// Open opens and pings a database for driver and dsn.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if driver == "sqlite" {
		dsn = withSQLitePragmas(dsn)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == "sqlite" {
		// SQLite allows a single writer; serialize through one connection.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

// withSQLitePragmas turns on foreign key enforcement, which SQLite leaves off
// per connection by default.
func withSQLitePragmas(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}
