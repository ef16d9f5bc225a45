package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/toursite/internal/dbx"
	"github.com/dmitrijs2005/toursite/internal/server/repositories/bookings"
	"github.com/dmitrijs2005/toursite/internal/server/repositories/posts"
	"github.com/dmitrijs2005/toursite/internal/server/repositories/promotions"
	"github.com/dmitrijs2005/toursite/internal/server/repositories/tours"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Tours(db dbx.DBTX) tours.Repository
	Promotions(db dbx.DBTX) promotions.Repository
	Posts(db dbx.DBTX) posts.Repository
	Bookings(db dbx.DBTX) bookings.Repository
}
