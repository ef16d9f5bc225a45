// Package server wires the toursite backend: storage and migrations, the
// REST API, the gRPC health endpoint, booking notifications and the
// promotion sweeper. It also handles signals and graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/toursite/internal/logging"
	"github.com/dmitrijs2005/toursite/internal/server/config"
	"github.com/dmitrijs2005/toursite/internal/server/notify"
	"github.com/dmitrijs2005/toursite/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/toursite/internal/server/scheduler"
	"github.com/dmitrijs2005/toursite/internal/server/services"

	gs "github.com/dmitrijs2005/toursite/internal/server/grpc"
	hs "github.com/dmitrijs2005/toursite/internal/server/http"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB

	tourService      *services.TourService
	promotionService *services.PromotionService
	postService      *services.PostService
	bookingService   *services.BookingService
}

// NewApp opens the database, applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	db, err := openDB(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewRepositoryManager(c.DatabaseDriver)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &App{
		config:           c,
		logger:           logger,
		db:               db,
		tourService:      services.NewTourService(db, rm, c, logger),
		promotionService: services.NewPromotionService(db, rm, logger),
		postService:      services.NewPostService(db, rm, c, logger),
		bookingService:   services.NewBookingService(db, rm, notify.New(c, logger), logger),
	}, nil
}

// dbBackoff is the retry policy for the first connection. The database
// container often starts after the server.
var dbBackoff = func() retry.Backoff {
	return retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))
}

func openDB(ctx context.Context, c *config.Config, l logging.Logger) (*sql.DB, error) {
	if !slices.Contains(sql.Drivers(), c.DatabaseDriver) {
		return nil, fmt.Errorf("unknown database driver %q", c.DatabaseDriver)
	}
	var db *sql.DB
	err := retry.Do(ctx, dbBackoff(), func(ctx context.Context) error {
		var err error
		db, err = repomanager.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
		if err != nil {
			l.Warn(ctx, "database not ready", "driver", c.DatabaseDriver, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := hs.NewServer(hs.Options{
		Address:         app.config.HTTPAddr,
		CORSOrigins:     app.config.CORSOrigins,
		ShutdownTimeout: app.config.ShutdownTimeout,
	}, app.logger, hs.Services{
		Tours:      app.tourService,
		Promotions: app.promotionService,
		Posts:      app.postService,
		Bookings:   app.bookingService,
		DB:         app.db,
	})

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.db)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startSweeper(ctx context.Context) {
	s := scheduler.NewSweeper(app.promotionService, app.config.PromotionSweepInterval, app.logger)
	_ = s.Run(ctx)
}

// Run starts every component and blocks until a signal arrives or one of
// them fails, then waits for all of them to stop.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"driver", app.config.DatabaseDriver,
		"notifications", app.config.NotificationsEnabled(),
	)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startSweeper(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
