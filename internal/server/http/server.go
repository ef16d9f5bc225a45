// Package http serves the public site API and the admin API over fiber.
package http

import (
	"context"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dmitrijs2005/toursite/internal/logging"
	"github.com/dmitrijs2005/toursite/internal/models"
)

type TourService interface {
	List(ctx context.Context, q models.ListQuery, publishedOnly bool) (models.Page[*models.Tour], error)
	All(ctx context.Context) ([]*models.Tour, error)
	Get(ctx context.Context, id string) (*models.Tour, error)
	GetPublished(ctx context.Context, slug string) (*models.Tour, error)
	Create(ctx context.Context, t *models.Tour) (*models.Tour, error)
	Update(ctx context.Context, t *models.Tour) (*models.Tour, error)
	Delete(ctx context.Context, id string) error
	Swap(ctx context.Context, idA, idB string) error
}

type PromotionService interface {
	Running(ctx context.Context) ([]*models.Promotion, error)
	All(ctx context.Context) ([]*models.Promotion, error)
	Get(ctx context.Context, id string) (*models.Promotion, error)
	Create(ctx context.Context, p *models.Promotion) (*models.Promotion, error)
	Update(ctx context.Context, p *models.Promotion) (*models.Promotion, error)
	Delete(ctx context.Context, id string) error
	Swap(ctx context.Context, idA, idB string) error
}

type PostService interface {
	List(ctx context.Context, q models.ListQuery, publishedOnly bool) (models.Page[*models.Post], error)
	Get(ctx context.Context, id string) (*models.Post, error)
	GetPublished(ctx context.Context, slug string) (*models.Post, error)
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	Update(ctx context.Context, p *models.Post) (*models.Post, error)
	Delete(ctx context.Context, id string) error
}

type BookingService interface {
	Create(ctx context.Context, b *models.BookingInquiry) (*models.BookingInquiry, error)
	List(ctx context.Context) ([]*models.BookingInquiry, error)
}

// Pinger reports store health for /api/ping.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Services groups the dependencies the handlers call into.
type Services struct {
	Tours      TourService
	Promotions PromotionService
	Posts      PostService
	Bookings   BookingService
	DB         Pinger
}

type Options struct {
	Address         string
	CORSOrigins     string
	ShutdownTimeout time.Duration
}

type Server struct {
	address         string
	shutdownTimeout time.Duration
	app             *fiber.App
	svc             Services
	logger          logging.Logger
	now             func() time.Time
}

func NewServer(opts Options, l logging.Logger, svc Services) *Server {
	s := &Server{
		address:         opts.Address,
		shutdownTimeout: opts.ShutdownTimeout,
		svc:             svc,
		logger:          l.With("module", "http_server"),
		now:             func() time.Time { return time.Now().UTC() },
	}

	app := fiber.New(fiber.Config{
		AppName:               "toursite",
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  opts.CORSOrigins,
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept,Accept-Language",
		ExposeHeaders: "Content-Language",
	}))
	app.Use(s.requestLogger)
	app.Use(localeMiddleware)

	s.routes(app)
	s.app = app
	return s
}

// App exposes the fiber application, mainly for app.Test.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) routes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/ping", s.ping)

	api.Get("/tours", s.listTours)
	api.Get("/tours/:slug", s.getTour)
	api.Get("/posts", s.listPosts)
	api.Get("/posts/:slug", s.getPost)
	api.Get("/promotions", s.listPromotions)
	api.Post("/bookings", s.createBooking)

	admin := api.Group("/admin")

	tours := admin.Group("/tours")
	tours.Get("/", s.adminListTours)
	tours.Post("/", s.adminCreateTour)
	tours.Post("/swap", s.adminSwapTours)
	tours.Get("/:id", s.adminGetTour)
	tours.Put("/:id", s.adminUpdateTour)
	tours.Delete("/:id", s.adminDeleteTour)

	promos := admin.Group("/promotions")
	promos.Get("/", s.adminListPromotions)
	promos.Post("/", s.adminCreatePromotion)
	promos.Post("/swap", s.adminSwapPromotions)
	promos.Get("/:id", s.adminGetPromotion)
	promos.Put("/:id", s.adminUpdatePromotion)
	promos.Delete("/:id", s.adminDeletePromotion)

	posts := admin.Group("/posts")
	posts.Get("/", s.adminListPosts)
	posts.Post("/", s.adminCreatePost)
	posts.Get("/:id", s.adminGetPost)
	posts.Put("/:id", s.adminUpdatePost)
	posts.Delete("/:id", s.adminDeletePost)

	admin.Get("/bookings", s.adminListBookings)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := s.app.ShutdownWithTimeout(s.shutdownTimeout); err != nil {
			s.logger.Error(ctx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
	return s.app.Listener(listen)
}

func (s *Server) ping(c *fiber.Ctx) error {
	if s.svc.DB != nil {
		if err := s.svc.DB.PingContext(c.UserContext()); err != nil {
			s.logger.Warn(c.UserContext(), "store ping failed", "error", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
