package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/toursite/internal/client/client"
	"github.com/dmitrijs2005/toursite/internal/client/config"
	"github.com/dmitrijs2005/toursite/internal/locale"
	"github.com/dmitrijs2005/toursite/internal/logging"
	"github.com/dmitrijs2005/toursite/internal/models"
	"github.com/dmitrijs2005/toursite/internal/reorder"
)

const healthService = "toursite.Store"

// adminAPI is the part of client.APIClient the CLI uses.
type adminAPI interface {
	Tours(ctx context.Context) ([]*models.Tour, error)
	CreateTour(ctx context.Context, t *models.Tour) (*models.Tour, error)
	DeleteTour(ctx context.Context, id string) error
	SwapTours(ctx context.Context, idA, idB string) error
	Promotions(ctx context.Context) ([]*models.Promotion, error)
	DeletePromotion(ctx context.Context, id string) error
	SwapPromotions(ctx context.Context, idA, idB string) error
	Posts(ctx context.Context, q models.ListQuery) (models.Page[*models.Post], error)
	CreatePost(ctx context.Context, p *models.Post) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error
	Bookings(ctx context.Context) ([]*models.BookingInquiry, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	api    adminAPI
	health pinger
	closer io.Closer
	logger logging.Logger

	tours  *reorder.List[*models.Tour]
	promos *reorder.List[*models.Promotion]

	in  *bufio.Scanner
	out *syncWriter

	mu    sync.Mutex
	lang  locale.Language
	posts models.ListQuery
	page  models.Page[*models.Post]
	now   func() time.Time
}

// NewApp connects the CLI to the server described by c.
func NewApp(c *config.Config, l logging.Logger) (*App, error) {
	api := client.NewAPIClient(c.APIURL, c.RequestTimeout, c.Retries)

	hc, err := client.NewHealthClient(c.HealthAddr, healthService)
	if err != nil {
		return nil, fmt.Errorf("health client: %w", err)
	}

	a := newApp(api, hc, c, l, os.Stdin, os.Stdout)
	a.closer = hc
	return a, nil
}

func newApp(api adminAPI, health pinger, c *config.Config, l logging.Logger, in io.Reader, out io.Writer) *App {
	if l == nil {
		l = logging.Nop()
	}
	a := &App{
		api:    api,
		health: health,
		logger: l,
		in:     bufio.NewScanner(in),
		out:    &syncWriter{w: out},
		lang:   locale.Normalize(c.Language),
		posts:  models.ListQuery{Page: 1},
		now:    time.Now,
	}

	opts := []reorder.Option{
		reorder.WithLogger(l),
		reorder.WithTimeout(c.RequestTimeout),
		reorder.WithSettleHook(a.onSettle),
	}
	a.tours = reorder.New(client.NewTourStore(api), opts...)
	a.promos = reorder.New(client.NewPromotionStore(api), opts...)
	return a
}

// Run loads the lists and blocks in the REPL until the user exits or ctx
// is cancelled. Moves still in flight are detached from the screen.
func (a *App) Run(ctx context.Context) {
	defer a.shutdown()

	if isTerminal(int(os.Stdin.Fd())) {
		a.say("Toursite admin (type 'help' for commands)")
	}
	if err := a.Ping(ctx); err != nil {
		a.logger.Warn(ctx, "server health check failed", "error", err)
	}
	if err := a.Reload(ctx); err != nil {
		a.logger.Warn(ctx, "initial load failed", "error", err)
	}

	a.Root(ctx)
}

func (a *App) shutdown() {
	a.tours.Close()
	a.promos.Close()
	a.tours.Wait()
	a.promos.Wait()
	if a.closer != nil {
		_ = a.closer.Close()
	}
}

func (a *App) language() locale.Language {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lang
}

// syncWriter serializes writes. Settle hooks print from their own
// goroutines.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (a *App) say(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) sayf(format string, args ...any) {
	a.say(fmt.Sprintf(format, args...))
}

// msg prints a catalog message in the session language.
func (a *App) msg(key string, args ...any) {
	a.say(locale.Message(a.language(), key, args...))
}

func (a *App) onSettle(o reorder.Outcome) {
	if o.SwapErr != nil {
		a.msg(locale.MsgReorderFailed)
	}
	if o.ReloadErr != nil {
		a.msg(locale.MsgReloadFailed)
	}
	if o.OK() {
		a.msg(locale.MsgReorderSaved)
	}
}
