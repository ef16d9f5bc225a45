package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/toursite/internal/common"
	"github.com/dmitrijs2005/toursite/internal/dbx"
	"github.com/dmitrijs2005/toursite/internal/logging"
	"github.com/dmitrijs2005/toursite/internal/models"
	"github.com/dmitrijs2005/toursite/internal/server/config"
	"github.com/dmitrijs2005/toursite/internal/server/repositories/bookings"
	"github.com/dmitrijs2005/toursite/internal/server/repositories/posts"
	"github.com/dmitrijs2005/toursite/internal/server/repositories/promotions"
	"github.com/dmitrijs2005/toursite/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/toursite/internal/server/repositories/tours"
)

var fixedNow = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

var errBoom = errors.New("boom")

// -------- test fakes --------

type fakeToursRepo struct {
	tours.Repository
	items     []*models.Tour
	listErr   error
	createErr error
	setCalls  [][2]any
	normalize int
}

func (f *fakeToursRepo) ListOrdered(ctx context.Context, publishedOnly bool) ([]*models.Tour, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := append([]*models.Tour(nil), f.items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	if publishedOnly {
		filtered := out[:0]
		for _, t := range out {
			if t.Published {
				filtered = append(filtered, t)
			}
		}
		out = filtered
	}
	return out, nil
}

func (f *fakeToursRepo) find(match func(*models.Tour) bool) (*models.Tour, error) {
	for _, t := range f.items {
		if match(t) {
			c := *t
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeToursRepo) Get(ctx context.Context, id string) (*models.Tour, error) {
	return f.find(func(t *models.Tour) bool { return t.ID == id })
}

func (f *fakeToursRepo) GetBySlug(ctx context.Context, slug string) (*models.Tour, error) {
	return f.find(func(t *models.Tour) bool { return t.Slug == slug })
}

func (f *fakeToursRepo) Create(ctx context.Context, t *models.Tour) error {
	if f.createErr != nil {
		return f.createErr
	}
	t.SortOrder = len(f.items)
	c := *t
	f.items = append(f.items, &c)
	return nil
}

func (f *fakeToursRepo) Update(ctx context.Context, t *models.Tour) error {
	for i, cur := range f.items {
		if cur.ID == t.ID {
			c := *t
			f.items[i] = &c
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeToursRepo) Delete(ctx context.Context, id string) error {
	for i, cur := range f.items {
		if cur.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeToursRepo) SortOrders(ctx context.Context, idA, idB string) (map[string]int, error) {
	out := map[string]int{}
	for _, t := range f.items {
		if t.ID == idA || t.ID == idB {
			out[t.ID] = t.SortOrder
		}
	}
	if len(out) != 2 {
		return nil, common.ErrorNotFound
	}
	return out, nil
}

func (f *fakeToursRepo) SetSortOrder(ctx context.Context, id string, order int) error {
	f.setCalls = append(f.setCalls, [2]any{id, order})
	for _, t := range f.items {
		if t.ID == id {
			t.SortOrder = order
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeToursRepo) Normalize(ctx context.Context) error {
	f.normalize++
	sort.SliceStable(f.items, func(i, j int) bool { return f.items[i].SortOrder < f.items[j].SortOrder })
	for i, t := range f.items {
		t.SortOrder = i
	}
	return nil
}

type fakePromotionsRepo struct {
	promotions.Repository
	items     []*models.Promotion
	expired   int64
	expireErr error
	expireAt  time.Time
}

func (f *fakePromotionsRepo) ListOrdered(ctx context.Context, activeOnly bool) ([]*models.Promotion, error) {
	var out []*models.Promotion
	for _, p := range f.items {
		if !activeOnly || p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePromotionsRepo) Get(ctx context.Context, id string) (*models.Promotion, error) {
	for _, p := range f.items {
		if p.ID == id {
			c := *p
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakePromotionsRepo) Create(ctx context.Context, p *models.Promotion) error {
	p.SortOrder = len(f.items)
	c := *p
	f.items = append(f.items, &c)
	return nil
}

func (f *fakePromotionsRepo) Update(ctx context.Context, p *models.Promotion) error {
	for i, cur := range f.items {
		if cur.ID == p.ID {
			c := *p
			f.items[i] = &c
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakePromotionsRepo) SortOrders(ctx context.Context, idA, idB string) (map[string]int, error) {
	out := map[string]int{}
	for _, p := range f.items {
		if p.ID == idA || p.ID == idB {
			out[p.ID] = p.SortOrder
		}
	}
	if len(out) != 2 {
		return nil, common.ErrorNotFound
	}
	return out, nil
}

func (f *fakePromotionsRepo) SetSortOrder(ctx context.Context, id string, order int) error {
	for _, p := range f.items {
		if p.ID == id {
			p.SortOrder = order
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakePromotionsRepo) ExpireEnded(ctx context.Context, now time.Time) (int64, error) {
	f.expireAt = now
	return f.expired, f.expireErr
}

type fakePostsRepo struct {
	posts.Repository
	items []*models.Post
}

func (f *fakePostsRepo) List(ctx context.Context, publishedOnly bool) ([]*models.Post, error) {
	var out []*models.Post
	for _, p := range f.items {
		if !publishedOnly || p.Published {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostsRepo) Get(ctx context.Context, id string) (*models.Post, error) {
	for _, p := range f.items {
		if p.ID == id {
			c := *p
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakePostsRepo) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	for _, p := range f.items {
		if p.Slug == slug {
			c := *p
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakePostsRepo) Create(ctx context.Context, p *models.Post) error {
	c := *p
	f.items = append(f.items, &c)
	return nil
}

func (f *fakePostsRepo) Update(ctx context.Context, p *models.Post) error {
	for i, cur := range f.items {
		if cur.ID == p.ID {
			c := *p
			f.items[i] = &c
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeBookingsRepo struct {
	bookings.Repository
	created   []*models.BookingInquiry
	createErr error
}

func (f *fakeBookingsRepo) Create(ctx context.Context, b *models.BookingInquiry) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, b)
	return nil
}

func (f *fakeBookingsRepo) List(ctx context.Context) ([]*models.BookingInquiry, error) {
	return f.created, nil
}

type fakeRepoManager struct {
	repomanager.RepositoryManager
	t *fakeToursRepo
	p *fakePromotionsRepo
	b *fakePostsRepo
	k *fakeBookingsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		t: &fakeToursRepo{},
		p: &fakePromotionsRepo{},
		b: &fakePostsRepo{},
		k: &fakeBookingsRepo{},
	}
}

func (m *fakeRepoManager) Tours(db dbx.DBTX) tours.Repository           { return m.t }
func (m *fakeRepoManager) Promotions(db dbx.DBTX) promotions.Repository { return m.p }
func (m *fakeRepoManager) Posts(db dbx.DBTX) posts.Repository           { return m.b }
func (m *fakeRepoManager) Bookings(db dbx.DBTX) bookings.Repository     { return m.k }

// -------- helpers --------

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.DefaultPageSize = 2
	c.MaxPageSize = 5
	return c
}

func newTourService(t *testing.T, db *sql.DB, m *fakeRepoManager) *TourService {
	t.Helper()
	s := NewTourService(db, m, testConfig(), logging.Nop())
	s.now = func() time.Time { return fixedNow }
	return s
}
