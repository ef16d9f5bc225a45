package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/toursite/internal/client/client"
	"github.com/dmitrijs2005/toursite/internal/client/config"
	"github.com/dmitrijs2005/toursite/internal/locale"
	"github.com/dmitrijs2005/toursite/internal/models"
)

var errBoom = errors.New("boom")

// fakeAPI is an in-memory admin API. Swaps exchange the two items in place.
type fakeAPI struct {
	mu sync.Mutex

	tours    []*models.Tour
	promos   []*models.Promotion
	posts    []*models.Post
	bookings []*models.BookingInquiry

	swapErr  error
	loadErr  error
	swapGate chan struct{}

	swaps      [][2]string
	deleted    []string
	postQuery  models.ListQuery
	created    *models.Tour
	createdPst *models.Post
}

func (f *fakeAPI) Tours(ctx context.Context) ([]*models.Tour, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make([]*models.Tour, len(f.tours))
	copy(out, f.tours)
	return out, nil
}

func (f *fakeAPI) CreateTour(ctx context.Context, t *models.Tour) (*models.Tour, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	cp.ID, cp.Slug = "new", "new-tour"
	f.created = &cp
	f.tours = append(f.tours, &cp)
	return &cp, nil
}

func (f *fakeAPI) DeleteTour(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	for i, t := range f.tours {
		if t.ID == id {
			f.tours = append(f.tours[:i], f.tours[i+1:]...)
			return nil
		}
	}
	return client.ErrNotFound
}

func (f *fakeAPI) SwapTours(ctx context.Context, idA, idB string) error {
	if f.swapGate != nil {
		<-f.swapGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.swaps = append(f.swaps, [2]string{idA, idB})
	if f.swapErr != nil {
		return f.swapErr
	}
	swapByID(f.tours, idA, idB)
	return nil
}

func (f *fakeAPI) Promotions(ctx context.Context) ([]*models.Promotion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make([]*models.Promotion, len(f.promos))
	copy(out, f.promos)
	return out, nil
}

func (f *fakeAPI) DeletePromotion(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) SwapPromotions(ctx context.Context, idA, idB string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.swaps = append(f.swaps, [2]string{idA, idB})
	if f.swapErr != nil {
		return f.swapErr
	}
	swapByID(f.promos, idA, idB)
	return nil
}

func (f *fakeAPI) Posts(ctx context.Context, q models.ListQuery) (models.Page[*models.Post], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.postQuery = q
	var match []*models.Post
	for _, p := range f.posts {
		if p.Title.Contains(q.Search) {
			match = append(match, p)
		}
	}
	return models.Paginate(match, q.Clamp(2, 10)), nil
}

func (f *fakeAPI) CreatePost(ctx context.Context, p *models.Post) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	cp.ID, cp.Slug = "np", "new-post"
	f.createdPst = &cp
	return &cp, nil
}

func (f *fakeAPI) DeletePost(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) Bookings(ctx context.Context) ([]*models.BookingInquiry, error) {
	return f.bookings, nil
}

func swapByID[T interface{ ItemID() string }](items []T, idA, idB string) {
	ia, ib := -1, -1
	for i, it := range items {
		switch it.ItemID() {
		case idA:
			ia = i
		case idB:
			ib = i
		}
	}
	if ia >= 0 && ib >= 0 {
		items[ia], items[ib] = items[ib], items[ia]
	}
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func sampleAPI() *fakeAPI {
	return &fakeAPI{
		tours: []*models.Tour{
			{ID: "t1", Name: locale.LocalizedText{Primary: "Bromo", Secondary: "Bromo ID", Tertiary: "Бромо"},
				Summary: locale.LocalizedText{Primary: "s", Secondary: "s", Tertiary: "s"},
				Description: locale.LocalizedText{Primary: "d", Secondary: "d", Tertiary: "d"},
				Price: models.Price{Amount: 1500000, Currency: "IDR"}, DurationDays: 2, Published: true},
			{ID: "t2", Name: locale.Text("Ijen"), Summary: locale.Text("s"), Description: locale.Text("d"),
				Price: models.Price{Amount: 99.5, Currency: "USD"}, DurationDays: 1},
			{ID: "t3", Name: locale.Text("Rinjani"), Summary: locale.Text("s"), Description: locale.Text("d"),
				Price: models.Price{Amount: 300, Currency: "USD"}, DurationDays: 3, Published: true},
		},
		promos: []*models.Promotion{
			{ID: "p1", Title: locale.Text("Early bird"), DiscountPercent: 10, Active: true,
				StartsAt: fixedNow.Add(-time.Hour), EndsAt: fixedNow.Add(26*time.Hour + 3*time.Minute)},
			{ID: "p2", Title: locale.Text("Last minute"), DiscountPercent: 25, Active: true,
				StartsAt: fixedNow.Add(-time.Hour), EndsAt: fixedNow.Add(-time.Minute)},
		},
		posts: []*models.Post{
			{ID: "a1", Title: locale.Text("Volcano guide")},
			{ID: "a2", Title: locale.Text("Beach guide")},
			{ID: "a3", Title: locale.Text("Volcano safety")},
		},
	}
}

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, api *fakeAPI, input string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cfg := &config.Config{Language: "en", RequestTimeout: time.Second}
	a := newApp(api, fakePinger{}, cfg, nil, strings.NewReader(input), &out)
	a.now = func() time.Time { return fixedNow }
	t.Cleanup(a.shutdown)
	return a, &out
}
