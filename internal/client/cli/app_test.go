package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/toursite/internal/models"
	"github.com/dmitrijs2005/toursite/internal/reorder"
)

func tourIDs(items []*models.Tour) []string {
	ids := make([]string, len(items))
	for i, t := range items {
		ids[i] = t.ID
	}
	return ids
}

func TestList_Tours(t *testing.T) {
	a, out := newTestApp(t, sampleAPI(), "")
	require.NoError(t, a.Reload(context.Background()))

	require.NoError(t, a.List(context.Background(), kindTours))
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, " 1. Bromo  IDR 1,500,000  2d", lines[0])
	assert.Equal(t, " 2. Ijen  USD 99.5  1d  [draft]  (Missing translations: id, ru)", lines[1])
}

func TestList_ToursInRussianFallsBack(t *testing.T) {
	a, out := newTestApp(t, sampleAPI(), "")
	require.NoError(t, a.Reload(context.Background()))
	require.NoError(t, a.SetLanguage("ru"))
	out.Reset()

	require.NoError(t, a.List(context.Background(), kindTours))
	assert.Contains(t, out.String(), "Бромо")
	assert.Contains(t, out.String(), " 3. Rinjani")
	assert.Contains(t, out.String(), "Нет переводов: id, ru")
}

func TestList_Promotions(t *testing.T) {
	a, out := newTestApp(t, sampleAPI(), "")
	require.NoError(t, a.Reload(context.Background()))

	require.NoError(t, a.List(context.Background(), kindPromos))
	assert.Contains(t, out.String(), " 1. Early bird  -10%  Ends in 1d 02h 03m 00s")
	assert.Contains(t, out.String(), " 2. Last minute  -25%  Promotion has ended.")
}

func TestList_PostsNavigation(t *testing.T) {
	api := sampleAPI()
	a, out := newTestApp(t, api, "")
	ctx := context.Background()

	require.NoError(t, a.List(ctx, kindPosts))
	assert.Contains(t, out.String(), "page 1/2, 3 post(s)")

	require.NoError(t, a.SetPage(2))
	out.Reset()
	require.NoError(t, a.List(ctx, kindPosts))
	assert.Contains(t, out.String(), " 1. Volcano safety")
	assert.Equal(t, 2, api.postQuery.Page)

	a.SetFilter("  volcano ")
	out.Reset()
	require.NoError(t, a.List(ctx, kindPosts))
	assert.Equal(t, models.ListQuery{Page: 1, Search: "volcano"}, api.postQuery)
	assert.Contains(t, out.String(), `page 1/1, 2 post(s), filter "volcano"`)

	assert.Error(t, a.SetPage(0))
}

func TestList_Unknown(t *testing.T) {
	a, out := newTestApp(t, sampleAPI(), "")
	assert.ErrorIs(t, a.List(context.Background(), "users"), errUnknownList)
	assert.Contains(t, out.String(), "Unknown list: users")
}

func TestMove_SavedAndReloaded(t *testing.T) {
	api := sampleAPI()
	a, out := newTestApp(t, api, "")
	require.NoError(t, a.Reload(context.Background()))

	require.NoError(t, a.Move(context.Background(), kindTours, 3, 1))
	// optimistic order is printed before the server answers
	assert.Contains(t, out.String(), " 1. Rinjani")

	a.tours.Wait()
	assert.Equal(t, [][2]string{{"t3", "t1"}}, api.swaps)
	// the server swapped the two items, so the reload wins over the splice
	assert.Equal(t, []string{"t3", "t2", "t1"}, tourIDs(a.tours.Items()))
	assert.Contains(t, out.String(), "Order saved.")
}

func TestMove_SwapFailureReportsInSessionLanguage(t *testing.T) {
	api := sampleAPI()
	api.swapErr = errBoom
	a, out := newTestApp(t, api, "")
	require.NoError(t, a.Reload(context.Background()))
	require.NoError(t, a.SetLanguage("id"))

	require.NoError(t, a.Move(context.Background(), kindPromos, 1, 2))
	a.promos.Wait()

	assert.Contains(t, out.String(), "Gagal memperbarui urutan, silakan coba lagi.")
	assert.NotContains(t, out.String(), "Urutan disimpan.")
	assert.Equal(t, "p1", a.promos.Items()[0].ID)
}

func TestMove_BusyWhileInFlight(t *testing.T) {
	api := sampleAPI()
	api.swapGate = make(chan struct{})
	a, out := newTestApp(t, api, "")
	require.NoError(t, a.Reload(context.Background()))

	require.NoError(t, a.Move(context.Background(), kindTours, 1, 2))
	assert.Contains(t, a.status(), "saving")

	err := a.Move(context.Background(), kindTours, 2, 3)
	assert.ErrorIs(t, err, reorder.ErrMoveInFlight)
	assert.Contains(t, out.String(), "Another reorder is still in progress.")

	close(api.swapGate)
	a.tours.Wait()
	assert.Len(t, api.swaps, 1)
	assert.Equal(t, "en", a.status())
}

func TestMove_NoopAndInvalid(t *testing.T) {
	api := sampleAPI()
	a, out := newTestApp(t, api, "")
	require.NoError(t, a.Reload(context.Background()))

	require.NoError(t, a.Move(context.Background(), kindTours, 2, 2))
	assert.Contains(t, out.String(), "Item is already at that position.")

	assert.ErrorIs(t, a.Move(context.Background(), kindTours, 0, 2), reorder.ErrInvalidIndex)
	assert.Contains(t, out.String(), "No such position")

	assert.ErrorIs(t, a.Move(context.Background(), kindPosts, 1, 2), errUnknownList)
	assert.Empty(t, api.swaps)
}

func TestShow_TourWithFallback(t *testing.T) {
	api := sampleAPI()
	a, out := newTestApp(t, api, "")
	require.NoError(t, a.Reload(context.Background()))
	require.NoError(t, a.SetLanguage("ru"))
	out.Reset()

	require.NoError(t, a.Show(context.Background(), kindTours, 2))
	assert.Contains(t, out.String(), "Ijen\n")
	assert.Contains(t, out.String(), "price: USD 99.5")
	assert.Contains(t, out.String(), "(no ru translation, showing en)")

	out.Reset()
	require.NoError(t, a.Show(context.Background(), kindTours, 1))
	assert.Contains(t, out.String(), "Бромо")
	assert.NotContains(t, out.String(), "translation")

	assert.Error(t, a.Show(context.Background(), kindTours, 9))
}

func TestShow_PromotionAndPost(t *testing.T) {
	api := sampleAPI()
	a, out := newTestApp(t, api, "")
	ctx := context.Background()
	require.NoError(t, a.Reload(ctx))

	require.NoError(t, a.Show(ctx, kindPromos, 1))
	assert.Contains(t, out.String(), "Early bird  -10%")

	// posts are addressed within the last listed page
	assert.Error(t, a.Show(ctx, kindPosts, 1))
	require.NoError(t, a.List(ctx, kindPosts))
	out.Reset()
	require.NoError(t, a.Show(ctx, kindPosts, 2))
	assert.Contains(t, out.String(), "Beach guide")
}

func TestDelete_Confirmed(t *testing.T) {
	api := sampleAPI()
	a, out := newTestApp(t, api, "y\n")
	require.NoError(t, a.Reload(context.Background()))

	require.NoError(t, a.Delete(context.Background(), kindTours, 2))
	assert.Equal(t, []string{"t2"}, api.deleted)
	assert.Equal(t, []string{"t1", "t3"}, tourIDs(a.tours.Items()))
	assert.Contains(t, out.String(), `Delete "Ijen"?`)
}

func TestDelete_Cancelled(t *testing.T) {
	api := sampleAPI()
	a, out := newTestApp(t, api, "n\n")
	require.NoError(t, a.Reload(context.Background()))

	require.NoError(t, a.Delete(context.Background(), kindPromos, 1))
	assert.Empty(t, api.deleted)
	assert.Contains(t, out.String(), "Cancelled")
}

func TestAddTour(t *testing.T) {
	api := sampleAPI()
	input := strings.Join([]string{
		"Bali Highlights", "Sorotan Bali", "",
		"Temples and rice terraces", "", "",
		"Four days in Ubud", "", // description en, then empty line ends it
		"", // id skipped
		"", // ru skipped
		"4,500", "usd", "4", "y",
	}, "\n") + "\n"
	a, out := newTestApp(t, api, input)
	require.NoError(t, a.Reload(context.Background()))

	require.NoError(t, a.AddTour(context.Background()))
	require.NotNil(t, api.created)
	assert.Equal(t, "Bali Highlights", api.created.Name.Primary)
	assert.Equal(t, "Sorotan Bali", api.created.Name.Secondary)
	assert.Empty(t, api.created.Name.Tertiary)
	assert.Equal(t, "Four days in Ubud", api.created.Description.Primary)
	assert.Equal(t, models.Price{Amount: 4500, Currency: "USD"}, api.created.Price)
	assert.Equal(t, 4, api.created.DurationDays)
	assert.True(t, api.created.Published)

	assert.Contains(t, out.String(), "Created tour Bali Highlights (new-tour)")
	assert.Equal(t, "new", a.tours.Items()[3].ID)
}

func TestAddTour_RequiresEnglish(t *testing.T) {
	api := sampleAPI()
	a, out := newTestApp(t, api, "\n")

	assert.Error(t, a.AddTour(context.Background()))
	assert.Nil(t, api.created)
	assert.Contains(t, out.String(), "Name is required in en")
}

func TestAddPost(t *testing.T) {
	api := sampleAPI()
	input := strings.Join([]string{
		"Packing list", "", "Daftar", // title: en, id skipped, ru
		"What to bring", "", "",
		"Line one", "Line two", "", "", "",
		"n",
	}, "\n") + "\n"
	a, _ := newTestApp(t, api, input)

	require.NoError(t, a.AddPost(context.Background()))
	require.NotNil(t, api.createdPst)
	assert.Equal(t, "Daftar", api.createdPst.Title.Tertiary)
	assert.Equal(t, "Line one\nLine two", api.createdPst.Body.Primary)
	assert.False(t, api.createdPst.Published)
}

func TestPing(t *testing.T) {
	a, out := newTestApp(t, sampleAPI(), "")
	require.NoError(t, a.Ping(context.Background()))
	assert.Contains(t, out.String(), "Server OK")

	a.health = fakePinger{err: errBoom}
	assert.ErrorIs(t, a.Ping(context.Background()), errBoom)
	assert.Contains(t, out.String(), "Server unavailable: boom")
}

func TestSetLanguage_Unsupported(t *testing.T) {
	a, out := newTestApp(t, sampleAPI(), "")
	assert.Error(t, a.SetLanguage("de"))
	assert.Contains(t, out.String(), "use one of: en, id, ru")
	assert.Equal(t, "en", a.status())
}

func TestRun_ScriptedSession(t *testing.T) {
	orig, origPrint := isTerminal, printlnFn
	isTerminal = func(int) bool { return false }
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { isTerminal, printlnFn = orig, origPrint })

	api := sampleAPI()
	a, out := newTestApp(t, api, "tours\nmove tours 1 3\nexit\n")
	a.Run(context.Background())

	assert.Contains(t, out.String(), "Server OK")
	assert.Contains(t, out.String(), " 1. Bromo")
	assert.Equal(t, [][2]string{{"t1", "t3"}}, api.swaps)
}
