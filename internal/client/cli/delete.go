package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/toursite/internal/reorder"
)

// Delete removes the n-th item (1-based) of a list after confirmation and
// reloads the list.
func (a *App) Delete(ctx context.Context, kind string, n int) error {
	var (
		id, title string
		del       func(context.Context, string) error
	)
	lang := a.language()

	switch kind {
	case kindTours:
		items := a.tours.Items()
		if n < 1 || n > len(items) {
			return a.noSuchItem(n)
		}
		id, title, del = items[n-1].ID, items[n-1].Name.In(lang), a.api.DeleteTour
	case kindPromos:
		items := a.promos.Items()
		if n < 1 || n > len(items) {
			return a.noSuchItem(n)
		}
		id, title, del = items[n-1].ID, items[n-1].Title.In(lang), a.api.DeletePromotion
	case kindPosts:
		a.mu.Lock()
		items := a.page.Items
		a.mu.Unlock()
		if n < 1 || n > len(items) {
			return a.noSuchItem(n)
		}
		id, title, del = items[n-1].ID, items[n-1].Title.In(lang), a.api.DeletePost
	default:
		a.say("Unknown list:", kind)
		return errUnknownList
	}

	answer, err := a.ask("Delete \"" + title + "\"? (y/N)")
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		a.say("Cancelled")
		return nil
	}

	if err := del(ctx, id); err != nil {
		a.say("Error:", err)
		return err
	}
	a.say("Deleted")

	switch kind {
	case kindTours:
		err = a.tours.Load(ctx)
	case kindPromos:
		err = a.promos.Load(ctx)
	default:
		err = a.loadPosts(ctx)
	}
	// a move in flight reloads the list when it settles
	if errors.Is(err, reorder.ErrMoveInFlight) {
		return nil
	}
	return err
}
