package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/toursite/internal/locale"
	"github.com/dmitrijs2005/toursite/internal/reorder"
)

// Move moves an item of a reorderable list. Positions are 1-based as shown
// by List. The new order is printed immediately; the outcome is reported
// when the server confirms it.
func (a *App) Move(ctx context.Context, kind string, from, to int) error {
	var (
		m   *reorder.Move
		err error
	)
	switch kind {
	case kindTours:
		m, err = a.tours.RequestMove(ctx, from-1, to-1)
	case kindPromos:
		m, err = a.promos.RequestMove(ctx, from-1, to-1)
	default:
		a.say("Only tours and promos can be reordered")
		return errUnknownList
	}

	switch {
	case errors.Is(err, reorder.ErrMoveInFlight):
		a.msg(locale.MsgReorderBusy)
		return err
	case errors.Is(err, reorder.ErrInvalidIndex):
		a.say("No such position")
		return err
	case err != nil:
		a.say("Error:", err)
		return err
	case m == nil:
		a.msg(locale.MsgNothingToMove)
		return nil
	}

	return a.List(ctx, kind)
}
