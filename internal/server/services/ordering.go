package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/toursite/internal/common"
)

// positioner is the sort-order part of a manually ordered repository.
type positioner interface {
	SortOrders(ctx context.Context, idA, idB string) (map[string]int, error)
	SetSortOrder(ctx context.Context, id string, order int) error
	Normalize(ctx context.Context) error
}

// swapPositions exchanges the positions of idA and idB. When both items
// share a position (legacy rows, concurrent inserts) the table is renumbered
// first so the exchange has an effect. Must run inside a transaction.
func swapPositions(ctx context.Context, repo positioner, idA, idB string) error {
	if idA == idB {
		return fmt.Errorf("%w: %w", common.ErrorValidation, common.ErrorSameItem)
	}
	pos, err := repo.SortOrders(ctx, idA, idB)
	if err != nil {
		return err
	}
	if pos[idA] == pos[idB] {
		if err := repo.Normalize(ctx); err != nil {
			return err
		}
		if pos, err = repo.SortOrders(ctx, idA, idB); err != nil {
			return err
		}
	}
	if err := repo.SetSortOrder(ctx, idA, pos[idB]); err != nil {
		return err
	}
	return repo.SetSortOrder(ctx, idB, pos[idA])
}
