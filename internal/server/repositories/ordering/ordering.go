// Package ordering implements the sort_order bookkeeping shared by every
// manually ordered content table.
package ordering

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/toursite/internal/common"
	"github.com/dmitrijs2005/toursite/internal/dbx"
)

// Positions reads and writes the sort_order column of one table. The table
// name is trusted and never comes from user input.
type Positions struct {
	db    dbx.DBTX
	table string
}

func New(db dbx.DBTX, table string) Positions {
	return Positions{db: db, table: table}
}

// NextExpr is a subquery yielding the position after the current last item.
func NextExpr(table string) string {
	return fmt.Sprintf("(SELECT COALESCE(MAX(sort_order), -1) + 1 FROM %s)", table)
}

// Of returns the positions of idA and idB. A missing id yields
// common.ErrorNotFound.
func (p Positions) Of(ctx context.Context, idA, idB string) (map[string]int, error) {
	query := fmt.Sprintf(`SELECT id, sort_order FROM %s WHERE id IN ($1, $2)`, p.table)
	rows, err := p.db.QueryContext(ctx, query, idA, idB)
	if err != nil {
		return nil, fmt.Errorf("failed to select sort orders: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int, 2)
	for rows.Next() {
		var id string
		var pos int
		if err := rows.Scan(&id, &pos); err != nil {
			return nil, err
		}
		out[id] = pos
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, id := range []string{idA, idB} {
		if _, ok := out[id]; !ok {
			return nil, fmt.Errorf("%s %s: %w", p.table, id, common.ErrorNotFound)
		}
	}
	return out, nil
}

// Set writes the position of id.
func (p Positions) Set(ctx context.Context, id string, pos int) error {
	query := fmt.Sprintf(`UPDATE %s SET sort_order = $1 WHERE id = $2`, p.table)
	res, err := p.db.ExecContext(ctx, query, pos, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", p.table, id, common.ErrorNotFound)
	}
	return nil
}

// Normalize renumbers the table 0..n-1 keeping the current order. Ties are
// broken by creation time and then id, so the result is deterministic.
func (p Positions) Normalize(ctx context.Context) error {
	query := fmt.Sprintf(`SELECT id FROM %s ORDER BY sort_order, created_at, id`, p.table)
	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to select ids: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for i, id := range ids {
		if err := p.Set(ctx, id, i); err != nil {
			return err
		}
	}
	return nil
}
