package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/consulta/internal/query"
	"github.com/roach88/consulta/internal/queryir"
	"github.com/roach88/consulta/internal/querysql"
	"github.com/roach88/consulta/internal/schema"
	"github.com/roach88/consulta/internal/store"
)

// Run builds the query described by req against d and executes it.
//
// Compilation errors (unknown operator, invalid filter value) are returned
// before anything reaches the store.
func Run[T any](ctx context.Context, q store.Querier, d *schema.Descriptor[T], req query.Request) ([]T, error) {
	sel, err := query.Build(req, d)
	if err != nil {
		return nil, err
	}
	return Find(ctx, q, d, sel)
}

// Find executes sel and returns one T per row, in store order.
//
// Returns an empty slice (not nil) when nothing matches.
func Find[T any](ctx context.Context, q store.Querier, d *schema.Descriptor[T], sel queryir.Select) ([]T, error) {
	sqlStr, params, err := querysql.NewSQLCompiler(d).Compile(sel)
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}

	columns := sel.Columns
	if len(columns) == 0 {
		columns = d.Names()
	}

	rows, err := q.Query(ctx, sqlStr, params...)
	if err != nil {
		return nil, query.NewStoreError(d.Table(), err)
	}
	defer rows.Close()

	results := []T{}
	for rows.Next() {
		var entity T
		targets, err := d.Targets(&entity, columns)
		if err != nil {
			return nil, fmt.Errorf("hydrate %s: %w", d.Table(), err)
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, query.NewStoreError(d.Table(), fmt.Errorf("scan row: %w", err))
		}
		results = append(results, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, query.NewStoreError(d.Table(), fmt.Errorf("rows iteration: %w", err))
	}

	slog.Debug("query executed",
		"table", d.Table(),
		"sql", sqlStr,
		"params", len(params),
		"rows", len(results))

	return results, nil
}
