package service

import (
	"context"
	"errors"

	"github.com/roach88/consulta/internal/engine"
	"github.com/roach88/consulta/internal/metrics"
	"github.com/roach88/consulta/internal/query"
	"github.com/roach88/consulta/internal/schema"
	"github.com/roach88/consulta/internal/store"
)

// consultar runs a filtered query and records its outcome.
func consultar[T any](ctx context.Context, q store.Querier, d *schema.Descriptor[T], req query.Request) ([]T, error) {
	rows, err := engine.Run(ctx, q, d, req)
	metrics.QueriesTotal.WithLabelValues(d.Table(), outcome(err)).Inc()
	if err != nil {
		return nil, err
	}
	metrics.QueryRows.WithLabelValues(d.Table()).Observe(float64(len(rows)))
	return rows, nil
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var qe *query.Error
	if errors.As(err, &qe) {
		return string(qe.Code)
	}
	return "error"
}
