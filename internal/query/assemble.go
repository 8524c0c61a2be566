package query

import (
	"github.com/roach88/consulta/internal/filter"
	"github.com/roach88/consulta/internal/queryir"
	"github.com/roach88/consulta/internal/schema"
)

// DefaultLimit is the row limit used when a request does not set one.
const DefaultLimit = 25

// Request is the caller-facing shape of a filtered query.
//
//	{
//	  "filtros":   [...],                 // see package filter
//	  "ordenacao": ["nome ASC", "id DESC"],
//	  "colunas":   ["id", "nome"],
//	  "limite":    25
//	}
//
// Filtros is normalized while decoding, so a decoded Request already holds
// a canonical tree.
type Request struct {
	Filtros   filter.Group `json:"filtros,omitempty" yaml:"filtros,omitempty"`
	Ordenacao []string     `json:"ordenacao,omitempty" yaml:"ordenacao,omitempty"`
	Colunas   []string     `json:"colunas,omitempty" yaml:"colunas,omitempty"`
	Limite    *int         `json:"limite,omitempty" yaml:"limite,omitempty"`
}

// Limit returns the requested limit, or DefaultLimit when unset.
func (r Request) Limit() int {
	if r.Limite == nil {
		return DefaultLimit
	}
	return *r.Limite
}

// WithLimit returns a copy of the request with the limit set.
func (r Request) WithLimit(n int) Request {
	r.Limite = &n
	return r
}

// Assemble combines the compiled parts into one query. It performs no
// validation of its own; limit is passed through verbatim.
func Assemble(table string, pred queryir.Predicate, sorts []queryir.Sort, projection []string, limit int) queryir.Select {
	return queryir.Select{
		From:    table,
		Columns: projection,
		Filter:  pred,
		OrderBy: sorts,
		Limit:   limit,
	}
}

// Build runs the whole pipeline for one request against cols: compile the
// filter tree, validate sorts and projection, and assemble the query.
func Build(req Request, cols schema.Columns) (queryir.Select, error) {
	pred, err := Compile(req.Filtros, cols)
	if err != nil {
		return queryir.Select{}, err
	}

	return Assemble(
		cols.Table(),
		pred,
		ParseSorts(req.Ordenacao, cols),
		Project(req.Colunas, cols),
		req.Limit(),
	), nil
}
