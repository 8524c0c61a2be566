package query

import (
	"strings"

	"github.com/roach88/consulta/internal/queryir"
	"github.com/roach88/consulta/internal/schema"
)

// ParseSorts parses "<column> [ASC|DESC]" directives.
//
// The first whitespace-separated token is the column and the optional second
// token the direction: "desc" in any case selects DESC, anything else (or
// nothing) ASC. Directives naming unknown columns, and blank directives, are
// dropped. Surviving directives keep their input order, which is the
// tie-break order applied by the store.
func ParseSorts(directives []string, cols schema.Columns) []queryir.Sort {
	sorts := make([]queryir.Sort, 0, len(directives))
	for _, d := range directives {
		parts := strings.Fields(d)
		if len(parts) == 0 {
			continue
		}
		column := parts[0]
		if !cols.Has(column) {
			continue
		}
		dir := queryir.Asc
		if len(parts) > 1 && strings.EqualFold(parts[1], "desc") {
			dir = queryir.Desc
		}
		sorts = append(sorts, queryir.Sort{Column: column, Direction: dir})
	}
	return sorts
}

// Project keeps the requested columns that exist, in request order, without
// duplicates. It returns nil when nothing survives, which means the entity
// is loaded with every column rather than with none.
func Project(requested []string, cols schema.Columns) []string {
	var out []string
	seen := make(map[string]bool, len(requested))
	for _, c := range requested {
		if seen[c] || !cols.Has(c) {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
