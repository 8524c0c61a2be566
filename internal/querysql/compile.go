package querysql

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/consulta/internal/ir"
	"github.com/roach88/consulta/internal/queryir"
	"github.com/roach88/consulta/internal/schema"
)

// SQLCompiler compiles a queryir.Select to parameterized SQL for SQLite.
//
// CRITICAL: Values are never interpolated. Every value, including the limit,
// travels as a ? parameter. Identifiers are double-quoted and must belong to
// the compiler's column set.
type SQLCompiler struct {
	cols schema.Columns
}

// NewSQLCompiler creates a compiler for queries against cols.
func NewSQLCompiler(cols schema.Columns) *SQLCompiler {
	return &SQLCompiler{cols: cols}
}

// Compile converts sel to SQL. Returns (sql, params, error).
//
// An empty projection selects every column of the schema, listed explicitly.
// ORDER BY is emitted only when sel carries sorts; without it the store's
// natural order applies.
func (c *SQLCompiler) Compile(sel queryir.Select) (string, []any, error) {
	if c.cols == nil {
		return "", nil, fmt.Errorf("compiler has no column set")
	}
	if err := queryir.Validate(sel); err != nil {
		return "", nil, err
	}
	if sel.From != c.cols.Table() {
		return "", nil, fmt.Errorf("query targets %q, compiler is bound to %q", sel.From, c.cols.Table())
	}

	columns := sel.Columns
	if len(columns) == 0 {
		columns = c.cols.Names()
	}
	selectList, err := c.identifiers(columns)
	if err != nil {
		return "", nil, fmt.Errorf("compile projection: %w", err)
	}

	var b strings.Builder
	var params []any

	b.WriteString("SELECT ")
	b.WriteString(strings.Join(selectList, ", "))
	b.WriteString(" FROM ")
	b.WriteString(quoteIdent(sel.From))

	if sel.Filter != nil {
		where, whereParams, err := c.compilePredicate(sel.Filter)
		if err != nil {
			return "", nil, fmt.Errorf("compile filter: %w", err)
		}
		b.WriteString(" WHERE ")
		b.WriteString(where)
		params = append(params, whereParams...)
	}

	if len(sel.OrderBy) > 0 {
		orderBy, err := c.compileOrderBy(sel.OrderBy)
		if err != nil {
			return "", nil, fmt.Errorf("compile order: %w", err)
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(orderBy)
	}

	b.WriteString(" LIMIT ?")
	params = append(params, sel.Limit)

	return b.String(), params, nil
}

// Explain renders compiled SQL and its parameters for humans and golden
// files: the statement on one line, the JSON-encoded parameters on the next.
func Explain(sql string, params []any) string {
	if params == nil {
		params = []any{}
	}
	encoded, err := json.Marshal(params)
	if err != nil {
		encoded = []byte(fmt.Sprintf("%v", params))
	}
	return sql + "\n-- params: " + string(encoded) + "\n"
}

func (c *SQLCompiler) identifiers(names []string) ([]string, error) {
	out := make([]string, len(names))
	for i, name := range names {
		id, err := c.column(name)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}

// column quotes name after checking it belongs to the schema.
func (c *SQLCompiler) column(name string) (string, error) {
	if !c.cols.Has(name) {
		return "", fmt.Errorf("unknown column %q on %s", name, c.cols.Table())
	}
	return quoteIdent(name), nil
}

func (c *SQLCompiler) compileOrderBy(sorts []queryir.Sort) (string, error) {
	parts := make([]string, len(sorts))
	for i, s := range sorts {
		id, err := c.column(s.Column)
		if err != nil {
			return "", err
		}
		parts[i] = id + " " + string(s.Direction)
	}
	return strings.Join(parts, ", "), nil
}

// compilePredicate compiles a predicate to a WHERE fragment.
// Returns (sql, params, error).
func (c *SQLCompiler) compilePredicate(p queryir.Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case queryir.Compare:
		return c.compileCompare(pred)
	case queryir.Like:
		return c.compileLike(pred)
	case queryir.In:
		return c.compileIn(pred)
	case queryir.And:
		return c.compileConnective(pred.Predicates, " AND ", "1 = 1")
	case queryir.Or:
		return c.compileConnective(pred.Predicates, " OR ", "0 = 1")
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

// compileConnective joins the compiled children with sep. Compound children
// are parenthesized; an empty connective renders as its identity.
func (c *SQLCompiler) compileConnective(preds []queryir.Predicate, sep, empty string) (string, []any, error) {
	if len(preds) == 0 {
		return empty, nil, nil
	}

	parts := make([]string, 0, len(preds))
	var params []any
	for _, pred := range preds {
		sql, ps, err := c.compilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		if isCompound(pred) {
			sql = "(" + sql + ")"
		}
		parts = append(parts, sql)
		params = append(params, ps...)
	}
	return strings.Join(parts, sep), params, nil
}

func isCompound(p queryir.Predicate) bool {
	switch pred := p.(type) {
	case queryir.And:
		return len(pred.Predicates) > 1
	case queryir.Or:
		return len(pred.Predicates) > 1
	}
	return false
}

func (c *SQLCompiler) compileCompare(cmp queryir.Compare) (string, []any, error) {
	id, err := c.column(cmp.Field)
	if err != nil {
		return "", nil, err
	}

	if _, isNull := cmp.Value.(ir.Null); isNull || cmp.Value == nil {
		switch cmp.Op {
		case queryir.OpEq:
			return id + " IS NULL", nil, nil
		case queryir.OpNe:
			return id + " IS NOT NULL", nil, nil
		}
	}

	param, err := ir.ToParam(cmp.Value)
	if err != nil {
		return "", nil, fmt.Errorf("column %s: %w", cmp.Field, err)
	}
	return fmt.Sprintf("%s %s ?", id, cmp.Op), []any{param}, nil
}

// compileLike renders LIKE. Case folding lowers both sides, since SQLite has
// no ILIKE; the store turns on case_sensitive_like so plain LIKE is exact.
func (c *SQLCompiler) compileLike(like queryir.Like) (string, []any, error) {
	id, err := c.column(like.Field)
	if err != nil {
		return "", nil, err
	}
	if like.Fold {
		return fmt.Sprintf("lower(%s) LIKE lower(?)", id), []any{like.Pattern}, nil
	}
	return id + " LIKE ?", []any{like.Pattern}, nil
}

func (c *SQLCompiler) compileIn(in queryir.In) (string, []any, error) {
	id, err := c.column(in.Field)
	if err != nil {
		return "", nil, err
	}
	if len(in.Values) == 0 {
		return "0 = 1", nil, nil
	}

	params := make([]any, len(in.Values))
	for i, v := range in.Values {
		p, err := ir.ToParam(v)
		if err != nil {
			return "", nil, fmt.Errorf("column %s: %w", in.Field, err)
		}
		params[i] = p
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(params)), ", ")
	return fmt.Sprintf("%s IN (%s)", id, placeholders), params, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
