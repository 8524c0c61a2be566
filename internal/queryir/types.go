package queryir

import "github.com/roach88/consulta/internal/ir"

// Predicate represents a boolean condition over one row.
//
// This is a sealed interface - only types in this package implement it.
//
// Predicate types:
//   - Compare: field <op> literal
//   - Like: field matches a pattern, optionally case-insensitive
//   - In: field is one of a list of literals
//   - And: all predicates must be true
//   - Or: at least one predicate must be true
type Predicate interface {
	predicateNode() // Marker method - seals interface to this package
}

// CompareOp is a binary comparison operator.
type CompareOp string

const (
	OpEq  CompareOp = "="
	OpNe  CompareOp = "!="
	OpGt  CompareOp = ">"
	OpLt  CompareOp = "<"
	OpGte CompareOp = ">="
	OpLte CompareOp = "<="
)

// Valid reports whether op is one of the declared comparison operators.
func (op CompareOp) Valid() bool {
	switch op {
	case OpEq, OpNe, OpGt, OpLt, OpGte, OpLte:
		return true
	}
	return false
}

// Compare represents a field-versus-literal comparison.
//
// Semantics:
//
//	<field> <op> <value>
//
// Comparing with Null follows SQL null semantics: OpEq means IS NULL and
// OpNe means IS NOT NULL; any other operator never matches.
type Compare struct {
	Field string
	Op    CompareOp
	Value ir.Value
}

func (Compare) predicateNode() {}

// Like represents a pattern match.
//
// Pattern uses SQL LIKE wildcards (% and _). Fold selects a
// case-insensitive match.
type Like struct {
	Field   string
	Pattern string
	Fold    bool
}

func (Like) predicateNode() {}

// In represents a membership test.
//
// An empty Values list matches no row.
type In struct {
	Field  string
	Values ir.Array
}

func (In) predicateNode() {}

// And represents a conjunction of predicates (all must be true).
//
// Empty Predicates means "always true".
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// Or represents a disjunction of predicates (at least one must be true).
//
// Empty Predicates means "never true".
type Or struct {
	Predicates []Predicate
}

func (Or) predicateNode() {}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Sort orders results by one column.
type Sort struct {
	Column    string
	Direction Direction
}

// Select is a fully assembled query: the unit handed to a backend.
//
// Semantics:
//
//	SELECT <columns> FROM <from> WHERE <filter> ORDER BY <order_by> LIMIT <limit>
//
// Example:
//
//	Select{
//	  From:    "usuarios",
//	  Columns: []string{"id", "nome"},
//	  Filter: Or{Predicates: []Predicate{
//	    Compare{Field: "idade", Op: OpGte, Value: ir.Int(18)},
//	  }},
//	  OrderBy: []Sort{{Column: "nome", Direction: Asc}},
//	  Limit:   25,
//	}
type Select struct {
	From    string    // Table name
	Columns []string  // Projection (nil = every column of the entity)
	Filter  Predicate // WHERE condition (nil = no filter)
	OrderBy []Sort    // Applied in order; earlier entries take precedence
	Limit   int       // Always applied
}
