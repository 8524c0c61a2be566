package filter

import (
	"encoding/json"
	"strings"

	"github.com/roach88/consulta/internal/ir"
)

// Operator is a comparison operator carried by a Leaf.
//
// The set is closed: the compiler maps each operator to one predicate
// builder and rejects anything else. Operator values are compared after
// lower-casing, so "LIKE" and "like" are the same operator.
type Operator string

const (
	OpEq    Operator = "="
	OpNe    Operator = "!="
	OpGt    Operator = ">"
	OpLt    Operator = "<"
	OpGte   Operator = ">="
	OpLte   Operator = "<="
	OpLike  Operator = "like"
	OpILike Operator = "ilike"
	OpIn    Operator = "in"
)

// Operators lists every supported operator in declaration order.
var Operators = []Operator{OpEq, OpNe, OpGt, OpLt, OpGte, OpLte, OpLike, OpILike, OpIn}

// ParseOperator lower-cases s and returns it as an Operator. An empty string
// yields OpEq, the default. Unknown operators are returned as-is; rejecting
// them is the compiler's job.
func ParseOperator(s string) Operator {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return OpEq
	}
	return Operator(s)
}

// Node is one element of a filter tree: a Leaf or a nested Group.
//
// This is a sealed interface - only Leaf and Group implement it, so
// consumers can switch exhaustively on the two cases.
type Node interface {
	filterNode() // Marker method - seals interface to this package
}

// Leaf is one column/operator/value comparison.
//
// Or selects the OR bucket of the leaf's own group level; it has no effect
// on other levels.
type Leaf struct {
	Column   string
	Operator Operator
	Value    ir.Value
	Or       bool

	// ValueErr records a value that could not be converted to a Value.
	// The compiler reports it as an invalid filter value if the column
	// turns out to be known.
	ValueErr error
}

func (Leaf) filterNode() {}

// Group is an ordered list of leaves and nested groups.
//
// A nil or empty Group means "no filtering".
type Group []Node

func (Group) filterNode() {}

// NewLeaf builds an AND-combined leaf, converting value with ir.FromAny.
func NewLeaf(column string, op Operator, value any) Leaf {
	v, err := ir.FromAny(value)
	return Leaf{Column: column, Operator: op, Value: v, ValueErr: err}
}

// Eq is shorthand for NewLeaf(column, OpEq, value).
func Eq(column string, value any) Leaf {
	return NewLeaf(column, OpEq, value)
}

// WithOr returns a copy of the leaf placed in its group's OR bucket.
func (l Leaf) WithOr() Leaf {
	l.Or = true
	return l
}

// wireLeaf is the request shape of a leaf.
type wireLeaf struct {
	Coluna string   `json:"coluna"`
	Valor  ir.Value `json:"valor"`
	Filtro Operator `json:"filtro"`
	Ou     bool     `json:"ou"`
}

// MarshalJSON renders the leaf in its request shape.
func (l Leaf) MarshalJSON() ([]byte, error) {
	v := l.Value
	if v == nil {
		v = ir.Null{}
	}
	op := l.Operator
	if op == "" {
		op = OpEq
	}
	return json.Marshal(wireLeaf{Coluna: l.Column, Valor: v, Filtro: op, Ou: l.Or})
}

// Leaves returns the number of leaves in the tree, at any depth.
func (g Group) Leaves() int {
	n := 0
	for _, node := range g {
		switch v := node.(type) {
		case Leaf:
			n++
		case Group:
			n += v.Leaves()
		}
	}
	return n
}
