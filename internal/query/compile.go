package query

import (
	"github.com/roach88/consulta/internal/filter"
	"github.com/roach88/consulta/internal/ir"
	"github.com/roach88/consulta/internal/queryir"
	"github.com/roach88/consulta/internal/schema"
)

// conditionBuilder turns one validated leaf into an atomic predicate.
type conditionBuilder func(leaf filter.Leaf) (queryir.Predicate, error)

// builders maps every supported operator to its predicate builder.
// An operator missing from this table is an unknown operator.
var builders = map[filter.Operator]conditionBuilder{
	filter.OpEq:    compareWith(queryir.OpEq),
	filter.OpNe:    compareWith(queryir.OpNe),
	filter.OpGt:    compareWith(queryir.OpGt),
	filter.OpLt:    compareWith(queryir.OpLt),
	filter.OpGte:   compareWith(queryir.OpGte),
	filter.OpLte:   compareWith(queryir.OpLte),
	filter.OpLike:  likeWith(false),
	filter.OpILike: likeWith(true),
	filter.OpIn:    buildIn,
}

// Compile walks a filter group and produces the predicate it describes, or
// nil when the group imposes no constraint.
//
// Per group level:
//  1. Nested groups are compiled recursively; a non-nil result always joins
//     the AND bucket, whatever combinators appear inside or beside it.
//  2. Leaves with an empty or unknown column are skipped.
//  3. Other leaves become one atomic condition each and join the OR bucket
//     when marked Or, the AND bucket otherwise.
//  4. A non-empty OR bucket wins: the result is the disjunction of the OR
//     bucket and the AND bucket is discarded, even if non-empty. Otherwise
//     the result is the conjunction of the AND bucket.
//
// Rule 4 means a single OR leaf suppresses every AND leaf and sub-group at
// its level. Clients depend on this, so it is kept as is.
//
// An unknown operator or an unusable value aborts compilation; no partial
// predicate is returned.
func Compile(g filter.Group, cols schema.Columns) (queryir.Predicate, error) {
	var ands, ors []queryir.Predicate

	for _, node := range g {
		switch n := node.(type) {
		case filter.Group:
			sub, err := Compile(n, cols)
			if err != nil {
				return nil, err
			}
			if sub != nil {
				ands = append(ands, sub)
			}

		case filter.Leaf:
			if n.Column == "" || !cols.Has(n.Column) {
				continue
			}
			cond, err := buildCondition(n)
			if err != nil {
				return nil, err
			}
			if n.Or {
				ors = append(ors, cond)
			} else {
				ands = append(ands, cond)
			}
		}
	}

	if len(ors) > 0 {
		return queryir.Or{Predicates: ors}, nil
	}
	if len(ands) > 0 {
		return queryir.And{Predicates: ands}, nil
	}
	return nil, nil
}

// buildCondition dispatches a leaf to the builder for its operator.
func buildCondition(leaf filter.Leaf) (queryir.Predicate, error) {
	leaf.Operator = filter.ParseOperator(string(leaf.Operator))
	build, ok := builders[leaf.Operator]
	if !ok {
		return nil, NewUnknownOperatorError(string(leaf.Operator))
	}
	if leaf.ValueErr != nil {
		return nil, NewInvalidFilterValueError(leaf.Column, string(leaf.Operator),
			"value could not be decoded", leaf.ValueErr)
	}
	return build(leaf)
}

func compareWith(op queryir.CompareOp) conditionBuilder {
	return func(leaf filter.Leaf) (queryir.Predicate, error) {
		if ir.IsArray(leaf.Value) {
			return nil, NewInvalidFilterValueError(leaf.Column, string(leaf.Operator),
				"operator "+string(leaf.Operator)+" requires a single value, got a list", nil)
		}
		return queryir.Compare{Field: leaf.Column, Op: op, Value: valueOrNull(leaf.Value)}, nil
	}
}

// likeWith builds a substring match: the value is wrapped as %value%.
func likeWith(fold bool) conditionBuilder {
	return func(leaf filter.Leaf) (queryir.Predicate, error) {
		if ir.IsArray(leaf.Value) {
			return nil, NewInvalidFilterValueError(leaf.Column, string(leaf.Operator),
				"operator "+string(leaf.Operator)+" requires a single value, got a list", nil)
		}
		return queryir.Like{
			Field:   leaf.Column,
			Pattern: "%" + ir.Text(leaf.Value) + "%",
			Fold:    fold,
		}, nil
	}
}

// buildIn requires a list value. An empty list is valid and matches nothing.
func buildIn(leaf filter.Leaf) (queryir.Predicate, error) {
	values, ok := leaf.Value.(ir.Array)
	if !ok {
		return nil, NewInvalidFilterValueError(leaf.Column, string(leaf.Operator),
			"'in' requires a list value", nil)
	}
	for _, v := range values {
		if ir.IsArray(v) {
			return nil, NewInvalidFilterValueError(leaf.Column, string(leaf.Operator),
				"'in' list must not contain nested lists", nil)
		}
	}
	return queryir.In{Field: leaf.Column, Values: values}, nil
}

func valueOrNull(v ir.Value) ir.Value {
	if v == nil {
		return ir.Null{}
	}
	return v
}
