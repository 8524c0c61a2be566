package queryir

import (
	"fmt"
	"strings"

	"github.com/roach88/consulta/internal/ir"
)

// ValidationError lists every structural problem found in a Select.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid query: " + strings.Join(e.Problems, "; ")
}

// Validate checks that a Select is structurally sound before a backend
// translates it.
//
// Rules:
//  1. From is set and Limit is not negative
//  2. Projection and sort columns are non-empty names
//  3. Sort directions are Asc or Desc
//  4. Every predicate names a field; comparisons use a declared operator and
//     a scalar value; In lists hold scalars only
//
// Validate does not know which columns exist; column resolution happens
// before the IR is built. It is a pure function with no side effects.
func Validate(sel Select) error {
	v := &validator{}
	v.validateSelect(sel)

	if len(v.problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: v.problems}
}

// validator accumulates problems during traversal.
type validator struct {
	problems []string
}

// addProblem appends a problem message.
func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) validateSelect(sel Select) {
	if sel.From == "" {
		v.addProblem("missing table")
	}
	if sel.Limit < 0 {
		v.addProblem("negative limit %d", sel.Limit)
	}
	for i, col := range sel.Columns {
		if col == "" {
			v.addProblem("empty projection column at %d", i)
		}
	}
	for i, s := range sel.OrderBy {
		if s.Column == "" {
			v.addProblem("empty sort column at %d", i)
		}
		if s.Direction != Asc && s.Direction != Desc {
			v.addProblem("invalid sort direction %q for %s", s.Direction, s.Column)
		}
	}
	if sel.Filter != nil {
		v.validatePredicate(sel.Filter)
	}
}

// validatePredicate recursively validates a predicate node.
func (v *validator) validatePredicate(p Predicate) {
	switch pred := p.(type) {
	case nil:
		v.addProblem("nil predicate inside a conjunction or disjunction")
	case Compare:
		if pred.Field == "" {
			v.addProblem("comparison without field")
		}
		if !pred.Op.Valid() {
			v.addProblem("unknown comparison operator %q on %s", pred.Op, pred.Field)
		}
		if ir.IsArray(pred.Value) {
			v.addProblem("comparison on %s with a list value", pred.Field)
		}
	case Like:
		if pred.Field == "" {
			v.addProblem("pattern match without field")
		}
	case In:
		if pred.Field == "" {
			v.addProblem("membership test without field")
		}
		for i, elem := range pred.Values {
			if ir.IsArray(elem) {
				v.addProblem("membership list for %s holds a nested list at %d", pred.Field, i)
			}
		}
	case And:
		for _, sub := range pred.Predicates {
			v.validatePredicate(sub)
		}
	case Or:
		for _, sub := range pred.Predicates {
			v.validatePredicate(sub)
		}
	default:
		v.addProblem("unknown predicate type %T", p)
	}
}
