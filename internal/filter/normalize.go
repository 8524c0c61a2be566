package filter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/consulta/internal/ir"
)

// Request keys of a leaf.
const (
	keyColumn   = "coluna"
	keyValue    = "valor"
	keyOperator = "filtro"
	keyOr       = "ou"
)

// Normalize coerces caller filter input into a canonical Group.
//
// Accepted shapes:
//   - nil → empty group (no filtering)
//   - a single leaf-shaped value (map or Leaf) → one-element group
//   - []any whose elements are leaf-shaped values or nested []any → group,
//     nested lists becoming nested groups
//
// Normalize never fails. Elements that are neither lists nor leaf-shaped
// become leaves with an empty column, which the compiler skips.
func Normalize(raw any) Group {
	switch v := raw.(type) {
	case nil:
		return Group{}
	case Group:
		return v
	case []Node:
		return Group(v)
	case []any:
		return normalizeList(v)
	case []map[string]any:
		g := make(Group, 0, len(v))
		for _, m := range v {
			g = append(g, decodeLeaf(m))
		}
		return g
	default:
		return Group{normalizeElement(v)}
	}
}

func normalizeList(items []any) Group {
	g := make(Group, 0, len(items))
	for _, item := range items {
		if sub, ok := item.([]any); ok {
			g = append(g, normalizeList(sub))
			continue
		}
		g = append(g, normalizeElement(item))
	}
	return g
}

func normalizeElement(item any) Node {
	switch v := item.(type) {
	case Leaf:
		return v
	case Group:
		return v
	case map[string]any:
		return decodeLeaf(v)
	default:
		return Leaf{Operator: OpEq, Value: ir.Null{}}
	}
}

// decodeLeaf reads a leaf from its request shape. Missing keys take their
// defaults: operator "=", combinator AND, value null.
func decodeLeaf(m map[string]any) Leaf {
	leaf := Leaf{Operator: OpEq, Value: ir.Null{}}

	if col, ok := m[keyColumn].(string); ok {
		leaf.Column = col
	}

	switch op := m[keyOperator].(type) {
	case nil:
	case string:
		leaf.Operator = ParseOperator(op)
	default:
		leaf.Operator = Operator(fmt.Sprint(op))
	}

	leaf.Or = parseOr(m[keyOr])

	v, err := ir.FromAny(m[keyValue])
	if err != nil {
		leaf.ValueErr = err
	} else {
		leaf.Value = v
	}

	return leaf
}

// UnmarshalJSON accepts null, a single leaf object, or a (nested) list.
func (g *Group) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode filter: %w", err)
	}

	*g = Normalize(raw)
	return nil
}

// UnmarshalYAML accepts the same shapes as UnmarshalJSON.
func (g *Group) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("decode filter: %w", err)
	}

	*g = Normalize(raw)
	return nil
}

// parseOr reads the "ou" flag. Besides booleans it accepts the spellings
// clients send from form-like encoders: "true"/"false", "1"/"0", "yes"/"no",
// "on"/"off", "t"/"f", "y"/"n" (any case) and the numbers 1 and 0.
// Anything else means AND.
func parseOr(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "1", "yes", "on", "t", "y":
			return true
		}
		return false
	case json.Number:
		return val.String() == "1" || val.String() == "1.0"
	case int:
		return val == 1
	case int64:
		return val == 1
	case uint64:
		return val == 1
	case float64:
		return val == 1
	default:
		return false
	}
}
