// Package filter holds the canonical filter tree and the normalizer that
// builds it from caller input.
//
// Callers describe a filter as a single condition, a flat list of
// conditions, or a list mixing conditions and nested lists:
//
//	[
//	  {"coluna": "nome", "valor": "Maria", "filtro": "ilike"},
//	  [
//	    {"coluna": "status", "valor": "ativo"},
//	    {"coluna": "idade", "valor": 18, "filtro": ">=", "ou": true}
//	  ]
//	]
//
// Normalize turns any of these shapes into a Group, a tagged tree of Leaf
// and Group nodes. The normalizer never fails and never looks at column or
// operator validity; a leaf it cannot make sense of is kept with an empty
// column and dropped later by the compiler.
package filter
