// Package queryir provides the intermediate representation of an assembled
// filter query.
//
// QueryIR is the boundary between the engine that compiles caller input and
// the backend that executes it. The engine only composes IR values; it never
// evaluates them. Backends (internal/querysql for SQLite) translate them.
//
//	[request] → [filter tree] → [Query IR] → [SQL backend] → rows
//
// SEALED INTERFACES:
//
// Predicate is a sealed interface using the marker method pattern. Only types
// in this package implement it, which allows exhaustive type switches in
// backends:
//
//	switch p := pred.(type) {
//	case Compare:
//	case Like:
//	case In:
//	case And:
//	case Or:
//	}
//
// A nil Predicate means "no constraint". A nil Columns slice on Select means
// "every column of the entity".
package queryir
