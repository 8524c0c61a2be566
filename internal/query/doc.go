// Package query is the generic dynamic filter query engine.
//
// It turns a declarative request (filter tree, sort directives, projection,
// limit) into a queryir.Select against any entity described by a
// schema.Columns registry, without per-entity query code:
//
//	Request ──Normalize──▶ filter.Group ──Compile──▶ queryir.Predicate
//	        ──ParseSorts──▶ []queryir.Sort
//	        ──Project────▶ []string
//	                         └──Assemble──▶ queryir.Select
//
// Unknown columns are dropped silently at every stage. Only two conditions
// are errors: an unknown operator and an "in" leaf whose value is not a list.
//
// # Group precedence
//
// Within one group, leaves marked "ou" go to an OR bucket and everything
// else (AND leaves and compiled sub-groups) to an AND bucket. If the OR
// bucket is non-empty the group compiles to the disjunction of the OR
// bucket alone and the AND bucket is discarded. This matches the behavior
// existing clients rely on; see Compile.
//
// Everything here is pure and allocation-local, so any number of requests
// can be built concurrently against the same descriptor.
package query
