// Package schema describes which columns of an entity type can be queried
// and how to reach them.
//
// A Descriptor maps column names to accessors returning a pointer into the
// entity; the same pointer serves as a scan target when hydrating rows and as
// a read handle when rendering results. Descriptors are built once, usually
// as package-level values next to the entity type, and never mutated.
//
// Columns omitted from a descriptor are invisible to callers: they cannot be
// filtered on, sorted by or projected, even if the underlying table has them.
package schema
