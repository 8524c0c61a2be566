// Package engine executes filtered queries against the store and hydrates
// the result rows into entity values.
//
// Execution Flow:
// 1. query.Build turns a request into a queryir.Select
// 2. querysql compiles the Select to parameterized SQL
// 3. The SQL is dispatched through a store.Querier
// 4. Each row is scanned into a fresh entity through its schema descriptor
//
// Only projected columns are populated; the others keep their zero value.
// Rows come back in store order. Any failure past compilation is reported as
// a query.Error with code STORE_ERROR and is never retried.
//
// Compilation is pure and descriptors are read-only, so Find and Run are
// safe for concurrent use as long as the Querier is.
package engine
