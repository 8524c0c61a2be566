package schema

import (
	"fmt"
	"reflect"
)

// Columns is the read-only view of a descriptor used by the compiler,
// the sort/projection validator and the SQL backend. It carries no entity
// type, so those stages stay non-generic.
type Columns interface {
	// Table returns the table name queries are issued against.
	Table() string

	// Has reports whether name is a queryable column.
	Has(name string) bool

	// Names returns every queryable column in declaration order.
	Names() []string
}

// Column binds a column name to an accessor on *T.
//
// Ref must return a non-nil pointer to the field backing the column
// (for example &u.Nome). It is used both to read the value and as a
// database/sql scan target.
type Column[T any] struct {
	Name string
	Ref  func(*T) any
}

// Col is shorthand for building a Column.
func Col[T any](name string, ref func(*T) any) Column[T] {
	return Column[T]{Name: name, Ref: ref}
}

// Descriptor is the column registry of one entity type.
type Descriptor[T any] struct {
	table   string
	columns []Column[T]
	index   map[string]int
}

// New builds a descriptor for table. Column names must be non-empty and
// unique, and every column needs an accessor.
func New[T any](table string, columns ...Column[T]) (*Descriptor[T], error) {
	if table == "" {
		return nil, fmt.Errorf("schema: empty table name")
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("schema %s: no columns", table)
	}

	d := &Descriptor[T]{
		table:   table,
		columns: make([]Column[T], 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for _, c := range columns {
		if c.Name == "" {
			return nil, fmt.Errorf("schema %s: column with empty name", table)
		}
		if c.Ref == nil {
			return nil, fmt.Errorf("schema %s: column %q has no accessor", table, c.Name)
		}
		if _, dup := d.index[c.Name]; dup {
			return nil, fmt.Errorf("schema %s: duplicate column %q", table, c.Name)
		}
		d.index[c.Name] = len(d.columns)
		d.columns = append(d.columns, c)
	}
	return d, nil
}

// MustNew is like New but panics on error. Intended for package-level
// descriptor declarations.
func MustNew[T any](table string, columns ...Column[T]) *Descriptor[T] {
	d, err := New(table, columns...)
	if err != nil {
		panic(err)
	}
	return d
}

// Table returns the table name.
func (d *Descriptor[T]) Table() string {
	return d.table
}

// Has reports whether name is a queryable column.
func (d *Descriptor[T]) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Names returns the column names in declaration order.
func (d *Descriptor[T]) Names() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name.
func (d *Descriptor[T]) Column(name string) (Column[T], bool) {
	i, ok := d.index[name]
	if !ok {
		return Column[T]{}, false
	}
	return d.columns[i], true
}

// Targets returns scan targets into entity for the given columns, in order.
func (d *Descriptor[T]) Targets(entity *T, names []string) ([]any, error) {
	targets := make([]any, len(names))
	for i, name := range names {
		c, ok := d.Column(name)
		if !ok {
			return nil, fmt.Errorf("schema %s: unknown column %q", d.table, name)
		}
		targets[i] = c.Ref(entity)
	}
	return targets, nil
}

// Get reads the current value of a column on entity.
func (d *Descriptor[T]) Get(entity *T, name string) (any, bool) {
	c, ok := d.Column(name)
	if !ok {
		return nil, false
	}
	rv := reflect.ValueOf(c.Ref(entity))
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, false
	}
	return rv.Elem().Interface(), true
}

// Row reads the given columns of entity into a map keyed by column name.
// Unknown names are skipped.
func (d *Descriptor[T]) Row(entity *T, names []string) map[string]any {
	row := make(map[string]any, len(names))
	for _, name := range names {
		if v, ok := d.Get(entity, name); ok {
			row[name] = v
		}
	}
	return row
}
