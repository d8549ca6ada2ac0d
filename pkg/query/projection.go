// Package query builds parameterized SQL for paginated, filtered table reads.
// Callers name columns by their view field names; a ProjectionMap resolves
// them to qualified SQL columns.
package query

import "strings"

// ProjectionMap maps view field names to table columns under a table alias.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	columns []string
	names   []string
	fields  map[string]string
}

// NewProjectionMap creates an empty projection for schema.table aliased as alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		fields: make(map[string]string),
	}
}

// Project adds column under the view name field.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.columns = append(p.columns, qualified)
	p.names = append(p.names, column)
	p.fields[field] = qualified
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the aliased table reference used in FROM clauses.
func (p *ProjectionMap) Table() string {
	return p.Name() + " " + p.alias
}

// Name returns the schema-qualified table name without alias.
func (p *ProjectionMap) Name() string {
	return p.schema + "." + p.table
}

// Column resolves a view field to its qualified column. Unknown fields are returned as-is.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.fields[field]; ok {
		return col
	}
	return field
}

// Columns returns the qualified column list for SELECT clauses.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columns, ", ")
}

// ColumnList returns the qualified columns in projection order.
func (p *ProjectionMap) ColumnList() []string {
	out := make([]string, len(p.columns))
	copy(out, p.columns)
	return out
}

// ColumnNames returns the unqualified column names in projection order,
// suitable for RETURNING clauses.
func (p *ProjectionMap) ColumnNames() string {
	return strings.Join(p.names, ", ")
}

// Has reports whether field is a projected view name.
func (p *ProjectionMap) Has(field string) bool {
	_, ok := p.fields[field]
	return ok
}
