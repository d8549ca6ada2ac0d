package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/JaimeStill/portfolio-admin/pkg/pagination"
	"github.com/JaimeStill/portfolio-admin/pkg/query"
	"github.com/google/uuid"
)

// Filter narrows a list query.
type Filter interface {
	Apply(b *query.Builder) *query.Builder
}

// Table is the record gateway the domain systems persist through.
// Errors are returned unmapped; callers translate them with MapError.
type Table[T any] interface {
	List(ctx context.Context, page pagination.PageRequest, filter Filter) (*pagination.PageResult[T], error)
	All(ctx context.Context, filter Filter, sort ...query.SortField) ([]T, error)
	Find(ctx context.Context, id uuid.UUID) (T, error)
	Insert(ctx context.Context, record T) (T, error)
	Replace(ctx context.Context, id uuid.UUID, record T) (T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Schema describes how a record type maps onto a table.
// Columns lists the writable columns in the order Values returns them; the
// projection must start with id and its column order must match Scan.
type Schema[T any] struct {
	Projection  *query.ProjectionMap
	DefaultSort query.SortField
	Search      []string
	Columns     []string
	Values      func(T) []any
	Scan        ScanFunc[T]
}

type sqlTable[T any] struct {
	db     *sql.DB
	schema Schema[T]
}

// NewTable creates a Table backed by db.
func NewTable[T any](db *sql.DB, schema Schema[T]) Table[T] {
	return &sqlTable[T]{db: db, schema: schema}
}

func (t *sqlTable[T]) List(ctx context.Context, page pagination.PageRequest, filter Filter) (*pagination.PageResult[T], error) {
	qb := query.
		NewBuilder(t.schema.Projection, t.schema.DefaultSort).
		WhereSearch(page.Search, t.schema.Search...)

	if filter != nil {
		filter.Apply(qb)
	}

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := t.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count %s: %w", t.schema.Projection.Name(), err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := QueryMany(ctx, t.db, pageSQL, pageArgs, t.schema.Scan)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", t.schema.Projection.Name(), err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (t *sqlTable[T]) All(ctx context.Context, filter Filter, sort ...query.SortField) ([]T, error) {
	qb := query.NewBuilder(t.schema.Projection, t.schema.DefaultSort)
	if filter != nil {
		filter.Apply(qb)
	}
	if len(sort) > 0 {
		qb.OrderByFields(sort)
	}

	q, args := qb.BuildAll()
	return QueryMany(ctx, t.db, q, args, t.schema.Scan)
}

func (t *sqlTable[T]) Find(ctx context.Context, id uuid.UUID) (T, error) {
	q, args := query.
		NewBuilder(t.schema.Projection).
		BuildSingle("Id", id)

	return QueryOne(ctx, t.db, q, args, t.schema.Scan)
}

func (t *sqlTable[T]) Insert(ctx context.Context, record T) (T, error) {
	placeholders := make([]string, len(t.schema.Columns))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	q := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		t.schema.Projection.Name(),
		strings.Join(t.schema.Columns, ", "),
		strings.Join(placeholders, ", "),
		t.schema.Projection.ColumnNames(),
	)

	return WithTx(ctx, t.db, func(tx *sql.Tx) (T, error) {
		return QueryOne(ctx, tx, q, t.schema.Values(record), t.schema.Scan)
	})
}

func (t *sqlTable[T]) Replace(ctx context.Context, id uuid.UUID, record T) (T, error) {
	assignments := make([]string, len(t.schema.Columns))
	for i, col := range t.schema.Columns {
		assignments[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}

	q := fmt.Sprintf(
		"UPDATE %s SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s",
		t.schema.Projection.Name(),
		strings.Join(assignments, ", "),
		len(t.schema.Columns)+1,
		t.schema.Projection.ColumnNames(),
	)

	args := append(t.schema.Values(record), id)

	return WithTx(ctx, t.db, func(tx *sql.Tx) (T, error) {
		return QueryOne(ctx, tx, q, args, t.schema.Scan)
	})
}

func (t *sqlTable[T]) Delete(ctx context.Context, id uuid.UUID) error {
	q := fmt.Sprintf("DELETE FROM %s WHERE id = $1", t.schema.Projection.Name())

	_, err := WithTx(ctx, t.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, ExecExpectOne(ctx, tx, q, id)
	})
	return err
}
