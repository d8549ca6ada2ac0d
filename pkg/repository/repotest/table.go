// Package repotest provides an in-memory repository.Table for exercising domain
// systems without a database.
package repotest

import (
	"context"
	"database/sql"
	"slices"
	"sync"

	"github.com/JaimeStill/portfolio-admin/pkg/pagination"
	"github.com/JaimeStill/portfolio-admin/pkg/query"
	"github.com/JaimeStill/portfolio-admin/pkg/repository"
	"github.com/google/uuid"
)

// Op names a table operation for failure injection and call counting.
type Op string

const (
	OpList    Op = "list"
	OpFind    Op = "find"
	OpInsert  Op = "insert"
	OpReplace Op = "replace"
	OpDelete  Op = "delete"
)

// Table stores records in insertion order. Missing ids produce sql.ErrNoRows,
// matching the SQL implementation.
type Table[T any] struct {
	mu      sync.Mutex
	ids     []uuid.UUID
	rows    map[uuid.UUID]T
	getID   func(T) uuid.UUID
	setID   func(*T, uuid.UUID)
	failing map[Op]error
	calls   map[Op]int
	match   func(T, repository.Filter) bool
	order   func(a, b T) int
}

// NewTable creates an empty Table. getID and setID access the record id.
func NewTable[T any](getID func(T) uuid.UUID, setID func(*T, uuid.UUID)) *Table[T] {
	return &Table[T]{
		rows:    make(map[uuid.UUID]T),
		getID:   getID,
		setID:   setID,
		failing: make(map[Op]error),
		calls:   make(map[Op]int),
	}
}

var _ repository.Table[struct{}] = (*Table[struct{}])(nil)

// Match sets the predicate List and All use to apply a filter in memory.
// Without one every record matches.
func (t *Table[T]) Match(fn func(record T, filter repository.Filter) bool) *Table[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.match = fn
	return t
}

// Order sets the comparison List and All sort by. Without one records are
// returned in insertion order.
func (t *Table[T]) Order(cmp func(a, b T) int) *Table[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.order = cmp
	return t
}

// Fail makes every subsequent call of op return err. A nil err clears the failure.
func (t *Table[T]) Fail(op Op, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err == nil {
		delete(t.failing, op)
		return
	}
	t.failing[op] = err
}

// Calls returns how many times op was invoked.
func (t *Table[T]) Calls(op Op) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls[op]
}

// Seed stores record directly, assigning an id when it has none.
func (t *Table[T]) Seed(record T) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store(record)
}

// Len returns the number of stored records.
func (t *Table[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.ids)
}

func (t *Table[T]) List(ctx context.Context, page pagination.PageRequest, filter repository.Filter) (*pagination.PageResult[T], error) {
	items, err := t.all(OpList, filter)
	if err != nil {
		return nil, err
	}

	total := len(items)
	start := min((page.Page-1)*page.PageSize, total)
	end := min(start+page.PageSize, total)

	result := pagination.NewPageResult(items[start:end], total, page.Page, page.PageSize)
	return &result, nil
}

func (t *Table[T]) All(ctx context.Context, filter repository.Filter, sort ...query.SortField) ([]T, error) {
	return t.all(OpList, filter)
}

func (t *Table[T]) Find(ctx context.Context, id uuid.UUID) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	if err := t.begin(OpFind); err != nil {
		return zero, err
	}

	record, ok := t.rows[id]
	if !ok {
		return zero, sql.ErrNoRows
	}
	return record, nil
}

func (t *Table[T]) Insert(ctx context.Context, record T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	if err := t.begin(OpInsert); err != nil {
		return zero, err
	}

	t.setID(&record, uuid.Nil)
	return t.store(record), nil
}

func (t *Table[T]) Replace(ctx context.Context, id uuid.UUID, record T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	if err := t.begin(OpReplace); err != nil {
		return zero, err
	}

	if _, ok := t.rows[id]; !ok {
		return zero, sql.ErrNoRows
	}

	t.setID(&record, id)
	t.rows[id] = record
	return record, nil
}

func (t *Table[T]) Delete(ctx context.Context, id uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.begin(OpDelete); err != nil {
		return err
	}

	if _, ok := t.rows[id]; !ok {
		return sql.ErrNoRows
	}

	delete(t.rows, id)
	for i, existing := range t.ids {
		if existing == id {
			t.ids = append(t.ids[:i], t.ids[i+1:]...)
			break
		}
	}
	return nil
}

func (t *Table[T]) all(op Op, filter repository.Filter) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.begin(op); err != nil {
		return nil, err
	}

	items := make([]T, 0, len(t.ids))
	for _, id := range t.ids {
		record := t.rows[id]
		if t.match != nil && filter != nil && !t.match(record, filter) {
			continue
		}
		items = append(items, record)
	}

	if t.order != nil {
		slices.SortStableFunc(items, t.order)
	}
	return items, nil
}

func (t *Table[T]) begin(op Op) error {
	t.calls[op]++
	return t.failing[op]
}

func (t *Table[T]) store(record T) T {
	id := t.getID(record)
	if id == uuid.Nil {
		id = uuid.New()
		t.setID(&record, id)
	}
	if _, exists := t.rows[id]; !exists {
		t.ids = append(t.ids, id)
	}
	t.rows[id] = record
	return record
}
