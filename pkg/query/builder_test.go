package query_test

import (
	"strings"
	"testing"

	"github.com/JaimeStill/portfolio-admin/pkg/query"
)

func newTestProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "projects", "p").
		Project("id", "Id").
		Project("title", "Title").
		Project("status", "Status").
		Project("updated_at", "UpdatedAt")
}

var byTitle = query.SortField{Field: "Title"}

func TestBuilder_BuildCount_NoConditions(t *testing.T) {
	sql, args := query.NewBuilder(newTestProjection(), byTitle).BuildCount()

	if sql != "SELECT COUNT(*) FROM public.projects p" {
		t.Errorf("BuildCount() sql = %q", sql)
	}
	if len(args) != 0 {
		t.Errorf("BuildCount() args = %v, want empty", args)
	}
}

func TestBuilder_BuildPage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pageSize   int
		wantLimit  string
		wantOffset string
	}{
		{"first page", 1, 20, "LIMIT 20", "OFFSET 0"},
		{"second page", 2, 20, "LIMIT 20", "OFFSET 20"},
		{"small pages", 4, 5, "LIMIT 5", "OFFSET 15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _ := query.NewBuilder(newTestProjection(), byTitle).BuildPage(tt.page, tt.pageSize)

			if !strings.HasPrefix(sql, "SELECT p.id, p.title, p.status, p.updated_at FROM public.projects p") {
				t.Errorf("BuildPage() select clause, got %q", sql)
			}
			if !strings.Contains(sql, "ORDER BY p.title ASC") {
				t.Errorf("BuildPage() missing default order, got %q", sql)
			}
			if !strings.Contains(sql, tt.wantLimit) || !strings.Contains(sql, tt.wantOffset) {
				t.Errorf("BuildPage() = %q, want %s %s", sql, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestBuilder_BuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(newTestProjection()).BuildSingle("Id", 42)

	if !strings.Contains(sql, "WHERE p.id = $1") {
		t.Errorf("BuildSingle() missing where clause, got %q", sql)
	}
	if len(args) != 1 || args[0] != 42 {
		t.Errorf("BuildSingle() args = %v, want [42]", args)
	}
}

func TestBuilder_BuildAll(t *testing.T) {
	sql, args := query.NewBuilder(newTestProjection(), byTitle).
		WhereEquals("Status", "draft").
		BuildAll()

	if strings.Contains(sql, "LIMIT") {
		t.Errorf("BuildAll() should not paginate, got %q", sql)
	}
	if !strings.Contains(sql, "WHERE p.status = $1 ORDER BY p.title ASC") {
		t.Errorf("BuildAll() = %q", sql)
	}
	if len(args) != 1 {
		t.Errorf("BuildAll() args = %v", args)
	}
}

func TestBuilder_OrderBy(t *testing.T) {
	tests := []struct {
		name       string
		field      string
		descending bool
		wantOrder  string
	}{
		{"ascending title", "Title", false, "ORDER BY p.title ASC"},
		{"descending updated", "UpdatedAt", true, "ORDER BY p.updated_at DESC"},
		{"empty uses default", "", false, "ORDER BY p.title ASC"},
		{"unknown uses default", "title; DROP TABLE projects", true, "ORDER BY p.title ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _ := query.NewBuilder(newTestProjection(), byTitle).
				OrderBy(tt.field, tt.descending).
				BuildPage(1, 10)

			if !strings.Contains(sql, tt.wantOrder) {
				t.Errorf("BuildPage() missing %q, got %q", tt.wantOrder, sql)
			}
		})
	}
}

func TestBuilder_OrderByFields_Multiple(t *testing.T) {
	fields := query.ParseSortFields("status,-updated_at")
	sql, _ := query.NewBuilder(newTestProjection(), byTitle).
		OrderByFields(fields).
		BuildPage(1, 10)

	if !strings.Contains(sql, "ORDER BY p.status ASC, p.updated_at DESC") {
		t.Errorf("BuildPage() = %q", sql)
	}
}

func TestBuilder_NoDefaultSort(t *testing.T) {
	sql, _ := query.NewBuilder(newTestProjection()).BuildPage(1, 10)
	if strings.Contains(sql, "ORDER BY") {
		t.Errorf("BuildPage() without sort should not order, got %q", sql)
	}
}

func TestBuilder_Conditions(t *testing.T) {
	search := "go"
	empty := ""

	tests := []struct {
		name     string
		build    func(*query.Builder) *query.Builder
		wantSQL  []string
		wantArgs int
	}{
		{
			"equals",
			func(b *query.Builder) *query.Builder { return b.WhereEquals("Status", "done") },
			[]string{"WHERE p.status = $1"},
			1,
		},
		{
			"equals nil ignored",
			func(b *query.Builder) *query.Builder { return b.WhereEquals("Status", nil) },
			nil,
			0,
		},
		{
			"contains",
			func(b *query.Builder) *query.Builder { return b.WhereContains("Title", &search) },
			[]string{"p.title ILIKE $1"},
			1,
		},
		{
			"contains empty ignored",
			func(b *query.Builder) *query.Builder { return b.WhereContains("Title", &empty) },
			nil,
			0,
		},
		{
			"in",
			func(b *query.Builder) *query.Builder { return b.WhereIn("Status", []any{"draft", "done"}) },
			[]string{"p.status IN ($1, $2)"},
			2,
		},
		{
			"in empty ignored",
			func(b *query.Builder) *query.Builder { return b.WhereIn("Status", nil) },
			nil,
			0,
		},
		{
			"null",
			func(b *query.Builder) *query.Builder { return b.WhereNull("UpdatedAt") },
			[]string{"p.updated_at IS NULL"},
			0,
		},
		{
			"search across fields",
			func(b *query.Builder) *query.Builder { return b.WhereSearch(&search, "Title", "Status") },
			[]string{"(p.title ILIKE $1 OR p.status ILIKE $2)"},
			2,
		},
		{
			"combined numbering",
			func(b *query.Builder) *query.Builder {
				return b.WhereEquals("Id", 7).WhereNull("UpdatedAt").WhereContains("Title", &search)
			},
			[]string{"p.id = $1 AND p.updated_at IS NULL AND p.title ILIKE $2"},
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.build(query.NewBuilder(newTestProjection(), byTitle)).BuildCount()

			if len(tt.wantSQL) == 0 && strings.Contains(sql, "WHERE") {
				t.Errorf("BuildCount() should not have WHERE, got %q", sql)
			}
			for _, want := range tt.wantSQL {
				if !strings.Contains(sql, want) {
					t.Errorf("BuildCount() = %q, missing %q", sql, want)
				}
			}
			if len(args) != tt.wantArgs {
				t.Errorf("len(args) = %d, want %d", len(args), tt.wantArgs)
			}
		})
	}
}
