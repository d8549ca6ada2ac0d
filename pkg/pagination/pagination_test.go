package pagination_test

import (
	"encoding/json"
	"net/url"
	"os"
	"testing"

	"github.com/JaimeStill/portfolio-admin/pkg/pagination"
	"github.com/JaimeStill/portfolio-admin/pkg/query"
)

var testConfig = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name         string
		request      pagination.PageRequest
		wantPage     int
		wantPageSize int
	}{
		{"valid values unchanged", pagination.PageRequest{Page: 3, PageSize: 10}, 3, 10},
		{"zero page becomes 1", pagination.PageRequest{Page: 0, PageSize: 10}, 1, 10},
		{"negative page becomes 1", pagination.PageRequest{Page: -4, PageSize: 10}, 1, 10},
		{"zero page size uses default", pagination.PageRequest{Page: 1}, 1, 20},
		{"page size capped", pagination.PageRequest{Page: 1, PageSize: 1000}, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.request
			req.Normalize(testConfig)

			if req.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", req.Page, tt.wantPage)
			}
			if req.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", req.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	req := pagination.PageRequest{Page: 4, PageSize: 25}
	if req.Offset() != 75 {
		t.Errorf("Offset() = %d, want 75", req.Offset())
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		pageSize       int
		wantTotalPages int
	}{
		{"exact fit", 40, 20, 2},
		{"remainder", 41, 20, 3},
		{"empty", 0, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult([]string{"a"}, tt.total, 1, tt.pageSize)
			if result.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantTotalPages)
			}
		})
	}
}

func TestNewPageResult_NilDataBecomesEmptySlice(t *testing.T) {
	result := pagination.NewPageResult[int](nil, 0, 1, 20)
	if result.Data == nil {
		t.Fatal("Data = nil, want empty slice")
	}

	data, _ := json.Marshal(result)
	var decoded map[string]any
	json.Unmarshal(data, &decoded)
	if _, ok := decoded["data"].([]any); !ok {
		t.Errorf("data encodes as %v, want []", decoded["data"])
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
		wantSearch   string
		wantSort     []query.SortField
	}{
		{"defaults", "", 1, 20, "", nil},
		{"page and size", "page=2&page_size=50", 2, 50, "", nil},
		{"search", "search=terraform", 1, 20, "terraform", nil},
		{"sort", "sort=status,-updated_at", 1, 20, "", []query.SortField{
			{Field: "Status"},
			{Field: "UpdatedAt", Descending: true},
		}},
		{"invalid page", "page=abc", 1, 20, "", nil},
		{"capped size", "page_size=5000", 1, 100, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			req := pagination.PageRequestFromQuery(values, testConfig)

			if req.Page != tt.wantPage || req.PageSize != tt.wantPageSize {
				t.Errorf("page = %d/%d, want %d/%d", req.Page, req.PageSize, tt.wantPage, tt.wantPageSize)
			}

			switch {
			case tt.wantSearch == "" && req.Search != nil:
				t.Errorf("Search = %q, want nil", *req.Search)
			case tt.wantSearch != "" && (req.Search == nil || *req.Search != tt.wantSearch):
				t.Errorf("Search = %v, want %q", req.Search, tt.wantSearch)
			}

			if len(req.Sort) != len(tt.wantSort) {
				t.Fatalf("Sort = %v, want %v", req.Sort, tt.wantSort)
			}
			for i := range tt.wantSort {
				if req.Sort[i] != tt.wantSort[i] {
					t.Errorf("Sort[%d] = %+v, want %+v", i, req.Sort[i], tt.wantSort[i])
				}
			}
		})
	}
}

func TestSortFields_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		want    []query.SortField
		wantErr bool
	}{
		{"expression", `"title,-updated_at"`, []query.SortField{{Field: "Title"}, {Field: "UpdatedAt", Descending: true}}, false},
		{"empty expression", `""`, nil, false},
		{"array", `[{"field":"SortOrder","descending":true}]`, []query.SortField{{Field: "SortOrder", Descending: true}}, false},
		{"number", `42`, nil, true},
		{"malformed", `{oops`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sf pagination.SortFields
			err := sf.UnmarshalJSON([]byte(tt.json))

			if tt.wantErr {
				if err == nil {
					t.Error("UnmarshalJSON() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalJSON() error = %v", err)
			}
			if len(sf) != len(tt.want) {
				t.Fatalf("SortFields = %v, want %v", sf, tt.want)
			}
			for i := range tt.want {
				if sf[i] != tt.want[i] {
					t.Errorf("[%d] = %+v, want %+v", i, sf[i], tt.want[i])
				}
			}
		})
	}
}

func TestConfig_Finalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := &pagination.Config{}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if cfg.DefaultPageSize != 20 || cfg.MaxPageSize != 100 {
			t.Errorf("defaults = %d/%d, want 20/100", cfg.DefaultPageSize, cfg.MaxPageSize)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_PAGE_DEFAULT", "15")
		t.Setenv("TEST_PAGE_MAX", "60")

		cfg := &pagination.Config{}
		env := &pagination.ConfigEnv{DefaultPageSize: "TEST_PAGE_DEFAULT", MaxPageSize: "TEST_PAGE_MAX"}
		if err := cfg.Finalize(env); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if cfg.DefaultPageSize != 15 || cfg.MaxPageSize != 60 {
			t.Errorf("env = %d/%d, want 15/60", cfg.DefaultPageSize, cfg.MaxPageSize)
		}
	})

	t.Run("unset env name ignored", func(t *testing.T) {
		os.Unsetenv("TEST_PAGE_UNSET")
		cfg := &pagination.Config{DefaultPageSize: 10, MaxPageSize: 30}
		if err := cfg.Finalize(&pagination.ConfigEnv{DefaultPageSize: "TEST_PAGE_UNSET"}); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if cfg.DefaultPageSize != 10 {
			t.Errorf("DefaultPageSize = %d, want 10", cfg.DefaultPageSize)
		}
	})

	t.Run("default exceeds max", func(t *testing.T) {
		cfg := &pagination.Config{DefaultPageSize: 50, MaxPageSize: 25}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("Finalize() expected error")
		}
	})
}

func TestConfig_Merge(t *testing.T) {
	base := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
	base.Merge(&pagination.Config{MaxPageSize: 50})

	if base.DefaultPageSize != 20 || base.MaxPageSize != 50 {
		t.Errorf("Merge() = %+v, want 20/50", base)
	}
}
