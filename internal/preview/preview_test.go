package preview_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/portfolio-admin/internal/categories"
	"github.com/JaimeStill/portfolio-admin/internal/docs"
	"github.com/JaimeStill/portfolio-admin/internal/preview"
	"github.com/JaimeStill/portfolio-admin/internal/projects"
	"github.com/JaimeStill/portfolio-admin/internal/uploads"
	"github.com/JaimeStill/portfolio-admin/pkg/content"
	"github.com/JaimeStill/portfolio-admin/pkg/pagination"
	"github.com/JaimeStill/portfolio-admin/pkg/repository/repotest"
	"github.com/JaimeStill/portfolio-admin/pkg/routes"
	"github.com/JaimeStill/portfolio-admin/pkg/storage/storagetest"
	"github.com/google/uuid"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func tree(t *testing.T, doc string) *content.Node {
	t.Helper()
	n, err := content.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return n
}

func TestRenderer_Tree(t *testing.T) {
	r := preview.NewRenderer()

	html := r.Tree(tree(t, `{"type":"doc","content":[
		{"type":"heading","attrs":{"level":2},"content":[{"type":"text","text":"Intro"}]},
		{"type":"paragraph","content":[
			{"type":"text","text":"safe","marks":[{"type":"link","attrs":{"href":"https://example.com"}}]},
			{"type":"text","text":"bad","marks":[{"type":"link","attrs":{"href":"javascript:alert(1)"}}]}
		]},
		{"type":"codeBlock","attrs":{"language":"go"},"content":[{"type":"text","text":"x := 1"}]},
		{"type":"image","attrs":{"src":"https://objects.test/doc-images/a.png","alt":"diagram"}}
	]}`))

	for _, want := range []string{
		"<h2>Intro</h2>",
		`href="https://example.com"`,
		`<code class="language-go">`,
		`src="https://objects.test/doc-images/a.png"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, "javascript:") {
		t.Errorf("unsafe link survived:\n%s", html)
	}
}

func TestRenderer_Markdown(t *testing.T) {
	r := preview.NewRenderer()

	html, err := r.Markdown("# Title\n\n<script>alert(1)</script>\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	if err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}

	if !strings.Contains(html, "<h1>Title</h1>") || !strings.Contains(html, "<table>") {
		t.Errorf("html = %s", html)
	}
	if strings.Contains(html, "<script") {
		t.Errorf("script survived:\n%s", html)
	}
}

func TestRenderer_Render(t *testing.T) {
	r := preview.NewRenderer()
	md := "**legacy**"

	tests := []struct {
		name string
		req  preview.Request
		want preview.Source
	}{
		{"tree wins", preview.Request{Content: tree(t, `{"type":"doc","content":[{"type":"paragraph"}]}`), ContentMD: &md}, preview.SourceTree},
		{"empty tree falls back", preview.Request{Content: tree(t, `{"type":"doc"}`), ContentMD: &md}, preview.SourceMarkdown},
		{"nothing", preview.Request{}, preview.SourceEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render(tt.req)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if got.Source != tt.want {
				t.Errorf("Source = %q, want %q", got.Source, tt.want)
			}
		})
	}
}

func newServer(t *testing.T) (*repotest.Table[projects.Project], *repotest.Table[docs.Page], http.Handler) {
	t.Helper()
	logger := testLogger()
	cfg := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
	store := storagetest.New()

	projectTable := repotest.NewTable(projects.RecordID, projects.SetRecordID)
	pageTable := repotest.NewTable(docs.PageID, docs.SetPageID)
	cats := categories.New(repotest.NewTable(categories.RecordID, categories.SetRecordID), logger)

	h := preview.NewHandler(
		preview.NewRenderer(),
		projects.New(projectTable, uploads.NewReconciler(store, "project-images", logger), cats, logger, cfg),
		docs.New(repotest.NewTable(docs.SectionID, docs.SetSectionID), pageTable, uploads.NewReconciler(store, "doc-images", logger), logger, cfg),
		logger,
	)

	mux := http.NewServeMux()
	routes.Register(mux, "/api", h.Routes())
	return projectTable, pageTable, mux
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) preview.Result {
	t.Helper()
	var result preview.Result
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return result
}

func TestHandler_Render(t *testing.T) {
	_, _, srv := newServer(t)

	body := `{"content":{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"draft"}]}]}}`
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/preview", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d %s", rec.Code, rec.Body.String())
	}
	if got := decode(t, rec); got.Source != preview.SourceTree || !strings.Contains(got.HTML, "<p>draft</p>") {
		t.Errorf("result = %+v", got)
	}
}

func TestHandler_StoredRecords(t *testing.T) {
	projectTable, pageTable, srv := newServer(t)

	md := "## Legacy body"
	p := projectTable.Seed(projects.Project{Title: "Old", Slug: "old", ContentMD: &md})
	page := pageTable.Seed(docs.Page{Title: "Guide", Slug: "guide", Content: tree(t, `{"type":"doc","content":[{"type":"horizontalRule"}]}`)})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects/"+p.ID.String()+"/preview", nil))
	if got := decode(t, rec); got.Source != preview.SourceMarkdown || !strings.Contains(got.HTML, "<h2>Legacy body</h2>") {
		t.Errorf("project preview = %+v", got)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/pages/"+page.ID.String()+"/preview", nil))
	if got := decode(t, rec); got.Source != preview.SourceTree || !strings.Contains(got.HTML, "<hr>") {
		t.Errorf("page preview = %+v", got)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/pages/"+uuid.NewString()+"/preview", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing page status = %d, want 404", rec.Code)
	}
}
