package uploads_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JaimeStill/portfolio-admin/internal/uploads"
	"github.com/JaimeStill/portfolio-admin/pkg/routes"
	"github.com/google/uuid"
)

func newSessionServer(t *testing.T, maxSize int64) (*uploads.Sessions, http.Handler) {
	t.Helper()
	sessions := uploads.NewSessions(time.Hour, testLogger())
	h := uploads.NewHandler(sessions, testLogger(), maxSize)

	mux := http.NewServeMux()
	routes.Register(mux, "/api", h.Routes())
	return sessions, mux
}

func multipartImage(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(data)
	w.Close()
	return &buf, w.FormDataContentType()
}

func TestHandler_SessionFlow(t *testing.T) {
	sessions, srv := newSessionServer(t, 1<<20)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/uploads/sessions", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("open = %d", rec.Code)
	}

	var info uploads.SessionInfo
	json.NewDecoder(rec.Body).Decode(&info)
	if info.ID == uuid.Nil {
		t.Fatal("open returned no id")
	}
	base := "/api/uploads/sessions/" + info.ID.String()

	body, contentType := multipartImage(t, "Cover.PNG", []byte("\x89PNG\r\n\x1a\nrest"))
	req := httptest.NewRequest(http.MethodPost, base+"/images", body)
	req.Header.Set("Content-Type", contentType)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add image = %d %s", rec.Code, rec.Body.String())
	}

	var staged uploads.Staged
	json.NewDecoder(rec.Body).Decode(&staged)
	if staged.PlaceholderID == "" || staged.ContentType != "image/png" || staged.Name != "Cover.PNG" {
		t.Errorf("staged = %+v", staged)
	}

	reg, _ := sessions.Registry(info.ID)
	if _, ok := reg.Lookup(staged.PlaceholderID); !ok {
		t.Fatal("staged image not in registry")
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, base, nil))
	var found uploads.SessionInfo
	json.NewDecoder(rec.Body).Decode(&found)
	if rec.Code != http.StatusOK || found.Pending != 1 {
		t.Errorf("find = %d %+v", rec.Code, found)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, base+"/images/"+staged.PlaceholderID, nil))
	if rec.Code != http.StatusNoContent || reg.Len() != 0 {
		t.Errorf("remove image = %d, pending %d", rec.Code, reg.Len())
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, base, nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("close = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, base, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("find after close = %d, want 404", rec.Code)
	}
}

func TestHandler_AddImageRejects(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		maxSize  int64
		want     int
	}{
		{"not an image", "notes.txt", []byte("plain text body"), 1 << 20, http.StatusBadRequest},
		{"empty file", "empty.png", nil, 1 << 20, http.StatusBadRequest},
		{"too large", "big.png", append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 4096)...), 1024, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, srv := newSessionServer(t, tt.maxSize)
			id := sessions.Open()

			body, contentType := multipartImage(t, tt.filename, tt.data)
			req := httptest.NewRequest(http.MethodPost, "/api/uploads/sessions/"+id.String()+"/images", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHandler_UnknownSession(t *testing.T) {
	_, srv := newSessionServer(t, 1<<20)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/uploads/sessions/"+uuid.NewString(), nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/uploads/sessions/not-a-uuid", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAccepted(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"image/png", true},
		{"image/svg+xml", true},
		{"application/pdf", true},
		{"text/plain; charset=utf-8", false},
		{"application/octet-stream", false},
	}

	for _, tt := range tests {
		if got := uploads.Accepted(tt.contentType); got != tt.want {
			t.Errorf("Accepted(%q) = %v, want %v", tt.contentType, got, tt.want)
		}
	}
}
