package fields_test

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/JaimeStill/portfolio-admin/internal/fields"
)

func TestValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"admin-panel", true},
		{"v2", true},
		{"a-b-c-1", true},
		{"", false},
		{"Admin", false},
		{"double--hyphen", false},
		{"-leading", false},
		{"trailing-", false},
		{"under_score", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			if got := fields.ValidSlug(tt.slug); got != tt.want {
				t.Errorf("ValidSlug(%q) = %v, want %v", tt.slug, got, tt.want)
			}
		})
	}
}

func TestDeriveSlug(t *testing.T) {
	if got := fields.DeriveSlug("", "My Admin_Panel!"); got != "my-admin-panel" {
		t.Errorf("DeriveSlug() = %q", got)
	}
	if got := fields.DeriveSlug(" kept ", "Title"); got != "kept" {
		t.Errorf("DeriveSlug() = %q", got)
	}
}

func TestOptionalURL(t *testing.T) {
	blank := "  "
	if v, err := fields.OptionalURL("demo_url", &blank); err != nil || v != nil {
		t.Errorf("blank = %v, %v", v, err)
	}

	good := " https://github.com/me/site "
	v, err := fields.OptionalURL("github_url", &good)
	if err != nil || *v != "https://github.com/me/site" {
		t.Errorf("good = %v, %v", v, err)
	}

	for _, bad := range []string{"ftp://host/file", "github.com/me", "https://"} {
		if _, err := fields.OptionalURL("demo_url", &bad); err == nil {
			t.Errorf("OptionalURL(%q) expected error", bad)
		}
	}
}

func TestDate_JSON(t *testing.T) {
	var d fields.Date
	if err := json.Unmarshal([]byte(`"2024-03-09"`), &d); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if d.String() != "2024-03-09" {
		t.Errorf("String() = %q", d.String())
	}

	if err := json.Unmarshal([]byte(`"2024-03-09T22:15:00Z"`), &d); err != nil || d.String() != "2024-03-09" {
		t.Errorf("timestamp = %v, %v", d, err)
	}

	out, _ := json.Marshal(d)
	if string(out) != `"2024-03-09"` {
		t.Errorf("Marshal() = %s", out)
	}

	if err := json.Unmarshal([]byte(`"09/03/2024"`), &d); err == nil {
		t.Error("Unmarshal() accepted a non ISO date")
	}
}

func TestDate_Scan(t *testing.T) {
	var d fields.Date
	if err := d.Scan(time.Date(2023, 11, 2, 0, 0, 0, 0, time.Local)); err != nil || d.String() != "2023-11-02" {
		t.Errorf("Scan(time) = %v, %v", d, err)
	}
	if err := d.Scan("2022-01-31"); err != nil || d.String() != "2022-01-31" {
		t.Errorf("Scan(string) = %v, %v", d, err)
	}
	if err := d.Scan(42); err == nil {
		t.Error("Scan(int) expected error")
	}
}

func TestOrdered(t *testing.T) {
	start := fields.NewDate(2024, 1, 10)
	end := fields.NewDate(2024, 1, 9)
	same := fields.NewDate(2024, 1, 10)

	if err := fields.Ordered("started_at", &start, "finished_at", &end); err == nil {
		t.Error("Ordered() accepted end before start")
	}
	if err := fields.Ordered("started_at", &start, "finished_at", &same); err != nil {
		t.Errorf("Ordered() same day = %v", err)
	}
	if err := fields.Ordered("started_at", nil, "finished_at", &end); err != nil {
		t.Errorf("Ordered() open start = %v", err)
	}
}

func TestList(t *testing.T) {
	l := fields.List{" Go ", "", "Postgres", "Go"}.Clean()
	if !reflect.DeepEqual(l, fields.List{"Go", "Postgres"}) {
		t.Errorf("Clean() = %v", l)
	}

	v, err := l.Value()
	if err != nil || string(v.([]byte)) != `["Go","Postgres"]` {
		t.Errorf("Value() = %s, %v", v, err)
	}

	var scanned fields.List
	if err := scanned.Scan([]byte(`["a","b"]`)); err != nil || len(scanned) != 2 {
		t.Errorf("Scan() = %v, %v", scanned, err)
	}
	if err := scanned.Scan(nil); err != nil || scanned == nil || len(scanned) != 0 {
		t.Errorf("Scan(nil) = %#v, %v", scanned, err)
	}

	empty, _ := fields.List(nil).Value()
	if string(empty.([]byte)) != "[]" {
		t.Errorf("nil Value() = %s", empty)
	}
}
