package export

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFilename(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		dataset  string
		expected string
	}{
		{"inventory", "inventory-report-2026-08-28.csv"},
		{"distribution", "distribution-report-2026-08-28.csv"},
		{"patients", "patients-report-2026-08-28.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.dataset, func(t *testing.T) {
			if got := Filename(tt.dataset, now); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

// TestRender verifies comma-joined rows with a trailing newline on every
// line, including the last.
func TestRender(t *testing.T) {
	columns := []string{"id", "name", "stock"}
	rows := [][]string{
		{"1", "Paracetamol 500mg", "345"},
		{"2", "Amoxicillin 250mg", "212"},
	}

	got := Render(columns, rows)
	expected := "id,name,stock\n1,Paracetamol 500mg,345\n2,Amoxicillin 250mg,212\n"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}

	if !strings.HasSuffix(got, "\n") {
		t.Error("Rendered CSV must end with a newline")
	}
}

func TestRenderHeaderOnly(t *testing.T) {
	got := Render([]string{"id", "name"}, nil)
	if got != "id,name\n" {
		t.Errorf("Expected header with trailing newline, got %q", got)
	}
}

func TestWrite(t *testing.T) {
	rr := httptest.NewRecorder()
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	Write(rr, "inventory", []string{"id"}, [][]string{{"1"}}, now)

	if ct := rr.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Errorf("Expected text/csv content type, got %q", ct)
	}
	cd := rr.Header().Get("Content-Disposition")
	if !strings.Contains(cd, `inventory-report-2026-08-28.csv`) {
		t.Errorf("Expected filename in Content-Disposition, got %q", cd)
	}
	if rr.Body.String() != "id\n1\n" {
		t.Errorf("Unexpected body %q", rr.Body.String())
	}
}
