// Package export implements the CSV report collaborator: a formatting
// contract only, never a source of computed data. Rows are comma-joined with
// a trailing newline and served under a fixed filename pattern.
package export

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Filename returns the fixed report filename: {dataset}-report-{ISO-date}.csv.
func Filename(dataset string, now time.Time) string {
	return fmt.Sprintf("%s-report-%s.csv", dataset, now.Format("2006-01-02"))
}

// Render joins the column list and each row with commas and terminates every
// line, including the last, with a newline.
func Render(columns []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(columns, ","))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}
	return b.String()
}

// Write serves a rendered CSV as a file download.
func Write(w http.ResponseWriter, dataset string, columns []string, rows [][]string, now time.Time) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", Filename(dataset, now)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(Render(columns, rows)))
}
