package domain

import "time"

// DateLayout is the calendar-date format used by every dated field.
const DateLayout = "2006-01-02"

// DrugStockStatus is the display status derived for a drug record.
type DrugStockStatus string

const (
	StatusAdequate DrugStockStatus = "adequate"
	StatusLow      DrugStockStatus = "low"
	StatusExpired  DrugStockStatus = "expired"
)

// Midnight truncates t to its calendar date in UTC.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a calendar date in DateLayout.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// StatusOf derives the display status of a drug as of today.
//
// Precedence, first match wins:
//  1. expiry date strictly before today -> expired
//  2. stock below reorder level        -> low
//  3. otherwise                        -> adequate
//
// Expiry dominates stock level: an expired drug is reported expired even when
// well stocked. An unparseable expiry date never marks a drug expired; the
// validation layer rejects such dates before they reach the store.
func StatusOf(d Drug, today time.Time) DrugStockStatus {
	if expiry, err := ParseDate(d.ExpiryDate); err == nil {
		if expiry.Before(Midnight(today)) {
			return StatusExpired
		}
	}
	if d.Stock < d.ReorderLevel {
		return StatusLow
	}
	return StatusAdequate
}
