package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParsedRow is one validated data row of a bank export.
type ParsedRow struct {
	Line        int // 1-based data row index in file order
	BookingDate time.Time
	Amount      decimal.Decimal // negative = outflow
	Balance     decimal.Decimal // account balance after the operation
	Description string          // raw "Opis operacji" field
	Narration   string
	Location    string // empty when none was extracted
}

// HasLocation reports whether a place name was extracted from the title.
func (r ParsedRow) HasLocation() bool {
	return r.Location != ""
}
