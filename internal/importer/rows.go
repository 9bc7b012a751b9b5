package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/plbank/internal/model"
	"github.com/cleared-dev/plbank/internal/narration"
)

const (
	delimiter = ';'
	numFields = 9 // includes the always-empty trailing column
	colPrefix = "#"

	colBookingDate = "Data księgowania"
	colDescription = "Opis operacji"
	colTitle       = "Tytuł"
	colAmount      = "Kwota"
	colBalance     = "Saldo po operacji"
)

var requiredColumns = []string{colBookingDate, colDescription, colTitle, colAmount, colBalance}

var (
	// ErrNoHeader means the cleaned export has no column header line.
	ErrNoHeader = errors.New("missing header line")
	// ErrMissingColumn means the header lacks a column the parser needs.
	ErrMissingColumn = errors.New("missing column")
)

// RowResult is the outcome of parsing one data row: a row or the reason
// it was rejected.
type RowResult struct {
	Line int
	Row  model.ParsedRow
	Err  error
}

// OK reports whether the row parsed.
func (r RowResult) OK() bool { return r.Err == nil }

// ParseRows reads cleaned export text. Structural problems (no header,
// wrong field count, missing columns) are returned as an error; problems
// with a single row are carried in its RowResult.
func ParseRows(r io.Reader) ([]RowResult, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = numFields
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading export CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	cols, err := columnIndex(records[0])
	if err != nil {
		return nil, err
	}

	results := make([]RowResult, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 1
		row, err := parseRow(rec, cols)
		if err != nil {
			results = append(results, RowResult{Line: line, Err: err})
			continue
		}
		row.Line = line
		results = append(results, RowResult{Line: line, Row: row})
	}
	return results, nil
}

// columnIndex maps column names to positions, dropping the trailing empty
// column and the '#' prefix of each name.
func columnIndex(header []string) (map[string]int, error) {
	if !strings.HasPrefix(header[0], colPrefix) {
		return nil, fmt.Errorf("%w: first record %q", ErrNoHeader, header[0])
	}
	if strings.TrimSpace(header[numFields-1]) != "" {
		return nil, fmt.Errorf("expected empty trailing column, got %q", header[numFields-1])
	}

	cols := make(map[string]int, numFields-1)
	for i, name := range header[:numFields-1] {
		cols[strings.TrimSpace(strings.TrimPrefix(name, colPrefix))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
	}
	return cols, nil
}

func parseRow(rec []string, cols map[string]int) (model.ParsedRow, error) {
	balance, err := ParseAmount(rec[cols[colBalance]])
	if err != nil {
		return model.ParsedRow{}, fmt.Errorf("parsing balance %q: %w", rec[cols[colBalance]], err)
	}

	amount, err := ParseAmount(rec[cols[colAmount]])
	if err != nil {
		return model.ParsedRow{}, fmt.Errorf("parsing amount %q: %w", rec[cols[colAmount]], err)
	}

	date, err := ParseDate(rec[cols[colBookingDate]])
	if err != nil {
		return model.ParsedRow{}, fmt.Errorf("parsing date %q: %w", rec[cols[colBookingDate]], err)
	}

	desc := rec[cols[colDescription]]
	narr, loc, err := narration.Derive(rec[cols[colTitle]], desc)
	if err != nil {
		return model.ParsedRow{}, fmt.Errorf("deriving narration: %w", err)
	}

	return model.ParsedRow{
		BookingDate: date,
		Amount:      amount,
		Balance:     balance,
		Description: desc,
		Narration:   narr,
		Location:    loc,
	}, nil
}

var amountCleaner = strings.NewReplacer(" ", "", "\u00a0", "", ",", ".")

// ParseAmount parses a Polish-formatted number like "-1 234,56".
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(amountCleaner.Replace(s)))
}

// ParseDate parses a booking date, preferring day-first when ambiguous.
func ParseDate(s string) (time.Time, error) {
	t, err := dateparse.ParseIn(strings.TrimSpace(s), time.UTC, dateparse.PreferMonthFirst(false))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
