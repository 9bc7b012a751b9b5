package importer

import (
	"github.com/charmbracelet/log"

	"github.com/cleared-dev/plbank/internal/model"
)

// BuildOptions configures transaction assembly.
type BuildOptions struct {
	Account  string // owning account
	Currency string
	Filename string // recorded in transaction metadata
}

// Build turns parsed rows into transactions, in row order. Rejected rows
// are logged as warnings and skipped.
func Build(results []RowResult, opts BuildOptions, logger *log.Logger) []model.Transaction {
	var txns []model.Transaction
	for _, res := range results {
		if !res.OK() {
			logger.Warn("skipping row", "file", opts.Filename, "row", res.Line, "err", res.Err)
			continue
		}
		txns = append(txns, NewTransaction(res.Row, opts))
	}
	return txns
}

// NewTransaction builds the balanced transaction for one row: the owning
// account takes the negated amount, the placeholder account the amount.
func NewTransaction(row model.ParsedRow, opts BuildOptions) model.Transaction {
	units := model.Amount{Number: row.Amount, Currency: opts.Currency}
	balance := model.Amount{Number: row.Balance, Currency: opts.Currency}

	values := map[string]string{
		model.MetaDescription: row.Description,
		model.MetaBalance:     balance.String(),
	}
	if row.HasLocation() {
		values[model.MetaLocation] = row.Location
	}

	return model.Transaction{
		Date:      row.BookingDate,
		Flag:      model.FlagCleared,
		Payee:     "",
		Narration: row.Narration,
		Meta: model.Meta{
			Filename: opts.Filename,
			Lineno:   row.Line,
			Values:   values,
		},
		Postings: [2]model.Posting{
			{Account: opts.Account, Units: units.Neg()},
			{Account: model.PlaceholderAccount, Units: units},
		},
	}
}
