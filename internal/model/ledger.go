package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Flag marks the state of a transaction.
type Flag string

// FlagCleared marks a transaction confirmed by the bank.
const FlagCleared Flag = "*"

// Metadata keys attached to imported transactions.
const (
	MetaDescription = "description"
	MetaLocation    = "location"
	MetaBalance     = "balance"
)

// Amount is a number in a single currency.
type Amount struct {
	Number   decimal.Decimal
	Currency string
}

// String formats the amount as "12.50 PLN", keeping extra precision if
// the number has more than two decimal places.
func (a Amount) String() string {
	return FormatNumber(a.Number) + " " + a.Currency
}

// FormatNumber renders d with at least two decimal places.
func FormatNumber(d decimal.Decimal) string {
	if d.Equal(d.Round(2)) {
		return d.StringFixed(2)
	}
	return d.String()
}

// Neg returns the amount with its sign flipped.
func (a Amount) Neg() Amount {
	return Amount{Number: a.Number.Neg(), Currency: a.Currency}
}

// Posting is one leg of a transaction.
type Posting struct {
	Account string
	Units   Amount
}

// Meta identifies where a transaction came from, plus free-form values.
type Meta struct {
	Filename string
	Lineno   int
	Values   map[string]string
}

// Transaction is a balanced two-posting ledger entry.
type Transaction struct {
	Date      time.Time
	Flag      Flag
	Payee     string
	Narration string
	Meta      Meta
	Postings  [2]Posting
}

// Sum returns the total of both postings. Zero for a balanced transaction.
func (t Transaction) Sum() decimal.Decimal {
	return t.Postings[0].Units.Number.Add(t.Postings[1].Units.Number)
}
