package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/plbank/internal/accounts"
	"github.com/cleared-dev/plbank/internal/model"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Index       int // position in the validated slice
	Rule        string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("transaction %d [%s]: %s", e.Index, e.Rule, e.Description)
}

// AccountChecker tests whether an account exists.
type AccountChecker interface {
	Exists(name string) bool
}

// Rule names reported by Validate.
const (
	RuleBalanced  = "balanced"
	RuleCurrency  = "single-currency"
	RuleAccount   = "account"
	RulePrecision = "precision"
	RuleDate      = "date"
	RuleNarration = "narration"
)

var hundred = decimal.NewFromInt(100)

// Validate checks every transaction: both postings sum to exactly zero in
// one currency, accounts are well-formed and known, amounts have at most
// two decimal places, and date and narration are set.
func Validate(txns []model.Transaction, known AccountChecker) []ValidationError {
	var errs []ValidationError
	add := func(i int, rule, format string, args ...any) {
		errs = append(errs, ValidationError{Index: i, Rule: rule, Description: fmt.Sprintf(format, args...)})
	}

	for i, txn := range txns {
		if !txn.Sum().IsZero() {
			add(i, RuleBalanced, "postings sum to %s", txn.Sum())
		}

		if txn.Postings[0].Units.Currency != txn.Postings[1].Units.Currency {
			add(i, RuleCurrency, "currencies %q and %q differ",
				txn.Postings[0].Units.Currency, txn.Postings[1].Units.Currency)
		}

		for _, p := range txn.Postings {
			if err := accounts.Validate(p.Account); err != nil {
				add(i, RuleAccount, "%v", err)
			} else if known != nil && !known.Exists(p.Account) {
				add(i, RuleAccount, "unknown account %q", p.Account)
			}

			n := p.Units.Number
			if !n.Mul(hundred).Equal(n.Mul(hundred).Floor()) {
				add(i, RulePrecision, "%s has more than 2 decimal places", n)
			}
		}

		if txn.Date.IsZero() {
			add(i, RuleDate, "missing date")
		}
		if txn.Narration == "" {
			add(i, RuleNarration, "missing narration")
		}
	}
	return errs
}
