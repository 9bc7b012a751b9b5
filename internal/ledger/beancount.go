package ledger

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/plbank/internal/model"
)

const dateFormat = "2006-01-02"

// WriteTransactions renders transactions as beancount text, separated by
// blank lines.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	bw := bufio.NewWriter(w)
	for i, txn := range txns {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return fmt.Errorf("writing transaction %d: %w", i, err)
			}
		}
		if _, err := bw.WriteString(FormatTransaction(txn)); err != nil {
			return fmt.Errorf("writing transaction %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// FormatTransaction renders a single transaction. Metadata keys are
// sorted; the balance value is written as a bare amount.
func FormatTransaction(txn model.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s %s\n",
		txn.Date.Format(dateFormat), txn.Flag, quote(txn.Payee), quote(txn.Narration))

	keys := make([]string, 0, len(txn.Meta.Values))
	for k := range txn.Meta.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := txn.Meta.Values[k]
		if k != model.MetaBalance {
			v = quote(v)
		}
		fmt.Fprintf(&b, "  %s: %s\n", k, v)
	}

	width := 0
	for _, p := range txn.Postings {
		width = max(width, len(p.Account))
	}
	for _, p := range txn.Postings {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, p.Account, p.Units)
	}
	return b.String()
}

// quote escapes s as a beancount string literal.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// Header returns a comment block naming where transactions came from.
func Header(filename, account string, count int) string {
	return ";; " + filename + "\n;; account: " + account + "\n;; transactions: " + strconv.Itoa(count) + "\n"
}

// OpenDirectives returns one open directive per account, dated date.
func OpenDirectives(date time.Time, accounts []string) string {
	var b strings.Builder
	for _, a := range accounts {
		fmt.Fprintf(&b, "%s open %s\n", date.Format(dateFormat), a)
	}
	return b.String()
}
