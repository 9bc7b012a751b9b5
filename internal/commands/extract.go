package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/plbank/internal/accounts"
	"github.com/cleared-dev/plbank/internal/ledger"
	"github.com/cleared-dev/plbank/internal/model"
)

type extractOptions struct {
	importer string
	open     bool
}

// batch is the output of one importer over one file.
type batch struct {
	path    string
	account string
	txns    []model.Transaction
}

func newExtractCommand(opts *globalOptions) *cobra.Command {
	var eo extractOptions

	cmd := &cobra.Command{
		Use:   "extract FILE...",
		Short: "Extract transactions and print them as beancount entries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, eo, args)
		},
	}

	cmd.Flags().StringVar(&eo.importer, "importer", "", "only try the named importer")
	cmd.Flags().BoolVar(&eo.open, "open", false, "emit open directives for the known accounts")
	return cmd
}

func runExtract(stdout, stderr io.Writer, opts *globalOptions, eo extractOptions, paths []string) error {
	cfg, reg, logger, err := opts.setup(stderr)
	if err != nil {
		return err
	}
	known := accounts.NewService(cfg.Accounts()...)

	var batches []batch
	for _, path := range paths {
		matched, err := claimants(reg, eo.importer, path)
		if err != nil {
			return err
		}
		if len(matched) == 0 {
			logger.Warn("no importer accepts file", "file", path)
			continue
		}

		for _, imp := range matched {
			txns, err := imp.Extract(path, nil)
			if err != nil {
				return fmt.Errorf("%s: %w", imp.Name(), err)
			}
			if err := checkTransactions(txns, known); err != nil {
				return fmt.Errorf("%s: %s: %w", imp.Name(), path, err)
			}
			batches = append(batches, batch{path: path, account: imp.AccountFor(path), txns: txns})
		}
	}

	first := true
	if eo.open {
		if date, ok := earliest(batches); ok {
			var names []string
			for _, at := range model.AccountTypes {
				names = append(names, known.ByType(at)...)
			}
			fmt.Fprint(stdout, ledger.OpenDirectives(date, names))
			first = false
		}
	}

	for _, b := range batches {
		if !first {
			fmt.Fprintln(stdout)
		}
		first = false
		fmt.Fprint(stdout, ledger.Header(b.path, b.account, len(b.txns)))
		if len(b.txns) > 0 {
			fmt.Fprintln(stdout)
		}
		if err := ledger.WriteTransactions(stdout, b.txns); err != nil {
			return fmt.Errorf("writing transactions: %w", err)
		}
	}
	return nil
}

// earliest returns the first transaction date across batches.
func earliest(batches []batch) (time.Time, bool) {
	var first time.Time
	found := false
	for _, b := range batches {
		for _, txn := range b.txns {
			if !found || txn.Date.Before(first) {
				first = txn.Date
				found = true
			}
		}
	}
	return first, found
}

func checkTransactions(txns []model.Transaction, known ledger.AccountChecker) error {
	verrs := ledger.Validate(txns, known)
	if len(verrs) == 0 {
		return nil
	}
	errs := make([]error, len(verrs))
	for i, ve := range verrs {
		errs[i] = ve
	}
	return fmt.Errorf("validation failed: %w", errors.Join(errs...))
}
