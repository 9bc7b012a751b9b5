package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/plbank/internal/accounts"
	"github.com/cleared-dev/plbank/internal/model"
)

func newImportersCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "importers",
		Short: "List configured importers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, reg, _, err := opts.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			for _, imp := range reg.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", imp.Name(), imp.AccountFor(""))
			}
			return nil
		},
	}
}

func newAccountsCommand(opts *globalOptions) *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List the accounts imported transactions may post to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, _, err := opts.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			known := accounts.NewService(cfg.Accounts()...)

			names := known.All()
			if typeName != "" {
				at, err := parseAccountType(typeName)
				if err != nil {
					return err
				}
				names = known.ByType(at)
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "only list accounts of this type (Assets, Liabilities, Equity, Income, Expenses)")
	return cmd
}

func parseAccountType(s string) (model.AccountType, error) {
	for _, at := range model.AccountTypes {
		if strings.EqualFold(s, string(at)) {
			return at, nil
		}
	}
	return "", fmt.Errorf("unknown account type %q", s)
}
