package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/plbank/internal/importer"
)

func newIdentifyCommand(opts *globalOptions) *cobra.Command {
	var only string

	cmd := &cobra.Command{
		Use:   "identify FILE...",
		Short: "List the importers that accept each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, reg, _, err := opts.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			for _, path := range args {
				matched, err := claimants(reg, only, path)
				if err != nil {
					return err
				}
				if len(matched) == 0 {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", path, strings.Join(importerNames(matched), ","))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&only, "importer", "", "only try the named importer")
	return cmd
}

func newFileAccountCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "file-account FILE",
		Short: "Print the account a file belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, reg, _, err := opts.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			matched := reg.Identify(args[0])
			if len(matched) == 0 {
				return fmt.Errorf("no importer accepts %s", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), matched[0].AccountFor(args[0]))
			return nil
		},
	}
}

// claimants returns the importers that accept path. When name is set only
// that importer is tried.
func claimants(reg *importer.Registry, name, path string) ([]importer.Importer, error) {
	if name == "" {
		return reg.Identify(path), nil
	}
	imp := reg.Get(name)
	if imp == nil {
		return nil, fmt.Errorf("unknown importer %q", name)
	}
	if !imp.Identify(path) {
		return nil, nil
	}
	return []importer.Importer{imp}, nil
}

func importerNames(imps []importer.Importer) []string {
	names := make([]string, 0, len(imps))
	for _, imp := range imps {
		names = append(names, imp.Name())
	}
	return names
}
