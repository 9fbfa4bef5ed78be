package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aliskhannn/loftfit-bot/internal/repository"
)

// NewCatalogCommand creates the 'loftctl catalog' command group.
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the product catalog",
	}

	cmd.AddCommand(newCatalogValidateCommand())

	return cmd
}

func newCatalogValidateCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check products and claim evidence coverage",
		Long: `Load the catalog and check that every claim cites at least one known
evidence source.

Exit code: 0 if valid, 1 if problems were found`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return validateCatalog(cmd.OutOrStdout(), path)
		},
	}

	cmd.Flags().StringVar(&path, "path", defaultCatalogPath, "path to the product catalog")

	return cmd
}

func validateCatalog(w io.Writer, path string) error {
	catalog, err := repository.NewCatalogRepository(path)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	for _, p := range catalog.Products() {
		fmt.Fprintf(w, "  %-8s %s\n", p.ID, p.Name)
	}

	problems := catalog.ValidateClaimCoverage()
	if len(problems) == 0 {
		green.Fprintf(w, "Catalog %s is valid\n", path)
		return nil
	}

	for _, p := range problems {
		red.Fprintf(w, "  ✗ %s\n", p)
	}
	return fmt.Errorf("catalog %s: %d claim coverage problem(s)", path, len(problems))
}
