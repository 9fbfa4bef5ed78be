// Package cli implements loftctl, the operator command line for the quiz
// engine, its catalog and the recorded analytics events.
package cli

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

const defaultCatalogPath = "assets/catalog.yaml"

// NewRootCommand creates the loftctl root command.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loftctl",
		Short: "Pillow loft calculator and quiz tooling",
		Long: `loftctl runs the loft gap equation and the pillow quiz from the command line,
checks the product catalog and inspects recorded quiz events.`,
		Version:      Version,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewLoftCommand())
	cmd.AddCommand(NewQuizCommand())
	cmd.AddCommand(NewCatalogCommand())
	cmd.AddCommand(NewEventsCommand(openEventStore))

	return cmd
}
