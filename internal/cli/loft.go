package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
	"github.com/aliskhannn/loftfit-bot/internal/service"
)

type loftOptions struct {
	shoulder string
	mattress string
	position string
	json     bool
}

// NewLoftCommand creates the 'loftctl loft' command.
func NewLoftCommand() *cobra.Command {
	opts := &loftOptions{}

	cmd := &cobra.Command{
		Use:   "loft",
		Short: "Calculate the required pillow loft",
		Long: `Apply the gap equation A - B + position adjustment, where A is the
shoulder width and B the mattress sinkage, and print the rounded loft.

Example:
  loftctl loft --shoulder "Broad / Muscular" --mattress Firm --position Side`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLoft(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.shoulder, "shoulder", string(entities.ShoulderAverage), "shoulder width (Petite, Average, \"Broad / Muscular\")")
	cmd.Flags().StringVar(&opts.mattress, "mattress", string(entities.MattressMedium), "mattress firmness (Firm, Medium, Soft)")
	cmd.Flags().StringVar(&opts.position, "position", "", "sleep position (Side, Back, Stomach)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the calculation as JSON")
	_ = cmd.MarkFlagRequired("position")

	cmd.AddCommand(newLoftTableCommand())

	return cmd
}

func runLoft(w io.Writer, opts *loftOptions) error {
	shoulder, err := entities.ParseShoulderWidth(opts.shoulder)
	if err != nil {
		return err
	}
	mattress, err := entities.ParseMattressFirmness(opts.mattress)
	if err != nil {
		return err
	}
	position, err := entities.ParseSleepPosition(opts.position)
	if err != nil {
		return err
	}

	calc := service.CalculateRequiredLoft(shoulder, mattress, position)

	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(calc)
	}

	printLoft(w, calc)
	return nil
}

func printLoft(w io.Writer, calc entities.LoftCalculation) {
	cyan := color.New(color.FgCyan, color.Bold)

	cyan.Fprintf(w, "Required loft: %s\" (%s)\n", service.FormatInches(calc.LoftInches), calc.Bucket)
	fmt.Fprintf(w, "  Range: %s\n", service.LoftRangeLabel(calc.LoftInches))
	fmt.Fprintf(w, "  A (shoulder width): %s\"\n", service.FormatInches(calc.ShoulderWidthInches))
	fmt.Fprintf(w, "  B (mattress sinkage): %s\"\n", service.FormatInches(calc.MattressSinkageInches))
	if calc.PositionAdjustmentInches != 0 {
		fmt.Fprintf(w, "  Position adjustment: %s\"\n", service.FormatInches(calc.PositionAdjustmentInches))
	}
	fmt.Fprintf(w, "  %s\n", calc.Explanation)
}

func newLoftTableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the loft for every input combination",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printLoftTable(cmd.OutOrStdout())
			return nil
		},
	}
}

func printLoftTable(w io.Writer) {
	cyan := color.New(color.FgCyan, color.Bold)
	buckets := map[entities.LoftBucket]*color.Color{
		entities.LoftLow:    color.New(color.FgGreen),
		entities.LoftMedium: color.New(color.FgYellow),
		entities.LoftHigh:   color.New(color.FgRed),
	}

	cyan.Fprintf(w, "%-8s %-17s %-8s %6s  %s\n", "POSITION", "SHOULDER", "MATTRESS", "LOFT", "BUCKET")
	for _, p := range entities.SleepPositions {
		for _, s := range entities.ShoulderWidths {
			for _, m := range entities.MattressFirmnesses {
				calc := service.CalculateRequiredLoft(s, m, p)
				fmt.Fprintf(w, "%-8s %-17s %-8s %5s\"  ", p, s, m, service.FormatInches(calc.LoftInches))
				buckets[calc.Bucket].Fprintf(w, "%s\n", calc.Bucket)
			}
		}
	}
}
