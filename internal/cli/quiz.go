package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aliskhannn/loftfit-bot/internal/analytics"
	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
	"github.com/aliskhannn/loftfit-bot/internal/repository"
	"github.com/aliskhannn/loftfit-bot/internal/service"
)

type quizOptions struct {
	catalogPath string
	position    string
	symptoms    []string
	mix         string
	shoulder    string
	mattress    string
	sleepHot    string
	events      bool
	json        bool
}

// NewQuizCommand creates the 'loftctl quiz' command.
func NewQuizCommand() *cobra.Command {
	opts := &quizOptions{}

	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Run the pillow quiz with the given answers",
		Long: `Drive a complete quiz run with the answers given as flags and print the
recommendation. The position_mix answer is ignored for stomach sleepers,
who never see that step.

Example:
  loftctl quiz --position Side --symptoms numbness_hands,jaw_headache --mix mixed_primary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuiz(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.catalogPath, "catalog", defaultCatalogPath, "path to the product catalog")
	cmd.Flags().StringVar(&opts.position, "position", "", "primary sleep position (Side, Back, Stomach)")
	cmd.Flags().StringSliceVar(&opts.symptoms, "symptoms", []string{string(entities.SymptomNone)}, "morning symptoms")
	cmd.Flags().StringVar(&opts.mix, "mix", string(entities.StomachMixNone), "stomach rotation (no, mixed_primary, stomach_dominant)")
	cmd.Flags().StringVar(&opts.shoulder, "shoulder", string(entities.ShoulderAverage), "shoulder width")
	cmd.Flags().StringVar(&opts.mattress, "mattress", string(entities.MattressMedium), "mattress firmness")
	cmd.Flags().StringVar(&opts.sleepHot, "sleep-hot", string(entities.SleepHotNo), "whether you sleep hot (Yes, No)")
	cmd.Flags().BoolVar(&opts.events, "events", false, "log the quiz events to stderr")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("position")

	return cmd
}

func runQuiz(out, errOut io.Writer, opts *quizOptions) error {
	catalog, err := repository.NewCatalogRepository(opts.catalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	var notifier service.Notifier
	if opts.events {
		notifier = logNotifier(errOut)
	}

	flow := service.NewQuizFlow(catalog, notifier)
	flow.Open(service.SourceCommand)

	if err := answerQuiz(flow, opts); err != nil {
		return err
	}
	flow.Close()

	r, ok := flow.Result()
	if !ok {
		return service.ErrNoResult
	}

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(newResultView(r))
	}

	printResult(out, r, catalog)
	return nil
}

func answerQuiz(flow *service.QuizFlow, opts *quizOptions) error {
	if err := flow.Submit(entities.StepPosition, opts.position); err != nil {
		return err
	}

	for _, raw := range opts.symptoms {
		s, err := entities.ParseSymptom(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		if err := flow.ToggleSymptom(s); err != nil {
			return err
		}
	}
	if err := flow.SubmitSymptoms(); err != nil {
		return err
	}

	if flow.Step() == entities.StepPositionMix {
		if err := flow.Submit(entities.StepPositionMix, opts.mix); err != nil {
			return err
		}
	}

	answers := []struct {
		step  entities.Step
		value string
	}{
		{entities.StepShoulderWidth, opts.shoulder},
		{entities.StepMattressFirmness, opts.mattress},
		{entities.StepSleepHot, opts.sleepHot},
	}
	for _, a := range answers {
		if err := flow.Submit(a.step, a.value); err != nil {
			return err
		}
	}

	return nil
}

// logNotifier feeds quiz notifications straight into a LogSink that
// writes console-encoded entries to w.
func logNotifier(w io.Writer) service.Notifier {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	sink := analytics.NewLogSink(zap.New(core))

	return service.NotifierFunc(func(name string, payload entities.Payload) {
		_ = sink.Publish(context.Background(), entities.NewEvent(name, payload))
	})
}

type resultView struct {
	DominantPosition   entities.SleepPosition   `json:"dominant_position"`
	SecondaryPosition  entities.SleepPosition   `json:"secondary_position,omitempty"`
	PrimaryProductID   entities.ProductID       `json:"primary_product_id"`
	SecondaryProductID entities.ProductID       `json:"secondary_product_id,omitempty"`
	Loft               entities.LoftCalculation `json:"loft"`
	FitNote            string                   `json:"fit_note"`
	Claims             []entities.ClaimID       `json:"claims"`
}

func newResultView(r entities.QuizResult) resultView {
	v := resultView{
		DominantPosition:  r.DominantPosition,
		SecondaryPosition: r.SecondaryPosition,
		PrimaryProductID:  r.PrimaryProduct.ID,
		Loft:              r.Loft,
		FitNote:           r.FitNote,
		Claims:            make([]entities.ClaimID, 0, len(r.Insights)),
	}
	if r.SecondaryProduct != nil {
		v.SecondaryProductID = r.SecondaryProduct.ID
	}
	for _, in := range r.Insights {
		v.Claims = append(v.Claims, in.ClaimID)
	}
	return v
}

func printResult(w io.Writer, r entities.QuizResult, catalog *repository.CatalogRepository) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow)

	cyan.Fprintf(w, "Recommendation\n")
	fmt.Fprintf(w, "  Primary: ")
	green.Fprintf(w, "%s (%s)\n", r.PrimaryProduct.Name, r.PrimaryProduct.ID)
	fmt.Fprintf(w, "  Dominant position: %s\n", r.DominantPosition)
	if r.SecondaryProduct != nil {
		fmt.Fprintf(w, "  Secondary: %s (%s) for %s sleeping\n", r.SecondaryProduct.Name, r.SecondaryProduct.ID, r.SecondaryPosition)
	}

	fmt.Fprintf(w, "\n")
	printLoft(w, r.Loft)
	fmt.Fprintf(w, "  %s\n", r.FitNote)

	if len(r.Insights) > 0 {
		fmt.Fprintf(w, "\n")
		cyan.Fprintf(w, "Insights\n")
		for _, in := range r.Insights {
			headline := string(in.ClaimID)
			if c, err := catalog.GetClaim(in.ClaimID); err == nil {
				headline = c.Headline
			}
			if in.Relevant {
				fmt.Fprintf(w, "  - %s\n", headline)
			} else {
				yellow.Fprintf(w, "  - %s (less typical for %s sleepers)\n", headline, strings.ToLower(string(r.DominantPosition)))
			}
		}
	}

	if r.SleepHot == entities.SleepHotYes {
		fmt.Fprintf(w, "\n")
		cyan.Fprintf(w, "Cooling\n")
		if c := r.PrimaryProduct.Cooling; c.Enabled {
			fmt.Fprintf(w, "  %s: %s\n", c.VariantName, c.Details)
		} else {
			fmt.Fprintf(w, "  Look for breathable fill and a cooling cover.\n")
		}
	}
}
