// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
	"github.com/aliskhannn/loftfit-bot/internal/service"
)

// Error and status messages.
const (
	msgInternalError  = "Something went wrong. Please try again later."
	msgUnknownCommand = "Unknown command. Available commands:\n\n/quiz - find your pillow\n/restart - start the quiz over\n/close - close the quiz\n/help - show help"
	msgOutdatedButton = "This question is outdated. Use the latest message."
	msgQuizNotOpen    = "This quiz has ended. Send /quiz to start again."
	msgPickSymptom    = "Pick at least one option first."
	msgQuizClosed     = "Quiz closed. Send /quiz whenever you want to try again."
	msgNothingToClose = "There is no open quiz."
)

// Result screen texts.
const (
	stomachNote     = "Stomach sleepers usually perform best with a thin profile. Keep loft low to limit cervical rotation and extension load."
	coolingNote     = "If you sleep hot, prioritize breathable fill and a cooling cover on the final Amazon listing."
	purchaseNote    = "Transparent recommendation: the button opens the Amazon listing."
	marketplaceNote = "Prices, shipping, and returns are handled by Amazon and may vary."
	purchaseFrom    = "quiz_result"
)

var fitTips = []string{
	"Start from the calculated loft and adjust in small increments only.",
	"Re-check your line after 2-3 nights before changing direction.",
	"If pain is severe or persistent, consider speaking with a clinician.",
}

type stepCopy struct {
	heading    string
	subheading string
}

var stepTexts = map[entities.Step]stepCopy{
	entities.StepPosition: {
		heading:    "Primary Sleep Position?",
		subheading: "Your primary position defines your pillow type.",
	},
	entities.StepSymptoms: {
		heading:    "Morning Symptoms?",
		subheading: "Symptoms add context, while prescription type still follows your dominant position.",
	},
	entities.StepPositionMix: {
		heading:    "Do You Also Rotate to Stomach Sleep?",
		subheading: "If yes, we can show primary + secondary prescriptions so you understand the tradeoff.",
	},
	entities.StepShoulderWidth: {
		heading:    "Shoulder Width?",
		subheading: "This defines A in the gap equation (A - B = required loft).",
	},
	entities.StepMattressFirmness: {
		heading:    "Mattress Firmness?",
		subheading: "This defines B (mattress sinkage) in your loft estimate.",
	},
	entities.StepSleepHot: {
		heading:    "Do You Typically Sleep Hot?",
		subheading: "If yes, we will add a cooling-material recommendation in your result.",
	},
}

// welcomeMarkdownV2 builds the /start message.
func welcomeMarkdownV2() string {
	var sb strings.Builder

	sb.WriteString(bold("LoftFit"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Answer a few quick questions and get a pillow matched to your sleep position, " +
		"shoulder width and mattress."))
	sb.WriteString("\n\n")
	sb.WriteString(md("We estimate the loft you need with a simple gap equation: shoulder width (A) minus mattress sinkage (B)."))
	sb.WriteString("\n\n")
	sb.WriteString(italic("Educational content only. Not a diagnosis or a substitute for medical care."))

	return sb.String()
}

func helpMarkdownV2() string {
	var sb strings.Builder

	sb.WriteString(bold("Commands"))
	sb.WriteString("\n\n")
	sb.WriteString(md("/quiz - find your pillow"))
	sb.WriteString("\n")
	sb.WriteString(md("/restart - start the quiz over"))
	sb.WriteString("\n")
	sb.WriteString(md("/close - close the quiz"))
	sb.WriteString("\n")
	sb.WriteString(md("/help - show this message"))

	return sb.String()
}

// formatStep renders a question screen.
func formatStep(step entities.Step, answers entities.QuizAnswers, p service.Progress) string {
	var sb strings.Builder

	sb.WriteString(formatProgress(p))
	sb.WriteString("\n\n")

	texts := stepTexts[step]
	sb.WriteString(bold(texts.heading))
	sb.WriteString("\n")
	sb.WriteString(italic(texts.subheading))

	switch step {
	case entities.StepSymptoms:
		if len(answers.Symptoms) > 0 {
			sb.WriteString("\n\n")
			sb.WriteString(md(fmt.Sprintf("Selected: %d", len(answers.Symptoms))))
		}
	case entities.StepPositionMix:
		sb.WriteString("\n")
		for _, m := range entities.StomachMixes {
			sb.WriteString("\n")
			sb.WriteString(md(fmt.Sprintf("• %s: %s", m.Title(answers.Position), m.Subtitle())))
		}
	case entities.StepShoulderWidth:
		sb.WriteString("\n")
		for _, w := range entities.ShoulderWidths {
			sb.WriteString("\n")
			sb.WriteString(md(fmt.Sprintf("• %s: %s", w, w.Subtitle())))
		}
	case entities.StepMattressFirmness:
		sb.WriteString("\n")
		for _, f := range entities.MattressFirmnesses {
			sb.WriteString("\n")
			sb.WriteString(md(fmt.Sprintf("• %s: %s", f, f.Subtitle())))
		}
	}

	return sb.String()
}

// formatResult renders the recommendation screen. Insight headlines come
// from the claims registry; claims that cannot be resolved are skipped.
func formatResult(r entities.QuizResult, p service.Progress, claims func(entities.ClaimID) *entities.Claim) string {
	var sb strings.Builder

	sb.WriteString(formatProgress(p))
	sb.WriteString("\n\n")

	sb.WriteString(bold("Your Amazon Pick Is Ready"))
	sb.WriteString("\n")
	if r.HasClinicalSymptoms {
		sb.WriteString(italic("Based on your symptoms, sleep pattern, and loft inputs."))
	} else {
		sb.WriteString(italic("Based on your sleep pattern and loft inputs."))
	}
	sb.WriteString("\n\n")

	sb.WriteString(bold(r.PrimaryProduct.Name))
	sb.WriteString("\n")
	sb.WriteString(italic(r.PrimaryProduct.Tagline))
	sb.WriteString("\n")
	sb.WriteString(md(r.PrimaryProduct.Description))
	sb.WriteString("\n\n")

	positions := "Dominant position: " + string(r.DominantPosition)
	if r.HasSecondary() {
		positions += " • Secondary position: " + string(r.SecondaryPosition)
	}
	sb.WriteString(md(positions))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Shoulder width: %s • Mattress feel: %s", r.ShoulderWidth, r.MattressFirmness)))
	sb.WriteString("\n\n")

	sb.WriteString(bold("A - B Loft Formula"))
	sb.WriteString("\n")
	sb.WriteString(md(formatFormula(r)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Recommended bucket: %s (%s)", r.Loft.Bucket, service.LoftRangeLabel(r.Loft.LoftInches))))
	sb.WriteString("\n")
	sb.WriteString(md(r.FitNote))
	sb.WriteString("\n\n")

	sb.WriteString(bold("Why this loft"))
	sb.WriteString("\n")
	sb.WriteString(md(r.Loft.Explanation))

	if r.InvolvesStomach() {
		sb.WriteString("\n\n")
		sb.WriteString(bold("Stomach sleeper note"))
		sb.WriteString("\n")
		sb.WriteString(md(stomachNote))
	}

	if r.SecondaryProduct != nil {
		sb.WriteString("\n\n")
		sb.WriteString(bold("Secondary Option"))
		sb.WriteString("\n")
		sb.WriteString(md(r.SecondaryProduct.Name))
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("Use this if your %s sleeping becomes dominant.", r.SecondaryPosition)))
	}

	sb.WriteString("\n\n")
	sb.WriteString(bold("Quick fit tips"))
	for _, tip := range fitTips {
		sb.WriteString("\n")
		sb.WriteString(md("- " + tip))
	}

	if r.SleepHot == entities.SleepHotYes {
		sb.WriteString("\n\n")
		sb.WriteString(bold("Cooling note"))
		sb.WriteString("\n")
		sb.WriteString(md(coolingNote))
		if c := r.PrimaryProduct.Cooling; c.Enabled {
			sb.WriteString("\n")
			sb.WriteString(md(fmt.Sprintf("%s: %s", c.VariantName, c.Details)))
		}
	}

	if section := formatInsights(r, claims); section != "" {
		sb.WriteString("\n\n")
		sb.WriteString(section)
	}

	sb.WriteString("\n\n")
	sb.WriteString(italic(purchaseNote))
	sb.WriteString("\n")
	sb.WriteString(italic(marketplaceNote))

	return sb.String()
}

func formatFormula(r entities.QuizResult) string {
	formula := fmt.Sprintf(`A (%s = %s") - B (%s = %s")`,
		r.ShoulderWidth, service.FormatInches(r.Loft.ShoulderWidthInches),
		r.MattressFirmness, service.FormatInches(r.Loft.MattressSinkageInches),
	)
	if r.Loft.PositionAdjustmentInches != 0 {
		formula += fmt.Sprintf(` + position adjustment (%s")`, service.FormatInches(r.Loft.PositionAdjustmentInches))
	}
	return formula + fmt.Sprintf(` = %s" required loft`, service.FormatInches(r.Loft.LoftInches))
}

func formatInsights(r entities.QuizResult, claims func(entities.ClaimID) *entities.Claim) string {
	if claims == nil {
		return ""
	}

	var (
		sb         strings.Builder
		disclaimer string
		written    int
	)
	for _, in := range r.Insights {
		c := claims(in.ClaimID)
		if c == nil {
			continue
		}
		if written == 0 {
			sb.WriteString(bold("What your answers suggest"))
		}
		written++

		line := "• " + c.Headline
		if !in.Relevant {
			line += fmt.Sprintf(" (less typical for %s sleepers)", strings.ToLower(string(r.DominantPosition)))
		}
		sb.WriteString("\n")
		sb.WriteString(md(line))
		if disclaimer == "" {
			disclaimer = c.Disclaimer
		}
	}

	if disclaimer != "" {
		sb.WriteString("\n")
		sb.WriteString(italic(disclaimer))
	}
	return sb.String()
}

// formatPurchase renders the message that carries the marketplace link.
func formatPurchase(p *entities.Product) string {
	return fmt.Sprintf("%s\n%s", bold(p.Name), md(p.Tagline))
}
