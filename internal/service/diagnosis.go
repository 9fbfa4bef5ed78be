package service

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
)

// ResolvePositions derives the dominant and optional secondary position
// from the chosen position and the stomach mix answer. An empty secondary
// means none.
func ResolvePositions(a *entities.QuizAnswers) (dominant, secondary entities.SleepPosition) {
	chosen := a.Position
	if chosen == "" {
		chosen = entities.PositionSide
	}

	if chosen == entities.PositionStomach {
		return entities.PositionStomach, ""
	}

	switch a.StomachMix {
	case entities.StomachMixDominant:
		return entities.PositionStomach, chosen
	case entities.StomachMixPrimary:
		return chosen, entities.PositionStomach
	default:
		return chosen, ""
	}
}

// ProductIDForPosition is the fixed 1:1 position to product mapping.
func ProductIDForPosition(p entities.SleepPosition) entities.ProductID {
	switch p {
	case entities.PositionSide:
		return entities.ProductCube
	case entities.PositionBack:
		return entities.ProductContour
	case entities.PositionStomach:
		return entities.ProductSlim
	}
	panic(fmt.Sprintf("diagnosis: unhandled sleep position %q", p))
}

// BuildInsights returns one insight per selected real symptom, in selection
// order, or the position fallback insight when none was reported.
func BuildInsights(symptoms []entities.Symptom, dominant entities.SleepPosition) []entities.Insight {
	insights := make([]entities.Insight, 0, len(symptoms))
	for _, s := range symptoms {
		for _, rule := range entities.SymptomInsightRules {
			if rule.Symptom != s {
				continue
			}
			insights = append(insights, entities.Insight{
				Symptom:  s,
				ClaimID:  rule.ClaimID,
				Relevant: slices.Contains(rule.RelevantPositions, dominant),
			})
		}
	}

	if len(insights) == 0 {
		insights = append(insights, entities.Insight{
			Symptom:  entities.SymptomNone,
			ClaimID:  entities.ClaimPositionFallback,
			Relevant: true,
		})
	}

	return insights
}

// FitNote gives practical adjustment advice for the computed loft.
func FitNote(position entities.SleepPosition, bucket entities.LoftBucket, loft float64) string {
	if position == entities.PositionStomach {
		return "Stomach sleep usually performs best with a low, flat setup. Keep rotation low and avoid thick stacking."
	}

	if position == entities.PositionBack {
		return fmt.Sprintf(
			`Target around %s" (%s range). Keep the chin neutral and avoid over-padding under the neck.`,
			FormatInches(loft), strings.ToLower(string(bucket)),
		)
	}

	switch bucket {
	case entities.LoftHigh:
		return "High-loft profile: prioritize stable shoulder fill, then fine-tune in small adjustments so the neck line stays level."
	case entities.LoftMedium:
		return "Medium-loft profile: use a balanced setup and adjust only one variable at a time for adaptation."
	default:
		return "Low-loft profile: keep support light but controlled so the head does not drop toward the mattress."
	}
}

// LoftRangeLabel renders the half-inch band around loft, e.g. 3"-4".
func LoftRangeLabel(loft float64) string {
	low := math.Max(minLoftInches, loft-0.5)
	high := math.Min(maxLoftInches, loft+0.5)
	return FormatInches(low) + `"-` + FormatInches(high) + `"`
}

// FormatInches prints whole numbers without decimals and everything else
// with one decimal place.
func FormatInches(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
