package service

import (
	"fmt"
	"math"
	"strconv"

	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
)

const (
	minLoftInches       = 2.5
	maxLoftInches       = 6.5
	stomachLoftCap      = 3.0
	lowBucketMaxInches  = 3.5
	midBucketMaxInches  = 4.5
	backAdjustInches    = -0.25
	stomachAdjustInches = -1.5
)

// shoulderWidthInches is input A of the gap equation.
// Unknown values are a programming error.
func shoulderWidthInches(w entities.ShoulderWidth) float64 {
	switch w {
	case entities.ShoulderPetite:
		return 4.5
	case entities.ShoulderAverage:
		return 5.75
	case entities.ShoulderBroad:
		return 6.5
	}
	panic(fmt.Sprintf("loft: unhandled shoulder width %q", w))
}

// mattressSinkageInches is input B of the gap equation.
func mattressSinkageInches(f entities.MattressFirmness) float64 {
	switch f {
	case entities.MattressFirm:
		return 1.0
	case entities.MattressMedium:
		return 1.5
	case entities.MattressSoft:
		return 2.0
	}
	panic(fmt.Sprintf("loft: unhandled mattress firmness %q", f))
}

func positionAdjustmentInches(p entities.SleepPosition) float64 {
	switch p {
	case entities.PositionSide:
		return 0
	case entities.PositionBack:
		return backAdjustInches
	case entities.PositionStomach:
		return stomachAdjustInches
	}
	panic(fmt.Sprintf("loft: unhandled sleep position %q", p))
}

// CalculateRequiredLoft applies the gap equation A - B + adjustment,
// caps stomach sleepers at 3", clamps to [2.5, 6.5] and rounds to the
// nearest half inch (halves round up).
//
// The function is pure. It panics when an argument is outside its enum;
// parse host input with the entities.Parse* helpers first.
func CalculateRequiredLoft(
	shoulderWidth entities.ShoulderWidth,
	mattressFirmness entities.MattressFirmness,
	position entities.SleepPosition,
) entities.LoftCalculation {
	a := shoulderWidthInches(shoulderWidth)
	b := mattressSinkageInches(mattressFirmness)
	adjustment := positionAdjustmentInches(position)

	corrected := a - b + adjustment
	if position == entities.PositionStomach {
		corrected = math.Min(corrected, stomachLoftCap)
	}

	loft := roundToHalf(clamp(corrected, minLoftInches, maxLoftInches))

	bucket := entities.LoftLow
	if position != entities.PositionStomach {
		bucket = resolveBucket(loft)
	}

	return entities.LoftCalculation{
		LoftInches:               loft,
		Bucket:                   bucket,
		Explanation:              loftExplanation(a, b, adjustment, loft, position),
		ShoulderWidthInches:      a,
		MattressSinkageInches:    b,
		PositionAdjustmentInches: adjustment,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func roundToHalf(v float64) float64 {
	return math.Floor(v*2+0.5) / 2
}

// resolveBucket places boundary values in the lower bucket.
func resolveBucket(loft float64) entities.LoftBucket {
	switch {
	case loft <= lowBucketMaxInches:
		return entities.LoftLow
	case loft <= midBucketMaxInches:
		return entities.LoftMedium
	default:
		return entities.LoftHigh
	}
}

func loftExplanation(a, b, adjustment, loft float64, position entities.SleepPosition) string {
	if position == entities.PositionStomach {
		return fmt.Sprintf(
			`A (%s") - B (%s") with stomach-position adjustment favors a low-loft setup around %s".`,
			inches(a), inches(b), inches(loft),
		)
	}

	formula := fmt.Sprintf(`A (%s") - B (%s")`, inches(a), inches(b))
	if adjustment < 0 {
		formula += fmt.Sprintf(` + position adjustment (%s")`, inches(adjustment))
	}

	return fmt.Sprintf(`%s = approx %s" required loft.`, formula, inches(loft))
}

// inches prints a value with the shortest exact representation (1, 5.75, -0.25).
func inches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
