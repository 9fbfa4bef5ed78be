package entities

// LoftBucket is the display grouping of a continuous loft value.
type LoftBucket string

const (
	LoftLow    LoftBucket = "Low"
	LoftMedium LoftBucket = "Medium"
	LoftHigh   LoftBucket = "High"
)

// LoftCalculation is the output of the gap equation for one set of inputs.
type LoftCalculation struct {
	LoftInches               float64    `json:"loft_inches"`                // clamped to [2.5, 6.5], multiple of 0.5
	Bucket                   LoftBucket `json:"bucket"`                     // forced Low for stomach sleepers
	Explanation              string     `json:"explanation"`                // human-readable formula
	ShoulderWidthInches      float64    `json:"shoulder_width_inches"`      // A
	MattressSinkageInches    float64    `json:"mattress_sinkage_inches"`    // B
	PositionAdjustmentInches float64    `json:"position_adjustment_inches"` // 0, -0.25 or -1.5
}
