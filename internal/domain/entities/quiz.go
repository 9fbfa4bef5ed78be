package entities

import (
	"slices"
	"time"
)

// Step is a position in the quiz state machine.
type Step int

const (
	StepPosition Step = iota
	StepSymptoms
	StepPositionMix // skipped for stomach sleepers
	StepShoulderWidth
	StepMattressFirmness
	StepSleepHot
	StepResult
)

// Name returns the step name used in analytics payloads.
func (s Step) Name() string {
	switch s {
	case StepPosition:
		return "position"
	case StepSymptoms:
		return "symptoms"
	case StepPositionMix:
		return "position_mix"
	case StepShoulderWidth:
		return "shoulder_width"
	case StepMattressFirmness:
		return "mattress_firmness"
	case StepSleepHot:
		return "sleep_hot"
	case StepResult:
		return "result"
	}
	return "unknown"
}

// QuizAnswers accumulates the answers of one in-progress run.
// The zero value is an empty run.
type QuizAnswers struct {
	Position         SleepPosition    // set once at step 0
	Symptoms         []Symptom        // ordered selection, SymptomNone is exclusive
	StomachMix       StomachMix       // synthesized as "no" for stomach sleepers
	ShoulderWidth    ShoulderWidth    // input A
	MattressFirmness MattressFirmness // input B
	SleepHot         SleepHot         // last answer
}

// IncludesMixStep reports whether the position_mix step is part of this run.
func (a *QuizAnswers) IncludesMixStep() bool {
	return a.Position != "" && a.Position != PositionStomach
}

// HasClinicalSymptoms reports whether any selected symptom is not the sentinel.
func (a *QuizAnswers) HasClinicalSymptoms() bool {
	for _, s := range a.Symptoms {
		if s.IsClinical() {
			return true
		}
	}
	return false
}

// Clone returns a deep copy safe to hand to callers.
func (a *QuizAnswers) Clone() QuizAnswers {
	c := *a
	c.Symptoms = slices.Clone(a.Symptoms)
	return c
}

// QuizResult is the immutable outcome of one completed run.
type QuizResult struct {
	DominantPosition    SleepPosition    // drives the primary product and loft
	SecondaryPosition   SleepPosition    // empty when no secondary position was resolved
	PrimaryProduct      *Product         // catalog entry, read-only
	SecondaryProduct    *Product         // nil when SecondaryPosition is empty
	Loft                LoftCalculation  // gap equation output for the dominant position
	ShoulderWidth       ShoulderWidth    // after defaulting
	MattressFirmness    MattressFirmness // after defaulting
	HasClinicalSymptoms bool             // any selected symptom other than the sentinel
	SymptomsCount       int              // number of selected options, sentinel included
	SleepHot            SleepHot         // answer of the last step
	FitNote             string           // position/bucket specific adjustment advice
	Insights            []Insight        // symptom-driven notes
	CompletedAt         time.Time        // when diagnosis ran
}

// HasSecondary reports whether a secondary recommendation exists.
func (r *QuizResult) HasSecondary() bool {
	return r.SecondaryPosition != ""
}

// InvolvesStomach reports whether stomach sleeping is dominant or secondary.
func (r *QuizResult) InvolvesStomach() bool {
	return r.DominantPosition == PositionStomach || r.SecondaryPosition == PositionStomach
}
