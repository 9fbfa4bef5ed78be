package entities

import (
	"errors"
	"fmt"
)

var ErrUnknownSymptom = errors.New("unknown symptom")

// Symptom is a morning symptom a sleeper may report.
// SymptomNone is the sentinel that is mutually exclusive with every real symptom.
type Symptom string

const (
	SymptomNumbnessHands      Symptom = "numbness_hands"
	SymptomSnoringAirway      Symptom = "snoring_airway"
	SymptomJawHeadache        Symptom = "jaw_headache"
	SymptomLowerBackStiffness Symptom = "lower_back_stiffness"
	SymptomNone               Symptom = "none"
)

// Symptoms lists every selectable option in display order, the sentinel last.
var Symptoms = []Symptom{
	SymptomNumbnessHands,
	SymptomSnoringAirway,
	SymptomJawHeadache,
	SymptomLowerBackStiffness,
	SymptomNone,
}

// ParseSymptom converts host input into a Symptom.
func ParseSymptom(s string) (Symptom, error) {
	for _, sym := range Symptoms {
		if string(sym) == s {
			return sym, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSymptom, s)
}

// Label returns the human-readable option text.
func (s Symptom) Label() string {
	switch s {
	case SymptomNumbnessHands:
		return "Numbness/Tingling in hands"
	case SymptomSnoringAirway:
		return "Snoring / Gasping for air"
	case SymptomJawHeadache:
		return "Jaw pain or Headaches"
	case SymptomLowerBackStiffness:
		return "Lower back stiffness"
	case SymptomNone:
		return "None, I just want better sleep"
	}
	return string(s)
}

// IsClinical reports whether s is a real symptom rather than the sentinel.
func (s Symptom) IsClinical() bool {
	return s != SymptomNone
}

// SymptomInsightRule ties a symptom to the positions it is most relevant for
// and the claim that explains it. Rules inform insights only; they never
// override the position-based product.
type SymptomInsightRule struct {
	Symptom           Symptom
	ClaimID           ClaimID
	RelevantPositions []SleepPosition
}

// SymptomInsightRules is the fixed rule table, one entry per real symptom.
var SymptomInsightRules = []SymptomInsightRule{
	{
		Symptom:           SymptomNumbnessHands,
		ClaimID:           ClaimNerveCompression,
		RelevantPositions: []SleepPosition{PositionSide, PositionBack},
	},
	{
		Symptom:           SymptomSnoringAirway,
		ClaimID:           ClaimAirwayObstruction,
		RelevantPositions: []SleepPosition{PositionBack, PositionSide},
	},
	{
		Symptom:           SymptomJawHeadache,
		ClaimID:           ClaimCervicalTension,
		RelevantPositions: []SleepPosition{PositionBack, PositionSide},
	},
	{
		Symptom:           SymptomLowerBackStiffness,
		ClaimID:           ClaimLumbarExtension,
		RelevantPositions: []SleepPosition{PositionStomach},
	},
}

// Insight is one symptom-driven note attached to a quiz result.
type Insight struct {
	Symptom  Symptom // reported symptom, SymptomNone for the fallback insight
	ClaimID  ClaimID // claim that carries the headline and body
	Relevant bool    // whether the symptom is typical for the dominant position
}
