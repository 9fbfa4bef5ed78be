package entities

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownShoulderWidth    = errors.New("unknown shoulder width")
	ErrUnknownMattressFirmness = errors.New("unknown mattress firmness")
	ErrUnknownSleepHot         = errors.New("unknown sleep hot answer")
)

// ShoulderWidth is anatomical input "A" of the gap equation.
type ShoulderWidth string

const (
	ShoulderPetite  ShoulderWidth = "Petite"
	ShoulderAverage ShoulderWidth = "Average"
	ShoulderBroad   ShoulderWidth = "Broad / Muscular"
)

// ShoulderWidths lists every shoulder width in display order.
var ShoulderWidths = []ShoulderWidth{ShoulderPetite, ShoulderAverage, ShoulderBroad}

// ParseShoulderWidth converts host input into a ShoulderWidth.
func ParseShoulderWidth(s string) (ShoulderWidth, error) {
	for _, w := range ShoulderWidths {
		if string(w) == s {
			return w, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownShoulderWidth, s)
}

// Subtitle returns the short explanation shown under the option.
func (w ShoulderWidth) Subtitle() string {
	switch w {
	case ShoulderPetite:
		return "Usually narrower shoulder-to-mattress gap."
	case ShoulderAverage:
		return "Balanced shoulder geometry for most sleepers."
	case ShoulderBroad:
		return "Larger shoulder gap often needs more loft."
	}
	return ""
}

// MattressFirmness is sinkage input "B" of the gap equation.
type MattressFirmness string

const (
	MattressFirm   MattressFirmness = "Firm"
	MattressMedium MattressFirmness = "Medium"
	MattressSoft   MattressFirmness = "Soft"
)

// MattressFirmnesses lists every firmness in display order.
var MattressFirmnesses = []MattressFirmness{MattressFirm, MattressMedium, MattressSoft}

// ParseMattressFirmness converts host input into a MattressFirmness.
func ParseMattressFirmness(s string) (MattressFirmness, error) {
	for _, f := range MattressFirmnesses {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMattressFirmness, s)
}

// Subtitle returns the short explanation shown under the option.
func (f MattressFirmness) Subtitle() string {
	switch f {
	case MattressFirm:
		return "Less sinkage, so pillow usually needs more loft."
	case MattressMedium:
		return "Moderate sinkage and moderate loft demand."
	case MattressSoft:
		return "More sinkage, so effective loft requirement drops."
	}
	return ""
}

// SleepHot is the yes/no answer of the last quiz step.
type SleepHot string

const (
	SleepHotUnset SleepHot = ""
	SleepHotYes   SleepHot = "Yes"
	SleepHotNo    SleepHot = "No"
)

// ParseSleepHot accepts "Yes"/"No" and their lowercase forms.
func ParseSleepHot(s string) (SleepHot, error) {
	switch s {
	case "Yes", "yes":
		return SleepHotYes, nil
	case "No", "no":
		return SleepHotNo, nil
	}
	return SleepHotUnset, fmt.Errorf("%w: %q", ErrUnknownSleepHot, s)
}
