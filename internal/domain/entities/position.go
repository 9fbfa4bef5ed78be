// Package entities contains domain entities used across the application.
package entities

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownPosition   = errors.New("unknown sleep position")
	ErrUnknownStomachMix = errors.New("unknown stomach mix answer")
)

// SleepPosition is the posture a sleeper reports as primary.
// It drives product selection and the loft position adjustment.
type SleepPosition string

const (
	PositionSide    SleepPosition = "Side"
	PositionBack    SleepPosition = "Back"
	PositionStomach SleepPosition = "Stomach"
)

// SleepPositions lists every position in display order.
var SleepPositions = []SleepPosition{PositionSide, PositionBack, PositionStomach}

// ParseSleepPosition converts host input into a SleepPosition.
func ParseSleepPosition(s string) (SleepPosition, error) {
	for _, p := range SleepPositions {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPosition, s)
}

// StomachMix answers whether a non-stomach sleeper also rotates onto the stomach.
type StomachMix string

const (
	StomachMixUnset    StomachMix = ""
	StomachMixNone     StomachMix = "no"               // single-position prescription
	StomachMixPrimary  StomachMix = "mixed_primary"    // rotates to stomach, primary position still dominant
	StomachMixDominant StomachMix = "stomach_dominant" // stomach is actually dominant
)

// StomachMixes lists every answer the position_mix step offers.
var StomachMixes = []StomachMix{StomachMixNone, StomachMixPrimary, StomachMixDominant}

// ParseStomachMix converts host input into a StomachMix.
func ParseStomachMix(s string) (StomachMix, error) {
	for _, m := range StomachMixes {
		if string(m) == s {
			return m, nil
		}
	}
	return StomachMixUnset, fmt.Errorf("%w: %q", ErrUnknownStomachMix, s)
}

// Title returns the button caption for the answer given the chosen base position.
func (m StomachMix) Title(base SleepPosition) string {
	switch m {
	case StomachMixNone:
		return "No, I am mostly " + string(base)
	case StomachMixPrimary:
		return "Yes, but " + string(base) + " is dominant"
	case StomachMixDominant:
		return "Yes, stomach is dominant"
	}
	return ""
}

// Subtitle returns the short explanation shown under the answer.
func (m StomachMix) Subtitle() string {
	switch m {
	case StomachMixNone:
		return "Single-position prescription."
	case StomachMixPrimary:
		return "Primary stays the same, secondary option is added."
	case StomachMixDominant:
		return "Prescription switches to low-loft stomach logic."
	}
	return ""
}
