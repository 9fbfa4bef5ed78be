package service

import (
	"slices"
	"strings"

	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
)

// ToggleSymptom returns the selection that results from toggling s.
//
// Toggling the sentinel selects it alone, or clears everything when it was
// already selected. Toggling a real symptom drops the sentinel and then
// adds or removes s. The input slice is never modified.
func ToggleSymptom(selected []entities.Symptom, s entities.Symptom) []entities.Symptom {
	if s == entities.SymptomNone {
		if slices.Contains(selected, entities.SymptomNone) {
			return []entities.Symptom{}
		}
		return []entities.Symptom{entities.SymptomNone}
	}

	next := make([]entities.Symptom, 0, len(selected)+1)
	found := false
	for _, cur := range selected {
		switch cur {
		case entities.SymptomNone:
			continue
		case s:
			found = true
			continue
		}
		next = append(next, cur)
	}

	if !found {
		next = append(next, s)
	}

	return next
}

// SelectSymptoms folds ToggleSymptom over symptoms, starting from an empty set.
// Duplicates toggle back off, exactly as repeated taps would.
func SelectSymptoms(symptoms []entities.Symptom) []entities.Symptom {
	selected := []entities.Symptom{}
	for _, s := range symptoms {
		selected = ToggleSymptom(selected, s)
	}
	return selected
}

func joinSymptoms(symptoms []entities.Symptom) string {
	var sb strings.Builder
	for i, s := range symptoms {
		if i > 0 {
			sb.WriteString("|")
		}
		sb.WriteString(s.Label())
	}
	return sb.String()
}
