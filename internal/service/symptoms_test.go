package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
)

func TestToggleSymptom(t *testing.T) {
	tests := []struct {
		name     string
		selected []entities.Symptom
		toggle   entities.Symptom
		want     []entities.Symptom
	}{
		{
			name:   "adds to empty selection",
			toggle: entities.SymptomJawHeadache,
			want:   []entities.Symptom{entities.SymptomJawHeadache},
		},
		{
			name:     "sentinel clears real symptoms",
			selected: []entities.Symptom{entities.SymptomNumbnessHands, entities.SymptomSnoringAirway},
			toggle:   entities.SymptomNone,
			want:     []entities.Symptom{entities.SymptomNone},
		},
		{
			name:     "real symptom clears sentinel",
			selected: []entities.Symptom{entities.SymptomNone},
			toggle:   entities.SymptomLowerBackStiffness,
			want:     []entities.Symptom{entities.SymptomLowerBackStiffness},
		},
		{
			name:     "sentinel toggles off",
			selected: []entities.Symptom{entities.SymptomNone},
			toggle:   entities.SymptomNone,
			want:     []entities.Symptom{},
		},
		{
			name:     "real symptom toggles off and keeps order",
			selected: []entities.Symptom{entities.SymptomNumbnessHands, entities.SymptomSnoringAirway, entities.SymptomJawHeadache},
			toggle:   entities.SymptomSnoringAirway,
			want:     []entities.Symptom{entities.SymptomNumbnessHands, entities.SymptomJawHeadache},
		},
		{
			name:     "appends in selection order",
			selected: []entities.Symptom{entities.SymptomJawHeadache},
			toggle:   entities.SymptomNumbnessHands,
			want:     []entities.Symptom{entities.SymptomJawHeadache, entities.SymptomNumbnessHands},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToggleSymptom(tt.selected, tt.toggle))
		})
	}
}

func TestToggleSymptom_DoesNotMutateInput(t *testing.T) {
	selected := []entities.Symptom{entities.SymptomNumbnessHands, entities.SymptomNone}
	_ = ToggleSymptom(selected, entities.SymptomJawHeadache)

	assert.Equal(t, []entities.Symptom{entities.SymptomNumbnessHands, entities.SymptomNone}, selected)
}

func TestSelectSymptoms(t *testing.T) {
	got := SelectSymptoms([]entities.Symptom{
		entities.SymptomNumbnessHands,
		entities.SymptomSnoringAirway,
		entities.SymptomNone,
		entities.SymptomJawHeadache,
	})

	assert.Equal(t, []entities.Symptom{entities.SymptomJawHeadache}, got)
}

func TestJoinSymptoms(t *testing.T) {
	got := joinSymptoms([]entities.Symptom{entities.SymptomNumbnessHands, entities.SymptomJawHeadache})
	assert.Equal(t, "Numbness/Tingling in hands|Jaw pain or Headaches", got)
}
