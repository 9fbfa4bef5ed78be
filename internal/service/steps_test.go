package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
)

func TestTransitionsCoverEveryAnswerStep(t *testing.T) {
	for step := entities.StepPosition; step < entities.StepResult; step++ {
		_, ok := transitions[step]
		assert.True(t, ok, "missing transition for %s", step.Name())
	}
	_, ok := transitions[entities.StepResult]
	assert.False(t, ok, "result step must be terminal")
}

func TestAfterSymptoms(t *testing.T) {
	assert.Equal(t, entities.StepShoulderWidth, afterSymptoms(&entities.QuizAnswers{Position: entities.PositionStomach}))
	assert.Equal(t, entities.StepPositionMix, afterSymptoms(&entities.QuizAnswers{Position: entities.PositionSide}))
	assert.Equal(t, entities.StepPositionMix, afterSymptoms(&entities.QuizAnswers{Position: entities.PositionBack}))
}

func TestApplySymptoms(t *testing.T) {
	t.Run("synthesizes no mix for stomach", func(t *testing.T) {
		a := &entities.QuizAnswers{Position: entities.PositionStomach}
		err := applySymptoms(a, "lower_back_stiffness")

		assert.NoError(t, err)
		assert.Equal(t, entities.StomachMixNone, a.StomachMix)
		assert.Equal(t, []entities.Symptom{entities.SymptomLowerBackStiffness}, a.Symptoms)
	})

	t.Run("leaves mix unset for side", func(t *testing.T) {
		a := &entities.QuizAnswers{Position: entities.PositionSide}
		assert.NoError(t, applySymptoms(a, "none"))
		assert.Equal(t, entities.StomachMixUnset, a.StomachMix)
	})

	t.Run("rejects empty selection", func(t *testing.T) {
		a := &entities.QuizAnswers{Position: entities.PositionSide}
		assert.ErrorIs(t, applySymptoms(a, ""), ErrNoSymptomsSelected)
	})

	t.Run("rejects unknown symptom", func(t *testing.T) {
		a := &entities.QuizAnswers{Position: entities.PositionSide}
		assert.ErrorIs(t, applySymptoms(a, "numbness_hands|itchy_feet"), entities.ErrUnknownSymptom)
	})
}

func TestEncodeSymptoms(t *testing.T) {
	got := EncodeSymptoms([]entities.Symptom{entities.SymptomNumbnessHands, entities.SymptomJawHeadache})
	assert.Equal(t, "numbness_hands|jaw_headache", got)
	assert.Equal(t, "", EncodeSymptoms(nil))
}

func TestProgressOf(t *testing.T) {
	side := &entities.QuizAnswers{Position: entities.PositionSide}
	stomach := &entities.QuizAnswers{Position: entities.PositionStomach}
	empty := &entities.QuizAnswers{}

	tests := []struct {
		name        string
		step        entities.Step
		answers     *entities.QuizAnswers
		wantDisplay int
		wantTotal   int
	}{
		{"first step before answer", entities.StepPosition, empty, 1, 6},
		{"side symptoms", entities.StepSymptoms, side, 2, 7},
		{"side mix", entities.StepPositionMix, side, 3, 7},
		{"side shoulder", entities.StepShoulderWidth, side, 4, 7},
		{"side sleep hot", entities.StepSleepHot, side, 6, 7},
		{"side result", entities.StepResult, side, 7, 7},
		{"stomach symptoms", entities.StepSymptoms, stomach, 2, 6},
		{"stomach shoulder", entities.StepShoulderWidth, stomach, 3, 6},
		{"stomach sleep hot", entities.StepSleepHot, stomach, 5, 6},
		{"stomach result", entities.StepResult, stomach, 6, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ProgressOf(tt.step, tt.answers)
			assert.Equal(t, tt.wantDisplay, p.DisplayStep)
			assert.Equal(t, tt.wantTotal, p.TotalSteps)
			assert.InDelta(t, float64(tt.wantDisplay)/float64(tt.wantTotal)*100, p.Percent, 1e-9)
		})
	}
}
