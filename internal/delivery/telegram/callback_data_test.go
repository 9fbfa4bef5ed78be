package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
)

func TestCallbackBuilders(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{buildQuizOpenCallback(), "quiz:open"},
		{buildQuizAnswerCallback(entities.StepPosition, string(entities.PositionSide)), "quiz:a:0:Side"},
		{buildQuizAnswerCallback(entities.StepSymptoms, ""), "quiz:a:1"},
		{buildQuizToggleCallback(entities.SymptomJawHeadache), "quiz:t:jaw_headache"},
		{buildQuizRestartCallback(), "quiz:restart"},
		{buildQuizCloseCallback(), "quiz:close"},
		{buildQuizBuyCallback(entities.ProductContour), "quiz:buy:contour"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.got)
	}
}

func TestCallbackData_Answer(t *testing.T) {
	step, value, ok := decodeCallback("quiz:a:3:Broad / Muscular").answer()
	require.True(t, ok)
	assert.Equal(t, entities.StepShoulderWidth, step)
	assert.Equal(t, "Broad / Muscular", value)

	step, value, ok = decodeCallback("quiz:a:1").answer()
	require.True(t, ok)
	assert.Equal(t, entities.StepSymptoms, step)
	assert.Empty(t, value)

	for _, raw := range []string{"quiz:a", "quiz:a:x:Side", "quiz:a:6:Yes", "quiz:a:-1:Side", "quiz:t:none", "quiz:a:0:Side:extra"} {
		_, _, ok := decodeCallback(raw).answer()
		assert.False(t, ok, raw)
	}
}

func TestCallbackData_FitsTelegramLimit(t *testing.T) {
	const maxCallbackBytes = 64

	for _, s := range entities.Symptoms {
		assert.LessOrEqual(t, len(buildQuizToggleCallback(s)), maxCallbackBytes)
	}
	for _, w := range entities.ShoulderWidths {
		assert.LessOrEqual(t, len(buildQuizAnswerCallback(entities.StepShoulderWidth, string(w))), maxCallbackBytes)
	}
	for _, m := range entities.StomachMixes {
		assert.LessOrEqual(t, len(buildQuizAnswerCallback(entities.StepPositionMix, string(m))), maxCallbackBytes)
	}
}
