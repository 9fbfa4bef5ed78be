package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
)

var errNotFound = errors.New("not found")

type fakeCatalog map[entities.ProductID]*entities.Product

func (c fakeCatalog) GetProductByID(id entities.ProductID) (*entities.Product, error) {
	p, ok := c[id]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

func newFakeCatalog() fakeCatalog {
	c := fakeCatalog{}
	for _, id := range entities.ProductIDs {
		c[id] = &entities.Product{ID: id, Name: string(id) + " pillow"}
	}
	return c
}

type recorded struct {
	name    string
	payload entities.Payload
}

type recordingNotifier struct {
	events []recorded
}

func (n *recordingNotifier) Notify(name string, payload entities.Payload) {
	n.events = append(n.events, recorded{name: name, payload: payload})
}

func (n *recordingNotifier) names() []string {
	out := make([]string, len(n.events))
	for i, e := range n.events {
		out[i] = e.name
	}
	return out
}

func (n *recordingNotifier) last(name string) entities.Payload {
	for i := len(n.events) - 1; i >= 0; i-- {
		if n.events[i].name == name {
			return n.events[i].payload
		}
	}
	return nil
}

func (n *recordingNotifier) viewedSteps() []int {
	var steps []int
	for _, e := range n.events {
		if e.name == entities.EventQuizStepView {
			steps = append(steps, e.payload["step_index"].(int))
		}
	}
	return steps
}

func newTestFlow(t *testing.T) (*QuizFlow, *recordingNotifier) {
	t.Helper()

	n := &recordingNotifier{}
	f := NewQuizFlow(newFakeCatalog(), n)
	f.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return f, n
}

func completeRun(t *testing.T, f *QuizFlow, pos entities.SleepPosition, symptoms []entities.Symptom, mix entities.StomachMix,
	w entities.ShoulderWidth, m entities.MattressFirmness, hot entities.SleepHot) {
	t.Helper()

	require.NoError(t, f.SubmitPosition(pos))
	for _, s := range symptoms {
		require.NoError(t, f.ToggleSymptom(s))
	}
	require.NoError(t, f.SubmitSymptoms())
	if pos != entities.PositionStomach {
		require.NoError(t, f.SubmitStomachMix(mix))
	}
	require.NoError(t, f.SubmitShoulderWidth(w))
	require.NoError(t, f.SubmitMattressFirmness(m))
	require.NoError(t, f.SubmitSleepHot(hot))
}

func TestQuizFlow_Open(t *testing.T) {
	f, n := newTestFlow(t)
	f.Open(SourceHero)

	assert.True(t, f.IsOpen())
	assert.Equal(t, entities.StepPosition, f.Step())
	assert.Equal(t, []string{entities.EventQuizOpen, entities.EventQuizStepView}, n.names())
	assert.Equal(t, "hero", n.events[0].payload["source"])
	assert.Equal(t, 0, n.events[1].payload["step_index"])
	assert.Equal(t, "position", n.events[1].payload["step_name"])
	for _, e := range n.events {
		assert.Equal(t, f.RunID(), e.payload["run_id"])
	}
}

func TestQuizFlow_SideSleeperFullRun(t *testing.T) {
	f, n := newTestFlow(t)
	f.Open(SourceHeader)

	completeRun(t, f, entities.PositionSide,
		[]entities.Symptom{entities.SymptomNumbnessHands},
		entities.StomachMixNone, entities.ShoulderBroad, entities.MattressFirm, entities.SleepHotYes)

	assert.Equal(t, entities.StepResult, f.Step())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, n.viewedSteps())

	r, ok := f.Result()
	require.True(t, ok)
	assert.Equal(t, entities.PositionSide, r.DominantPosition)
	assert.False(t, r.HasSecondary())
	assert.Equal(t, entities.ProductCube, r.PrimaryProduct.ID)
	assert.Nil(t, r.SecondaryProduct)
	assert.Equal(t, 5.5, r.Loft.LoftInches)
	assert.Equal(t, entities.LoftHigh, r.Loft.Bucket)
	assert.True(t, r.HasClinicalSymptoms)
	assert.Equal(t, 1, r.SymptomsCount)
	assert.Equal(t, entities.SleepHotYes, r.SleepHot)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), r.CompletedAt)

	complete := n.last(entities.EventQuizComplete)
	require.NotNil(t, complete)
	assert.Equal(t, "Side", complete["dominant_position"])
	assert.Equal(t, "none", complete["secondary_position"])
	assert.Equal(t, "cube", complete["primary_product_id"])
	assert.Equal(t, "none", complete["secondary_product_id"])
	assert.Equal(t, 1, complete["symptoms_count"])
	assert.Equal(t, "Yes", complete["sleep_hot"])
	assert.Equal(t, "Broad / Muscular", complete["shoulder_width"])
	assert.Equal(t, "Firm", complete["mattress_firmness"])
	assert.Equal(t, "High", complete["loft_bucket"])
	assert.Equal(t, 5.5, complete["loft_inches"])
}

func TestQuizFlow_StomachSkipsMixStep(t *testing.T) {
	f, n := newTestFlow(t)
	f.Open(SourceButton)

	require.NoError(t, f.SubmitPosition(entities.PositionStomach))
	assert.Equal(t, 6, f.Progress().TotalSteps)

	require.NoError(t, f.ToggleSymptom(entities.SymptomNone))
	require.NoError(t, f.SubmitSymptoms())
	assert.Equal(t, entities.StepShoulderWidth, f.Step())
	assert.Equal(t, 3, f.Progress().DisplayStep)
	assert.Equal(t, entities.StomachMixNone, f.Answers().StomachMix)

	require.NoError(t, f.SubmitShoulderWidth(entities.ShoulderAverage))
	require.NoError(t, f.SubmitMattressFirmness(entities.MattressMedium))
	require.NoError(t, f.SubmitSleepHot(entities.SleepHotNo))

	assert.Equal(t, []int{0, 1, 3, 4, 5, 6}, n.viewedSteps())

	r, ok := f.Result()
	require.True(t, ok)
	assert.Equal(t, entities.PositionStomach, r.DominantPosition)
	assert.Equal(t, entities.ProductSlim, r.PrimaryProduct.ID)
	assert.Equal(t, 3.0, r.Loft.LoftInches)
	assert.Equal(t, entities.LoftLow, r.Loft.Bucket)
	assert.False(t, r.HasClinicalSymptoms)
	assert.Equal(t, 6, f.Progress().DisplayStep)
}

func TestQuizFlow_StomachDominantSwapsPositions(t *testing.T) {
	f, n := newTestFlow(t)
	f.Open(SourceHero)

	completeRun(t, f, entities.PositionSide,
		[]entities.Symptom{entities.SymptomLowerBackStiffness},
		entities.StomachMixDominant, entities.ShoulderAverage, entities.MattressMedium, entities.SleepHotNo)

	r, ok := f.Result()
	require.True(t, ok)
	assert.Equal(t, entities.PositionStomach, r.DominantPosition)
	assert.Equal(t, entities.PositionSide, r.SecondaryPosition)
	assert.Equal(t, entities.ProductSlim, r.PrimaryProduct.ID)
	require.NotNil(t, r.SecondaryProduct)
	assert.Equal(t, entities.ProductCube, r.SecondaryProduct.ID)
	assert.Equal(t, entities.LoftLow, r.Loft.Bucket)
	assert.True(t, r.InvolvesStomach())

	complete := n.last(entities.EventQuizComplete)
	assert.Equal(t, "Side", complete["secondary_position"])
	assert.Equal(t, "cube", complete["secondary_product_id"])
}

func TestQuizFlow_MixedPrimaryAddsStomachSecondary(t *testing.T) {
	f, _ := newTestFlow(t)
	f.Open(SourceHero)

	completeRun(t, f, entities.PositionBack,
		[]entities.Symptom{entities.SymptomSnoringAirway},
		entities.StomachMixPrimary, entities.ShoulderPetite, entities.MattressSoft, entities.SleepHotNo)

	r, _ := f.Result()
	assert.Equal(t, entities.PositionBack, r.DominantPosition)
	assert.Equal(t, entities.PositionStomach, r.SecondaryPosition)
	assert.Equal(t, entities.ProductContour, r.PrimaryProduct.ID)
	assert.Equal(t, entities.ProductSlim, r.SecondaryProduct.ID)
	assert.Equal(t, 2.5, r.Loft.LoftInches)
}

func TestQuizFlow_SubmitEventOrder(t *testing.T) {
	f, n := newTestFlow(t)
	f.Open(SourceHero)
	completeRun(t, f, entities.PositionBack,
		[]entities.Symptom{entities.SymptomJawHeadache},
		entities.StomachMixNone, entities.ShoulderAverage, entities.MattressFirm, entities.SleepHotYes)

	got := n.names()
	assert.Equal(t, []string{
		entities.EventQuizStepSubmit,
		entities.EventQuizComplete,
		entities.EventQuizStepView,
	}, got[len(got)-3:])
}

func TestQuizFlow_StepSubmitPayloads(t *testing.T) {
	f, n := newTestFlow(t)
	f.Open(SourceHero)

	require.NoError(t, f.SubmitPosition(entities.PositionSide))
	p := n.last(entities.EventQuizStepSubmit)
	assert.Equal(t, 0, p["step_index"])
	assert.Equal(t, "position", p["field"])
	assert.Equal(t, "Side", p["value"])

	require.NoError(t, f.ToggleSymptom(entities.SymptomNumbnessHands))
	require.NoError(t, f.ToggleSymptom(entities.SymptomSnoringAirway))
	require.NoError(t, f.SubmitSymptoms())
	p = n.last(entities.EventQuizStepSubmit)
	assert.Equal(t, "symptoms", p["field"])
	assert.Equal(t, "Numbness/Tingling in hands|Snoring / Gasping for air", p["selected_values"])
	assert.Equal(t, 2, p["selected_count"])
	assert.NotContains(t, p, "value")

	require.NoError(t, f.SubmitStomachMix(entities.StomachMixPrimary))
	p = n.last(entities.EventQuizStepSubmit)
	assert.Equal(t, "stomachMix", p["field"])
	assert.Equal(t, "mixed_primary", p["value"])
}

func TestQuizFlow_StepMismatch(t *testing.T) {
	f, n := newTestFlow(t)
	f.Open(SourceHero)
	before := len(n.events)

	err := f.SubmitShoulderWidth(entities.ShoulderAverage)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.ErrorIs(t, err, ErrStepMismatch)
	assert.Equal(t, entities.StepPosition, stepErr.Current)
	assert.Equal(t, entities.StepShoulderWidth, stepErr.Submitted)
	assert.Equal(t, entities.StepPosition, f.Step())
	assert.Len(t, n.events, before)
}

func TestQuizFlow_InvalidValueLeavesStateUntouched(t *testing.T) {
	f, n := newTestFlow(t)
	f.Open(SourceHero)
	before := len(n.events)

	err := f.Submit(entities.StepPosition, "Upside down")

	assert.ErrorIs(t, err, entities.ErrUnknownPosition)
	assert.Equal(t, entities.StepPosition, f.Step())
	assert.Empty(t, f.Answers().Position)
	assert.Len(t, n.events, before)
}

func TestQuizFlow_EmptySymptomsRejected(t *testing.T) {
	f, _ := newTestFlow(t)
	f.Open(SourceHero)
	require.NoError(t, f.SubmitPosition(entities.PositionSide))

	err := f.SubmitSymptoms()

	assert.ErrorIs(t, err, ErrNoSymptomsSelected)
	assert.Equal(t, entities.StepSymptoms, f.Step())
}

func TestQuizFlow_ClosedQuizRejectsAnswers(t *testing.T) {
	f, _ := newTestFlow(t)

	assert.ErrorIs(t, f.SubmitPosition(entities.PositionSide), ErrQuizNotOpen)
	assert.ErrorIs(t, f.ToggleSymptom(entities.SymptomNone), ErrQuizNotOpen)
}

func TestQuizFlow_CloseThenReopenIsClean(t *testing.T) {
	f, n := newTestFlow(t)
	f.Open(SourceHero)
	require.NoError(t, f.SubmitPosition(entities.PositionBack))
	require.NoError(t, f.ToggleSymptom(entities.SymptomJawHeadache))
	firstRun := f.RunID()

	f.Close()

	assert.False(t, f.IsOpen())
	closeEvt := n.last(entities.EventQuizClose)
	require.NotNil(t, closeEvt)
	assert.Equal(t, 1, closeEvt["step_index"])
	assert.Equal(t, false, closeEvt["has_result"])

	f.Open(SourceHeader)

	assert.Equal(t, entities.StepPosition, f.Step())
	assert.Equal(t, entities.QuizAnswers{}, f.Answers())
	assert.NotEqual(t, firstRun, f.RunID())
	_, ok := f.Result()
	assert.False(t, ok)
}

func TestQuizFlow_CloseWhenClosedIsNoop(t *testing.T) {
	f, n := newTestFlow(t)
	f.Close()
	assert.Empty(t, n.events)
}

func TestQuizFlow_Restart(t *testing.T) {
	f, n := newTestFlow(t)
	f.Open(SourceHero)
	completeRun(t, f, entities.PositionSide,
		[]entities.Symptom{entities.SymptomNone},
		entities.StomachMixNone, entities.ShoulderPetite, entities.MattressFirm, entities.SleepHotNo)
	firstRun := f.RunID()

	f.Restart()

	assert.True(t, f.IsOpen())
	assert.Equal(t, entities.StepPosition, f.Step())
	assert.NotEqual(t, firstRun, f.RunID())
	_, ok := f.Result()
	assert.False(t, ok)

	view := n.events[len(n.events)-1]
	assert.Equal(t, entities.EventQuizStepView, view.name)
	assert.Equal(t, 0, view.payload["step_index"])
}

func TestQuizFlow_TrackPurchaseClick(t *testing.T) {
	f, n := newTestFlow(t)
	f.Open(SourceHero)

	assert.ErrorIs(t, f.TrackPurchaseClick("result"), ErrNoResult)

	completeRun(t, f, entities.PositionBack,
		[]entities.Symptom{entities.SymptomNone},
		entities.StomachMixNone, entities.ShoulderAverage, entities.MattressMedium, entities.SleepHotNo)

	require.NoError(t, f.TrackPurchaseClick("result"))
	p := n.last(entities.EventQuizPurchaseClick)
	assert.Equal(t, "contour", p["product_id"])
	assert.Equal(t, "result", p["from"])
	assert.Equal(t, "Back", p["dominant_position"])
	assert.Equal(t, "Medium", p["loft_bucket"])
	assert.Equal(t, 4.0, p["loft_inches"])
}

func TestQuizFlow_MissingProductFailsDiagnosis(t *testing.T) {
	catalog := newFakeCatalog()
	delete(catalog, entities.ProductContour)
	f := NewQuizFlow(catalog, nil)
	f.Open(SourceHero)

	require.NoError(t, f.SubmitPosition(entities.PositionBack))
	require.NoError(t, f.ToggleSymptom(entities.SymptomNone))
	require.NoError(t, f.SubmitSymptoms())
	require.NoError(t, f.SubmitStomachMix(entities.StomachMixNone))
	require.NoError(t, f.SubmitShoulderWidth(entities.ShoulderAverage))
	require.NoError(t, f.SubmitMattressFirmness(entities.MattressMedium))

	err := f.SubmitSleepHot(entities.SleepHotNo)

	assert.ErrorIs(t, err, errNotFound)
	assert.Equal(t, entities.StepSleepHot, f.Step())
	_, ok := f.Result()
	assert.False(t, ok)
}

func TestQuizFlow_PanickingNotifierDoesNotBreakFlow(t *testing.T) {
	f := NewQuizFlow(newFakeCatalog(), NotifierFunc(func(string, entities.Payload) {
		panic("sink down")
	}))

	assert.NotPanics(t, func() {
		f.Open(SourceHero)
		completeRun(t, f, entities.PositionSide,
			[]entities.Symptom{entities.SymptomNone},
			entities.StomachMixNone, entities.ShoulderAverage, entities.MattressMedium, entities.SleepHotNo)
	})

	_, ok := f.Result()
	assert.True(t, ok)
}

func TestQuizFlow_AnswersReturnsCopy(t *testing.T) {
	f, _ := newTestFlow(t)
	f.Open(SourceHero)
	require.NoError(t, f.SubmitPosition(entities.PositionSide))
	require.NoError(t, f.ToggleSymptom(entities.SymptomJawHeadache))

	a := f.Answers()
	a.Symptoms[0] = entities.SymptomNone

	assert.Equal(t, []entities.Symptom{entities.SymptomJawHeadache}, f.Answers().Symptoms)
}
