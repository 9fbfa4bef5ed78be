package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
)

var (
	ErrQuizNotOpen        = errors.New("quiz is not open")
	ErrStepMismatch       = errors.New("answer does not match the current step")
	ErrNoSymptomsSelected = errors.New("at least one symptom must be selected")
	ErrNoResult           = errors.New("quiz has no result yet")
)

// Open sources reported with quiz_open.
const (
	SourceHeader  = "header"
	SourceHero    = "hero"
	SourceCommand = "command"
	SourceButton  = "button"
)

// StepError reports an answer submitted for a step other than the current one.
// It always unwraps to ErrStepMismatch.
type StepError struct {
	Current   entities.Step // step the quiz is on
	Submitted entities.Step // step the answer was meant for
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s answer submitted while on step %s", e.Submitted.Name(), e.Current.Name())
}

func (e *StepError) Unwrap() error {
	return ErrStepMismatch
}

// QuizFlow drives one quiz session: it validates and stores answers,
// decides the next step and assembles the result once the last answer
// arrives. A QuizFlow is not safe for concurrent use.
type QuizFlow struct {
	catalog  ProductCatalog
	notifier Notifier
	now      func() time.Time

	runID   string
	open    bool
	step    entities.Step
	answers entities.QuizAnswers
	result  *entities.QuizResult
}

// NewQuizFlow creates a closed quiz. notifier may be nil.
func NewQuizFlow(catalog ProductCatalog, notifier Notifier) *QuizFlow {
	f := &QuizFlow{
		catalog:  catalog,
		notifier: notifier,
		now:      time.Now,
	}
	f.reset()
	return f
}

// Open starts a fresh run at the position step.
func (f *QuizFlow) Open(source string) {
	f.reset()
	f.open = true

	f.notify(entities.EventQuizOpen, entities.Payload{
		"source": source,
	})
	f.notifyStepView()
}

// Restart discards the current run and returns to the position step
// immediately. A closed quiz stays closed.
func (f *QuizFlow) Restart() {
	f.reset()
	if f.open {
		f.notifyStepView()
	}
}

// Close ends the session. Answers stay readable until Reset so the host
// can finish its closing transition; Open always starts clean regardless.
func (f *QuizFlow) Close() {
	if !f.open {
		return
	}

	f.notify(entities.EventQuizClose, entities.Payload{
		"step_index": int(f.step),
		"has_result": f.result != nil,
	})
	f.open = false
}

// Reset discards all state without emitting anything.
func (f *QuizFlow) Reset() {
	f.reset()
}

func (f *QuizFlow) reset() {
	f.runID = uuid.NewString()
	f.step = entities.StepPosition
	f.answers = entities.QuizAnswers{}
	f.result = nil
}

// IsOpen reports whether the quiz accepts answers.
func (f *QuizFlow) IsOpen() bool { return f.open }

// RunID identifies the current run in analytics payloads.
func (f *QuizFlow) RunID() string { return f.runID }

// Step returns the current step.
func (f *QuizFlow) Step() entities.Step { return f.step }

// Answers returns a copy of the accumulated answers.
func (f *QuizFlow) Answers() entities.QuizAnswers { return f.answers.Clone() }

// Progress returns the display step, total step count and percentage.
func (f *QuizFlow) Progress() Progress { return ProgressOf(f.step, &f.answers) }

// Result returns the result of a completed run.
func (f *QuizFlow) Result() (entities.QuizResult, bool) {
	if f.result == nil {
		return entities.QuizResult{}, false
	}
	return *f.result, true
}

// ToggleSymptom updates the symptom selection on the symptoms step
// without advancing.
func (f *QuizFlow) ToggleSymptom(s entities.Symptom) error {
	if err := f.expect(entities.StepSymptoms); err != nil {
		return err
	}
	f.answers.Symptoms = ToggleSymptom(f.answers.Symptoms, s)
	return nil
}

// SubmitPosition answers the position step.
func (f *QuizFlow) SubmitPosition(p entities.SleepPosition) error {
	return f.Submit(entities.StepPosition, string(p))
}

// SubmitSymptoms confirms the current symptom selection.
func (f *QuizFlow) SubmitSymptoms() error {
	return f.Submit(entities.StepSymptoms, EncodeSymptoms(f.answers.Symptoms))
}

// SubmitStomachMix answers the position_mix step.
func (f *QuizFlow) SubmitStomachMix(m entities.StomachMix) error {
	return f.Submit(entities.StepPositionMix, string(m))
}

// SubmitShoulderWidth answers the shoulder_width step.
func (f *QuizFlow) SubmitShoulderWidth(w entities.ShoulderWidth) error {
	return f.Submit(entities.StepShoulderWidth, string(w))
}

// SubmitMattressFirmness answers the mattress_firmness step.
func (f *QuizFlow) SubmitMattressFirmness(m entities.MattressFirmness) error {
	return f.Submit(entities.StepMattressFirmness, string(m))
}

// SubmitSleepHot answers the last step and runs the diagnosis.
func (f *QuizFlow) SubmitSleepHot(h entities.SleepHot) error {
	return f.Submit(entities.StepSleepHot, string(h))
}

// Submit applies a raw answer to step. The step must be the current one;
// otherwise a *StepError is returned and nothing changes. For the symptoms
// step value is a "|" separated list of symptom ids.
func (f *QuizFlow) Submit(step entities.Step, value string) error {
	if err := f.expect(step); err != nil {
		return err
	}

	t, ok := transitions[step]
	if !ok {
		return &StepError{Current: f.step, Submitted: step}
	}

	answers := f.answers.Clone()
	if err := t.apply(&answers, value); err != nil {
		return fmt.Errorf("submit %s: %w", step.Name(), err)
	}
	next := t.next(&answers)

	var result *entities.QuizResult
	if next == entities.StepResult {
		r, err := f.diagnose(&answers)
		if err != nil {
			return fmt.Errorf("diagnose: %w", err)
		}
		result = &r
	}

	f.answers = answers
	f.notify(entities.EventQuizStepSubmit, submitPayload(step, t.field, &answers))

	if result != nil {
		f.result = result
		f.notify(entities.EventQuizComplete, completePayload(result, &answers))
	}

	f.step = next
	f.notifyStepView()

	return nil
}

// TrackPurchaseClick records that the user followed the primary product link.
func (f *QuizFlow) TrackPurchaseClick(from string) error {
	if f.result == nil {
		return ErrNoResult
	}

	f.notify(entities.EventQuizPurchaseClick, entities.Payload{
		"product_id":        string(f.result.PrimaryProduct.ID),
		"from":              from,
		"dominant_position": string(f.result.DominantPosition),
		"loft_bucket":       string(f.result.Loft.Bucket),
		"loft_inches":       f.result.Loft.LoftInches,
	})
	return nil
}

func (f *QuizFlow) expect(step entities.Step) error {
	if !f.open {
		return ErrQuizNotOpen
	}
	if f.step != step {
		return &StepError{Current: f.step, Submitted: step}
	}
	return nil
}

func (f *QuizFlow) diagnose(a *entities.QuizAnswers) (entities.QuizResult, error) {
	dominant, secondary := ResolvePositions(a)

	primary, err := f.catalog.GetProductByID(ProductIDForPosition(dominant))
	if err != nil {
		return entities.QuizResult{}, fmt.Errorf("primary product for %s: %w", dominant, err)
	}

	var secondaryProduct *entities.Product
	if secondary != "" {
		secondaryProduct, err = f.catalog.GetProductByID(ProductIDForPosition(secondary))
		if err != nil {
			return entities.QuizResult{}, fmt.Errorf("secondary product for %s: %w", secondary, err)
		}
	}

	shoulderWidth := a.ShoulderWidth
	if shoulderWidth == "" {
		shoulderWidth = entities.ShoulderAverage
	}
	mattressFirmness := a.MattressFirmness
	if mattressFirmness == "" {
		mattressFirmness = entities.MattressMedium
	}

	loft := CalculateRequiredLoft(shoulderWidth, mattressFirmness, dominant)

	return entities.QuizResult{
		DominantPosition:    dominant,
		SecondaryPosition:   secondary,
		PrimaryProduct:      primary,
		SecondaryProduct:    secondaryProduct,
		Loft:                loft,
		ShoulderWidth:       shoulderWidth,
		MattressFirmness:    mattressFirmness,
		HasClinicalSymptoms: a.HasClinicalSymptoms(),
		SymptomsCount:       len(a.Symptoms),
		SleepHot:            a.SleepHot,
		FitNote:             FitNote(dominant, loft.Bucket, loft.LoftInches),
		Insights:            BuildInsights(a.Symptoms, dominant),
		CompletedAt:         f.now(),
	}, nil
}

func (f *QuizFlow) notifyStepView() {
	f.notify(entities.EventQuizStepView, entities.Payload{
		"step_index": int(f.step),
		"step_name":  f.step.Name(),
	})
}

// notify hands an event to the sink. A misbehaving sink must not affect
// the flow, so panics are swallowed here.
func (f *QuizFlow) notify(name string, payload entities.Payload) {
	if f.notifier == nil {
		return
	}
	payload["run_id"] = f.runID

	defer func() { _ = recover() }()
	f.notifier.Notify(name, payload)
}

func submitPayload(step entities.Step, field string, a *entities.QuizAnswers) entities.Payload {
	p := entities.Payload{
		"step_index": int(step),
		"field":      field,
	}

	switch step {
	case entities.StepPosition:
		p["value"] = string(a.Position)
	case entities.StepSymptoms:
		p["selected_values"] = joinSymptoms(a.Symptoms)
		p["selected_count"] = len(a.Symptoms)
	case entities.StepPositionMix:
		p["value"] = string(a.StomachMix)
	case entities.StepShoulderWidth:
		p["value"] = string(a.ShoulderWidth)
	case entities.StepMattressFirmness:
		p["value"] = string(a.MattressFirmness)
	case entities.StepSleepHot:
		p["value"] = string(a.SleepHot)
	}

	return p
}

func completePayload(r *entities.QuizResult, a *entities.QuizAnswers) entities.Payload {
	secondaryPosition := "none"
	if r.HasSecondary() {
		secondaryPosition = string(r.SecondaryPosition)
	}
	secondaryProduct := "none"
	if r.SecondaryProduct != nil {
		secondaryProduct = string(r.SecondaryProduct.ID)
	}
	sleepHot := "unknown"
	if a.SleepHot != entities.SleepHotUnset {
		sleepHot = string(a.SleepHot)
	}

	return entities.Payload{
		"dominant_position":    string(r.DominantPosition),
		"secondary_position":   secondaryPosition,
		"primary_product_id":   string(r.PrimaryProduct.ID),
		"secondary_product_id": secondaryProduct,
		"symptoms_count":       len(a.Symptoms),
		"sleep_hot":            sleepHot,
		"shoulder_width":       string(r.ShoulderWidth),
		"mattress_firmness":    string(r.MattressFirmness),
		"loft_bucket":          string(r.Loft.Bucket),
		"loft_inches":          r.Loft.LoftInches,
	}
}
