package service

import (
	"strings"

	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
)

const (
	totalStepsWithMix    = 7
	totalStepsWithoutMix = 6
	symptomSeparator     = "|"
)

// transition is one row of the quiz state machine: the analytics field a
// step writes, how a raw answer is applied, and which step follows.
type transition struct {
	field string
	apply func(a *entities.QuizAnswers, value string) error
	next  func(a *entities.QuizAnswers) entities.Step
}

var transitions = map[entities.Step]transition{
	entities.StepPosition: {
		field: "position",
		apply: applyPosition,
		next:  goTo(entities.StepSymptoms),
	},
	entities.StepSymptoms: {
		field: "symptoms",
		apply: applySymptoms,
		next:  afterSymptoms,
	},
	entities.StepPositionMix: {
		field: "stomachMix",
		apply: applyStomachMix,
		next:  goTo(entities.StepShoulderWidth),
	},
	entities.StepShoulderWidth: {
		field: "shoulder_width",
		apply: applyShoulderWidth,
		next:  goTo(entities.StepMattressFirmness),
	},
	entities.StepMattressFirmness: {
		field: "mattress_firmness",
		apply: applyMattressFirmness,
		next:  goTo(entities.StepSleepHot),
	},
	entities.StepSleepHot: {
		field: "sleepHot",
		apply: applySleepHot,
		next:  goTo(entities.StepResult),
	},
}

func goTo(step entities.Step) func(*entities.QuizAnswers) entities.Step {
	return func(*entities.QuizAnswers) entities.Step { return step }
}

// afterSymptoms skips position_mix for stomach sleepers.
func afterSymptoms(a *entities.QuizAnswers) entities.Step {
	if a.IncludesMixStep() {
		return entities.StepPositionMix
	}
	return entities.StepShoulderWidth
}

func applyPosition(a *entities.QuizAnswers, value string) error {
	p, err := entities.ParseSleepPosition(value)
	if err != nil {
		return err
	}
	a.Position = p
	return nil
}

func applySymptoms(a *entities.QuizAnswers, value string) error {
	parsed := make([]entities.Symptom, 0)
	for _, raw := range strings.Split(value, symptomSeparator) {
		if raw == "" {
			continue
		}
		s, err := entities.ParseSymptom(raw)
		if err != nil {
			return err
		}
		parsed = append(parsed, s)
	}

	selected := SelectSymptoms(parsed)
	if len(selected) == 0 {
		return ErrNoSymptomsSelected
	}
	a.Symptoms = selected

	if a.Position == entities.PositionStomach {
		a.StomachMix = entities.StomachMixNone
	}
	return nil
}

func applyStomachMix(a *entities.QuizAnswers, value string) error {
	m, err := entities.ParseStomachMix(value)
	if err != nil {
		return err
	}
	a.StomachMix = m
	return nil
}

func applyShoulderWidth(a *entities.QuizAnswers, value string) error {
	w, err := entities.ParseShoulderWidth(value)
	if err != nil {
		return err
	}
	a.ShoulderWidth = w
	return nil
}

func applyMattressFirmness(a *entities.QuizAnswers, value string) error {
	f, err := entities.ParseMattressFirmness(value)
	if err != nil {
		return err
	}
	a.MattressFirmness = f
	return nil
}

func applySleepHot(a *entities.QuizAnswers, value string) error {
	h, err := entities.ParseSleepHot(value)
	if err != nil {
		return err
	}
	a.SleepHot = h
	return nil
}

// EncodeSymptoms renders a selection as the raw value accepted by the symptoms step.
func EncodeSymptoms(symptoms []entities.Symptom) string {
	ids := make([]string, len(symptoms))
	for i, s := range symptoms {
		ids[i] = string(s)
	}
	return strings.Join(ids, symptomSeparator)
}

// Progress is what the host shows above each step.
type Progress struct {
	DisplayStep int
	TotalSteps  int
	Percent     float64
}

// TotalSteps is 7 once a non-stomach position is chosen, 6 otherwise.
func TotalSteps(a *entities.QuizAnswers) int {
	if a.IncludesMixStep() {
		return totalStepsWithMix
	}
	return totalStepsWithoutMix
}

// DisplayStep maps a logical step to the 1-based number shown to the user,
// closing the gap left by a skipped position_mix step.
func DisplayStep(step entities.Step, a *entities.QuizAnswers) int {
	total := TotalSteps(a)
	n := int(step) + 1
	if !a.IncludesMixStep() && step >= entities.StepShoulderWidth {
		n = int(step)
	}
	return min(n, total)
}

// ProgressOf combines DisplayStep and TotalSteps.
func ProgressOf(step entities.Step, a *entities.QuizAnswers) Progress {
	display := DisplayStep(step, a)
	total := TotalSteps(a)
	return Progress{
		DisplayStep: display,
		TotalSteps:  total,
		Percent:     float64(display) / float64(total) * 100,
	}
}
