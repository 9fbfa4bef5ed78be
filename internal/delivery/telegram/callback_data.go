package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
)

// Callback action constants.
const (
	actionQuiz = "quiz"
)

// Quiz sub-actions.
const (
	quizOpen    = "open"
	quizAnswer  = "a"
	quizToggle  = "t"
	quizRestart = "restart"
	quizClose   = "close"
	quizBuy     = "buy"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// subAction returns the first parameter, or "" when there is none.
func (cd callbackData) subAction() string {
	if len(cd.Params) == 0 {
		return ""
	}
	return cd.Params[0]
}

// answer extracts the step and raw value of a quiz:a callback. The value
// is optional; a missing one means "submit what is already selected".
func (cd callbackData) answer() (entities.Step, string, bool) {
	if cd.subAction() != quizAnswer || len(cd.Params) < 2 || len(cd.Params) > 3 {
		return 0, "", false
	}

	step, err := strconv.Atoi(cd.Params[1])
	if err != nil || step < int(entities.StepPosition) || step >= int(entities.StepResult) {
		return 0, "", false
	}

	var value string
	if len(cd.Params) == 3 {
		value = cd.Params[2]
	}
	return entities.Step(step), value, true
}

func buildQuizOpenCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizOpen}}.encode()
}

// buildQuizAnswerCallback builds callback data for answering the given step.
func buildQuizAnswerCallback(step entities.Step, value string) string {
	params := []string{quizAnswer, strconv.Itoa(int(step))}
	if value != "" {
		params = append(params, value)
	}
	return callbackData{Action: actionQuiz, Params: params}.encode()
}

// buildQuizToggleCallback builds callback data for toggling a symptom.
func buildQuizToggleCallback(s entities.Symptom) string {
	return callbackData{Action: actionQuiz, Params: []string{quizToggle, string(s)}}.encode()
}

func buildQuizRestartCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizRestart}}.encode()
}

func buildQuizCloseCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizClose}}.encode()
}

// buildQuizBuyCallback builds callback data for the purchase button.
func buildQuizBuyCallback(id entities.ProductID) string {
	return callbackData{Action: actionQuiz, Params: []string{quizBuy, string(id)}}.encode()
}
