package telegram

import (
	"slices"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
)

// buildStartKeyboard builds keyboard for the welcome message.
func buildStartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛏 Find my pillow", buildQuizOpenCallback()),
		),
	)
}

// buildQuizControlsRow builds the restart/close row shown under every step.
func buildQuizControlsRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔄 Restart", buildQuizRestartCallback()),
		tgbotapi.NewInlineKeyboardButtonData("✖️ Close", buildQuizCloseCallback()),
	)
}

// buildStepKeyboard builds answer buttons for the current step.
func buildStepKeyboard(step entities.Step, answers entities.QuizAnswers) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	switch step {
	case entities.StepPosition:
		for _, p := range entities.SleepPositions {
			label := string(p) + " Sleeper"
			if p == entities.PositionStomach {
				label += " (low loft)"
			}
			rows = append(rows, answerRow(label, step, string(p)))
		}

	case entities.StepSymptoms:
		for _, s := range entities.Symptoms {
			label := "⬜ " + s.Label()
			if slices.Contains(answers.Symptoms, s) {
				label = "✅ " + s.Label()
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(label, buildQuizToggleCallback(s)),
			))
		}
		rows = append(rows, answerRow("Next Step ▶️", step, ""))

	case entities.StepPositionMix:
		for _, m := range entities.StomachMixes {
			rows = append(rows, answerRow(m.Title(answers.Position), step, string(m)))
		}

	case entities.StepShoulderWidth:
		for _, w := range entities.ShoulderWidths {
			rows = append(rows, answerRow(string(w), step, string(w)))
		}

	case entities.StepMattressFirmness:
		for _, f := range entities.MattressFirmnesses {
			rows = append(rows, answerRow(string(f), step, string(f)))
		}

	case entities.StepSleepHot:
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔥 Yes", buildQuizAnswerCallback(step, string(entities.SleepHotYes))),
			tgbotapi.NewInlineKeyboardButtonData("❄️ No", buildQuizAnswerCallback(step, string(entities.SleepHotNo))),
		))
	}

	rows = append(rows, buildQuizControlsRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildResultKeyboard builds keyboard for the result screen.
func buildResultKeyboard(r entities.QuizResult) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛒 Buy on Amazon", buildQuizBuyCallback(r.PrimaryProduct.ID)),
		),
	}
	if r.SecondaryProduct != nil && r.SecondaryProduct.PurchaseURL != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Secondary: "+r.SecondaryProduct.Name, r.SecondaryProduct.PurchaseURL),
		))
	}
	rows = append(rows, buildQuizControlsRow())

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildPurchaseKeyboard builds the link button sent after a purchase click.
func buildPurchaseKeyboard(p *entities.Product) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Open on Amazon", p.PurchaseURL),
		),
	)
}

func answerRow(label string, step entities.Step, value string) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(label, buildQuizAnswerCallback(step, value)),
	)
}
