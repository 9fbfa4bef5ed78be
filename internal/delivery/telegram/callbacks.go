package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
	"github.com/aliskhannn/loftfit-bot/internal/service"
	"github.com/aliskhannn/loftfit-bot/internal/storage"
)

var errMalformedCallback = errors.New("malformed callback data")

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb, nil)
		return
	}

	data := decodeCallback(cb.Data)
	if data.Action != actionQuiz {
		h.answerCallback(cb, errMalformedCallback)
		return
	}

	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID

	var fn HandlerFunc
	switch data.subAction() {
	case quizOpen:
		fn = h.openQuiz(service.SourceButton, msgID)
	case quizAnswer:
		fn = h.answerStep(data, msgID)
	case quizToggle:
		fn = h.toggleSymptom(data, msgID)
	case quizRestart:
		fn = h.restartQuiz(msgID)
	case quizClose:
		fn = h.closeQuiz(msgID)
	case quizBuy:
		fn = h.purchase()
	default:
		h.answerCallback(cb, errMalformedCallback)
		return
	}

	h.answerCallback(cb, fn(ctx, chatID))
}

// answerStep submits the answer carried by a quiz:a callback.
func (h *Handler) answerStep(data callbackData, messageID int) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		step, value, ok := data.answer()
		if !ok {
			return errMalformedCallback
		}

		return h.sessions.With(chatID, func(sess *storage.Session) error {
			var err error
			if step == entities.StepSymptoms && value == "" {
				err = sess.Flow.SubmitSymptoms()
			} else {
				err = sess.Flow.Submit(step, value)
			}
			if err != nil {
				return err
			}

			return h.showQuiz(sess, messageID)
		})
	}
}

// toggleSymptom flips one symptom and redraws the checklist.
func (h *Handler) toggleSymptom(data callbackData, messageID int) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		if len(data.Params) != 2 {
			return errMalformedCallback
		}
		symptom, err := entities.ParseSymptom(data.Params[1])
		if err != nil {
			return err
		}

		return h.sessions.With(chatID, func(sess *storage.Session) error {
			if err := sess.Flow.ToggleSymptom(symptom); err != nil {
				return err
			}
			return h.showQuiz(sess, messageID)
		})
	}
}

// purchase records the click and sends the marketplace link.
func (h *Handler) purchase() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		return h.sessions.With(chatID, func(sess *storage.Session) error {
			r, ok := sess.Flow.Result()
			if !ok {
				return service.ErrNoResult
			}
			if err := sess.Flow.TrackPurchaseClick(purchaseFrom); err != nil {
				return err
			}

			msg := newMessage(chatID, formatPurchase(r.PrimaryProduct))
			msg.ReplyMarkup = buildPurchaseKeyboard(r.PrimaryProduct)
			h.send(msg)
			return nil
		})
	}
}

// answerCallback removes the button spinner, showing a notice when the
// action failed.
func (h *Handler) answerCallback(cb *tgbotapi.CallbackQuery, err error) {
	text, alert := h.callbackNotice(cb, err)

	answer := tgbotapi.NewCallback(cb.ID, text)
	answer.ShowAlert = alert
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Error("failed to answer callback",
			zap.String("callback_id", cb.ID),
			zap.Error(err),
		)
	}
}
