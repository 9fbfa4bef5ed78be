package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/loftfit-bot/internal/service"
	"github.com/aliskhannn/loftfit-bot/internal/storage"
)

// BotCommands lists the commands registered with Telegram.
func BotCommands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "quiz", Description: "Find your pillow"},
		{Command: "restart", Description: "Start the quiz over"},
		{Command: "close", Description: "Close the quiz"},
		{Command: "help", Description: "Help"},
	}
}

func (h *Handler) handleCommand(ctx context.Context, m *tgbotapi.Message) {
	chatID := m.Chat.ID

	switch m.Command() {
	case "start":
		msg := newMessage(chatID, welcomeMarkdownV2())
		msg.ReplyMarkup = buildStartKeyboard()
		h.send(msg)

	case "quiz":
		_ = h.withErrorHandling(h.openQuiz(service.SourceCommand, 0))(ctx, chatID)

	case "restart":
		_ = h.withErrorHandling(h.restartQuiz(0))(ctx, chatID)

	case "close":
		_ = h.withErrorHandling(h.closeQuiz(0))(ctx, chatID)

	case "help":
		h.send(newMessage(chatID, helpMarkdownV2()))

	default:
		h.send(newMessage(chatID, md(msgUnknownCommand)))
	}
}

// openQuiz starts a fresh run. A non-zero messageID is reused for the
// first step.
func (h *Handler) openQuiz(source string, messageID int) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		return h.sessions.With(chatID, func(sess *storage.Session) error {
			sess.Flow.Open(source)
			return h.showQuiz(sess, messageID)
		})
	}
}

// restartQuiz returns to the first step. A closed quiz is opened again.
func (h *Handler) restartQuiz(messageID int) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		return h.sessions.With(chatID, func(sess *storage.Session) error {
			if sess.Flow.IsOpen() {
				sess.Flow.Restart()
			} else {
				sess.Flow.Open(service.SourceCommand)
			}
			return h.showQuiz(sess, messageID)
		})
	}
}

// closeQuiz closes the quiz and schedules its reset after the grace period.
func (h *Handler) closeQuiz(messageID int) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		var closed bool

		err := h.sessions.With(chatID, func(sess *storage.Session) error {
			if !sess.Flow.IsOpen() {
				return nil
			}
			sess.Flow.Close()
			closed = true

			target := messageID
			if target == 0 {
				target = sess.MessageID
			}
			if target != 0 {
				h.send(newEdit(chatID, target, md(msgQuizClosed)))
				return nil
			}
			h.send(newMessage(chatID, md(msgQuizClosed)))
			return nil
		})
		if err != nil {
			return err
		}

		if !closed {
			h.send(newMessage(chatID, md(msgNothingToClose)))
			return nil
		}

		h.sessions.ScheduleReset(chatID, h.closeGrace)
		return nil
	}
}
