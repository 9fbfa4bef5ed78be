package telegram

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
	"github.com/aliskhannn/loftfit-bot/internal/service"
	"github.com/aliskhannn/loftfit-bot/internal/storage"
)

// botAPI is the part of *tgbotapi.BotAPI the handler uses.
type botAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type SessionStore interface {
	With(chatID int64, fn func(*storage.Session) error) error
	ScheduleReset(chatID int64, grace time.Duration)
}

type ClaimCatalog interface {
	GetClaim(id entities.ClaimID) (*entities.Claim, error)
}

type Handler struct {
	bot        botAPI
	logger     *zap.Logger
	sessions   SessionStore
	claims     ClaimCatalog
	closeGrace time.Duration
}

func NewHandler(
	bot botAPI,
	logger *zap.Logger,
	sessions SessionStore,
	claims ClaimCatalog,
	closeGrace time.Duration,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		bot:        bot,
		logger:     logger,
		sessions:   sessions,
		claims:     claims,
		closeGrace: closeGrace,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	if update.Message.IsCommand() {
		h.handleCommand(ctx, update.Message)
		return
	}

	h.send(newMessage(update.Message.Chat.ID, md(msgUnknownCommand)))
}

// renderQuiz builds the screen for the flow's current step.
func (h *Handler) renderQuiz(flow *service.QuizFlow) (string, tgbotapi.InlineKeyboardMarkup) {
	if r, ok := flow.Result(); ok && flow.Step() == entities.StepResult {
		return formatResult(r, flow.Progress(), h.claim), buildResultKeyboard(r)
	}

	step := flow.Step()
	answers := flow.Answers()
	return formatStep(step, answers, flow.Progress()), buildStepKeyboard(step, answers)
}

// showQuiz edits messageID in place, or sends a new message when it is 0,
// and remembers which message carries the quiz.
func (h *Handler) showQuiz(sess *storage.Session, messageID int) error {
	text, kb := h.renderQuiz(sess.Flow)

	if messageID != 0 {
		edit := newEdit(sess.ChatID, messageID, text)
		edit.ReplyMarkup = &kb
		if _, err := h.bot.Send(edit); err != nil {
			return fmt.Errorf("edit quiz message: %w", err)
		}
		sess.MessageID = messageID
		return nil
	}

	msg := newMessage(sess.ChatID, text)
	msg.ReplyMarkup = kb
	sent, err := h.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("send quiz message: %w", err)
	}
	sess.MessageID = sent.MessageID
	return nil
}

func (h *Handler) claim(id entities.ClaimID) *entities.Claim {
	if h.claims == nil {
		return nil
	}
	c, err := h.claims.GetClaim(id)
	if err != nil {
		h.logger.Warn("claim unavailable", zap.String("claim_id", string(id)), zap.Error(err))
		return nil
	}
	return c
}

func (h *Handler) sendError(chatID int64, err string) {
	h.send(newMessage(chatID, md(err)))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
