package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
	"github.com/aliskhannn/loftfit-bot/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
			return nil
		}
		return nil
	}
}

// callbackNotice maps a callback outcome to the toast shown to the user.
func (h *Handler) callbackNotice(cb *tgbotapi.CallbackQuery, err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var chatID int64
	if cb.Message != nil {
		chatID = cb.Message.Chat.ID
	}
	fields := []zap.Field{
		zap.Int64("chat_id", chatID),
		zap.String("data", cb.Data),
		zap.Error(err),
	}

	var stepErr *service.StepError
	switch {
	case errors.As(err, &stepErr),
		errors.Is(err, errMalformedCallback),
		isUnknownAnswer(err):
		h.logger.Warn("stale or malformed quiz callback", fields...)
		return msgOutdatedButton, true

	case errors.Is(err, service.ErrQuizNotOpen), errors.Is(err, service.ErrNoResult):
		return msgQuizNotOpen, true

	case errors.Is(err, service.ErrNoSymptomsSelected):
		return msgPickSymptom, false
	}

	h.logger.Error("handle callback error", fields...)
	return msgInternalError, false
}

func isUnknownAnswer(err error) bool {
	return errors.Is(err, entities.ErrUnknownPosition) ||
		errors.Is(err, entities.ErrUnknownSymptom) ||
		errors.Is(err, entities.ErrUnknownStomachMix) ||
		errors.Is(err, entities.ErrUnknownShoulderWidth) ||
		errors.Is(err, entities.ErrUnknownMattressFirmness) ||
		errors.Is(err, entities.ErrUnknownSleepHot)
}
