package common

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

// Helper functions для всех callback handlers

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// CallbackArgs разбирает callback data вида "prefix:arg1:arg2" и
// возвращает аргументы без префикса
func CallbackArgs(data string, want int) ([]string, error) {
	parts := strings.Split(data, ":")
	if len(parts) != want+1 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return parts[1:], nil
}

// ParseUUIDFromCallback извлекает UUID из callback data
// Например: "master:2c3e..." -> 2c3e...
func ParseUUIDFromCallback(data string) (uuid.UUID, error) {
	args, err := CallbackArgs(data, 1)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return id, nil
}
