package handlers

import (
	"context"

	"github.com/daryakhvt/salon_bot/internal/controller/callbacks"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// adminOnly проверяет права и возвращает chatID, либо ok=false
func (h *Handlers) adminOnly(ctx context.Context, b *bot.Bot, update *models.Update) (int64, bool) {
	if update.Message == nil {
		return 0, false
	}

	chatID := update.Message.Chat.ID

	user, err := h.userService.GetByTelegramID(ctx, update.Message.From.ID)
	if err != nil || user == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Пользователь не найден. Используйте /start",
		})
		return 0, false
	}

	if !user.IsAdmin() {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Команда доступна только администратору",
		})
		return 0, false
	}

	return chatID, true
}

// HandleGenerate обрабатывает команду /generate - генерация слотов
func (h *Handlers) HandleGenerate(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, ok := h.adminOnly(ctx, b, update)
	if !ok {
		return
	}

	h.sendMastersList(ctx, b, chatID, callbacks.GenMaster, "🛠 Для какого мастера сгенерировать слоты?")
}

// HandleDelSlots обрабатывает команду /delslots - удаление свободных слотов
func (h *Handlers) HandleDelSlots(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, ok := h.adminOnly(ctx, b, update)
	if !ok {
		return
	}

	h.sendMastersList(ctx, b, chatID, callbacks.DelMaster, "🗑 У какого мастера удалить свободные слоты?")
}
