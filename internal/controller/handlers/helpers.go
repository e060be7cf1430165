package handlers

import (
	"context"
	"time"

	"github.com/daryakhvt/salon_bot/internal/controller/callbacks/common/formatting"
	"github.com/daryakhvt/salon_bot/internal/controller/callbacks/common/keyboard"
	"github.com/daryakhvt/salon_bot/internal/model"
	"github.com/daryakhvt/salon_bot/internal/schedule"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Команды приходят сообщением, навигационные callbacks - нажатием кнопки.
// Хэндлеры команд обслуживают оба пути, поэтому чат и отправитель
// достаются из любого вида update.

// chatAndSender возвращает чат и telegram ID отправителя
func chatAndSender(update *models.Update) (chatID int64, telegramID int64, ok bool) {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID, update.Message.From.ID, true
	case update.CallbackQuery != nil && update.CallbackQuery.Message.Message != nil:
		return update.CallbackQuery.Message.Message.Chat.ID, update.CallbackQuery.From.ID, true
	default:
		return 0, 0, false
	}
}

// displayName собирает имя пользователя Telegram
func displayName(from *models.User) string {
	if from.LastName != "" {
		return from.FirstName + " " + from.LastName
	}
	return from.FirstName
}

// sendMastersList отправляет список мастеров с кнопками и бейджами отпуска
func (h *Handlers) sendMastersList(ctx context.Context, b *bot.Bot, chatID int64, callbackPrefix, title string) {
	specialists, err := h.specialistService.List(ctx)
	if err != nil {
		h.logger.Error("Failed to list specialists", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Не удалось загрузить список мастеров. Попробуйте позже.",
		})
		return
	}

	if len(specialists) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "ℹ️ Мастеров пока нет.",
		})
		return
	}

	now := time.Now()
	kb := keyboard.NewBuilder()
	for _, specialist := range specialists {
		label := specialist.Name
		status := schedule.Status(specialist.Vacation, now)
		switch {
		case status.Active:
			label += " 🌴"
		case status.Upcoming:
			label += " ⏳"
		}
		kb.Row(keyboard.Button(label, callbackPrefix+specialist.ID.String()))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        title,
		ReplyMarkup: kb.Build(),
	})
}

// appointmentLine форматирует запись для списка
func appointmentLine(appointment *model.Appointment) string {
	return formatting.FormatSlotDate(appointment.Date) + " " + appointment.Time + " - " + appointment.SpecialistName
}
