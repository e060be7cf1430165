package handlers

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/daryakhvt/salon_bot/internal/controller/callbacks"
	"github.com/daryakhvt/salon_bot/internal/controller/state"
	"github.com/daryakhvt/salon_bot/internal/model"
	"github.com/daryakhvt/salon_bot/internal/schedule"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Ключ телефона между шагами контактного диалога
const contactKeyPhone = "contact_phone_value"

var (
	phoneRe = regexp.MustCompile(`^\+?\d{10,15}$`)
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// handleContactPhoneStep обрабатывает ввод телефона
func (h *Handlers) handleContactPhoneStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	phone := strings.TrimSpace(update.Message.Text)

	if !phoneRe.MatchString(phone) {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Неверный формат. Введите номер в формате +79990001122",
		})
		return
	}

	h.stateManager.SetData(telegramID, contactKeyPhone, phone)
	h.stateManager.SetState(telegramID, state.StateContactEmail)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "📧 Теперь введите email. Если не хотите указывать - отправьте «-»",
	})
}

// handleContactEmailStep обрабатывает ввод email и сохраняет контакты
func (h *Handlers) handleContactEmailStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	email := strings.TrimSpace(update.Message.Text)

	if email == "-" {
		email = ""
	} else if !emailRe.MatchString(email) {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Неверный формат email. Попробуйте ещё раз или отправьте «-»",
		})
		return
	}

	rawPhone, ok := h.stateManager.GetData(telegramID, contactKeyPhone)
	phone, valid := rawPhone.(string)
	if !ok || !valid {
		h.stateManager.ClearState(telegramID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Данные диалога потеряны. Начните заново: /contact",
		})
		return
	}

	user, err := h.userService.GetByTelegramID(ctx, telegramID)
	if err != nil || user == nil {
		h.stateManager.ClearState(telegramID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Пользователь не найден. Используйте /start",
		})
		return
	}

	if err := h.userService.UpdateContact(ctx, user.ID, phone, email); err != nil {
		h.logger.Error("Failed to update contact",
			zap.Error(err),
			zap.String("user_id", user.ID.String()))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Не удалось сохранить контакты. Попробуйте позже.",
		})
		return
	}

	h.stateManager.ClearState(telegramID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "✅ Контакты сохранены. Они будут указаны в ваших новых записях.",
	})
}

// handleGenerateDatesStep обрабатывает ввод периода генерации
func (h *Handlers) handleGenerateDatesStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID

	fields := strings.Fields(update.Message.Text)
	if len(fields) != 2 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Нужны две даты через пробел: 2024-06-03 2024-06-30",
		})
		return
	}

	from, errFrom := time.Parse(model.SlotDateLayout, fields[0])
	to, errTo := time.Parse(model.SlotDateLayout, fields[1])
	if errFrom != nil || errTo != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Неверный формат даты. Пример: 2024-06-03 2024-06-30",
		})
		return
	}
	if to.Before(from) {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Дата окончания раньше даты начала",
		})
		return
	}

	h.stateManager.SetData(telegramID, callbacks.GenKeyDateFrom, fields[0])
	h.stateManager.SetData(telegramID, callbacks.GenKeyDateTo, fields[1])
	h.stateManager.SetState(telegramID, state.StateGenerateHours)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: "⏰ Введите рабочие часы и шаг в минутах:\n" +
			"<code>10:00 19:00 30</code>\n\n" +
			"Отмена: /cancel",
		ParseMode: models.ParseModeHTML,
	})
}

// handleGenerateHoursStep обрабатывает ввод рабочих часов и шага
func (h *Handlers) handleGenerateHoursStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID

	fields := strings.Fields(update.Message.Text)
	if len(fields) != 3 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Нужны время начала, время конца и шаг: 10:00 19:00 30",
		})
		return
	}

	timeFrom, errFrom := time.Parse(model.SlotTimeLayout, fields[0])
	timeTo, errTo := time.Parse(model.SlotTimeLayout, fields[1])
	if errFrom != nil || errTo != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Неверный формат времени. Пример: 10:00 19:00 30",
		})
		return
	}
	if !timeTo.After(timeFrom) {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Время конца должно быть позже времени начала",
		})
		return
	}

	step, err := strconv.Atoi(fields[2])
	if err != nil || step < schedule.MinStepMinutes {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text: "❌ Шаг должен быть числом не меньше " +
				strconv.Itoa(schedule.MinStepMinutes) + " минут",
		})
		return
	}

	h.stateManager.SetData(telegramID, callbacks.GenKeyTimeFrom, fields[0])
	h.stateManager.SetData(telegramID, callbacks.GenKeyTimeTo, fields[1])
	h.stateManager.SetData(telegramID, callbacks.GenKeyStep, step)
	h.stateManager.SetData(telegramID, callbacks.GenKeyWeekdays, make(map[time.Weekday]bool))
	// Нельзя сбрасывать состояние: SetState(StateNone) удалит собранные данные
	h.stateManager.SetState(telegramID, state.StateGenerateWeekdays)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        "📅 Выберите дни недели для генерации:",
		ReplyMarkup: callbacks.WeekdayKeyboard(make(map[time.Weekday]bool)),
	})
}
