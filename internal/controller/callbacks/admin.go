package callbacks

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/daryakhvt/salon_bot/internal/controller/callbacks/callbacktypes"
	"github.com/daryakhvt/salon_bot/internal/controller/callbacks/common"
	"github.com/daryakhvt/salon_bot/internal/controller/callbacks/common/formatting"
	"github.com/daryakhvt/salon_bot/internal/controller/callbacks/common/keyboard"
	"github.com/daryakhvt/salon_bot/internal/model"
	"github.com/daryakhvt/salon_bot/internal/schedule"
	"github.com/daryakhvt/salon_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ========================
// Admin Slot Management Handlers
// ========================

// Ключи временных данных диалога генерации
const (
	GenKeySpecialistID = "gen_specialist_id"
	GenKeyDateFrom     = "gen_date_from"
	GenKeyDateTo       = "gen_date_to"
	GenKeyTimeFrom     = "gen_time_from"
	GenKeyTimeTo       = "gen_time_to"
	GenKeyStep         = "gen_step"
	GenKeyWeekdays     = "gen_weekdays"
)

// requireAdmin возвращает пользователя, если он админ, иначе отвечает
// alert'ом и возвращает nil
func requireAdmin(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) *model.User {
	user, err := h.UserService.GetByTelegramID(ctx, callback.From.ID)
	if err != nil || user == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrUserNotFound))
		return nil
	}
	if !user.IsAdmin() {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(service.ErrForbidden))
		return nil
	}
	return user
}

// HandleGenMaster - админ выбрал мастера, начинаем диалог генерации
func HandleGenMaster(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	if requireAdmin(ctx, b, callback, h) == nil {
		return
	}

	specialistID, err := common.ParseUUIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	specialist, err := h.SpecialistService.GetByID(ctx, specialistID)
	if err != nil || specialist == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(service.ErrSpecialistNotFound))
		return
	}

	telegramID := callback.From.ID
	h.StateManager.SetData(telegramID, GenKeySpecialistID, specialistID.String())
	h.StateManager.SetState(telegramID, StateGenerateDates)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text: fmt.Sprintf(
			"🛠 Генерация слотов для мастера <b>%s</b>\n\n"+
				"Введите период в формате:\n<code>2024-06-03 2024-06-30</code>\n\n"+
				"Отмена: /cancel",
			specialist.Name),
		ParseMode: models.ParseModeHTML,
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleGenWeekday переключает день недели в маске генерации
func HandleGenWeekday(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	if requireAdmin(ctx, b, callback, h) == nil {
		return
	}

	args, err := common.CallbackArgs(callback.Data, 1)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	day, err := strconv.Atoi(args[0])
	if err != nil || day < 0 || day > 6 {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	telegramID := callback.From.ID
	weekdays := genWeekdays(h, telegramID)
	weekday := time.Weekday(day)
	weekdays[weekday] = !weekdays[weekday]
	h.StateManager.SetData(telegramID, GenKeyWeekdays, weekdays)

	b.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		ReplyMarkup: WeekdayKeyboard(weekdays),
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleGenConfirm запускает генерацию с собранными параметрами
func HandleGenConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	user := requireAdmin(ctx, b, callback, h)
	if user == nil {
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	telegramID := callback.From.ID
	data := h.StateManager.GetAllData(telegramID)

	specialistID, cfg, err := generationParams(data)
	if err != nil {
		h.Logger.Error("Broken slot generation dialog state",
			zap.Error(err),
			zap.Int64("telegram_id", telegramID))
		h.StateManager.ClearState(telegramID)
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Данные диалога потеряны. Начните заново: /generate")
		return
	}

	count, err := h.ScheduleService.GenerateSlots(ctx, service.IdentityOf(user), specialistID, cfg)
	if err != nil {
		h.Logger.Error("Failed to generate slots",
			zap.Error(err),
			zap.String("specialist_id", specialistID.String()))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	h.StateManager.ClearState(telegramID)

	text := fmt.Sprintf("✅ Создано %d %s", count, formatting.PluralizeSlots(count))
	if count == 0 {
		text = "ℹ️ Новых слотов не создано: всё уже существует либо дни выпали на отпуск"
	}

	b.SendMessage(ctx, &bot.SendMessageParams{ChatID: msg.Chat.ID, Text: text})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleGenAbort прерывает диалог генерации
func HandleGenAbort(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	h.StateManager.ClearState(callback.From.ID)

	if msg != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: msg.Chat.ID,
			Text:   "✅ Операция отменена.",
		})
	}
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleDelMaster - админ выбрал мастера для чистки слотов
func HandleDelMaster(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	if requireAdmin(ctx, b, callback, h) == nil {
		return
	}

	specialistID, err := common.ParseUUIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	free, booked, err := slotCounts(ctx, h, specialistID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	if free == 0 {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "ℹ️ У мастера нет свободных слотов для удаления")
		return
	}

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("🗑 Удалить", DelConfirm+specialistID.String()),
			keyboard.Button("⬅️ Отмена", GenAbort),
		).
		Build()

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text: fmt.Sprintf(
			"Удалить %d свободных %s?\n\nЗанятых слотов: %d - они не будут тронуты.",
			free, formatting.PluralizeSlots(free), booked),
		ReplyMarkup: kb,
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleDelConfirm удаляет все свободные слоты мастера
func HandleDelConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	user := requireAdmin(ctx, b, callback, h)
	if user == nil {
		return
	}

	specialistID, err := common.ParseUUIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	slots, err := h.ScheduleService.ListBySpecialist(ctx, specialistID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	var ids []uuid.UUID
	for _, slot := range slots {
		if !slot.Booked {
			ids = append(ids, slot.ID)
		}
	}

	deleted, err := h.ScheduleService.DeleteSlots(ctx, service.IdentityOf(user), ids)
	if err != nil {
		h.Logger.Error("Failed to bulk delete slots",
			zap.Error(err),
			zap.String("specialist_id", specialistID.String()))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   fmt.Sprintf("✅ Удалено %d %s", deleted, formatting.PluralizeSlots(deleted)),
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// WeekdayKeyboard строит клавиатуру выбора дней недели с отметками
func WeekdayKeyboard(selected map[time.Weekday]bool) *models.InlineKeyboardMarkup {
	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}

	kb := keyboard.NewBuilder()
	row := make([]models.InlineKeyboardButton, 0, 4)
	for _, weekday := range order {
		label := formatting.WeekdayShortName(weekday)
		if selected[weekday] {
			label = "✅ " + label
		}
		row = append(row, keyboard.Button(label, GenWeekday+strconv.Itoa(int(weekday))))
		if len(row) == 4 {
			kb.AddRow(row)
			row = make([]models.InlineKeyboardButton, 0, 4)
		}
	}
	kb.AddRow(row)
	kb.Row(
		keyboard.Button("🚀 Создать", GenConfirm),
		keyboard.Button("❌ Отмена", GenAbort),
	)

	return kb.Build()
}

// genWeekdays достаёт маску дней недели из состояния диалога
func genWeekdays(h *callbacktypes.Handler, telegramID int64) map[time.Weekday]bool {
	raw, ok := h.StateManager.GetData(telegramID, GenKeyWeekdays)
	if ok {
		if weekdays, valid := raw.(map[time.Weekday]bool); valid {
			return weekdays
		}
	}
	return make(map[time.Weekday]bool)
}

// generationParams собирает schedule.Config из данных диалога
func generationParams(data map[string]interface{}) (uuid.UUID, schedule.Config, error) {
	var cfg schedule.Config

	rawID, ok := data[GenKeySpecialistID].(string)
	if !ok {
		return uuid.Nil, cfg, fmt.Errorf("missing specialist id")
	}
	specialistID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, cfg, fmt.Errorf("parse specialist id: %w", err)
	}

	cfg.DateFrom, ok = data[GenKeyDateFrom].(string)
	if !ok {
		return uuid.Nil, cfg, fmt.Errorf("missing date from")
	}
	cfg.DateTo, ok = data[GenKeyDateTo].(string)
	if !ok {
		return uuid.Nil, cfg, fmt.Errorf("missing date to")
	}
	cfg.TimeFrom, ok = data[GenKeyTimeFrom].(string)
	if !ok {
		return uuid.Nil, cfg, fmt.Errorf("missing time from")
	}
	cfg.TimeTo, ok = data[GenKeyTimeTo].(string)
	if !ok {
		return uuid.Nil, cfg, fmt.Errorf("missing time to")
	}
	cfg.StepMinutes, ok = data[GenKeyStep].(int)
	if !ok {
		return uuid.Nil, cfg, fmt.Errorf("missing step")
	}
	cfg.Weekdays, ok = data[GenKeyWeekdays].(map[time.Weekday]bool)
	if !ok {
		return uuid.Nil, cfg, fmt.Errorf("missing weekday mask")
	}

	return specialistID, cfg, nil
}

// slotCounts считает свободные и занятые слоты мастера
func slotCounts(ctx context.Context, h *callbacktypes.Handler, specialistID uuid.UUID) (free, booked int, err error) {
	slots, err := h.ScheduleService.ListBySpecialist(ctx, specialistID)
	if err != nil {
		return 0, 0, err
	}
	for _, slot := range slots {
		if slot.Booked {
			booked++
		} else {
			free++
		}
	}
	return free, booked, nil
}
