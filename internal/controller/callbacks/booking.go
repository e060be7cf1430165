package callbacks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
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
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// ========================
// Customer Booking Handlers
// ========================

// maxDayButtons ограничивает число кнопок-дней под карточкой мастера
const maxDayButtons = 14

// HandleViewMaster показывает карточку мастера: статус отпуска, картинку
// доступности на неделю и кнопки дней со свободными слотами
func HandleViewMaster(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
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

	slots, err := h.ScheduleService.ListAvailable(ctx, specialistID)
	if err != nil {
		h.Logger.Error("Failed to list available slots",
			zap.Error(err),
			zap.String("specialist_id", specialistID.String()))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	text := fmt.Sprintf("💇 <b>%s</b>\n", specialist.Name)
	if specialist.Address != "" {
		text += fmt.Sprintf("📍 %s\n", specialist.Address)
	}
	if badge := formatting.VacationBadge(schedule.Status(specialist.Vacation, time.Now())); badge != "" {
		text += badge + "\n"
	}

	if len(slots) == 0 {
		text += "\nСвободных окон пока нет. Загляните позже!"
		kb := keyboard.NewBuilder().
			Row(keyboard.Button("⬅️ К списку мастеров", BackToMasters)).
			Build()
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      msg.Chat.ID,
			Text:        text,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: kb,
		})
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	text += "\nВыберите день:"

	kb := keyboard.NewBuilder()
	row := make([]models.InlineKeyboardButton, 0, 3)
	for _, date := range uniqueDates(slots, maxDayButtons) {
		row = append(row, keyboard.Button(
			formatting.FormatSlotDate(date),
			ViewDay+specialistID.String()+":"+date,
		))
		if len(row) == 3 {
			kb.AddRow(row)
			row = make([]models.InlineKeyboardButton, 0, 3)
		}
	}
	kb.AddRow(row)
	kb.Row(keyboard.Button("⬅️ К списку мастеров", BackToMasters))

	// Неделя доступности картинкой, кнопки - в подписи
	image, err := common.GenerateAvailabilityImage(slots, specialist.Vacation, time.Now())
	if err != nil {
		h.Logger.Warn("Failed to render availability image",
			zap.Error(err),
			zap.String("specialist_id", specialistID.String()))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      msg.Chat.ID,
			Text:        text,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: kb.Build(),
		})
	} else {
		b.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID: msg.Chat.ID,
			Photo: &models.InputFileUpload{
				Filename: "availability.png",
				Data:     bytes.NewReader(image),
			},
			Caption:     text,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: kb.Build(),
		})
	}

	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleViewDay показывает свободные слоты мастера на выбранный день
func HandleViewDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	args, err := common.CallbackArgs(callback.Data, 2)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	specialistID, err := uuid.Parse(args[0])
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	date := args[1]

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	slots, err := h.ScheduleService.ListAvailable(ctx, specialistID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	kb := keyboard.NewBuilder()
	row := make([]models.InlineKeyboardButton, 0, 4)
	count := 0
	for _, slot := range slots {
		if slot.Date != date {
			continue
		}
		count++
		row = append(row, keyboard.Button(slot.Time, BookSlot+slot.ID.String()))
		if len(row) == 4 {
			kb.AddRow(row)
			row = make([]models.InlineKeyboardButton, 0, 4)
		}
	}
	kb.AddRow(row)
	kb.Row(keyboard.Button("⬅️ К выбору дня", ViewMaster+specialistID.String()))

	if count == 0 {
		// Пока пользователь думал, день разобрали
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ На этот день свободного времени не осталось")
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        fmt.Sprintf("🗓 %s\n\nВыберите время:", formatting.FormatSlotDateLong(date)),
		ReplyMarkup: kb.Build(),
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleBookSlot бронирует выбранный слот.
// Транспортные сбои хранилища ретраятся с fibonacci-бэкоффом, проигрыш
// гонки за слот - нет: второй клик по тому же времени получает отказ.
func HandleBookSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	slotID, err := common.ParseUUIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	user, err := h.UserService.GetByTelegramID(ctx, callback.From.ID)
	if err != nil || user == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrUserNotFound))
		return
	}

	actor := service.IdentityOf(user)

	var appointment *model.Appointment
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(200*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		var bookErr error
		appointment, bookErr = h.BookingService.Book(ctx, actor, slotID)
		if errors.Is(bookErr, service.ErrStoreUnavailable) {
			return retry.RetryableError(bookErr)
		}
		return bookErr
	})
	if err != nil {
		h.Logger.Error("Failed to book slot",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
			zap.String("slot_id", slotID.String()))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	text := fmt.Sprintf(
		"✅ <b>Вы записаны!</b>\n\n"+
			"💇 Мастер: %s\n"+
			"📍 Адрес: %s\n"+
			"🗓 %s\n"+
			"🕐 %s\n\n"+
			"Ваши записи: /myappointments",
		appointment.SpecialistName,
		appointment.SpecialistAddress,
		formatting.FormatSlotDateLong(appointment.Date),
		appointment.Time,
	)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📅 Мои записи", MyAppointments)).
		Row(keyboard.Button("➕ Записаться ещё", BackToMasters)).
		Build()

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
	common.AnswerCallback(ctx, b, callback.ID, "✅ Запись создана")
}

// HandleCancelAppointment показывает подтверждение отмены записи
func HandleCancelAppointment(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	appointmentID, err := common.ParseUUIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	appointment, err := h.AppointmentService.GetByID(ctx, appointmentID)
	if err != nil || appointment == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(service.ErrAppointmentNotFound))
		return
	}

	text := fmt.Sprintf(
		"Отменить запись?\n\n💇 %s\n🗓 %s, %s",
		appointment.SpecialistName,
		formatting.FormatSlotDateLong(appointment.Date),
		appointment.Time,
	)

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("❌ Да, отменить", ConfirmCancel+appointmentID.String()),
			keyboard.Button("⬅️ Нет", MyAppointments),
		).
		Build()

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        text,
		ReplyMarkup: kb,
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleConfirmCancel отменяет запись и освобождает слот
func HandleConfirmCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	appointmentID, err := common.ParseUUIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	user, err := h.UserService.GetByTelegramID(ctx, callback.From.ID)
	if err != nil || user == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrUserNotFound))
		return
	}

	if err := h.BookingService.Cancel(ctx, service.IdentityOf(user), appointmentID); err != nil {
		h.Logger.Error("Failed to cancel appointment",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
			zap.String("appointment_id", appointmentID.String()))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("➕ Записаться снова", BackToMasters)).
		Build()

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        "✅ Запись отменена. Время снова доступно другим клиентам.",
		ReplyMarkup: kb,
	})
	common.AnswerCallback(ctx, b, callback.ID, "✅ Отменено")
}

// uniqueDates возвращает первые limit уникальных дат слотов,
// сохраняя порядок (слоты уже отсортированы по дате и времени)
func uniqueDates(slots []*model.Slot, limit int) []string {
	seen := make(map[string]struct{})
	var dates []string
	for _, slot := range slots {
		if _, ok := seen[slot.Date]; ok {
			continue
		}
		seen[slot.Date] = struct{}{}
		dates = append(dates, slot.Date)
		if len(dates) == limit {
			break
		}
	}
	return dates
}
