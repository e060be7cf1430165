package callbacks

import (
	"context"
	"strings"

	"github.com/daryakhvt/salon_bot/internal/controller/callbacks/callbacktypes"
	"github.com/daryakhvt/salon_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Callback Data Patterns
// ========================

// Клиентские callbacks
const (
	BackToMasters  = "masters"
	MyAppointments = "my_appointments"

	ViewMaster        = "master:"         // master:<uuid>
	ViewDay           = "day:"            // day:<uuid мастера>:<2006-01-02>
	BookSlot          = "slot:"           // slot:<uuid слота>
	CancelAppointment = "cancel_appt:"    // cancel_appt:<uuid записи>
	ConfirmCancel     = "confirm_cancel:" // confirm_cancel:<uuid записи>
)

// Админские callbacks (генерация и удаление слотов)
const (
	GenMaster  = "gen_master:" // gen_master:<uuid>
	GenWeekday = "gen_wd:"     // gen_wd:<0-6, 0=воскресенье>
	GenConfirm = "gen_confirm"
	GenAbort   = "gen_abort"
	DelMaster  = "del_master:"  // del_master:<uuid>
	DelConfirm = "del_confirm:" // del_confirm:<uuid>
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	switch {
	// ===== Навигация =====
	case data == BackToMasters:
		if h.HandleMasters != nil {
			h.HandleMasters(ctx, b, &models.Update{CallbackQuery: callback})
		}
		common.AnswerCallback(ctx, b, callback.ID, "")
	case data == MyAppointments:
		if h.HandleMyAppointments != nil {
			h.HandleMyAppointments(ctx, b, &models.Update{CallbackQuery: callback})
		}
		common.AnswerCallback(ctx, b, callback.ID, "")
	case data == "noop":
		// No operation - просто подтверждаем callback
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Клиент: выбор мастера и запись =====
	case strings.HasPrefix(data, ViewMaster):
		HandleViewMaster(ctx, b, callback, h)
	case strings.HasPrefix(data, ViewDay):
		HandleViewDay(ctx, b, callback, h)
	case strings.HasPrefix(data, BookSlot):
		HandleBookSlot(ctx, b, callback, h)
	case strings.HasPrefix(data, CancelAppointment):
		HandleCancelAppointment(ctx, b, callback, h)
	case strings.HasPrefix(data, ConfirmCancel):
		HandleConfirmCancel(ctx, b, callback, h)

	// ===== Админ: генерация слотов =====
	case strings.HasPrefix(data, GenMaster):
		HandleGenMaster(ctx, b, callback, h)
	case strings.HasPrefix(data, GenWeekday):
		HandleGenWeekday(ctx, b, callback, h)
	case data == GenConfirm:
		HandleGenConfirm(ctx, b, callback, h)
	case data == GenAbort:
		HandleGenAbort(ctx, b, callback, h)

	// ===== Админ: удаление слотов =====
	case strings.HasPrefix(data, DelMaster):
		HandleDelMaster(ctx, b, callback, h)
	case strings.HasPrefix(data, DelConfirm):
		HandleDelConfirm(ctx, b, callback, h)

	// ===== Unknown Callback =====
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
	}
}
