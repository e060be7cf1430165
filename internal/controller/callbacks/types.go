package callbacks

import (
	"context"

	"github.com/daryakhvt/salon_bot/internal/controller/callbacks/callbacktypes"
	"github.com/daryakhvt/salon_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler обёртка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// StateManager интерфейс для управления состоянием пользователей
type StateManager = callbacktypes.StateManager

// UserState представляет текущее состояние пользователя в диалоге
type UserState = callbacktypes.UserState

// Состояния, в которые переводят callback-обработчики. Значения совпадают
// с константами пакета state: оба слоя читают один менеджер.
const (
	StateGenerateDates    UserState = "generate_dates"
	StateGenerateWeekdays UserState = "generate_weekdays"
)

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	userService *service.UserService,
	bookingService *service.BookingService,
	scheduleService *service.ScheduleService,
	appointmentService *service.AppointmentService,
	specialistService *service.SpecialistService,
	stateManager callbacktypes.StateManager,
	logger *zap.Logger,
	handleMasters func(ctx context.Context, b *bot.Bot, update *models.Update),
	handleMyAppointments func(ctx context.Context, b *bot.Bot, update *models.Update),
) *Handler {
	inner := &callbacktypes.Handler{
		UserService:          userService,
		BookingService:       bookingService,
		ScheduleService:      scheduleService,
		AppointmentService:   appointmentService,
		SpecialistService:    specialistService,
		StateManager:         stateManager,
		Logger:               logger,
		HandleMasters:        handleMasters,
		HandleMyAppointments: handleMyAppointments,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	h.Logger.Info("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID),
	)

	Route(ctx, b, callback, h.Handler)
}
