package controller

import (
	"context"

	"github.com/daryakhvt/salon_bot/internal/controller/callbacks"
	"github.com/daryakhvt/salon_bot/internal/controller/handlers"
	"github.com/daryakhvt/salon_bot/internal/controller/state"
	"github.com/daryakhvt/salon_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	userService *service.UserService,
	bookingService *service.BookingService,
	scheduleService *service.ScheduleService,
	appointmentService *service.AppointmentService,
	specialistService *service.SpecialistService,
	logger *zap.Logger,
) *BotController {
	// Создаём менеджер состояний
	stateManager := state.NewManager()

	// Создаём обработчики команд
	cmdHandlers := handlers.NewHandlers(
		userService,
		bookingService,
		scheduleService,
		appointmentService,
		specialistService,
		stateManager,
		logger,
	)

	// Создаём адаптер для callback handlers
	stateAdapter := state.NewAdapter(stateManager)

	// Создаём callback handler с зависимостями
	callbackHandler := callbacks.NewHandler(
		userService,
		bookingService,
		scheduleService,
		appointmentService,
		specialistService,
		stateAdapter,
		logger,
		cmdHandlers.HandleMasters,
		cmdHandlers.HandleMyAppointments,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Регистрируем команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/masters", bot.MatchTypeExact, c.handlers.HandleMasters)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/myappointments", bot.MatchTypeExact, c.handlers.HandleMyAppointments)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/contact", bot.MatchTypeExact, c.handlers.HandleContact)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Команды для администратора
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/generate", bot.MatchTypeExact, c.handlers.HandleGenerate)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/delslots", bot.MatchTypeExact, c.handlers.HandleDelSlots)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "masters", Description: "💇 Мастера и запись"},
		{Command: "myappointments", Description: "📅 Мои записи"},
		{Command: "contact", Description: "📱 Указать контакты"},
		{Command: "cancel", Description: "❌ Отменить текущую операцию"},
		{Command: "generate", Description: "🛠 Сгенерировать слоты (админ)"},
		{Command: "delslots", Description: "🗑 Удалить свободные слоты (админ)"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
