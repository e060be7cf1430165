package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/daryakhvt/salon_bot/internal/controller/callbacks"
	"github.com/daryakhvt/salon_bot/internal/controller/callbacks/common/keyboard"
	"github.com/daryakhvt/salon_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	from := update.Message.From

	user, err := h.userService.Register(ctx, from.ID, displayName(from))
	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Произошла ошибка при регистрации. Попробуйте позже.",
		})
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это бот записи в салон красоты.\n\n"+
			"Доступные команды:\n"+
			"/masters - Выбрать мастера и записаться\n"+
			"/myappointments - Мои записи\n"+
			"/contact - Указать телефон и почту\n"+
			"/help - Справка",
		user.Name,
	)

	if user.IsAdmin() {
		welcomeText += "\n\nДля администратора:\n" +
			"/generate - Сгенерировать слоты мастера\n" +
			"/delslots - Удалить свободные слоты мастера"
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   welcomeText,
	})
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"/start - Начать работу с ботом\n" +
		"/masters - Список мастеров и запись\n" +
		"/myappointments - Мои записи\n" +
		"/contact - Указать телефон и почту\n" +
		"/cancel - Прервать текущую операцию\n" +
		"/help - Показать эту справку\n\n" +
		"Для записи выберите мастера в /masters, затем день и время."

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
}

// HandleMasters обрабатывает команду /masters и возврат к списку мастеров
func (h *Handlers) HandleMasters(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, _, ok := chatAndSender(update)
	if !ok {
		return
	}

	h.sendMastersList(ctx, b, chatID, callbacks.ViewMaster, "💇 Выберите мастера:")
}

// HandleMyAppointments обрабатывает команду /myappointments
func (h *Handlers) HandleMyAppointments(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, telegramID, ok := chatAndSender(update)
	if !ok {
		return
	}

	user, err := h.userService.GetByTelegramID(ctx, telegramID)
	if err != nil || user == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Пользователь не найден. Используйте /start",
		})
		return
	}

	feed, err := h.appointmentService.ForUser(ctx, user.ID)
	if err != nil {
		h.logger.Error("Failed to load appointments",
			zap.Error(err),
			zap.String("user_id", user.ID.String()))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Не удалось загрузить записи. Попробуйте позже.",
		})
		return
	}

	if len(feed.Upcoming) == 0 && len(feed.Past) == 0 {
		kb := keyboard.NewBuilder().
			Row(keyboard.Button("➕ Записаться", callbacks.BackToMasters)).
			Build()
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        "У вас пока нет записей.",
			ReplyMarkup: kb,
		})
		return
	}

	var sb strings.Builder
	kb := keyboard.NewBuilder()

	if len(feed.Upcoming) > 0 {
		sb.WriteString("📅 <b>Предстоящие записи:</b>\n")
		for _, appointment := range feed.Upcoming {
			sb.WriteString("• " + appointmentLine(appointment) + "\n")
			kb.Row(keyboard.Button(
				"❌ Отменить "+appointment.Date+" "+appointment.Time,
				callbacks.CancelAppointment+appointment.ID.String(),
			))
		}
	}

	if len(feed.Past) > 0 {
		sb.WriteString("\n🗂 <b>Прошедшие:</b>\n")
		shown := feed.Past
		if len(shown) > 5 {
			shown = shown[:5]
		}
		for _, appointment := range shown {
			sb.WriteString("• " + appointmentLine(appointment) + "\n")
		}
	}

	kb.Row(keyboard.Button("➕ Записаться ещё", callbacks.BackToMasters))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        sb.String(),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb.Build(),
	})
}

// HandleContact обрабатывает команду /contact - диалог ввода контактов.
// Контакты попадают в снимок будущих записей.
func (h *Handlers) HandleContact(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID

	user, err := h.userService.GetByTelegramID(ctx, telegramID)
	if err != nil || user == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Пользователь не найден. Используйте /start",
		})
		return
	}

	h.stateManager.SetState(telegramID, state.StateContactPhone)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: "📱 Введите номер телефона в формате +79990001122\n\n" +
			"Отмена: /cancel",
	})
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID

	if h.stateManager.GetState(telegramID) == state.StateNone {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Нет активных операций для отмены.",
		})
		return
	}

	h.stateManager.ClearState(telegramID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.",
	})
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от
// состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	if currentState == state.StateNone {
		return
	}

	h.logger.Info("Dialog step",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateContactPhone:
		h.handleContactPhoneStep(ctx, b, update)
	case state.StateContactEmail:
		h.handleContactEmailStep(ctx, b, update)
	case state.StateGenerateDates:
		h.handleGenerateDatesStep(ctx, b, update)
	case state.StateGenerateHours:
		h.handleGenerateHoursStep(ctx, b, update)
	case state.StateGenerateWeekdays:
		// Дни недели выбираются кнопками, текст здесь не нужен
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
	}
}
