package common

import (
	"errors"

	"github.com/daryakhvt/salon_bot/internal/schedule"
	"github.com/daryakhvt/salon_bot/internal/service"
)

// Локальные ошибки обработчиков
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "❌ Пользователь не найден. Используйте /start"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, service.ErrForbidden):
		return "❌ Недостаточно прав для этого действия"
	case errors.Is(err, service.ErrSlotUnavailable):
		return "❌ Это время уже занято. Выберите другое."
	case errors.Is(err, service.ErrSlotInUse):
		return "❌ На этот слот есть запись, сначала отмените её"
	case errors.Is(err, service.ErrSlotNotFound):
		return "❌ Слот не найден"
	case errors.Is(err, service.ErrAppointmentNotFound):
		return "❌ Запись не найдена или уже отменена"
	case errors.Is(err, service.ErrSpecialistNotFound):
		return "❌ Мастер не найден"
	case errors.Is(err, schedule.ErrInvalidConfig):
		return "❌ Некорректные параметры расписания"
	case errors.Is(err, service.ErrStoreUnavailable):
		return "❌ Сервис временно недоступен, попробуйте ещё раз"
	default:
		return "❌ Произошла ошибка"
	}
}
