package service

import (
	"errors"
	"fmt"
)

// Типизированные виды ошибок ядра. Обработчики сопоставляют их
// с пользовательскими сообщениями через errors.Is.
var (
	// ErrForbidden - у вызывающего нет нужной роли
	ErrForbidden = errors.New("forbidden")
	// ErrSlotUnavailable - слот отсутствует или уже занят
	ErrSlotUnavailable = errors.New("slot unavailable")
	// ErrSlotInUse - попытка удалить занятый слот
	ErrSlotInUse = errors.New("slot in use")
	// ErrSlotNotFound - слот не найден
	ErrSlotNotFound = errors.New("slot not found")
	// ErrAppointmentNotFound - запись не найдена или уже отменена
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrSpecialistNotFound - мастер не найден
	ErrSpecialistNotFound = errors.New("specialist not found")
	// ErrStoreUnavailable - временный сбой хранилища, повтор безопасен
	ErrStoreUnavailable = errors.New("store unavailable")
)

// StoreFailure оборачивает сбой хранилища как ErrStoreUnavailable,
// сохраняя исходную причину в цепочке ошибок.
func StoreFailure(op string, cause error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(ErrStoreUnavailable, cause))
}
