package service

import (
	"context"

	"github.com/daryakhvt/salon_bot/internal/model"
	"github.com/google/uuid"
)

// Интерфейсы хранилища, потребляемые сервисами. Реализация на pgx живёт
// в internal/repository; тесты подставляют in-memory фейки. Отсутствующая
// запись в Get-методах - (nil, nil), не ошибка.

// SlotStore - хранилище слотов. Book обязан быть атомарным
// compare-and-swap: флаг booked читается и выставляется одной операцией,
// два конкурентных Book на один слот не могут пройти оба.
type SlotStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Slot, error)
	ListBySpecialist(ctx context.Context, specialistID uuid.UUID) ([]*model.Slot, error)
	ListAvailable(ctx context.Context, specialistID uuid.UUID) ([]*model.Slot, error)
	CreateBatch(ctx context.Context, slots []*model.Slot) error
	// Book атомарно переводит свободный слот в занятый.
	// Возвращает ErrSlotUnavailable если слот отсутствует или уже занят.
	Book(ctx context.Context, slotID, userID uuid.UUID) error
	// Release возвращает слот в свободное состояние и очищает user_id.
	// Возвращает ErrSlotNotFound если слот отсутствует.
	Release(ctx context.Context, slotID uuid.UUID) error
	// Delete удаляет свободный слот. Возвращает ErrSlotInUse для занятого
	// и ErrSlotNotFound для отсутствующего.
	Delete(ctx context.Context, slotID uuid.UUID) error
	// DeleteBySpecialist безусловно удаляет все слоты мастера, включая
	// занятые. Используется только при каскадном удалении мастера.
	DeleteBySpecialist(ctx context.Context, specialistID uuid.UUID) (int64, error)
}

// AppointmentStore - хранилище записей
type AppointmentStore interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	// Delete возвращает ErrAppointmentNotFound если записи уже нет
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Appointment, error)
	ListBySpecialist(ctx context.Context, specialistID uuid.UUID) ([]*model.Appointment, error)
	ListAll(ctx context.Context) ([]*model.Appointment, error)
}

// SpecialistStore - хранилище мастеров
type SpecialistStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Specialist, error)
	List(ctx context.Context) ([]*model.Specialist, error)
	Create(ctx context.Context, specialist *model.Specialist) error
	Update(ctx context.Context, specialist *model.Specialist) error
	Delete(ctx context.Context, id uuid.UUID) error
}
