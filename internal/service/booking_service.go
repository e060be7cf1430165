package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/daryakhvt/salon_bot/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService реализует переходы Free -> Booked -> Free: единственная
// точка, которой позволено менять флаг booked и создавать/удалять записи.
type BookingService struct {
	slots        SlotStore
	appointments AppointmentStore
	specialists  SpecialistStore
	logger       *zap.Logger
}

func NewBookingService(
	slots SlotStore,
	appointments AppointmentStore,
	specialists SpecialistStore,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		slots:        slots,
		appointments: appointments,
		specialists:  specialists,
		logger:       logger,
	}
}

// Book бронирует слот для клиента и создаёт запись с денормализованным
// снимком контактов. Слот переводится в занятое состояние атомарным
// compare-and-swap, поэтому из двух конкурентных Book проходит ровно один.
func (s *BookingService) Book(ctx context.Context, actor Identity, slotID uuid.UUID) (*model.Appointment, error) {
	// Проверка роли - до любого обращения к хранилищу
	if actor.Role != model.RoleCustomer {
		return nil, fmt.Errorf("book slot: %w", ErrForbidden)
	}

	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}

	if slot == nil || slot.Booked {
		return nil, fmt.Errorf("book slot: %w", ErrSlotUnavailable)
	}

	specialist, err := s.specialists.GetByID(ctx, slot.SpecialistID)
	if err != nil {
		return nil, fmt.Errorf("get specialist: %w", err)
	}

	// Мастер удалён - его слоты каскадно удаляются вместе с ним,
	// так что для клиента слот просто больше не существует
	if specialist == nil {
		return nil, fmt.Errorf("book slot: %w", ErrSlotUnavailable)
	}

	// Атомарный переход Free -> Booked; повторная отправка той же заявки
	// проигрывает CAS и получает ErrSlotUnavailable
	if err := s.slots.Book(ctx, slotID, actor.ID); err != nil {
		return nil, fmt.Errorf("book slot: %w", err)
	}

	appointment := &model.Appointment{
		ID:                uuid.New(),
		UserID:            actor.ID,
		UserName:          actor.Name,
		UserPhone:         actor.Phone,
		UserEmail:         actor.Email,
		SpecialistID:      specialist.ID,
		SpecialistName:    specialist.Name,
		SpecialistAddress: specialist.Address,
		SlotID:            slot.ID,
		Date:              slot.Date,
		Time:              slot.Time,
	}

	if err := s.appointments.Create(ctx, appointment); err != nil {
		// Компенсация: слот не должен остаться занятым без записи
		if relErr := s.slots.Release(ctx, slotID); relErr != nil {
			s.logger.Error("Failed to release slot after appointment create failure",
				zap.String("slot_id", slotID.String()),
				zap.Error(relErr),
			)
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.logger.Info("Slot booked",
		zap.String("appointment_id", appointment.ID.String()),
		zap.String("slot_id", slotID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.String("specialist_id", specialist.ID.String()),
		zap.String("date", slot.Date),
		zap.String("time", slot.Time),
	)

	return appointment, nil
}

// Cancel удаляет запись и освобождает связанный слот. Порядок фиксирован:
// сначала удаляется запись, затем освобождается слот - обрыв между шагами
// оставляет запись удалённой (повторная отмена безопасна), а не слот
// навсегда занятым. Отсутствие слота не блокирует отмену.
func (s *BookingService) Cancel(ctx context.Context, actor Identity, appointmentID uuid.UUID) error {
	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return fmt.Errorf("get appointment: %w", err)
	}

	if appointment == nil {
		return fmt.Errorf("cancel appointment: %w", ErrAppointmentNotFound)
	}

	// Отменить может сам клиент, мастер или администратор
	if actor.Role == model.RoleCustomer && appointment.UserID != actor.ID {
		return fmt.Errorf("cancel appointment: %w", ErrForbidden)
	}

	if err := s.appointments.Delete(ctx, appointmentID); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}

	if appointment.SlotID != uuid.Nil {
		err := s.slots.Release(ctx, appointment.SlotID)
		switch {
		case err == nil:
		case errors.Is(err, ErrSlotNotFound):
			// Слот уже удалён - запись всё равно отменена
			s.logger.Debug("Slot gone before release",
				zap.String("slot_id", appointment.SlotID.String()),
			)
		default:
			return fmt.Errorf("release slot: %w", err)
		}
	}

	s.logger.Info("Appointment canceled",
		zap.String("appointment_id", appointmentID.String()),
		zap.String("slot_id", appointment.SlotID.String()),
		zap.String("canceled_by", actor.Role),
	)

	return nil
}
