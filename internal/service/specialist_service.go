package service

import (
	"context"
	"fmt"
	"time"

	"github.com/daryakhvt/salon_bot/internal/model"
	"github.com/daryakhvt/salon_bot/internal/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SpecialistService управляет мастерами: CRUD, отпуска, каскадное удаление
type SpecialistService struct {
	specialists  SpecialistStore
	slots        SlotStore
	appointments AppointmentStore
	logger       *zap.Logger
	now          func() time.Time
}

func NewSpecialistService(
	specialists SpecialistStore,
	slots SlotStore,
	appointments AppointmentStore,
	logger *zap.Logger,
) *SpecialistService {
	return &SpecialistService{
		specialists:  specialists,
		slots:        slots,
		appointments: appointments,
		logger:       logger,
		now:          time.Now,
	}
}

// List возвращает всех мастеров
func (s *SpecialistService) List(ctx context.Context) ([]*model.Specialist, error) {
	return s.specialists.List(ctx)
}

// GetByID возвращает мастера по ID
func (s *SpecialistService) GetByID(ctx context.Context, id uuid.UUID) (*model.Specialist, error) {
	return s.specialists.GetByID(ctx, id)
}

// Create создаёт мастера
func (s *SpecialistService) Create(ctx context.Context, actor Identity, name, address string) (*model.Specialist, error) {
	if actor.Role != model.RoleAdmin {
		return nil, fmt.Errorf("create specialist: %w", ErrForbidden)
	}

	specialist := &model.Specialist{
		ID:      uuid.New(),
		Name:    name,
		Address: address,
	}

	if err := s.specialists.Create(ctx, specialist); err != nil {
		return nil, fmt.Errorf("create specialist: %w", err)
	}

	s.logger.Info("Specialist created",
		zap.String("specialist_id", specialist.ID.String()),
		zap.String("name", name),
	)

	return specialist, nil
}

// UpdateInfo обновляет имя и адрес мастера. Снимки в существующих записях
// не меняются - история остаётся достоверной.
func (s *SpecialistService) UpdateInfo(ctx context.Context, actor Identity, id uuid.UUID, name, address string) error {
	if actor.Role != model.RoleAdmin {
		return fmt.Errorf("update specialist: %w", ErrForbidden)
	}

	specialist, err := s.specialists.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get specialist: %w", err)
	}

	if specialist == nil {
		return fmt.Errorf("update specialist: %w", ErrSpecialistNotFound)
	}

	specialist.Name = name
	specialist.Address = address

	if err := s.specialists.Update(ctx, specialist); err != nil {
		return fmt.Errorf("update specialist: %w", err)
	}

	s.logger.Info("Specialist updated", zap.String("specialist_id", id.String()))
	return nil
}

// SetVacation задаёт период отпуска мастера (границы включительно)
func (s *SpecialistService) SetVacation(ctx context.Context, actor Identity, id uuid.UUID, from, to string) error {
	if actor.Role != model.RoleAdmin {
		return fmt.Errorf("set vacation: %w", ErrForbidden)
	}

	fromDay, err := time.ParseInLocation(model.SlotDateLayout, from, time.UTC)
	if err != nil {
		return fmt.Errorf("%w: vacation from %q", schedule.ErrInvalidConfig, from)
	}

	toDay, err := time.ParseInLocation(model.SlotDateLayout, to, time.UTC)
	if err != nil {
		return fmt.Errorf("%w: vacation to %q", schedule.ErrInvalidConfig, to)
	}

	if toDay.Before(fromDay) {
		return fmt.Errorf("%w: vacation range %s..%s", schedule.ErrInvalidConfig, from, to)
	}

	specialist, err := s.specialists.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get specialist: %w", err)
	}

	if specialist == nil {
		return fmt.Errorf("set vacation: %w", ErrSpecialistNotFound)
	}

	specialist.Vacation = &model.VacationPeriod{From: from, To: to}

	if err := s.specialists.Update(ctx, specialist); err != nil {
		return fmt.Errorf("set vacation: %w", err)
	}

	s.logger.Info("Vacation set",
		zap.String("specialist_id", id.String()),
		zap.String("from", from),
		zap.String("to", to),
	)

	return nil
}

// ClearVacation снимает отпуск мастера
func (s *SpecialistService) ClearVacation(ctx context.Context, actor Identity, id uuid.UUID) error {
	if actor.Role != model.RoleAdmin {
		return fmt.Errorf("clear vacation: %w", ErrForbidden)
	}

	specialist, err := s.specialists.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get specialist: %w", err)
	}

	if specialist == nil {
		return fmt.Errorf("clear vacation: %w", ErrSpecialistNotFound)
	}

	specialist.Vacation = nil

	if err := s.specialists.Update(ctx, specialist); err != nil {
		return fmt.Errorf("clear vacation: %w", err)
	}

	s.logger.Info("Vacation cleared", zap.String("specialist_id", id.String()))
	return nil
}

// Delete удаляет мастера каскадом: все его слоты (включая занятые)
// и будущие записи к нему. Прошедшие записи сохраняются как история -
// снимок контактов в них самодостаточен.
func (s *SpecialistService) Delete(ctx context.Context, actor Identity, id uuid.UUID) error {
	if actor.Role != model.RoleAdmin {
		return fmt.Errorf("delete specialist: %w", ErrForbidden)
	}

	specialist, err := s.specialists.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get specialist: %w", err)
	}

	if specialist == nil {
		return fmt.Errorf("delete specialist: %w", ErrSpecialistNotFound)
	}

	slotsDeleted, err := s.slots.DeleteBySpecialist(ctx, id)
	if err != nil {
		return fmt.Errorf("delete specialist slots: %w", err)
	}

	appointments, err := s.appointments.ListBySpecialist(ctx, id)
	if err != nil {
		return fmt.Errorf("list specialist appointments: %w", err)
	}

	now := s.now()
	canceled := 0
	for _, appointment := range appointments {
		startsAt, err := appointment.StartsAt(now.Location())
		if err != nil || startsAt.Before(now) {
			continue
		}
		if err := s.appointments.Delete(ctx, appointment.ID); err != nil {
			return fmt.Errorf("cancel appointment %s: %w", appointment.ID, err)
		}
		canceled++
	}

	if err := s.specialists.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete specialist: %w", err)
	}

	s.logger.Info("Specialist deleted",
		zap.String("specialist_id", id.String()),
		zap.Int64("slots_deleted", slotsDeleted),
		zap.Int("upcoming_appointments_canceled", canceled),
	)

	return nil
}
