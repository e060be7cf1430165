package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/daryakhvt/salon_bot/internal/model"
	"github.com/daryakhvt/salon_bot/internal/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScheduleService управляет слотами: генерация по шаблону рабочих часов,
// выдача свободных слотов клиентам, удаление.
type ScheduleService struct {
	slots       SlotStore
	specialists SpecialistStore
	logger      *zap.Logger
	now         func() time.Time
}

func NewScheduleService(slots SlotStore, specialists SpecialistStore, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		slots:       slots,
		specialists: specialists,
		logger:      logger,
		now:         time.Now,
	}
}

// GenerateSlots разворачивает шаблон рабочих часов в слоты мастера.
// Повторный запуск с теми же параметрами не создаёт дубликатов: уже
// существующие пары (дата, время) отбрасываются. Пустой результат -
// штатный no-op, возвращается 0 без ошибки.
func (s *ScheduleService) GenerateSlots(ctx context.Context, actor Identity, specialistID uuid.UUID, cfg schedule.Config) (int, error) {
	if actor.Role != model.RoleAdmin {
		return 0, fmt.Errorf("generate slots: %w", ErrForbidden)
	}

	specialist, err := s.specialists.GetByID(ctx, specialistID)
	if err != nil {
		return 0, fmt.Errorf("get specialist: %w", err)
	}

	if specialist == nil {
		return 0, fmt.Errorf("generate slots: %w", ErrSpecialistNotFound)
	}

	existing, err := s.slots.ListBySpecialist(ctx, specialistID)
	if err != nil {
		return 0, fmt.Errorf("list existing slots: %w", err)
	}

	keys := make(map[string]struct{}, len(existing))
	for _, slot := range existing {
		keys[slot.Key()] = struct{}{}
	}

	candidates, err := schedule.Generate(cfg, keys, specialist.Vacation)
	if err != nil {
		return 0, fmt.Errorf("generate slots: %w", err)
	}

	if len(candidates) == 0 {
		s.logger.Info("No new slots under these conditions",
			zap.String("specialist_id", specialistID.String()),
			zap.String("range", cfg.DateFrom+".."+cfg.DateTo),
		)
		return 0, nil
	}

	batch := make([]*model.Slot, 0, len(candidates))
	for _, candidate := range candidates {
		batch = append(batch, &model.Slot{
			ID:           uuid.New(),
			SpecialistID: specialistID,
			Date:         candidate.Date,
			Time:         candidate.Time,
		})
	}

	if err := s.slots.CreateBatch(ctx, batch); err != nil {
		return 0, fmt.Errorf("create slots: %w", err)
	}

	s.logger.Info("Slots generated",
		zap.String("specialist_id", specialistID.String()),
		zap.String("range", cfg.DateFrom+".."+cfg.DateTo),
		zap.Int("step_minutes", cfg.StepMinutes),
		zap.Int("count", len(batch)),
	)

	return len(batch), nil
}

// ListAvailable возвращает свободные будущие слоты мастера, отфильтрованные
// от дней отпуска. Фильтр по отпуску применяется и к уже существующим
// слотам: слот мог быть создан до объявления отпуска.
func (s *ScheduleService) ListAvailable(ctx context.Context, specialistID uuid.UUID) ([]*model.Slot, error) {
	specialist, err := s.specialists.GetByID(ctx, specialistID)
	if err != nil {
		return nil, fmt.Errorf("get specialist: %w", err)
	}

	if specialist == nil {
		return nil, fmt.Errorf("list available slots: %w", ErrSpecialistNotFound)
	}

	slots, err := s.slots.ListAvailable(ctx, specialistID)
	if err != nil {
		return nil, fmt.Errorf("list available slots: %w", err)
	}

	today := s.now().Format(model.SlotDateLayout)

	filtered := make([]*model.Slot, 0, len(slots))
	for _, slot := range slots {
		if slot.Date < today {
			continue
		}
		if schedule.DayInVacation(specialist.Vacation, slot.Date) {
			continue
		}
		filtered = append(filtered, slot)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Key() < filtered[j].Key()
	})

	return filtered, nil
}

// ListBySpecialist возвращает все слоты мастера (для админских экранов)
func (s *ScheduleService) ListBySpecialist(ctx context.Context, specialistID uuid.UUID) ([]*model.Slot, error) {
	return s.slots.ListBySpecialist(ctx, specialistID)
}

// DeleteSlot удаляет свободный слот. Занятый слот удалить нельзя -
// сначала запись отменяется через BookingService.
func (s *ScheduleService) DeleteSlot(ctx context.Context, actor Identity, slotID uuid.UUID) error {
	if actor.Role != model.RoleAdmin {
		return fmt.Errorf("delete slot: %w", ErrForbidden)
	}

	if err := s.slots.Delete(ctx, slotID); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	s.logger.Info("Slot deleted", zap.String("slot_id", slotID.String()))
	return nil
}

// DeleteSlots удаляет слоты пакетом, последовательно. Занятые и уже
// отсутствующие слоты пропускаются, возвращается число удалённых.
func (s *ScheduleService) DeleteSlots(ctx context.Context, actor Identity, slotIDs []uuid.UUID) (int, error) {
	if actor.Role != model.RoleAdmin {
		return 0, fmt.Errorf("delete slots: %w", ErrForbidden)
	}

	deleted := 0
	for _, id := range slotIDs {
		err := s.slots.Delete(ctx, id)
		switch {
		case err == nil:
			deleted++
		case errors.Is(err, ErrSlotInUse):
			s.logger.Warn("Skipping booked slot in bulk delete", zap.String("slot_id", id.String()))
		case errors.Is(err, ErrSlotNotFound):
			// Уже удалён - пропускаем
		default:
			return deleted, fmt.Errorf("delete slot %s: %w", id, err)
		}
	}

	s.logger.Info("Slots bulk deleted",
		zap.Int("requested", len(slotIDs)),
		zap.Int("deleted", deleted),
	)

	return deleted, nil
}
