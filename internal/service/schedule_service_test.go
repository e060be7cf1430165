package service

import (
	"context"
	"testing"
	"time"

	"github.com/daryakhvt/salon_bot/internal/model"
	"github.com/daryakhvt/salon_bot/internal/schedule"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type scheduleFixture struct {
	slots       *memSlotStore
	specialists *memSpecialistStore
	svc         *ScheduleService

	specialist *model.Specialist
	admin      Identity
}

func newScheduleFixture(t *testing.T) *scheduleFixture {
	t.Helper()

	f := &scheduleFixture{
		slots:       newMemSlotStore(),
		specialists: newMemSpecialistStore(),
	}
	f.svc = NewScheduleService(f.slots, f.specialists, zap.NewNop())

	f.specialist = &model.Specialist{ID: uuid.New(), Name: "Анна"}
	f.specialists.put(f.specialist)

	f.admin = Identity{ID: uuid.New(), Role: model.RoleAdmin}

	return f
}

func mondayOnly() map[time.Weekday]bool {
	return map[time.Weekday]bool{time.Monday: true}
}

// 2024-06-03 - понедельник, 2024-06-04 - вторник: при маске {Пн}
// создаются ровно два слота понедельника
func TestGenerateSlotsScenario(t *testing.T) {
	f := newScheduleFixture(t)
	ctx := context.Background()

	cfg := schedule.Config{
		DateFrom:    "2024-06-03",
		DateTo:      "2024-06-04",
		TimeFrom:    "10:00",
		TimeTo:      "11:00",
		StepMinutes: 30,
		Weekdays:    mondayOnly(),
	}

	count, err := f.svc.GenerateSlots(ctx, f.admin, f.specialist.ID, cfg)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	slots, err := f.slots.ListBySpecialist(ctx, f.specialist.ID)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	keys := map[string]bool{}
	for _, slot := range slots {
		keys[slot.Key()] = true
		require.False(t, slot.Booked)
	}
	require.True(t, keys["2024-06-03T10:00"])
	require.True(t, keys["2024-06-03T10:30"])
}

// Повторная генерация с теми же параметрами не создаёт ни одного слота
func TestGenerateSlotsIdempotent(t *testing.T) {
	f := newScheduleFixture(t)
	ctx := context.Background()

	cfg := schedule.Config{
		DateFrom:    "2024-06-03",
		DateTo:      "2024-06-10",
		TimeFrom:    "10:00",
		TimeTo:      "12:00",
		StepMinutes: 30,
		Weekdays:    mondayOnly(),
	}

	first, err := f.svc.GenerateSlots(ctx, f.admin, f.specialist.ID, cfg)
	require.NoError(t, err)
	require.Equal(t, 8, first) // два понедельника по четыре слота

	second, err := f.svc.GenerateSlots(ctx, f.admin, f.specialist.ID, cfg)
	require.NoError(t, err)
	require.Zero(t, second)

	slots, err := f.slots.ListBySpecialist(ctx, f.specialist.ID)
	require.NoError(t, err)
	require.Len(t, slots, 8)
}

// Диапазон целиком внутри отпуска - пустой результат без ошибки
func TestGenerateSlotsVacationExclusion(t *testing.T) {
	f := newScheduleFixture(t)
	ctx := context.Background()

	f.specialist.Vacation = &model.VacationPeriod{From: "2024-06-01", To: "2024-06-30"}
	f.specialists.put(f.specialist)

	cfg := schedule.Config{
		DateFrom:    "2024-06-03",
		DateTo:      "2024-06-10",
		TimeFrom:    "10:00",
		TimeTo:      "12:00",
		StepMinutes: 30,
		Weekdays:    mondayOnly(),
	}

	count, err := f.svc.GenerateSlots(ctx, f.admin, f.specialist.ID, cfg)
	require.NoError(t, err)
	require.Zero(t, count)

	slots, err := f.slots.ListBySpecialist(ctx, f.specialist.ID)
	require.NoError(t, err)
	require.Empty(t, slots)
}

func TestGenerateSlotsForbidden(t *testing.T) {
	f := newScheduleFixture(t)

	customer := Identity{ID: uuid.New(), Role: model.RoleCustomer}
	_, err := f.svc.GenerateSlots(context.Background(), customer, f.specialist.ID, schedule.Config{})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestGenerateSlotsInvalidConfig(t *testing.T) {
	f := newScheduleFixture(t)

	cfg := schedule.Config{
		DateFrom:    "2024-06-10",
		DateTo:      "2024-06-03", // диапазон задом наперёд
		TimeFrom:    "10:00",
		TimeTo:      "11:00",
		StepMinutes: 30,
		Weekdays:    mondayOnly(),
	}

	_, err := f.svc.GenerateSlots(context.Background(), f.admin, f.specialist.ID, cfg)
	require.ErrorIs(t, err, schedule.ErrInvalidConfig)
}

func TestGenerateSlotsUnknownSpecialist(t *testing.T) {
	f := newScheduleFixture(t)

	_, err := f.svc.GenerateSlots(context.Background(), f.admin, uuid.New(), schedule.Config{
		DateFrom:    "2024-06-03",
		DateTo:      "2024-06-04",
		TimeFrom:    "10:00",
		TimeTo:      "11:00",
		StepMinutes: 30,
		Weekdays:    mondayOnly(),
	})
	require.ErrorIs(t, err, ErrSpecialistNotFound)
}

func TestDeleteBookedSlotRejected(t *testing.T) {
	f := newScheduleFixture(t)
	ctx := context.Background()

	slot := &model.Slot{
		ID:           uuid.New(),
		SpecialistID: f.specialist.ID,
		Date:         "2024-06-03",
		Time:         "10:00",
	}
	f.slots.put(slot)
	require.NoError(t, f.slots.Book(ctx, slot.ID, uuid.New()))

	err := f.svc.DeleteSlot(ctx, f.admin, slot.ID)
	require.ErrorIs(t, err, ErrSlotInUse)
}

func TestDeleteSlotsSkipsBookedAndMissing(t *testing.T) {
	f := newScheduleFixture(t)
	ctx := context.Background()

	free := &model.Slot{ID: uuid.New(), SpecialistID: f.specialist.ID, Date: "2024-06-03", Time: "10:00"}
	booked := &model.Slot{ID: uuid.New(), SpecialistID: f.specialist.ID, Date: "2024-06-03", Time: "10:30"}
	f.slots.put(free)
	f.slots.put(booked)
	require.NoError(t, f.slots.Book(ctx, booked.ID, uuid.New()))

	deleted, err := f.svc.DeleteSlots(ctx, f.admin, []uuid.UUID{free.ID, booked.ID, uuid.New()})
	require.NoError(t, err)
	require.Equal(t, 1, deleted)

	remaining, err := f.slots.ListBySpecialist(ctx, f.specialist.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, booked.ID, remaining[0].ID)
}

func TestListAvailableFiltersVacationAndPast(t *testing.T) {
	f := newScheduleFixture(t)
	ctx := context.Background()

	// Фиксируем "сегодня"
	f.svc.now = func() time.Time {
		return time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	}

	f.specialist.Vacation = &model.VacationPeriod{From: "2024-06-10", To: "2024-06-12"}
	f.specialists.put(f.specialist)

	past := &model.Slot{ID: uuid.New(), SpecialistID: f.specialist.ID, Date: "2024-06-01", Time: "10:00"}
	inVacation := &model.Slot{ID: uuid.New(), SpecialistID: f.specialist.ID, Date: "2024-06-11", Time: "10:00"}
	okLater := &model.Slot{ID: uuid.New(), SpecialistID: f.specialist.ID, Date: "2024-06-20", Time: "10:00"}
	okSooner := &model.Slot{ID: uuid.New(), SpecialistID: f.specialist.ID, Date: "2024-06-06", Time: "09:00"}
	bookedSlot := &model.Slot{ID: uuid.New(), SpecialistID: f.specialist.ID, Date: "2024-06-07", Time: "09:00"}
	for _, slot := range []*model.Slot{past, inVacation, okLater, okSooner, bookedSlot} {
		f.slots.put(slot)
	}
	require.NoError(t, f.slots.Book(ctx, bookedSlot.ID, uuid.New()))

	available, err := f.svc.ListAvailable(ctx, f.specialist.ID)
	require.NoError(t, err)
	require.Len(t, available, 2)

	// Отсортированы по дате и времени, ближайший первым
	require.Equal(t, okSooner.ID, available[0].ID)
	require.Equal(t, okLater.ID, available[1].ID)
}
