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

type specialistFixture struct {
	specialists  *memSpecialistStore
	slots        *memSlotStore
	appointments *memAppointmentStore
	svc          *SpecialistService

	admin Identity
}

func newSpecialistFixture(t *testing.T) *specialistFixture {
	t.Helper()

	f := &specialistFixture{
		specialists:  newMemSpecialistStore(),
		slots:        newMemSlotStore(),
		appointments: newMemAppointmentStore(),
	}
	f.svc = NewSpecialistService(f.specialists, f.slots, f.appointments, zap.NewNop())
	f.admin = Identity{ID: uuid.New(), Role: model.RoleAdmin}

	return f
}

func TestCreateSpecialistAdminOnly(t *testing.T) {
	f := newSpecialistFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, Identity{ID: uuid.New(), Role: model.RoleCustomer}, "Анна", "Невский 1")
	require.ErrorIs(t, err, ErrForbidden)

	specialist, err := f.svc.Create(ctx, f.admin, "Анна", "Невский 1")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, specialist.ID)
	require.Equal(t, "Анна", specialist.Name)

	stored, err := f.specialists.GetByID(ctx, specialist.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestSetVacationValidatesRange(t *testing.T) {
	f := newSpecialistFixture(t)
	ctx := context.Background()

	specialist, err := f.svc.Create(ctx, f.admin, "Анна", "")
	require.NoError(t, err)

	tests := []struct {
		name     string
		from, to string
	}{
		{"bad from", "01.06.2024", "2024-06-10"},
		{"bad to", "2024-06-01", ""},
		{"reversed", "2024-06-10", "2024-06-01"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := f.svc.SetVacation(ctx, f.admin, specialist.ID, tc.from, tc.to)
			require.ErrorIs(t, err, schedule.ErrInvalidConfig)
		})
	}

	// Период из одного дня допустим
	require.NoError(t, f.svc.SetVacation(ctx, f.admin, specialist.ID, "2024-06-10", "2024-06-10"))

	stored, err := f.specialists.GetByID(ctx, specialist.ID)
	require.NoError(t, err)
	require.Equal(t, &model.VacationPeriod{From: "2024-06-10", To: "2024-06-10"}, stored.Vacation)
}

func TestClearVacation(t *testing.T) {
	f := newSpecialistFixture(t)
	ctx := context.Background()

	specialist, err := f.svc.Create(ctx, f.admin, "Анна", "")
	require.NoError(t, err)
	require.NoError(t, f.svc.SetVacation(ctx, f.admin, specialist.ID, "2024-06-01", "2024-06-10"))
	require.NoError(t, f.svc.ClearVacation(ctx, f.admin, specialist.ID))

	stored, err := f.specialists.GetByID(ctx, specialist.ID)
	require.NoError(t, err)
	require.Nil(t, stored.Vacation)
}

func TestUpdateInfoKeepsAppointmentSnapshots(t *testing.T) {
	f := newSpecialistFixture(t)
	ctx := context.Background()

	specialist, err := f.svc.Create(ctx, f.admin, "Анна", "Невский 1")
	require.NoError(t, err)

	appointment := &model.Appointment{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		SpecialistID:   specialist.ID,
		SpecialistName: "Анна",
		Date:           "2024-06-10",
		Time:           "10:00",
	}
	require.NoError(t, f.appointments.Create(ctx, appointment))

	require.NoError(t, f.svc.UpdateInfo(ctx, f.admin, specialist.ID, "Анна Петрова", "Лиговский 2"))

	stored, err := f.appointments.GetByID(ctx, appointment.ID)
	require.NoError(t, err)
	require.Equal(t, "Анна", stored.SpecialistName)
}

// Каскад удаления: слоты исчезают целиком, будущие записи отменяются,
// прошедшие остаются историей
func TestDeleteSpecialistCascade(t *testing.T) {
	f := newSpecialistFixture(t)
	ctx := context.Background()

	f.svc.now = func() time.Time {
		return time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	}

	specialist, err := f.svc.Create(ctx, f.admin, "Анна", "")
	require.NoError(t, err)

	f.slots.put(&model.Slot{ID: uuid.New(), SpecialistID: specialist.ID, Date: "2024-06-10", Time: "10:00"})
	f.slots.put(&model.Slot{ID: uuid.New(), SpecialistID: specialist.ID, Date: "2024-06-10", Time: "10:30", Booked: true})

	past := &model.Appointment{ID: uuid.New(), UserID: uuid.New(), SpecialistID: specialist.ID, Date: "2024-06-01", Time: "10:00"}
	upcoming := &model.Appointment{ID: uuid.New(), UserID: uuid.New(), SpecialistID: specialist.ID, Date: "2024-06-10", Time: "10:30"}
	require.NoError(t, f.appointments.Create(ctx, past))
	require.NoError(t, f.appointments.Create(ctx, upcoming))

	require.NoError(t, f.svc.Delete(ctx, f.admin, specialist.ID))

	gone, err := f.specialists.GetByID(ctx, specialist.ID)
	require.NoError(t, err)
	require.Nil(t, gone)

	slots, err := f.slots.ListBySpecialist(ctx, specialist.ID)
	require.NoError(t, err)
	require.Empty(t, slots)

	stored, err := f.appointments.GetByID(ctx, upcoming.ID)
	require.NoError(t, err)
	require.Nil(t, stored)

	kept, err := f.appointments.GetByID(ctx, past.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
}

func TestDeleteSpecialistMissing(t *testing.T) {
	f := newSpecialistFixture(t)

	err := f.svc.Delete(context.Background(), f.admin, uuid.New())
	require.ErrorIs(t, err, ErrSpecialistNotFound)
}
