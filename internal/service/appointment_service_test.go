package service

import (
	"context"
	"testing"
	"time"

	"github.com/daryakhvt/salon_bot/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFeedPartitionAndOrder(t *testing.T) {
	store := newMemAppointmentStore()
	svc := NewAppointmentService(store, zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	}

	userID := uuid.New()
	mk := func(date, tm string) *model.Appointment {
		a := &model.Appointment{
			ID:     uuid.New(),
			UserID: userID,
			Date:   date,
			Time:   tm,
		}
		require.NoError(t, store.Create(context.Background(), a))
		return a
	}

	pastOld := mk("2024-05-01", "10:00")
	pastRecent := mk("2024-06-01", "10:00")
	todayEarlier := mk("2024-06-05", "09:00")
	todayLater := mk("2024-06-05", "15:00")
	future := mk("2024-06-20", "10:00")

	feed, err := svc.ForUser(context.Background(), userID)
	require.NoError(t, err)

	// Сегодняшняя запись на 09:00 уже прошла (сейчас 12:00), на 15:00 - ещё нет
	require.Len(t, feed.Upcoming, 2)
	require.Len(t, feed.Past, 3)

	// Будущие - по возрастанию, ближайшая первой
	require.Equal(t, todayLater.ID, feed.Upcoming[0].ID)
	require.Equal(t, future.ID, feed.Upcoming[1].ID)

	// Прошедшие - по убыванию, самая свежая первой
	require.Equal(t, todayEarlier.ID, feed.Past[0].ID)
	require.Equal(t, pastRecent.ID, feed.Past[1].ID)
	require.Equal(t, pastOld.ID, feed.Past[2].ID)
}

func TestFeedSkipsMalformedDates(t *testing.T) {
	store := newMemAppointmentStore()
	svc := NewAppointmentService(store, zap.NewNop())

	userID := uuid.New()
	good := &model.Appointment{ID: uuid.New(), UserID: userID, Date: "2099-01-01", Time: "10:00"}
	broken := &model.Appointment{ID: uuid.New(), UserID: userID, Date: "когда-нибудь", Time: "10:00"}
	require.NoError(t, store.Create(context.Background(), good))
	require.NoError(t, store.Create(context.Background(), broken))

	feed, err := svc.ForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, feed.Upcoming, 1)
	require.Empty(t, feed.Past)
	require.Equal(t, good.ID, feed.Upcoming[0].ID)
}

func TestFeedForSpecialist(t *testing.T) {
	store := newMemAppointmentStore()
	svc := NewAppointmentService(store, zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	}

	specialistID := uuid.New()
	mine := &model.Appointment{ID: uuid.New(), UserID: uuid.New(), SpecialistID: specialistID, Date: "2024-06-10", Time: "10:00"}
	other := &model.Appointment{ID: uuid.New(), UserID: uuid.New(), SpecialistID: uuid.New(), Date: "2024-06-10", Time: "10:00"}
	require.NoError(t, store.Create(context.Background(), mine))
	require.NoError(t, store.Create(context.Background(), other))

	feed, err := svc.ForSpecialist(context.Background(), specialistID)
	require.NoError(t, err)
	require.Len(t, feed.Upcoming, 1)
	require.Equal(t, mine.ID, feed.Upcoming[0].ID)
}

func TestAllAdminOnly(t *testing.T) {
	store := newMemAppointmentStore()
	svc := NewAppointmentService(store, zap.NewNop())

	require.NoError(t, store.Create(context.Background(), &model.Appointment{ID: uuid.New(), UserID: uuid.New(), Date: "2024-06-10", Time: "10:00"}))

	_, err := svc.All(context.Background(), Identity{ID: uuid.New(), Role: model.RoleCustomer})
	require.ErrorIs(t, err, ErrForbidden)

	all, err := svc.All(context.Background(), Identity{ID: uuid.New(), Role: model.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, all, 1)
}
