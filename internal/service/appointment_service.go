package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/daryakhvt/salon_bot/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AppointmentFeed - записи, разделённые на будущие и прошедшие.
// Будущие отсортированы по возрастанию (ближайшая первой),
// прошедшие - по убыванию (самая свежая первой).
type AppointmentFeed struct {
	Upcoming []*model.Appointment
	Past     []*model.Appointment
}

// AppointmentService отвечает за чтение записей
type AppointmentService struct {
	appointments AppointmentStore
	logger       *zap.Logger
	now          func() time.Time
}

func NewAppointmentService(appointments AppointmentStore, logger *zap.Logger) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		logger:       logger,
		now:          time.Now,
	}
}

// ForUser возвращает записи клиента
func (s *AppointmentService) ForUser(ctx context.Context, userID uuid.UUID) (*AppointmentFeed, error) {
	appointments, err := s.appointments.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list appointments by user: %w", err)
	}
	return s.partition(appointments), nil
}

// ForSpecialist возвращает записи к мастеру
func (s *AppointmentService) ForSpecialist(ctx context.Context, specialistID uuid.UUID) (*AppointmentFeed, error) {
	appointments, err := s.appointments.ListBySpecialist(ctx, specialistID)
	if err != nil {
		return nil, fmt.Errorf("list appointments by specialist: %w", err)
	}
	return s.partition(appointments), nil
}

// GetByID возвращает запись по ID
func (s *AppointmentService) GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

// All возвращает полный список записей (админские отчёты)
func (s *AppointmentService) All(ctx context.Context, actor Identity) ([]*model.Appointment, error) {
	if actor.Role != model.RoleAdmin {
		return nil, fmt.Errorf("list all appointments: %w", ErrForbidden)
	}
	return s.appointments.ListAll(ctx)
}

// partition делит записи на будущие и прошедшие по сравнению
// (дата + время) с текущим моментом
func (s *AppointmentService) partition(appointments []*model.Appointment) *AppointmentFeed {
	now := s.now()
	loc := now.Location()

	feed := &AppointmentFeed{}
	starts := make(map[uuid.UUID]time.Time, len(appointments))

	for _, appointment := range appointments {
		startsAt, err := appointment.StartsAt(loc)
		if err != nil {
			s.logger.Warn("Appointment with malformed date/time skipped",
				zap.String("appointment_id", appointment.ID.String()),
				zap.String("date", appointment.Date),
				zap.String("time", appointment.Time),
			)
			continue
		}

		starts[appointment.ID] = startsAt
		if startsAt.Before(now) {
			feed.Past = append(feed.Past, appointment)
		} else {
			feed.Upcoming = append(feed.Upcoming, appointment)
		}
	}

	sort.Slice(feed.Upcoming, func(i, j int) bool {
		return starts[feed.Upcoming[i].ID].Before(starts[feed.Upcoming[j].ID])
	})
	sort.Slice(feed.Past, func(i, j int) bool {
		return starts[feed.Past[j].ID].Before(starts[feed.Past[i].ID])
	})

	return feed
}
