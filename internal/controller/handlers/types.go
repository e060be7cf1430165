package handlers

import (
	"github.com/daryakhvt/salon_bot/internal/controller/state"
	"github.com/daryakhvt/salon_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService        *service.UserService
	bookingService     *service.BookingService
	scheduleService    *service.ScheduleService
	appointmentService *service.AppointmentService
	specialistService  *service.SpecialistService
	stateManager       *state.Manager
	logger             *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	bookingService *service.BookingService,
	scheduleService *service.ScheduleService,
	appointmentService *service.AppointmentService,
	specialistService *service.SpecialistService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:        userService,
		bookingService:     bookingService,
		scheduleService:    scheduleService,
		appointmentService: appointmentService,
		specialistService:  specialistService,
		stateManager:       stateManager,
		logger:             logger,
	}
}
