package repository

import (
	"context"

	"github.com/daryakhvt/salon_bot/internal/model"
	"github.com/daryakhvt/salon_bot/internal/repository/base"
	"github.com/daryakhvt/salon_bot/internal/service"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const appointmentColumns = `
	id, user_id, user_name, user_phone, user_email,
	specialist_id, specialist_name, specialist_address,
	slot_id,
	to_char(slot_date, 'YYYY-MM-DD'),
	to_char(slot_time, 'HH24:MI'),
	created_at
`

// AppointmentRepository - pgx-реализация service.AppointmentStore
type AppointmentRepository struct {
	*base.Repository
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт запись
func (r *AppointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, user_id, user_name, user_phone, user_email,
			specialist_id, specialist_name, specialist_address,
			slot_id, slot_date, slot_time
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::date, $11::time)
		RETURNING created_at
	`

	var slotID *uuid.UUID
	if appointment.SlotID != uuid.Nil {
		slotID = &appointment.SlotID
	}

	err := r.QueryRow(
		ctx, query,
		appointment.ID,
		appointment.UserID,
		appointment.UserName,
		appointment.UserPhone,
		appointment.UserEmail,
		appointment.SpecialistID,
		appointment.SpecialistName,
		appointment.SpecialistAddress,
		slotID,
		appointment.Date,
		appointment.Time,
	).Scan(&appointment.CreatedAt)

	if err != nil {
		return service.StoreFailure("create appointment", err)
	}

	return nil
}

// GetByID получает запись по ID
func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	appointment, err := scanAppointment(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, service.StoreFailure("get appointment by id", err)
	}

	return appointment, nil
}

// Delete удаляет запись
func (r *AppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return service.StoreFailure("delete appointment", err)
	}

	if affected == 0 {
		return service.ErrAppointmentNotFound
	}

	return nil
}

// ListByUser получает все записи клиента
func (r *AppointmentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE user_id = $1
		ORDER BY slot_date, slot_time
	`

	return r.listAppointments(ctx, query, userID)
}

// ListBySpecialist получает все записи к мастеру
func (r *AppointmentRepository) ListBySpecialist(ctx context.Context, specialistID uuid.UUID) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE specialist_id = $1
		ORDER BY slot_date, slot_time
	`

	return r.listAppointments(ctx, query, specialistID)
}

// ListAll получает все записи (админские отчёты)
func (r *AppointmentRepository) ListAll(ctx context.Context) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		ORDER BY slot_date, slot_time
	`

	return r.listAppointments(ctx, query)
}

func (r *AppointmentRepository) listAppointments(ctx context.Context, query string, args ...interface{}) ([]*model.Appointment, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, service.StoreFailure("list appointments", err)
	}
	defer rows.Close()

	var appointments []*model.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, service.StoreFailure("scan appointment", err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, service.StoreFailure("list appointments", err)
	}

	return appointments, nil
}

func scanAppointment(row pgx.Row) (*model.Appointment, error) {
	var (
		appointment model.Appointment
		slotID      *uuid.UUID
	)

	err := row.Scan(
		&appointment.ID,
		&appointment.UserID,
		&appointment.UserName,
		&appointment.UserPhone,
		&appointment.UserEmail,
		&appointment.SpecialistID,
		&appointment.SpecialistName,
		&appointment.SpecialistAddress,
		&slotID,
		&appointment.Date,
		&appointment.Time,
		&appointment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if slotID != nil {
		appointment.SlotID = *slotID
	}

	return &appointment, nil
}
