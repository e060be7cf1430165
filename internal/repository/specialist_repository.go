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

const specialistColumns = `
	id, name, address,
	to_char(vacation_from, 'YYYY-MM-DD'),
	to_char(vacation_to, 'YYYY-MM-DD'),
	created_at
`

// SpecialistRepository - pgx-реализация service.SpecialistStore
type SpecialistRepository struct {
	*base.Repository
}

func NewSpecialistRepository(pool *pgxpool.Pool) *SpecialistRepository {
	return &SpecialistRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт мастера
func (r *SpecialistRepository) Create(ctx context.Context, specialist *model.Specialist) error {
	query := `
		INSERT INTO specialists (id, name, address, vacation_from, vacation_to)
		VALUES ($1, $2, $3, $4::date, $5::date)
		RETURNING created_at
	`

	from, to := vacationBounds(specialist.Vacation)

	err := r.QueryRow(ctx, query, specialist.ID, specialist.Name, specialist.Address, from, to).
		Scan(&specialist.CreatedAt)
	if err != nil {
		return service.StoreFailure("create specialist", err)
	}

	return nil
}

// GetByID получает мастера по ID
func (r *SpecialistRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Specialist, error) {
	query := `SELECT ` + specialistColumns + ` FROM specialists WHERE id = $1`

	specialist, err := scanSpecialist(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, service.StoreFailure("get specialist by id", err)
	}

	return specialist, nil
}

// List получает всех мастеров
func (r *SpecialistRepository) List(ctx context.Context) ([]*model.Specialist, error) {
	query := `SELECT ` + specialistColumns + ` FROM specialists ORDER BY name`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, service.StoreFailure("list specialists", err)
	}
	defer rows.Close()

	var specialists []*model.Specialist
	for rows.Next() {
		specialist, err := scanSpecialist(rows)
		if err != nil {
			return nil, service.StoreFailure("scan specialist", err)
		}
		specialists = append(specialists, specialist)
	}

	if err := rows.Err(); err != nil {
		return nil, service.StoreFailure("list specialists", err)
	}

	return specialists, nil
}

// Update обновляет мастера, включая период отпуска
func (r *SpecialistRepository) Update(ctx context.Context, specialist *model.Specialist) error {
	query := `
		UPDATE specialists
		SET name = $1, address = $2, vacation_from = $3::date, vacation_to = $4::date
		WHERE id = $5
	`

	from, to := vacationBounds(specialist.Vacation)

	affected, err := r.ExecAffected(ctx, query, specialist.Name, specialist.Address, from, to, specialist.ID)
	if err != nil {
		return service.StoreFailure("update specialist", err)
	}

	if affected == 0 {
		return service.ErrSpecialistNotFound
	}

	return nil
}

// Delete удаляет мастера. Каскад по слотам и записям выполняет сервисный
// слой - здесь удаляется только сама строка.
func (r *SpecialistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM specialists WHERE id = $1`, id)
	if err != nil {
		return service.StoreFailure("delete specialist", err)
	}

	if affected == 0 {
		return service.ErrSpecialistNotFound
	}

	return nil
}

func vacationBounds(vacation *model.VacationPeriod) (from, to *string) {
	if vacation == nil {
		return nil, nil
	}
	return &vacation.From, &vacation.To
}

func scanSpecialist(row pgx.Row) (*model.Specialist, error) {
	var (
		specialist model.Specialist
		from, to   *string
	)

	err := row.Scan(
		&specialist.ID,
		&specialist.Name,
		&specialist.Address,
		&from,
		&to,
		&specialist.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if from != nil && to != nil {
		specialist.Vacation = &model.VacationPeriod{From: *from, To: *to}
	}

	return &specialist, nil
}
