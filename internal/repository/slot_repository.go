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

const slotColumns = `
	id, specialist_id,
	to_char(slot_date, 'YYYY-MM-DD'),
	to_char(slot_time, 'HH24:MI'),
	booked, user_id, created_at
`

// SlotRepository - pgx-реализация service.SlotStore
type SlotRepository struct {
	*base.Repository
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт один слот
func (r *SlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	query := `
		INSERT INTO slots (id, specialist_id, slot_date, slot_time, booked)
		VALUES ($1, $2, $3::date, $4::time, FALSE)
		RETURNING created_at
	`

	err := r.QueryRow(ctx, query, slot.ID, slot.SpecialistID, slot.Date, slot.Time).
		Scan(&slot.CreatedAt)
	if err != nil {
		return service.StoreFailure("create slot", err)
	}

	return nil
}

// CreateBatch создаёт слоты пакетом одной поездкой в базу
func (r *SlotRepository) CreateBatch(ctx context.Context, slots []*model.Slot) error {
	if len(slots) == 0 {
		return nil
	}

	query := `
		INSERT INTO slots (id, specialist_id, slot_date, slot_time, booked)
		VALUES ($1, $2, $3::date, $4::time, FALSE)
	`

	batch := &pgx.Batch{}
	for _, slot := range slots {
		batch.Queue(query, slot.ID, slot.SpecialistID, slot.Date, slot.Time)
	}

	results := r.SendBatch(ctx, batch)
	defer results.Close()

	for range slots {
		if _, err := results.Exec(); err != nil {
			return service.StoreFailure("create slots batch", err)
		}
	}

	return nil
}

// GetByID получает слот по ID
func (r *SlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = $1`

	slot, err := scanSlot(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, service.StoreFailure("get slot by id", err)
	}

	return slot, nil
}

// ListBySpecialist получает все слоты мастера
func (r *SlotRepository) ListBySpecialist(ctx context.Context, specialistID uuid.UUID) ([]*model.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE specialist_id = $1
		ORDER BY slot_date, slot_time
	`

	return r.listSlots(ctx, query, specialistID)
}

// ListAvailable получает свободные слоты мастера
func (r *SlotRepository) ListAvailable(ctx context.Context, specialistID uuid.UUID) ([]*model.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE specialist_id = $1
		  AND booked = FALSE
		ORDER BY slot_date, slot_time
	`

	return r.listSlots(ctx, query, specialistID)
}

// Book атомарно бронирует свободный слот. Условие booked = FALSE в самом
// UPDATE - это и есть compare-and-swap: проигравший конкурентный вызов
// не затронет ни одной строки.
func (r *SlotRepository) Book(ctx context.Context, slotID, userID uuid.UUID) error {
	query := `
		UPDATE slots
		SET booked = TRUE, user_id = $1
		WHERE id = $2 AND booked = FALSE
	`

	affected, err := r.ExecAffected(ctx, query, userID, slotID)
	if err != nil {
		return service.StoreFailure("book slot", err)
	}

	if affected == 0 {
		return service.ErrSlotUnavailable
	}

	return nil
}

// Release освобождает слот и очищает user_id
func (r *SlotRepository) Release(ctx context.Context, slotID uuid.UUID) error {
	query := `
		UPDATE slots
		SET booked = FALSE, user_id = NULL
		WHERE id = $1
	`

	affected, err := r.ExecAffected(ctx, query, slotID)
	if err != nil {
		return service.StoreFailure("release slot", err)
	}

	if affected == 0 {
		return service.ErrSlotNotFound
	}

	return nil
}

// Delete удаляет свободный слот. Занятый слот не удаляется - его сначала
// нужно освободить отменой записи.
func (r *SlotRepository) Delete(ctx context.Context, slotID uuid.UUID) error {
	query := `DELETE FROM slots WHERE id = $1 AND booked = FALSE`

	affected, err := r.ExecAffected(ctx, query, slotID)
	if err != nil {
		return service.StoreFailure("delete slot", err)
	}

	if affected > 0 {
		return nil
	}

	// Строка не удалена: либо слот занят, либо его нет
	var exists bool
	err = r.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM slots WHERE id = $1)`, slotID).Scan(&exists)
	if err != nil {
		return service.StoreFailure("check slot exists", err)
	}

	if exists {
		return service.ErrSlotInUse
	}
	return service.ErrSlotNotFound
}

// DeleteBySpecialist безусловно удаляет все слоты мастера (каскад при
// удалении мастера), включая занятые
func (r *SlotRepository) DeleteBySpecialist(ctx context.Context, specialistID uuid.UUID) (int64, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM slots WHERE specialist_id = $1`, specialistID)
	if err != nil {
		return 0, service.StoreFailure("delete slots by specialist", err)
	}

	return affected, nil
}

func (r *SlotRepository) listSlots(ctx context.Context, query string, args ...interface{}) ([]*model.Slot, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, service.StoreFailure("list slots", err)
	}
	defer rows.Close()

	var slots []*model.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, service.StoreFailure("scan slot", err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, service.StoreFailure("list slots", err)
	}

	return slots, nil
}

func scanSlot(row pgx.Row) (*model.Slot, error) {
	var slot model.Slot
	err := row.Scan(
		&slot.ID,
		&slot.SpecialistID,
		&slot.Date,
		&slot.Time,
		&slot.Booked,
		&slot.UserID,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}
