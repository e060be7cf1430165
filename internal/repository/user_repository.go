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

const userColumns = `id, telegram_id, name, phone, email, role, created_at`

// UserRepository - pgx-реализация service.UserStore
type UserRepository struct {
	*base.Repository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт нового пользователя
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, telegram_id, name, phone, email, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.QueryRow(
		ctx, query,
		user.ID,
		user.TelegramID,
		user.Name,
		user.Phone,
		user.Email,
		user.Role,
	).Scan(&user.CreatedAt)

	if err != nil {
		return service.StoreFailure("create user", err)
	}

	return nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE telegram_id = $1`

	user, err := scanUser(r.QueryRow(ctx, query, telegramID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Пользователь не найден
		}
		return nil, service.StoreFailure("get user by telegram id", err)
	}

	return user, nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, service.StoreFailure("get user by id", err)
	}

	return user, nil
}

// UpdateContact обновляет контакты пользователя
func (r *UserRepository) UpdateContact(ctx context.Context, id uuid.UUID, phone, email string) error {
	query := `UPDATE users SET phone = $1, email = $2 WHERE id = $3`

	affected, err := r.ExecAffected(ctx, query, phone, email, id)
	if err != nil {
		return service.StoreFailure("update user contact", err)
	}

	if affected == 0 {
		return service.StoreFailure("update user contact", pgx.ErrNoRows)
	}

	return nil
}

// UpdateRole обновляет роль пользователя
func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	query := `UPDATE users SET role = $1 WHERE id = $2`

	affected, err := r.ExecAffected(ctx, query, role, id)
	if err != nil {
		return service.StoreFailure("update user role", err)
	}

	if affected == 0 {
		return service.StoreFailure("update user role", pgx.ErrNoRows)
	}

	return nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.TelegramID,
		&user.Name,
		&user.Phone,
		&user.Email,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
