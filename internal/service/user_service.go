package service

import (
	"context"
	"fmt"

	"github.com/daryakhvt/salon_bot/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserStore - хранилище пользователей
type UserStore interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateContact(ctx context.Context, id uuid.UUID, phone, email string) error
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
}

// UserService регистрирует пользователей Telegram и выдаёт их Identity
type UserService struct {
	users    UserStore
	adminIDs map[int64]struct{}
	logger   *zap.Logger
}

func NewUserService(users UserStore, adminTelegramIDs []int64, logger *zap.Logger) *UserService {
	admins := make(map[int64]struct{}, len(adminTelegramIDs))
	for _, id := range adminTelegramIDs {
		admins[id] = struct{}{}
	}

	return &UserService{
		users:    users,
		adminIDs: admins,
		logger:   logger,
	}
}

// Register создаёт пользователя при первом /start или возвращает
// существующего. Роль admin назначается по списку из конфигурации.
func (s *UserService) Register(ctx context.Context, telegramID int64, name string) (*model.User, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	_, isAdmin := s.adminIDs[telegramID]

	if user != nil {
		// Список админов мог измениться после регистрации
		if isAdmin && user.Role != model.RoleAdmin {
			if err := s.users.UpdateRole(ctx, user.ID, model.RoleAdmin); err != nil {
				return nil, fmt.Errorf("update role: %w", err)
			}
			user.Role = model.RoleAdmin
		}
		return user, nil
	}

	role := model.RoleCustomer
	if isAdmin {
		role = model.RoleAdmin
	}

	user = &model.User{
		ID:         uuid.New(),
		TelegramID: telegramID,
		Name:       name,
		Role:       role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.Int64("telegram_id", telegramID),
		zap.String("role", role),
	)

	return user, nil
}

// GetByTelegramID возвращает пользователя по Telegram ID
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.users.GetByTelegramID(ctx, telegramID)
}

// UpdateContact сохраняет контакты для снимка в будущих записях
func (s *UserService) UpdateContact(ctx context.Context, userID uuid.UUID, phone, email string) error {
	if err := s.users.UpdateContact(ctx, userID, phone, email); err != nil {
		return fmt.Errorf("update contact: %w", err)
	}

	s.logger.Info("User contact updated", zap.String("user_id", userID.String()))
	return nil
}

// IdentityOf собирает Identity пользователя для вызовов ядра
func IdentityOf(user *model.User) Identity {
	return Identity{
		ID:    user.ID,
		Role:  user.Role,
		Name:  user.Name,
		Phone: user.Phone,
		Email: user.Email,
	}
}
