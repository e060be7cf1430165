package model

import (
	"time"

	"github.com/google/uuid"
)

// Роли пользователей
const (
	RoleCustomer   = "customer"
	RoleSpecialist = "specialist"
	RoleAdmin      = "admin"
)

type User struct {
	ID         uuid.UUID `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Role       string    `json:"role"` // 'customer', 'specialist', 'admin'
	CreatedAt  time.Time `json:"created_at"`
}

// IsCustomer проверяет что пользователь - клиент
func (u *User) IsCustomer() bool {
	return u.Role == RoleCustomer
}

// IsSpecialist проверяет что пользователь - мастер
func (u *User) IsSpecialist() bool {
	return u.Role == RoleSpecialist
}

// IsAdmin проверяет что пользователь - администратор
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
