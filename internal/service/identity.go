package service

import "github.com/google/uuid"

// Identity описывает аутентифицированного вызывающего. Заполняется
// внешним слоем (бот, веб) из своего identity-провайдера; ядро доверяет
// только роли и id.
type Identity struct {
	ID    uuid.UUID
	Role  string
	Name  string
	Phone string
	Email string
}
