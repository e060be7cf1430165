package model

import (
	"time"

	"github.com/google/uuid"
)

// VacationPeriod представляет период отпуска мастера.
// Даты в ISO-формате (2006-01-02), границы включительно.
type VacationPeriod struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Specialist представляет мастера салона
type Specialist struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Address   string          `json:"address"`
	Vacation  *VacationPeriod `json:"vacation"` // nil - отпуск не задан
	CreatedAt time.Time       `json:"created_at"`
}
