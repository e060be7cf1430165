package model

import (
	"time"

	"github.com/google/uuid"
)

// Appointment представляет подтверждённую запись клиента к мастеру.
// Контакты клиента и мастера денормализованы на момент записи:
// последующее редактирование мастера не меняет историю.
type Appointment struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	UserName          string    `json:"user_name"`
	UserPhone         string    `json:"user_phone"`
	UserEmail         string    `json:"user_email"`
	SpecialistID      uuid.UUID `json:"specialist_id"`
	SpecialistName    string    `json:"specialist_name"`
	SpecialistAddress string    `json:"specialist_address"`
	SlotID            uuid.UUID `json:"slot_id"` // uuid.Nil - слот не привязан
	Date              string    `json:"date"`    // 2006-01-02
	Time              string    `json:"time"`    // 15:04
	CreatedAt         time.Time `json:"created_at"`
}

// StartsAt возвращает момент начала записи
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(SlotDateLayout+"T"+SlotTimeLayout, a.Date+"T"+a.Time, loc)
}
