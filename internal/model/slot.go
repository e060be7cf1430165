package model

import (
	"time"

	"github.com/google/uuid"
)

// Форматы даты и времени слота
const (
	SlotDateLayout = "2006-01-02"
	SlotTimeLayout = "15:04"
)

// Slot представляет один доступный для записи интервал времени мастера.
// Тройка (SpecialistID, Date, Time) уникальна.
type Slot struct {
	ID           uuid.UUID  `json:"id"`
	SpecialistID uuid.UUID  `json:"specialist_id"`
	Date         string     `json:"date"` // 2006-01-02
	Time         string     `json:"time"` // 15:04
	Booked       bool       `json:"booked"`
	UserID       *uuid.UUID `json:"user_id"` // указатель - заполнен только у занятых слотов
	CreatedAt    time.Time  `json:"created_at"`
}

// Key возвращает ключ слота по дате и времени
func (s *Slot) Key() string {
	return s.Date + "T" + s.Time
}

// StartsAt возвращает момент начала слота
func (s *Slot) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(SlotDateLayout+"T"+SlotTimeLayout, s.Key(), loc)
}
