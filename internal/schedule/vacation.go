package schedule

import (
	"time"

	"github.com/daryakhvt/salon_bot/internal/model"
)

// VacationStatus представляет вычисляемый статус отпуска мастера.
// Не хранится - проекция над Specialist.Vacation и "сегодня".
type VacationStatus struct {
	Active         bool   `json:"active"`
	Upcoming       bool   `json:"upcoming"`
	From           string `json:"from"`
	To             string `json:"to"`
	DaysUntilStart int    `json:"days_until_start"`
	DaysUntilEnd   int    `json:"days_until_end"`
}

// Status классифицирует доступность мастера по его отпуску.
// Отсутствующий или некорректный период даёт "нет отпуска" - это
// безопасный фоллбек, не ошибка.
func Status(vacation *model.VacationPeriod, today time.Time) VacationStatus {
	var none VacationStatus

	if vacation == nil || vacation.From == "" || vacation.To == "" {
		return none
	}

	from, err := time.ParseInLocation(model.SlotDateLayout, vacation.From, time.UTC)
	if err != nil {
		return none
	}

	to, err := time.ParseInLocation(model.SlotDateLayout, vacation.To, time.UTC)
	if err != nil {
		return none
	}

	day := calendarDay(today)

	if !day.Before(from) && !day.After(to) {
		daysUntilEnd := daysBetween(day, to)
		if daysUntilEnd < 0 {
			daysUntilEnd = 0
		}
		return VacationStatus{
			Active:       true,
			From:         vacation.From,
			To:           vacation.To,
			DaysUntilEnd: daysUntilEnd,
		}
	}

	if day.Before(from) {
		if diff := daysBetween(day, from); diff <= VacationNoticeDays {
			return VacationStatus{
				Upcoming:       true,
				From:           vacation.From,
				To:             vacation.To,
				DaysUntilStart: diff,
			}
		}
	}

	// Отпуск либо дальше горизонта, либо уже прошёл
	return VacationStatus{From: vacation.From, To: vacation.To}
}

// DayInVacation сообщает, попадает ли календарный день в период отпуска
// (границы включительно). Некорректные данные трактуются как "не попадает".
func DayInVacation(vacation *model.VacationPeriod, isoDate string) bool {
	if vacation == nil || vacation.From == "" || vacation.To == "" {
		return false
	}

	day, err := time.ParseInLocation(model.SlotDateLayout, isoDate, time.UTC)
	if err != nil {
		return false
	}

	from, err := time.ParseInLocation(model.SlotDateLayout, vacation.From, time.UTC)
	if err != nil {
		return false
	}

	to, err := time.ParseInLocation(model.SlotDateLayout, vacation.To, time.UTC)
	if err != nil {
		return false
	}

	return !day.Before(from) && !day.After(to)
}

// calendarDay отбрасывает время суток, оставляя календарный день в UTC
func calendarDay(t time.Time) time.Time {
	day, _ := time.ParseInLocation(model.SlotDateLayout, t.Format(model.SlotDateLayout), time.UTC)
	return day
}

// daysBetween возвращает разницу в целых календарных днях
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
