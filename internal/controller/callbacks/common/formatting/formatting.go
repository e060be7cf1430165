package formatting

import (
	"fmt"
	"time"

	"github.com/daryakhvt/salon_bot/internal/model"
	"github.com/daryakhvt/salon_bot/internal/schedule"
)

// FormatSlotDate переводит ISO дату слота в человеческий вид "03.06 (Пн)".
// Некорректная дата возвращается как есть.
func FormatSlotDate(isoDate string) string {
	day, err := time.ParseInLocation(model.SlotDateLayout, isoDate, time.UTC)
	if err != nil {
		return isoDate
	}
	return fmt.Sprintf("%s (%s)", day.Format("02.01"), WeekdayShortName(day.Weekday()))
}

// FormatSlotDateLong переводит ISO дату в "03.06.2024, понедельник"
func FormatSlotDateLong(isoDate string) string {
	day, err := time.ParseInLocation(model.SlotDateLayout, isoDate, time.UTC)
	if err != nil {
		return isoDate
	}
	return fmt.Sprintf("%s, %s", day.Format("02.01.2006"), WeekdayName(day.Weekday()))
}

// WeekdayName возвращает название дня недели на русском
func WeekdayName(weekday time.Weekday) string {
	names := map[time.Weekday]string{
		time.Monday:    "понедельник",
		time.Tuesday:   "вторник",
		time.Wednesday: "среда",
		time.Thursday:  "четверг",
		time.Friday:    "пятница",
		time.Saturday:  "суббота",
		time.Sunday:    "воскресенье",
	}
	return names[weekday]
}

// WeekdayShortName возвращает краткое название дня недели на русском
func WeekdayShortName(weekday time.Weekday) string {
	names := map[time.Weekday]string{
		time.Monday:    "Пн",
		time.Tuesday:   "Вт",
		time.Wednesday: "Ср",
		time.Thursday:  "Чт",
		time.Friday:    "Пт",
		time.Saturday:  "Сб",
		time.Sunday:    "Вс",
	}
	return names[weekday]
}

// PluralizeSlots возвращает правильное склонение слова "слот"
func PluralizeSlots(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "слот"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "слота"
	}
	return "слотов"
}

// PluralizeDays возвращает правильное склонение слова "день"
func PluralizeDays(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "день"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "дня"
	}
	return "дней"
}

// VacationBadge возвращает строку-бейдж статуса отпуска мастера
// (пустая строка - мастер работает в обычном режиме)
func VacationBadge(status schedule.VacationStatus) string {
	switch {
	case status.Active && status.DaysUntilEnd == 0:
		return "🌴 В отпуске, последний день"
	case status.Active:
		return fmt.Sprintf("🌴 В отпуске до %s (ещё %d %s)",
			FormatSlotDate(status.To), status.DaysUntilEnd, PluralizeDays(status.DaysUntilEnd))
	case status.Upcoming:
		return fmt.Sprintf("⏳ Уходит в отпуск %s (через %d %s)",
			FormatSlotDate(status.From), status.DaysUntilStart, PluralizeDays(status.DaysUntilStart))
	default:
		return ""
	}
}
