package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/daryakhvt/salon_bot/internal/model"
)

// Константы генерации (значения согласованы с продуктом, не менять молча)
const (
	// MinStepMinutes - минимальный шаг сетки слотов
	MinStepMinutes = 5
	// VacationNoticeDays - горизонт, за который отпуск считается "скоро начнётся"
	VacationNoticeDays = 14
)

// ErrInvalidConfig возвращается при некорректных параметрах генерации
var ErrInvalidConfig = errors.New("invalid schedule config")

// Config описывает шаблон рабочих часов для генерации слотов
type Config struct {
	DateFrom    string                // 2006-01-02, включительно
	DateTo      string                // 2006-01-02, включительно
	TimeFrom    string                // 15:04, включительно
	TimeTo      string                // 15:04, не включительно
	StepMinutes int                   // шаг сетки в минутах
	Weekdays    map[time.Weekday]bool // рабочие дни недели
}

// SlotTime представляет кандидата на создание слота
type SlotTime struct {
	Date string // 2006-01-02
	Time string // 15:04
}

// Key возвращает ключ кандидата, совместимый с model.Slot.Key
func (st SlotTime) Key() string {
	return st.Date + "T" + st.Time
}

// Generate разворачивает шаблон рабочих часов в упорядоченный список
// кандидатов (дата, время). Дни вне маски недели и дни отпуска
// пропускаются. Кандидаты, ключ которых уже есть в existing, отбрасываются,
// поэтому повторная генерация с теми же параметрами не создаёт дубликатов.
// Пустой результат - не ошибка.
func Generate(cfg Config, existing map[string]struct{}, vacation *model.VacationPeriod) ([]SlotTime, error) {
	from, err := time.ParseInLocation(model.SlotDateLayout, cfg.DateFrom, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: date from %q", ErrInvalidConfig, cfg.DateFrom)
	}

	to, err := time.ParseInLocation(model.SlotDateLayout, cfg.DateTo, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: date to %q", ErrInvalidConfig, cfg.DateTo)
	}

	if to.Before(from) {
		return nil, fmt.Errorf("%w: date range %s..%s", ErrInvalidConfig, cfg.DateFrom, cfg.DateTo)
	}

	startMin, err := parseMinutes(cfg.TimeFrom)
	if err != nil {
		return nil, fmt.Errorf("%w: time from %q", ErrInvalidConfig, cfg.TimeFrom)
	}

	endMin, err := parseMinutes(cfg.TimeTo)
	if err != nil {
		return nil, fmt.Errorf("%w: time to %q", ErrInvalidConfig, cfg.TimeTo)
	}

	if startMin >= endMin {
		return nil, fmt.Errorf("%w: time range %s..%s", ErrInvalidConfig, cfg.TimeFrom, cfg.TimeTo)
	}

	if cfg.StepMinutes < MinStepMinutes {
		return nil, fmt.Errorf("%w: step %d minutes (minimum %d)", ErrInvalidConfig, cfg.StepMinutes, MinStepMinutes)
	}

	enabled := 0
	for _, on := range cfg.Weekdays {
		if on {
			enabled++
		}
	}
	if enabled == 0 {
		return nil, fmt.Errorf("%w: empty weekday mask", ErrInvalidConfig)
	}

	var result []SlotTime
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if !cfg.Weekdays[day.Weekday()] {
			continue
		}

		iso := day.Format(model.SlotDateLayout)
		if DayInVacation(vacation, iso) {
			continue
		}

		for m := startMin; m < endMin; m += cfg.StepMinutes {
			candidate := SlotTime{
				Date: iso,
				Time: fmt.Sprintf("%02d:%02d", m/60, m%60),
			}

			if _, ok := existing[candidate.Key()]; ok {
				continue
			}

			result = append(result, candidate)
		}
	}

	return result, nil
}

// parseMinutes преобразует "15:04" в минуты от начала суток
func parseMinutes(value string) (int, error) {
	t, err := time.Parse(model.SlotTimeLayout, value)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
