package schedule

import (
	"testing"
	"time"

	"github.com/daryakhvt/salon_bot/internal/model"
	"github.com/stretchr/testify/require"
)

func TestGenerateRespectsWeekdayMask(t *testing.T) {
	// 2024-06-03 - понедельник, 2024-06-04 - вторник
	cfg := Config{
		DateFrom:    "2024-06-03",
		DateTo:      "2024-06-04",
		TimeFrom:    "10:00",
		TimeTo:      "11:00",
		StepMinutes: 30,
		Weekdays:    map[time.Weekday]bool{time.Monday: true},
	}

	got, err := Generate(cfg, nil, nil)
	require.NoError(t, err)
	require.Equal(t, []SlotTime{
		{Date: "2024-06-03", Time: "10:00"},
		{Date: "2024-06-03", Time: "10:30"},
	}, got)
}

func TestGenerateEndTimeExclusive(t *testing.T) {
	cfg := Config{
		DateFrom:    "2024-06-03",
		DateTo:      "2024-06-03",
		TimeFrom:    "10:00",
		TimeTo:      "12:00",
		StepMinutes: 60,
		Weekdays:    map[time.Weekday]bool{time.Monday: true},
	}

	got, err := Generate(cfg, nil, nil)
	require.NoError(t, err)

	// 12:00 не попадает: конец диапазона исключителен
	require.Equal(t, []SlotTime{
		{Date: "2024-06-03", Time: "10:00"},
		{Date: "2024-06-03", Time: "11:00"},
	}, got)
}

func TestGenerateSkipsExistingKeys(t *testing.T) {
	cfg := Config{
		DateFrom:    "2024-06-03",
		DateTo:      "2024-06-03",
		TimeFrom:    "10:00",
		TimeTo:      "11:00",
		StepMinutes: 30,
		Weekdays:    map[time.Weekday]bool{time.Monday: true},
	}

	existing := map[string]struct{}{
		"2024-06-03T10:00": {},
	}

	got, err := Generate(cfg, existing, nil)
	require.NoError(t, err)
	require.Equal(t, []SlotTime{{Date: "2024-06-03", Time: "10:30"}}, got)
}

func TestGenerateSkipsVacationDays(t *testing.T) {
	cfg := Config{
		DateFrom:    "2024-06-03",
		DateTo:      "2024-06-10",
		TimeFrom:    "10:00",
		TimeTo:      "11:00",
		StepMinutes: 30,
		Weekdays:    map[time.Weekday]bool{time.Monday: true},
	}

	vacation := &model.VacationPeriod{From: "2024-06-01", To: "2024-06-05"}

	got, err := Generate(cfg, nil, vacation)
	require.NoError(t, err)

	// Понедельник 03.06 в отпуске, остаётся только 10.06
	require.Equal(t, []SlotTime{
		{Date: "2024-06-10", Time: "10:00"},
		{Date: "2024-06-10", Time: "10:30"},
	}, got)
}

func TestGenerateVacationCoversWholeRange(t *testing.T) {
	cfg := Config{
		DateFrom:    "2024-06-03",
		DateTo:      "2024-06-07",
		TimeFrom:    "10:00",
		TimeTo:      "11:00",
		StepMinutes: 30,
		Weekdays: map[time.Weekday]bool{
			time.Monday: true, time.Tuesday: true, time.Wednesday: true,
			time.Thursday: true, time.Friday: true,
		},
	}

	vacation := &model.VacationPeriod{From: "2024-06-01", To: "2024-06-30"}

	got, err := Generate(cfg, nil, vacation)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestGenerateInvalidConfig(t *testing.T) {
	valid := Config{
		DateFrom:    "2024-06-03",
		DateTo:      "2024-06-04",
		TimeFrom:    "10:00",
		TimeTo:      "11:00",
		StepMinutes: 30,
		Weekdays:    map[time.Weekday]bool{time.Monday: true},
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad date from", func(c *Config) { c.DateFrom = "03.06.2024" }},
		{"bad date to", func(c *Config) { c.DateTo = "" }},
		{"reversed dates", func(c *Config) { c.DateFrom, c.DateTo = c.DateTo, c.DateFrom }},
		{"bad time from", func(c *Config) { c.TimeFrom = "10-00" }},
		{"bad time to", func(c *Config) { c.TimeTo = "25:00" }},
		{"start equals end", func(c *Config) { c.TimeTo = c.TimeFrom }},
		{"start after end", func(c *Config) { c.TimeFrom, c.TimeTo = c.TimeTo, c.TimeFrom }},
		{"step too small", func(c *Config) { c.StepMinutes = MinStepMinutes - 1 }},
		{"zero step", func(c *Config) { c.StepMinutes = 0 }},
		{"empty weekday mask", func(c *Config) { c.Weekdays = nil }},
		{"all weekdays off", func(c *Config) { c.Weekdays = map[time.Weekday]bool{time.Monday: false} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)

			_, err := Generate(cfg, nil, nil)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestGenerateSingleDayRange(t *testing.T) {
	// Диапазон из одного дня: границы включительны
	cfg := Config{
		DateFrom:    "2024-06-03",
		DateTo:      "2024-06-03",
		TimeFrom:    "09:00",
		TimeTo:      "09:05",
		StepMinutes: 5,
		Weekdays:    map[time.Weekday]bool{time.Monday: true},
	}

	got, err := Generate(cfg, nil, nil)
	require.NoError(t, err)
	require.Equal(t, []SlotTime{{Date: "2024-06-03", Time: "09:00"}}, got)
}
