package schedule

import (
	"testing"
	"time"

	"github.com/daryakhvt/salon_bot/internal/model"
	"github.com/stretchr/testify/require"
)

func day(iso string) time.Time {
	t, err := time.ParseInLocation(model.SlotDateLayout, iso, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStatusActive(t *testing.T) {
	vacation := &model.VacationPeriod{From: "2024-06-01", To: "2024-06-10"}

	got := Status(vacation, day("2024-06-05"))
	require.Equal(t, VacationStatus{
		Active:       true,
		From:         "2024-06-01",
		To:           "2024-06-10",
		DaysUntilEnd: 5,
	}, got)
}

func TestStatusActiveLastDay(t *testing.T) {
	vacation := &model.VacationPeriod{From: "2024-06-01", To: "2024-06-10"}

	got := Status(vacation, day("2024-06-10"))
	require.True(t, got.Active)
	require.Zero(t, got.DaysUntilEnd)
}

func TestStatusUpcomingWithinNotice(t *testing.T) {
	vacation := &model.VacationPeriod{From: "2024-06-15", To: "2024-06-20"}

	got := Status(vacation, day("2024-06-05"))
	require.Equal(t, VacationStatus{
		Upcoming:       true,
		From:           "2024-06-15",
		To:             "2024-06-20",
		DaysUntilStart: 10,
	}, got)
}

func TestStatusBeyondNoticeHorizon(t *testing.T) {
	// Старт через 20 дней - дальше горизонта в VacationNoticeDays
	vacation := &model.VacationPeriod{From: "2024-06-25", To: "2024-06-30"}

	got := Status(vacation, day("2024-06-05"))
	require.False(t, got.Active)
	require.False(t, got.Upcoming)
	require.Equal(t, "2024-06-25", got.From)
	require.Equal(t, "2024-06-30", got.To)
}

func TestStatusNoticeBoundary(t *testing.T) {
	vacation := &model.VacationPeriod{From: "2024-06-19", To: "2024-06-25"}

	// Ровно VacationNoticeDays дней до старта - ещё "скоро"
	got := Status(vacation, day("2024-06-05"))
	require.True(t, got.Upcoming)
	require.Equal(t, VacationNoticeDays, got.DaysUntilStart)

	// На день раньше - уже нет
	got = Status(vacation, day("2024-06-04"))
	require.False(t, got.Upcoming)
}

func TestStatusPastVacation(t *testing.T) {
	vacation := &model.VacationPeriod{From: "2024-05-01", To: "2024-05-10"}

	got := Status(vacation, day("2024-06-05"))
	require.False(t, got.Active)
	require.False(t, got.Upcoming)
	require.Equal(t, "2024-05-01", got.From)
}

func TestStatusMissingOrMalformed(t *testing.T) {
	today := day("2024-06-05")

	tests := []struct {
		name     string
		vacation *model.VacationPeriod
	}{
		{"nil period", nil},
		{"empty from", &model.VacationPeriod{To: "2024-06-10"}},
		{"empty to", &model.VacationPeriod{From: "2024-06-01"}},
		{"malformed from", &model.VacationPeriod{From: "01.06.2024", To: "2024-06-10"}},
		{"malformed to", &model.VacationPeriod{From: "2024-06-01", To: "июнь"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Zero(t, Status(tc.vacation, today))
		})
	}
}

func TestStatusIgnoresTimeOfDay(t *testing.T) {
	vacation := &model.VacationPeriod{From: "2024-06-05", To: "2024-06-10"}

	// 23:59 первого дня отпуска - всё ещё активен, день целиком
	late := time.Date(2024, 6, 5, 23, 59, 0, 0, time.UTC)
	got := Status(vacation, late)
	require.True(t, got.Active)
	require.Equal(t, 5, got.DaysUntilEnd)
}

func TestDayInVacation(t *testing.T) {
	vacation := &model.VacationPeriod{From: "2024-06-05", To: "2024-06-10"}

	tests := []struct {
		iso  string
		want bool
	}{
		{"2024-06-04", false},
		{"2024-06-05", true}, // граница включительна
		{"2024-06-07", true},
		{"2024-06-10", true}, // граница включительна
		{"2024-06-11", false},
	}

	for _, tc := range tests {
		require.Equal(t, tc.want, DayInVacation(vacation, tc.iso), tc.iso)
	}

	require.False(t, DayInVacation(nil, "2024-06-07"))
	require.False(t, DayInVacation(vacation, "не дата"))
	require.False(t, DayInVacation(&model.VacationPeriod{From: "x", To: "2024-06-10"}, "2024-06-07"))
}
