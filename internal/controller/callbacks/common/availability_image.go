package common

import (
	"bytes"
	"image/color"
	"time"

	"github.com/daryakhvt/salon_bot/internal/model"
	"github.com/daryakhvt/salon_bot/internal/schedule"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров сетки доступности
const (
	imageWidth      = 1120
	imageHeight     = 640
	headerHeight    = 70
	leftPadding     = 40
	dayPaddingX     = 6
	chipHeight      = 26.0
	chipRadius      = 5.0
	daysShown       = 7
	chipBorderMul   = 0.8
	vacationHatchPx = 14.0
)

// Цветовая схема
var (
	bgColor       = color.RGBA{245, 246, 248, 255}
	textColor     = color.RGBA{80, 85, 90, 220}
	mutedColor    = color.RGBA{110, 115, 120, 200}
	gridLineColor = color.NRGBA{150, 150, 150, 255}
	todayBgColor  = color.NRGBA{255, 99, 71, 60}
	evenDayColor  = color.NRGBA{240, 240, 240, 255}
	oddDayColor   = color.NRGBA{222, 222, 222, 255}
	vacationColor = color.NRGBA{158, 158, 158, 140}

	chipFreeColor = color.RGBA{133, 193, 85, 220}
	chipTextColor = color.RGBA{20, 24, 28, 230}
)

// GenerateAvailabilityImage рисует сетку свободных слотов мастера на
// неделю, начиная с from. Дни отпуска заштриховываются. Слоты ожидаются
// уже отфильтрованными (только свободные и будущие) и отсортированными.
// Подписи в изображении только числовые: basicfont не содержит кириллицы,
// текстовая часть остаётся сообщению бота.
func GenerateAvailabilityImage(slots []*model.Slot, vacation *model.VacationPeriod, from time.Time) ([]byte, error) {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	today := start.Format(model.SlotDateLayout)

	byDay := make(map[string][]*model.Slot)
	for _, slot := range slots {
		byDay[slot.Date] = append(byDay[slot.Date], slot)
	}

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := (imageWidth - leftPadding*2) / daysShown
	dayHeight := imageHeight - headerHeight

	drawTitle(dc, start)

	for dayIndex := 0; dayIndex < daysShown; dayIndex++ {
		date := start.AddDate(0, 0, dayIndex)
		iso := date.Format(model.SlotDateLayout)
		x := float64(leftPadding + dayIndex*dayWidth)
		y := float64(headerHeight)

		drawDayColumn(dc, x, y, dayWidth, dayHeight, dayIndex, iso == today)
		drawDayHeader(dc, date, x, dayWidth)

		if schedule.DayInVacation(vacation, iso) {
			drawVacationOverlay(dc, x, y, dayWidth, dayHeight)
			continue
		}

		drawDayChips(dc, byDay[iso], x, y, dayWidth)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTitle(dc *gg.Context, start time.Time) {
	end := start.AddDate(0, 0, daysShown-1)
	title := start.Format("02.01") + " - " + end.Format("02.01")

	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, float64(imageWidth)/2, float64(headerHeight)/3, 0.5, 0.5)
}

func drawDayColumn(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int, isToday bool) {
	if dayIndex%2 == 0 {
		dc.SetColor(evenDayColor)
	} else {
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()

	if isToday {
		dc.SetColor(todayBgColor)
		dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
		dc.Fill()
	}

	dc.SetLineWidth(0.5)
	dc.SetColor(gridLineColor)
	dc.DrawLine(x, y, x, y+float64(dayHeight))
	dc.Stroke()
}

func drawDayHeader(dc *gg.Context, date time.Time, x float64, dayWidth int) {
	dc.SetColor(textColor)
	dc.DrawStringAnchored(date.Format("02.01"), x+float64(dayWidth)/2, float64(headerHeight)-14, 0.5, 0)
}

// drawVacationOverlay затеняет день отпуска диагональной штриховкой
func drawVacationOverlay(dc *gg.Context, x, y float64, dayWidth, dayHeight int) {
	dc.SetColor(vacationColor)
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()

	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Clip()
	dc.SetLineWidth(1)
	for off := -float64(dayHeight); off < float64(dayWidth); off += vacationHatchPx {
		dc.DrawLine(x+off, y+float64(dayHeight), x+off+float64(dayHeight), y)
		dc.Stroke()
	}
	dc.ResetClip()
}

func drawDayChips(dc *gg.Context, slots []*model.Slot, x, y float64, dayWidth int) {
	chipWidth := float64(dayWidth) - float64(dayPaddingX*2)
	chipY := y + 8

	for _, slot := range slots {
		if chipY+chipHeight > float64(imageHeight)-4 {
			// Не влезло - остаток доступен кнопками под сообщением
			dc.SetColor(mutedColor)
			dc.DrawStringAnchored("...", x+float64(dayWidth)/2, chipY+6, 0.5, 0)
			return
		}

		dc.SetColor(chipFreeColor)
		dc.DrawRoundedRectangle(x+dayPaddingX, chipY, chipWidth, chipHeight, chipRadius)
		dc.Fill()

		dc.SetColor(darken(chipFreeColor, chipBorderMul))
		dc.SetLineWidth(1)
		dc.DrawRoundedRectangle(x+dayPaddingX, chipY, chipWidth, chipHeight, chipRadius)
		dc.Stroke()

		dc.SetColor(chipTextColor)
		dc.DrawStringAnchored(slot.Time, x+float64(dayWidth)/2, chipY+chipHeight/2, 0.5, 0.35)

		chipY += chipHeight + 6
	}
}

func darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}
