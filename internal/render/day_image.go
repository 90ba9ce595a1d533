package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/Freeeeeet/field_booking/internal/model"
)

// Константы размеров и отступов
const (
	imageWidth   = 420
	headerHeight = 48
	rowHeight    = 30
	rowPaddingX  = 16.0
	labelWidth   = 120.0
	barRadius    = 4.0
)

// Цветовая схема
var (
	bgColor         = color.RGBA{245, 246, 248, 255}
	textColor       = color.RGBA{80, 85, 90, 255}
	slotFreeColor   = color.RGBA{133, 193, 85, 220}
	slotBookedColor = color.RGBA{255, 182, 193, 255}
	barTextColor    = color.RGBA{20, 24, 28, 230}
)

// DayImage рисует сетку часовых слотов площадки на день в PNG
func DayImage(fieldName, date string, slots []model.Slot) ([]byte, error) {
	height := headerHeight + rowHeight*len(slots) + 12
	dc := gg.NewContext(imageWidth, height)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(bgColor)
	dc.Clear()

	dc.SetColor(textColor)
	title := fmt.Sprintf("%s - %s", fieldName, date)
	dc.DrawStringAnchored(title, imageWidth/2, headerHeight/2, 0.5, 0.5)

	for i, slot := range slots {
		y := float64(headerHeight + i*rowHeight)

		dc.SetColor(textColor)
		label := fmt.Sprintf("%s - %s", slot.Start, slot.End)
		dc.DrawStringAnchored(label, rowPaddingX, y+rowHeight/2, 0, 0.5)

		barColor := slotFreeColor
		barLabel := "free"
		if slot.IsBooked {
			barColor = slotBookedColor
			barLabel = "booked"
		}

		barWidth := imageWidth - labelWidth - rowPaddingX
		dc.SetColor(barColor)
		dc.DrawRoundedRectangle(labelWidth, y+4, barWidth, rowHeight-8, barRadius)
		dc.Fill()

		dc.SetColor(barTextColor)
		dc.DrawStringAnchored(barLabel, labelWidth+barWidth/2, y+rowHeight/2, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	return buf.Bytes(), nil
}
