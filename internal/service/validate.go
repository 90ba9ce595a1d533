package service

import (
	"time"

	"github.com/Freeeeeet/field_booking/internal/apperr"
)

const dateLayout = "2006-01-02"

// validateDate проверяет формат даты и что она не раньше сегодняшней.
// Дата — непрозрачный календарный ключ, таймзоны не конвертируются.
func validateDate(date string, now time.Time) error {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return apperr.Validation("invalid date %q, expected YYYY-MM-DD", date)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if parsed.Before(today) {
		return apperr.Validation("date must be today or later")
	}

	return nil
}
