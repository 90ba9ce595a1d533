package model

import "github.com/Freeeeeet/field_booking/internal/schedule"

// Slot часовое окно в рабочих часах площадки, вычисляется на лету и не хранится
type Slot struct {
	Start    schedule.TimeOfDay `json:"start"`
	End      schedule.TimeOfDay `json:"end"`
	IsBooked bool               `json:"is_booked"`
}
