package model

import (
	"time"

	"github.com/Freeeeeet/field_booking/internal/schedule"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"   // Ожидает подтверждения администратором
	ReservationStatusConfirmed ReservationStatus = "confirmed" // Подтверждено
	ReservationStatusCanceled  ReservationStatus = "canceled"  // Отменено
	ReservationStatusCompleted ReservationStatus = "completed" // Завершено
)

// Valid проверяет что статус входит в допустимый набор
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCanceled, ReservationStatusCompleted:
		return true
	}
	return false
}

// Blocks сообщает блокирует ли бронь с этим статусом новые записи
func (s ReservationStatus) Blocks() bool {
	return s == ReservationStatusPending || s == ReservationStatusConfirmed
}

type Reservation struct {
	ID        int64              `json:"id"`
	FieldID   int64              `json:"field_id"`
	UserID    int64              `json:"user_id"`
	Date      string             `json:"reservation_date"` // календарный день "YYYY-MM-DD", без таймзоны
	Start     schedule.TimeOfDay `json:"start_time"`
	End       schedule.TimeOfDay `json:"end_time"`
	Status    ReservationStatus  `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`

	// Дополнительные поля для удобства (не из БД)
	Field *Field `json:"field,omitempty"`
	User  *User  `json:"user,omitempty"`
}

// Interval возвращает занимаемый бронью интервал времени
func (r *Reservation) Interval() schedule.Interval {
	return schedule.Interval{Start: r.Start, End: r.End}
}
