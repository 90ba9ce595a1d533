package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/field_booking/internal/apperr"
	"github.com/Freeeeeet/field_booking/internal/model"
	"github.com/Freeeeeet/field_booking/internal/schedule"
)

// AvailabilityService вычисляет занятость часовых слотов площадки
type AvailabilityService struct {
	fields       FieldStore
	reservations ReservationStore
	logger       *zap.Logger
	now          func() time.Time
}

func NewAvailabilityService(fields FieldStore, reservations ReservationStore, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{
		fields:       fields,
		reservations: reservations,
		logger:       logger,
		now:          time.Now,
	}
}

// ComputeSlots разбивает рабочие часы на часовые слоты и помечает занятые.
// Слот занят если его интервал пересекается хотя бы с одной активной бронью,
// частичное пересечение тоже считается. Чистое чтение без блокировок: гонку
// "слот показан свободным, но уже занят" разрешает атомарная запись брони,
// а не это чтение.
func (s *AvailabilityService) ComputeSlots(ctx context.Context, fieldID int64, date string) ([]model.Slot, error) {
	if err := validateDate(date, s.now()); err != nil {
		return nil, err
	}

	field, err := s.fields.GetByID(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	if field == nil {
		return nil, apperr.NotFound("field not found")
	}

	booked, err := s.reservations.ListActive(ctx, fieldID, date)
	if err != nil {
		return nil, err
	}

	var slots []model.Slot
	for _, interval := range schedule.DaySlots() {
		isBooked := false
		for _, res := range booked {
			if interval.Overlaps(res.Interval()) {
				isBooked = true
				break
			}
		}
		slots = append(slots, model.Slot{
			Start:    interval.Start,
			End:      interval.End,
			IsBooked: isBooked,
		})
	}

	return slots, nil
}
