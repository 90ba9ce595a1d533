package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/field_booking/internal/apperr"
	"github.com/Freeeeeet/field_booking/internal/auth"
	"github.com/Freeeeeet/field_booking/internal/model"
	"github.com/Freeeeeet/field_booking/internal/schedule"
)

// ReservationNotifier получает уведомления о событиях бронирования.
// Ошибки доставки не влияют на результат операции.
type ReservationNotifier interface {
	ReservationCreated(ctx context.Context, res *model.Reservation)
	ReservationCanceled(ctx context.Context, res *model.Reservation)
}

// RemoveOutcome результат удаления брони: жёсткое удаление или мягкая отмена
type RemoveOutcome string

const (
	RemoveDeleted  RemoveOutcome = "deleted"
	RemoveCanceled RemoveOutcome = "canceled"
)

type ReservationService struct {
	fields       FieldStore
	reservations ReservationStore
	notifier     ReservationNotifier
	logger       *zap.Logger
	now          func() time.Time
}

// NewReservationService создаёт сервис бронирования, notifier может быть nil
func NewReservationService(
	fields FieldStore,
	reservations ReservationStore,
	notifier ReservationNotifier,
	logger *zap.Logger,
) *ReservationService {
	return &ReservationService{
		fields:       fields,
		reservations: reservations,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

// Admit проверяет кандидатное окно на пересечения и создаёт бронь в статусе
// pending. Проверка идёт по всему множеству активных броней площадки на дату,
// а не по часовой сетке, поэтому окна короче и длиннее часа тоже допустимы.
// Проверка и вставка атомарны относительно конкурентных запросов.
func (s *ReservationService) Admit(ctx context.Context, identity auth.Identity, fieldID int64, date string, start, end schedule.TimeOfDay) (*model.Reservation, error) {
	if err := validateDate(date, s.now()); err != nil {
		return nil, err
	}

	if _, err := schedule.NewInterval(start, end); err != nil {
		return nil, apperr.Validation("%s", err)
	}

	field, err := s.fields.GetByID(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	if field == nil {
		return nil, apperr.NotFound("field not found")
	}

	res := &model.Reservation{
		FieldID: fieldID,
		UserID:  identity.UserID,
		Date:    date,
		Start:   start,
		End:     end,
		Status:  model.ReservationStatusPending,
	}

	if err := s.reservations.CreateIfNoConflict(ctx, res); err != nil {
		return nil, err
	}

	s.logger.Info("Reservation created",
		zap.Int64("reservation_id", res.ID),
		zap.Int64("field_id", fieldID),
		zap.Int64("user_id", identity.UserID),
		zap.String("date", date),
		zap.String("start", start.String()),
		zap.String("end", end.String()),
	)

	if s.notifier != nil {
		s.notifier.ReservationCreated(ctx, res)
	}

	res.Field = field
	return res, nil
}

// Remove удаляет или отменяет бронь в зависимости от роли.
// Администратор удаляет запись безусловно. Владелец может только отменить
// собственную бронь и только из статуса pending — запись остаётся в БД
// со статусом canceled.
func (s *ReservationService) Remove(ctx context.Context, identity auth.Identity, id int64) (RemoveOutcome, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if res == nil {
		return "", apperr.NotFound("reservation not found")
	}

	isOwner := res.UserID == identity.UserID

	if auth.Allow(identity, isOwner, auth.ActionDeleteReservation) {
		if err := s.reservations.Delete(ctx, id); err != nil {
			return "", err
		}

		s.logger.Info("Reservation deleted",
			zap.Int64("reservation_id", id),
			zap.Int64("admin_id", identity.UserID),
		)
		return RemoveDeleted, nil
	}

	if !auth.Allow(identity, isOwner, auth.ActionCancelReservation) {
		return "", apperr.Authorization("you can only cancel your own reservations")
	}

	if res.Status != model.ReservationStatusPending {
		return "", apperr.Authorization("cannot cancel reservation with status %s", res.Status)
	}

	if err := s.reservations.UpdateStatus(ctx, id, model.ReservationStatusCanceled); err != nil {
		return "", err
	}

	s.logger.Info("Reservation canceled",
		zap.Int64("reservation_id", id),
		zap.Int64("user_id", identity.UserID),
	)

	if s.notifier != nil {
		res.Status = model.ReservationStatusCanceled
		s.notifier.ReservationCanceled(ctx, res)
	}

	return RemoveCanceled, nil
}

// SetStatus устанавливает статус брони, доступно только администратору.
// Ограничений на переходы нет: администратор может выставить любой статус
// из любого текущего.
func (s *ReservationService) SetStatus(ctx context.Context, identity auth.Identity, id int64, status model.ReservationStatus) (*model.Reservation, error) {
	if !auth.Allow(identity, false, auth.ActionSetReservationStatus) {
		return nil, apperr.Authorization("admin access required")
	}

	if !status.Valid() {
		return nil, apperr.Validation("invalid status %q", status)
	}

	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, apperr.NotFound("reservation not found")
	}

	if err := s.reservations.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	s.logger.Info("Reservation status updated",
		zap.Int64("reservation_id", id),
		zap.String("status", string(status)),
		zap.Int64("admin_id", identity.UserID),
	)

	res.Status = status
	return res, nil
}

// ListMine получает все брони текущего пользователя
func (s *ReservationService) ListMine(ctx context.Context, identity auth.Identity) ([]*model.Reservation, error) {
	return s.reservations.ListByUser(ctx, identity.UserID)
}

// ListAll получает все брони, доступно только администратору
func (s *ReservationService) ListAll(ctx context.Context, identity auth.Identity) ([]*model.Reservation, error) {
	if !auth.Allow(identity, false, auth.ActionListAllReservations) {
		return nil, apperr.Authorization("admin access required")
	}
	return s.reservations.ListAll(ctx)
}

// CompletePast переводит подтверждённые брони из прошлого в completed.
// Вызывается фоновым планировщиком.
func (s *ReservationService) CompletePast(ctx context.Context) error {
	now := s.now()
	today := now.Format(dateLayout)
	nowMin := schedule.TimeOfDay(now.Hour()*60 + now.Minute())

	completed, err := s.reservations.CompletePast(ctx, today, nowMin)
	if err != nil {
		return err
	}

	if completed > 0 {
		s.logger.Info("Past reservations completed", zap.Int64("count", completed))
	}

	return nil
}
