package service

import (
	"context"

	"github.com/Freeeeeet/field_booking/internal/model"
	"github.com/Freeeeeet/field_booking/internal/schedule"
)

// Интерфейсы хранилища, которые потребляют сервисы.
// Реализации на pgx живут в пакете repository.

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
}

type FieldStore interface {
	Create(ctx context.Context, field *model.Field) error
	GetByID(ctx context.Context, id int64) (*model.Field, error)
	List(ctx context.Context) ([]*model.Field, error)
	Update(ctx context.Context, field *model.Field) error
	Delete(ctx context.Context, id int64) error
}

type ReservationStore interface {
	// ListActive возвращает только pending и confirmed брони
	ListActive(ctx context.Context, fieldID int64, date string) ([]*model.Reservation, error)
	// CreateIfNoConflict атомарна относительно конкурентных вставок
	// по одной паре площадка+дата
	CreateIfNoConflict(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, id int64) (*model.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus) error
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64) ([]*model.Reservation, error)
	ListAll(ctx context.Context) ([]*model.Reservation, error)
	CompletePast(ctx context.Context, today string, nowMin schedule.TimeOfDay) (int64, error)
}
