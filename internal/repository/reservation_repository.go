package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/field_booking/internal/apperr"
	"github.com/Freeeeeet/field_booking/internal/model"
	"github.com/Freeeeeet/field_booking/internal/repository/base"
	"github.com/Freeeeeet/field_booking/internal/schedule"
)

type ReservationRepository struct {
	*base.Repository
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{Repository: base.NewRepository(pool)}
}

const reservationColumns = `id, field_id, user_id, reservation_date::text, start_min, end_min, status, created_at, updated_at`

func scanReservation(row pgx.Row) (*model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(
		&res.ID,
		&res.FieldID,
		&res.UserID,
		&res.Date,
		&res.Start,
		&res.End,
		&res.Status,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ListActive получает активные брони площадки на дату по возрастанию времени.
// Активные — только pending и confirmed, остальные не блокируют запись.
func (r *ReservationRepository) ListActive(ctx context.Context, fieldID int64, date string) ([]*model.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE field_id = $1 AND reservation_date = $2::date AND status IN ('pending', 'confirmed')
		ORDER BY start_min
	`

	rows, err := r.Query(ctx, query, fieldID, date)
	if err != nil {
		return nil, fmt.Errorf("list active reservations: %w", err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

// CreateIfNoConflict атомарно проверяет пересечения и создаёт бронь.
// Конкурентные запросы по одной паре площадка+дата сериализуются
// транзакционным advisory-локом, поэтому проверку и вставку нельзя
// разнести по разным транзакциям.
func (r *ReservationRepository) CreateIfNoConflict(ctx context.Context, res *model.Reservation) error {
	tx, err := r.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Лок держится до конца транзакции и снимается автоматически
	lockKey := fmt.Sprintf("reservations:%d:%s", res.FieldID, res.Date)
	_, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, lockKey)
	if err != nil {
		return fmt.Errorf("acquire admission lock: %w", err)
	}

	var blocked bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM reservations
			WHERE field_id = $1
			  AND reservation_date = $2::date
			  AND status IN ('pending', 'confirmed')
			  AND start_min < $4 AND end_min > $3
		)
	`, res.FieldID, res.Date, int(res.Start), int(res.End)).Scan(&blocked)
	if err != nil {
		return fmt.Errorf("check overlap: %w", err)
	}

	if blocked {
		return apperr.Conflict("the selected time slot is already booked")
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO reservations (field_id, user_id, reservation_date, start_min, end_min, status)
		VALUES ($1, $2, $3::date, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, res.FieldID, res.UserID, res.Date, int(res.Start), int(res.End), res.Status).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetByID получает бронь по ID
func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE id = $1
	`

	res, err := scanReservation(r.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation by id: %w", err)
	}

	return res, nil
}

// UpdateStatus обновляет статус брони
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus) error {
	query := `
		UPDATE reservations
		SET status = $1, updated_at = now()
		WHERE id = $2
	`

	affected, err := r.ExecAffected(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}

	if affected == 0 {
		return apperr.NotFound("reservation not found")
	}

	return nil
}

// Delete безвозвратно удаляет бронь
func (r *ReservationRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM reservations WHERE id = $1`

	affected, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}

	if affected == 0 {
		return apperr.NotFound("reservation not found")
	}

	return nil
}

// ListByUser получает все брони пользователя, новые даты первыми
func (r *ReservationRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE user_id = $1
		ORDER BY reservation_date DESC, start_min
	`

	rows, err := r.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list reservations by user: %w", err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

// ListAll получает все брони, новые даты первыми
func (r *ReservationRepository) ListAll(ctx context.Context) ([]*model.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		ORDER BY reservation_date DESC, start_min
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

// CompletePast переводит подтверждённые брони из прошлого в completed
func (r *ReservationRepository) CompletePast(ctx context.Context, today string, nowMin schedule.TimeOfDay) (int64, error) {
	query := `
		UPDATE reservations
		SET status = 'completed', updated_at = now()
		WHERE status = 'confirmed'
		  AND (reservation_date < $1::date OR (reservation_date = $1::date AND end_min <= $2))
	`

	affected, err := r.ExecAffected(ctx, query, today, int(nowMin))
	if err != nil {
		return 0, fmt.Errorf("complete past reservations: %w", err)
	}

	return affected, nil
}

func collectReservations(rows pgx.Rows) ([]*model.Reservation, error) {
	var reservations []*model.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservations: %w", err)
	}

	return reservations, nil
}
