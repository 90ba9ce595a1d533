package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/field_booking/internal/apperr"
	"github.com/Freeeeeet/field_booking/internal/model"
	"github.com/Freeeeeet/field_booking/internal/repository/base"
)

type FieldRepository struct {
	*base.Repository
}

func NewFieldRepository(pool *pgxpool.Pool) *FieldRepository {
	return &FieldRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт новую площадку
func (r *FieldRepository) Create(ctx context.Context, field *model.Field) error {
	query := `
		INSERT INTO fields (name, sport_type, address, description, price_per_hour)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		field.Name,
		field.SportType,
		field.Address,
		field.Description,
		field.PricePerHour,
	).Scan(&field.ID, &field.CreatedAt, &field.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create field: %w", err)
	}

	return nil
}

// GetByID получает площадку по ID
func (r *FieldRepository) GetByID(ctx context.Context, id int64) (*model.Field, error) {
	query := `
		SELECT id, name, sport_type, address, description, price_per_hour, created_at, updated_at
		FROM fields
		WHERE id = $1
	`

	var field model.Field
	err := r.QueryRow(ctx, query, id).Scan(
		&field.ID,
		&field.Name,
		&field.SportType,
		&field.Address,
		&field.Description,
		&field.PricePerHour,
		&field.CreatedAt,
		&field.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get field by id: %w", err)
	}

	return &field, nil
}

// List получает все площадки
func (r *FieldRepository) List(ctx context.Context) ([]*model.Field, error) {
	query := `
		SELECT id, name, sport_type, address, description, price_per_hour, created_at, updated_at
		FROM fields
		ORDER BY name
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	defer rows.Close()

	var fields []*model.Field
	for rows.Next() {
		var field model.Field
		err := rows.Scan(
			&field.ID,
			&field.Name,
			&field.SportType,
			&field.Address,
			&field.Description,
			&field.PricePerHour,
			&field.CreatedAt,
			&field.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan field: %w", err)
		}
		fields = append(fields, &field)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fields: %w", err)
	}

	return fields, nil
}

// Update обновляет данные площадки
func (r *FieldRepository) Update(ctx context.Context, field *model.Field) error {
	query := `
		UPDATE fields
		SET name = $1, sport_type = $2, address = $3, description = $4, price_per_hour = $5, updated_at = now()
		WHERE id = $6
	`

	affected, err := r.ExecAffected(
		ctx, query,
		field.Name,
		field.SportType,
		field.Address,
		field.Description,
		field.PricePerHour,
		field.ID,
	)

	if err != nil {
		return fmt.Errorf("update field: %w", err)
	}

	if affected == 0 {
		return apperr.NotFound("field not found")
	}

	return nil
}

// Delete удаляет площадку, брони удаляются каскадно
func (r *FieldRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM fields WHERE id = $1`

	affected, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete field: %w", err)
	}

	if affected == 0 {
		return apperr.NotFound("field not found")
	}

	return nil
}
