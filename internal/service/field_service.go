package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Freeeeeet/field_booking/internal/apperr"
	"github.com/Freeeeeet/field_booking/internal/auth"
	"github.com/Freeeeeet/field_booking/internal/model"
)

type FieldService struct {
	fields FieldStore
	logger *zap.Logger
}

func NewFieldService(fields FieldStore, logger *zap.Logger) *FieldService {
	return &FieldService{fields: fields, logger: logger}
}

// List получает все площадки, доступно без авторизации
func (s *FieldService) List(ctx context.Context) ([]*model.Field, error) {
	return s.fields.List(ctx)
}

// Get получает площадку по ID
func (s *FieldService) Get(ctx context.Context, id int64) (*model.Field, error) {
	field, err := s.fields.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if field == nil {
		return nil, apperr.NotFound("field not found")
	}
	return field, nil
}

// Create создаёт площадку, доступно только администратору
func (s *FieldService) Create(ctx context.Context, identity auth.Identity, field *model.Field) error {
	if !auth.Allow(identity, false, auth.ActionManageFields) {
		return apperr.Authorization("admin access required")
	}

	if err := validateField(field); err != nil {
		return err
	}

	if err := s.fields.Create(ctx, field); err != nil {
		return err
	}

	s.logger.Info("Field created",
		zap.Int64("field_id", field.ID),
		zap.String("name", field.Name),
		zap.Int64("admin_id", identity.UserID),
	)

	return nil
}

// Update обновляет площадку, доступно только администратору
func (s *FieldService) Update(ctx context.Context, identity auth.Identity, field *model.Field) error {
	if !auth.Allow(identity, false, auth.ActionManageFields) {
		return apperr.Authorization("admin access required")
	}

	if err := validateField(field); err != nil {
		return err
	}

	if err := s.fields.Update(ctx, field); err != nil {
		return err
	}

	s.logger.Info("Field updated",
		zap.Int64("field_id", field.ID),
		zap.Int64("admin_id", identity.UserID),
	)

	return nil
}

// Delete удаляет площадку вместе с её бронями, доступно только администратору
func (s *FieldService) Delete(ctx context.Context, identity auth.Identity, id int64) error {
	if !auth.Allow(identity, false, auth.ActionManageFields) {
		return apperr.Authorization("admin access required")
	}

	if err := s.fields.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Field deleted",
		zap.Int64("field_id", id),
		zap.Int64("admin_id", identity.UserID),
	)

	return nil
}

func validateField(field *model.Field) error {
	if field.Name == "" {
		return apperr.Validation("field name is required")
	}
	if field.SportType == "" {
		return apperr.Validation("sport type is required")
	}
	if field.Address == "" {
		return apperr.Validation("address is required")
	}
	if field.PricePerHour < 0 {
		return apperr.Validation("price per hour must be non-negative")
	}
	return nil
}
