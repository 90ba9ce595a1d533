package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/field_booking/internal/apperr"
	"github.com/Freeeeeet/field_booking/internal/auth"
	"github.com/Freeeeeet/field_booking/internal/model"
)

type AuthService struct {
	users  UserStore
	tokens *auth.TokenManager
	logger *zap.Logger
}

func NewAuthService(users UserStore, tokens *auth.TokenManager, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Register регистрирует нового пользователя с ролью user.
// Администраторы назначаются напрямую в БД, через API это невозможно.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperr.Validation("valid email is required")
	}
	if len(password) < 8 {
		return nil, apperr.Validation("password must be at least 8 characters")
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("name is required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
		Role:         model.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email),
	)

	return user, nil
}

// Login проверяет учётные данные и выпускает access-токен
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	// Одинаковый ответ для неизвестного email и неверного пароля
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", apperr.Authorization("invalid credentials")
	}

	token, err := s.tokens.Create(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("User logged in", zap.Int64("user_id", user.ID))

	return user, token, nil
}

// ListUsers получает всех пользователей, доступно только администратору
func (s *AuthService) ListUsers(ctx context.Context, identity auth.Identity) ([]*model.User, error) {
	if !auth.Allow(identity, false, auth.ActionListUsers) {
		return nil, apperr.Authorization("admin access required")
	}
	return s.users.List(ctx)
}
