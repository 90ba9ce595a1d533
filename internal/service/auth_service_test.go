package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/field_booking/internal/apperr"
	"github.com/Freeeeeet/field_booking/internal/auth"
	"github.com/Freeeeeet/field_booking/internal/model"
	"github.com/Freeeeeet/field_booking/internal/repository"
)

func newAuthFixture(t *testing.T) (*AuthService, *repository.Memory) {
	t.Helper()
	store := repository.NewMemory()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(store, tokens, zap.NewNop()), store
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Player@Example.com", "secret-password", "Иван")
	require.NoError(t, err)
	require.Equal(t, "player@example.com", user.Email)
	require.Equal(t, model.RoleUser, user.Role)
	require.NotEqual(t, "secret-password", user.PasswordHash)

	loggedIn, token, err := svc.Login(ctx, "player@example.com", "secret-password")
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)
	require.NotEmpty(t, token)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "not-an-email", "secret-password", "Иван")
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Register(ctx, "player@example.com", "short", "Иван")
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Register(ctx, "player@example.com", "secret-password", "  ")
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "player@example.com", "secret-password", "Иван")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "player@example.com", "another-password", "Пётр")
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "player@example.com", "secret-password", "Иван")
	require.NoError(t, err)

	// Неизвестный email и неверный пароль дают одинаковый ответ
	_, _, err = svc.Login(ctx, "unknown@example.com", "secret-password")
	require.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
	require.EqualError(t, err, "invalid credentials")

	_, _, err = svc.Login(ctx, "player@example.com", "wrong-password")
	require.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
	require.EqualError(t, err, "invalid credentials")
}

func TestListUsersAdminOnly(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "player@example.com", "secret-password", "Иван")
	require.NoError(t, err)

	_, err = svc.ListUsers(ctx, userIdentity)
	require.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))

	users, err := svc.ListUsers(ctx, adminIdentity)
	require.NoError(t, err)
	require.Len(t, users, 1)
}
