package auth

import "github.com/Freeeeeet/field_booking/internal/model"

// Identity личность текущего запроса, передаётся явно во все операции.
// Сервисы никогда не читают её из глобального состояния.
type Identity struct {
	UserID int64
	Role   model.Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}
