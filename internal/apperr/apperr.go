package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind класс ошибки, определяет HTTP-статус ответа
type Kind string

const (
	KindValidation    Kind = "validation"    // некорректный ввод, 422
	KindConflict      Kind = "conflict"      // пересечение с активной бронью, 409
	KindNotFound      Kind = "not_found"     // неизвестный id, 404
	KindAuthorization Kind = "authorization" // недостаточно прав, 403
	KindInternal      Kind = "internal"      // всё остальное, 500
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Authorization(format string, args ...any) error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

// KindOf возвращает класс ошибки, для необёрнутых ошибок — KindInternal
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus отображает класс ошибки в HTTP-статус
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
