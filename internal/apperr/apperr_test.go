package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: Validation("bad input"), want: http.StatusUnprocessableEntity},
		{err: Conflict("slot taken"), want: http.StatusConflict},
		{err: NotFound("no such field"), want: http.StatusNotFound},
		{err: Authorization("admin only"), want: http.StatusForbidden},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("remove reservation: %w", Authorization("cannot cancel reservation with status canceled"))

	if got := KindOf(err); got != KindAuthorization {
		t.Errorf("KindOf(wrapped) = %v, want %v", got, KindAuthorization)
	}
}

func TestErrorMessage(t *testing.T) {
	err := Conflict("the selected time slot is already booked")

	if err.Error() != "the selected time slot is already booked" {
		t.Errorf("Error() = %q", err.Error())
	}
}
