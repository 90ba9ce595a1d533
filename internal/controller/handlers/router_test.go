package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/field_booking/internal/auth"
	"github.com/Freeeeeet/field_booking/internal/model"
	"github.com/Freeeeeet/field_booking/internal/repository"
	"github.com/Freeeeeet/field_booking/internal/service"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testServer struct {
	router *gin.Engine
	store  *repository.Memory
	tokens *auth.TokenManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := repository.NewMemory()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	logger := zap.NewNop()

	authService := service.NewAuthService(store, tokens, logger)
	fieldService := service.NewFieldService(store.Fields(), logger)
	availabilityService := service.NewAvailabilityService(store.Fields(), store.Reservations(), logger)
	reservationService := service.NewReservationService(store.Fields(), store.Reservations(), nil, logger)

	router := NewRouter(
		NewAuthHandler(authService, logger),
		NewFieldHandler(fieldService, availabilityService, logger),
		NewReservationHandler(reservationService, logger),
		tokens,
		logger,
	)

	return &testServer{router: router, store: store, tokens: tokens}
}

// tokenFor создаёт пользователя в хранилище и выпускает для него токен
func (ts *testServer) tokenFor(t *testing.T, email string, role model.Role) (int64, string) {
	t.Helper()

	user := &model.User{Email: email, PasswordHash: "irrelevant", Name: "Test User", Role: role}
	require.NoError(t, ts.store.Create(t.Context(), user))

	token, err := ts.tokens.Create(user)
	require.NoError(t, err)

	return user.ID, token
}

func (ts *testServer) addField(t *testing.T) int64 {
	t.Helper()

	field := &model.Field{Name: "Центральный корт", SportType: "tennis", Address: "ул. Спортивная 1", PricePerHour: 1200}
	require.NoError(t, ts.store.Fields().Create(t.Context(), field))
	return field.ID
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// futureDate возвращает завтрашнюю дату, чтобы проверка даты в сервисах проходила
func futureDate() string {
	return time.Now().AddDate(0, 0, 1).Format("2006-01-02")
}

func reservationBody(fieldID int64, start, end string) map[string]any {
	return map[string]any{
		"field_id":         fieldID,
		"reservation_date": futureDate(),
		"start_time":       start,
		"end_time":         end,
	}
}

func TestRegisterLoginFlow(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/register", "", map[string]any{
		"email":    "Player@Example.com",
		"password": "secret-password",
		"name":     "Иван",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodPost, "/api/login", "", map[string]any{
		"email":    "player@example.com",
		"password": "secret-password",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	token, ok := body["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	// Хеш пароля не попадает в ответ
	require.NotContains(t, w.Body.String(), "password")

	w = ts.do(t, http.MethodGet, "/api/my-reservations", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/register", "", map[string]any{
		"email":    "player@example.com",
		"password": "secret-password",
		"name":     "Иван",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodPost, "/api/login", "", map[string]any{
		"email":    "player@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorizedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/reservations", "", reservationBody(1, "10:00", "11:00"))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, http.MethodGet, "/api/my-reservations", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateReservation(t *testing.T) {
	ts := newTestServer(t)
	fieldID := ts.addField(t)
	_, token := ts.tokenFor(t, "player@example.com", model.RoleUser)

	w := ts.do(t, http.MethodPost, "/api/reservations", token, reservationBody(fieldID, "10:00", "11:30"))
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, "reservation created successfully", body["message"])

	res, ok := body["reservation"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "pending", res["status"])
	require.Equal(t, "10:00", res["start_time"])
	require.Equal(t, "11:30", res["end_time"])
}

func TestCreateReservationConflict(t *testing.T) {
	ts := newTestServer(t)
	fieldID := ts.addField(t)
	_, token := ts.tokenFor(t, "player@example.com", model.RoleUser)

	w := ts.do(t, http.MethodPost, "/api/reservations", token, reservationBody(fieldID, "10:00", "12:00"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodPost, "/api/reservations", token, reservationBody(fieldID, "11:00", "13:00"))
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "the selected time slot is already booked", decodeBody(t, w)["message"])

	// Смежное окно не пересекается
	w = ts.do(t, http.MethodPost, "/api/reservations", token, reservationBody(fieldID, "12:00", "13:00"))
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateReservationBadTime(t *testing.T) {
	ts := newTestServer(t)
	fieldID := ts.addField(t)
	_, token := ts.tokenFor(t, "player@example.com", model.RoleUser)

	body := reservationBody(fieldID, "10-00", "11:00")
	w := ts.do(t, http.MethodPost, "/api/reservations", token, body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestOwnerCancelFlow(t *testing.T) {
	ts := newTestServer(t)
	fieldID := ts.addField(t)
	_, token := ts.tokenFor(t, "player@example.com", model.RoleUser)

	w := ts.do(t, http.MethodPost, "/api/reservations", token, reservationBody(fieldID, "10:00", "11:00"))
	require.Equal(t, http.StatusCreated, w.Code)

	res := decodeBody(t, w)["reservation"].(map[string]any)
	id := int64(res["id"].(float64))

	w = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/reservations/%d", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "reservation canceled successfully", decodeBody(t, w)["message"])

	// Повторная отмена невозможна: бронь уже не в статусе pending
	w = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/reservations/%d", id), token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "cannot cancel reservation with status canceled", decodeBody(t, w)["message"])
}

func TestCancelForeignReservationForbidden(t *testing.T) {
	ts := newTestServer(t)
	fieldID := ts.addField(t)
	_, ownerToken := ts.tokenFor(t, "owner@example.com", model.RoleUser)
	_, otherToken := ts.tokenFor(t, "other@example.com", model.RoleUser)

	w := ts.do(t, http.MethodPost, "/api/reservations", ownerToken, reservationBody(fieldID, "10:00", "11:00"))
	require.Equal(t, http.StatusCreated, w.Code)
	res := decodeBody(t, w)["reservation"].(map[string]any)
	id := int64(res["id"].(float64))

	w = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/reservations/%d", id), otherToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminDeleteReservation(t *testing.T) {
	ts := newTestServer(t)
	fieldID := ts.addField(t)
	_, userToken := ts.tokenFor(t, "player@example.com", model.RoleUser)
	_, adminToken := ts.tokenFor(t, "admin@example.com", model.RoleAdmin)

	w := ts.do(t, http.MethodPost, "/api/reservations", userToken, reservationBody(fieldID, "10:00", "11:00"))
	require.Equal(t, http.StatusCreated, w.Code)
	res := decodeBody(t, w)["reservation"].(map[string]any)
	id := int64(res["id"].(float64))

	w = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/reservations/%d", id), adminToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// Запись удалена, слот снова свободен
	w = ts.do(t, http.MethodPost, "/api/reservations", userToken, reservationBody(fieldID, "10:00", "11:00"))
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestAdminUpdateStatus(t *testing.T) {
	ts := newTestServer(t)
	fieldID := ts.addField(t)
	_, userToken := ts.tokenFor(t, "player@example.com", model.RoleUser)
	_, adminToken := ts.tokenFor(t, "admin@example.com", model.RoleAdmin)

	w := ts.do(t, http.MethodPost, "/api/reservations", userToken, reservationBody(fieldID, "10:00", "11:00"))
	require.Equal(t, http.StatusCreated, w.Code)
	res := decodeBody(t, w)["reservation"].(map[string]any)
	id := int64(res["id"].(float64))

	path := fmt.Sprintf("/api/reservations/%d/status", id)

	w = ts.do(t, http.MethodPut, path, userToken, map[string]any{"status": "confirmed"})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, http.MethodPut, path, adminToken, map[string]any{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody(t, w)["reservation"].(map[string]any)
	require.Equal(t, "confirmed", updated["status"])

	w = ts.do(t, http.MethodPut, path, adminToken, map[string]any{"status": "unknown"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListReservationsAdminOnly(t *testing.T) {
	ts := newTestServer(t)
	_, userToken := ts.tokenFor(t, "player@example.com", model.RoleUser)
	_, adminToken := ts.tokenFor(t, "admin@example.com", model.RoleAdmin)

	w := ts.do(t, http.MethodGet, "/api/reservations", userToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, http.MethodGet, "/api/reservations", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestFieldManagementAdminOnly(t *testing.T) {
	ts := newTestServer(t)
	_, userToken := ts.tokenFor(t, "player@example.com", model.RoleUser)
	_, adminToken := ts.tokenFor(t, "admin@example.com", model.RoleAdmin)

	input := map[string]any{
		"name":           "Футбольное поле",
		"sport_type":     "football",
		"address":        "пр. Мира 10",
		"price_per_hour": 2500,
	}

	w := ts.do(t, http.MethodPost, "/api/fields", userToken, input)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, http.MethodPost, "/api/fields", adminToken, input)
	require.Equal(t, http.StatusCreated, w.Code)
	id := int64(decodeBody(t, w)["id"].(float64))

	w = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/fields/%d", id), adminToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestAvailableSlots(t *testing.T) {
	ts := newTestServer(t)
	fieldID := ts.addField(t)
	_, token := ts.tokenFor(t, "player@example.com", model.RoleUser)

	w := ts.do(t, http.MethodPost, "/api/reservations", token, reservationBody(fieldID, "09:30", "10:30"))
	require.Equal(t, http.StatusCreated, w.Code)

	// Маршрут публичный, токен не нужен
	path := fmt.Sprintf("/api/fields/%d/available-slots?date=%s", fieldID, futureDate())
	w = ts.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var slots []struct {
		Start    string `json:"start"`
		End      string `json:"end"`
		IsBooked bool   `json:"is_booked"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &slots))
	require.Len(t, slots, 14)

	for i, slot := range slots {
		wantBooked := i == 1 || i == 2
		require.Equal(t, wantBooked, slot.IsBooked, "slot %s", slot.Start)
	}
}

func TestAvailableSlotsBadDate(t *testing.T) {
	ts := newTestServer(t)
	fieldID := ts.addField(t)

	w := ts.do(t, http.MethodGet, fmt.Sprintf("/api/fields/%d/available-slots?date=01-05-2030", fieldID), "", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = ts.do(t, http.MethodGet, fmt.Sprintf("/api/fields/%d/available-slots", fieldID), "", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAvailableSlotsImage(t *testing.T) {
	ts := newTestServer(t)
	fieldID := ts.addField(t)

	path := fmt.Sprintf("/api/fields/%d/available-slots/image?date=%s", fieldID, futureDate())
	w := ts.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "image/png", w.Header().Get("Content-Type"))

	pngSignature := []byte{0x89, 'P', 'N', 'G'}
	require.True(t, bytes.HasPrefix(w.Body.Bytes(), pngSignature))
}

func TestUnknownFieldRoutes(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/fields/999", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodGet, fmt.Sprintf("/api/fields/999/available-slots?date=%s", futureDate()), "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
