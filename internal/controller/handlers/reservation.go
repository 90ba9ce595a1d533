package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Freeeeeet/field_booking/internal/apperr"
	"github.com/Freeeeeet/field_booking/internal/model"
	"github.com/Freeeeeet/field_booking/internal/schedule"
	"github.com/Freeeeeet/field_booking/internal/service"
)

type ReservationHandler struct {
	reservations *service.ReservationService
	logger       *zap.Logger
}

func NewReservationHandler(reservations *service.ReservationService, logger *zap.Logger) *ReservationHandler {
	return &ReservationHandler{reservations: reservations, logger: logger}
}

// Create POST /api/reservations
func (h *ReservationHandler) Create(c *gin.Context) {
	var in struct {
		FieldID   int64  `json:"field_id"`
		Date      string `json:"reservation_date"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, h.logger, apperr.Validation("invalid request body"))
		return
	}

	start, err := schedule.ParseTimeOfDay(in.StartTime)
	if err != nil {
		respondError(c, h.logger, apperr.Validation("%s", err))
		return
	}

	end, err := schedule.ParseTimeOfDay(in.EndTime)
	if err != nil {
		respondError(c, h.logger, apperr.Validation("%s", err))
		return
	}

	res, err := h.reservations.Admit(c.Request.Context(), identityFrom(c), in.FieldID, in.Date, start, end)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "reservation created successfully",
		"reservation": res,
	})
}

// MyReservations GET /api/my-reservations
func (h *ReservationHandler) MyReservations(c *gin.Context) {
	reservations, err := h.reservations.ListMine(c.Request.Context(), identityFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// Remove DELETE /api/reservations/:id.
// Администратор удаляет запись, владелец отменяет бронь в статусе pending.
func (h *ReservationHandler) Remove(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	outcome, err := h.reservations.Remove(c.Request.Context(), identityFrom(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if outcome == service.RemoveDeleted {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reservation canceled successfully"})
}

// List GET /api/reservations, только для администратора
func (h *ReservationHandler) List(c *gin.Context) {
	reservations, err := h.reservations.ListAll(c.Request.Context(), identityFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// UpdateStatus PUT /api/reservations/:id/status, только для администратора
func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var in struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, h.logger, apperr.Validation("invalid request body"))
		return
	}

	res, err := h.reservations.SetStatus(c.Request.Context(), identityFrom(c), id, model.ReservationStatus(in.Status))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "reservation status updated successfully",
		"reservation": res,
	})
}
