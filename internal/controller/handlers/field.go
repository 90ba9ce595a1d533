package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Freeeeeet/field_booking/internal/apperr"
	"github.com/Freeeeeet/field_booking/internal/model"
	"github.com/Freeeeeet/field_booking/internal/render"
	"github.com/Freeeeeet/field_booking/internal/service"
)

type FieldHandler struct {
	fields       *service.FieldService
	availability *service.AvailabilityService
	logger       *zap.Logger
}

func NewFieldHandler(fields *service.FieldService, availability *service.AvailabilityService, logger *zap.Logger) *FieldHandler {
	return &FieldHandler{fields: fields, availability: availability, logger: logger}
}

type fieldInput struct {
	Name         string  `json:"name"`
	SportType    string  `json:"sport_type"`
	Address      string  `json:"address"`
	Description  string  `json:"description"`
	PricePerHour float64 `json:"price_per_hour"`
}

// List GET /api/fields
func (h *FieldHandler) List(c *gin.Context) {
	fields, err := h.fields.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, fields)
}

// Get GET /api/fields/:id
func (h *FieldHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	field, err := h.fields.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, field)
}

// Create POST /api/fields, только для администратора
func (h *FieldHandler) Create(c *gin.Context) {
	var in fieldInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, h.logger, apperr.Validation("invalid request body"))
		return
	}

	field := &model.Field{
		Name:         in.Name,
		SportType:    in.SportType,
		Address:      in.Address,
		Description:  in.Description,
		PricePerHour: in.PricePerHour,
	}

	if err := h.fields.Create(c.Request.Context(), identityFrom(c), field); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, field)
}

// Update PUT /api/fields/:id, только для администратора
func (h *FieldHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var in fieldInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, h.logger, apperr.Validation("invalid request body"))
		return
	}

	field := &model.Field{
		ID:           id,
		Name:         in.Name,
		SportType:    in.SportType,
		Address:      in.Address,
		Description:  in.Description,
		PricePerHour: in.PricePerHour,
	}

	if err := h.fields.Update(c.Request.Context(), identityFrom(c), field); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, field)
}

// Delete DELETE /api/fields/:id, только для администратора
func (h *FieldHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.fields.Delete(c.Request.Context(), identityFrom(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AvailableSlots GET /api/fields/:id/available-slots?date=YYYY-MM-DD
func (h *FieldHandler) AvailableSlots(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	slots, err := h.availability.ComputeSlots(c.Request.Context(), id, c.Query("date"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, slots)
}

// AvailableSlotsImage GET /api/fields/:id/available-slots/image?date=YYYY-MM-DD
func (h *FieldHandler) AvailableSlotsImage(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	date := c.Query("date")

	field, err := h.fields.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	slots, err := h.availability.ComputeSlots(c.Request.Context(), id, date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	png, err := render.DayImage(field.Name, date, slots)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
