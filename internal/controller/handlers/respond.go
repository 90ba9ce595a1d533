package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Freeeeeet/field_booking/internal/apperr"
)

// respondError отображает ошибку сервиса в HTTP-ответ.
// Внутренние ошибки не раскрываются клиенту, только логируются.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(status, gin.H{"message": "internal server error"})
		return
	}

	c.JSON(status, gin.H{"message": err.Error()})
}

// parseIDParam читает числовой path-параметр
func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperr.Validation("invalid %s", name)
	}
	return id, nil
}
