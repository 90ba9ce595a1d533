package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Freeeeeet/field_booking/internal/auth"
)

// NewRouter собирает маршруты API.
// Аутентификация живёт в middleware, авторизация — в политике сервисов,
// поэтому админские маршруты не выделены в отдельную группу.
func NewRouter(
	authHandler *AuthHandler,
	fieldHandler *FieldHandler,
	reservationHandler *ReservationHandler,
	tokens *auth.TokenManager,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger))

	api := router.Group("/api")

	// Публичные маршруты
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/fields", fieldHandler.List)
	api.GET("/fields/:id", fieldHandler.Get)
	api.GET("/fields/:id/available-slots", fieldHandler.AvailableSlots)
	api.GET("/fields/:id/available-slots/image", fieldHandler.AvailableSlotsImage)

	// Маршруты с авторизацией
	authorized := api.Group("", JWTAuth(tokens))
	authorized.POST("/reservations", reservationHandler.Create)
	authorized.GET("/my-reservations", reservationHandler.MyReservations)
	authorized.DELETE("/reservations/:id", reservationHandler.Remove)
	authorized.GET("/reservations", reservationHandler.List)
	authorized.PUT("/reservations/:id/status", reservationHandler.UpdateStatus)
	authorized.POST("/fields", fieldHandler.Create)
	authorized.PUT("/fields/:id", fieldHandler.Update)
	authorized.DELETE("/fields/:id", fieldHandler.Delete)
	authorized.GET("/users", authHandler.ListUsers)

	return router
}
