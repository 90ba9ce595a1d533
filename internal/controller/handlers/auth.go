package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Freeeeeet/field_booking/internal/apperr"
	"github.com/Freeeeeet/field_booking/internal/service"
)

type AuthHandler struct {
	auth   *service.AuthService
	logger *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Register POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, h.logger, apperr.Validation("invalid request body"))
		return
	}

	user, err := h.auth.Register(c.Request.Context(), in.Email, in.Password, in.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registration successful",
		"user":    user,
	})
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, h.logger, apperr.Validation("invalid request body"))
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		// Неверные учётные данные — это 401, а не 403
		if apperr.KindOf(err) == apperr.KindAuthorization {
			c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
			return
		}
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

// ListUsers GET /api/users, только для администратора
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.auth.ListUsers(c.Request.Context(), identityFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, users)
}
