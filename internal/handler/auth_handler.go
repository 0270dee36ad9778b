// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"net/http"

	"textkeeper/internal/i18n"
	"textkeeper/internal/services"
	"textkeeper/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

var (
	registerMessages = messages{
		invalid:  i18n.RegisterMissingFields,
		conflict: i18n.RegisterConflict,
		failed:   i18n.RegisterFailed,
	}
	loginMessages = messages{
		invalid:  i18n.LoginMissingFields,
		rejected: i18n.LoginRejected,
		notFound: i18n.LoginRejected,
		failed:   i18n.LoginFailed,
	}
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	service *services.AuthService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles user registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, httpdto.BindingError(err), registerMessages)
		return
	}

	profile, err := h.service.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
	})
	if err != nil {
		writeError(c, err, registerMessages)
		return
	}

	c.JSON(http.StatusCreated, httpdto.RegisterResponse{
		Message: localize(c, i18n.RegisterSuccess),
		UID:     profile.UID,
	})
}

// Login handles user authentication.
func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, httpdto.BindingError(err), loginMessages)
		return
	}

	res, err := h.service.Login(c.Request.Context(), services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err, loginMessages)
		return
	}

	c.JSON(http.StatusOK, httpdto.LoginResponse{
		Token: res.Token,
		UID:   res.UID,
	})
}
