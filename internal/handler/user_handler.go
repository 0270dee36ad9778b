package handler

import (
	"net/http"

	"textkeeper/internal/i18n"
	"textkeeper/internal/services"
	"textkeeper/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

var usernameMessages = messages{
	invalid:  i18n.UsernameMissingFields,
	notFound: i18n.UsernameNotFound,
	conflict: i18n.UsernameConflict,
	failed:   i18n.UsernameFailed,
}

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// UpdateUsername handles PUT /update-username.
func (h *UserHandler) UpdateUsername(c *gin.Context) {
	var req httpdto.UpdateUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, httpdto.BindingError(err), usernameMessages)
		return
	}

	if err := h.service.UpdateUsername(c.Request.Context(), req.UserID, req.NewUsername); err != nil {
		writeError(c, err, usernameMessages)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewMessageResponse(localize(c, i18n.UsernameSuccess)))
}
