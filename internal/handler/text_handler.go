package handler

import (
	"net/http"

	"textkeeper/internal/i18n"
	"textkeeper/internal/services"
	"textkeeper/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

var (
	submitMessages = messages{invalid: i18n.SubmitMissingFields, failed: i18n.SubmitFailed}
	getMessages    = messages{invalid: i18n.GetMissingFields, notFound: i18n.GetNotFound, failed: i18n.GetFailed}
	updateMessages = messages{invalid: i18n.UpdateMissingFields, failed: i18n.UpdateFailed}
	deleteMessages = messages{invalid: i18n.DeleteMissingFields, failed: i18n.DeleteFailed}
)

// TextHandler exposes CRUD on the per-user text document.
type TextHandler struct {
	service *services.TextService
}

func NewTextHandler(service *services.TextService) *TextHandler {
	return &TextHandler{service: service}
}

// Submit handles POST /submit-text.
func (h *TextHandler) Submit(c *gin.Context) {
	var req httpdto.SubmitTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, httpdto.BindingError(err), submitMessages)
		return
	}

	if err := h.service.Submit(c.Request.Context(), req.UserID, req.Text); err != nil {
		writeError(c, err, submitMessages)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewMessageResponse(localize(c, i18n.SubmitSuccess)))
}

// Get handles GET /get-text/:userId.
func (h *TextHandler) Get(c *gin.Context) {
	fields, err := h.service.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err, getMessages)
		return
	}

	c.JSON(http.StatusOK, fields)
}

// Update handles PUT /update-text/:userId.
func (h *TextHandler) Update(c *gin.Context) {
	userID := c.Param("userId")

	var req httpdto.UpdateTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		verr := httpdto.BindingError(err)
		if userID == "" {
			verr.Fields = append([]string{"userId"}, verr.Fields...)
		}
		writeError(c, verr, updateMessages)
		return
	}

	if err := h.service.Update(c.Request.Context(), userID, req.Text); err != nil {
		writeError(c, err, updateMessages)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewMessageResponse(localize(c, i18n.UpdateSuccess)))
}

// Delete handles DELETE /delete-text/:userId.
func (h *TextHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("userId")); err != nil {
		writeError(c, err, deleteMessages)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewMessageResponse(localize(c, i18n.DeleteSuccess)))
}
