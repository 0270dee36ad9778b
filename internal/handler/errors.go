package handler

import (
	"context"
	"errors"
	"net/http"

	"textkeeper/internal/i18n"
	"textkeeper/internal/services"
	"textkeeper/internal/transport/httpdto"
	textkeeper_errors "textkeeper/pkg/errors"

	"github.com/gin-gonic/gin"
)

// messages selects the localized text for each outcome of one endpoint.
// Zero keys fall back to failed.
type messages struct {
	invalid  i18n.Key
	rejected i18n.Key
	notFound i18n.Key
	conflict i18n.Key
	failed   i18n.Key
}

func (m messages) forStatus(status int, err error) i18n.Key {
	key := m.failed
	switch status {
	case http.StatusBadRequest:
		key = m.invalid
	case http.StatusUnauthorized:
		key = m.rejected
	case http.StatusNotFound:
		key = m.notFound
	case http.StatusConflict:
		key = m.conflict
	default:
		if errors.Is(err, context.DeadlineExceeded) {
			return i18n.Timeout
		}
	}
	if key == "" {
		return m.failed
	}
	return key
}

// writeError maps err to a status, writes the localized error body and
// records err on the context for the error middleware to log.
func writeError(c *gin.Context, err error, m messages) {
	status := services.HTTPStatus(err)
	key := m.forStatus(status, err)
	fields := []string(nil)

	var verr *textkeeper_errors.ValidationError
	if errors.As(err, &verr) {
		fields = verr.Fields
		if len(verr.Invalid) > 0 {
			key = i18n.InvalidFieldType
			fields = verr.Invalid
		}
	}

	body := httpdto.NewErrorResponse(localize(c, key), errorCode(status))
	body.Fields = fields

	_ = c.Error(err)
	c.JSON(status, body)
}

func localize(c *gin.Context, key i18n.Key) string {
	return i18n.Localize(c.GetHeader("Accept-Language"), key)
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "INVALID_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusServiceUnavailable:
		return "UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}
