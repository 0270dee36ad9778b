package services

import (
	"errors"
	"net/http"

	textkeeper_errors "textkeeper/pkg/errors"
)

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, textkeeper_errors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, textkeeper_errors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, textkeeper_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, textkeeper_errors.ErrAlreadyExists), errors.Is(err, textkeeper_errors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, textkeeper_errors.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
