package httpdto

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	textkeeper_errors "textkeeper/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindSubmit(t *testing.T, body string) *textkeeper_errors.ValidationError {
	t.Helper()
	gin.SetMode(gin.TestMode)
	UseJSONFieldNames()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/submit-text", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req SubmitTextRequest
	err := c.ShouldBindJSON(&req)
	require.Error(t, err)
	return BindingError(err)
}

func TestBindingError(t *testing.T) {
	t.Run("MissingFieldsUseJSONNames", func(t *testing.T) {
		verr := bindSubmit(t, `{}`)
		assert.Equal(t, []string{"userId", "text"}, verr.Fields)
		assert.Empty(t, verr.Invalid)
	})

	t.Run("WrongTypeIsNotReportedAsMissing", func(t *testing.T) {
		verr := bindSubmit(t, `{"userId":"u1","text":123}`)
		assert.Empty(t, verr.Fields)
		assert.Equal(t, []string{"text"}, verr.Invalid)
		assert.Equal(t, "invalid field types: text", verr.Error())
	})

	t.Run("Malformed", func(t *testing.T) {
		verr := bindSubmit(t, `{"userId":`)
		assert.Empty(t, verr.Fields)
		assert.Empty(t, verr.Invalid)
		assert.True(t, errors.Is(verr, textkeeper_errors.ErrInvalidInput))
	})
}
