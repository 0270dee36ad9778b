package httpdto

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	textkeeper_errors "textkeeper/pkg/errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// UseJSONFieldNames makes gin's validator report json tag names, so
// validation errors name the fields the client actually sent.
func UseJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
}

// BindingError converts a ShouldBindJSON failure into a ValidationError.
// A value of the wrong JSON type is reported in Invalid; malformed bodies
// produce a ValidationError without fields.
func BindingError(err error) *textkeeper_errors.ValidationError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return &textkeeper_errors.ValidationError{Fields: fields}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &textkeeper_errors.ValidationError{Invalid: []string{typeErr.Field}}
	}
	return &textkeeper_errors.ValidationError{}
}
