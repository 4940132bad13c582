package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes bounds the request bodies Bind will read.
const MaxBodyBytes = 1 << 20

var validate = newValidator()

// newValidator reports errors under JSON field names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Bind decodes the JSON request body into dst and validates it using its
// `validate` struct tags. Pass the error to WriteValidationError.
func Bind(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return Validate(dst)
}

// Validate runs struct validation on v.
func Validate(v any) error {
	return validate.Struct(v)
}

// ToDetails converts decode and validation errors into a map[field]message.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) {
		return map[string]string{"payload": "is required"}
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) || errors.Is(err, io.ErrUnexpectedEOF) {
		return map[string]string{"payload": "invalid json"}
	}

	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return map[string]string{"payload": fmt.Sprintf("must be at most %d bytes", mbe.Limit)}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_without":
		return "is required when " + param + " is not present"
	case "email":
		return "must be a valid email"
	case "ulid":
		return "must be a valid ULID"
	case "len":
		return "must be exactly " + param + " characters long"
	case "min":
		return "must be at least " + param + " characters long"
	case "max":
		return "must be at most " + param + " characters long"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "nefield":
		return "must not be equal to " + param + " field"
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", fe.Tag(), param)
		}
		return fmt.Sprintf("validation failed for '%s'", fe.Tag())
	}
}
