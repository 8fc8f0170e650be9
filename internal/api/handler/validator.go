package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// InvalidInput is the message sent for payloads that fail binding or validation.
const InvalidInput = "InvalidInput"

// requestValidator wraps go-playground/validator so Echo can call c.Validate(req).
type requestValidator struct {
	v *validator.Validate
}

// NewValidator returns a validator ready to be assigned to echo.Echo.Validator.
func NewValidator() echo.Validator {
	return &requestValidator{v: validator.New()}
}

// Validate reports every failing field in one error.
func (rv *requestValidator) Validate(i any) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	if fe.Tag() == "required" {
		return field + " is required"
	}
	return fmt.Sprintf("%s failed %s", field, fe.Tag())
}

// badRequest keeps the client-facing message stable and the cause internal.
func badRequest(cause error) error {
	return echo.NewHTTPError(http.StatusBadRequest, InvalidInput).SetInternal(cause)
}
