package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/coursemarket/course-api/internal/core/domain"
)

type errorBody struct {
	Message string `json:"message"`
}

type errorMapping struct {
	err     error
	status  int
	message string
}

// errorTable is checked in order with errors.Is.
var errorTable = []errorMapping{
	{domain.ErrMissingAuthHeader, http.StatusUnauthorized, "AuthHeaderNotFound"},
	{domain.ErrInvalidToken, http.StatusForbidden, "Invalid/WrongToken"},
	{domain.ErrRoleMismatch, http.StatusForbidden, "AccessForbidden"},
	{domain.ErrUnknownUser, http.StatusForbidden, "WrongUsername"},
	{domain.ErrWrongPassword, http.StatusForbidden, "WrongPassword"},
	{domain.ErrHashing, http.StatusInternalServerError, "HashingError"},
	{domain.ErrCourseNotFound, http.StatusNotFound, "Course not found"},
	{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{domain.ErrInvalidCredentials, http.StatusBadRequest, "InvalidInput"},
}

// alreadyExistsMessage depends on which store refused the username.
func alreadyExistsMessage(c echo.Context) string {
	if strings.HasPrefix(c.Path(), "/admin") {
		return "Admin already exists"
	}
	return "User already exists"
}

func resolveError(c echo.Context, err error) (int, string, bool) {
	if errors.Is(err, domain.ErrAlreadyExists) {
		return http.StatusForbidden, alreadyExistsMessage(c), true
	}
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return m.status, m.message, true
		}
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		return he.Code, msg, true
	}
	return http.StatusInternalServerError, "InternalServerError", false
}

// NewHTTPErrorHandler renders every error as {"message": ...}. Errors that map to no
// known status are logged and reported as 500 without details.
func NewHTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message, known := resolveError(c, err)
		if !known || status >= http.StatusInternalServerError {
			logger.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("route", c.Path()).
				Int("status", status).
				Msg("request failed")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, errorBody{Message: message})
		}
		if writeErr != nil {
			logger.Error().Err(writeErr).Msg("failed to write error response")
		}
	}
}
