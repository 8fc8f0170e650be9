package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/coursemarket/course-api/internal/api/middleware"
	"github.com/coursemarket/course-api/internal/core/domain"
)

// currentUsername returns the username the token gate verified for this
// request. A missing claim set means the route was mounted without a gate.
func currentUsername(c echo.Context) (string, error) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil || claims.Username == "" {
		return "", domain.ErrMissingAuthHeader
	}
	return claims.Username, nil
}
