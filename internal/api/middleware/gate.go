package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/coursemarket/course-api/internal/api/metrics"
	"github.com/coursemarket/course-api/internal/core/domain"
	"github.com/coursemarket/course-api/internal/core/ports"
)

// ClaimsKey is the echo context key holding the verified *domain.Claims.
const ClaimsKey = "claims"

// Gate admits a request only when it carries a valid bearer token issued for
// role. Rejections surface as domain errors for the central error handler.
func Gate(tokens ports.TokenService, role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.GateRejectionsTotal.WithLabelValues(role.String(), "missing_header").Inc()
				return domain.ErrMissingAuthHeader
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				metrics.GateRejectionsTotal.WithLabelValues(role.String(), "invalid_token").Inc()
				return domain.ErrInvalidToken
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.GateRejectionsTotal.WithLabelValues(role.String(), "invalid_token").Inc()
				if errors.Is(err, domain.ErrInvalidToken) {
					return err
				}
				return domain.ErrInvalidToken
			}

			if claims.Role != role {
				metrics.GateRejectionsTotal.WithLabelValues(role.String(), "role_mismatch").Inc()
				return domain.ErrRoleMismatch
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims stored by Gate, or nil when the request did
// not pass through it.
func ClaimsFrom(c echo.Context) *domain.Claims {
	claims, _ := c.Get(ClaimsKey).(*domain.Claims)
	return claims
}
