package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/unihub/portal/internal/api/metrics"
	"github.com/unihub/portal/internal/core/domain"
	"github.com/unihub/portal/internal/core/security"
)

// Require enforces rule against the principal attached by Auth. Denials are
// returned as domain.ErrUnauthenticated or domain.ErrForbidden for the
// error handler to render.
func Require(rule security.Rule) echo.MiddlewareFunc {
	name := rule.String()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := security.PrincipalFrom(c.Request().Context())
			if err := security.Evaluate(p, rule); err != nil {
				reason := "forbidden"
				if errors.Is(err, domain.ErrUnauthenticated) {
					reason = "unauthenticated"
				}
				metrics.PolicyDenialsTotal.WithLabelValues(name, reason).Inc()
				return err
			}
			return next(c)
		}
	}
}

// RequireRoles is shorthand for Require(security.RequireAnyRole(roles...)).
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return Require(security.RequireAnyRole(roles...))
}
