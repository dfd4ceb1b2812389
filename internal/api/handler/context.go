package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/unihub/portal/internal/core/domain"
	"github.com/unihub/portal/internal/core/security"
)

// principal returns the caller attached by the Auth middleware, or
// domain.ErrUnauthenticated when the request is anonymous.
func principal(c echo.Context) (*security.Principal, error) {
	p := security.PrincipalFrom(c.Request().Context())
	if p == nil {
		return nil, domain.ErrUnauthenticated
	}
	return p, nil
}
