package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/unihub/portal/internal/api/metrics"
	"github.com/unihub/portal/internal/core/domain"
	"github.com/unihub/portal/internal/core/security"
)

// PublicPaths are skipped by Auth entirely: no token is read and no
// principal is attached.
var PublicPaths = []string{"/auth/", "/swagger/", "/health", "/metrics"}

// TokenResolver turns a bearer token into the current principal.
type TokenResolver interface {
	ResolveFromToken(ctx context.Context, token string) (*security.Principal, error)
}

// Auth establishes the caller's identity. When the Authorization header
// carries a bearer token that resolves, the principal is attached to the
// request context. It never rejects a request: a missing or bad token only
// means no principal, and the route's policy decides what that implies.
func Auth(resolver TokenResolver, log zerolog.Logger, public ...string) echo.MiddlewareFunc {
	if len(public) == 0 {
		public = PublicPaths
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if isPublic(req.URL.Path, public) {
				return next(c)
			}

			token, ok := bearerToken(req.Header.Get(echo.HeaderAuthorization))
			if !ok {
				return next(c)
			}

			p, err := resolver.ResolveFromToken(req.Context(), token)
			if err != nil {
				metrics.TokenRejectionsTotal.Inc()
				ev := log.Debug()
				if !errors.Is(err, domain.ErrUnauthenticated) {
					ev = log.Warn()
				}
				ev.Err(err).Str("path", req.URL.Path).Msg("bearer token not accepted")
				return next(c)
			}

			c.SetRequest(req.WithContext(security.WithPrincipal(req.Context(), p)))
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func isPublic(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
