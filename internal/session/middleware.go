package session

import (
	"errors"

	pkgauth "github.com/eighttenaric/gmc-editor/pkg/auth"
	"github.com/eighttenaric/gmc-editor/pkg/rest"
	"github.com/labstack/echo/v4"
)

const contextKey = "gmc_session"

// Middleware resolves the JWT claims set by echo-jwt into the live session
// and makes it available to action handlers. A missing session means the
// credential is gone and the operator must authorize again.
func Middleware(store Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, apiErr := pkgauth.GetClaims(c)
			if apiErr != nil {
				return apiErr
			}

			sess, err := store.GetSession(c.Request().Context(), claims.SessionID)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return rest.NewUnauthorizedRequestError("session expired, sign in again")
				}
				return rest.NewInternalServerError("failed to load session")
			}

			c.Set(contextKey, sess)
			return next(c)
		}
	}
}

// Current returns the session placed on the context by Middleware.
func Current(c echo.Context) (*Session, *rest.ApiErr) {
	sess, ok := c.Get(contextKey).(*Session)
	if !ok || sess == nil {
		return nil, rest.NewUnauthorizedRequestError("not authenticated")
	}
	return sess, nil
}
