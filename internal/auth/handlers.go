package auth

import (
	pkgauth "github.com/eighttenaric/gmc-editor/pkg/auth"
	"github.com/eighttenaric/gmc-editor/pkg/cookie"
	"github.com/eighttenaric/gmc-editor/pkg/htmx"
	"github.com/eighttenaric/gmc-editor/pkg/rest"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	service    Service
	sessionTTL int
}

func NewHandler(service Service, sessionTTL int) *Handler {
	return &Handler{
		service:    service,
		sessionTTL: sessionTTL,
	}
}

// Login handles GET /auth/login: it sends the browser to the provider's
// consent screen. The flow resumes at Callback.
func (h *Handler) Login(c echo.Context) error {
	url, apiErr := h.service.AuthURL(c.Request().Context())
	if apiErr != nil {
		return apiErr
	}
	return c.Redirect(302, url)
}

// Callback handles the OAuth redirect. On success it redirects to the index
// so the authorization code never stays in visible request state; on failure
// the operator lands back on the login page to retry.
func (h *Handler) Callback(c echo.Context) error {
	if errParam := c.QueryParam("error"); errParam != "" {
		cookie.SetFlashToast(c, "danger", "authorization denied: "+errParam)
		return c.Redirect(302, "/login")
	}

	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return rest.NewBadRequestError("missing authorization code or state")
	}

	_, jwt, apiErr := h.service.Exchange(c.Request().Context(), state, code)
	if apiErr != nil {
		cookie.SetFlashToast(c, "danger", apiErr.Message)
		return c.Redirect(302, "/login")
	}

	cookie.SetSessionCookie(c, jwt, h.sessionTTL)
	return c.Redirect(302, "/")
}

func (h *Handler) Logout(c echo.Context) error {
	sessionID, apiErr := pkgauth.GetSessionID(c)
	if apiErr != nil {
		return apiErr
	}

	if err := h.service.Logout(c.Request().Context(), sessionID); err != nil {
		c.Logger().Error(err)
	}

	cookie.ClearSessionCookie(c)
	return htmx.Redirect(c, "/login")
}
