package cookie

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const SessionCookieName = "gmc_session"

func New(name string, value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
		Expires:  expires,
		MaxAge:   maxAge,
	}
}

func SetSessionCookie(c echo.Context, token string, expSeconds int) {
	expires := time.Now().Add(time.Duration(expSeconds) * time.Second)
	c.SetCookie(New(SessionCookieName, token, expires, expSeconds))
}

func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// SetFlashToast sets a flash toast message that will be displayed on the next page load
// The cookie is readable by JavaScript so the toast script can consume it
func SetFlashToast(c echo.Context, level, message string) {
	c.SetCookie(&http.Cookie{
		Name:     "flash_toast",
		Value:    level + "|" + message,
		Path:     "/",
		HttpOnly: false, // Must be readable by JavaScript
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60,
	})
}
