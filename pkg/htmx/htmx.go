package htmx

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	HXRequest      = "HX-Request"
	HXTrigger      = "HX-Trigger"
	HXRedirect     = "HX-Redirect"
	HXReswap       = "HX-Reswap"
	HXRetarget     = "HX-Retarget"
	HXRefresh      = "HX-Refresh"
	HXTriggerAfter = "HX-Trigger-After-Settle"
)

// IsHTMXRequest checks if the request is from HTMX
func IsHTMXRequest(c echo.Context) bool {
	return c.Request().Header.Get(HXRequest) == "true"
}

// Redirect performs HTMX-aware redirect
func Redirect(c echo.Context, url string) error {
	if IsHTMXRequest(c) {
		c.Response().Header().Set(HXRedirect, url)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusFound, url)
}

// SetTrigger sets the HX-Trigger header
func SetTrigger(c echo.Context, trigger string) {
	c.Response().Header().Set(HXTrigger, trigger)
}

// SetReswap sets the HX-Reswap header
func SetReswap(c echo.Context, value string) {
	c.Response().Header().Set(HXReswap, value)
}

// Refresh triggers a full page refresh
func Refresh(c echo.Context) error {
	c.Response().Header().Set(HXRefresh, "true")
	return c.NoContent(http.StatusOK)
}

// TriggerToast sends a toast notification via HX-Trigger header
// level can be: "success", "danger", "warning", "info"
func TriggerToast(c echo.Context, level, message string) {
	trigger := fmt.Sprintf(`{"makeToast": {"level": "%s", "message": "%s"}}`, level, message)
	c.Response().Header().Set(HXTrigger, trigger)
}

// TriggerToastAfterSettle sends a toast notification after HTMX settles the DOM
func TriggerToastAfterSettle(c echo.Context, level, message string) {
	trigger := fmt.Sprintf(`{"makeToast": {"level": "%s", "message": "%s"}}`, level, message)
	c.Response().Header().Set(HXTriggerAfter, trigger)
}

// RedirectWithToast performs a redirect and shows a toast on the target page
func RedirectWithToast(c echo.Context, url, level, message string) error {
	if IsHTMXRequest(c) {
		TriggerToastAfterSettle(c, level, message)
		c.Response().Header().Set(HXRedirect, url)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusFound, url)
}
