package feed

import (
	"net/http"

	"github.com/eighttenaric/gmc-editor/internal/session"
	"github.com/eighttenaric/gmc-editor/pkg/htmx"
	"github.com/eighttenaric/gmc-editor/pkg/rest"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Accounts handles GET /feed/accounts
func (h *Handler) Accounts(c echo.Context) error {
	sess, apiErr := session.Current(c)
	if apiErr != nil {
		return apiErr
	}

	result, apiErr := h.service.Accounts(c.Request().Context(), sess)
	if apiErr != nil {
		return apiErr
	}

	return c.JSON(http.StatusOK, result)
}

// SelectAccount handles POST /feed/account
func (h *Handler) SelectAccount(c echo.Context) error {
	sess, apiErr := session.Current(c)
	if apiErr != nil {
		return apiErr
	}

	var input SelectAccountInput
	if err := c.Bind(&input); err != nil {
		return rest.NewUnprocessableEntity("failed to parse request")
	}

	if apiErr := h.service.SelectAccount(c.Request().Context(), sess, input); apiErr != nil {
		return apiErr
	}

	if htmx.IsHTMXRequest(c) {
		return htmx.Redirect(c, "/")
	}
	return c.NoContent(http.StatusNoContent)
}

// Fetch handles POST /feed/fetch — the "Fetch & Backup Feed" action.
func (h *Handler) Fetch(c echo.Context) error {
	sess, apiErr := session.Current(c)
	if apiErr != nil {
		return apiErr
	}

	result, apiErr := h.service.FetchAndBackup(c.Request().Context(), sess)
	if apiErr != nil {
		return apiErr
	}

	if htmx.IsHTMXRequest(c) {
		htmx.TriggerToastAfterSettle(c, "success", "Feed fetched and backed up")
		return htmx.Refresh(c)
	}
	return c.JSON(http.StatusOK, result)
}

// Optimize handles POST /feed/optimize — the "AI Optimize Attributes" action.
func (h *Handler) Optimize(c echo.Context) error {
	sess, apiErr := session.Current(c)
	if apiErr != nil {
		return apiErr
	}

	var input OptimizeInput
	if err := c.Bind(&input); err != nil {
		return rest.NewUnprocessableEntity("failed to parse request")
	}

	result, apiErr := h.service.Optimize(c.Request().Context(), sess, input)
	if apiErr != nil {
		return apiErr
	}

	if htmx.IsHTMXRequest(c) {
		if result.Skipped {
			htmx.TriggerToast(c, "warning", "OpenAI key missing; optimizations were skipped")
			return c.NoContent(http.StatusOK)
		}
		htmx.TriggerToastAfterSettle(c, "success", "Attributes optimized")
		return htmx.Refresh(c)
	}
	return c.JSON(http.StatusOK, result)
}

// Report handles GET /feed/report — the "Show QA Report" action.
func (h *Handler) Report(c echo.Context) error {
	sess, apiErr := session.Current(c)
	if apiErr != nil {
		return apiErr
	}

	result, apiErr := h.service.Report(sess)
	if apiErr != nil {
		return apiErr
	}

	if htmx.IsHTMXRequest(c) {
		return c.HTML(http.StatusOK, result.HTML)
	}
	return c.JSON(http.StatusOK, result)
}

// EmailReport handles POST /feed/report/email — the "Email QA Report" action.
func (h *Handler) EmailReport(c echo.Context) error {
	sess, apiErr := session.Current(c)
	if apiErr != nil {
		return apiErr
	}

	changes, apiErr := h.service.EmailReport(c.Request().Context(), sess)
	if apiErr != nil {
		return apiErr
	}

	if htmx.IsHTMXRequest(c) {
		htmx.TriggerToast(c, "success", "Sent QA Report")
		return c.NoContent(http.StatusOK)
	}
	return c.JSON(http.StatusOK, map[string]int{"changes": changes})
}

// Sync handles POST /feed/sync — the "Sync to GMC" action.
func (h *Handler) Sync(c echo.Context) error {
	sess, apiErr := session.Current(c)
	if apiErr != nil {
		return apiErr
	}

	result, apiErr := h.service.Sync(c.Request().Context(), sess)
	if apiErr != nil {
		return apiErr
	}

	if htmx.IsHTMXRequest(c) {
		if len(result.Failed) > 0 {
			htmx.TriggerToast(c, "warning", "Sync finished with failures")
		} else {
			htmx.TriggerToast(c, "success", "Synced to GMC")
		}
		return c.NoContent(http.StatusOK)
	}
	return c.JSON(http.StatusOK, result)
}

// UpdateRow handles PUT /feed/rows/:id — manual edit of one working row.
func (h *Handler) UpdateRow(c echo.Context) error {
	sess, apiErr := session.Current(c)
	if apiErr != nil {
		return apiErr
	}

	productID := c.Param("id")
	if productID == "" {
		return rest.NewBadRequestError("product id is required")
	}

	var input UpdateRowInput
	if err := c.Bind(&input); err != nil {
		return rest.NewUnprocessableEntity("failed to parse request")
	}

	if apiErr := h.service.UpdateRow(c.Request().Context(), sess, productID, input); apiErr != nil {
		return apiErr
	}

	if htmx.IsHTMXRequest(c) {
		htmx.TriggerToast(c, "success", "Row updated")
		return c.NoContent(http.StatusOK)
	}
	return c.NoContent(http.StatusNoContent)
}
