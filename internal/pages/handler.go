package pages

import (
	"html/template"
	"net/http"

	"github.com/eighttenaric/gmc-editor/assets"
	"github.com/eighttenaric/gmc-editor/internal/feed"
	"github.com/eighttenaric/gmc-editor/internal/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var templates = template.Must(template.ParseFS(assets.Files, "templates/*.html"))

type Handler struct {
	feedService     feed.Service
	optimizeEnabled bool
	logger          *zap.Logger
}

func NewHandler(feedService feed.Service, optimizeEnabled bool, logger *zap.Logger) *Handler {
	return &Handler{
		feedService:     feedService,
		optimizeEnabled: optimizeEnabled,
		logger:          logger,
	}
}

func (h *Handler) Login(c echo.Context) error {
	return render(c, http.StatusOK, "login", nil)
}

type indexData struct {
	Accounts        []string
	Selected        string
	OptimizeEnabled bool
	FeedLoaded      bool
	RowCount        int
	DiffCount       int
}

func (h *Handler) Index(c echo.Context) error {
	sess, apiErr := session.Current(c)
	if apiErr != nil {
		return c.Redirect(http.StatusFound, "/login")
	}

	data := indexData{OptimizeEnabled: h.optimizeEnabled}

	accounts, apiErr := h.feedService.Accounts(c.Request().Context(), sess)
	if apiErr != nil {
		return apiErr
	}
	data.Accounts = accounts.Accounts
	data.Selected = accounts.Selected

	if sess.HasFeed() {
		data.FeedLoaded = true
		data.RowCount = sess.Working.Len()
		data.DiffCount = len(feed.Diff(sess.Original, sess.Working))
	}

	return render(c, http.StatusOK, "index", data)
}

func render(c echo.Context, status int, name string, data any) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return templates.ExecuteTemplate(c.Response(), name, data)
}
