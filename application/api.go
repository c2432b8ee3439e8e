package application

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/eighttenaric/gmc-editor/assets"
	configs "github.com/eighttenaric/gmc-editor/configs"
	authPkg "github.com/eighttenaric/gmc-editor/internal/auth"
	"github.com/eighttenaric/gmc-editor/internal/email"
	gmailmail "github.com/eighttenaric/gmc-editor/internal/email/gmail"
	"github.com/eighttenaric/gmc-editor/internal/email/mailjet"
	"github.com/eighttenaric/gmc-editor/internal/email/smtp"
	"github.com/eighttenaric/gmc-editor/internal/feed"
	"github.com/eighttenaric/gmc-editor/internal/merchant"
	"github.com/eighttenaric/gmc-editor/internal/optimize"
	"github.com/eighttenaric/gmc-editor/internal/pages"
	"github.com/eighttenaric/gmc-editor/internal/scheduler"
	"github.com/eighttenaric/gmc-editor/internal/session"
	pkgauth "github.com/eighttenaric/gmc-editor/pkg/auth"
	"github.com/eighttenaric/gmc-editor/pkg/notification"
	"github.com/eighttenaric/gmc-editor/pkg/notification/twilio"
	"github.com/eighttenaric/gmc-editor/pkg/rest"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Application struct {
	Config   configs.Configs
	Logger   *zap.Logger
	Sessions session.Store
}

func (app *Application) Mount() http.Handler {
	oauthCfg, err := authPkg.NewOAuthConfig(&app.Config)
	if err != nil {
		app.Logger.Fatal("failed to build oauth configuration", zap.Error(err))
	}

	if app.Config.OpenAIAPIKey == "" {
		app.Logger.Warn("no OpenAI key: AI optimization disabled")
	}

	if err := os.MkdirAll(app.Config.BackupDir, 0o755); err != nil {
		app.Logger.Fatal("failed to create backup directory", zap.Error(err))
	}

	// Mail providers: the report goes out through the configured provider;
	// alert mail needs provider-held credentials, so Gmail (operator token)
	// cannot carry it.
	var reportMailer email.SessionSender
	var alertMailer email.Email
	switch app.Config.MailProvider {
	case "smtp":
		s := smtp.New(
			app.Config.EmailFrom,
			app.Config.SMTPHost,
			app.Config.SMTPUser,
			app.Config.SMTPPass,
			app.Config.SMTPPort,
		)
		reportMailer, alertMailer = s, s
	case "mailjet":
		m := mailjet.New(
			app.Config.MailjetAPIKey,
			app.Config.MailjetAPISecret,
			app.Config.EmailFrom,
			"GMC Feed Editor",
		)
		reportMailer, alertMailer = m, m
	default:
		reportMailer = gmailmail.New(oauthCfg)
	}

	var notifier notification.Notification
	if app.Config.TwilioAccountSID != "" && app.Config.TwilioAuthToken != "" && app.Config.TwilioNumber != "" {
		client := twilio.InitClient(app.Config.TwilioAccountSID, app.Config.TwilioAuthToken)
		notifier = twilio.NewSMS(app.Config.TwilioNumber, client)
	}

	e := echo.New()
	e.StaticFS("/assets", assets.Files)
	e.HTTPErrorHandler = app.CustomErrorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000"},
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
		},
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogLatency:  true,
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			status := v.Status
			if v.Error != nil {
				switch err := v.Error.(type) {
				case *echo.HTTPError:
					status = err.Code
				case *rest.ApiErr:
					status = err.Code
				}
			}

			if status >= 500 {
				app.Logger.Error("request",
					zap.Duration("latency", v.Latency),
					zap.Int("status", status),
					zap.String("uri", v.URI),
					zap.String("method", v.Method),
				)
				return nil
			}

			if status >= 400 {
				app.Logger.Warn("request",
					zap.Duration("latency", v.Latency),
					zap.Int("status", status),
					zap.String("uri", v.URI),
					zap.String("method", v.Method),
				)
				return nil
			}

			app.Logger.Info("request",
				zap.Duration("latency", v.Latency),
				zap.Int("status", status),
				zap.String("uri", v.URI),
				zap.String("method", v.Method),
			)
			return nil
		},
	}))

	jwtConfig := echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(pkgauth.JWTCustomClaims)
		},
		SigningKey:  []byte(app.Config.JWTSecret),
		TokenLookup: "cookie:gmc_session",
	}

	// Initialize services and handlers
	authService := authPkg.NewService(
		oauthCfg,
		app.Sessions,
		app.Config.JWTSecret,
		app.Config.SessionTTL,
		app.Logger,
	)
	authHandler := authPkg.NewHandler(authService, app.Config.SessionTTL)

	catalog := merchant.NewFactory(oauthCfg)
	fetcher := optimize.NewSnippetFetcher(app.Logger)
	optimizer := optimize.New(
		app.Config.OpenAIAPIKey,
		app.Config.OpenAIModel,
		app.Config.RateLimitDelay,
		fetcher,
		app.Logger,
	)

	feedService := feed.NewService(
		app.Sessions,
		catalog,
		optimizer,
		reportMailer,
		notifier,
		app.Config.SyncAlertPhone,
		app.Config.EmailTo,
		app.Config.BackupDir,
		app.Config.SessionTTL,
		app.Logger,
	)
	feedHandler := feed.NewHandler(feedService)

	pageHandler := pages.NewHandler(feedService, optimizer.Enabled(), app.Logger)

	// Backup retention sweep
	sweep := scheduler.NewScheduler(
		app.Config.BackupDir,
		app.Config.BackupRetentionDays,
		app.Logger,
		alertMailer,
		app.Config.AlertRecipients,
	)
	if err := sweep.Start(app.Config.CronExpression); err != nil {
		app.Logger.Fatal("failed to start scheduler", zap.Error(err))
	}

	// Public routes
	e.GET("/login", pageHandler.Login)
	e.GET("/auth/login", authHandler.Login)
	e.GET("/auth/callback", authHandler.Callback)

	// Protected routes (session JWT required)
	protected := e.Group("")
	protected.Use(echojwt.WithConfig(jwtConfig))
	protected.Use(session.Middleware(app.Sessions))

	protected.GET("/", pageHandler.Index)
	protected.POST("/logout", authHandler.Logout)

	protected.GET("/feed/accounts", feedHandler.Accounts)
	protected.POST("/feed/account", feedHandler.SelectAccount)
	protected.POST("/feed/fetch", feedHandler.Fetch)
	protected.POST("/feed/optimize", feedHandler.Optimize)
	protected.GET("/feed/report", feedHandler.Report)
	protected.POST("/feed/report/email", feedHandler.EmailReport)
	protected.POST("/feed/sync", feedHandler.Sync)
	protected.PUT("/feed/rows/:id", feedHandler.UpdateRow)

	return e
}

func (app *Application) Run(h http.Handler) error {
	srv := &http.Server{
		Addr:         app.Config.WebServerPort,
		Handler:      h,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	log.Printf("server has started at addr %s", app.Config.WebServerPort)

	return srv.ListenAndServe()
}
