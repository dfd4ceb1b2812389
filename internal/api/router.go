package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/unihub/portal/docs"
	"github.com/unihub/portal/internal/api/handler"
	"github.com/unihub/portal/internal/api/middleware"
	"github.com/unihub/portal/internal/core/domain"
	"github.com/unihub/portal/internal/core/ports"
	"github.com/unihub/portal/internal/core/security"
)

// Services bundles the core use cases the HTTP layer exposes.
type Services struct {
	Auth       ports.AuthService
	Accounts   ports.AccountService
	Courses    ports.CourseService
	Enrollment ports.EnrollmentService
	Events     ports.EventService
	News       ports.NewsService
	Newsletter ports.NewsletterService
}

// Options carries the cross-cutting collaborators of the router.
type Options struct {
	Resolver  middleware.TokenResolver
	Readiness []handler.DependencyCheck
	Log       zerolog.Logger
	// Registerer receives the HTTP request metrics. Defaults to prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	registerer := opts.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "portal",
		Registerer: registerer,
	}))
	e.Use(middleware.Auth(opts.Resolver, opts.Log))

	var (
		adminOnly     = middleware.RequireRoles(domain.RoleAdmin)
		staff         = middleware.RequireRoles(domain.RoleAdmin, domain.RoleTeacher)
		authenticated = middleware.Require(security.Authenticated())
		authHandler   = handler.NewAuthHandler(svc.Auth)
		userHandler   = handler.NewUserHandler(svc.Accounts)
		courseHandler = handler.NewCourseHandler(svc.Courses, svc.Enrollment)
		eventHandler  = handler.NewEventHandler(svc.Events)
		newsHandler   = handler.NewNewsHandler(svc.News)
		letterHandler = handler.NewNewsletterHandler(svc.Newsletter)
		healthHandler = handler.NewHealthHandler()
		readyHandler  = handler.NewReadinessHandler(opts.Readiness...)
	)

	// --- Auth routes (public) ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/register-admin", authHandler.RegisterAdmin)
	auth.POST("/login", authHandler.Login)

	// --- Users ---
	users := e.Group("/users", staff)
	users.GET("", userHandler.List)
	users.GET("/students", userHandler.Students)
	users.GET("/:id", userHandler.Get)
	users.POST("", userHandler.Create, adminOnly)
	users.PUT("/:id", userHandler.Update, adminOnly)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Courses ---
	courses := e.Group("/courses", authenticated)
	courses.GET("", courseHandler.List)
	courses.GET("/:id", courseHandler.Get)
	courses.POST("", courseHandler.Create, adminOnly)
	courses.PUT("/:id", courseHandler.Update, adminOnly)
	courses.DELETE("/:id", courseHandler.Delete, adminOnly)
	courses.POST("/:id/students/:studentId", courseHandler.Enroll, staff)
	courses.DELETE("/:id/students/:studentId", courseHandler.RemoveStudent, adminOnly)
	courses.PUT("/:id/teacher/:teacherId", courseHandler.AssignTeacher, adminOnly)

	// --- Events ---
	events := e.Group("/events", authenticated)
	events.GET("", eventHandler.List)
	events.GET("/upcoming", eventHandler.Upcoming)
	events.GET("/past", eventHandler.Past)
	events.GET("/:id", eventHandler.Get)
	events.POST("", eventHandler.Create, adminOnly)
	events.PUT("/:id", eventHandler.Update, adminOnly)
	events.DELETE("/:id", eventHandler.Delete, adminOnly)

	// --- News ---
	news := e.Group("/news", authenticated)
	news.GET("", newsHandler.List)
	news.GET("/:id", newsHandler.Get)
	news.POST("", newsHandler.Create, adminOnly)
	news.PUT("/:id", newsHandler.Update, adminOnly)
	news.DELETE("/:id", newsHandler.Delete, adminOnly)

	// --- Newsletter ---
	letter := e.Group("/newsletter", authenticated)
	letter.POST("/subscribe", letterHandler.Subscribe)
	letter.POST("/unsubscribe", letterHandler.Unsubscribe)
	letter.POST("/send", letterHandler.Send, adminOnly)

	// --- Health, metrics and docs (public) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readyHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			} else if v.Error != nil {
				ev = log.Debug().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
