package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/apierror"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/auth"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/cache"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/config"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/timetable"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/http/handlers"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/http/middlewares"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/observability"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/rbac"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "oc-2-day-api"

type Deps struct {
	Config   config.Config
	Stores   Stores
	Tokens   *auth.Manager
	Verifier *auth.Verifier

	// optional
	Prom     *observability.Prom
	Gatherer prometheus.Gatherer
	Checks   map[string]handlers.Check
	Policy   rbac.Policy
}

func NewRouter(d Deps) *gin.Engine {
	if !d.Config.IsLocal() {
		gin.SetMode(gin.ReleaseMode)
	}
	if d.Policy == nil {
		d.Policy = rbac.DefaultPolicy()
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(middlewares.RequestID())
	r.Use(gin.CustomRecovery(recovered))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(d.Config.CORSOrigins))
	if d.Config.OTELEnabled {
		r.Use(otelgin.Middleware(serviceName))
	}
	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.MaxBodyBytes(d.Config.MaxBodyBytes))
	r.Use(middlewares.RequireJSON())

	r.NoRoute(func(c *gin.Context) {
		handlers.RespondError(c, apierror.New(apierror.RouteNotFound, "Route not found."))
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.RespondError(c, apierror.New(apierror.MethodNotAllowed, "Method not allowed."))
	})

	// health and metrics stay outside auth
	checks := map[string]handlers.Check{"store": d.Stores.Ping}
	for name, fn := range d.Checks {
		checks[name] = fn
	}
	health := handlers.NewHealthHandler(withTimeout(checks, time.Second))
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	s := d.Stores
	notify := handlers.NewNotifier(s.Jobs)

	authH := handlers.NewAuthHandler(s.Accounts, d.Tokens, d.Verifier)
	students := handlers.NewStudentsHandler(s.Students, s.Marks, s.Attendance, s.Accounts)
	teachers := handlers.NewTeachersHandler(s.Teachers)
	marks := handlers.NewMarksHandler(s.Marks, s.Students, notify)
	attendance := handlers.NewAttendanceHandler(s.Attendance, s.Students, notify)
	fees := handlers.NewFeesHandler(s.Fees, s.Students)
	events := handlers.NewEventsHandler(s.Events)
	clubs := handlers.NewClubsHandler(s.Clubs)
	announcements := handlers.NewAnnouncementsHandler(s.Announcements, notify)
	requests := handlers.NewRequestsHandler(s.Requests, notify)
	notifications := handlers.NewNotificationsHandler(s.Notifications)
	timetables := handlers.NewTimetableHandler(s.Timetable, cache.New[[]timetable.Row](30 * time.Second))

	loginLimiter := middlewares.NewRateLimiter(d.Config.LoginRatePerMin)
	r.POST("/auth/login", loginLimiter.RateLimiterMiddleware(middlewares.KeyByIP), authH.Login)

	// per account, so a shared campus NAT does not throttle everyone
	requestLimiter := middlewares.NewRateLimiter(d.Config.RequestRatePerMin)

	authMw := middlewares.NewAuthMiddleware(d.Verifier)
	api := r.Group("/")
	api.Use(authMw.RequireAuth())
	api.Use(middlewares.Authorize(d.Policy))
	api.Use(middlewares.ResolveScope(s.Students))

	api.GET("/auth/me", authH.Me)
	api.POST("/auth/logout", authH.Logout)

	api.GET("/students", students.List)
	api.GET("/students/me", students.Me)
	api.GET("/students/:id", students.Get)
	api.PUT("/students/:id", students.Update)

	api.GET("/teachers", teachers.List)
	api.GET("/teachers/me", teachers.Me)
	api.GET("/teachers/:id", teachers.Get)

	api.GET("/marks", marks.List)
	api.POST("/marks", marks.Create)
	api.PUT("/marks/:id", marks.Update)

	api.GET("/attendance", attendance.List)
	api.POST("/attendance", attendance.Create)
	api.PATCH("/attendance/:id", attendance.Update)

	api.GET("/fees", fees.ListMine)
	api.GET("/fees/all", fees.ListAll)
	api.PATCH("/fees/:id/pay", fees.Pay)

	api.GET("/events", events.ListEvents)
	api.GET("/events/:id", events.GetEventById)
	api.POST("/events", events.CreateEvent)
	api.PUT("/events/:id", events.UpdateEvent)
	api.DELETE("/events/:id", events.DeleteEvent)

	api.GET("/clubs", clubs.List)
	api.GET("/clubs/:id", clubs.Get)
	api.POST("/clubs", clubs.Create)
	api.PUT("/clubs/:id", clubs.Update)
	api.DELETE("/clubs/:id", clubs.Delete)

	api.GET("/announcements", announcements.List)
	api.GET("/announcements/:id", announcements.Get)
	api.POST("/announcements", announcements.Create)
	api.DELETE("/announcements/:id", announcements.Delete)

	api.GET("/requests", requests.List)
	api.GET("/requests/mine", requests.Mine)
	api.POST("/requests", requestLimiter.RateLimiterMiddleware(middlewares.KeyByUserOrIP), requests.Create)
	api.PATCH("/requests/:id", requests.UpdateStatus)
	api.DELETE("/requests/:id", requests.Delete)

	api.GET("/notifications", notifications.List)
	api.PATCH("/notifications/read-all", notifications.MarkAllRead)
	api.PATCH("/notifications/:id/read", notifications.MarkRead)

	api.GET("/timetable", timetables.Mine)
	api.GET("/timetable/:role", timetables.ByRole)
	api.PUT("/timetable/:role/:day", timetables.Upsert)

	return r
}

func recovered(c *gin.Context, err any) {
	slog.ErrorContext(c.Request.Context(), "panic recovered",
		"panic", err,
		"path", c.Request.URL.Path,
		"request_id", middlewares.RequestIDFrom(c),
	)
	handlers.RespondError(c, apierror.New(apierror.Internal, "Internal server error."))
}

func withTimeout(checks map[string]handlers.Check, d time.Duration) map[string]handlers.Check {
	out := make(map[string]handlers.Check, len(checks))
	for name, fn := range checks {
		if fn == nil {
			continue
		}
		out[name] = func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return fn(ctx)
		}
	}
	return out
}
