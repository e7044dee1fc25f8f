package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/actorctx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "campus"

// Prom holds every collector the api and worker export.
type Prom struct {
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight *prometheus.GaugeVec
	Forbidden    *prometheus.CounterVec
	Logins       *prometheus.CounterVec

	DBQueryDuration *prometheus.HistogramVec
	DBErrors        *prometheus.CounterVec

	JobDuration  *prometheus.HistogramVec
	JobResults   *prometheus.CounterVec
	JobsInFlight prometheus.Gauge
}

func NewProm(reg prometheus.Registerer) *Prom {
	p := &Prom{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by route template and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP latency by route template.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
		HTTPInFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "http", Name: "in_flight_requests",
			Help: "Requests currently being served.",
		}, []string{"method", "route"}),
		Forbidden: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "rbac", Name: "forbidden_total",
			Help: "Requests refused by the role gate, by route and caller role.",
		}, []string{"route", "role"}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "auth", Name: "logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"result"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "db", Name: "query_duration_seconds",
			Help:    "Store operation latency (logical op, not raw SQL).",
			Buckets: []float64{0.002, 0.005, 0.01, 0.02, 0.05, 0.1, 0.25, 0.5, 1, 2},
		}, []string{"op", "status"}),
		DBErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "db", Name: "errors_total",
			Help: "Store errors by logical op and class.",
		}, []string{"op", "class"}),

		JobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "jobs", Name: "duration_seconds",
			Help:    "Notification job run time by type and result.",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"job_type", "result"}),
		JobResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "jobs", Name: "results_total",
			Help: "Notification job outcomes (done, retry, failed).",
		}, []string{"job_type", "result"}),
		JobsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "jobs", Name: "in_flight",
			Help: "Jobs executing in this process.",
		}),
	}

	reg.MustRegister(
		p.HTTPRequests, p.HTTPDuration, p.HTTPInFlight, p.Forbidden, p.Logins,
		p.DBQueryDuration, p.DBErrors,
		p.JobDuration, p.JobResults, p.JobsInFlight,
	)
	return p
}

const loginRoute = "/auth/login"

// GinHandleMiddleware records request metrics under the matched route
// template, so /students/STU001 and /students/STU002 share one series.
func (p *Prom) GinHandleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		inFlight := p.HTTPInFlight.WithLabelValues(method, route)
		inFlight.Inc()
		defer inFlight.Dec()

		c.Next()

		code := c.Writer.Status()
		status := strconv.Itoa(code)
		p.HTTPRequests.WithLabelValues(method, route, status).Inc()
		p.HTTPDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())

		switch {
		case route == loginRoute:
			p.Logins.WithLabelValues(loginResult(code)).Inc()
		case code == http.StatusForbidden:
			role := "unknown"
			// auth middleware swaps the request context further down the chain
			if a, ok := actorctx.From(c.Request.Context()); ok {
				role = string(a.Role)
			}
			p.Forbidden.WithLabelValues(route, role).Inc()
		}
	}
}

func loginResult(code int) string {
	switch {
	case code == http.StatusOK:
		return "ok"
	case code == http.StatusTooManyRequests:
		return "rate_limited"
	case code == http.StatusUnauthorized:
		return "invalid_credentials"
	case code >= http.StatusInternalServerError:
		return "error"
	default:
		return "rejected"
	}
}
