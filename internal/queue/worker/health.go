package worker

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

func (w *Worker) isReady() bool {
	w.readyMu.RLock()
	defer w.readyMu.RUnlock()
	return w.ready
}

// HealthHandler serves the worker's probes and metrics. readyz reports the
// job tally so an operator can see retries without scraping.
func (w *Worker) HealthHandler(db Pinger) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/readyz", func(c *gin.Context) {
		checks := gin.H{}
		if !w.isReady() {
			checks["loops"] = "not started"
		}
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 500*time.Millisecond)
			err := db.Ping(ctx)
			cancel()
			if err != nil {
				checks["db"] = err.Error()
			}
		}

		if len(checks) > 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "checks": checks})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "jobs": w.Stats()})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}
