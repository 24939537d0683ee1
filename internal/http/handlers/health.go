package handlers

import (
	"time"

	"github.com/khoborpatra/khoborpatra/internal/http/response"
	"github.com/khoborpatra/khoborpatra/internal/i18n"
	"github.com/khoborpatra/khoborpatra/internal/models"

	"github.com/gin-gonic/gin"
)

// Health GET /health
// Probes the database and reports the round-trip time. A failed probe is
// a 503 so load balancers can drain the instance.
func (h *Handler) Health(c *gin.Context) {
	started := time.Now()
	status := "ok"
	dbStatus := "up"

	sqlDB, err := models.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		status = "degraded"
		dbStatus = "down"
	}
	elapsed := time.Since(started)

	body := gin.H{
		"status":           status,
		"database":         dbStatus,
		"response_time_ms": elapsed.Milliseconds(),
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
	}
	if err != nil {
		requestLog(c).Errorw("health_db_probe_failed", "error", err)
		response.FailWithErrors(c, response.StatusUnavailable, i18n.T(i18n.ResolveLocale(c), "error.db_unavailable"), body)
		return
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "success"), body)
}
