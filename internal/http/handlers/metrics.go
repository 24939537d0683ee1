package handlers

import (
	"runtime"
	"time"

	"github.com/khoborpatra/khoborpatra/internal/http/response"
	"github.com/khoborpatra/khoborpatra/internal/i18n"
	"github.com/khoborpatra/khoborpatra/internal/models"

	"github.com/gin-gonic/gin"
)

var processStarted = time.Now()

// Metrics GET /metrics
// Process and connection-pool snapshot for dashboards. Not a Prometheus
// endpoint; the payload is the plain JSON envelope.
func (h *Handler) Metrics(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	body := gin.H{
		"uptime_seconds": int64(time.Since(processStarted).Seconds()),
		"goroutines":     runtime.NumGoroutine(),
		"memory": gin.H{
			"alloc_bytes":       mem.Alloc,
			"total_alloc_bytes": mem.TotalAlloc,
			"sys_bytes":         mem.Sys,
			"num_gc":            mem.NumGC,
		},
	}

	if sqlDB, err := models.DB.DB(); err == nil {
		stats := sqlDB.Stats()
		body["database"] = gin.H{
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
			"wait_count":       stats.WaitCount,
			"wait_duration_ms": stats.WaitDuration.Milliseconds(),
		}
	}

	if pending, err := h.CommentService.CountPending(); err == nil {
		body["comments_pending"] = pending
	}

	response.OK(c, i18n.T(i18n.ResolveLocale(c), "success"), body)
}
