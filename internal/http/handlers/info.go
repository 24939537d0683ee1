package handlers

import (
	"github.com/khoborpatra/khoborpatra/internal/constants"
	"github.com/khoborpatra/khoborpatra/internal/http/response"
	"github.com/khoborpatra/khoborpatra/internal/i18n"

	"github.com/gin-gonic/gin"
)

// Root GET /
// Welcome page pointing clients at the API surface.
func (h *Handler) Root(c *gin.Context) {
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "welcome"), gin.H{
		"name":        constants.AppName,
		"description": "Bilingual Bengali newspaper content backend",
		"version":     constants.AppVersion,
		"api_base":    "/api",
		"health":      "/health",
		"metrics":     "/metrics",
	})
}

// NotFound JSON 404 for unmatched routes
func (h *Handler) NotFound(c *gin.Context) {
	respondError(c, response.StatusNotFound, "error.not_found", nil)
}
