package handlers

import (
	"time"

	"github.com/khoborpatra/khoborpatra/internal/http/response"
	"github.com/khoborpatra/khoborpatra/internal/i18n"
	"github.com/khoborpatra/khoborpatra/internal/service"

	"github.com/gin-gonic/gin"
)

// advertisementPayload create request body
type advertisementPayload struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"`
	ClickURL    string     `json:"click_url"`
	Position    string     `json:"position"`
	IsActive    *bool      `json:"is_active"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// ActiveAdvertisements GET /api/advertisements
func (h *Handler) ActiveAdvertisements(c *gin.Context) {
	ads, err := h.AdvertisementService.Active(c.Query("position"))
	if err != nil {
		respondError(c, response.StatusInternal, "error.internal", err)
		return
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "success"), ads)
}

// AdvertisementClick POST /api/advertisements/:id/click
func (h *Handler) AdvertisementClick(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.StatusBadRequest, "error.invalid_id", nil)
		return
	}
	if err := h.AdvertisementService.Click(id); err != nil {
		respondWithMappedError(c, err, advertisementErrorRules, "error.internal")
		return
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "success"), nil)
}

// CreateAdvertisement POST /api/advertisements
func (h *Handler) CreateAdvertisement(c *gin.Context) {
	var payload advertisementPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, response.StatusBadRequest, "error.invalid_payload", nil)
		return
	}
	ad, err := h.AdvertisementService.Create(service.AdvertisementInput{
		Title:       payload.Title,
		Description: payload.Description,
		ImageURL:    payload.ImageURL,
		ClickURL:    payload.ClickURL,
		Position:    payload.Position,
		IsActive:    payload.IsActive,
		StartDate:   payload.StartDate,
		EndDate:     payload.EndDate,
	})
	if err != nil {
		respondWithMappedError(c, err, advertisementErrorRules, "error.internal")
		return
	}
	response.Created(c, i18n.T(i18n.ResolveLocale(c), "created"), ad)
}

// DeleteAdvertisement DELETE /api/advertisements/:id
func (h *Handler) DeleteAdvertisement(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.StatusBadRequest, "error.invalid_id", nil)
		return
	}
	if err := h.AdvertisementService.Delete(id); err != nil {
		respondWithMappedError(c, err, advertisementErrorRules, "error.internal")
		return
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "deleted"), nil)
}
