package handlers

import (
	"github.com/khoborpatra/khoborpatra/internal/http/response"
	"github.com/khoborpatra/khoborpatra/internal/i18n"
	"github.com/khoborpatra/khoborpatra/internal/service"

	"github.com/gin-gonic/gin"
)

// subscribePayload newsletter subscribe request body
type subscribePayload struct {
	Email       string                 `json:"email"`
	Name        string                 `json:"name"`
	Preferences map[string]interface{} `json:"preferences"`
}

// Subscribe POST /api/newsletter/subscribe
func (h *Handler) Subscribe(c *gin.Context) {
	var payload subscribePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, response.StatusBadRequest, "error.invalid_payload", nil)
		return
	}
	subscription, err := h.NewsletterService.Subscribe(service.SubscribeInput{
		Email:       payload.Email,
		Name:        payload.Name,
		Preferences: payload.Preferences,
	})
	if err != nil {
		respondWithMappedError(c, err, newsletterErrorRules, "error.internal")
		return
	}
	response.Created(c, i18n.T(i18n.ResolveLocale(c), "subscribed"), subscription)
}

// Unsubscribe POST /api/newsletter/unsubscribe
func (h *Handler) Unsubscribe(c *gin.Context) {
	var payload subscribePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, response.StatusBadRequest, "error.invalid_payload", nil)
		return
	}
	if err := h.NewsletterService.Unsubscribe(payload.Email); err != nil {
		respondWithMappedError(c, err, newsletterErrorRules, "error.internal")
		return
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "unsubscribed"), nil)
}
