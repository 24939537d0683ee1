package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/khoborpatra/khoborpatra/internal/cache"
	"github.com/khoborpatra/khoborpatra/internal/http/response"
	"github.com/khoborpatra/khoborpatra/internal/i18n"
	"github.com/khoborpatra/khoborpatra/internal/repository"
	"github.com/khoborpatra/khoborpatra/internal/service"

	"github.com/gin-gonic/gin"
)

// tagPayload create/update request body
type tagPayload struct {
	Name        string `json:"name"`
	NameBn      string `json:"name_bn"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Color       string `json:"color"`
	IsActive    *bool  `json:"is_active"`
}

func (p tagPayload) toInput() service.TagInput {
	return service.TagInput{
		Name:        p.Name,
		NameBn:      p.NameBn,
		Slug:        p.Slug,
		Description: p.Description,
		Color:       p.Color,
		IsActive:    p.IsActive,
	}
}

// ListTags GET /api/tags
func (h *Handler) ListTags(c *gin.Context) {
	page, limit := repository.NormalizePagination(queryInt(c, "page"), queryInt(c, "limit"))
	onlyActive := true
	if value := queryBoolPtr(c, "onlyActive"); value != nil {
		onlyActive = *value
	}
	tags, total, err := h.TagService.List(service.ListTagsInput{
		Page:       page,
		Limit:      limit,
		Search:     c.Query("search"),
		OnlyActive: onlyActive,
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
	})
	if err != nil {
		respondError(c, response.StatusInternal, "error.internal", err)
		return
	}
	locale := i18n.ResolveLocale(c)
	response.Paginated(c, i18n.T(locale, "success"), tags, response.NewMeta(page, limit, total))
}

const popularTagsCacheTTL = 5 * time.Minute

// PopularTags GET /api/tags/popular
func (h *Handler) PopularTags(c *gin.Context) {
	limit := queryInt(c, "limit")
	ctx := c.Request.Context()
	cacheKey := fmt.Sprintf("tags:popular:%d", limit)

	var cached []repository.TagWithCount
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		response.OK(c, i18n.T(i18n.ResolveLocale(c), "success"), cached)
		return
	}

	tags, err := h.TagService.Popular(limit)
	if err != nil {
		respondError(c, response.StatusInternal, "error.internal", err)
		return
	}
	if err := cache.SetJSON(ctx, cacheKey, tags, popularTagsCacheTTL); err != nil {
		requestLog(c).Warnw("popular tags cache write failed", "error", err)
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "success"), tags)
}

// GetTag GET /api/tags/:slug
func (h *Handler) GetTag(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	tag, err := h.TagService.GetBySlug(slug)
	if err != nil {
		respondWithMappedError(c, err, tagErrorRules, "error.internal")
		return
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "success"), tag)
}

// CreateTag POST /api/tags
func (h *Handler) CreateTag(c *gin.Context) {
	var payload tagPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, response.StatusBadRequest, "error.invalid_payload", nil)
		return
	}
	tag, err := h.TagService.Create(payload.toInput())
	if err != nil {
		respondWithMappedError(c, err, tagErrorRules, "error.internal")
		return
	}
	response.Created(c, i18n.T(i18n.ResolveLocale(c), "created"), tag)
}

// UpdateTag PUT /api/tags/:id
func (h *Handler) UpdateTag(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.StatusBadRequest, "error.invalid_id", nil)
		return
	}
	var payload tagPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, response.StatusBadRequest, "error.invalid_payload", nil)
		return
	}
	tag, err := h.TagService.Update(id, payload.toInput())
	if err != nil {
		respondWithMappedError(c, err, tagErrorRules, "error.internal")
		return
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "updated"), tag)
}

// DeleteTag DELETE /api/tags/:id
func (h *Handler) DeleteTag(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.StatusBadRequest, "error.invalid_id", nil)
		return
	}
	if err := h.TagService.Delete(id); err != nil {
		respondWithMappedError(c, err, tagErrorRules, "error.internal")
		return
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "deleted"), nil)
}
