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

const popularCategoriesCacheTTL = 5 * time.Minute

// categoryPayload create/update request body
type categoryPayload struct {
	Name         string `json:"name"`
	NameBn       string `json:"name_bn"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	ParentID     *uint  `json:"parent_id"`
	DisplayOrder *int   `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

func (p categoryPayload) toInput() service.CategoryInput {
	return service.CategoryInput{
		Name:         p.Name,
		NameBn:       p.NameBn,
		Slug:         p.Slug,
		Description:  p.Description,
		ParentID:     p.ParentID,
		DisplayOrder: p.DisplayOrder,
		IsActive:     p.IsActive,
	}
}

// ListCategories GET /api/categories
func (h *Handler) ListCategories(c *gin.Context) {
	tree, err := h.CategoryService.Tree()
	if err != nil {
		respondError(c, response.StatusInternal, "error.internal", err)
		return
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "success"), tree)
}

// CategoriesWithCount GET /api/categories/with-count
func (h *Handler) CategoriesWithCount(c *gin.Context) {
	categories, err := h.CategoryService.ListWithCount()
	if err != nil {
		respondError(c, response.StatusInternal, "error.internal", err)
		return
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "success"), categories)
}

// PopularCategories GET /api/categories/popular
// Served from cache when Redis is up; the ranking only shifts as
// articles publish, so a short TTL is plenty.
func (h *Handler) PopularCategories(c *gin.Context) {
	limit := queryInt(c, "limit")
	ctx := c.Request.Context()
	cacheKey := fmt.Sprintf("categories:popular:%d", limit)

	var cached []repository.CategoryWithCount
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		response.OK(c, i18n.T(i18n.ResolveLocale(c), "success"), cached)
		return
	}

	categories, err := h.CategoryService.Popular(limit)
	if err != nil {
		respondError(c, response.StatusInternal, "error.internal", err)
		return
	}
	if err := cache.SetJSON(ctx, cacheKey, categories, popularCategoriesCacheTTL); err != nil {
		requestLog(c).Warnw("popular categories cache write failed", "error", err)
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "success"), categories)
}

// GetCategory GET /api/categories/:slug
func (h *Handler) GetCategory(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	category, err := h.CategoryService.GetBySlug(slug)
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, "error.internal")
		return
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "success"), category)
}

// CategoryArticles GET /api/categories/:slug/articles
func (h *Handler) CategoryArticles(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	page, limit := repository.NormalizePagination(queryInt(c, "page"), queryInt(c, "limit"))

	category, articles, total, err := h.ArticleService.ListByCategorySlug(slug, page, limit)
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, "error.internal")
		return
	}
	locale := i18n.ResolveLocale(c)
	response.Paginated(c, i18n.T(locale, "success"), gin.H{
		"category": category,
		"articles": articles,
	}, response.NewMeta(page, limit, total))
}

// CreateCategory POST /api/categories
func (h *Handler) CreateCategory(c *gin.Context) {
	var payload categoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, response.StatusBadRequest, "error.invalid_payload", nil)
		return
	}
	category, err := h.CategoryService.Create(payload.toInput())
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, "error.internal")
		return
	}
	response.Created(c, i18n.T(i18n.ResolveLocale(c), "created"), category)
}

// UpdateCategory PUT /api/categories/:id
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.StatusBadRequest, "error.invalid_id", nil)
		return
	}
	var payload categoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, response.StatusBadRequest, "error.invalid_payload", nil)
		return
	}
	category, err := h.CategoryService.Update(id, payload.toInput())
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, "error.internal")
		return
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "updated"), category)
}

// DeleteCategory DELETE /api/categories/:id
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.StatusBadRequest, "error.invalid_id", nil)
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		respondWithMappedError(c, err, categoryErrorRules, "error.internal")
		return
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "deleted"), nil)
}
