package handlers

import (
	"strings"
	"time"

	"github.com/khoborpatra/khoborpatra/internal/http/response"
	"github.com/khoborpatra/khoborpatra/internal/i18n"
	"github.com/khoborpatra/khoborpatra/internal/queue"
	"github.com/khoborpatra/khoborpatra/internal/repository"
	"github.com/khoborpatra/khoborpatra/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// articlePayload create/update request body
type articlePayload struct {
	Title           string                 `json:"title"`
	TitleBn         string                 `json:"title_bn"`
	Slug            string                 `json:"slug"`
	Excerpt         string                 `json:"excerpt"`
	ExcerptBn       string                 `json:"excerpt_bn"`
	Content         string                 `json:"content"`
	ContentBn       string                 `json:"content_bn"`
	FeaturedImage   string                 `json:"featured_image"`
	ImageCaption    string                 `json:"image_caption"`
	ImageCaptionBn  string                 `json:"image_caption_bn"`
	Gallery         map[string]interface{} `json:"gallery"`
	CategoryID      *uint                  `json:"category_id"`
	AuthorID        *uint                  `json:"author_id"`
	EditorID        *uint                  `json:"editor_id"`
	Status          string                 `json:"status"`
	IsPublished     *bool                  `json:"is_published"`
	ScheduledAt     *time.Time             `json:"scheduled_at"`
	MetaTitle       string                 `json:"meta_title"`
	MetaDescription string                 `json:"meta_description"`
	Keywords        string                 `json:"keywords"`
	IsFeatured      *bool                  `json:"is_featured"`
	IsBreaking      *bool                  `json:"is_breaking"`
	IsUrgent        *bool                  `json:"is_urgent"`
	Priority        *int                   `json:"priority"`
	Location        string                 `json:"location"`
	LocationBn      string                 `json:"location_bn"`
	Source          string                 `json:"source"`
	TagIDs          []uint                 `json:"tag_ids"`
}

func (p articlePayload) toInput() service.ArticleInput {
	return service.ArticleInput{
		Title:           p.Title,
		TitleBn:         p.TitleBn,
		Slug:            p.Slug,
		Excerpt:         p.Excerpt,
		ExcerptBn:       p.ExcerptBn,
		Content:         p.Content,
		ContentBn:       p.ContentBn,
		FeaturedImage:   p.FeaturedImage,
		ImageCaption:    p.ImageCaption,
		ImageCaptionBn:  p.ImageCaptionBn,
		Gallery:         p.Gallery,
		CategoryID:      p.CategoryID,
		AuthorID:        p.AuthorID,
		EditorID:        p.EditorID,
		Status:          p.Status,
		IsPublished:     p.IsPublished,
		ScheduledAt:     p.ScheduledAt,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		Keywords:        p.Keywords,
		IsFeatured:      p.IsFeatured,
		IsBreaking:      p.IsBreaking,
		IsUrgent:        p.IsUrgent,
		Priority:        p.Priority,
		Location:        p.Location,
		LocationBn:      p.LocationBn,
		Source:          p.Source,
		TagIDs:          p.TagIDs,
	}
}

// ListArticles GET /api/articles
// Filter parameters answer to their documented names; the camel-case
// forms stay as aliases.
func (h *Handler) ListArticles(c *gin.Context) {
	page, limit := repository.NormalizePagination(queryInt(c, "page"), queryInt(c, "limit"))
	input := service.ListArticlesInput{
		Page:        page,
		Limit:       limit,
		Query:       queryValue(c, "q", "query"),
		CategoryID:  queryUint(c, "category", "categoryId"),
		AuthorID:    queryUint(c, "author", "authorId"),
		Status:      c.Query("status"),
		IsPublished: queryBoolPtr(c, "published", "isPublished"),
		IsFeatured:  queryBoolPtr(c, "featured", "isFeatured"),
		IsBreaking:  queryBoolPtr(c, "breaking", "isBreaking"),
		DateFrom:    queryTime(c, "dateFrom"),
		DateTo:      queryTime(c, "dateTo"),
		TagIDs:      queryUintList(c, "tags", "tagIds"),
		SortBy:      c.Query("sortBy"),
		SortOrder:   c.Query("sortOrder"),
	}

	articles, total, err := h.ArticleService.List(input)
	if err != nil {
		respondError(c, response.StatusInternal, "error.internal", err)
		return
	}
	locale := i18n.ResolveLocale(c)
	response.Paginated(c, i18n.T(locale, "success"), articles, response.NewMeta(page, limit, total))
}

// FeaturedArticles GET /api/articles/featured
func (h *Handler) FeaturedArticles(c *gin.Context) {
	limit := queryInt(c, "limit")
	if limit <= 0 {
		limit = 5
	}
	articles, err := h.ArticleService.Featured(limit)
	if err != nil {
		respondError(c, response.StatusInternal, "error.internal", err)
		return
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "success"), articles)
}

// BreakingArticles GET /api/articles/breaking
func (h *Handler) BreakingArticles(c *gin.Context) {
	limit := queryInt(c, "limit")
	if limit <= 0 {
		limit = 5
	}
	articles, err := h.ArticleService.Breaking(limit)
	if err != nil {
		respondError(c, response.StatusInternal, "error.internal", err)
		return
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "success"), articles)
}

// GetArticle GET /api/articles/:slug
func (h *Handler) GetArticle(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	detail, err := h.ArticleService.GetBySlug(slug)
	if err != nil {
		respondWithMappedError(c, err, articleErrorRules, "error.internal")
		return
	}

	h.recordArticleView(c, detail.Article.ID)
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "success"), detail)
}

// recordArticleView fires the best-effort view increment. The read
// already succeeded; nothing here may fail it.
func (h *Handler) recordArticleView(c *gin.Context, articleID uint) {
	sessionID := strings.TrimSpace(c.GetHeader("X-Session-Id"))
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	payload := queue.ArticleViewPayload{
		ArticleID: articleID,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
		SessionID: sessionID,
	}

	if h.QueueClient.Enabled() {
		err := h.QueueClient.EnqueueArticleView(payload)
		if err == nil {
			return
		}
		requestLog(c).Warnw("article_view_enqueue_failed", "article_id", articleID, "error", err)
	}

	// queue disabled or broker down, do the work off-request
	go func() {
		err := h.ArticleService.RecordView(articleID, service.ViewMeta{
			IPAddress: payload.IPAddress,
			UserAgent: payload.UserAgent,
			Referrer:  payload.Referrer,
			SessionID: payload.SessionID,
		})
		if err != nil {
			requestLog(nil).Warnw("article_view_record_failed", "article_id", articleID, "error", err)
		}
	}()
}

// CreateArticle POST /api/articles
func (h *Handler) CreateArticle(c *gin.Context) {
	var payload articlePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, response.StatusBadRequest, "error.invalid_payload", nil)
		return
	}

	article, err := h.ArticleService.Create(payload.toInput())
	if err != nil {
		respondWithMappedError(c, err, articleErrorRules, "error.internal")
		return
	}
	response.Created(c, i18n.T(i18n.ResolveLocale(c), "created"), article)
}

// UpdateArticle PUT /api/articles/:id
func (h *Handler) UpdateArticle(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.StatusBadRequest, "error.invalid_id", nil)
		return
	}
	var payload articlePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, response.StatusBadRequest, "error.invalid_payload", nil)
		return
	}

	article, err := h.ArticleService.Update(id, payload.toInput())
	if err != nil {
		respondWithMappedError(c, err, articleErrorRules, "error.internal")
		return
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "updated"), article)
}

// DeleteArticle DELETE /api/articles/:id
func (h *Handler) DeleteArticle(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.StatusBadRequest, "error.invalid_id", nil)
		return
	}
	if err := h.ArticleService.Delete(id); err != nil {
		respondWithMappedError(c, err, articleErrorRules, "error.internal")
		return
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "deleted"), nil)
}
