package handlers

import (
	"strings"

	"github.com/khoborpatra/khoborpatra/internal/constants"
	"github.com/khoborpatra/khoborpatra/internal/http/response"
	"github.com/khoborpatra/khoborpatra/internal/i18n"
	"github.com/khoborpatra/khoborpatra/internal/models"
	"github.com/khoborpatra/khoborpatra/internal/queue"
	"github.com/khoborpatra/khoborpatra/internal/repository"
	"github.com/khoborpatra/khoborpatra/internal/service"

	"github.com/gin-gonic/gin"
)

// commentPayload create request body
type commentPayload struct {
	ArticleID    uint   `json:"article_id"`
	ParentID     *uint  `json:"parent_id"`
	AuthorName   string `json:"author_name"`
	AuthorEmail  string `json:"author_email"`
	AuthorAvatar string `json:"author_avatar"`
	Content      string `json:"content"`
	ContentBn    string `json:"content_bn"`
}

// commentUpdatePayload update request body
type commentUpdatePayload struct {
	Content   string `json:"content"`
	ContentBn string `json:"content_bn"`
}

// moderatePayload moderation request body
type moderatePayload struct {
	Action      string `json:"action"`
	ModeratorID uint   `json:"moderator_id"`
}

// ListComments GET /api/comments
func (h *Handler) ListComments(c *gin.Context) {
	page, limit := repository.NormalizePagination(queryInt(c, "page"), queryInt(c, "limit"))
	input := service.ListCommentsInput{
		Page:       page,
		Limit:      limit,
		ArticleID:  queryUint(c, "articleId"),
		IsApproved: queryBoolPtr(c, "isApproved"),
		IsReported: queryBoolPtr(c, "isReported"),
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
	}

	comments, total, err := h.CommentService.List(input)
	if err != nil {
		respondError(c, response.StatusInternal, "error.internal", err)
		return
	}
	locale := i18n.ResolveLocale(c)
	response.Paginated(c, i18n.T(locale, "success"), comments, response.NewMeta(page, limit, total))
}

// ArticleComments GET /api/articles/:slug/comments
// The path segment takes either the numeric article id or its slug.
func (h *Handler) ArticleComments(c *gin.Context) {
	page, limit := repository.NormalizePagination(queryInt(c, "page"), queryInt(c, "limit"))

	var (
		comments []models.Comment
		total    int64
		err      error
	)
	if articleID, ok := parseUintParam(c, "slug"); ok {
		comments, total, err = h.CommentService.Threaded(articleID, page, limit)
	} else {
		comments, total, err = h.CommentService.ThreadedBySlug(c.Param("slug"), page, limit)
	}
	if err != nil {
		respondWithMappedError(c, err, concatMappedHandlerErrors(articleErrorRules, commentErrorRules), "error.internal")
		return
	}
	locale := i18n.ResolveLocale(c)
	response.Paginated(c, i18n.T(locale, "success"), comments, response.NewMeta(page, limit, total))
}

// CreateComment POST /api/comments
func (h *Handler) CreateComment(c *gin.Context) {
	var payload commentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, response.StatusBadRequest, "error.invalid_payload", nil)
		return
	}

	comment, err := h.CommentService.Create(service.CommentInput{
		ArticleID:    payload.ArticleID,
		ParentID:     payload.ParentID,
		AuthorName:   payload.AuthorName,
		AuthorEmail:  payload.AuthorEmail,
		AuthorAvatar: payload.AuthorAvatar,
		Content:      payload.Content,
		ContentBn:    payload.ContentBn,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	})
	if err != nil {
		respondWithMappedError(c, err, concatMappedHandlerErrors(commentErrorRules, []mappedHandlerError{
			{target: service.ErrNotFound, status: response.StatusNotFound, key: "error.article_not_found"},
		}), "error.internal")
		return
	}

	locale := i18n.ResolveLocale(c)
	key := "created"
	if !comment.IsApproved {
		key = "comment.pending"
	}
	response.Created(c, i18n.T(locale, key), comment)
}

// UpdateComment PUT /api/comments/:id
func (h *Handler) UpdateComment(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.StatusBadRequest, "error.invalid_id", nil)
		return
	}
	var payload commentUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, response.StatusBadRequest, "error.invalid_payload", nil)
		return
	}

	comment, err := h.CommentService.Update(id, payload.Content, payload.ContentBn)
	if err != nil {
		respondWithMappedError(c, err, commentErrorRules, "error.internal")
		return
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "updated"), comment)
}

// DeleteComment DELETE /api/comments/:id
func (h *Handler) DeleteComment(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.StatusBadRequest, "error.invalid_id", nil)
		return
	}
	articleID, err := h.CommentService.Delete(id)
	if err != nil {
		respondWithMappedError(c, err, commentErrorRules, "error.internal")
		return
	}
	h.scheduleCommentRecount(c, articleID)
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "deleted"), nil)
}

// ModerateComment POST /api/comments/:id/moderate
// The action is checked here so a junk payload never reaches the service.
func (h *Handler) ModerateComment(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.StatusBadRequest, "error.invalid_id", nil)
		return
	}
	var payload moderatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, response.StatusBadRequest, "error.invalid_payload", nil)
		return
	}

	action := strings.TrimSpace(payload.Action)
	if action != constants.ModerationActionApprove && action != constants.ModerationActionReject {
		respondError(c, response.StatusBadRequest, "error.invalid_moderation_action", nil)
		return
	}

	comment, err := h.CommentService.Moderate(id, action, payload.ModeratorID)
	if err != nil {
		respondWithMappedError(c, err, commentErrorRules, "error.internal")
		return
	}
	h.scheduleCommentRecount(c, comment.ArticleID)
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "updated"), comment)
}

// scheduleCommentRecount asks the worker to reconcile the article's
// comment counter. The response already reflects the synchronous
// adjustment, so a failed enqueue is only logged.
func (h *Handler) scheduleCommentRecount(c *gin.Context, articleID uint) {
	if articleID == 0 || !h.QueueClient.Enabled() {
		return
	}
	err := h.QueueClient.EnqueueCommentRecount(queue.CommentRecountPayload{ArticleID: articleID})
	if err != nil {
		requestLog(c).Warnw("comment_recount_enqueue_failed", "article_id", articleID, "error", err)
	}
}

// ReportComment POST /api/comments/:id/report
func (h *Handler) ReportComment(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.StatusBadRequest, "error.invalid_id", nil)
		return
	}
	comment, err := h.CommentService.Report(id)
	if err != nil {
		respondWithMappedError(c, err, commentErrorRules, "error.internal")
		return
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "updated"), comment)
}
