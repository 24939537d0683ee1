package service

import (
	"strings"
	"time"

	"github.com/khoborpatra/khoborpatra/internal/constants"
	"github.com/khoborpatra/khoborpatra/internal/models"
	"github.com/khoborpatra/khoborpatra/internal/repository"

	"gorm.io/gorm"
)

// ArticleService article business service
type ArticleService struct {
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	tags       repository.TagRepository
	users      repository.UserRepository
	comments   repository.CommentRepository
	pageViews  repository.PageViewRepository
}

// NewArticleService creates the article service
func NewArticleService(
	articles repository.ArticleRepository,
	categories repository.CategoryRepository,
	tags repository.TagRepository,
	users repository.UserRepository,
	comments repository.CommentRepository,
	pageViews repository.PageViewRepository,
) *ArticleService {
	return &ArticleService{
		articles:   articles,
		categories: categories,
		tags:       tags,
		users:      users,
		comments:   comments,
		pageViews:  pageViews,
	}
}

// ListArticlesInput list query input, mirrors the repository filter
type ListArticlesInput struct {
	Page        int
	Limit       int
	Query       string
	CategoryID  uint
	AuthorID    uint
	Status      string
	IsPublished *bool
	IsFeatured  *bool
	IsBreaking  *bool
	DateFrom    *time.Time
	DateTo      *time.Time
	TagIDs      []uint
	SortBy      string
	SortOrder   string
}

// ArticleInput create/update article input. Nil pointers keep the
// current value on update and take the default on create.
type ArticleInput struct {
	Title           string
	TitleBn         string
	Slug            string
	Excerpt         string
	ExcerptBn       string
	Content         string
	ContentBn       string
	FeaturedImage   string
	ImageCaption    string
	ImageCaptionBn  string
	Gallery         map[string]interface{}
	CategoryID      *uint
	AuthorID        *uint
	EditorID        *uint
	Status          string
	IsPublished     *bool
	ScheduledAt     *time.Time
	MetaTitle       string
	MetaDescription string
	Keywords        string
	IsFeatured      *bool
	IsBreaking      *bool
	IsUrgent        *bool
	Priority        *int
	Location        string
	LocationBn      string
	Source          string
	TagIDs          []uint
}

// ArticleDetail composed detail view for the public article page.
type ArticleDetail struct {
	Article      models.Article     `json:"article"`
	Category     *models.Category   `json:"category,omitempty"`
	Author       *models.UserPublic `json:"author,omitempty"`
	Editor       *models.UserPublic `json:"editor,omitempty"`
	Tags         []models.Tag       `json:"tags"`
	CommentCount int64              `json:"comment_count"`
}

// ViewMeta request attributes recorded with a page view.
type ViewMeta struct {
	IPAddress string
	UserAgent string
	Referrer  string
	SessionID string
}

var allowedArticleStatuses = map[string]struct{}{
	constants.ArticleStatusDraft:     {},
	constants.ArticleStatusReview:    {},
	constants.ArticleStatusPublished: {},
	constants.ArticleStatusArchived:  {},
}

// List runs the compiled filter query; an empty page is a success.
func (s *ArticleService) List(input ListArticlesInput) ([]models.Article, int64, error) {
	page, limit := repository.NormalizePagination(input.Page, input.Limit)
	filter := repository.ArticleListFilter{
		Page:        page,
		Limit:       limit,
		Query:       input.Query,
		CategoryID:  input.CategoryID,
		AuthorID:    input.AuthorID,
		Status:      input.Status,
		IsPublished: input.IsPublished,
		IsFeatured:  input.IsFeatured,
		IsBreaking:  input.IsBreaking,
		DateFrom:    input.DateFrom,
		DateTo:      input.DateTo,
		TagIDs:      input.TagIDs,
		SortBy:      input.SortBy,
		SortOrder:   input.SortOrder,
	}
	return s.articles.List(filter)
}

// Featured published featured articles, highest priority first
func (s *ArticleService) Featured(limit int) ([]models.Article, error) {
	_, limit = repository.NormalizePagination(1, limit)
	published, featured := true, true
	articles, _, err := s.articles.List(repository.ArticleListFilter{
		Page:        1,
		Limit:       limit,
		IsPublished: &published,
		IsFeatured:  &featured,
		SortBy:      constants.SortByPriority,
		SortOrder:   constants.SortOrderDesc,
	})
	return articles, err
}

// Breaking published breaking news, newest first
func (s *ArticleService) Breaking(limit int) ([]models.Article, error) {
	_, limit = repository.NormalizePagination(1, limit)
	published, breaking := true, true
	articles, _, err := s.articles.List(repository.ArticleListFilter{
		Page:        1,
		Limit:       limit,
		IsPublished: &published,
		IsBreaking:  &breaking,
		SortBy:      constants.SortByPublishedAt,
		SortOrder:   constants.SortOrderDesc,
	})
	return articles, err
}

// ListByCategorySlug resolves the category first so a bad slug is a
// NotFound rather than an empty page.
func (s *ArticleService) ListByCategorySlug(slug string, page, limit int) (*models.Category, []models.Article, int64, error) {
	category, err := s.categories.GetBySlug(slug)
	if err != nil {
		return nil, nil, 0, err
	}
	if category == nil {
		return nil, nil, 0, ErrNotFound
	}
	page, limit = repository.NormalizePagination(page, limit)
	published := true
	articles, total, err := s.articles.List(repository.ArticleListFilter{
		Page:        page,
		Limit:       limit,
		CategoryID:  category.ID,
		IsPublished: &published,
		SortBy:      constants.SortByPublishedAt,
		SortOrder:   constants.SortOrderDesc,
	})
	if err != nil {
		return nil, nil, 0, err
	}
	return category, articles, total, nil
}

// GetBySlug assembles the public detail view. The lookups are separate
// statements; a concurrent edit can show a mixed snapshot, which is fine
// for a news page.
func (s *ArticleService) GetBySlug(slug string) (*ArticleDetail, error) {
	article, err := s.articles.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}

	detail := ArticleDetail{Tags: article.Tags}
	if detail.Tags == nil {
		detail.Tags = []models.Tag{}
	}
	detail.Category = article.Category
	if article.Author != nil {
		public := article.Author.PublicView()
		detail.Author = &public
	}
	if article.Editor != nil {
		public := article.Editor.PublicView()
		detail.Editor = &public
	}

	commentCount, err := s.comments.CountApprovedByArticle(article.ID)
	if err != nil {
		return nil, err
	}
	detail.CommentCount = commentCount

	// relations live on the detail envelope, not nested in the row
	article.Category = nil
	article.Author = nil
	article.Editor = nil
	article.Tags = nil
	detail.Article = *article
	return &detail, nil
}

// GetByID admin fetch with full relations
func (s *ArticleService) GetByID(id uint) (*models.Article, error) {
	article, err := s.articles.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}
	return article, nil
}

// Create validates, sanitizes and inserts an article plus its tag rows
// in one transaction.
func (s *ArticleService) Create(input ArticleInput) (*models.Article, error) {
	if err := s.validateArticleInput(input, true); err != nil {
		return nil, err
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = constants.ArticleStatusDraft
	}
	if _, ok := allowedArticleStatuses[status]; !ok {
		return nil, ErrInvalidStatus
	}

	slug, err := s.resolveSlug(input.Slug, input.Title, nil)
	if err != nil {
		return nil, err
	}

	if err := s.checkReferences(input); err != nil {
		return nil, err
	}
	tagIDs, err := s.resolveTagIDs(input.TagIDs)
	if err != nil {
		return nil, err
	}

	content := SanitizeHTML(input.Content)
	contentBn := SanitizeHTML(input.ContentBn)
	excerpt := strings.TrimSpace(input.Excerpt)
	if excerpt == "" {
		excerpt = MakeExcerpt(content, 200)
	}
	excerptBn := strings.TrimSpace(input.ExcerptBn)
	if excerptBn == "" && contentBn != "" {
		excerptBn = MakeExcerpt(contentBn, 200)
	}

	article := models.Article{
		Title:           strings.TrimSpace(input.Title),
		TitleBn:         strings.TrimSpace(input.TitleBn),
		Slug:            slug,
		Excerpt:         excerpt,
		ExcerptBn:       excerptBn,
		Content:         content,
		ContentBn:       contentBn,
		FeaturedImage:   input.FeaturedImage,
		ImageCaption:    input.ImageCaption,
		ImageCaptionBn:  input.ImageCaptionBn,
		Gallery:         models.JSON(input.Gallery),
		CategoryID:      input.CategoryID,
		AuthorID:        input.AuthorID,
		EditorID:        input.EditorID,
		Status:          status,
		ScheduledAt:     input.ScheduledAt,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		Keywords:        input.Keywords,
		Priority:        clampPriority(input.Priority, constants.DefaultPriority),
		Location:        input.Location,
		LocationBn:      input.LocationBn,
		Source:          input.Source,
	}
	if input.IsFeatured != nil {
		article.IsFeatured = *input.IsFeatured
	}
	if input.IsBreaking != nil {
		article.IsBreaking = *input.IsBreaking
	}
	if input.IsUrgent != nil {
		article.IsUrgent = *input.IsUrgent
	}
	if input.IsPublished != nil && *input.IsPublished {
		now := time.Now()
		article.IsPublished = true
		article.PublishedAt = &now
	}

	err = s.articles.Transaction(func(tx *gorm.DB) error {
		txRepo := s.articles.WithTx(tx)
		if err := txRepo.Create(&article); err != nil {
			return err
		}
		return txRepo.ReplaceTags(article.ID, tagIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.articles.GetByID(article.ID)
}

// Update applies a full update; publish transitions stamp PublishedAt once.
func (s *ArticleService) Update(id uint, input ArticleInput) (*models.Article, error) {
	article, err := s.articles.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}

	if err := s.validateArticleInput(input, false); err != nil {
		return nil, err
	}

	if status := strings.TrimSpace(input.Status); status != "" {
		if _, ok := allowedArticleStatuses[status]; !ok {
			return nil, ErrInvalidStatus
		}
		article.Status = status
	}

	if slug := strings.TrimSpace(input.Slug); slug != "" && slug != article.Slug {
		count, err := s.articles.CountBySlug(slug, &id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlugExists
		}
		article.Slug = slug
	}

	if err := s.checkReferences(input); err != nil {
		return nil, err
	}
	tagIDs, err := s.resolveTagIDs(input.TagIDs)
	if err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		article.Title = title
	}
	if titleBn := strings.TrimSpace(input.TitleBn); titleBn != "" {
		article.TitleBn = titleBn
	}
	if input.Content != "" {
		article.Content = SanitizeHTML(input.Content)
	}
	if input.ContentBn != "" {
		article.ContentBn = SanitizeHTML(input.ContentBn)
	}
	if input.Excerpt != "" {
		article.Excerpt = strings.TrimSpace(input.Excerpt)
	}
	if input.ExcerptBn != "" {
		article.ExcerptBn = strings.TrimSpace(input.ExcerptBn)
	}
	if input.FeaturedImage != "" {
		article.FeaturedImage = input.FeaturedImage
	}
	if input.ImageCaption != "" {
		article.ImageCaption = input.ImageCaption
	}
	if input.ImageCaptionBn != "" {
		article.ImageCaptionBn = input.ImageCaptionBn
	}
	if input.Gallery != nil {
		article.Gallery = models.JSON(input.Gallery)
	}
	if input.CategoryID != nil {
		article.CategoryID = input.CategoryID
	}
	if input.AuthorID != nil {
		article.AuthorID = input.AuthorID
	}
	if input.EditorID != nil {
		article.EditorID = input.EditorID
	}
	if input.ScheduledAt != nil {
		article.ScheduledAt = input.ScheduledAt
	}
	if input.MetaTitle != "" {
		article.MetaTitle = input.MetaTitle
	}
	if input.MetaDescription != "" {
		article.MetaDescription = input.MetaDescription
	}
	if input.Keywords != "" {
		article.Keywords = input.Keywords
	}
	if input.IsFeatured != nil {
		article.IsFeatured = *input.IsFeatured
	}
	if input.IsBreaking != nil {
		article.IsBreaking = *input.IsBreaking
	}
	if input.IsUrgent != nil {
		article.IsUrgent = *input.IsUrgent
	}
	if input.Priority != nil {
		article.Priority = clampPriority(input.Priority, article.Priority)
	}
	if input.Location != "" {
		article.Location = input.Location
	}
	if input.LocationBn != "" {
		article.LocationBn = input.LocationBn
	}
	if input.Source != "" {
		article.Source = input.Source
	}
	if input.IsPublished != nil {
		article.IsPublished = *input.IsPublished
		if article.IsPublished && article.PublishedAt == nil {
			now := time.Now()
			article.PublishedAt = &now
		}
	}

	err = s.articles.Transaction(func(tx *gorm.DB) error {
		txRepo := s.articles.WithTx(tx)
		if err := txRepo.Update(article); err != nil {
			return err
		}
		if input.TagIDs != nil {
			return txRepo.ReplaceTags(article.ID, tagIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.articles.GetByID(article.ID)
}

// Delete removes an article with its junction rows and comments
func (s *ArticleService) Delete(id uint) error {
	article, err := s.articles.GetByID(id)
	if err != nil {
		return err
	}
	if article == nil {
		return ErrNotFound
	}
	return s.articles.Delete(id)
}

// RecordView bumps the view counter and appends the analytics row.
// Called from the queue worker, or inline when the queue is disabled.
func (s *ArticleService) RecordView(articleID uint, meta ViewMeta) error {
	affected, err := s.articles.IncrementViewCount(articleID, 1)
	if err != nil {
		return err
	}
	if affected == 0 {
		// article deleted since the read; nothing to record
		return nil
	}
	return s.pageViews.Create(&models.PageView{
		ArticleID: articleID,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Referrer:  meta.Referrer,
		SessionID: meta.SessionID,
		ViewedAt:  time.Now(),
	})
}

func (s *ArticleService) validateArticleInput(input ArticleInput, creating bool) error {
	collector := &fieldCollector{}
	title := strings.TrimSpace(input.Title)
	if creating && title == "" {
		collector.add("title", "title is required")
	}
	if creating && strings.TrimSpace(input.Content) == "" {
		collector.add("content", "content is required")
	}
	if input.Priority != nil && (*input.Priority < 1 || *input.Priority > 10) {
		collector.add("priority", "priority must be between 1 and 10")
	}
	if len(title) > 500 {
		collector.add("title", "title must be at most 500 characters")
	}
	return collector.err()
}

// checkReferences verifies foreign keys before the insert so the caller
// gets a clean error instead of a driver constraint failure.
func (s *ArticleService) checkReferences(input ArticleInput) error {
	if input.CategoryID != nil {
		category, err := s.categories.GetByID(*input.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCategoryNotFound
		}
	}
	for _, userID := range []*uint{input.AuthorID, input.EditorID} {
		if userID == nil {
			continue
		}
		user, err := s.users.GetByID(*userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
	}
	return nil
}

func (s *ArticleService) resolveTagIDs(tagIDs []uint) ([]uint, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	unique := make([]uint, 0, len(tagIDs))
	seen := make(map[uint]struct{}, len(tagIDs))
	for _, id := range tagIDs {
		if id == 0 {
			return nil, ErrUnknownTag
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	tags, err := s.tags.ListByIDs(unique)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(unique) {
		return nil, ErrUnknownTag
	}
	return unique, nil
}

// resolveSlug returns the explicit slug after a uniqueness check, or
// derives one from the title, suffixing on collision.
func (s *ArticleService) resolveSlug(explicit, title string, excludeID *uint) (string, error) {
	if slug := strings.TrimSpace(explicit); slug != "" {
		count, err := s.articles.CountBySlug(slug, excludeID)
		if err != nil {
			return "", err
		}
		if count > 0 {
			return "", ErrSlugExists
		}
		return slug, nil
	}

	slug := MakeSlug(title)
	if slug == "" {
		slug = slugWithSuffix("")
	}
	count, err := s.articles.CountBySlug(slug, excludeID)
	if err != nil {
		return "", err
	}
	if count == 0 {
		return slug, nil
	}
	return slugWithSuffix(slug), nil
}

func clampPriority(priority *int, fallback int) int {
	if priority == nil {
		return fallback
	}
	value := *priority
	if value < 1 {
		value = 1
	}
	if value > 10 {
		value = 10
	}
	return value
}
