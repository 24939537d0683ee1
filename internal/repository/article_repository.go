package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/khoborpatra/khoborpatra/internal/constants"
	"github.com/khoborpatra/khoborpatra/internal/models"

	"gorm.io/gorm"
)

// ArticleRepository article data access interface
type ArticleRepository interface {
	List(filter ArticleListFilter) ([]models.Article, int64, error)
	GetBySlug(slug string) (*models.Article, error)
	GetByID(id uint) (*models.Article, error)
	Create(article *models.Article) error
	Update(article *models.Article) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
	ReplaceTags(articleID uint, tagIDs []uint) error
	IncrementViewCount(id uint, delta int) (int64, error)
	AdjustCommentCount(id uint, delta int) error
	SetCommentCount(id uint, count int64) error
	CountByCategory(categoryID uint) (int64, error)
	CountByAuthor(authorID uint) (int64, error)
	CountByTag(tagID uint) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ArticleRepository
}

// GormArticleRepository GORM implementation
type GormArticleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates the article repository
func NewArticleRepository(db *gorm.DB) *GormArticleRepository {
	return &GormArticleRepository{db: db}
}

// WithTx binds a transaction
func (r *GormArticleRepository) WithTx(tx *gorm.DB) ArticleRepository {
	if tx == nil {
		return r
	}
	return &GormArticleRepository{db: tx}
}

// Transaction runs fn inside a transaction
func (r *GormArticleRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List compiles the filter into one parameterized query pair (count + page)
// and hydrates tag summaries with a single extra query.
func (r *GormArticleRepository) List(filter ArticleListFilter) ([]models.Article, int64, error) {
	countQuery, joined := r.applyArticleFilter(r.db.Model(&models.Article{}), filter)
	if joined {
		// the tag join fans out one row per matched tag
		countQuery = countQuery.Distinct("articles.id")
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query, joined := r.applyArticleFilter(r.db.Model(&models.Article{}), filter)
	if joined {
		query = query.Group("articles.id")
	}
	query = query.
		Preload("Category").
		Preload("Author").
		Order(articleOrderClause(filter.SortBy, filter.SortOrder))
	query = applyPagination(query, filter.Page, filter.Limit)

	var articles []models.Article
	if err := query.Find(&articles).Error; err != nil {
		return nil, 0, err
	}
	if err := r.loadTags(articles); err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

func (r *GormArticleRepository) applyArticleFilter(query *gorm.DB, filter ArticleListFilter) (*gorm.DB, bool) {
	joined := false
	if search := strings.TrimSpace(filter.Query); search != "" {
		like := "%" + search + "%"
		condition, argCount := buildLikeCondition(r.db, []string{
			"articles.title", "articles.title_bn",
			"articles.content", "articles.content_bn",
		})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}
	if filter.CategoryID != 0 {
		query = query.Where("articles.category_id = ?", filter.CategoryID)
	}
	if filter.AuthorID != 0 {
		query = query.Where("articles.author_id = ?", filter.AuthorID)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("articles.status = ?", status)
	}
	if filter.IsPublished != nil {
		query = query.Where("articles.is_published = ?", *filter.IsPublished)
	}
	if filter.IsFeatured != nil {
		query = query.Where("articles.is_featured = ?", *filter.IsFeatured)
	}
	if filter.IsBreaking != nil {
		query = query.Where("articles.is_breaking = ?", *filter.IsBreaking)
	}
	if filter.DateFrom != nil {
		query = query.Where("articles.published_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("articles.published_at <= ?", *filter.DateTo)
	}
	if len(filter.TagIDs) > 0 {
		query = query.
			Joins("JOIN article_tags ON article_tags.article_id = articles.id").
			Where("article_tags.tag_id IN ?", filter.TagIDs)
		joined = true
	}
	return query, joined
}

// articleOrderClause maps sort params onto the column allow list. Unknown
// columns fall back to published_at; id breaks ties for stable pages.
func articleOrderClause(sortBy, sortOrder string) string {
	column := constants.SortByPublishedAt
	for _, allowed := range constants.AllowedSortColumns {
		if sortBy == allowed {
			column = allowed
			break
		}
	}
	direction := "DESC"
	if strings.EqualFold(strings.TrimSpace(sortOrder), constants.SortOrderAsc) {
		direction = "ASC"
	}
	return fmt.Sprintf("articles.%s %s, articles.id DESC", column, direction)
}

type articleTagRow struct {
	ArticleID uint
	TagID     uint
	Name      string
	NameBn    string
	Slug      string
	Color     string
}

// loadTags attaches tag rows to a page of articles with one grouped query.
func (r *GormArticleRepository) loadTags(articles []models.Article) error {
	if len(articles) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(articles))
	for i := range articles {
		ids = append(ids, articles[i].ID)
	}

	var rows []articleTagRow
	err := r.db.Table("article_tags").
		Select("article_tags.article_id AS article_id, tags.id AS tag_id, tags.name, tags.name_bn, tags.slug, tags.color").
		Joins("JOIN tags ON tags.id = article_tags.tag_id").
		Where("article_tags.article_id IN ?", ids).
		Order("article_tags.article_id ASC, tags.name ASC").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	grouped := make(map[uint][]models.Tag, len(articles))
	for _, row := range rows {
		grouped[row.ArticleID] = append(grouped[row.ArticleID], models.Tag{
			ID:     row.TagID,
			Name:   row.Name,
			NameBn: row.NameBn,
			Slug:   row.Slug,
			Color:  row.Color,
		})
	}
	for i := range articles {
		tags := grouped[articles[i].ID]
		if tags == nil {
			tags = []models.Tag{}
		}
		articles[i].Tags = tags
	}
	return nil
}

// GetBySlug fetches one article with its relations
func (r *GormArticleRepository) GetBySlug(slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.
		Preload("Category").
		Preload("Author").
		Preload("Editor").
		Preload("Tags").
		Where("slug = ?", slug).
		First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

// GetByID fetches one article by id
func (r *GormArticleRepository) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.
		Preload("Category").
		Preload("Author").
		Preload("Editor").
		Preload("Tags").
		First(&article, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

// Create inserts an article
func (r *GormArticleRepository) Create(article *models.Article) error {
	return r.db.Omit("Tags", "Category", "Author", "Editor").Create(article).Error
}

// Update saves an article
func (r *GormArticleRepository) Update(article *models.Article) error {
	return r.db.Omit("Tags", "Category", "Author", "Editor").Save(article).Error
}

// Delete removes an article and its junction rows
func (r *GormArticleRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&models.ArticleTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Article{}, id).Error
	})
}

// CountBySlug counts slug occurrences for uniqueness checks
func (r *GormArticleRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Article{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ReplaceTags rewrites the junction rows for an article
func (r *GormArticleRepository) ReplaceTags(articleID uint, tagIDs []uint) error {
	if err := r.db.Where("article_id = ?", articleID).Delete(&models.ArticleTag{}).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]models.ArticleTag, 0, len(tagIDs))
	seen := make(map[uint]struct{}, len(tagIDs))
	for _, tagID := range tagIDs {
		if tagID == 0 {
			continue
		}
		if _, ok := seen[tagID]; ok {
			continue
		}
		seen[tagID] = struct{}{}
		rows = append(rows, models.ArticleTag{ArticleID: articleID, TagID: tagID})
	}
	if len(rows) == 0 {
		return nil
	}
	return r.db.Create(&rows).Error
}

// IncrementViewCount bumps the view counter in place
func (r *GormArticleRepository) IncrementViewCount(id uint, delta int) (int64, error) {
	if id == 0 || delta <= 0 {
		return 0, errors.New("invalid view increment params")
	}
	result := r.db.Model(&models.Article{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", delta))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// AdjustCommentCount moves the denormalized comment counter, clamped at zero
func (r *GormArticleRepository) AdjustCommentCount(id uint, delta int) error {
	if id == 0 || delta == 0 {
		return nil
	}
	return r.db.Model(&models.Article{}).
		Where("id = ?", id).
		UpdateColumn("comment_count", gorm.Expr(
			"CASE WHEN comment_count + ? < 0 THEN 0 ELSE comment_count + ? END", delta, delta,
		)).Error
}

// SetCommentCount overwrites the denormalized comment counter with a
// freshly computed value
func (r *GormArticleRepository) SetCommentCount(id uint, count int64) error {
	if id == 0 {
		return errors.New("invalid article id")
	}
	if count < 0 {
		count = 0
	}
	return r.db.Model(&models.Article{}).
		Where("id = ?", id).
		UpdateColumn("comment_count", count).Error
}

// CountByCategory counts articles under a category
func (r *GormArticleRepository) CountByCategory(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

// CountByAuthor counts articles attributed to a user
func (r *GormArticleRepository) CountByAuthor(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).
		Where("author_id = ? OR editor_id = ?", authorID, authorID).
		Count(&count).Error
	return count, err
}

// CountByTag counts junction rows referencing a tag
func (r *GormArticleRepository) CountByTag(tagID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ArticleTag{}).Where("tag_id = ?", tagID).Count(&count).Error
	return count, err
}
