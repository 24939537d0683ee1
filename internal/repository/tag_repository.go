package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/khoborpatra/khoborpatra/internal/models"

	"gorm.io/gorm"
)

// TagWithCount tag row plus its article usage count.
type TagWithCount struct {
	models.Tag
	ArticleCount int64 `json:"article_count"`
}

// TagRepository tag data access interface
type TagRepository interface {
	List(filter TagListFilter) ([]TagWithCount, int64, error)
	Popular(limit int) ([]TagWithCount, error)
	ListByIDs(ids []uint) ([]models.Tag, error)
	GetBySlug(slug string) (*models.Tag, error)
	GetByID(id uint) (*models.Tag, error)
	Create(tag *models.Tag) error
	Update(tag *models.Tag) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
}

// GormTagRepository GORM implementation
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates the tag repository
func NewTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

var tagSortColumns = map[string]string{
	"name":          "tags.name",
	"created_at":    "tags.created_at",
	"article_count": "article_count",
}

// List tags with usage counts, searchable on name/slug
func (r *GormTagRepository) List(filter TagListFilter) ([]TagWithCount, int64, error) {
	countQuery := r.applyTagFilter(r.db.Model(&models.Tag{}), filter)
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := tagSortColumns[strings.TrimSpace(filter.SortBy)]
	if !ok {
		column = "tags.name"
	}
	direction := "ASC"
	if strings.EqualFold(strings.TrimSpace(filter.SortOrder), "desc") {
		direction = "DESC"
	}

	query := r.applyTagFilter(r.db.Model(&models.Tag{}), filter).
		Select("tags.*, COUNT(article_tags.article_id) AS article_count").
		Joins("LEFT JOIN article_tags ON article_tags.tag_id = tags.id").
		Group("tags.id").
		Order(fmt.Sprintf("%s %s, tags.id ASC", column, direction))
	query = applyPagination(query, filter.Page, filter.Limit)

	var rows []TagWithCount
	if err := query.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *GormTagRepository) applyTagFilter(query *gorm.DB, filter TagListFilter) *gorm.DB {
	if filter.OnlyActive {
		query = query.Where("tags.is_active = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		condition, argCount := buildLikeCondition(r.db, []string{"tags.name", "tags.name_bn", "tags.slug"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}
	return query
}

// Popular orders active tags by usage count
func (r *GormTagRepository) Popular(limit int) ([]TagWithCount, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []TagWithCount
	err := r.db.Model(&models.Tag{}).
		Select("tags.*, COUNT(article_tags.article_id) AS article_count").
		Joins("LEFT JOIN article_tags ON article_tags.tag_id = tags.id").
		Where("tags.is_active = ?", true).
		Group("tags.id").
		Order("article_count DESC, tags.name ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByIDs batch fetches tags, preserving only existing ids
func (r *GormTagRepository) ListByIDs(ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	var tags []models.Tag
	if err := r.db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetBySlug fetches one tag by slug
func (r *GormTagRepository) GetBySlug(slug string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Where("slug = ?", slug).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// GetByID fetches one tag by id
func (r *GormTagRepository) GetByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// Create inserts a tag
func (r *GormTagRepository) Create(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

// Update saves a tag
func (r *GormTagRepository) Update(tag *models.Tag) error {
	return r.db.Save(tag).Error
}

// Delete removes a tag
func (r *GormTagRepository) Delete(id uint) error {
	return r.db.Delete(&models.Tag{}, id).Error
}

// CountBySlug counts slug occurrences for uniqueness checks
func (r *GormTagRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Tag{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
