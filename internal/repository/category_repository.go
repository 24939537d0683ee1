package repository

import (
	"errors"

	"github.com/khoborpatra/khoborpatra/internal/models"

	"gorm.io/gorm"
)

// CategoryWithCount category row plus its published article count.
type CategoryWithCount struct {
	models.Category
	ArticleCount int64 `json:"article_count"`
}

// CategoryRepository category data access interface
type CategoryRepository interface {
	ListActive() ([]models.Category, error)
	ListAll() ([]models.Category, error)
	ListWithCount() ([]CategoryWithCount, error)
	Popular(limit int) ([]CategoryWithCount, error)
	ListChildren(parentID uint) ([]models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	GetByID(id uint) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
	CountChildren(parentID uint) (int64, error)
}

// GormCategoryRepository GORM implementation
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates the category repository
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// ListActive returns active categories in tree display order
func (r *GormCategoryRepository) ListActive() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.
		Where("is_active = ?", true).
		Order("display_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// ListAll returns every category, active or not
func (r *GormCategoryRepository) ListAll() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("display_order ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListWithCount left-joins published article counts onto active categories
func (r *GormCategoryRepository) ListWithCount() ([]CategoryWithCount, error) {
	var rows []CategoryWithCount
	err := r.db.Model(&models.Category{}).
		Select("categories.*, COUNT(articles.id) AS article_count").
		Joins("LEFT JOIN articles ON articles.category_id = categories.id AND articles.is_published = ?", true).
		Where("categories.is_active = ?", true).
		Group("categories.id").
		Order("categories.display_order ASC, categories.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Popular orders active categories by published article count
func (r *GormCategoryRepository) Popular(limit int) ([]CategoryWithCount, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []CategoryWithCount
	err := r.db.Model(&models.Category{}).
		Select("categories.*, COUNT(articles.id) AS article_count").
		Joins("LEFT JOIN articles ON articles.category_id = categories.id AND articles.is_published = ?", true).
		Where("categories.is_active = ?", true).
		Group("categories.id").
		Order("article_count DESC, categories.name ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListChildren returns the direct active children of a category
func (r *GormCategoryRepository) ListChildren(parentID uint) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.
		Where("parent_id = ? AND is_active = ?", parentID, true).
		Order("display_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GetBySlug fetches one category by slug
func (r *GormCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// GetByID fetches one category by id
func (r *GormCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// Create inserts a category
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update saves a category
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete removes a category
func (r *GormCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

// CountBySlug counts slug occurrences for uniqueness checks
func (r *GormCategoryRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Category{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountChildren counts categories pointing at parentID
func (r *GormCategoryRepository) CountChildren(parentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Where("parent_id = ?", parentID).Count(&count).Error
	return count, err
}
