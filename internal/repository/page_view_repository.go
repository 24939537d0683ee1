package repository

import (
	"time"

	"github.com/khoborpatra/khoborpatra/internal/models"

	"gorm.io/gorm"
)

// PageViewRepository append-only page view event store
type PageViewRepository interface {
	Create(view *models.PageView) error
	CountByArticle(articleID uint) (int64, error)
	CountSince(since time.Time) (int64, error)
}

// GormPageViewRepository GORM implementation
type GormPageViewRepository struct {
	db *gorm.DB
}

// NewPageViewRepository creates the page view repository
func NewPageViewRepository(db *gorm.DB) *GormPageViewRepository {
	return &GormPageViewRepository{db: db}
}

// Create appends a view event
func (r *GormPageViewRepository) Create(view *models.PageView) error {
	if view.ViewedAt.IsZero() {
		view.ViewedAt = time.Now()
	}
	return r.db.Create(view).Error
}

// CountByArticle counts view events for an article
func (r *GormPageViewRepository) CountByArticle(articleID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PageView{}).Where("article_id = ?", articleID).Count(&count).Error
	return count, err
}

// CountSince counts view events after a point in time
func (r *GormPageViewRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.PageView{}).Where("viewed_at >= ?", since).Count(&count).Error
	return count, err
}
