package repository

import (
	"errors"

	"github.com/khoborpatra/khoborpatra/internal/models"

	"gorm.io/gorm"
)

// NewsletterRepository newsletter subscription store
type NewsletterRepository interface {
	GetByEmail(email string) (*models.Newsletter, error)
	Create(subscription *models.Newsletter) error
	Update(subscription *models.Newsletter) error
	CountActive() (int64, error)
}

// GormNewsletterRepository GORM implementation
type GormNewsletterRepository struct {
	db *gorm.DB
}

// NewNewsletterRepository creates the newsletter repository
func NewNewsletterRepository(db *gorm.DB) *GormNewsletterRepository {
	return &GormNewsletterRepository{db: db}
}

// GetByEmail fetches one subscription by email
func (r *GormNewsletterRepository) GetByEmail(email string) (*models.Newsletter, error) {
	var subscription models.Newsletter
	if err := r.db.Where("email = ?", email).First(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscription, nil
}

// Create inserts a subscription
func (r *GormNewsletterRepository) Create(subscription *models.Newsletter) error {
	return r.db.Create(subscription).Error
}

// Update saves a subscription
func (r *GormNewsletterRepository) Update(subscription *models.Newsletter) error {
	return r.db.Save(subscription).Error
}

// CountActive counts live subscriptions
func (r *GormNewsletterRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Newsletter{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
