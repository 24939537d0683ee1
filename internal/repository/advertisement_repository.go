package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/khoborpatra/khoborpatra/internal/models"

	"gorm.io/gorm"
)

// AdvertisementRepository advertisement placement store
type AdvertisementRepository interface {
	List(filter AdvertisementListFilter) ([]models.Advertisement, error)
	GetByID(id uint) (*models.Advertisement, error)
	Create(ad *models.Advertisement) error
	Update(ad *models.Advertisement) error
	Delete(id uint) error
	RecordImpression(id uint) error
	RecordClick(id uint) error
}

// GormAdvertisementRepository GORM implementation
type GormAdvertisementRepository struct {
	db *gorm.DB
}

// NewAdvertisementRepository creates the advertisement repository
func NewAdvertisementRepository(db *gorm.DB) *GormAdvertisementRepository {
	return &GormAdvertisementRepository{db: db}
}

// List placements, optionally scoped to a position and the active window
func (r *GormAdvertisementRepository) List(filter AdvertisementListFilter) ([]models.Advertisement, error) {
	query := r.db.Model(&models.Advertisement{})
	if position := strings.TrimSpace(filter.Position); position != "" {
		query = query.Where("position = ?", position)
	}
	if filter.OnlyActive {
		now := time.Now()
		if filter.At != nil {
			now = *filter.At
		}
		query = query.Where("is_active = ?", true).
			Where("start_date IS NULL OR start_date <= ?", now).
			Where("end_date IS NULL OR end_date >= ?", now)
	}
	var ads []models.Advertisement
	if err := query.Order("created_at DESC, id DESC").Find(&ads).Error; err != nil {
		return nil, err
	}
	return ads, nil
}

// GetByID fetches one placement
func (r *GormAdvertisementRepository) GetByID(id uint) (*models.Advertisement, error) {
	var ad models.Advertisement
	if err := r.db.First(&ad, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ad, nil
}

// Create inserts a placement
func (r *GormAdvertisementRepository) Create(ad *models.Advertisement) error {
	return r.db.Create(ad).Error
}

// Update saves a placement
func (r *GormAdvertisementRepository) Update(ad *models.Advertisement) error {
	return r.db.Save(ad).Error
}

// Delete removes a placement
func (r *GormAdvertisementRepository) Delete(id uint) error {
	return r.db.Delete(&models.Advertisement{}, id).Error
}

// RecordImpression bumps the impression counter in place
func (r *GormAdvertisementRepository) RecordImpression(id uint) error {
	return r.db.Model(&models.Advertisement{}).
		Where("id = ?", id).
		UpdateColumn("impressions", gorm.Expr("impressions + ?", 1)).Error
}

// RecordClick bumps the click counter in place
func (r *GormAdvertisementRepository) RecordClick(id uint) error {
	return r.db.Model(&models.Advertisement{}).
		Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", 1)).Error
}
