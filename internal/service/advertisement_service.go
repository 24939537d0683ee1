package service

import (
	"strings"
	"time"

	"github.com/khoborpatra/khoborpatra/internal/constants"
	"github.com/khoborpatra/khoborpatra/internal/models"
	"github.com/khoborpatra/khoborpatra/internal/repository"
)

// AdvertisementService ad placement business service
type AdvertisementService struct {
	repo repository.AdvertisementRepository
}

// NewAdvertisementService creates the advertisement service
func NewAdvertisementService(repo repository.AdvertisementRepository) *AdvertisementService {
	return &AdvertisementService{repo: repo}
}

// AdvertisementInput create/update ad input
type AdvertisementInput struct {
	Title       string
	Description string
	ImageURL    string
	ClickURL    string
	Position    string
	IsActive    *bool
	StartDate   *time.Time
	EndDate     *time.Time
}

var allowedAdPositions = map[string]struct{}{
	constants.AdPositionHeader:  {},
	constants.AdPositionSidebar: {},
	constants.AdPositionInline:  {},
	constants.AdPositionFooter:  {},
}

// Active live placements for a position; impressions are counted per serve
func (s *AdvertisementService) Active(position string) ([]models.Advertisement, error) {
	ads, err := s.repo.List(repository.AdvertisementListFilter{
		Position:   position,
		OnlyActive: true,
	})
	if err != nil {
		return nil, err
	}
	for i := range ads {
		// best effort; a lost impression is not worth failing the read
		_ = s.repo.RecordImpression(ads[i].ID)
	}
	return ads, nil
}

// Click records a click-through
func (s *AdvertisementService) Click(id uint) error {
	ad, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if ad == nil {
		return ErrNotFound
	}
	return s.repo.RecordClick(id)
}

// Create creates a placement
func (s *AdvertisementService) Create(input AdvertisementInput) (*models.Advertisement, error) {
	collector := &fieldCollector{}
	if strings.TrimSpace(input.Title) == "" {
		collector.add("title", "title is required")
	}
	if strings.TrimSpace(input.ClickURL) == "" {
		collector.add("click_url", "click_url is required")
	}
	position := strings.TrimSpace(input.Position)
	if _, ok := allowedAdPositions[position]; !ok {
		collector.add("position", "position must be one of header, sidebar, inline, footer")
	}
	if err := collector.err(); err != nil {
		return nil, err
	}

	ad := models.Advertisement{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		ImageURL:    input.ImageURL,
		ClickURL:    strings.TrimSpace(input.ClickURL),
		Position:    position,
		IsActive:    true,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}
	if input.IsActive != nil {
		ad.IsActive = *input.IsActive
	}
	if err := s.repo.Create(&ad); err != nil {
		return nil, err
	}
	return &ad, nil
}

// Delete removes a placement
func (s *AdvertisementService) Delete(id uint) error {
	ad, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if ad == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}
