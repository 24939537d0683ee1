package service

import (
	"strings"
	"time"

	"github.com/khoborpatra/khoborpatra/internal/models"
	"github.com/khoborpatra/khoborpatra/internal/repository"
)

// NewsletterService subscription business service
type NewsletterService struct {
	repo repository.NewsletterRepository
}

// NewNewsletterService creates the newsletter service
func NewNewsletterService(repo repository.NewsletterRepository) *NewsletterService {
	return &NewsletterService{repo: repo}
}

// SubscribeInput subscribe request input
type SubscribeInput struct {
	Email       string
	Name        string
	Preferences map[string]interface{}
}

// Subscribe creates a subscription, or reactivates a lapsed one. Calling
// it twice with the same email is not an error.
func (s *NewsletterService) Subscribe(input SubscribeInput) (*models.Newsletter, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, &ValidationError{Fields: []FieldError{{Field: "email", Message: "a valid email is required"}}}
	}

	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.IsActive = true
		existing.UnsubscribedAt = nil
		if input.Name != "" {
			existing.Name = strings.TrimSpace(input.Name)
		}
		if input.Preferences != nil {
			existing.Preferences = models.JSON(input.Preferences)
		}
		if err := s.repo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	subscription := models.Newsletter{
		Email:       email,
		Name:        strings.TrimSpace(input.Name),
		Preferences: models.JSON(input.Preferences),
		IsActive:    true,
	}
	if err := s.repo.Create(&subscription); err != nil {
		return nil, err
	}
	return &subscription, nil
}

// Unsubscribe deactivates a subscription
func (s *NewsletterService) Unsubscribe(email string) error {
	subscription, err := s.repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if subscription == nil {
		return ErrNotFound
	}
	now := time.Now()
	subscription.IsActive = false
	subscription.UnsubscribedAt = &now
	return s.repo.Update(subscription)
}
