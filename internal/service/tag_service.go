package service

import (
	"strings"

	"github.com/khoborpatra/khoborpatra/internal/models"
	"github.com/khoborpatra/khoborpatra/internal/repository"
)

// TagService tag business service
type TagService struct {
	repo     repository.TagRepository
	articles repository.ArticleRepository
}

// NewTagService creates the tag service
func NewTagService(repo repository.TagRepository, articles repository.ArticleRepository) *TagService {
	return &TagService{repo: repo, articles: articles}
}

// TagInput create/update tag input
type TagInput struct {
	Name        string
	NameBn      string
	Slug        string
	Description string
	Color       string
	IsActive    *bool
}

// ListTagsInput list query input
type ListTagsInput struct {
	Page       int
	Limit      int
	Search     string
	OnlyActive bool
	SortBy     string
	SortOrder  string
}

// List tags with usage counts
func (s *TagService) List(input ListTagsInput) ([]repository.TagWithCount, int64, error) {
	page, limit := repository.NormalizePagination(input.Page, input.Limit)
	return s.repo.List(repository.TagListFilter{
		Page:       page,
		Limit:      limit,
		Search:     input.Search,
		OnlyActive: input.OnlyActive,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	})
}

// Popular most used active tags
func (s *TagService) Popular(limit int) ([]repository.TagWithCount, error) {
	return s.repo.Popular(limit)
}

// GetBySlug one tag by slug
func (s *TagService) GetBySlug(slug string) (*models.Tag, error) {
	tag, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrNotFound
	}
	return tag, nil
}

// Create creates a tag
func (s *TagService) Create(input TagInput) (*models.Tag, error) {
	if err := validateTagInput(input, true); err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = MakeSlug(input.Name)
	}
	count, err := s.repo.CountBySlug(slug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	tag := models.Tag{
		Name:        strings.TrimSpace(input.Name),
		NameBn:      strings.TrimSpace(input.NameBn),
		Slug:        slug,
		Description: input.Description,
		IsActive:    true,
	}
	if input.Color != "" {
		tag.Color = input.Color
	}
	if input.IsActive != nil {
		tag.IsActive = *input.IsActive
	}
	if err := s.repo.Create(&tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// Update updates a tag
func (s *TagService) Update(id uint, input TagInput) (*models.Tag, error) {
	tag, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrNotFound
	}

	if err := validateTagInput(input, false); err != nil {
		return nil, err
	}

	if slug := strings.TrimSpace(input.Slug); slug != "" && slug != tag.Slug {
		count, err := s.repo.CountBySlug(slug, &id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlugExists
		}
		tag.Slug = slug
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		tag.Name = name
	}
	if nameBn := strings.TrimSpace(input.NameBn); nameBn != "" {
		tag.NameBn = nameBn
	}
	if input.Description != "" {
		tag.Description = input.Description
	}
	if input.Color != "" {
		tag.Color = input.Color
	}
	if input.IsActive != nil {
		tag.IsActive = *input.IsActive
	}

	if err := s.repo.Update(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Delete refuses while junction rows still reference the tag
func (s *TagService) Delete(id uint) error {
	tag, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if tag == nil {
		return ErrNotFound
	}

	count, err := s.articles.CountByTag(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrTagInUse
	}
	return s.repo.Delete(id)
}

func validateTagInput(input TagInput, creating bool) error {
	collector := &fieldCollector{}
	name := strings.TrimSpace(input.Name)
	if creating && name == "" {
		collector.add("name", "name is required")
	}
	if len(name) > 100 {
		collector.add("name", "name must be at most 100 characters")
	}
	if color := strings.TrimSpace(input.Color); color != "" && !strings.HasPrefix(color, "#") {
		collector.add("color", "color must be a hex value like #3B82F6")
	}
	return collector.err()
}
