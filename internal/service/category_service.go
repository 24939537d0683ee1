package service

import (
	"strings"

	"github.com/khoborpatra/khoborpatra/internal/models"
	"github.com/khoborpatra/khoborpatra/internal/repository"
)

// CategoryService section tree business service
type CategoryService struct {
	repo     repository.CategoryRepository
	articles repository.ArticleRepository
}

// NewCategoryService creates the category service
func NewCategoryService(repo repository.CategoryRepository, articles repository.ArticleRepository) *CategoryService {
	return &CategoryService{repo: repo, articles: articles}
}

// CategoryInput create/update category input
type CategoryInput struct {
	Name         string
	NameBn       string
	Slug         string
	Description  string
	ParentID     *uint
	DisplayOrder *int
	IsActive     *bool
}

// Tree returns active categories as root nodes with children attached.
// One fetch, two in-memory passes. A node whose parent is missing or
// inactive is promoted to a root instead of being dropped.
func (s *CategoryService) Tree() ([]*models.Category, error) {
	categories, err := s.repo.ListActive()
	if err != nil {
		return nil, err
	}

	nodes := make(map[uint]*models.Category, len(categories))
	ordered := make([]*models.Category, 0, len(categories))
	for i := range categories {
		node := &categories[i]
		node.Children = []*models.Category{}
		nodes[node.ID] = node
		ordered = append(ordered, node)
	}

	roots := make([]*models.Category, 0, len(ordered))
	for _, node := range ordered {
		if node.ParentID == nil || *node.ParentID == node.ID {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*node.ParentID]
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots, nil
}

// ListWithCount active categories with published article counts
func (s *CategoryService) ListWithCount() ([]repository.CategoryWithCount, error) {
	return s.repo.ListWithCount()
}

// Popular most used active categories
func (s *CategoryService) Popular(limit int) ([]repository.CategoryWithCount, error) {
	return s.repo.Popular(limit)
}

// GetBySlug one category with parent and direct children attached
func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	category, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}

	if category.ParentID != nil {
		parent, err := s.repo.GetByID(*category.ParentID)
		if err != nil {
			return nil, err
		}
		category.Parent = parent
	}
	children, err := s.repo.ListChildren(category.ID)
	if err != nil {
		return nil, err
	}
	category.Children = make([]*models.Category, 0, len(children))
	for i := range children {
		category.Children = append(category.Children, &children[i])
	}
	return category, nil
}

// Create creates a category
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	if err := validateCategoryInput(input, true); err != nil {
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

	if input.ParentID != nil {
		parent, err := s.repo.GetByID(*input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrParentCategoryNotFound
		}
	}

	category := models.Category{
		Name:        strings.TrimSpace(input.Name),
		NameBn:      strings.TrimSpace(input.NameBn),
		Slug:        slug,
		Description: input.Description,
		ParentID:    input.ParentID,
		IsActive:    true,
	}
	if input.DisplayOrder != nil {
		category.DisplayOrder = *input.DisplayOrder
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update updates a category
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}

	if err := validateCategoryInput(input, false); err != nil {
		return nil, err
	}

	if slug := strings.TrimSpace(input.Slug); slug != "" && slug != category.Slug {
		count, err := s.repo.CountBySlug(slug, &id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlugExists
		}
		category.Slug = slug
	}

	if input.ParentID != nil {
		if *input.ParentID == id {
			return nil, ErrSelfParent
		}
		parent, err := s.repo.GetByID(*input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrParentCategoryNotFound
		}
		category.ParentID = input.ParentID
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		category.Name = name
	}
	if nameBn := strings.TrimSpace(input.NameBn); nameBn != "" {
		category.NameBn = nameBn
	}
	if input.Description != "" {
		category.Description = input.Description
	}
	if input.DisplayOrder != nil {
		category.DisplayOrder = *input.DisplayOrder
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete refuses while articles or child categories still point here.
// The two pre-checks race with concurrent writes; the answer is a clean
// conflict rather than an orphaned row.
func (s *CategoryService) Delete(id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}

	articleCount, err := s.articles.CountByCategory(id)
	if err != nil {
		return err
	}
	if articleCount > 0 {
		return ErrCategoryHasArticles
	}

	childCount, err := s.repo.CountChildren(id)
	if err != nil {
		return err
	}
	if childCount > 0 {
		return ErrCategoryHasChildren
	}
	return s.repo.Delete(id)
}

func validateCategoryInput(input CategoryInput, creating bool) error {
	collector := &fieldCollector{}
	name := strings.TrimSpace(input.Name)
	if creating && name == "" {
		collector.add("name", "name is required")
	}
	if len(name) > 200 {
		collector.add("name", "name must be at most 200 characters")
	}
	return collector.err()
}
