package service

import (
	"strings"

	"github.com/khoborpatra/khoborpatra/internal/constants"
	"github.com/khoborpatra/khoborpatra/internal/models"
	"github.com/khoborpatra/khoborpatra/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserService newsroom staff business service
type UserService struct {
	repo     repository.UserRepository
	articles repository.ArticleRepository
}

// NewUserService creates the user service
func NewUserService(repo repository.UserRepository, articles repository.ArticleRepository) *UserService {
	return &UserService{repo: repo, articles: articles}
}

// UserInput create/update user input
type UserInput struct {
	Email    string
	Password string
	Name     string
	NameBn   string
	Bio      string
	BioBn    string
	Avatar   string
	Role     string
	IsActive *bool
}

// ListUsersInput list query input
type ListUsersInput struct {
	Page     int
	Limit    int
	Search   string
	Role     string
	IsActive *bool
}

var allowedUserRoles = map[string]struct{}{
	constants.UserRoleAdmin:       {},
	constants.UserRoleEditor:      {},
	constants.UserRoleReporter:    {},
	constants.UserRoleContributor: {},
}

// List staff list, public projections only
func (s *UserService) List(input ListUsersInput) ([]models.UserPublic, int64, error) {
	page, limit := repository.NormalizePagination(input.Page, input.Limit)
	users, total, err := s.repo.List(repository.UserListFilter{
		Page:     page,
		Limit:    limit,
		Search:   input.Search,
		Role:     input.Role,
		IsActive: input.IsActive,
	})
	if err != nil {
		return nil, 0, err
	}
	public := make([]models.UserPublic, 0, len(users))
	for i := range users {
		public = append(public, users[i].PublicView())
	}
	return public, total, nil
}

// GetByID one user, public projection
func (s *UserService) GetByID(id uint) (*models.UserPublic, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	public := user.PublicView()
	return &public, nil
}

// GetByEmail internal fetch, full row
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	user, err := s.repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// Create creates a user with a bcrypt password hash
func (s *UserService) Create(input UserInput) (*models.UserPublic, error) {
	if err := validateUserInput(input, true); err != nil {
		return nil, err
	}

	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = constants.UserRoleReporter
	}
	if _, ok := allowedUserRoles[role]; !ok {
		return nil, ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	count, err := s.repo.CountByEmail(email, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    email,
		Password: string(hash),
		Name:     strings.TrimSpace(input.Name),
		NameBn:   strings.TrimSpace(input.NameBn),
		Bio:      input.Bio,
		BioBn:    input.BioBn,
		Avatar:   input.Avatar,
		Role:     role,
		IsActive: true,
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if err := s.repo.Create(&user); err != nil {
		return nil, err
	}
	public := user.PublicView()
	return &public, nil
}

// Update updates a user; a new password is rehashed
func (s *UserService) Update(id uint, input UserInput) (*models.UserPublic, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if err := validateUserInput(input, false); err != nil {
		return nil, err
	}

	if role := strings.TrimSpace(input.Role); role != "" {
		if _, ok := allowedUserRoles[role]; !ok {
			return nil, ErrInvalidRole
		}
		user.Role = role
	}

	if email := strings.ToLower(strings.TrimSpace(input.Email)); email != "" && email != user.Email {
		count, err := s.repo.CountByEmail(email, &id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrEmailExists
		}
		user.Email = email
	}

	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	if nameBn := strings.TrimSpace(input.NameBn); nameBn != "" {
		user.NameBn = nameBn
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.BioBn != "" {
		user.BioBn = input.BioBn
	}
	if input.Avatar != "" {
		user.Avatar = input.Avatar
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	public := user.PublicView()
	return &public, nil
}

// Delete refuses while the user is credited on articles
func (s *UserService) Delete(id uint) error {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	count, err := s.articles.CountByAuthor(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrUserHasArticles
	}
	return s.repo.Delete(id)
}

func validateUserInput(input UserInput, creating bool) error {
	collector := &fieldCollector{}
	email := strings.TrimSpace(input.Email)
	if creating && email == "" {
		collector.add("email", "email is required")
	}
	if email != "" && !strings.Contains(email, "@") {
		collector.add("email", "email is not valid")
	}
	if creating && strings.TrimSpace(input.Name) == "" {
		collector.add("name", "name is required")
	}
	if creating && len(input.Password) < 8 {
		collector.add("password", "password must be at least 8 characters")
	}
	if !creating && input.Password != "" && len(input.Password) < 8 {
		collector.add("password", "password must be at least 8 characters")
	}
	return collector.err()
}
