package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/khoborpatra/khoborpatra/internal/constants"
	"github.com/khoborpatra/khoborpatra/internal/models"

	"gorm.io/gorm"
)

// CommentRepository comment data access interface
type CommentRepository interface {
	List(filter CommentListFilter) ([]models.Comment, int64, error)
	ListApprovedParents(articleID uint, page, limit int) ([]models.Comment, int64, error)
	ListApprovedReplies(articleID uint, parentIDs []uint) ([]models.Comment, error)
	GetByID(id uint) (*models.Comment, error)
	Create(comment *models.Comment) error
	Update(comment *models.Comment) error
	Delete(id uint) error
	DeleteReplies(parentID uint) (int64, error)
	CountApprovedReplies(parentID uint) (int64, error)
	CountApprovedByArticle(articleID uint) (int64, error)
	CountPending() (int64, error)
	IncrementReplyCount(id uint, delta int) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CommentRepository
}

// GormCommentRepository GORM implementation
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates the comment repository
func NewCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// WithTx binds a transaction
func (r *GormCommentRepository) WithTx(tx *gorm.DB) CommentRepository {
	if tx == nil {
		return r
	}
	return &GormCommentRepository{db: tx}
}

// Transaction runs fn inside a transaction
func (r *GormCommentRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

var commentSortColumns = map[string]string{
	"created_at":  "created_at",
	"like_count":  "like_count",
	"reply_count": "reply_count",
}

// List admin-facing comment list with moderation filters
func (r *GormCommentRepository) List(filter CommentListFilter) ([]models.Comment, int64, error) {
	query := r.db.Model(&models.Comment{})
	if filter.ArticleID != 0 {
		query = query.Where("article_id = ?", filter.ArticleID)
	}
	if filter.IsApproved != nil {
		query = query.Where("is_approved = ?", *filter.IsApproved)
	}
	if filter.IsReported != nil {
		query = query.Where("is_reported = ?", *filter.IsReported)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := commentSortColumns[strings.TrimSpace(filter.SortBy)]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(strings.TrimSpace(filter.SortOrder), constants.SortOrderAsc) {
		direction = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s, id DESC", column, direction))
	query = applyPagination(query, filter.Page, filter.Limit)

	var comments []models.Comment
	if err := query.Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// ListApprovedParents returns a page of approved top-level comments,
// newest first, with the total parent count.
func (r *GormCommentRepository) ListApprovedParents(articleID uint, page, limit int) ([]models.Comment, int64, error) {
	query := r.db.Model(&models.Comment{}).
		Where("article_id = ? AND is_approved = ? AND parent_id IS NULL", articleID, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC, id DESC")
	query = applyPagination(query, page, limit)

	var comments []models.Comment
	if err := query.Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// ListApprovedReplies fetches approved replies to the given parents in one
// bounded query, oldest first so threads read top-down.
func (r *GormCommentRepository) ListApprovedReplies(articleID uint, parentIDs []uint) ([]models.Comment, error) {
	if len(parentIDs) == 0 {
		return []models.Comment{}, nil
	}
	var replies []models.Comment
	err := r.db.
		Where("article_id = ? AND is_approved = ? AND parent_id IN ?", articleID, true, parentIDs).
		Order("created_at ASC, id ASC").
		Limit(constants.MaxReplyFetch).
		Find(&replies).Error
	if err != nil {
		return nil, err
	}
	return replies, nil
}

// GetByID fetches one comment
func (r *GormCommentRepository) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// Create inserts a comment
func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// Update saves a comment
func (r *GormCommentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// Delete removes a comment
func (r *GormCommentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}

// DeleteReplies removes every reply under a parent
func (r *GormCommentRepository) DeleteReplies(parentID uint) (int64, error) {
	result := r.db.Where("parent_id = ?", parentID).Delete(&models.Comment{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CountApprovedReplies counts every approved reply under a parent,
// unlike ListApprovedReplies which fetches a bounded window.
func (r *GormCommentRepository) CountApprovedReplies(parentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Where("parent_id = ? AND is_approved = ?", parentID, true).
		Count(&count).Error
	return count, err
}

// CountApprovedByArticle counts approved comments on an article
func (r *GormCommentRepository) CountApprovedByArticle(articleID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Where("article_id = ? AND is_approved = ?", articleID, true).
		Count(&count).Error
	return count, err
}

// CountPending counts comments awaiting moderation
func (r *GormCommentRepository) CountPending() (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Where("is_approved = ? AND moderated_at IS NULL", false).
		Count(&count).Error
	return count, err
}

// IncrementReplyCount moves a parent's reply counter, clamped at zero
func (r *GormCommentRepository) IncrementReplyCount(id uint, delta int) error {
	if id == 0 || delta == 0 {
		return nil
	}
	return r.db.Model(&models.Comment{}).
		Where("id = ?", id).
		UpdateColumn("reply_count", gorm.Expr(
			"CASE WHEN reply_count + ? < 0 THEN 0 ELSE reply_count + ? END", delta, delta,
		)).Error
}
