package service

import (
	"strings"
	"time"

	"github.com/khoborpatra/khoborpatra/internal/constants"
	"github.com/khoborpatra/khoborpatra/internal/models"
	"github.com/khoborpatra/khoborpatra/internal/repository"
)

// CommentService reader comment business service
type CommentService struct {
	comments    repository.CommentRepository
	articles    repository.ArticleRepository
	autoApprove bool
}

// NewCommentService creates the comment service
func NewCommentService(comments repository.CommentRepository, articles repository.ArticleRepository, autoApprove bool) *CommentService {
	return &CommentService{comments: comments, articles: articles, autoApprove: autoApprove}
}

// CommentInput create comment input
type CommentInput struct {
	ArticleID    uint
	ParentID     *uint
	AuthorName   string
	AuthorEmail  string
	AuthorAvatar string
	Content      string
	ContentBn    string
	IPAddress    string
	UserAgent    string
}

// ListCommentsInput admin list input
type ListCommentsInput struct {
	Page       int
	Limit      int
	ArticleID  uint
	IsApproved *bool
	IsReported *bool
	SortBy     string
	SortOrder  string
}

// List admin comment list with moderation filters
func (s *CommentService) List(input ListCommentsInput) ([]models.Comment, int64, error) {
	page, limit := repository.NormalizePagination(input.Page, input.Limit)
	return s.comments.List(repository.CommentListFilter{
		Page:       page,
		Limit:      limit,
		ArticleID:  input.ArticleID,
		IsApproved: input.IsApproved,
		IsReported: input.IsReported,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	})
}

// Threaded returns a page of approved parents with their approved
// replies attached. Two queries total, regardless of page size.
func (s *CommentService) Threaded(articleID uint, page, limit int) ([]models.Comment, int64, error) {
	article, err := s.articles.GetByID(articleID)
	if err != nil {
		return nil, 0, err
	}
	if article == nil {
		return nil, 0, ErrNotFound
	}
	return s.threadedPage(articleID, page, limit)
}

// ThreadedBySlug is Threaded with the article addressed by slug
func (s *CommentService) ThreadedBySlug(slug string, page, limit int) ([]models.Comment, int64, error) {
	article, err := s.articles.GetBySlug(slug)
	if err != nil {
		return nil, 0, err
	}
	if article == nil {
		return nil, 0, ErrNotFound
	}
	return s.threadedPage(article.ID, page, limit)
}

func (s *CommentService) threadedPage(articleID uint, page, limit int) ([]models.Comment, int64, error) {
	page, limit = repository.NormalizePagination(page, limit)
	parents, total, err := s.comments.ListApprovedParents(articleID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	if len(parents) == 0 {
		return []models.Comment{}, total, nil
	}

	parentIDs := make([]uint, 0, len(parents))
	for i := range parents {
		parentIDs = append(parentIDs, parents[i].ID)
	}
	replies, err := s.comments.ListApprovedReplies(articleID, parentIDs)
	if err != nil {
		return nil, 0, err
	}

	grouped := make(map[uint][]*models.Comment, len(parents))
	for i := range replies {
		reply := &replies[i]
		grouped[*reply.ParentID] = append(grouped[*reply.ParentID], reply)
	}
	for i := range parents {
		thread := grouped[parents[i].ID]
		if thread == nil {
			thread = []*models.Comment{}
		}
		parents[i].Replies = thread
	}
	return parents, total, nil
}

// Create validates threading rules and inserts the comment. Replies bump
// the parent's reply counter.
func (s *CommentService) Create(input CommentInput) (*models.Comment, error) {
	if err := validateCommentInput(input); err != nil {
		return nil, err
	}

	article, err := s.articles.GetByID(input.ArticleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}

	if input.ParentID != nil {
		parent, err := s.comments.GetByID(*input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrParentCommentNotFound
		}
		if parent.ArticleID != input.ArticleID {
			return nil, ErrParentCommentMismatch
		}
		if parent.ParentID != nil {
			return nil, ErrReplyDepthExceeded
		}
	}

	comment := models.Comment{
		ArticleID:    input.ArticleID,
		ParentID:     input.ParentID,
		AuthorName:   strings.TrimSpace(input.AuthorName),
		AuthorEmail:  strings.TrimSpace(input.AuthorEmail),
		AuthorAvatar: input.AuthorAvatar,
		Content:      SanitizeHTML(input.Content),
		ContentBn:    SanitizeHTML(input.ContentBn),
		IsApproved:   s.autoApprove,
		IPAddress:    input.IPAddress,
		UserAgent:    input.UserAgent,
	}
	if err := s.comments.Create(&comment); err != nil {
		return nil, err
	}

	if comment.ParentID != nil {
		if err := s.comments.IncrementReplyCount(*comment.ParentID, 1); err != nil {
			return nil, err
		}
	}
	if comment.IsApproved {
		if err := s.articles.AdjustCommentCount(comment.ArticleID, 1); err != nil {
			return nil, err
		}
	}
	return &comment, nil
}

// Update edits the comment body
func (s *CommentService) Update(id uint, content, contentBn string) (*models.Comment, error) {
	comment, err := s.comments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(content) == "" {
		return nil, &ValidationError{Fields: []FieldError{{Field: "content", Message: "content is required"}}}
	}

	comment.Content = SanitizeHTML(content)
	if contentBn != "" {
		comment.ContentBn = SanitizeHTML(contentBn)
	}
	if err := s.comments.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment and its replies, keeping counters in line.
// Returns the affected article's id so callers can schedule a recount.
func (s *CommentService) Delete(id uint) (uint, error) {
	comment, err := s.comments.GetByID(id)
	if err != nil {
		return 0, err
	}
	if comment == nil {
		return 0, ErrNotFound
	}

	removedApproved := 0
	if comment.IsApproved {
		removedApproved++
	}
	if comment.ParentID == nil {
		approvedReplies, err := s.comments.CountApprovedReplies(comment.ID)
		if err != nil {
			return 0, err
		}
		removedApproved += int(approvedReplies)
		if _, err := s.comments.DeleteReplies(comment.ID); err != nil {
			return 0, err
		}
	}
	if err := s.comments.Delete(id); err != nil {
		return 0, err
	}

	if comment.ParentID != nil {
		if err := s.comments.IncrementReplyCount(*comment.ParentID, -1); err != nil {
			return 0, err
		}
	}
	if removedApproved > 0 {
		if err := s.articles.AdjustCommentCount(comment.ArticleID, -removedApproved); err != nil {
			return 0, err
		}
	}
	return comment.ArticleID, nil
}

// Recount recomputes an article's approved comment total from the
// comment rows and writes it back, squashing any counter drift.
func (s *CommentService) Recount(articleID uint) (int64, error) {
	if articleID == 0 {
		return 0, ErrNotFound
	}
	approved, err := s.comments.CountApprovedByArticle(articleID)
	if err != nil {
		return 0, err
	}
	if err := s.articles.SetCommentCount(articleID, approved); err != nil {
		return 0, err
	}
	return approved, nil
}

// Moderate applies approve/reject. Last write wins; re-running the same
// action just restamps the moderation fields.
func (s *CommentService) Moderate(id uint, action string, moderatorID uint) (*models.Comment, error) {
	approve := false
	switch strings.TrimSpace(action) {
	case constants.ModerationActionApprove:
		approve = true
	case constants.ModerationActionReject:
	default:
		return nil, ErrInvalidModerationAction
	}

	comment, err := s.comments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrNotFound
	}

	wasApproved := comment.IsApproved
	now := time.Now()
	comment.IsApproved = approve
	comment.ModeratedBy = &moderatorID
	comment.ModeratedAt = &now
	if err := s.comments.Update(comment); err != nil {
		return nil, err
	}

	if approve != wasApproved {
		delta := 1
		if !approve {
			delta = -1
		}
		if err := s.articles.AdjustCommentCount(comment.ArticleID, delta); err != nil {
			return nil, err
		}
	}
	return comment, nil
}

// Report flags a comment for review; approval state is untouched
func (s *CommentService) Report(id uint) (*models.Comment, error) {
	comment, err := s.comments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	comment.IsReported = true
	if err := s.comments.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// CountPending comments awaiting a first moderation pass
func (s *CommentService) CountPending() (int64, error) {
	return s.comments.CountPending()
}

func validateCommentInput(input CommentInput) error {
	collector := &fieldCollector{}
	if input.ArticleID == 0 {
		collector.add("article_id", "article_id is required")
	}
	if strings.TrimSpace(input.AuthorName) == "" {
		collector.add("author_name", "author_name is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		collector.add("content", "content is required")
	}
	if len(input.Content) > 5000 {
		collector.add("content", "content must be at most 5000 characters")
	}
	return collector.err()
}
