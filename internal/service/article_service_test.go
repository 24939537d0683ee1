package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/khoborpatra/khoborpatra/internal/constants"
	"github.com/khoborpatra/khoborpatra/internal/models"
	"github.com/khoborpatra/khoborpatra/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// serviceDeps wires real repositories over an in-memory sqlite database
// so service tests exercise the same SQL paths as production.
type serviceDeps struct {
	db         *gorm.DB
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	tags       repository.TagRepository
	users      repository.UserRepository
	comments   repository.CommentRepository
	pageViews  repository.PageViewRepository
	newsletter repository.NewsletterRepository
	ads        repository.AdvertisementRepository
}

func newServiceDeps(t *testing.T) *serviceDeps {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	err = db.AutoMigrate(
		&models.Category{},
		&models.User{},
		&models.Tag{},
		&models.Article{},
		&models.ArticleTag{},
		&models.Comment{},
		&models.PageView{},
		&models.Newsletter{},
		&models.Advertisement{},
	)
	if err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return &serviceDeps{
		db:         db,
		articles:   repository.NewArticleRepository(db),
		categories: repository.NewCategoryRepository(db),
		tags:       repository.NewTagRepository(db),
		users:      repository.NewUserRepository(db),
		comments:   repository.NewCommentRepository(db),
		pageViews:  repository.NewPageViewRepository(db),
		newsletter: repository.NewNewsletterRepository(db),
		ads:        repository.NewAdvertisementRepository(db),
	}
}

func (d *serviceDeps) articleService() *ArticleService {
	return NewArticleService(d.articles, d.categories, d.tags, d.users, d.comments, d.pageViews)
}

func (d *serviceDeps) seedCategory(t *testing.T, slug string) *models.Category {
	t.Helper()
	category := models.Category{Name: slug, Slug: slug, IsActive: true}
	if err := d.categories.Create(&category); err != nil {
		t.Fatalf("seed category failed: %v", err)
	}
	return &category
}

func (d *serviceDeps) seedTag(t *testing.T, slug string) *models.Tag {
	t.Helper()
	tag := models.Tag{Name: slug, Slug: slug, IsActive: true}
	if err := d.tags.Create(&tag); err != nil {
		t.Fatalf("seed tag failed: %v", err)
	}
	return &tag
}

func (d *serviceDeps) seedUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := models.User{Email: email, Password: "x", Name: email, Role: constants.UserRoleReporter, IsActive: true}
	if err := d.users.Create(&user); err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	return &user
}

func TestArticleCreateDerivesSlugAndSuffixesOnCollision(t *testing.T) {
	deps := newServiceDeps(t)
	svc := deps.articleService()

	first, err := svc.Create(ArticleInput{Title: "Budget Session Opens", Content: "<p>body</p>"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if first.Slug != "budget-session-opens" {
		t.Fatalf("slug = %q", first.Slug)
	}

	second, err := svc.Create(ArticleInput{Title: "Budget Session Opens", Content: "<p>more</p>"})
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if second.Slug == first.Slug {
		t.Fatalf("colliding title should get a suffixed slug, both are %q", second.Slug)
	}
	if !strings.HasPrefix(second.Slug, "budget-session-opens-") {
		t.Fatalf("suffixed slug = %q", second.Slug)
	}
}

func TestArticleCreateExplicitSlugConflict(t *testing.T) {
	deps := newServiceDeps(t)
	svc := deps.articleService()

	if _, err := svc.Create(ArticleInput{Title: "First", Slug: "taken", Content: "a"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	_, err := svc.Create(ArticleInput{Title: "Second", Slug: "taken", Content: "b"})
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("want ErrSlugExists, got %v", err)
	}
}

func TestArticleCreateSanitizesContentAndDerivesExcerpt(t *testing.T) {
	deps := newServiceDeps(t)
	svc := deps.articleService()

	article, err := svc.Create(ArticleInput{
		Title:   "Injection Attempt",
		Content: `<p>safe</p><script>alert(1)</script>`,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if strings.Contains(article.Content, "script") {
		t.Fatalf("content not sanitized: %q", article.Content)
	}
	if article.Excerpt != "safe" {
		t.Fatalf("derived excerpt = %q", article.Excerpt)
	}
}

func TestArticleCreatePublishStampsPublishedAt(t *testing.T) {
	deps := newServiceDeps(t)
	svc := deps.articleService()

	published := true
	article, err := svc.Create(ArticleInput{Title: "Live Now", Content: "x", IsPublished: &published})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !article.IsPublished || article.PublishedAt == nil {
		t.Fatalf("publish flag/timestamp missing: %+v", article)
	}
}

func TestArticleUpdatePublishStampsOnce(t *testing.T) {
	deps := newServiceDeps(t)
	svc := deps.articleService()

	article, err := svc.Create(ArticleInput{Title: "Drafted", Content: "x"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if article.PublishedAt != nil {
		t.Fatalf("draft should have no publish timestamp")
	}

	published := true
	updated, err := svc.Update(article.ID, ArticleInput{IsPublished: &published})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if updated.PublishedAt == nil {
		t.Fatalf("publish should stamp PublishedAt")
	}
	stamp := *updated.PublishedAt

	time.Sleep(5 * time.Millisecond)
	again, err := svc.Update(article.ID, ArticleInput{IsPublished: &published})
	if err != nil {
		t.Fatalf("re-publish failed: %v", err)
	}
	if !again.PublishedAt.Equal(stamp) {
		t.Fatalf("re-publish moved the timestamp: %v -> %v", stamp, again.PublishedAt)
	}
}

func TestArticleCreateUnknownTagRejected(t *testing.T) {
	deps := newServiceDeps(t)
	svc := deps.articleService()
	tag := deps.seedTag(t, "cricket")

	_, err := svc.Create(ArticleInput{Title: "Tagged", Content: "x", TagIDs: []uint{tag.ID, 9999}})
	if !errors.Is(err, ErrUnknownTag) {
		t.Fatalf("want ErrUnknownTag, got %v", err)
	}
}

func TestArticleCreateUnknownCategoryRejected(t *testing.T) {
	deps := newServiceDeps(t)
	svc := deps.articleService()

	missing := uint(404)
	_, err := svc.Create(ArticleInput{Title: "Orphan", Content: "x", CategoryID: &missing})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("want ErrCategoryNotFound, got %v", err)
	}
}

func TestArticleCreateValidation(t *testing.T) {
	deps := newServiceDeps(t)
	svc := deps.articleService()

	_, err := svc.Create(ArticleInput{})
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if len(ve.Fields) != 2 {
		t.Fatalf("want title+content violations, got %+v", ve.Fields)
	}
}

func TestArticleCreateInvalidStatus(t *testing.T) {
	deps := newServiceDeps(t)
	svc := deps.articleService()

	_, err := svc.Create(ArticleInput{Title: "Bad", Content: "x", Status: "deleted"})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("want ErrInvalidStatus, got %v", err)
	}
}

func TestArticleGetBySlugComposesDetail(t *testing.T) {
	deps := newServiceDeps(t)
	svc := deps.articleService()

	category := deps.seedCategory(t, "sports")
	author := deps.seedUser(t, "reporter@example.com")
	tag := deps.seedTag(t, "cricket")

	published := true
	article, err := svc.Create(ArticleInput{
		Title:       "Series Win",
		Content:     "x",
		CategoryID:  &category.ID,
		AuthorID:    &author.ID,
		TagIDs:      []uint{tag.ID},
		IsPublished: &published,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	detail, err := svc.GetBySlug(article.Slug)
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if detail.Category == nil || detail.Category.ID != category.ID {
		t.Fatalf("category missing from detail")
	}
	if detail.Author == nil || detail.Author.Email != author.Email {
		t.Fatalf("author missing from detail")
	}
	if len(detail.Tags) != 1 || detail.Tags[0].ID != tag.ID {
		t.Fatalf("tags missing from detail: %+v", detail.Tags)
	}
	if detail.Article.Category != nil || detail.Article.Author != nil || detail.Article.Tags != nil {
		t.Fatalf("relations should live on the envelope, not the row")
	}
}

func TestArticleGetBySlugNotFound(t *testing.T) {
	deps := newServiceDeps(t)
	svc := deps.articleService()

	_, err := svc.GetBySlug("no-such-story")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestArticleRecordView(t *testing.T) {
	deps := newServiceDeps(t)
	svc := deps.articleService()

	article, err := svc.Create(ArticleInput{Title: "Viewed", Content: "x"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err = svc.RecordView(article.ID, ViewMeta{IPAddress: "10.0.0.1", SessionID: "s1"})
	if err != nil {
		t.Fatalf("record view failed: %v", err)
	}

	refreshed, err := svc.GetByID(article.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if refreshed.ViewCount != 1 {
		t.Fatalf("view count = %d, want 1", refreshed.ViewCount)
	}

	var views int64
	if err := deps.db.Model(&models.PageView{}).Where("article_id = ?", article.ID).Count(&views).Error; err != nil {
		t.Fatalf("count page views failed: %v", err)
	}
	if views != 1 {
		t.Fatalf("page view rows = %d, want 1", views)
	}
}

func TestArticleRecordViewMissingArticleIsNoop(t *testing.T) {
	deps := newServiceDeps(t)
	svc := deps.articleService()

	if err := svc.RecordView(4242, ViewMeta{IPAddress: "10.0.0.1"}); err != nil {
		t.Fatalf("record view for missing article should be silent, got %v", err)
	}

	var views int64
	if err := deps.db.Model(&models.PageView{}).Count(&views).Error; err != nil {
		t.Fatalf("count page views failed: %v", err)
	}
	if views != 0 {
		t.Fatalf("no page view row expected, got %d", views)
	}
}

func TestArticleDeleteNotFound(t *testing.T) {
	deps := newServiceDeps(t)
	svc := deps.articleService()

	if err := svc.Delete(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestClampPriority(t *testing.T) {
	low, high, mid := 0, 99, 7
	if got := clampPriority(nil, 5); got != 5 {
		t.Fatalf("nil priority should keep fallback, got %d", got)
	}
	if got := clampPriority(&low, 5); got != 1 {
		t.Fatalf("low clamp = %d", got)
	}
	if got := clampPriority(&high, 5); got != 10 {
		t.Fatalf("high clamp = %d", got)
	}
	if got := clampPriority(&mid, 5); got != 7 {
		t.Fatalf("in-range priority changed: %d", got)
	}
}
