package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/khoborpatra/khoborpatra/internal/constants"
	"github.com/khoborpatra/khoborpatra/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
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
	)
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func createTestArticle(t *testing.T, repo *GormArticleRepository, slug string, published bool, publishedAt time.Time, mutate func(*models.Article)) *models.Article {
	t.Helper()
	article := &models.Article{
		Title:       "Title " + slug,
		TitleBn:     "শিরোনাম " + slug,
		Slug:        slug,
		Content:     "<p>body</p>",
		ContentBn:   "<p>বডি</p>",
		Status:      constants.ArticleStatusPublished,
		IsPublished: published,
		Priority:    constants.DefaultPriority,
	}
	if published {
		article.PublishedAt = &publishedAt
	}
	if mutate != nil {
		mutate(article)
	}
	if err := repo.Create(article); err != nil {
		t.Fatalf("create article %s failed: %v", slug, err)
	}
	return article
}

func createTestTag(t *testing.T, db *gorm.DB, name, slug string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name, NameBn: name + "-bn", Slug: slug, IsActive: true}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("create tag %s failed: %v", slug, err)
	}
	return tag
}

func TestArticleListTagFilterDeduplicates(t *testing.T) {
	db := openTestDB(t)
	repo := NewArticleRepository(db)

	now := time.Now()
	article := createTestArticle(t, repo, "two-tags", true, now, nil)
	other := createTestArticle(t, repo, "no-tags", true, now.Add(-time.Hour), nil)

	tagA := createTestTag(t, db, "Cricket", "cricket")
	tagB := createTestTag(t, db, "Dhaka", "dhaka")
	if err := repo.ReplaceTags(article.ID, []uint{tagA.ID, tagB.ID}); err != nil {
		t.Fatalf("replace tags failed: %v", err)
	}

	articles, total, err := repo.List(ArticleListFilter{
		Page:   1,
		Limit:  10,
		TagIDs: []uint{tagA.ID, tagB.ID},
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("article matching two tags should count once, total want 1 got %d", total)
	}
	if len(articles) != 1 || articles[0].ID != article.ID {
		t.Fatalf("expected only the tagged article, got %d rows", len(articles))
	}
	if len(articles[0].Tags) != 2 {
		t.Fatalf("tags should be hydrated, want 2 got %d", len(articles[0].Tags))
	}

	_ = other
}

func TestArticleListHydratesEmptyTagSlice(t *testing.T) {
	db := openTestDB(t)
	repo := NewArticleRepository(db)

	createTestArticle(t, repo, "plain", true, time.Now(), nil)

	articles, _, err := repo.List(ArticleListFilter{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("row count want 1 got %d", len(articles))
	}
	if articles[0].Tags == nil {
		t.Fatalf("untagged article should carry an empty slice, not nil")
	}
	if len(articles[0].Tags) != 0 {
		t.Fatalf("untagged article should have no tags, got %d", len(articles[0].Tags))
	}
}

func TestArticleListSortFallback(t *testing.T) {
	db := openTestDB(t)
	repo := NewArticleRepository(db)

	now := time.Now()
	older := createTestArticle(t, repo, "older", true, now.Add(-2*time.Hour), nil)
	newer := createTestArticle(t, repo, "newer", true, now, nil)

	articles, _, err := repo.List(ArticleListFilter{
		Page:   1,
		Limit:  10,
		SortBy: "password; DROP TABLE articles",
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("row count want 2 got %d", len(articles))
	}
	if articles[0].ID != newer.ID || articles[1].ID != older.ID {
		t.Fatalf("unknown sort column should fall back to published_at DESC")
	}
}

func TestArticleListPublishedFilterTriState(t *testing.T) {
	db := openTestDB(t)
	repo := NewArticleRepository(db)

	now := time.Now()
	createTestArticle(t, repo, "live", true, now, nil)
	createTestArticle(t, repo, "draft", false, now, func(a *models.Article) {
		a.Status = constants.ArticleStatusDraft
	})

	_, total, err := repo.List(ArticleListFilter{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("unfiltered list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("absent filter should match both states, total want 2 got %d", total)
	}

	published := true
	_, total, err = repo.List(ArticleListFilter{Page: 1, Limit: 10, IsPublished: &published})
	if err != nil {
		t.Fatalf("published list failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("published filter total want 1 got %d", total)
	}

	published = false
	_, total, err = repo.List(ArticleListFilter{Page: 1, Limit: 10, IsPublished: &published})
	if err != nil {
		t.Fatalf("draft list failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("unpublished filter total want 1 got %d", total)
	}
}

func TestArticleIncrementViewCount(t *testing.T) {
	db := openTestDB(t)
	repo := NewArticleRepository(db)

	article := createTestArticle(t, repo, "viewed", true, time.Now(), nil)

	affected, err := repo.IncrementViewCount(article.ID, 1)
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected want 1 got %d", affected)
	}

	affected, err = repo.IncrementViewCount(article.ID+1000, 1)
	if err != nil {
		t.Fatalf("increment on missing article should not error: %v", err)
	}
	if affected != 0 {
		t.Fatalf("missing article affected want 0 got %d", affected)
	}

	fresh, err := repo.GetByID(article.ID)
	if err != nil || fresh == nil {
		t.Fatalf("reload failed: %v", err)
	}
	if fresh.ViewCount != 1 {
		t.Fatalf("view count want 1 got %d", fresh.ViewCount)
	}
}

func TestArticleAdjustCommentCountClampsAtZero(t *testing.T) {
	db := openTestDB(t)
	repo := NewArticleRepository(db)

	article := createTestArticle(t, repo, "counted", true, time.Now(), nil)

	if err := repo.AdjustCommentCount(article.ID, -5); err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	fresh, err := repo.GetByID(article.ID)
	if err != nil || fresh == nil {
		t.Fatalf("reload failed: %v", err)
	}
	if fresh.CommentCount != 0 {
		t.Fatalf("comment count should clamp at zero, got %d", fresh.CommentCount)
	}
}

func TestArticleCountBySlugExcludesSelf(t *testing.T) {
	db := openTestDB(t)
	repo := NewArticleRepository(db)

	article := createTestArticle(t, repo, "unique-slug", true, time.Now(), nil)

	count, err := repo.CountBySlug("unique-slug", nil)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count want 1 got %d", count)
	}

	count, err = repo.CountBySlug("unique-slug", &article.ID)
	if err != nil {
		t.Fatalf("count with exclusion failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("excluding the article itself should yield 0, got %d", count)
	}
}

func TestArticleDeleteCascades(t *testing.T) {
	db := openTestDB(t)
	repo := NewArticleRepository(db)

	article := createTestArticle(t, repo, "doomed", true, time.Now(), nil)
	tag := createTestTag(t, db, "Election", "election")
	if err := repo.ReplaceTags(article.ID, []uint{tag.ID}); err != nil {
		t.Fatalf("replace tags failed: %v", err)
	}
	comment := models.Comment{ArticleID: article.ID, AuthorName: "reader", Content: "hi", IsApproved: true}
	if err := db.Create(&comment).Error; err != nil {
		t.Fatalf("create comment failed: %v", err)
	}

	if err := repo.Delete(article.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var junctions, comments int64
	db.Model(&models.ArticleTag{}).Where("article_id = ?", article.ID).Count(&junctions)
	db.Model(&models.Comment{}).Where("article_id = ?", article.ID).Count(&comments)
	if junctions != 0 || comments != 0 {
		t.Fatalf("delete should remove junction rows and comments, got %d/%d", junctions, comments)
	}
}

func TestNormalizePagination(t *testing.T) {
	page, limit := NormalizePagination(0, 0)
	if page != constants.DefaultPage || limit != constants.DefaultLimit {
		t.Fatalf("defaults want %d/%d got %d/%d", constants.DefaultPage, constants.DefaultLimit, page, limit)
	}

	page, limit = NormalizePagination(-3, 1000)
	if page != 1 {
		t.Fatalf("negative page should clamp to 1, got %d", page)
	}
	if limit != constants.MaxLimit {
		t.Fatalf("oversized limit should clamp to %d, got %d", constants.MaxLimit, limit)
	}

	_, limit = NormalizePagination(2, 25)
	if limit != 25 {
		t.Fatalf("in-range limit should pass through, got %d", limit)
	}
}

func TestArticleListQueryCountIsFlat(t *testing.T) {
	db := openTestDB(t)
	repo := NewArticleRepository(db)

	tag := createTestTag(t, db, "Politics", "politics")
	now := time.Now()
	seed := func(n int) {
		for i := 0; i < n; i++ {
			article := createTestArticle(t, repo, fmt.Sprintf("flat-%d-%d", n, i), true, now.Add(-time.Duration(i)*time.Minute), nil)
			if err := repo.ReplaceTags(article.ID, []uint{tag.ID}); err != nil {
				t.Fatalf("replace tags failed: %v", err)
			}
		}
	}

	var queries int
	err := db.Callback().Query().After("gorm:query").Register("test:count_queries", func(*gorm.DB) {
		queries++
	})
	if err != nil {
		t.Fatalf("register callback failed: %v", err)
	}

	listQueries := func(limit int) int {
		queries = 0
		articles, _, err := repo.List(ArticleListFilter{Page: 1, Limit: limit})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		for _, article := range articles {
			if len(article.Tags) != 1 {
				t.Fatalf("article %s should carry its tag, got %d", article.Slug, len(article.Tags))
			}
		}
		return queries
	}

	seed(3)
	small := listQueries(10)

	seed(12)
	large := listQueries(20)

	if small == 0 {
		t.Fatal("query callback never fired")
	}
	if small != large {
		t.Fatalf("query count should not grow with page size, got %d for 3 rows and %d for 15", small, large)
	}
}
