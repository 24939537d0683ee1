package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/khoborpatra/khoborpatra/internal/config"
	"github.com/khoborpatra/khoborpatra/internal/constants"
	"github.com/khoborpatra/khoborpatra/internal/models"
	"github.com/khoborpatra/khoborpatra/internal/provider"
	"github.com/khoborpatra/khoborpatra/internal/repository"
	"github.com/khoborpatra/khoborpatra/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// envelope mirrors the wire shape of response.Envelope for assertions.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
	Meta    *struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int64 `json:"totalPages"`
	} `json:"meta"`
}

type handlerEnv struct {
	db     *gorm.DB
	router *gin.Engine
	c      *provider.Container
}

func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	articles := repository.NewArticleRepository(db)
	categories := repository.NewCategoryRepository(db)
	tags := repository.NewTagRepository(db)
	comments := repository.NewCommentRepository(db)
	users := repository.NewUserRepository(db)
	pageViews := repository.NewPageViewRepository(db)
	newsletter := repository.NewNewsletterRepository(db)
	ads := repository.NewAdvertisementRepository(db)

	container := &provider.Container{
		Config:               &config.Config{},
		ArticleRepo:          articles,
		CategoryRepo:         categories,
		TagRepo:              tags,
		CommentRepo:          comments,
		UserRepo:             users,
		PageViewRepo:         pageViews,
		NewsletterRepo:       newsletter,
		AdvertisementRepo:    ads,
		ArticleService:       service.NewArticleService(articles, categories, tags, users, comments, pageViews),
		CategoryService:      service.NewCategoryService(categories, articles),
		TagService:           service.NewTagService(tags, articles),
		CommentService:       service.NewCommentService(comments, articles, true),
		UserService:          service.NewUserService(users, articles),
		NewsletterService:    service.NewNewsletterService(newsletter),
		AdvertisementService: service.NewAdvertisementService(ads),
	}
	h := New(container)

	r := gin.New()
	r.GET("/", h.Root)
	r.NoRoute(h.NotFound)
	api := r.Group("/api")
	{
		api.GET("/articles", h.ListArticles)
		api.GET("/articles/breaking", h.BreakingArticles)
		api.GET("/articles/:slug", h.GetArticle)
		api.GET("/articles/:slug/comments", h.ArticleComments)
		api.POST("/articles", h.CreateArticle)
		api.POST("/comments", h.CreateComment)
		api.POST("/comments/:id/moderate", h.ModerateComment)
		api.POST("/newsletter/subscribe", h.Subscribe)
	}
	return &handlerEnv{db: db, router: r, c: container}
}

func (e *handlerEnv) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v\n%s", err, w.Body.String())
	}
	return w, env
}

func TestCreateAndFetchArticleOverHTTP(t *testing.T) {
	env := newHandlerEnv(t)

	w, created := env.do(t, http.MethodPost, "/api/articles", `{
		"title": "ঘূর্ণিঝড়ের সতর্কতা জারি",
		"content": "<p>উপকূলীয় জেলাগুলোতে সতর্ক সংকেত</p>",
		"is_published": true,
		"is_breaking": true
	}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}
	if !created.Success {
		t.Fatalf("create envelope not successful: %+v", created)
	}
	var article models.Article
	if err := json.Unmarshal(created.Data, &article); err != nil {
		t.Fatalf("decode article failed: %v", err)
	}
	if article.Slug == "" || !article.IsPublished {
		t.Fatalf("created article incomplete: %+v", article)
	}

	w, fetched := env.do(t, http.MethodGet, "/api/articles/"+article.Slug, "")
	if w.Code != http.StatusOK {
		t.Fatalf("fetch status = %d: %s", w.Code, w.Body.String())
	}
	var detail service.ArticleDetail
	if err := json.Unmarshal(fetched.Data, &detail); err != nil {
		t.Fatalf("decode detail failed: %v", err)
	}
	if detail.Article.ID != article.ID {
		t.Fatalf("detail returned wrong article: %+v", detail.Article)
	}
	if detail.Tags == nil {
		t.Fatalf("detail tags must be an array, not null")
	}

	w, listed := env.do(t, http.MethodGet, "/api/articles/breaking", "")
	if w.Code != http.StatusOK {
		t.Fatalf("breaking status = %d", w.Code)
	}
	var breaking []models.Article
	if err := json.Unmarshal(listed.Data, &breaking); err != nil {
		t.Fatalf("decode breaking list failed: %v", err)
	}
	if len(breaking) != 1 || breaking[0].ID != article.ID {
		t.Fatalf("breaking list = %+v", breaking)
	}
}

func TestListArticlesFilterParameterNames(t *testing.T) {
	env := newHandlerEnv(t)

	_, created := env.do(t, http.MethodPost, "/api/articles", `{
		"title": "Flood Waters Recede", "content": "body", "is_published": true
	}`)
	var article models.Article
	if err := json.Unmarshal(created.Data, &article); err != nil {
		t.Fatalf("decode article failed: %v", err)
	}

	cases := []struct {
		target string
		want   int64
	}{
		{"/api/articles?published=true", 1},
		{"/api/articles?published=false", 0},
		{"/api/articles?featured=true", 0},
		{"/api/articles?featured=false", 1},
		{"/api/articles?breaking=true", 0},
		{"/api/articles?q=flood", 1},
		{"/api/articles?q=cyclone", 0},
		{"/api/articles?author=42", 0},
		{"/api/articles?category=42", 0},
		// camel-case aliases still answer
		{"/api/articles?isPublished=false", 0},
		{"/api/articles?categoryId=42", 0},
	}
	for _, tc := range cases {
		w, body := env.do(t, http.MethodGet, tc.target, "")
		if w.Code != http.StatusOK {
			t.Fatalf("%s status = %d", tc.target, w.Code)
		}
		if body.Meta == nil || body.Meta.Total != tc.want {
			t.Errorf("%s meta = %+v, want total %d", tc.target, body.Meta, tc.want)
		}
	}
}

func TestGetArticleNotFoundEnvelope(t *testing.T) {
	env := newHandlerEnv(t)

	w, env404 := env.do(t, http.MethodGet, "/api/articles/ghost-story", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	if env404.Success {
		t.Fatalf("missing article must not report success")
	}
	if env404.Message != "article not found" {
		t.Fatalf("message = %q", env404.Message)
	}
}

func TestGetArticleNotFoundBengaliMessage(t *testing.T) {
	env := newHandlerEnv(t)

	w, body := env.do(t, http.MethodGet, "/api/articles/ghost-story?lang=bn", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	if body.Message == "article not found" || body.Message == "" {
		t.Fatalf("bengali locale should localize the message, got %q", body.Message)
	}
}

func TestCreateArticleRejectsMalformedJSON(t *testing.T) {
	env := newHandlerEnv(t)

	w, body := env.do(t, http.MethodPost, "/api/articles", `{"title": `)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if body.Success {
		t.Fatalf("malformed payload must fail")
	}
}

func TestCreateArticleValidationErrorsInEnvelope(t *testing.T) {
	env := newHandlerEnv(t)

	w, body := env.do(t, http.MethodPost, "/api/articles", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if len(body.Errors) == 0 {
		t.Fatalf("validation failure should carry field errors: %s", w.Body.String())
	}
}

func TestCommentFlowOverHTTP(t *testing.T) {
	env := newHandlerEnv(t)

	_, created := env.do(t, http.MethodPost, "/api/articles", `{
		"title": "Commented Story", "content": "body", "is_published": true
	}`)
	var article models.Article
	if err := json.Unmarshal(created.Data, &article); err != nil {
		t.Fatalf("decode article failed: %v", err)
	}

	w, _ := env.do(t, http.MethodPost, "/api/comments", fmt.Sprintf(
		`{"article_id": %d, "author_name": "Reader", "content": "চমৎকার প্রতিবেদন"}`, article.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("comment status = %d: %s", w.Code, w.Body.String())
	}

	// the comments page answers to both the slug and the numeric id
	for _, key := range []string{article.Slug, fmt.Sprint(article.ID)} {
		w, page := env.do(t, http.MethodGet, "/api/articles/"+key+"/comments", "")
		if w.Code != http.StatusOK {
			t.Fatalf("comments via %q status = %d", key, w.Code)
		}
		if page.Meta == nil || page.Meta.Total != 1 {
			t.Fatalf("comments via %q meta = %+v", key, page.Meta)
		}
	}
}

func TestModerateCommentRejectsUnknownAction(t *testing.T) {
	env := newHandlerEnv(t)

	w, body := env.do(t, http.MethodPost, "/api/comments/1/moderate", `{"action": "escalate"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if body.Success {
		t.Fatalf("unknown action must fail")
	}
}

func TestNewsletterSubscribeOverHTTP(t *testing.T) {
	env := newHandlerEnv(t)

	w, body := env.do(t, http.MethodPost, "/api/newsletter/subscribe", `{"email": "reader@example.com"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("subscribe status = %d: %s", w.Code, w.Body.String())
	}
	if !body.Success {
		t.Fatalf("subscribe failed: %s", w.Body.String())
	}

	var sub models.Newsletter
	if err := json.Unmarshal(body.Data, &sub); err != nil {
		t.Fatalf("decode subscription failed: %v", err)
	}
	if sub.Email != "reader@example.com" || !sub.IsActive {
		t.Fatalf("subscription row = %+v", sub)
	}
}

func TestRootEndpointDescribesService(t *testing.T) {
	env := newHandlerEnv(t)

	w, body := env.do(t, http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !body.Success {
		t.Fatalf("root endpoint should succeed: %s", body.Message)
	}

	var info struct {
		Name    string `json:"name"`
		Version string `json:"version"`
		APIBase string `json:"api_base"`
	}
	if err := json.Unmarshal(body.Data, &info); err != nil {
		t.Fatalf("decode data failed: %v", err)
	}
	if info.Name != constants.AppName || info.Version != constants.AppVersion {
		t.Fatalf("service identity = %q/%q", info.Name, info.Version)
	}
	if info.APIBase != "/api" {
		t.Fatalf("api_base = %q, want /api", info.APIBase)
	}
}

func TestUnknownRouteReturnsJSONNotFound(t *testing.T) {
	env := newHandlerEnv(t)

	w, body := env.do(t, http.MethodGet, "/no-such-page", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if body.Success {
		t.Fatalf("missing route must not report success")
	}
}
