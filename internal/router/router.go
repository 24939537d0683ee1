package router

import (
	"fmt"
	"strings"

	"github.com/khoborpatra/khoborpatra/internal/cache"
	"github.com/khoborpatra/khoborpatra/internal/config"
	"github.com/khoborpatra/khoborpatra/internal/constants"
	"github.com/khoborpatra/khoborpatra/internal/http/handlers"
	"github.com/khoborpatra/khoborpatra/internal/logger"
	"github.com/khoborpatra/khoborpatra/internal/provider"
	"github.com/khoborpatra/khoborpatra/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware and routes
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	h := handlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	limitStore := buildRateLimitStore(cfg)
	apiRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:api", redisPrefix),
		WindowSeconds: cfg.Security.RateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.RateLimit.MaxRequests,
	}
	commentRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:comment", redisPrefix),
		WindowSeconds: cfg.Security.CommentRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CommentRateLimit.MaxRequests,
	}
	if !cfg.Security.RateLimit.Enabled {
		apiRule.MaxRequests = 0
	}
	if !cfg.Security.CommentRateLimit.Enabled {
		commentRule.MaxRequests = 0
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/metrics", h.Metrics)
	r.NoRoute(h.NotFound)

	api := r.Group("/api")
	api.Use(RateLimitMiddleware(limitStore, apiRule, KeyByIP))
	{
		api.GET("", h.Root)

		articles := api.Group("/articles")
		{
			articles.GET("", h.ListArticles)
			articles.GET("/featured", h.FeaturedArticles)
			articles.GET("/breaking", h.BreakingArticles)
			articles.GET("/:slug", h.GetArticle)
			articles.GET("/:slug/comments", h.ArticleComments)
			articles.POST("", h.CreateArticle)
			articles.PUT("/:id", h.UpdateArticle)
			articles.DELETE("/:id", h.DeleteArticle)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", h.ListCategories)
			categories.GET("/with-count", h.CategoriesWithCount)
			categories.GET("/popular", h.PopularCategories)
			categories.GET("/:slug", h.GetCategory)
			categories.GET("/:slug/articles", h.CategoryArticles)
			categories.POST("", h.CreateCategory)
			categories.PUT("/:id", h.UpdateCategory)
			categories.DELETE("/:id", h.DeleteCategory)
		}

		tags := api.Group("/tags")
		{
			tags.GET("", h.ListTags)
			tags.GET("/popular", h.PopularTags)
			tags.GET("/:slug", h.GetTag)
			tags.POST("", h.CreateTag)
			tags.PUT("/:id", h.UpdateTag)
			tags.DELETE("/:id", h.DeleteTag)
		}

		comments := api.Group("/comments")
		{
			comments.GET("", h.ListComments)
			comments.POST("", RateLimitMiddleware(limitStore, commentRule, KeyByIP), h.CreateComment)
			comments.PUT("/:id", h.UpdateComment)
			comments.DELETE("/:id", h.DeleteComment)
			comments.POST("/:id/moderate", h.ModerateComment)
			comments.POST("/:id/report", h.ReportComment)
		}

		users := api.Group("/users")
		{
			users.GET("", h.ListUsers)
			users.GET("/:id", h.GetUser)
			users.POST("", h.CreateUser)
			users.PUT("/:id", h.UpdateUser)
			users.DELETE("/:id", h.DeleteUser)
		}

		newsletter := api.Group("/newsletter")
		{
			newsletter.POST("/subscribe", h.Subscribe)
			newsletter.POST("/unsubscribe", h.Unsubscribe)
		}

		ads := api.Group("/advertisements")
		{
			ads.GET("", h.ActiveAdvertisements)
			ads.POST("", h.CreateAdvertisement)
			ads.POST("/:id/click", h.AdvertisementClick)
			ads.DELETE("/:id", h.DeleteAdvertisement)
		}
	}

	return r
}

// buildRateLimitStore shares counters through Redis when it is up,
// otherwise falls back to per-process counting.
func buildRateLimitStore(cfg *config.Config) ratelimit.Store {
	if cfg.Redis.Enabled {
		if client := cache.Client(); client != nil {
			return ratelimit.NewRedisStore(client)
		}
	}
	return ratelimit.NewMemoryStore()
}
