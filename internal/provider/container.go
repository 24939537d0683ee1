package provider

import (
	"github.com/khoborpatra/khoborpatra/internal/cache"
	"github.com/khoborpatra/khoborpatra/internal/config"
	"github.com/khoborpatra/khoborpatra/internal/logger"
	"github.com/khoborpatra/khoborpatra/internal/models"
	"github.com/khoborpatra/khoborpatra/internal/queue"
	"github.com/khoborpatra/khoborpatra/internal/repository"
	"github.com/khoborpatra/khoborpatra/internal/service"
)

// Container dependency injection container
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ArticleRepo       repository.ArticleRepository
	CategoryRepo      repository.CategoryRepository
	TagRepo           repository.TagRepository
	CommentRepo       repository.CommentRepository
	UserRepo          repository.UserRepository
	PageViewRepo      repository.PageViewRepository
	NewsletterRepo    repository.NewsletterRepository
	AdvertisementRepo repository.AdvertisementRepository

	// Services
	ArticleService       *service.ArticleService
	CategoryService      *service.CategoryService
	TagService           *service.TagService
	CommentService       *service.CommentService
	UserService          *service.UserService
	NewsletterService    *service.NewsletterService
	AdvertisementService *service.AdvertisementService
}

// NewContainer builds the container
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ArticleRepo = repository.NewArticleRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.TagRepo = repository.NewTagRepository(db)
	c.CommentRepo = repository.NewCommentRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.PageViewRepo = repository.NewPageViewRepository(db)
	c.NewsletterRepo = repository.NewNewsletterRepository(db)
	c.AdvertisementRepo = repository.NewAdvertisementRepository(db)
}

func (c *Container) initServices() {
	c.ArticleService = service.NewArticleService(
		c.ArticleRepo,
		c.CategoryRepo,
		c.TagRepo,
		c.UserRepo,
		c.CommentRepo,
		c.PageViewRepo,
	)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.ArticleRepo)
	c.TagService = service.NewTagService(c.TagRepo, c.ArticleRepo)
	c.CommentService = service.NewCommentService(c.CommentRepo, c.ArticleRepo, c.Config.Comments.AutoApprove)
	c.UserService = service.NewUserService(c.UserRepo, c.ArticleRepo)
	c.NewsletterService = service.NewNewsletterService(c.NewsletterRepo)
	c.AdvertisementService = service.NewAdvertisementService(c.AdvertisementRepo)
}
