package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"studyhub_backend/internal/config"
	"studyhub_backend/internal/controller"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"
	"studyhub_backend/pkg/cache"
	"studyhub_backend/pkg/configwatcher"
	"studyhub_backend/pkg/database"
	"studyhub_backend/pkg/logger"
	"studyhub_backend/pkg/monitoring"
	"studyhub_backend/pkg/security"
	"studyhub_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	tracer          *sdktrace.TracerProvider
	origins         *security.OriginList
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	category     *repository.CategoryRepository
	topic        *repository.TopicRepository
	essay        *repository.EssayRepository
	exam         *repository.ExamRepository
	interactive  *repository.InteractiveExamRepository
	submission   *repository.SubmissionRepository
	subscription *repository.SubscriptionRepository
	news         *repository.NewsRepository
	notice       *repository.NoticeRepository
}

type services struct {
	auth         *service.AuthService
	policy       *service.AccessPolicy
	grading      *service.GradingService
	interactive  *service.InteractiveExamService
	subscription *service.SubscriptionService
	content      *service.ContentService
	catalog      *service.CatalogService
	news         *service.NewsService
	storage      *service.StorageService
}

type controllers struct {
	auth         *controller.AuthController
	interactive  *controller.InteractiveExamController
	content      *controller.ContentController
	subscription *controller.SubscriptionController
	catalog      *controller.CatalogController
	news         *controller.NewsController
	upload       *controller.UploadController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		category:     repository.NewCategoryRepository(db),
		topic:        repository.NewTopicRepository(db),
		essay:        repository.NewEssayRepository(db),
		exam:         repository.NewExamRepository(db),
		interactive:  repository.NewInteractiveExamRepository(db),
		submission:   repository.NewSubmissionRepository(db),
		subscription: repository.NewSubscriptionRepository(db),
		news:         repository.NewNewsRepository(db),
		notice:       repository.NewNoticeRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, listCache service.Cache) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.policy = service.NewAccessPolicy(repos.subscription, cfg.Access)
	s.grading = service.NewGradingService(repos.interactive, repos.submission)
	s.interactive = service.NewInteractiveExamService(repos.interactive, listCache, cfg.Cache.ListTTL())
	s.subscription = service.NewSubscriptionService(repos.subscription, repos.essay, repos.exam)
	s.content = service.NewContentService(repos.essay, repos.exam, s.policy)
	s.catalog = service.NewCatalogService(repos.category, repos.topic)
	s.news = service.NewNewsService(repos.news, repos.notice, listCache, cfg.Cache.ListTTL())

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, pinger controller.Pinger) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		interactive:  controller.NewInteractiveExamController(s.interactive, s.grading),
		content:      controller.NewContentController(s.content),
		subscription: controller.NewSubscriptionController(s.subscription),
		catalog:      controller.NewCatalogController(s.catalog),
		news:         controller.NewNewsController(s.news),
		upload:       controller.NewUploadController(s.storage),
		health:       controller.NewHealthController(db, pinger),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(a.origins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	if err := util.RegisterValidators(); err != nil {
		logger.Log.Fatal("Failed to register validators", zap.Error(err))
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	app := &App{
		Config:  cfg,
		DB:      db,
		origins: security.NewOriginList(cfg.CORS.AllowedOrigins),
	}
	if cfg.MigrateOnly {
		return app
	}

	// Redis 未启用时传入 nil，服务层使用空缓存
	var listCache service.Cache
	var pinger controller.Pinger
	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
		app.Redis = rdb
		rc := cache.NewRedisCache(rdb, "studyhub")
		listCache = rc
		pinger = rc
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, listCache)
	controllers := app.initControllers(services, db, pinger)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, repos, services)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetLevel(newCfg.Server.LogLevel)
		app.origins.Set(newCfg.CORS.AllowedOrigins)
	})

	return app
}

func (a *App) watchConfig(ctx context.Context) {
	file := filepath.Join("configs", "config.yaml")
	if _, err := os.Stat(file); err != nil {
		return
	}
	go func() {
		err := configwatcher.WatchConfig(ctx, file, func(cfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(cfg)
			}
		})
		if err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	a.watchConfig(watchCtx)

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := tracing.Shutdown(ctx, a.tracer); err != nil {
		logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}
