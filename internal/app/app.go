package app

import (
	"context"
	"inbalance_quiz_backend/internal/config"
	"inbalance_quiz_backend/internal/controller"
	"inbalance_quiz_backend/internal/repository"
	"inbalance_quiz_backend/internal/service"
	"inbalance_quiz_backend/pkg/database"
	"inbalance_quiz_backend/pkg/logger"
	"inbalance_quiz_backend/pkg/monitoring"
	"inbalance_quiz_backend/pkg/security"
	"inbalance_quiz_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	question *repository.QuestionRepository
	response *repository.ResponseRepository
	admin    *repository.AdminRepository
	session  *repository.SessionRepository
}

type services struct {
	quiz    *service.QuizService
	auth    *service.AuthService
	storage *service.StorageService
	export  *service.ExportService
	sheet   *service.SheetService
}

type controllers struct {
	quiz     *controller.QuizController
	auth     *controller.AuthController
	response *controller.ResponseController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置文件热更新入口（由 configwatcher 调用）
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	sessionTTL := time.Duration(cfg.Quiz.SessionTTLHours) * time.Hour
	return &repositories{
		question: repository.NewQuestionRepository(db),
		response: repository.NewResponseRepository(db),
		admin:    repository.NewAdminRepository(db),
		session:  repository.NewSessionRepository(rdb, sessionTTL),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.sheet = service.NewSheetService(cfg.Sheets)
	s.quiz = service.NewQuizService(repos.question, repos.response, repos.session, s.sheet)
	s.auth = service.NewAuthService(repos.admin, cfg)
	s.export = service.NewExportService(repos.response, s.storage)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		quiz:     controller.NewQuizController(s.quiz),
		auth:     controller.NewAuthController(s.auth),
		response: controller.NewResponseController(repos.response, s.quiz, s.export),
		health:   controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 定期重试未同步到外部表格的响应行
func (a *App) startBackgroundTasks(s *services, cfg *config.Config) {
	if !s.sheet.Enabled() {
		logger.Log.Info("sheet webhook not configured, sync retry disabled")
		return
	}

	go func() {
		ticker := time.NewTicker(time.Duration(cfg.Sheets.RetryMinutes) * time.Minute)
		for range ticker.C {
			if err := s.quiz.SyncPendingResponses(); err != nil {
				logger.Log.Error("sheet sync retry error", zap.Error(err))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb, cfg)
	services := app.initServices(repos, cfg)
	app.services = services

	app.RegisterConfigCallback(func(c *config.Config) {
		services.sheet.UpdateConfig(c.Sheets)
	})
	controllers := app.initControllers(services, repos, db)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("inbalance-quiz", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/exports", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
