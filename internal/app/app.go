package app

import (
	"context"
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

	"resilience_backend/internal/config"
	"resilience_backend/internal/controller"
	"resilience_backend/internal/model"
	"resilience_backend/internal/repository"
	"resilience_backend/internal/service"
	"resilience_backend/pkg/database"
	"resilience_backend/pkg/logger"
	"resilience_backend/pkg/monitoring"
	"resilience_backend/pkg/security"
	"resilience_backend/pkg/tracing"
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
	user     *repository.UserRepository
	area     *repository.AreaRepository
	question *repository.QuestionRepository
	rule     *repository.RuleRepository
	cohort   *repository.CohortRepository
	session  *repository.SessionRepository
	scoring  *repository.ScoringRepository
}

type services struct {
	auth     *service.AuthService
	storage  *service.StorageService
	scoring  *service.ScoringService
	retake   *service.RetakeService
	session  *service.SessionService
	area     *service.AreaService
	question *service.QuestionService
	rule     *service.RuleService
	cohort   *service.CohortService
	export   *service.ExportService
}

type controllers struct {
	auth       *controller.AuthController
	assessment *controller.AssessmentController
	area       *controller.AreaController
	question   *controller.QuestionController
	rule       *controller.RuleController
	cohort     *controller.CohortController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		area:     repository.NewAreaRepository(db),
		question: repository.NewQuestionRepository(db),
		rule:     repository.NewRuleRepository(db),
		cohort:   repository.NewCohortRepository(db),
		session:  repository.NewSessionRepository(db),
		scoring:  repository.NewScoringRepository(db),
	}
}

// codeStore adapts the cohort and session repositories to the read
// surface the retake state machine needs.
type codeStore struct {
	cohorts  *repository.CohortRepository
	sessions *repository.SessionRepository
}

func (s *codeStore) FindCodeWithCohort(code string) (*model.AssessmentCode, error) {
	return s.cohorts.FindCodeWithCohort(code)
}

func (s *codeStore) LatestSession(codeID uint) (*model.AssessmentSession, error) {
	return s.sessions.LatestSession(codeID)
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.scoring = service.NewScoringService(repos.scoring)
	s.retake = service.NewRetakeService(&codeStore{cohorts: repos.cohort, sessions: repos.session})
	s.session = service.NewSessionService(repos.session, repos.question, repos.area, s.retake, s.scoring, rdb)
	s.area = service.NewAreaService(repos.area, s.session)
	s.question = service.NewQuestionService(repos.question, repos.area, s.session)
	s.rule = service.NewRuleService(repos.rule, repos.area)
	s.cohort = service.NewCohortService(repos.cohort, repos.session)
	s.export = service.NewExportService(repos.cohort, repos.session, repos.area, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		assessment: controller.NewAssessmentController(s.session, s.retake),
		area:       controller.NewAreaController(s.area),
		question:   controller.NewQuestionController(s.question),
		rule:       controller.NewRuleController(s.rule),
		cohort:     controller.NewCohortController(s.cohort, s.export),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, questionnaire caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("resilience-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/exports", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

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
