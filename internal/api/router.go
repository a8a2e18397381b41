package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/talenthub/job-board/internal/api/handler"
	"github.com/talenthub/job-board/internal/api/middleware"
	"github.com/talenthub/job-board/internal/core/ports"
	"github.com/talenthub/job-board/internal/core/service"
	"github.com/talenthub/job-board/internal/infrastructure/backend"
	mongodb "github.com/talenthub/job-board/internal/infrastructure/db/mongo"
	redisdb "github.com/talenthub/job-board/internal/infrastructure/db/redis"
)

// RouterConfig carries the external dependencies of the HTTP surface.
type RouterConfig struct {
	DB             *mongo.Database
	Redis          *redis.Client
	JWTSecret      string
	BackendBaseURL string
	Production     bool
	Audit          ports.AuditSink
	Log            zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("jobboard"))

	// --- Dependencies ---
	creds := service.NewCredentialService(cfg.JWTSecret, service.DefaultCredentialTTL)
	users := mongodb.NewUserRepository(cfg.DB)
	revoked := redisdb.NewRevocationList(cfg.Redis)
	authService := service.NewAuthService(users, creds, revoked)
	authHandler := handler.NewAuthHandler(authService, cfg.Audit, cfg.Production)
	authMiddleware := middleware.Auth(creds)

	// --- Auth API (bearer-token territory, never cookie-guarded) ---
	authAPI := e.Group("/api/auth")
	authAPI.POST("/register", authHandler.Register)
	authAPI.POST("/login", authHandler.Login)
	authAPI.POST("/logout", authHandler.Logout)
	authAPI.GET("/me", authHandler.Me, authMiddleware)

	// --- Pages (cookie-guarded) ---
	e.Use(middleware.Guard(creds, cfg.Production))

	apiClient := backend.NewClient(cfg.BackendBaseURL, cfg.Log)
	stores := func(deviceID string) ports.CredentialStore {
		return redisdb.NewCredentialStore(cfg.Redis, deviceID)
	}
	pages := handler.NewPageHandler(apiClient, stores, cfg.Log, cfg.Production)

	e.GET("/", pages.Home)
	e.GET("/auth/login", pages.LoginForm)
	e.POST("/auth/login", pages.LoginSubmit)
	e.GET("/auth/register", pages.RegisterForm)
	e.POST("/auth/register", pages.RegisterSubmit)
	e.POST("/auth/logout", pages.Logout)
	e.GET("/employer/dashboard", pages.EmployerDashboard)
	e.GET("/job-seeker/dashboard", pages.JobSeekerDashboard)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(cfg.DB, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e
}
