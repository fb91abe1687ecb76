package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/agriscan/platform/docs"
	"github.com/agriscan/platform/internal/api/handler"
	"github.com/agriscan/platform/internal/api/middleware"
	"github.com/agriscan/platform/internal/core/domain"
	"github.com/agriscan/platform/internal/core/service"
	mongorepo "github.com/agriscan/platform/internal/infrastructure/db/mongo"
	redisrepo "github.com/agriscan/platform/internal/infrastructure/db/redis"
	"github.com/agriscan/platform/internal/pkg/config"
)

// Deps carries the infrastructure the router cannot build itself.
type Deps struct {
	DB     *mongo.Database
	Redis  *redis.Client
	Queue  service.AssessmentQueue
	Images handler.ImageSaver
	Logger zerolog.Logger
	Config *config.Config
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("agriscan"))

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(deps.DB)
	reportRepo := mongorepo.NewReportRepository(deps.DB)
	alertRepo := mongorepo.NewAlertRepository(deps.DB)
	catalogRepo := mongorepo.NewCatalogRepository(deps.DB)
	statsRepo := mongorepo.NewStatsRepository(deps.DB)
	dedup := redisrepo.NewDedupChecker(deps.Redis)

	authService := service.NewAuthService(userRepo, deps.Config.JWTSecret, deps.Config.PhoneRegion, 24*time.Hour)
	reportService := service.NewReportService(reportRepo, dedup, deps.Queue, deps.Logger)
	alertService := service.NewAlertService(alertRepo, deps.Logger)
	statsService := service.NewStatsService(statsRepo)
	farmerService := service.NewFarmerService(userRepo)

	authHandler := handler.NewAuthHandler(authService)
	reportHandler := handler.NewReportHandler(reportService, authService, deps.Images)
	alertHandler := handler.NewAlertHandler(alertService)
	catalogHandler := handler.NewCatalogHandler(catalogRepo)
	statsHandler := handler.NewStatsHandler(statsService)
	farmerHandler := handler.NewFarmerHandler(farmerService)

	authRequired := middleware.Auth(deps.Config.JWTSecret)
	inspectorOnly := middleware.RequireRole(domain.RoleInspector)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/profile", authHandler.GetProfile, authRequired)
	e.PUT("/auth/profile", authHandler.UpdateProfile, authRequired)

	// --- Reports ---
	reports := e.Group("/reports", authRequired)
	reports.POST("", reportHandler.Submit)
	reports.GET("", reportHandler.List)
	reports.GET("/:id", reportHandler.Get)
	reports.PUT("/:id/status", reportHandler.Review, inspectorOnly)

	// --- Catalog ---
	e.GET("/plants", catalogHandler.ListPlants, authRequired)
	e.GET("/plants/:id", catalogHandler.GetPlant, authRequired)
	e.GET("/diseases", catalogHandler.ListDiseases, authRequired)
	e.GET("/diseases/:id", catalogHandler.GetDisease, authRequired)

	// --- Alerts (read for all, write for inspectors) ---
	alerts := e.Group("/alerts", authRequired)
	alerts.GET("", alertHandler.List)
	alerts.POST("", alertHandler.Create, inspectorOnly)
	alerts.PUT("/:id", alertHandler.Update, inspectorOnly)
	alerts.DELETE("/:id", alertHandler.Delete, inspectorOnly)

	// --- Inspector surfaces ---
	e.GET("/farmers", farmerHandler.List, authRequired, inspectorOnly)
	e.GET("/stats/overview", statsHandler.Overview, authRequired)
	e.GET("/stats/geographical", statsHandler.Geographical, authRequired)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
