package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appClients "github.com/yigit/courseservice/internal/app/clients"
	appControllers "github.com/yigit/courseservice/internal/app/controllers"
	appMigrations "github.com/yigit/courseservice/internal/app/migrations"
	appRepos "github.com/yigit/courseservice/internal/app/repositories"
	"github.com/yigit/courseservice/internal/app/repositories/memory"
	appRoutes "github.com/yigit/courseservice/internal/app/routes"
	appServices "github.com/yigit/courseservice/internal/app/services"
	"github.com/yigit/courseservice/internal/config"
	"github.com/yigit/courseservice/internal/db"
	appMiddleware "github.com/yigit/courseservice/internal/middleware"
	"github.com/yigit/courseservice/internal/pkg/logger"
	"github.com/yigit/courseservice/internal/seed"
)

// HealthMessage is the plain-text body served at GET /.
const HealthMessage = "Course Service is running."

// Dependencies holds all the application dependencies
type Dependencies struct {
	CourseStore          appServices.CourseStore
	EnrollmentStore      appServices.EnrollmentStore
	StudentClient        *appClients.StudentClient
	CourseService        appServices.CourseService
	EnrollmentService    appServices.EnrollmentService
	RosterService        appServices.RosterService
	CourseController     *appControllers.CourseController
	EnrollmentController *appControllers.EnrollmentController
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to PostgreSQL and applies pending migrations. With
// the memory driver it returns a nil pool.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Warn().Msg("Using in-memory store, data is lost on restart")
		return nil, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		dbPool.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		dbPool.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// BuildDependencies initializes stores, the Student service client, services
// and controllers. A nil dbPool selects the in-memory store.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	if dbPool != nil {
		repos := appRepos.NewRepositories(dbPool)
		deps.CourseStore = repos.CourseRepository
		deps.EnrollmentStore = repos.EnrollmentRepository
	} else {
		store := memory.NewStore()
		deps.CourseStore = store
		deps.EnrollmentStore = store
	}

	if cfg.Database.SeedDemoData {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := seed.CreateDemoCourses(ctx, deps.CourseStore, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	deps.StudentClient = appClients.NewStudentClient(appClients.StudentClientConfig{
		BaseURL:        cfg.StudentService.BaseURL,
		Timeout:        cfg.StudentServiceTimeout(),
		MaxConcurrency: cfg.StudentService.MaxConcurrency,
	}, lgr)
	lgr.Info().
		Str("base_url", cfg.StudentService.BaseURL).
		Dur("timeout", cfg.StudentServiceTimeout()).
		Msg("Student service client configured")

	deps.CourseService = appServices.NewCourseService(deps.CourseStore, lgr)
	deps.EnrollmentService = appServices.NewEnrollmentService(deps.CourseStore, deps.EnrollmentStore, deps.StudentClient, lgr)
	deps.RosterService = appServices.NewRosterService(deps.CourseStore, deps.EnrollmentStore, deps.StudentClient, lgr)

	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService, deps.RosterService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, HealthMessage)
	})

	appRoutes.SetupRouter(router, deps.CourseController, deps.EnrollmentController)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
