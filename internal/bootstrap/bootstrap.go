package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/samialh/ketab/internal/app/controllers"
	appMigrations "github.com/samialh/ketab/internal/app/migrations"
	appRepos "github.com/samialh/ketab/internal/app/repositories"
	appRoutes "github.com/samialh/ketab/internal/app/routes"
	appServices "github.com/samialh/ketab/internal/app/services"
	"github.com/samialh/ketab/internal/config"
	"github.com/samialh/ketab/internal/db"
	"github.com/samialh/ketab/internal/metrics"
	appMiddleware "github.com/samialh/ketab/internal/middleware"
	"github.com/samialh/ketab/internal/pkg/logger"
	"github.com/samialh/ketab/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         appServices.AuthService
	CourseService       appServices.CourseService
	LessonService       appServices.LessonService
	SubscriptionService appServices.SubscriptionService
	WriterService       appServices.WriterService
	PackageService      appServices.PackageService
	BookingService      appServices.BookingService
	SlotService         appServices.SlotService
	Controllers         *appRoutes.Controllers
	SessionMiddleware   *appMiddleware.SessionMiddleware
	Repos               *appRepos.Repositories
	RedisClient         *redis.Client
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// optionally seeds the sample catalog.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Seed.Enabled {
		if err := seed.CreateSampleData(context.Background(), database.Pool, lgr); err != nil {
			// Sample data is a convenience, not a startup requirement.
			lgr.Error().Err(err).Msg("Failed to create sample data, proceeding anyway...")
		}
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	metrics.Register()

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.SessionRepository,
		deps.Repos.WriterRepository,
		cfg.SessionTTL(),
		lgr,
	)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, lgr)
	deps.LessonService = appServices.NewLessonService(deps.Repos.LessonRepository, deps.Repos.CourseRepository, lgr)
	deps.SubscriptionService = appServices.NewSubscriptionService(deps.Repos.SubscriptionRepository, deps.Repos.CourseRepository, lgr)
	deps.WriterService = appServices.NewWriterService(deps.Repos.WriterRepository, lgr)
	deps.PackageService = appServices.NewPackageService(deps.Repos.PackageRepository, deps.Repos.WriterRepository, lgr)
	deps.BookingService = appServices.NewBookingService(deps.Repos.BookingRepository, deps.Repos.WriterRepository, deps.Repos.PackageRepository, lgr)
	deps.SlotService = appServices.NewSlotService(deps.Repos.SlotRepository, deps.Repos.WriterRepository, deps.Repos.PackageRepository, deps.Repos.BookingRepository, lgr)

	deps.SessionMiddleware = appMiddleware.NewSessionMiddleware(
		deps.Repos.SessionRepository,
		deps.Repos.UserRepository,
		cfg.Session.CookieName,
	)

	sessionCookie := appControllers.SessionCookie{
		Name:   cfg.Session.CookieName,
		MaxAge: cfg.SessionTTL(),
		Secure: cfg.Session.Secure,
	}

	deps.Controllers = &appRoutes.Controllers{
		Health:       appControllers.NewHealthController(),
		Auth:         appControllers.NewAuthController(deps.AuthService, sessionCookie),
		Course:       appControllers.NewCourseController(deps.CourseService),
		Lesson:       appControllers.NewLessonController(deps.LessonService),
		Subscription: appControllers.NewSubscriptionController(deps.SubscriptionService),
		Writer:       appControllers.NewWriterController(deps.WriterService),
		Package:      appControllers.NewPackageController(deps.PackageService),
		Booking:      appControllers.NewBookingController(deps.BookingService),
		Slot:         appControllers.NewSlotController(deps.SlotService),
	}

	if cfg.Cache.Enabled {
		deps.RedisClient = redis.NewClient(&redis.Options{Addr: cfg.Cache.Addr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := deps.RedisClient.Ping(ctx).Err(); err != nil {
			// A dead cache should not keep the API down.
			lgr.Warn().Err(err).Str("addr", cfg.Cache.Addr).Msg("Redis unreachable, response cache disabled")
			deps.RedisClient = nil
		} else {
			lgr.Info().Str("addr", cfg.Cache.Addr).Msg("Response cache enabled")
		}
	}

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
	router.Use(gin.Recovery())

	cache := appMiddleware.ResponseCache(deps.RedisClient, cfg.CacheTTL())
	appRoutes.SetupRouter(router, deps.Controllers, deps.SessionMiddleware, cache)

	return router
}
