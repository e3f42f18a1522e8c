// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "exptr-api/internal/api"
	"exptr-api/internal/api/handler"
	"exptr-api/internal/config"
	"exptr-api/internal/domain"
	"exptr-api/internal/repository"
	"exptr-api/internal/repository/postgres"
	redisrepo "exptr-api/internal/repository/redis"
	"exptr-api/internal/service"
	"exptr-api/internal/util"
	"exptr-api/pkg/db"
	"exptr-api/pkg/token"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config       *config.AppConfig
	Logger       *slog.Logger
	DB           *sqlx.DB
	SessionCache *redisrepo.SessionCache

	// Repositories
	UserRepository      repository.UserRepository
	CategoryRepository  repository.CategoryRepository
	OperationRepository repository.OperationRepository

	// Services
	UserService      service.UserService
	CategoryService  service.CategoryService
	OperationService service.OperationService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance. The logger is usable
// immediately so even configuration failures get reported structurally.
func NewApplication() *Application {
	return &Application{Logger: util.GetLogger()}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Optional session cache
	if app.Config.CacheSessions {
		cache, err := redisrepo.NewSessionCache(app.Config.Redis, domain.SessionTTL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.SessionCache = cache
		app.Logger.Info("Session cache connected.")
	}

	// 5. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.CategoryRepository = postgres.NewCategoryRepository(app.DB)
	app.OperationRepository = postgres.NewOperationRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 6. Initialize Services
	tokens := token.NewManager(app.Config.JWTSecret, domain.SessionTTL)
	var cache service.SessionCache
	if app.SessionCache != nil {
		cache = app.SessionCache
	}
	app.UserService = service.NewUserService(
		app.DB, // DBTxBeginner
		app.DB, // DBExecutor
		app.UserRepository,
		tokens,
		cache,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.CategoryService = service.NewCategoryService(app.DB, app.CategoryRepository)
	app.OperationService = service.NewOperationService(app.DB, app.OperationRepository)
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP Handlers and Router
	userHandler := handler.NewUserHandler(app.UserService, app.Logger)
	categoryHandler := handler.NewCategoryHandler(app.CategoryService, app.Logger)
	operationHandler := handler.NewOperationHandler(app.OperationService, app.Logger)
	app.HTTPHandler = router.NewRouter(userHandler, categoryHandler, operationHandler, app.UserService, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// SweepSessions deletes sessions that fell out of the freshness window.
// Wired to the cron schedule in cmd/api; safe to run concurrently with
// request traffic.
func (app *Application) SweepSessions(ctx context.Context) {
	deleted, err := app.UserService.DeleteOutdatedSessions(ctx)
	if err != nil {
		app.Logger.Error("Failed to delete outdated sessions", "error", err)
		return
	}
	app.Logger.Info("Deleted outdated sessions", "count", deleted)
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.SessionCache != nil {
		if err := app.SessionCache.Close(); err != nil {
			app.Logger.Error("Failed to close session cache", "error", err)
			return fmt.Errorf("failed to close session cache: %w", err)
		}
		app.Logger.Info("Session cache closed.")
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
