// Package app assembles the brewery HTTP application from its configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"brewery/internal/cache"
	"brewery/internal/config"
	"brewery/internal/functional"
	"brewery/internal/handlers"
	"brewery/internal/middleware"
	"brewery/internal/models"
	"brewery/internal/repositories"
	"brewery/internal/seed"
	"brewery/internal/services"
	"brewery/internal/validation"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// App is the assembled HTTP application and the resources it owns.
type App struct {
	Fiber   *fiber.App
	Service *services.BeerService
	Cache   *cache.Store

	db     *gorm.DB
	logger *slog.Logger
}

// New opens the configured beer store, seeds it when asked to and mounts both
// API versions on a Fiber app. publisher may be nil, in which case no beer
// events are emitted.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, publisher services.EventPublisher) (*App, error) {
	repo, db, err := openRepository(cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.SeedData {
		if _, err := seed.LoadBeers(ctx, repo, logger); err != nil {
			return nil, fmt.Errorf("failed to seed beers: %w", err)
		}
	}

	store, err := cache.New(cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	beerService := services.NewBeerService(repo, store, publisher, logger)
	validate := validation.New()

	app := fiber.New(fiber.Config{
		AppName:      "brewery",
		ErrorHandler: middleware.ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if !cfg.IsProduction() {
		app.Use(fiberlogger.New())
	}

	eventsEnabled := publisher != nil
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": eventsEnabled,
			"cached": store.Size(),
		})
	})

	apiV1 := app.Group("/api/v1")
	handlers.NewBeerHandler(beerService, validate, cfg.LocationBaseURL, logger).RegisterRoutes(apiV1)

	functional.BeerRoutesV2(functional.NewBeerHandlerV2(beerService, validate, logger)).Register(app)

	return &App{
		Fiber:   app,
		Service: beerService,
		Cache:   store,
		db:      db,
		logger:  logger,
	}, nil
}

// Close releases the database connection. The Fiber app must be shut down by
// the caller first.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}

func openRepository(cfg config.Config, logger *slog.Logger) (repositories.BeerRepository, *gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case config.DriverMemory:
		logger.Info("using in-memory beer store")
		return repositories.NewMemoryBeerRepository(), nil, nil
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DatabaseDSN)
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseDSN)
	default:
		return nil, nil, errors.New("unsupported database driver: " + cfg.DatabaseDriver)
	}

	level := gormlogger.Warn
	if cfg.IsProduction() {
		level = gormlogger.Error
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := db.AutoMigrate(&models.Beer{}); err != nil {
			return nil, nil, fmt.Errorf("failed to auto-migrate database: %w", err)
		}
	}

	logger.Info("connected to database", "driver", cfg.DatabaseDriver)
	return repositories.NewGORMBeerRepository(db), db, nil
}
