// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/kakeibo-scan/backend/config"
	"github.com/kakeibo-scan/backend/internal/application/adapter"
	"github.com/kakeibo-scan/backend/internal/application/usecase/category"
	"github.com/kakeibo-scan/backend/internal/application/usecase/entry"
	"github.com/kakeibo-scan/backend/internal/application/usecase/report"
	"github.com/kakeibo-scan/backend/internal/application/usecase/scan"
	"github.com/kakeibo-scan/backend/internal/infra/server/router"
	"github.com/kakeibo-scan/backend/internal/integration/adapters"
	"github.com/kakeibo-scan/backend/internal/integration/entrypoint/controller"
	"github.com/kakeibo-scan/backend/internal/integration/entrypoint/middleware"
	"github.com/kakeibo-scan/backend/internal/integration/persistence"
	"github.com/kakeibo-scan/backend/internal/integration/tracker"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router

	// SeedUseCase is exposed so startup can seed default categories before
	// serving traffic.
	SeedUseCase *category.SeedDefaultCategoriesUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) (*Injector, error) {
	// Create repositories
	categoryRepo := persistence.NewCategoryRepository(db)
	entryRepo := persistence.NewEntryRepository(db)

	// Create adapters/services
	visionService := adapters.NewGeminiVisionService(cfg.Vision.GeminiAPIKey, cfg.Vision.Model)

	scanTracker, err := buildScanTracker(cfg)
	if err != nil {
		return nil, err
	}

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)
	seedUseCase := category.NewSeedDefaultCategoriesUseCase(categoryRepo)

	// Create entry use cases
	listEntriesUseCase := entry.NewListEntriesUseCase(entryRepo)
	createEntryUseCase := entry.NewCreateEntryUseCase(entryRepo, categoryRepo)
	updateEntryUseCase := entry.NewUpdateEntryUseCase(entryRepo, categoryRepo)
	deleteEntryUseCase := entry.NewDeleteEntryUseCase(entryRepo)
	clearEntriesUseCase := entry.NewClearEntriesUseCase(entryRepo, scanTracker)

	// Create scan use cases
	analyzePageUseCase := scan.NewAnalyzePageUseCase(
		entryRepo,
		categoryRepo,
		visionService,
		scanTracker,
		cfg.Scan.MaxImageBytes,
		cfg.Vision.Timeout,
	)
	getStatusUseCase := scan.NewGetStatusUseCase(scanTracker)

	// Create report use cases
	monthlySummaryUseCase := report.NewGetMonthlySummaryUseCase(entryRepo, categoryRepo)
	trendUseCase := report.NewGetTrendUseCase(entryRepo)
	exportCSVUseCase := report.NewExportCSVUseCase(entryRepo, categoryRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	entryController := controller.NewEntryController(
		listEntriesUseCase,
		createEntryUseCase,
		updateEntryUseCase,
		deleteEntryUseCase,
		clearEntriesUseCase,
	)

	scanController := controller.NewScanController(
		analyzePageUseCase,
		getStatusUseCase,
	)

	reportController := controller.NewReportController(
		monthlySummaryUseCase,
		trendUseCase,
		exportCSVUseCase,
	)

	// Create middleware
	// Use higher rate limits for the test environment to prevent flaky tests
	var scanRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		scanRateLimiter = middleware.NewRateLimiterWithConfig(1000, time.Minute)
	} else {
		scanRateLimiter = middleware.NewRateLimiterWithConfig(
			cfg.Scan.RateLimitAttempts,
			cfg.Scan.RateLimitWindow,
		)
	}

	r := router.NewRouter(
		healthController,
		categoryController,
		entryController,
		scanController,
		reportController,
		scanRateLimiter,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		SeedUseCase: seedUseCase,
	}, nil
}

// buildScanTracker selects the tracking backend: Redis when configured,
// in-memory otherwise.
func buildScanTracker(cfg *config.Config) (adapter.ScanTracker, error) {
	if cfg.Redis.URL == "" {
		slog.Info("scan tracker using in-memory backend")
		return tracker.NewMemoryTracker(), nil
	}

	redisTracker, err := tracker.NewRedisTracker(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect scan tracker to redis: %w", err)
	}
	slog.Info("scan tracker using redis backend")
	return redisTracker, nil
}
