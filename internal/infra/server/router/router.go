// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/kakeibo-scan/backend/internal/integration/entrypoint/controller"
	"github.com/kakeibo-scan/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine             *gin.Engine
	healthController   *controller.HealthController
	categoryController *controller.CategoryController
	entryController    *controller.EntryController
	scanController     *controller.ScanController
	reportController   *controller.ReportController
	scanRateLimiter    *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	categoryController *controller.CategoryController,
	entryController *controller.EntryController,
	scanController *controller.ScanController,
	reportController *controller.ReportController,
	scanRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:   healthController,
		categoryController: categoryController,
		entryController:    entryController,
		scanController:     scanController,
		reportController:   reportController,
		scanRateLimiter:    scanRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.List)
			categories.POST("", r.categoryController.Create)
			categories.PATCH("/:id", r.categoryController.Update)
			categories.DELETE("/:id", r.categoryController.Delete)
		}

		entries := v1.Group("/entries")
		{
			entries.GET("", r.entryController.List)
			entries.POST("", r.entryController.Create)
			entries.PATCH("/:id", r.entryController.Update)
			entries.DELETE("/:id", r.entryController.Delete)
			entries.DELETE("", r.entryController.Clear)
		}

		scan := v1.Group("/scan")
		{
			scan.POST("", r.scanRateLimiter.Middleware(), r.scanController.Analyze)
			scan.GET("/status", r.scanController.Status)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("/monthly/:year/:month", r.reportController.MonthlySummary)
			reports.GET("/trend/:year/:month", r.reportController.Trend)
		}

		export := v1.Group("/export")
		{
			export.GET("/csv", r.reportController.ExportCSV)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
