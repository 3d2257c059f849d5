package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "darf/docs"
	"darf/internal/domain"
	"darf/internal/handler"
	"darf/internal/metrics"
	"darf/internal/middleware"
	"darf/internal/service"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Record    *handler.RecordHandler
	Query     *handler.QueryHandler
	Aggregate *handler.AggregateHandler
	Catalog   *handler.CatalogHandler
	Export    *handler.ExportHandler
	Health    *handler.HealthHandler
}

// Options carries the cross-cutting dependencies of the router.
type Options struct {
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	AllowedOrigins []string
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Metrics(opts.Metrics))
	r.Use(middleware.CORS(opts.AllowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public routes
	v1.POST("/auth/login", h.Auth.Login)
	catalog := v1.Group("/catalog")
	catalog.GET("/fiscal-codes", h.Catalog.FiscalCodes)
	catalog.GET("/income-natures", h.Catalog.IncomeNatures)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/auth/me", h.Auth.Me)
	protected.POST("/auth/register", middleware.RequireRole(domain.RoleAdmin), h.Auth.Register)

	records := protected.Group("/records")
	records.POST("", h.Record.Create)
	records.GET("", h.Record.List)
	records.GET("/autocomplete", h.Query.Autocomplete)
	records.GET("/document/:number", h.Query.ByDocumentNumber)
	records.GET("/status/:status", h.Query.ByStatus)
	records.GET("/:id", h.Record.GetByID)
	records.PUT("/:id", h.Record.Update)
	records.POST("/:id/pay", h.Record.MarkPaid)
	records.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Record.Delete)

	protected.GET("/payers", h.Query.Payers)

	aggregates := protected.Group("/aggregates")
	aggregates.GET("", h.Aggregate.Aggregate)
	aggregates.GET("/annual/:year", h.Aggregate.Annual)
	aggregates.GET("/withheld", h.Aggregate.Withheld)

	exports := protected.Group("/exports")
	exports.GET("/records.csv", h.Export.RecordsCSV)
	exports.GET("/annual/:file", h.Export.AnnualWorkbook)
	exports.POST("/monthly", middleware.RequireRole(domain.RoleAdmin), h.Export.ArchiveMonthly)

	return r
}
